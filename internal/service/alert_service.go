package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/config"
	"github.com/spec-kit/inventory-service/internal/events"
)

// AlertService turns domain events into operator alerts.
type AlertService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AlertsConfig
}

// NewAlertService creates the service.
func NewAlertService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AlertsConfig) *AlertService {
	return &AlertService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (a *AlertService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventStockBelowReorder, a.handleStockBelowReorder)
	a.dispatcher.Subscribe(events.EventPurchaseOrderStatus, a.handleOrderStatusChanged)
	a.dispatcher.Subscribe(events.EventRoleAssigned, a.handleRoleAssigned)
	a.dispatcher.Subscribe(events.EventRoleRevoked, a.handleRoleRevoked)
}

func (a *AlertService) handleStockBelowReorder(ctx context.Context, event events.Event) error {
	a.logger.Warn("StockBelowReorder", zap.Any("payload", event.Payload))
	a.sendEmailAlertStub(ctx, event)
	a.sendWebhookAlertStub(ctx, event)
	return nil
}

func (a *AlertService) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	a.logger.Info("PurchaseOrderStatusChanged", zap.Any("payload", event.Payload))
	a.sendWebhookAlertStub(ctx, event)
	return nil
}

func (a *AlertService) handleRoleAssigned(ctx context.Context, event events.Event) error {
	a.logger.Info("RoleAssigned", zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AlertService) handleRoleRevoked(ctx context.Context, event events.Event) error {
	a.logger.Info("RoleRevoked", zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AlertService) sendEmailAlertStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(a.cfg.EmailFrom) == "" {
		return
	}
	a.logger.Debug("sendEmailAlertStub",
		zap.String("from", a.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (a *AlertService) sendWebhookAlertStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(a.cfg.WebhookURL) == "" {
		return
	}
	a.logger.Debug("sendWebhookAlertStub",
		zap.String("url", a.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
