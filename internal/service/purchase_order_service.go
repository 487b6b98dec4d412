package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// PurchaseOrderService manages the replenishment order lifecycle.
type PurchaseOrderService struct {
	orders     repository.PurchaseOrderRepository
	suppliers  repository.SupplierRepository
	products   repository.ProductRepository
	stock      *StockService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PurchaseOrderDependencies bundles the service's collaborators.
type PurchaseOrderDependencies struct {
	OrderRepo    repository.PurchaseOrderRepository
	SupplierRepo repository.SupplierRepository
	ProductRepo  repository.ProductRepository
	Stock        *StockService
	Dispatcher   events.Dispatcher
}

// NewPurchaseOrderService builds the service.
func NewPurchaseOrderService(deps PurchaseOrderDependencies, logger *zap.Logger) *PurchaseOrderService {
	return &PurchaseOrderService{
		orders:     deps.OrderRepo,
		suppliers:  deps.SupplierRepo,
		products:   deps.ProductRepo,
		stock:      deps.Stock,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create opens a draft order against a supplier.
func (s *PurchaseOrderService) Create(ctx context.Context, supplierID, createdBy, notes string, lines []domain.PurchaseOrderLine) (*domain.PurchaseOrder, error) {
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("at least one line required", nil)
	}
	supplier, err := s.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("supplier", map[string]any{"id": supplierID})
		}
		return nil, err
	}
	if !supplier.Active {
		return nil, apperrors.NewValidationError("supplier inactive", map[string]any{"id": supplierID})
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperrors.NewValidationError("line quantity must be positive", map[string]any{"product_id": line.ProductID})
		}
		if _, err := s.products.GetByID(ctx, line.ProductID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("unknown product", map[string]any{"product_id": line.ProductID})
			}
			return nil, err
		}
	}

	order := &domain.PurchaseOrder{
		Number:     newOrderNumber(),
		SupplierID: supplierID,
		Status:     domain.PurchaseOrderDraft,
		CreatedBy:  createdBy,
		Notes:      notes,
		Lines:      lines,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("order_id", order.ID),
		zap.String("number", order.Number),
		zap.String("supplier_id", supplierID))
	return order, nil
}

// Get returns one order with its lines.
func (s *PurchaseOrderService) Get(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("purchase order", map[string]any{"id": id})
		}
		return nil, err
	}
	return order, nil
}

// List returns orders, optionally filtered by status.
func (s *PurchaseOrderService) List(ctx context.Context, status *domain.PurchaseOrderStatus, limit, offset int) ([]domain.PurchaseOrder, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.orders.List(ctx, status, limit, offset)
}

// Submit moves a draft to SUBMITTED.
func (s *PurchaseOrderService) Submit(ctx context.Context, id, actorID string) (*domain.PurchaseOrder, error) {
	return s.transition(ctx, id, domain.PurchaseOrderSubmitted, actorID, nil)
}

// Approve moves a submitted order to APPROVED, recording the approver.
func (s *PurchaseOrderService) Approve(ctx context.Context, id, approverID string) (*domain.PurchaseOrder, error) {
	return s.transition(ctx, id, domain.PurchaseOrderApproved, approverID, &approverID)
}

// Cancel aborts any non-terminal order.
func (s *PurchaseOrderService) Cancel(ctx context.Context, id, actorID string) (*domain.PurchaseOrder, error) {
	return s.transition(ctx, id, domain.PurchaseOrderCancelled, actorID, nil)
}

// Receive closes an approved order and applies its lines to stock.
func (s *PurchaseOrderService) Receive(ctx context.Context, id, actorID string) (*domain.PurchaseOrder, error) {
	order, err := s.transition(ctx, id, domain.PurchaseOrderReceived, actorID, nil)
	if err != nil {
		return nil, err
	}
	for _, line := range order.Lines {
		if _, err := s.stock.Adjust(ctx, line.ProductID, line.Quantity, domain.MovementOrderReceived, order.Number, actorID); err != nil {
			s.logger.Error("failed applying received line to stock",
				zap.String("order_id", order.ID),
				zap.String("product_id", line.ProductID),
				zap.Error(err))
			return nil, err
		}
	}
	return order, nil
}

func (s *PurchaseOrderService) transition(ctx context.Context, id string, next domain.PurchaseOrderStatus, actorID string, approvedBy *string) (*domain.PurchaseOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": string(order.Status),
			"to":   string(next),
		})
	}
	if err := s.orders.UpdateStatus(ctx, id, next, approvedBy); err != nil {
		return nil, err
	}

	old := order.Status
	order.Status = next
	if approvedBy != nil {
		order.ApprovedBy = approvedBy
	}

	s.logger.Info("purchase order status changed",
		zap.String("order_id", id),
		zap.String("from", string(old)),
		zap.String("to", string(next)),
		zap.String("actor_id", actorID))

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPurchaseOrderStatus,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.PurchaseOrderStatusPayload{
			OrderID:   id,
			Number:    order.Number,
			OldStatus: old,
			NewStatus: next,
		},
	})
	return order, nil
}

func newOrderNumber() string {
	return "PO-" + strings.ToUpper(uuid.NewString()[:8])
}
