package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// StockService maintains stock levels and the movement ledger.
type StockService struct {
	stock      repository.StockRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewStockService builds the service.
func NewStockService(stock repository.StockRepository, products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *StockService {
	return &StockService{stock: stock, products: products, dispatcher: dispatcher, logger: logger}
}

// Adjust applies a signed quantity change with a reason, recording a ledger
// entry. Quantity never goes below zero.
func (s *StockService) Adjust(ctx context.Context, productID string, delta int, reason domain.MovementReason, reference, actorID string) (*domain.StockLevel, error) {
	if delta == 0 {
		return nil, apperrors.NewValidationError("delta must be non-zero", nil)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": productID})
		}
		return nil, err
	}
	if delta < 0 {
		level, err := s.stock.GetLevel(ctx, productID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		current := 0
		if err == nil {
			current = level.Quantity
		}
		if current+delta < 0 {
			return nil, apperrors.NewConflict("insufficient stock", map[string]any{
				"product_id": productID,
				"quantity":   current,
				"delta":      delta,
			})
		}
	}

	movement := &domain.StockMovement{
		ProductID: productID,
		Delta:     delta,
		Reason:    reason,
		Reference: reference,
		ActorID:   actorID,
	}
	level, err := s.stock.ApplyMovement(ctx, movement)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", productID),
		zap.Int("delta", delta),
		zap.Int("quantity", level.Quantity),
		zap.String("reason", string(reason)))

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStockAdjusted,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.StockAdjustedPayload{
			ProductID: productID,
			Delta:     delta,
			Quantity:  level.Quantity,
			Reason:    reason,
		},
	})

	if level.BelowReorder() {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStockBelowReorder,
			ActorID:   actorID,
			Timestamp: time.Now(),
			Payload: events.StockBelowReorderPayload{
				ProductID:    productID,
				Quantity:     level.Quantity,
				ReorderLevel: level.ReorderLevel,
			},
		})
	}

	return level, nil
}

// Level returns the current level for a product; a product with no movements
// reports zero on hand.
func (s *StockService) Level(ctx context.Context, productID string) (*domain.StockLevel, error) {
	level, err := s.stock.GetLevel(ctx, productID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &domain.StockLevel{ProductID: productID}, nil
		}
		return nil, err
	}
	return level, nil
}

// Levels returns all tracked levels.
func (s *StockService) Levels(ctx context.Context) ([]domain.StockLevel, error) {
	return s.stock.ListLevels(ctx)
}

// BelowReorder lists products at or under their reorder threshold.
func (s *StockService) BelowReorder(ctx context.Context) ([]domain.StockLevel, error) {
	return s.stock.ListBelowReorder(ctx)
}

// SetReorderLevel updates the threshold for a product.
func (s *StockService) SetReorderLevel(ctx context.Context, productID string, reorderLevel int) error {
	if reorderLevel < 0 {
		return apperrors.NewValidationError("reorder level must be >= 0", nil)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("product", map[string]any{"id": productID})
		}
		return err
	}
	return s.stock.SetReorderLevel(ctx, productID, reorderLevel)
}

// Movements returns recent ledger entries for a product.
func (s *StockService) Movements(ctx context.Context, productID string, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.stock.ListMovements(ctx, productID, limit)
}
