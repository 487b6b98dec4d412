package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// AdjustStockRequest applies a signed quantity change.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	Reference string `json:"reference"`
}

// ReorderLevelRequest sets a product's reorder threshold.
type ReorderLevelRequest struct {
	ReorderLevel int `json:"reorder_level"`
}

// StockLevelResponse is the public view of a stock level.
type StockLevelResponse struct {
	ProductID    string    `json:"product_id"`
	Quantity     int       `json:"quantity"`
	ReorderLevel int       `json:"reorder_level"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewStockLevelResponse maps a domain stock level.
func NewStockLevelResponse(level *domain.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ProductID:    level.ProductID,
		Quantity:     level.Quantity,
		ReorderLevel: level.ReorderLevel,
		UpdatedAt:    level.UpdatedAt,
	}
}

// StockMovementResponse is one ledger entry.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	ActorID   string    `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStockMovementResponse maps a domain movement.
func NewStockMovementResponse(movement *domain.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:        movement.ID,
		ProductID: movement.ProductID,
		Delta:     movement.Delta,
		Reason:    string(movement.Reason),
		Reference: movement.Reference,
		ActorID:   movement.ActorID,
		CreatedAt: movement.CreatedAt,
	}
}
