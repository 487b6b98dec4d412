package domain

import "time"

// MovementReason classifies a stock movement.
type MovementReason string

const (
	MovementReceipt       MovementReason = "RECEIPT"
	MovementAdjustment    MovementReason = "ADJUSTMENT"
	MovementSale          MovementReason = "SALE"
	MovementReturn        MovementReason = "RETURN"
	MovementOrderReceived MovementReason = "ORDER_RECEIVED"
)

// StockLevel is the current on-hand quantity for a product.
type StockLevel struct {
	ProductID    string
	Quantity     int
	ReorderLevel int
	UpdatedAt    time.Time
}

// BelowReorder reports whether the level has fallen to or under its threshold.
func (s *StockLevel) BelowReorder() bool {
	return s.ReorderLevel > 0 && s.Quantity <= s.ReorderLevel
}

// StockMovement is an immutable ledger entry for a quantity change.
type StockMovement struct {
	ID        string
	ProductID string
	Delta     int
	Reason    MovementReason
	Reference string
	ActorID   string
	CreatedAt time.Time
}
