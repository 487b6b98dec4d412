package domain

import "time"

// PurchaseOrderStatus enumerates the order lifecycle.
type PurchaseOrderStatus string

const (
	PurchaseOrderDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderSubmitted PurchaseOrderStatus = "SUBMITTED"
	PurchaseOrderApproved  PurchaseOrderStatus = "APPROVED"
	PurchaseOrderReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderCancelled PurchaseOrderStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are allowed.
func (s PurchaseOrderStatus) Terminal() bool {
	return s == PurchaseOrderReceived || s == PurchaseOrderCancelled
}

// CanTransitionTo validates a status change against the fixed lifecycle.
func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == PurchaseOrderCancelled {
		return true
	}
	switch s {
	case PurchaseOrderDraft:
		return next == PurchaseOrderSubmitted
	case PurchaseOrderSubmitted:
		return next == PurchaseOrderApproved
	case PurchaseOrderApproved:
		return next == PurchaseOrderReceived
	default:
		return false
	}
}

// PurchaseOrder is a replenishment order placed against a supplier.
type PurchaseOrder struct {
	ID         string
	Number     string
	SupplierID string
	Status     PurchaseOrderStatus
	CreatedBy  string
	ApprovedBy *string
	Notes      string
	Lines      []PurchaseOrderLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderLine is one product quantity on an order.
type PurchaseOrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitCost  float64
}
