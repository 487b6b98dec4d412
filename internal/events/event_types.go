package events

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRoleAssigned        EventType = "role_assigned"
	EventRoleRevoked         EventType = "role_revoked"
	EventStockAdjusted       EventType = "stock_adjusted"
	EventStockBelowReorder   EventType = "stock_below_reorder"
	EventPurchaseOrderStatus EventType = "purchase_order_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RoleAssignedPayload payload.
type RoleAssignedPayload struct {
	UserID      string      `json:"user_id"`
	Role        domain.Role `json:"role"`
	Permissions []string    `json:"permissions"`
}

// RoleRevokedPayload payload.
type RoleRevokedPayload struct {
	UserID string `json:"user_id"`
}

// StockAdjustedPayload payload.
type StockAdjustedPayload struct {
	ProductID string                `json:"product_id"`
	Delta     int                   `json:"delta"`
	Quantity  int                   `json:"quantity"`
	Reason    domain.MovementReason `json:"reason"`
}

// StockBelowReorderPayload payload.
type StockBelowReorderPayload struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorder_level"`
}

// PurchaseOrderStatusPayload payload.
type PurchaseOrderStatusPayload struct {
	OrderID   string                     `json:"order_id"`
	Number    string                     `json:"number"`
	OldStatus domain.PurchaseOrderStatus `json:"old_status"`
	NewStatus domain.PurchaseOrderStatus `json:"new_status"`
}
