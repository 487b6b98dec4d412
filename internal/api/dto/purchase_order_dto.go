package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// PurchaseOrderLineRequest one product quantity on a new order.
type PurchaseOrderLineRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
}

// CreatePurchaseOrderRequest payload for opening a draft order.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Notes      string                     `json:"notes"`
	Lines      []PurchaseOrderLineRequest `json:"lines"`
}

// PurchaseOrderLineResponse is one line on an order.
type PurchaseOrderLineResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
}

// PurchaseOrderResponse is the public view of an order.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	Number     string                      `json:"number"`
	SupplierID string                      `json:"supplier_id"`
	Status     string                      `json:"status"`
	CreatedBy  string                      `json:"created_by"`
	ApprovedBy *string                     `json:"approved_by,omitempty"`
	Notes      string                      `json:"notes,omitempty"`
	Lines      []PurchaseOrderLineResponse `json:"lines,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// NewPurchaseOrderResponse maps a domain order.
func NewPurchaseOrderResponse(order *domain.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:         order.ID,
		Number:     order.Number,
		SupplierID: order.SupplierID,
		Status:     string(order.Status),
		CreatedBy:  order.CreatedBy,
		ApprovedBy: order.ApprovedBy,
		Notes:      order.Notes,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, PurchaseOrderLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		})
	}
	return resp
}
