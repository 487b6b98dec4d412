package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/service"
)

// PurchaseOrdersHandler exposes purchase order endpoints.
type PurchaseOrdersHandler struct {
	orders *service.PurchaseOrderService
}

// NewPurchaseOrdersHandler constructs handler.
func NewPurchaseOrdersHandler(orderService *service.PurchaseOrderService) *PurchaseOrdersHandler {
	return &PurchaseOrdersHandler{orders: orderService}
}

// List handles GET /api/purchase-orders.
func (h *PurchaseOrdersHandler) List(c *fiber.Ctx) error {
	var status *domain.PurchaseOrderStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.PurchaseOrderStatus(raw)
		status = &s
	}

	orders, err := h.orders.List(c.Context(), status, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	responses := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, dto.NewPurchaseOrderResponse(&orders[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get handles GET /api/purchase-orders/:id.
func (h *PurchaseOrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPurchaseOrderResponse(order)})
}

// Create handles POST /api/purchase-orders.
func (h *PurchaseOrdersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.SupplierID == "" || len(req.Lines) == 0 {
		return fiber.NewError(http.StatusBadRequest, "supplier_id and lines required")
	}

	lines := make([]domain.PurchaseOrderLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, domain.PurchaseOrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		})
	}

	order, err := h.orders.Create(c.Context(), req.SupplierID, principal.Identity.ID, req.Notes, lines)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPurchaseOrderResponse(order)})
}

// Submit handles POST /api/purchase-orders/:id/submit.
func (h *PurchaseOrdersHandler) Submit(c *fiber.Ctx) error {
	return h.applyTransition(c, h.orders.Submit)
}

// Approve handles POST /api/purchase-orders/:id/approve.
func (h *PurchaseOrdersHandler) Approve(c *fiber.Ctx) error {
	return h.applyTransition(c, h.orders.Approve)
}

// Receive handles POST /api/purchase-orders/:id/receive.
func (h *PurchaseOrdersHandler) Receive(c *fiber.Ctx) error {
	return h.applyTransition(c, h.orders.Receive)
}

// Cancel handles POST /api/purchase-orders/:id/cancel.
func (h *PurchaseOrdersHandler) Cancel(c *fiber.Ctx) error {
	return h.applyTransition(c, h.orders.Cancel)
}

func (h *PurchaseOrdersHandler) applyTransition(c *fiber.Ctx, fn func(ctx context.Context, id, actorID string) (*domain.PurchaseOrder, error)) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	order, err := fn(c.Context(), c.Params("id"), principal.Identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPurchaseOrderResponse(order)})
}
