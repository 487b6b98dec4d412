package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/service"
)

// StockHandler exposes stock level and movement endpoints.
type StockHandler struct {
	stock *service.StockService
}

// NewStockHandler constructs handler.
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stock: stockService}
}

// Levels handles GET /api/stock.
func (h *StockHandler) Levels(c *fiber.Ctx) error {
	levels, err := h.stock.Levels(c.Context())
	if err != nil {
		return err
	}

	responses := make([]dto.StockLevelResponse, 0, len(levels))
	for i := range levels {
		responses = append(responses, dto.NewStockLevelResponse(&levels[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Level handles GET /api/stock/:productID.
func (h *StockHandler) Level(c *fiber.Ctx) error {
	level, err := h.stock.Level(c.Context(), c.Params("productID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStockLevelResponse(level)})
}

// Adjust handles POST /api/stock/adjustments.
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProductID == "" || req.Delta == 0 {
		return fiber.NewError(http.StatusBadRequest, "product_id and non-zero delta required")
	}
	reason := domain.MovementReason(req.Reason)
	switch reason {
	case domain.MovementReceipt, domain.MovementAdjustment, domain.MovementSale, domain.MovementReturn:
	default:
		return fiber.NewError(http.StatusBadRequest, "unknown reason")
	}

	level, err := h.stock.Adjust(c.Context(), req.ProductID, req.Delta, reason, req.Reference, principal.Identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStockLevelResponse(level)})
}

// SetReorderLevel handles PUT /api/stock/:productID/reorder-level.
func (h *StockHandler) SetReorderLevel(c *fiber.Ctx) error {
	var req dto.ReorderLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.stock.SetReorderLevel(c.Context(), c.Params("productID"), req.ReorderLevel); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// Movements handles GET /api/stock/:productID/movements.
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	movements, err := h.stock.Movements(c.Context(), c.Params("productID"), c.QueryInt("limit", 50))
	if err != nil {
		return err
	}

	responses := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, dto.NewStockMovementResponse(&movements[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// StockReport handles GET /api/reports/stock: products at or under their
// reorder threshold.
func (h *StockHandler) StockReport(c *fiber.Ctx) error {
	levels, err := h.stock.BelowReorder(c.Context())
	if err != nil {
		return err
	}

	responses := make([]dto.StockLevelResponse, 0, len(levels))
	for i := range levels {
		responses = append(responses, dto.NewStockLevelResponse(&levels[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"below_reorder": responses,
		"count":         len(responses),
	}})
}
