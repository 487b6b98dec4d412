package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/service"
)

// SuppliersHandler exposes supplier endpoints.
type SuppliersHandler struct {
	catalog *service.CatalogService
}

// NewSuppliersHandler constructs handler.
func NewSuppliersHandler(catalogService *service.CatalogService) *SuppliersHandler {
	return &SuppliersHandler{catalog: catalogService}
}

// List handles GET /api/suppliers.
func (h *SuppliersHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.catalog.ListSuppliers(c.Context(), c.QueryBool("active_only", false))
	if err != nil {
		return err
	}

	responses := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, dto.NewSupplierResponse(&suppliers[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get handles GET /api/suppliers/:id.
func (h *SuppliersHandler) Get(c *fiber.Ctx) error {
	supplier, err := h.catalog.GetSupplier(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSupplierResponse(supplier)})
}

// Create handles POST /api/suppliers.
func (h *SuppliersHandler) Create(c *fiber.Ctx) error {
	var req dto.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	supplier := &domain.Supplier{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	}
	if err := h.catalog.CreateSupplier(c.Context(), supplier); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSupplierResponse(supplier)})
}

// Update handles PUT /api/suppliers/:id.
func (h *SuppliersHandler) Update(c *fiber.Ctx) error {
	var req dto.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	supplier, err := h.catalog.GetSupplier(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if req.Name != "" {
		supplier.Name = req.Name
	}
	supplier.ContactEmail = req.ContactEmail
	supplier.ContactPhone = req.ContactPhone
	supplier.Address = req.Address
	if req.Active != nil {
		supplier.Active = *req.Active
	}

	if err := h.catalog.UpdateSupplier(c.Context(), supplier); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSupplierResponse(supplier)})
}

// Delete handles DELETE /api/suppliers/:id.
func (h *SuppliersHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteSupplier(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
