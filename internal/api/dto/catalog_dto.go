package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// ProductRequest payload for product create/update.
type ProductRequest struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  *string `json:"category_id"`
	SupplierID  *string `json:"supplier_id"`
	UnitPrice   float64 `json:"unit_price"`
	Active      *bool   `json:"active"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id,omitempty"`
	SupplierID  *string   `json:"supplier_id,omitempty"`
	UnitPrice   float64   `json:"unit_price"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		CategoryID:  product.CategoryID,
		SupplierID:  product.SupplierID,
		UnitPrice:   product.UnitPrice,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
	}
}

// CategoryRequest payload for category create/update.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

// SupplierRequest payload for supplier create/update.
type SupplierRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	Active       *bool  `json:"active"`
}

// SupplierResponse is the public view of a supplier.
type SupplierResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	Active       bool   `json:"active"`
}

// NewSupplierResponse maps a domain supplier.
func NewSupplierResponse(supplier *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           supplier.ID,
		Name:         supplier.Name,
		ContactEmail: supplier.ContactEmail,
		ContactPhone: supplier.ContactPhone,
		Address:      supplier.Address,
		Active:       supplier.Active,
	}
}
