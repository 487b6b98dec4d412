package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// CatalogService manages products, categories and suppliers.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
}

// NewCatalogService builds the service.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, suppliers repository.SupplierRepository) *CatalogService {
	return &CatalogService{products: products, categories: categories, suppliers: suppliers}
}

// CreateProduct validates references and inserts a product.
func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	product.SKU = strings.TrimSpace(product.SKU)
	if product.SKU == "" || product.Name == "" {
		return apperrors.NewValidationError("sku and name required", nil)
	}
	if _, err := s.products.GetBySKU(ctx, product.SKU); err == nil {
		return apperrors.NewConflict("sku already exists", map[string]any{"sku": product.SKU})
	} else if err != pgx.ErrNoRows {
		return err
	}
	if err := s.checkRefs(ctx, product); err != nil {
		return err
	}
	product.Active = true
	return s.products.Create(ctx, product)
}

// UpdateProduct applies changes to an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.checkRefs(ctx, product); err != nil {
		return err
	}
	if err := s.products.Update(ctx, product); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("product", map[string]any{"id": product.ID})
		}
		return err
	}
	return nil
}

// GetProduct returns one product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, err
	}
	return product, nil
}

// ListProducts returns products matching the filter.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 100
	}
	return s.products.List(ctx, filter)
}

// DeleteProduct soft-deletes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.SoftDelete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// CreateCategory inserts a category.
func (s *CatalogService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	return s.categories.Create(ctx, category)
}

// UpdateCategory applies changes to a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if err := s.categories.Update(ctx, category); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("category", map[string]any{"id": category.ID})
		}
		return err
	}
	return nil
}

// ListCategories returns all live categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// DeleteCategory soft-deletes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.SoftDelete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// CreateSupplier inserts a supplier.
func (s *CatalogService) CreateSupplier(ctx context.Context, supplier *domain.Supplier) error {
	if strings.TrimSpace(supplier.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	supplier.Active = true
	return s.suppliers.Create(ctx, supplier)
}

// UpdateSupplier applies changes to a supplier.
func (s *CatalogService) UpdateSupplier(ctx context.Context, supplier *domain.Supplier) error {
	if err := s.suppliers.Update(ctx, supplier); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("supplier", map[string]any{"id": supplier.ID})
		}
		return err
	}
	return nil
}

// GetSupplier returns one supplier.
func (s *CatalogService) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	supplier, err := s.suppliers.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("supplier", map[string]any{"id": id})
		}
		return nil, err
	}
	return supplier, nil
}

// ListSuppliers returns live suppliers.
func (s *CatalogService) ListSuppliers(ctx context.Context, activeOnly bool) ([]domain.Supplier, error) {
	return s.suppliers.List(ctx, activeOnly)
}

// DeleteSupplier soft-deletes a supplier.
func (s *CatalogService) DeleteSupplier(ctx context.Context, id string) error {
	if err := s.suppliers.SoftDelete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("supplier", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func (s *CatalogService) checkRefs(ctx context.Context, product *domain.Product) error {
	if product.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *product.CategoryID); err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewValidationError("unknown category", map[string]any{"category_id": *product.CategoryID})
			}
			return err
		}
	}
	if product.SupplierID != nil {
		if _, err := s.suppliers.GetByID(ctx, *product.SupplierID); err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewValidationError("unknown supplier", map[string]any{"supplier_id": *product.SupplierID})
			}
			return err
		}
	}
	return nil
}
