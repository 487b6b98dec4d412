package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *string
	SupplierID *string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository defines persistence access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	SoftDelete(ctx context.Context, id string) error
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (sku, name, description, category_id, supplier_id, unit_price, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.SKU,
		product.Name,
		product.Description,
		product.CategoryID,
		product.SupplierID,
		product.UnitPrice,
		product.Active,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products
        SET sku=$1, name=$2, description=$3, category_id=$4, supplier_id=$5, unit_price=$6, active=$7, updated_at=NOW()
        WHERE id=$8 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query,
		product.SKU,
		product.Name,
		product.Description,
		product.CategoryID,
		product.SupplierID,
		product.UnitPrice,
		product.Active,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id, sku, name, description, category_id, supplier_id, unit_price, active, created_at, updated_at
        FROM products WHERE id=$1 AND deleted_at IS NULL`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	const query = `
        SELECT id, sku, name, description, category_id, supplier_id, unit_price, active, created_at, updated_at
        FROM products WHERE sku=$1 AND deleted_at IS NULL`

	return r.scanOne(r.pool.QueryRow(ctx, query, sku))
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	query := `
        SELECT id, sku, name, description, category_id, supplier_id, unit_price, active, created_at, updated_at
        FROM products WHERE deleted_at IS NULL`
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += ` AND category_id=$` + itoa(len(args))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		query += ` AND supplier_id=$` + itoa(len(args))
	}
	if filter.ActiveOnly {
		query += ` AND active=TRUE`
	}
	query += ` ORDER BY name`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.SKU,
			&product.Name,
			&product.Description,
			&product.CategoryID,
			&product.SupplierID,
			&product.UnitPrice,
			&product.Active,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE products SET deleted_at=NOW(), active=FALSE, updated_at=NOW()
        WHERE id=$1 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) scanOne(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.SKU,
		&product.Name,
		&product.Description,
		&product.CategoryID,
		&product.SupplierID,
		&product.UnitPrice,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
