package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// SupplierRepository defines persistence access for suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	Update(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Supplier, error)
	SoftDelete(ctx context.Context, id string) error
}

type supplierRepository struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository returns a Postgres-backed implementation.
func NewSupplierRepository(pool *pgxpool.Pool) SupplierRepository {
	return &supplierRepository{pool: pool}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	const query = `
        INSERT INTO suppliers (name, contact_email, contact_phone, address, active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		supplier.Name,
		supplier.ContactEmail,
		supplier.ContactPhone,
		supplier.Address,
		supplier.Active,
	).Scan(&supplier.ID, &supplier.CreatedAt, &supplier.UpdatedAt)
}

func (r *supplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	const query = `
        UPDATE suppliers SET name=$1, contact_email=$2, contact_phone=$3, address=$4, active=$5, updated_at=NOW()
        WHERE id=$6 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query,
		supplier.Name,
		supplier.ContactEmail,
		supplier.ContactPhone,
		supplier.Address,
		supplier.Active,
		supplier.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *supplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	const query = `
        SELECT id, name, contact_email, contact_phone, address, active, created_at, updated_at
        FROM suppliers WHERE id=$1 AND deleted_at IS NULL`

	var supplier domain.Supplier
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&supplier.ID,
		&supplier.Name,
		&supplier.ContactEmail,
		&supplier.ContactPhone,
		&supplier.Address,
		&supplier.Active,
		&supplier.CreatedAt,
		&supplier.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) List(ctx context.Context, activeOnly bool) ([]domain.Supplier, error) {
	query := `
        SELECT id, name, contact_email, contact_phone, address, active, created_at, updated_at
        FROM suppliers WHERE deleted_at IS NULL`
	if activeOnly {
		query += ` AND active=TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		var supplier domain.Supplier
		if err := rows.Scan(
			&supplier.ID,
			&supplier.Name,
			&supplier.ContactEmail,
			&supplier.ContactPhone,
			&supplier.Address,
			&supplier.Active,
			&supplier.CreatedAt,
			&supplier.UpdatedAt,
		); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}

func (r *supplierRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE suppliers SET deleted_at=NOW(), active=FALSE, updated_at=NOW()
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
