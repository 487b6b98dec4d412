package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// PurchaseOrderRepository defines persistence access for purchase orders.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	List(ctx context.Context, status *domain.PurchaseOrderStatus, limit, offset int) ([]domain.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id string, status domain.PurchaseOrderStatus, approvedBy *string) error
}

type purchaseOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseOrderRepository returns a Postgres-backed implementation.
func NewPurchaseOrderRepository(pool *pgxpool.Pool) PurchaseOrderRepository {
	return &purchaseOrderRepository{pool: pool}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertOrder = `
        INSERT INTO purchase_orders (number, supplier_id, status, created_by, notes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertOrder,
		order.Number,
		order.SupplierID,
		order.Status,
		order.CreatedBy,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	const insertLine = `
        INSERT INTO purchase_order_lines (order_id, product_id, quantity, unit_cost)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	for i := range order.Lines {
		line := &order.Lines[i]
		line.OrderID = order.ID
		if err := tx.QueryRow(ctx, insertLine,
			line.OrderID,
			line.ProductID,
			line.Quantity,
			line.UnitCost,
		).Scan(&line.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	const query = `
        SELECT id, number, supplier_id, status, created_by, approved_by, notes, created_at, updated_at
        FROM purchase_orders WHERE id=$1`

	var order domain.PurchaseOrder
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.Number,
		&order.SupplierID,
		&order.Status,
		&order.CreatedBy,
		&order.ApprovedBy,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}

	lines, err := r.loadLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return &order, nil
}

func (r *purchaseOrderRepository) List(ctx context.Context, status *domain.PurchaseOrderStatus, limit, offset int) ([]domain.PurchaseOrder, error) {
	query := `
        SELECT id, number, supplier_id, status, created_by, approved_by, notes, created_at, updated_at
        FROM purchase_orders`
	args := []any{}
	if status != nil {
		args = append(args, *status)
		query += ` WHERE status=$1`
	}
	query += ` ORDER BY created_at DESC`
	args = append(args, limit, offset)
	query += ` LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.PurchaseOrder
	for rows.Next() {
		var order domain.PurchaseOrder
		if err := rows.Scan(
			&order.ID,
			&order.Number,
			&order.SupplierID,
			&order.Status,
			&order.CreatedBy,
			&order.ApprovedBy,
			&order.Notes,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *purchaseOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.PurchaseOrderStatus, approvedBy *string) error {
	const query = `
        UPDATE purchase_orders
        SET status=$1, approved_by=COALESCE($2, approved_by), updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, status, approvedBy, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *purchaseOrderRepository) loadLines(ctx context.Context, orderID string) ([]domain.PurchaseOrderLine, error) {
	const query = `
        SELECT id, order_id, product_id, quantity, unit_cost
        FROM purchase_order_lines WHERE order_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.PurchaseOrderLine
	for rows.Next() {
		var line domain.PurchaseOrderLine
		if err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductID,
			&line.Quantity,
			&line.UnitCost,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
