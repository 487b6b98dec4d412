package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// StockRepository defines persistence access for stock levels and movements.
type StockRepository interface {
	GetLevel(ctx context.Context, productID string) (*domain.StockLevel, error)
	ListLevels(ctx context.Context) ([]domain.StockLevel, error)
	ListBelowReorder(ctx context.Context) ([]domain.StockLevel, error)
	// ApplyMovement atomically adjusts the level by movement.Delta and records
	// the ledger entry, returning the resulting level. The level row is
	// created on first movement for a product.
	ApplyMovement(ctx context.Context, movement *domain.StockMovement) (*domain.StockLevel, error)
	SetReorderLevel(ctx context.Context, productID string, reorderLevel int) error
	ListMovements(ctx context.Context, productID string, limit int) ([]domain.StockMovement, error)
}

type stockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository returns a Postgres-backed implementation.
func NewStockRepository(pool *pgxpool.Pool) StockRepository {
	return &stockRepository{pool: pool}
}

func (r *stockRepository) GetLevel(ctx context.Context, productID string) (*domain.StockLevel, error) {
	const query = `
        SELECT product_id, quantity, reorder_level, updated_at
        FROM stock_levels WHERE product_id=$1`

	var level domain.StockLevel
	if err := r.pool.QueryRow(ctx, query, productID).Scan(
		&level.ProductID,
		&level.Quantity,
		&level.ReorderLevel,
		&level.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *stockRepository) ListLevels(ctx context.Context) ([]domain.StockLevel, error) {
	const query = `
        SELECT product_id, quantity, reorder_level, updated_at
        FROM stock_levels ORDER BY product_id`

	return r.scanLevels(ctx, query)
}

func (r *stockRepository) ListBelowReorder(ctx context.Context) ([]domain.StockLevel, error) {
	const query = `
        SELECT product_id, quantity, reorder_level, updated_at
        FROM stock_levels WHERE reorder_level > 0 AND quantity <= reorder_level
        ORDER BY product_id`

	return r.scanLevels(ctx, query)
}

func (r *stockRepository) ApplyMovement(ctx context.Context, movement *domain.StockMovement) (*domain.StockLevel, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const upsert = `
        INSERT INTO stock_levels (product_id, quantity)
        VALUES ($1, $2)
        ON CONFLICT (product_id)
        DO UPDATE SET quantity = stock_levels.quantity + $2, updated_at = NOW()
        RETURNING product_id, quantity, reorder_level, updated_at`

	var level domain.StockLevel
	if err := tx.QueryRow(ctx, upsert, movement.ProductID, movement.Delta).Scan(
		&level.ProductID,
		&level.Quantity,
		&level.ReorderLevel,
		&level.UpdatedAt,
	); err != nil {
		return nil, err
	}

	const insert = `
        INSERT INTO stock_movements (product_id, delta, reason, reference, actor_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insert,
		movement.ProductID,
		movement.Delta,
		movement.Reason,
		movement.Reference,
		movement.ActorID,
	).Scan(&movement.ID, &movement.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *stockRepository) SetReorderLevel(ctx context.Context, productID string, reorderLevel int) error {
	const query = `
        INSERT INTO stock_levels (product_id, quantity, reorder_level)
        VALUES ($1, 0, $2)
        ON CONFLICT (product_id)
        DO UPDATE SET reorder_level = $2, updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query, productID, reorderLevel)
	return err
}

func (r *stockRepository) ListMovements(ctx context.Context, productID string, limit int) ([]domain.StockMovement, error) {
	const query = `
        SELECT id, product_id, delta, reason, reference, actor_id, created_at
        FROM stock_movements WHERE product_id=$1
        ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var movement domain.StockMovement
		if err := rows.Scan(
			&movement.ID,
			&movement.ProductID,
			&movement.Delta,
			&movement.Reason,
			&movement.Reference,
			&movement.ActorID,
			&movement.CreatedAt,
		); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}

func (r *stockRepository) scanLevels(ctx context.Context, query string) ([]domain.StockLevel, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []domain.StockLevel
	for rows.Next() {
		var level domain.StockLevel
		if err := rows.Scan(
			&level.ProductID,
			&level.Quantity,
			&level.ReorderLevel,
			&level.UpdatedAt,
		); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}
