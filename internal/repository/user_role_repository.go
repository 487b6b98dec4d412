package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// UserRoleRepository defines persistence access for role assignments.
type UserRoleRepository interface {
	// FindActiveRole returns the user's single non-deleted assignment, or
	// pgx.ErrNoRows when none exists. Inactive rows are still returned so the
	// caller can distinguish "no role" from "role inactive".
	FindActiveRole(ctx context.Context, userID string) (*domain.UserRole, error)
	Assign(ctx context.Context, role *domain.UserRole) error
	SetActive(ctx context.Context, userID string, active bool) error
	Revoke(ctx context.Context, userID string) error
}

type userRoleRepository struct {
	pool *pgxpool.Pool
}

// NewUserRoleRepository returns a Postgres-backed implementation.
func NewUserRoleRepository(pool *pgxpool.Pool) UserRoleRepository {
	return &userRoleRepository{pool: pool}
}

func (r *userRoleRepository) FindActiveRole(ctx context.Context, userID string) (*domain.UserRole, error) {
	const query = `
        SELECT id, user_id, role, permissions, is_active, assigned_by, created_at, updated_at
        FROM user_roles
        WHERE user_id=$1 AND deleted_at IS NULL`

	var role domain.UserRole
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&role.ID,
		&role.UserID,
		&role.Role,
		&role.Permissions,
		&role.IsActive,
		&role.AssignedBy,
		&role.CreatedAt,
		&role.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &role, nil
}

// Assign soft-deletes any previous assignment and inserts the new one, so at
// most one non-deleted row exists per user.
func (r *userRoleRepository) Assign(ctx context.Context, role *domain.UserRole) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const retire = `
        UPDATE user_roles SET deleted_at=NOW(), is_active=FALSE, updated_at=NOW()
        WHERE user_id=$1 AND deleted_at IS NULL`
	if _, err := tx.Exec(ctx, retire, role.UserID); err != nil {
		return err
	}

	const insert = `
        INSERT INTO user_roles (user_id, role, permissions, is_active, assigned_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert,
		role.UserID,
		role.Role,
		role.Permissions,
		role.IsActive,
		role.AssignedBy,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRoleRepository) SetActive(ctx context.Context, userID string, active bool) error {
	const query = `
        UPDATE user_roles SET is_active=$1, updated_at=NOW()
        WHERE user_id=$2 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, active, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRoleRepository) Revoke(ctx context.Context, userID string) error {
	const query = `
        UPDATE user_roles SET deleted_at=NOW(), is_active=FALSE, updated_at=NOW()
        WHERE user_id=$1 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
