package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// UserService manages account administration.
type UserService struct {
	users repository.UserRepository
	roles repository.UserRoleRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, roles repository.UserRoleRepository) *UserService {
	return &UserService{users: users, roles: roles}
}

// List returns a page of accounts.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// Get returns one account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id string, name *string, verified *bool) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil && *name != "" {
		user.Name = *name
	}
	if verified != nil {
		user.EmailVerified = *verified
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Suspend marks the account suspended; an attached role assignment stays but
// login is refused.
func (s *UserService) Suspend(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	user.Status = domain.UserStatusSuspended
	return s.users.Update(ctx, user)
}

// Reinstate returns a suspended account to active.
func (s *UserService) Reinstate(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	user.Status = domain.UserStatusActive
	return s.users.Update(ctx, user)
}
