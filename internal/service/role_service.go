package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// RoleService manages role assignments.
type RoleService struct {
	users      repository.UserRepository
	roles      repository.UserRoleRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewRoleService builds the service.
func NewRoleService(users repository.UserRepository, roles repository.UserRoleRepository, dispatcher events.Dispatcher, logger *zap.Logger) *RoleService {
	return &RoleService{users: users, roles: roles, dispatcher: dispatcher, logger: logger}
}

// Assign replaces a user's role assignment. The previous assignment, if any,
// is soft-deleted so exactly one live row remains.
func (s *RoleService) Assign(ctx context.Context, userID string, role domain.Role, permissions []string, assignedBy string) (*domain.UserRole, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}
	if permissions == nil {
		permissions = []string{}
	}

	assignment := &domain.UserRole{
		UserID:      userID,
		Role:        role,
		Permissions: permissions,
		IsActive:    true,
		AssignedBy:  assignedBy,
	}
	if err := s.roles.Assign(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info("role assigned",
		zap.String("user_id", userID),
		zap.String("role", string(role)),
		zap.String("assigned_by", assignedBy))

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRoleAssigned,
		ActorID:   assignedBy,
		Timestamp: time.Now(),
		Payload: events.RoleAssignedPayload{
			UserID:      userID,
			Role:        role,
			Permissions: permissions,
		},
	})
	return assignment, nil
}

// Revoke soft-deletes a user's role assignment; the user loses every
// permission immediately.
func (s *RoleService) Revoke(ctx context.Context, userID, revokedBy string) error {
	if err := s.roles.Revoke(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("role assignment", map[string]any{"user_id": userID})
		}
		return err
	}

	s.logger.Info("role revoked", zap.String("user_id", userID), zap.String("revoked_by", revokedBy))

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRoleRevoked,
		ActorID:   revokedBy,
		Timestamp: time.Now(),
		Payload:   events.RoleRevokedPayload{UserID: userID},
	})
	return nil
}

// SetActive toggles an assignment without discarding it.
func (s *RoleService) SetActive(ctx context.Context, userID string, active bool) error {
	if err := s.roles.SetActive(ctx, userID, active); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("role assignment", map[string]any{"user_id": userID})
		}
		return err
	}
	return nil
}

// Get returns the live assignment for a user, or a not-found error.
func (s *RoleService) Get(ctx context.Context, userID string) (*domain.UserRole, error) {
	role, err := s.roles.FindActiveRole(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("role assignment", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	return role, nil
}
