package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockUserRoleRepository is a mock implementation of UserRoleRepository.
type MockUserRoleRepository struct {
	mock.Mock
}

func (m *MockUserRoleRepository) FindActiveRole(ctx context.Context, userID string) (*domain.UserRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRole), args.Error(1)
}

func (m *MockUserRoleRepository) Assign(ctx context.Context, role *domain.UserRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockUserRoleRepository) SetActive(ctx context.Context, userID string, active bool) error {
	args := m.Called(ctx, userID, active)
	return args.Error(0)
}

func (m *MockUserRoleRepository) Revoke(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// eventRecorder captures published events for assertions.
type eventRecorder struct {
	dispatcher events.Dispatcher
	seen       []events.Event
}

func newEventRecorder(types ...events.EventType) *eventRecorder {
	rec := &eventRecorder{dispatcher: events.NewInMemoryDispatcher()}
	for _, eventType := range types {
		rec.dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			rec.seen = append(rec.seen, event)
			return nil
		})
	}
	return rec
}

func TestRoleServiceAssign(t *testing.T) {
	users := new(MockUserRepository)
	roles := new(MockUserRoleRepository)
	rec := newEventRecorder(events.EventRoleAssigned)

	users.On("GetByID", mock.Anything, "user-1").Return(&domain.User{ID: "user-1"}, nil)
	roles.On("Assign", mock.Anything, mock.MatchedBy(func(ur *domain.UserRole) bool {
		return ur.UserID == "user-1" && ur.Role == domain.RoleManager && ur.IsActive
	})).Return(nil)

	svc := NewRoleService(users, roles, rec.dispatcher, zap.NewNop())
	assignment, err := svc.Assign(context.Background(), "user-1", domain.RoleManager,
		[]string{domain.PermViewInventory}, "admin-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleManager, assignment.Role)
	assert.Equal(t, "admin-1", assignment.AssignedBy)
	assert.Len(t, rec.seen, 1)
	assert.Equal(t, events.EventRoleAssigned, rec.seen[0].Type)
	roles.AssertExpectations(t)
}

func TestRoleServiceAssignUnknownRole(t *testing.T) {
	users := new(MockUserRepository)
	roles := new(MockUserRoleRepository)

	svc := NewRoleService(users, roles, events.NewInMemoryDispatcher(), zap.NewNop())
	_, err := svc.Assign(context.Background(), "user-1", domain.Role("SUPERUSER"), nil, "admin-1")

	assert.Error(t, err)
	var de *apperrors.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	roles.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything)
}

func TestRoleServiceAssignUnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	roles := new(MockUserRoleRepository)
	users.On("GetByID", mock.Anything, "ghost").Return(nil, pgx.ErrNoRows)

	svc := NewRoleService(users, roles, events.NewInMemoryDispatcher(), zap.NewNop())
	_, err := svc.Assign(context.Background(), "ghost", domain.RoleStaff, nil, "admin-1")

	var de *apperrors.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestRoleServiceRevoke(t *testing.T) {
	users := new(MockUserRepository)
	roles := new(MockUserRoleRepository)
	rec := newEventRecorder(events.EventRoleRevoked)
	roles.On("Revoke", mock.Anything, "user-1").Return(nil)

	svc := NewRoleService(users, roles, rec.dispatcher, zap.NewNop())
	err := svc.Revoke(context.Background(), "user-1", "admin-1")

	assert.NoError(t, err)
	assert.Len(t, rec.seen, 1)
}

func TestRoleServiceRevokeWithoutAssignment(t *testing.T) {
	users := new(MockUserRepository)
	roles := new(MockUserRoleRepository)
	roles.On("Revoke", mock.Anything, "user-1").Return(pgx.ErrNoRows)

	svc := NewRoleService(users, roles, events.NewInMemoryDispatcher(), zap.NewNop())
	err := svc.Revoke(context.Background(), "user-1", "admin-1")

	var de *apperrors.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}
