package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// MockIdentityVerifier is a mock implementation of IdentityVerifier.
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

// MockRoleStore is a mock implementation of RoleStore.
type MockRoleStore struct {
	mock.Mock
}

func (m *MockRoleStore) FindActiveRole(ctx context.Context, userID string) (*domain.UserRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRole), args.Error(1)
}

func newTestApp(evaluator *Evaluator, req Requirement) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Code})
		}
		return nil
	})
	app.Get("/protected", evaluator.Require(req), func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"user_id": principal.Identity.ID})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: cookie})
	}
	resp, err := app.Test(req)
	assert.NoError(t, err)
	return resp
}

func identity() *domain.Identity {
	return &domain.Identity{ID: "user-1", Email: "user@example.com"}
}

func TestEvaluatorMissingCredential(t *testing.T) {
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	app := newTestApp(evaluator, RequireMinimumRole(domain.RoleStaff))
	resp := doRequest(t, app, "", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	// no identity resolution and no role lookup happens without a credential
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "FindActiveRole", mock.Anything, mock.Anything)
}

func TestEvaluatorMalformedHeader(t *testing.T) {
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	app := newTestApp(evaluator, RequireAuth())

	for _, header := range []string{"Basic abc", "Bearer", "Bearer "} {
		resp := doRequest(t, app, header, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
	store.AssertNotCalled(t, "FindActiveRole", mock.Anything, mock.Anything)
}

func TestEvaluatorRejectedCredential(t *testing.T) {
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	verifier.On("Verify", mock.Anything, "bad-token").Return(nil, errors.New("token expired"))
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	app := newTestApp(evaluator, RequireMinimumRole(domain.RoleStaff))
	resp := doRequest(t, app, "Bearer bad-token", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	store.AssertNotCalled(t, "FindActiveRole", mock.Anything, mock.Anything)
}

func TestEvaluatorCookieFallback(t *testing.T) {
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	verifier.On("Verify", mock.Anything, "cookie-token").Return(identity(), nil)
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	app := newTestApp(evaluator, RequireAuth())
	resp := doRequest(t, app, "", "cookie-token")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEvaluatorAuthOnlySkipsRoleLookup(t *testing.T) {
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	verifier.On("Verify", mock.Anything, "good-token").Return(identity(), nil)
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	app := newTestApp(evaluator, RequireAuth())
	resp := doRequest(t, app, "Bearer good-token", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	store.AssertNotCalled(t, "FindActiveRole", mock.Anything, mock.Anything)
}

func TestEvaluatorNoRoleAssigned(t *testing.T) {
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	verifier.On("Verify", mock.Anything, "good-token").Return(identity(), nil)
	store.On("FindActiveRole", mock.Anything, "user-1").Return(nil, pgx.ErrNoRows)
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	// a user without a role row is denied regardless of the requirement kind
	for _, req := range []Requirement{
		RequireMinimumRole(domain.RoleStaff),
		RequireRoles(domain.RoleStaff, domain.RoleManager, domain.RoleAdmin),
		RequireAnyPermission(domain.PermViewInventory),
		RequireAllPermissions(domain.PermViewInventory),
	} {
		app := newTestApp(evaluator, req)
		resp := doRequest(t, app, "Bearer good-token", "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}
}

func TestEvaluatorInactiveRoleDenied(t *testing.T) {
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	verifier.On("Verify", mock.Anything, "good-token").Return(identity(), nil)
	store.On("FindActiveRole", mock.Anything, "user-1").Return(&domain.UserRole{
		UserID:      "user-1",
		Role:        domain.RoleAdmin,
		Permissions: []string{domain.PermViewInventory},
		IsActive:    false,
	}, nil)
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	// even a requirement the role would satisfy is denied while inactive
	app := newTestApp(evaluator, RequireMinimumRole(domain.RoleStaff))
	resp := doRequest(t, app, "Bearer good-token", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEvaluatorVerifierOutageIsForbidden(t *testing.T) {
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	// the revocation store being unreachable is an internal failure, not a
	// rejected credential: deny with 403, not 401
	verifier.On("Verify", mock.Anything, "good-token").
		Return(nil, fmt.Errorf("%w: dial tcp 127.0.0.1:1: connection refused", ErrVerifyUnavailable))
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	app := newTestApp(evaluator, RequireAuth())
	resp := doRequest(t, app, "Bearer good-token", "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	store.AssertNotCalled(t, "FindActiveRole", mock.Anything, mock.Anything)
}

func TestEvaluatorRoleStoreFailureIsForbidden(t *testing.T) {
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	verifier.On("Verify", mock.Anything, "good-token").Return(identity(), nil)
	store.On("FindActiveRole", mock.Anything, "user-1").Return(nil, errors.New("connection refused"))
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	app := newTestApp(evaluator, RequireMinimumRole(domain.RoleStaff))
	resp := doRequest(t, app, "Bearer good-token", "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEvaluatorMinimumRoleDecision(t *testing.T) {
	tests := []struct {
		name       string
		held       domain.Role
		wantStatus int
	}{
		{"staff denied for manager minimum", domain.RoleStaff, http.StatusForbidden},
		{"manager allowed for manager minimum", domain.RoleManager, http.StatusOK},
		{"admin allowed for manager minimum", domain.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(MockIdentityVerifier)
			store := new(MockRoleStore)
			verifier.On("Verify", mock.Anything, "good-token").Return(identity(), nil)
			store.On("FindActiveRole", mock.Anything, "user-1").Return(&domain.UserRole{
				UserID:   "user-1",
				Role:     tt.held,
				IsActive: true,
			}, nil)
			evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

			app := newTestApp(evaluator, RequireMinimumRole(domain.RoleManager))
			resp := doRequest(t, app, "Bearer good-token", "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestEvaluatorPermissionModes(t *testing.T) {
	// manager holding only VIEW_INVENTORY: ANY passes, ALL fails
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	verifier.On("Verify", mock.Anything, "good-token").Return(identity(), nil)
	store.On("FindActiveRole", mock.Anything, "user-1").Return(&domain.UserRole{
		UserID:      "user-1",
		Role:        domain.RoleManager,
		Permissions: []string{domain.PermViewInventory},
		IsActive:    true,
	}, nil)
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	anyApp := newTestApp(evaluator, RequireAnyPermission(domain.PermViewInventory, domain.PermManageInventory))
	resp := doRequest(t, anyApp, "Bearer good-token", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	allApp := newTestApp(evaluator, RequireAllPermissions(domain.PermViewInventory, domain.PermManageInventory))
	resp = doRequest(t, allApp, "Bearer good-token", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEvaluatorAttachesPrincipal(t *testing.T) {
	verifier := new(MockIdentityVerifier)
	store := new(MockRoleStore)
	verifier.On("Verify", mock.Anything, "good-token").Return(identity(), nil)
	store.On("FindActiveRole", mock.Anything, "user-1").Return(&domain.UserRole{
		UserID:      "user-1",
		Role:        domain.RoleManager,
		Permissions: []string{domain.PermViewInventory},
		IsActive:    true,
	}, nil)
	evaluator := NewEvaluator(verifier, store, "access_token", zap.NewNop())

	app := fiber.New()
	var seen *Principal
	app.Get("/protected", evaluator.Require(RequireMinimumRole(domain.RoleStaff)), func(c *fiber.Ctx) error {
		seen, _ = PrincipalFromContext(c)
		return c.SendStatus(http.StatusOK)
	})

	resp := doRequest(t, app, "Bearer good-token", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.Identity.ID)
	assert.NotNil(t, seen.Role)
	assert.Equal(t, domain.RoleManager, seen.Role.Role)
	assert.True(t, seen.HasPermission(domain.PermViewInventory))
	assert.False(t, seen.HasPermission(domain.PermManageInventory))
}
