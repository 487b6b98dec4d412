package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

const principalKey = "auth_principal"

// RoleStore looks up a user's single active role assignment. Soft-deleted
// rows are never returned; absence is signalled with pgx.ErrNoRows.
type RoleStore interface {
	FindActiveRole(ctx context.Context, userID string) (*domain.UserRole, error)
}

// Principal is the resolved caller attached to the request context for
// downstream handlers.
type Principal struct {
	Identity domain.Identity
	Role     *domain.UserRole
}

// HasPermission reports whether the principal's active role grants perm.
func (p *Principal) HasPermission(perm string) bool {
	if p == nil || p.Role == nil || !p.Role.IsActive {
		return false
	}
	return p.Role.HasPermission(perm)
}

// Evaluator decides allow/deny for protected routes: it extracts the bearer
// credential, resolves it to an identity, loads the caller's active role and
// evaluates the route's declared requirement.
type Evaluator struct {
	verifier   IdentityVerifier
	roles      RoleStore
	cookieName string
	logger     *zap.Logger
}

// NewEvaluator constructs the evaluator. cookieName is the fallback cookie
// consulted when no Authorization header is present.
func NewEvaluator(verifier IdentityVerifier, roles RoleStore, cookieName string, logger *zap.Logger) *Evaluator {
	return &Evaluator{verifier: verifier, roles: roles, cookieName: cookieName, logger: logger}
}

// Require returns a fiber.Handler enforcing the given requirement. Failures
// map to exactly two outcomes: unauthorized (no usable credential) and
// forbidden (valid identity, insufficient authorization). Unexpected errors
// from the role store or the verifier's own infrastructure surface as a
// generic forbidden, never a 500 and never a retry.
func (e *Evaluator) Require(req Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		e.logger.Debug("authorization attempt",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()))

		token, ok := e.extractToken(c)
		if !ok {
			e.logger.Debug("credential missing", zap.String("path", c.Path()))
			return apperrors.NewUnauthorized("missing credentials")
		}

		identity, err := e.verifier.Verify(c.UserContext(), token)
		if err != nil || identity == nil {
			if errors.Is(err, ErrVerifyUnavailable) {
				e.logger.Error("identity verification failed", zap.String("path", c.Path()), zap.Error(err))
				return apperrors.NewForbidden("access denied")
			}
			e.logger.Debug("credential rejected", zap.String("path", c.Path()), zap.Error(err))
			return apperrors.NewUnauthorized("invalid credentials")
		}
		e.logger.Debug("identity resolved", zap.String("user_id", identity.ID))

		principal := &Principal{Identity: *identity}

		if req.Kind == RequirementNone {
			c.Locals(principalKey, principal)
			return c.Next()
		}

		role, err := e.roles.FindActiveRole(c.UserContext(), identity.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				e.logger.Info("authorization denied",
					zap.String("user_id", identity.ID),
					zap.String("reason", "no role assigned"))
				return apperrors.NewForbidden("no role assigned")
			}
			e.logger.Error("role lookup failed", zap.String("user_id", identity.ID), zap.Error(err))
			return apperrors.NewForbidden("access denied")
		}
		e.logger.Debug("role fetched",
			zap.String("user_id", identity.ID),
			zap.String("role", string(role.Role)),
			zap.Bool("active", role.IsActive))

		if !role.IsActive {
			e.logger.Info("authorization denied",
				zap.String("user_id", identity.ID),
				zap.String("reason", "role inactive"))
			return apperrors.NewForbidden("role inactive")
		}

		if !req.Satisfied(role) {
			e.logger.Info("authorization denied",
				zap.String("user_id", identity.ID),
				zap.String("role", string(role.Role)),
				zap.String("reason", "requirement not satisfied"))
			return apperrors.NewForbidden("insufficient role or permissions")
		}

		principal.Role = role
		c.Locals(principalKey, principal)
		e.logger.Debug("authorization granted",
			zap.String("user_id", identity.ID),
			zap.String("role", string(role.Role)))
		return c.Next()
	}
}

func (e *Evaluator) extractToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if e.cookieName != "" {
		if cookie := c.Cookies(e.cookieName); cookie != "" {
			return cookie, true
		}
	}
	return "", false
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
