package auth

import "github.com/spec-kit/inventory-service/internal/domain"

// RequirementKind discriminates the per-route requirement variants.
type RequirementKind int

const (
	// RequirementNone demands authentication only.
	RequirementNone RequirementKind = iota
	// RequirementMinimumRole demands a role at or above a hierarchy level.
	RequirementMinimumRole
	// RequirementRoleSet demands exact membership in a role list.
	RequirementRoleSet
	// RequirementPermissions demands an ANY or ALL permission-set test.
	RequirementPermissions
)

// PermissionMode selects how a permission list is evaluated.
type PermissionMode int

const (
	PermissionModeAny PermissionMode = iota
	PermissionModeAll
)

// Requirement is a route's declared authorization rule, registered as static
// metadata alongside the route and read by the evaluator at request time.
type Requirement struct {
	Kind        RequirementKind
	MinimumRole domain.Role
	Roles       []domain.Role
	Permissions []string
	Mode        PermissionMode
}

// RequireAuth demands a valid credential and nothing more.
func RequireAuth() Requirement {
	return Requirement{Kind: RequirementNone}
}

// RequireMinimumRole demands a role ranking at or above min.
func RequireMinimumRole(min domain.Role) Requirement {
	return Requirement{Kind: RequirementMinimumRole, MinimumRole: min}
}

// RequireRoles demands the caller's role be one of the listed values.
func RequireRoles(roles ...domain.Role) Requirement {
	return Requirement{Kind: RequirementRoleSet, Roles: roles}
}

// RequireAnyPermission demands at least one of the listed permissions.
func RequireAnyPermission(perms ...string) Requirement {
	return Requirement{Kind: RequirementPermissions, Permissions: perms, Mode: PermissionModeAny}
}

// RequireAllPermissions demands every listed permission.
func RequireAllPermissions(perms ...string) Requirement {
	return Requirement{Kind: RequirementPermissions, Permissions: perms, Mode: PermissionModeAll}
}

// Satisfied evaluates the requirement against an active role assignment.
// RequirementNone always passes; callers handle the missing-role case before
// calling this.
func (r Requirement) Satisfied(role *domain.UserRole) bool {
	switch r.Kind {
	case RequirementNone:
		return true
	case RequirementMinimumRole:
		return role.Role.AtLeast(r.MinimumRole)
	case RequirementRoleSet:
		for _, allowed := range r.Roles {
			if role.Role == allowed {
				return true
			}
		}
		return false
	case RequirementPermissions:
		if r.Mode == PermissionModeAll {
			for _, p := range r.Permissions {
				if !role.HasPermission(p) {
					return false
				}
			}
			return true
		}
		for _, p := range r.Permissions {
			if role.HasPermission(p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
