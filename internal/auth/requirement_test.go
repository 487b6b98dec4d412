package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/inventory-service/internal/domain"
)

func activeRole(role domain.Role, perms ...string) *domain.UserRole {
	return &domain.UserRole{
		UserID:      "user-1",
		Role:        role,
		Permissions: perms,
		IsActive:    true,
	}
}

func TestRequirementMinimumRoleHierarchy(t *testing.T) {
	tests := []struct {
		name     string
		held     domain.Role
		required domain.Role
		want     bool
	}{
		{"staff meets staff", domain.RoleStaff, domain.RoleStaff, true},
		{"staff below manager", domain.RoleStaff, domain.RoleManager, false},
		{"staff below admin", domain.RoleStaff, domain.RoleAdmin, false},
		{"manager meets staff", domain.RoleManager, domain.RoleStaff, true},
		{"manager meets manager", domain.RoleManager, domain.RoleManager, true},
		{"manager below admin", domain.RoleManager, domain.RoleAdmin, false},
		{"admin meets staff", domain.RoleAdmin, domain.RoleStaff, true},
		{"admin meets manager", domain.RoleAdmin, domain.RoleManager, true},
		{"admin meets admin", domain.RoleAdmin, domain.RoleAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RequireMinimumRole(tt.required)
			assert.Equal(t, tt.want, req.Satisfied(activeRole(tt.held)))
		})
	}
}

func TestRequirementRoleSet(t *testing.T) {
	req := RequireRoles(domain.RoleAdmin, domain.RoleManager)

	assert.True(t, req.Satisfied(activeRole(domain.RoleAdmin)))
	assert.True(t, req.Satisfied(activeRole(domain.RoleManager)))
	assert.False(t, req.Satisfied(activeRole(domain.RoleStaff)))
}

func TestRequirementPermissionAny(t *testing.T) {
	req := RequireAnyPermission(domain.PermViewInventory, domain.PermManageInventory)

	assert.True(t, req.Satisfied(activeRole(domain.RoleManager, domain.PermViewInventory)))
	assert.True(t, req.Satisfied(activeRole(domain.RoleStaff, domain.PermManageInventory)))
	assert.True(t, req.Satisfied(activeRole(domain.RoleStaff, domain.PermViewInventory, domain.PermManageInventory)))
	assert.False(t, req.Satisfied(activeRole(domain.RoleAdmin, domain.PermViewReports)))
	assert.False(t, req.Satisfied(activeRole(domain.RoleAdmin)))
}

func TestRequirementPermissionAll(t *testing.T) {
	req := RequireAllPermissions(domain.PermViewInventory, domain.PermManageInventory)

	// holding only one of two required permissions is not enough
	assert.False(t, req.Satisfied(activeRole(domain.RoleManager, domain.PermViewInventory)))
	assert.True(t, req.Satisfied(activeRole(domain.RoleStaff, domain.PermViewInventory, domain.PermManageInventory)))
	assert.True(t, req.Satisfied(activeRole(domain.RoleStaff,
		domain.PermViewInventory, domain.PermManageInventory, domain.PermViewReports)))
	assert.False(t, req.Satisfied(activeRole(domain.RoleAdmin)))
}

func TestRequirementPermissionsIgnoreHierarchy(t *testing.T) {
	// an ADMIN without the permission token still fails a permission check
	req := RequireAllPermissions(domain.PermApproveOrders)
	assert.False(t, req.Satisfied(activeRole(domain.RoleAdmin)))
	assert.True(t, req.Satisfied(activeRole(domain.RoleStaff, domain.PermApproveOrders)))
}

func TestRequirementNoneAlwaysPasses(t *testing.T) {
	req := RequireAuth()
	assert.True(t, req.Satisfied(activeRole(domain.RoleStaff)))
}
