package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLevelOrdering(t *testing.T) {
	assert.Less(t, RoleStaff.Level(), RoleManager.Level())
	assert.Less(t, RoleManager.Level(), RoleAdmin.Level())
	assert.Equal(t, 0, Role("UNKNOWN").Level())
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleStaff))
	assert.True(t, RoleManager.AtLeast(RoleManager))
	assert.False(t, RoleStaff.AtLeast(RoleManager))
	assert.False(t, Role("UNKNOWN").AtLeast(RoleStaff))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleStaff.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("SUPERUSER").Valid())
	assert.False(t, Role("").Valid())
}

func TestUserRoleHasPermission(t *testing.T) {
	role := &UserRole{Permissions: []string{PermViewInventory, PermViewReports}}

	assert.True(t, role.HasPermission(PermViewInventory))
	assert.False(t, role.HasPermission(PermManageInventory))

	empty := &UserRole{}
	assert.False(t, empty.HasPermission(PermViewInventory))
}
