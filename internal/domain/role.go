package domain

import "time"

// Role enumerates the fixed operator hierarchy.
type Role string

const (
	RoleStaff   Role = "STAFF"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// Level returns the numeric rank of a role. Unknown roles rank below STAFF.
func (r Role) Level() int {
	switch r {
	case RoleStaff:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r.Level() > 0
}

// AtLeast reports whether the role ranks at or above the given minimum.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level()
}

// Permission tokens granted independently of the role hierarchy.
const (
	PermViewInventory   = "VIEW_INVENTORY"
	PermManageInventory = "MANAGE_INVENTORY"
	PermViewReports     = "VIEW_REPORTS"
	PermManageUsers     = "MANAGE_USERS"
	PermManageOrders    = "MANAGE_ORDERS"
	PermApproveOrders   = "APPROVE_ORDERS"
)

// UserRole is a user's role assignment. A user has at most one active
// assignment; a user without one holds no permissions at all.
type UserRole struct {
	ID          string
	UserID      string
	Role        Role
	Permissions []string
	IsActive    bool
	AssignedBy  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// HasPermission reports membership of a single permission token.
func (ur *UserRole) HasPermission(perm string) bool {
	for _, p := range ur.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
