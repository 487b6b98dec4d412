package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		Status:        string(user.Status),
		CreatedAt:     user.CreatedAt,
	}
}

// UpdateUserRequest applies partial profile changes.
type UpdateUserRequest struct {
	Name          *string `json:"name"`
	EmailVerified *bool   `json:"email_verified"`
}

// AssignRoleRequest sets a user's role and permission set.
type AssignRoleRequest struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// SetRoleActiveRequest toggles an assignment without discarding it.
type SetRoleActiveRequest struct {
	Active *bool `json:"active"`
}

// RoleResponse is the public view of a role assignment.
type RoleResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"is_active"`
	AssignedBy  string   `json:"assigned_by"`
}

// NewRoleResponse maps a domain role assignment.
func NewRoleResponse(role *domain.UserRole) RoleResponse {
	return RoleResponse{
		Role:        string(role.Role),
		Permissions: role.Permissions,
		IsActive:    role.IsActive,
		AssignedBy:  role.AssignedBy,
	}
}
