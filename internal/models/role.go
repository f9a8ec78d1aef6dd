package models

import "time"

// Role represents a dashboard role with its granted permissions.
// The permission vocabulary is defined in the access package; roles are
// loaded from configuration and treated as immutable within a session.
type Role struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Permissions []string  `json:"permissions" yaml:"permissions"`
	IsSystem    bool      `json:"is_system" yaml:"is_system"`
	IsActive    bool      `json:"is_active" yaml:"is_active"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"-"`
}

// Common role names.
const (
	RoleSuperAdmin   = "Super Admin"
	RoleAdmin        = "Admin"
	RoleHRManager    = "HR Manager"
	RoleCityHead     = "City Head"
	RoleSupportAgent = "Support Agent"
	RoleEmployee     = "Employee"
)
