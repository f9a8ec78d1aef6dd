// Package access implements role-based permissions and city scoping for
// dashboard users and employees.
package access

import "github.com/nivaran-io/nivaran-ce/internal/models"

// Permission is an opaque tag from the closed vocabulary below.
type Permission string

// Scope permissions control which cities an actor can see.
const (
	PermissionAccessAllCities      Permission = "access:all_cities"
	PermissionAccessCityRestricted Permission = "access:city_restricted"
	PermissionAccessSecurity       Permission = "access:security"
)

// Capability permissions gate individual actions.
const (
	PermissionViewDashboard         Permission = "view:dashboard"
	PermissionViewIssueAnalytics    Permission = "view:issue_analytics"
	PermissionViewEmployees         Permission = "view:employees"
	PermissionViewReports           Permission = "view:reports"
	PermissionManageTicketsAll      Permission = "manage:tickets_all"
	PermissionManageTicketsAssigned Permission = "manage:tickets_assigned"
	PermissionManageEmployees       Permission = "manage:employees"
	PermissionManageUsers           Permission = "manage:users"
	PermissionManageRoles           Permission = "manage:roles"
	PermissionManageHolidays        Permission = "manage:holidays"
)

// AllPermissions is the closed vocabulary.
var AllPermissions = []Permission{
	PermissionAccessAllCities,
	PermissionAccessCityRestricted,
	PermissionAccessSecurity,
	PermissionViewDashboard,
	PermissionViewIssueAnalytics,
	PermissionViewEmployees,
	PermissionViewReports,
	PermissionManageTicketsAll,
	PermissionManageTicketsAssigned,
	PermissionManageEmployees,
	PermissionManageUsers,
	PermissionManageRoles,
	PermissionManageHolidays,
}

// Actor is a dashboard user or employee at evaluation time, constructed
// fresh per authenticated request and never mutated.
type Actor struct {
	ID   string
	Role string
	City string
}

// Engine resolves permissions and city scopes from an injected role table.
// The table is copied at construction; callers reloading roles at runtime
// build a fresh engine and swap it in.
type Engine struct {
	rolePermissions map[string][]Permission
}

// NewEngine creates an engine from a role-name to permission-list table.
func NewEngine(table map[string][]Permission) *Engine {
	perms := make(map[string][]Permission, len(table))
	for role, list := range table {
		cp := make([]Permission, len(list))
		copy(cp, list)
		perms[role] = cp
	}
	return &Engine{rolePermissions: perms}
}

// NewEngineFromRoles creates an engine from stored role records. Inactive
// roles are skipped.
func NewEngineFromRoles(roles []models.Role) *Engine {
	table := make(map[string][]Permission, len(roles))
	for _, r := range roles {
		if !r.IsActive {
			continue
		}
		list := make([]Permission, 0, len(r.Permissions))
		for _, p := range r.Permissions {
			list = append(list, Permission(p))
		}
		table[r.Name] = list
	}
	return &Engine{rolePermissions: table}
}

// DefaultRoleTable returns the built-in role assignments.
func DefaultRoleTable() map[string][]Permission {
	all := make([]Permission, len(AllPermissions))
	copy(all, AllPermissions)

	return map[string][]Permission{
		models.RoleSuperAdmin: all,
		models.RoleAdmin: {
			PermissionAccessAllCities,
			PermissionViewDashboard,
			PermissionViewIssueAnalytics,
			PermissionViewEmployees,
			PermissionViewReports,
			PermissionManageTicketsAll,
			PermissionManageEmployees,
			PermissionManageUsers,
			PermissionManageHolidays,
		},
		models.RoleHRManager: {
			PermissionAccessAllCities,
			PermissionViewDashboard,
			PermissionViewIssueAnalytics,
			PermissionViewEmployees,
			PermissionViewReports,
			PermissionManageTicketsAll,
			PermissionManageEmployees,
		},
		models.RoleCityHead: {
			PermissionAccessCityRestricted,
			PermissionViewDashboard,
			PermissionViewIssueAnalytics,
			PermissionViewEmployees,
			PermissionViewReports,
			PermissionManageTicketsAll,
		},
		models.RoleSupportAgent: {
			PermissionAccessCityRestricted,
			PermissionViewDashboard,
			PermissionManageTicketsAssigned,
		},
		models.RoleEmployee: {},
	}
}

// ResolvePermissions returns the permission set for a role. Unknown roles
// resolve to an empty set: deny by default.
func (e *Engine) ResolvePermissions(role string) []Permission {
	return e.rolePermissions[role]
}

// HasPermission reports whether the role holds the permission.
func (e *Engine) HasPermission(role string, permission Permission) bool {
	for _, p := range e.rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
