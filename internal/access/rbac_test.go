package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaran-io/nivaran-ce/internal/models"
)

func TestAccessEngine(t *testing.T) {
	engine := NewEngine(DefaultRoleTable())

	t.Run("Super Admin holds every permission", func(t *testing.T) {
		for _, p := range AllPermissions {
			assert.True(t, engine.HasPermission(models.RoleSuperAdmin, p), "missing %s", p)
		}
	})

	t.Run("unknown role resolves to an empty set", func(t *testing.T) {
		assert.Empty(t, engine.ResolvePermissions("Intern"))
		assert.False(t, engine.HasPermission("Intern", PermissionViewDashboard))
		assert.False(t, engine.HasPermission("", PermissionViewDashboard))
	})

	t.Run("City Head cannot manage users or roles", func(t *testing.T) {
		assert.True(t, engine.HasPermission(models.RoleCityHead, PermissionManageTicketsAll))
		assert.False(t, engine.HasPermission(models.RoleCityHead, PermissionManageUsers))
		assert.False(t, engine.HasPermission(models.RoleCityHead, PermissionManageRoles))
	})
}

func TestResolveCityScope(t *testing.T) {
	engine := NewEngine(DefaultRoleTable())

	t.Run("restricted role is scoped to its own city", func(t *testing.T) {
		scope := engine.ResolveCityScope(Actor{ID: "u1", Role: models.RoleCityHead, City: "Bangalore"})
		assert.True(t, scope.Restricted)
		assert.Equal(t, map[string]struct{}{"Bangalore": {}}, scope.AllowedCities)
		assert.True(t, scope.Allows("Bangalore"))
		assert.False(t, scope.Allows("Mumbai"))
	})

	t.Run("all_cities role is unrestricted", func(t *testing.T) {
		scope := engine.ResolveCityScope(Actor{ID: "u2", Role: models.RoleAdmin, City: "Delhi"})
		assert.False(t, scope.Restricted)
		assert.True(t, scope.Allows("Mumbai"))
	})

	t.Run("all_cities supersedes city_restricted regardless of order", func(t *testing.T) {
		tables := []map[string][]Permission{
			{"Auditor": {PermissionAccessAllCities, PermissionAccessCityRestricted}},
			{"Auditor": {PermissionAccessCityRestricted, PermissionAccessAllCities}},
		}
		for _, table := range tables {
			scope := NewEngine(table).ResolveCityScope(Actor{ID: "u3", Role: "Auditor", City: "Pune"})
			assert.False(t, scope.Restricted)
		}
	})

	t.Run("restricted role without a city defaults open", func(t *testing.T) {
		scope := engine.ResolveCityScope(Actor{ID: "u4", Role: models.RoleCityHead})
		assert.False(t, scope.Restricted)
	})

	t.Run("no scope permissions defaults open", func(t *testing.T) {
		scope := engine.ResolveCityScope(Actor{ID: "u5", Role: models.RoleEmployee, City: "Chennai"})
		assert.False(t, scope.Restricted)
	})
}

func TestRequirePermission(t *testing.T) {
	engine := NewEngine(DefaultRoleTable())

	t.Run("allowed", func(t *testing.T) {
		actor := Actor{ID: "u1", Role: models.RoleAdmin}
		assert.NoError(t, engine.RequirePermission(&actor, PermissionManageUsers))
	})

	t.Run("denied", func(t *testing.T) {
		actor := Actor{ID: "u2", Role: models.RoleSupportAgent}
		err := engine.RequirePermission(&actor, PermissionManageUsers)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPermissionDenied))
		assert.False(t, errors.Is(err, ErrUnauthenticated))
	})

	t.Run("no actor", func(t *testing.T) {
		err := engine.RequirePermission(nil, PermissionViewDashboard)
		assert.True(t, errors.Is(err, ErrUnauthenticated))
	})
}

func TestNewEngineFromRoles(t *testing.T) {
	roles := []models.Role{
		{Name: "Reviewer", Permissions: []string{"view:reports"}, IsActive: true},
		{Name: "Disabled", Permissions: []string{"manage:users"}, IsActive: false},
	}
	engine := NewEngineFromRoles(roles)
	assert.True(t, engine.HasPermission("Reviewer", PermissionViewReports))
	assert.False(t, engine.HasPermission("Disabled", PermissionManageUsers))
}

func TestEngineCopiesTable(t *testing.T) {
	table := map[string][]Permission{"Reviewer": {PermissionViewReports}}
	engine := NewEngine(table)
	table["Reviewer"][0] = PermissionManageUsers
	assert.True(t, engine.HasPermission("Reviewer", PermissionViewReports))
}
