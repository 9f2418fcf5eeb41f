package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name     string
		id       int
		expected Role
	}{
		{"super admin", 1, RoleSuperAdmin},
		{"admin", 2, RoleAdmin},
		{"funcionario", 3, RoleFuncionario},
		{"zero", 0, RoleUnknown},
		{"out of range", 42, RoleUnknown},
		{"negative", -1, RoleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseRole(tt.id))
		})
	}
}

func TestHasPermission(t *testing.T) {
	t.Run("funcionario cannot manage users", func(t *testing.T) {
		assert.False(t, HasPermission(RoleFuncionario, PermUsersManage))
	})

	t.Run("funcionario can view categories", func(t *testing.T) {
		assert.True(t, HasPermission(RoleFuncionario, PermCategoriesView))
	})

	t.Run("admin can manage departments", func(t *testing.T) {
		assert.True(t, HasPermission(RoleAdmin, PermDepartmentsManage))
	})

	t.Run("unknown role has nothing", func(t *testing.T) {
		assert.False(t, HasPermission(RoleUnknown, PermCategoriesView))
	})
}

func TestCan(t *testing.T) {
	relations := []PermissionRelation{
		{AgentID: "agent-1", ManageCategories: true},
		{AgentID: "agent-2", ManageContent: true},
	}

	t.Run("super admin bypasses relations entirely", func(t *testing.T) {
		decision := Can(RoleSuperAdmin, "agent-9", CapManageCategories, nil)
		assert.True(t, decision.Allowed)
		assert.Empty(t, decision.Reason)
	})

	t.Run("explicit grant allows", func(t *testing.T) {
		decision := Can(RoleFuncionario, "agent-1", CapManageCategories, relations)
		assert.True(t, decision.Allowed)
	})

	t.Run("relation without the capability denies with reason", func(t *testing.T) {
		decision := Can(RoleFuncionario, "agent-2", CapManageCategories, relations)
		assert.False(t, decision.Allowed)
		assert.Contains(t, decision.Reason, "agent-2")
	})

	t.Run("no relation for the agent denies", func(t *testing.T) {
		decision := Can(RoleAdmin, "agent-9", CapManageContent, relations)
		assert.False(t, decision.Allowed)
		assert.Contains(t, decision.Reason, "no permissions recorded")
	})

	t.Run("deny by default with empty relations", func(t *testing.T) {
		for _, role := range []Role{RoleAdmin, RoleFuncionario, RoleUnknown} {
			for _, cap := range []Capability{CapManageCategories, CapManageContent} {
				decision := Can(role, "agent-1", cap, nil)
				assert.False(t, decision.Allowed, "role %s cap %s", role, cap)
				assert.NotEmpty(t, decision.Reason)
			}
		}
	})

	t.Run("unknown capability never allowed", func(t *testing.T) {
		decision := Can(RoleFuncionario, "agent-1", Capability("reports:manage"), relations)
		assert.False(t, decision.Allowed)
	})
}
