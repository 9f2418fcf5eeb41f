package authz

import (
	"fmt"
	"slices"
)

// Permission represents an authorized area of the client.
type Permission string

const (
	PermUsersManage       Permission = "users:manage"
	PermDepartmentsManage Permission = "departments:manage"
	PermAgentsManage      Permission = "agents:manage"
	PermCategoriesView    Permission = "categories:view"
	PermContentView       Permission = "content:view"
)

// RolePermissions maps roles to allowed areas.
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermUsersManage,
		PermDepartmentsManage,
		PermAgentsManage,
		PermCategoriesView,
		PermContentView,
	},
	RoleAdmin: {
		PermUsersManage,
		PermDepartmentsManage,
		PermAgentsManage,
		PermCategoriesView,
		PermContentView,
	},
	RoleFuncionario: {
		PermCategoriesView,
		PermContentView,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role Role, perm Permission) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	return slices.Contains(perms, perm)
}

// Capability is a fine-grained action scoped to an agent.
type Capability string

const (
	CapManageCategories Capability = "categories:manage"
	CapManageContent    Capability = "content:manage"
)

// PermissionRelation grants a user capabilities for a single agent.
type PermissionRelation struct {
	AgentID          string `json:"agentId"`
	ManageCategories bool   `json:"manageCategories"`
	ManageContent    bool   `json:"manageContent"`
}

func (p PermissionRelation) allows(cap Capability) bool {
	switch cap {
	case CapManageCategories:
		return p.ManageCategories
	case CapManageContent:
		return p.ManageContent
	default:
		return false
	}
}

// Decision is the outcome of an authorization check. Reason is set on
// denial and is meant to be shown to the user as-is.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(format string, args ...any) Decision {
	return Decision{Reason: fmt.Sprintf(format, args...)}
}

// Can reports whether role may perform cap on resources owned by agentID.
// SUPER_ADMIN bypasses relation checks entirely. Every other role needs an
// explicit relation for the agent with the capability flag set; absence of
// a matching relation is a denial.
func Can(role Role, agentID string, cap Capability, relations []PermissionRelation) Decision {
	if role == RoleSuperAdmin {
		return allow()
	}

	for _, rel := range relations {
		if rel.AgentID != agentID {
			continue
		}
		if rel.allows(cap) {
			return allow()
		}
		return deny("role %s has no %s grant for agent %s", role, cap, agentID)
	}

	return deny("no permissions recorded for agent %s", agentID)
}
