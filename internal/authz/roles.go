// Package authz holds the role model and the pure authorization predicates
// layered on top of it. Decisions here are synchronous and side-effect
// free so callers can re-evaluate them on every action attempt.
package authz

// Role is the coarse access tier. The numeric id is the canonical
// identifier; display names are cosmetic and never consulted for
// decisions.
type Role int

const (
	RoleUnknown     Role = 0
	RoleSuperAdmin  Role = 1
	RoleAdmin       Role = 2
	RoleFuncionario Role = 3
)

// ParseRole maps a backend role id to a Role. Ids outside the fixed set
// resolve to RoleUnknown, which holds no permissions.
func ParseRole(id int) Role {
	switch Role(id) {
	case RoleSuperAdmin, RoleAdmin, RoleFuncionario:
		return Role(id)
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "SUPER_ADMIN"
	case RoleAdmin:
		return "ADMIN"
	case RoleFuncionario:
		return "FUNCIONARIO"
	default:
		return "UNKNOWN"
	}
}
