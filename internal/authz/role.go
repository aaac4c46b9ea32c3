package authz

import "fmt"

// Role is the system-wide role of a user account. Every user holds exactly
// one role at a time.
type Role string

const (
	RoleSuperAdmin   Role = "SUPERADMIN"
	RoleManagerAdmin Role = "MANAGER_ADMIN"
	RoleManager      Role = "MANAGER"
	RoleStandardUser Role = "STANDARD_USER"
	RoleNotActive    Role = "NOT_ACTIVE"
)

// Roles lists every system role.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleManagerAdmin, RoleManager, RoleStandardUser, RoleNotActive}
}

// MutableRoles lists the roles that may appear on either side of a role
// transition. SUPERADMIN is deliberately absent: no request can assign it,
// and superadmin accounts are guarded separately.
func MutableRoles() []Role {
	return []Role{RoleNotActive, RoleStandardUser, RoleManager, RoleManagerAdmin}
}

// ParseRole validates a raw role name.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleSuperAdmin, RoleManagerAdmin, RoleManager, RoleStandardUser, RoleNotActive:
		return Role(raw), nil
	}
	return "", fmt.Errorf("authz: unknown role %q", raw)
}

// ParseAssignableRole validates a role name supplied in a mutation request.
// SUPERADMIN is rejected here, which keeps any path that could assign it out
// of the codebase entirely.
func ParseAssignableRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleManagerAdmin, RoleManager, RoleStandardUser, RoleNotActive:
		return Role(raw), nil
	}
	return "", fmt.Errorf("authz: role %q cannot be assigned", raw)
}

func (r Role) String() string { return string(r) }
