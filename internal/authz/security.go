package authz

import "fmt"

// PermissionDeniedError indicates the principal lacks a named permission.
// The name identifies which check failed, never which entities exist.
type PermissionDeniedError struct {
	Permission Permission
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("authz: permission denied: %s", e.Permission)
}

// SuperAdminProtectedError indicates an attempt to modify a superadmin
// account by anyone other than that superadmin.
type SuperAdminProtectedError struct{}

func (e *SuperAdminProtectedError) Error() string {
	return "authz: superadmin accounts cannot be modified by others"
}

// PermissionSet is a principal's effective permissions.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from a permission list.
func NewPermissionSet(perms []Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the permission.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// SecurityManager answers permission checks for one principal.
type SecurityManager struct {
	perms PermissionSet
}

// NewSecurityManager wraps the principal's permission set.
func NewSecurityManager(perms PermissionSet) *SecurityManager {
	return &SecurityManager{perms: perms}
}

// HasPermission reports whether the principal holds the permission.
func (m *SecurityManager) HasPermission(p Permission) bool {
	return m.perms.Has(p)
}

// EnsurePermission fails with PermissionDeniedError naming p unless held.
func (m *SecurityManager) EnsurePermission(p Permission) error {
	if !m.perms.Has(p) {
		return &PermissionDeniedError{Permission: p}
	}
	return nil
}

// EnsurePermissions requires every listed permission. The error names the
// first missing one.
func (m *SecurityManager) EnsurePermissions(perms []Permission) error {
	for _, p := range perms {
		if err := m.EnsurePermission(p); err != nil {
			return err
		}
	}
	return nil
}

// EnsureAtLeastOne requires any one of the listed permissions. The error
// names the first entry, which callers order from widest to narrowest.
// An empty list succeeds.
func (m *SecurityManager) EnsureAtLeastOne(perms []Permission) error {
	if len(perms) == 0 {
		return nil
	}
	for _, p := range perms {
		if m.perms.Has(p) {
			return nil
		}
	}
	return &PermissionDeniedError{Permission: perms[0]}
}
