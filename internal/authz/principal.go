package authz

// Principal is the authenticated caller as loaded from storage: identity,
// tenant link, system role, and the flattened permissions of that role.
type Principal struct {
	ID          int64
	OrgID       *int64
	Role        Role
	Permissions PermissionSet
}

// Security returns a SecurityManager over the principal's permissions.
func (p *Principal) Security() *SecurityManager {
	return NewSecurityManager(p.Permissions)
}

// InOrg reports whether the principal belongs to the given org.
func (p *Principal) InOrg(orgID int64) bool {
	return p.OrgID != nil && *p.OrgID == orgID
}
