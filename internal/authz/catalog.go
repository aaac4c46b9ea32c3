package authz

// Grant assigns one permission to a set of roles.
type Grant struct {
	Permission  Permission
	Description string
	Roles       []Role
}

// Catalog is the immutable permission catalog. It is built once at process
// start and passed explicitly to whatever needs it (the seeder, tests);
// nothing mutates it afterwards.
type Catalog struct {
	grants []Grant
	byRole map[Role][]Permission
}

// NewCatalog builds the catalog with the seed grants.
func NewCatalog() *Catalog {
	c := &Catalog{grants: seedGrants()}
	c.byRole = make(map[Role][]Permission)
	for _, g := range c.grants {
		for _, r := range g.Roles {
			c.byRole[r] = append(c.byRole[r], g.Permission)
		}
	}
	return c
}

// Grants returns every grant in seed order.
func (c *Catalog) Grants() []Grant {
	out := make([]Grant, len(c.grants))
	copy(out, c.grants)
	return out
}

// PermissionsFor returns the flattened permission list of a role.
func (c *Catalog) PermissionsFor(role Role) []Permission {
	perms := c.byRole[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

func seedGrants() []Grant {
	all := []Role{RoleSuperAdmin, RoleManagerAdmin, RoleManager, RoleStandardUser}
	super := []Role{RoleSuperAdmin}
	admins := []Role{RoleSuperAdmin, RoleManagerAdmin}
	managers := []Role{RoleSuperAdmin, RoleManagerAdmin, RoleManager}

	return []Grant{
		{PermCreateManagerAdmin, "create manager admins", super},
		{PermCreateManagerAdminOfRelatedOrg, "create manager admins of related org", admins},
		{PermCreateManager, "create managers", super},
		{PermCreateManagerOfRelatedOrg, "create managers of related org", admins},
		{PermCreateStandardUser, "create standard users", super},
		{PermCreateStandardUserOfRelatedOrg, "create standard users of related org", managers},

		{PermCreateOrg, "create orgs", admins},
		{PermReadOrgs, "read other orgs", super},
		{PermReadOrg, "read current org", managers},
		{PermUpdateOrg, "update current org", admins},
		{PermUpdateOrgs, "update other orgs", super},

		{PermReadUsers, "read other users", super},
		{PermReadUsersOfRelatedOrg, "read other users of related org", managers},
		{PermReadUser, "read current user", managers},

		{PermUpdateNotActive, "update current not active personal details", managers},
		{PermUpdateNotActiveSystemRole, "update current not active system role", admins},
		{PermUpdateNotActives, "update other not actives personal details", nil},
		{PermUpdateNotActivesOfRelatedOrg, "update other not actives of related org personal details", nil},
		{PermUpdateNotActivesSystemRole, "update other not actives system role", super},
		{PermUpdateNotActivesOfRelatedOrgSysRole, "update other not actives of related org system role", admins},

		{PermUpdateStandardUser, "update current standard user personal details", managers},
		{PermUpdateStandardUserSystemRole, "update current standard user system role", admins},
		{PermUpdateStandardUsers, "update other standard users personal details", super},
		{PermUpdateStandardUsersOfRelatedOrg, "update other standard users of related org personal details", managers},
		{PermUpdateStandardUsersSystemRole, "update other standard users system role", super},
		{PermUpdateStandardUsersOfRelatedSysRole, "update other standard users of related org system role", admins},

		{PermUpdateManager, "update current manager personal details", managers},
		{PermUpdateManagerSystemRole, "update current manager system role", admins},
		{PermUpdateManagers, "update other managers personal details", nil},
		{PermUpdateManagersOfRelatedOrg, "update other managers of related org personal details", nil},
		{PermUpdateManagersSystemRole, "update other managers system role", super},
		{PermUpdateManagersOfRelatedOrgSysRole, "update other managers of related org system role", admins},

		{PermUpdateManagerAdmin, "update current manager admin personal details", admins},
		{PermUpdateManagerAdminSystemRole, "update current manager admin system role", admins},
		{PermUpdateManagerAdmins, "update other manager admins personal details", nil},
		{PermUpdateManagerAdminsOfRelatedOrg, "update other manager admins of related org personal details", nil},
		{PermUpdateManagerAdminsSystemRole, "update other manager admins system role", super},
		{PermUpdateManagerAdminsOfRelatedSysRole, "update other manager admins of related org system role", admins},

		{PermReadComplexes, "read complexes", super},
		{PermReadComplexesOfRelatedOrg, "read complexes of related org", managers},
		{PermCreateComplex, "create complex", super},
		{PermCreateComplexOfRelatedOrg, "create complex of related org", managers},
		{PermUpdateComplexes, "update complexes", super},
		{PermUpdateComplexesOfRelated, "update complexes of related org", managers},

		{PermReadLots, "read lots", super},
		{PermReadLotsOfRelatedOrg, "read lots of related org", managers},
		{PermCreateLot, "create lot", super},
		{PermCreateLotOfRelatedOrg, "create lot of related org", managers},
		{PermUpdateLots, "update lots", super},
		{PermUpdateLotsOfRelatedOrg, "update lots of related org", managers},

		{PermReadTickets, "read tickets", super},
		{PermReadTicketsOfRelatedOrg, "read tickets of related org", managers},
		{PermReadTicketsIssued, "read issued tickets", all},
		{PermCreateTicket, "create tickets", super},
		{PermCreateTicketOfRelatedOrg, "create tickets of related org", managers},
		{PermCreateTicketOfRelatedLot, "create tickets of related lot", all},
		{PermUpdateTickets, "update tickets", super},
		{PermUpdateTicketsOfRelatedOrg, "update tickets of related org", all},

		{PermReadTicketComments, "read ticket comments", super},
		{PermReadTicketCommentsOfRelatedOrg, "read ticket comments of related org", managers},
		{PermReadTicketCommentsIssued, "read ticket comments of issued tickets", all},
		{PermCreateTicketComment, "create ticket comments", super},
		{PermCreateTicketCommentOfRelated, "create ticket comments of related org", managers},
		{PermCreateTicketCommentIssued, "create ticket comments of issued tickets", all},
		{PermUpdateTicketComments, "update ticket comments", super},
		{PermUpdateTicketCommentsCreated, "update created ticket comments", all},
	}
}
