package authz

// Permission identifies one granted capability. Names come from the seed
// catalog and are compared only by exact equality.
type Permission string

// Org permissions.
const (
	PermCreateOrg  Permission = "CREATE_ORG"
	PermReadOrgs   Permission = "READ_ORGS"
	PermReadOrg    Permission = "READ_ORG"
	PermUpdateOrgs Permission = "UPDATE_ORGS"
	PermUpdateOrg  Permission = "UPDATE_ORG"
)

// Complex permissions.
const (
	PermReadComplexes             Permission = "READ_COMPLEXES"
	PermReadComplexesOfRelatedOrg Permission = "READ_COMPLEXES_OF_RELATED_ORG"
	PermCreateComplex             Permission = "CREATE_COMPLEX"
	PermCreateComplexOfRelatedOrg Permission = "CREATE_COMPLEX_OF_RELATED_ORG"
	PermUpdateComplexes           Permission = "UPDATE_COMPLEXES"
	PermUpdateComplexesOfRelated  Permission = "UPDATE_COMPLEXES_OF_RELATED_ORG"
)

// Lot permissions.
const (
	PermReadLots               Permission = "READ_LOTS"
	PermReadLotsOfRelatedOrg   Permission = "READ_LOTS_OF_RELATED_ORG"
	PermCreateLot              Permission = "CREATE_LOT"
	PermCreateLotOfRelatedOrg  Permission = "CREATE_LOT_OF_RELATED_ORG"
	PermUpdateLots             Permission = "UPDATE_LOTS"
	PermUpdateLotsOfRelatedOrg Permission = "UPDATE_LOTS_OF_RELATED_ORG"
)

// Ticket permissions.
const (
	PermReadTickets               Permission = "READ_TICKETS"
	PermReadTicketsOfRelatedOrg   Permission = "READ_TICKETS_OF_RELATED_ORG"
	PermReadTicketsIssued         Permission = "READ_TICKETS_ISSUED"
	PermCreateTicket              Permission = "CREATE_TICKET"
	PermCreateTicketOfRelatedOrg  Permission = "CREATE_TICKET_OF_RELATED_ORG"
	PermCreateTicketOfRelatedLot  Permission = "CREATE_TICKET_OF_RELATED_LOT"
	PermUpdateTickets             Permission = "UPDATE_TICKETS"
	PermUpdateTicketsOfRelatedOrg Permission = "UPDATE_TICKETS_OF_RELATED_ORG"
)

// Ticket comment permissions.
const (
	PermReadTicketComments             Permission = "READ_TICKET_COMMENTS"
	PermReadTicketCommentsOfRelatedOrg Permission = "READ_TICKET_COMMENTS_OF_RELATED_ORG"
	PermReadTicketCommentsIssued       Permission = "READ_TICKET_COMMENTS_ISSUED"
	PermCreateTicketComment            Permission = "CREATE_TICKET_COMMENT"
	PermCreateTicketCommentOfRelated   Permission = "CREATE_TICKET_COMMENT_OF_RELATED_ORG"
	PermCreateTicketCommentIssued      Permission = "CREATE_TICKET_COMMENT_ISSUED"
	PermUpdateTicketComments           Permission = "UPDATE_TICKET_COMMENTS"
	PermUpdateTicketCommentsCreated    Permission = "UPDATE_TICKET_COMMENTS_CREATED"
)

// User read/create permissions.
const (
	PermReadUsers             Permission = "READ_USERS"
	PermReadUsersOfRelatedOrg Permission = "READ_USERS_OF_RELATED_ORG"
	PermReadUser              Permission = "READ_USER"

	PermCreateManagerAdmin             Permission = "CREATE_MANAGER_ADMIN"
	PermCreateManagerAdminOfRelatedOrg Permission = "CREATE_MANAGER_ADMIN_OF_RELATED_ORG"
	PermCreateManager                  Permission = "CREATE_MANAGER"
	PermCreateManagerOfRelatedOrg      Permission = "CREATE_MANAGER_OF_RELATED_ORG"
	PermCreateStandardUser             Permission = "CREATE_STANDARD_USER"
	PermCreateStandardUserOfRelatedOrg Permission = "CREATE_STANDARD_USER_OF_RELATED_ORG"
)

// User update permissions. Each mutable role has six variants: personal
// details vs system role, crossed with self / related-org / global reach.
const (
	PermUpdateNotActive                      Permission = "UPDATE_NOT_ACTIVE"
	PermUpdateNotActiveSystemRole            Permission = "UPDATE_NOT_ACTIVE_SYSTEM_ROLE"
	PermUpdateNotActives                     Permission = "UPDATE_NOT_ACTIVES"
	PermUpdateNotActivesSystemRole           Permission = "UPDATE_NOT_ACTIVES_SYSTEM_ROLE"
	PermUpdateNotActivesOfRelatedOrg         Permission = "UPDATE_NOT_ACTIVES_OF_RELATED_ORG"
	PermUpdateNotActivesOfRelatedOrgSysRole  Permission = "UPDATE_NOT_ACTIVES_OF_RELATED_ORG_SYSTEM_ROLE"
	PermUpdateStandardUser                   Permission = "UPDATE_STANDARD_USER"
	PermUpdateStandardUserSystemRole         Permission = "UPDATE_STANDARD_USER_SYSTEM_ROLE"
	PermUpdateStandardUsers                  Permission = "UPDATE_STANDARD_USERS"
	PermUpdateStandardUsersSystemRole        Permission = "UPDATE_STANDARD_USERS_SYSTEM_ROLE"
	PermUpdateStandardUsersOfRelatedOrg      Permission = "UPDATE_STANDARD_USERS_OF_RELATED_ORG"
	PermUpdateStandardUsersOfRelatedSysRole  Permission = "UPDATE_STANDARD_USERS_OF_RELATED_ORG_SYSTEM_ROLE"
	PermUpdateManager                        Permission = "UPDATE_MANAGER"
	PermUpdateManagerSystemRole              Permission = "UPDATE_MANAGER_SYSTEM_ROLE"
	PermUpdateManagers                       Permission = "UPDATE_MANAGERS"
	PermUpdateManagersSystemRole             Permission = "UPDATE_MANAGERS_SYSTEM_ROLE"
	PermUpdateManagersOfRelatedOrg           Permission = "UPDATE_MANAGERS_OF_RELATED_ORG"
	PermUpdateManagersOfRelatedOrgSysRole    Permission = "UPDATE_MANAGERS_OF_RELATED_ORG_SYSTEM_ROLE"
	PermUpdateManagerAdmin                   Permission = "UPDATE_MANAGER_ADMIN"
	PermUpdateManagerAdminSystemRole         Permission = "UPDATE_MANAGER_ADMIN_SYSTEM_ROLE"
	PermUpdateManagerAdmins                  Permission = "UPDATE_MANAGER_ADMINS"
	PermUpdateManagerAdminsSystemRole        Permission = "UPDATE_MANAGER_ADMINS_SYSTEM_ROLE"
	PermUpdateManagerAdminsOfRelatedOrg      Permission = "UPDATE_MANAGER_ADMINS_OF_RELATED_ORG"
	PermUpdateManagerAdminsOfRelatedSysRole  Permission = "UPDATE_MANAGER_ADMINS_OF_RELATED_ORG_SYSTEM_ROLE"
)

func (p Permission) String() string { return string(p) }
