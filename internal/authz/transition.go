package authz

// TransitionInput describes a proposed mutation of one user by another
// (or by themselves). NewRole is nil when the request leaves the system
// role untouched; a NewRole equal to OldRole counts as untouched too.
type TransitionInput struct {
	ActorID        int64
	ActorOrgID     *int64
	TargetID       int64
	TargetOrgID    *int64
	OldRole        Role
	NewRole        *Role
	DetailsChanged bool
}

type transitionBucket struct {
	role Role

	self  Permission
	org   Permission
	other Permission

	selfRole  Permission
	orgRole   Permission
	otherRole Permission
}

var transitionBuckets = []transitionBucket{
	{
		role:      RoleNotActive,
		self:      PermUpdateNotActive,
		org:       PermUpdateNotActivesOfRelatedOrg,
		other:     PermUpdateNotActives,
		selfRole:  PermUpdateNotActiveSystemRole,
		orgRole:   PermUpdateNotActivesOfRelatedOrgSysRole,
		otherRole: PermUpdateNotActivesSystemRole,
	},
	{
		role:      RoleStandardUser,
		self:      PermUpdateStandardUser,
		org:       PermUpdateStandardUsersOfRelatedOrg,
		other:     PermUpdateStandardUsers,
		selfRole:  PermUpdateStandardUserSystemRole,
		orgRole:   PermUpdateStandardUsersOfRelatedSysRole,
		otherRole: PermUpdateStandardUsersSystemRole,
	},
	{
		role:      RoleManager,
		self:      PermUpdateManager,
		org:       PermUpdateManagersOfRelatedOrg,
		other:     PermUpdateManagers,
		selfRole:  PermUpdateManagerSystemRole,
		orgRole:   PermUpdateManagersOfRelatedOrgSysRole,
		otherRole: PermUpdateManagersSystemRole,
	},
	{
		role:      RoleManagerAdmin,
		self:      PermUpdateManagerAdmin,
		org:       PermUpdateManagerAdminsOfRelatedOrg,
		other:     PermUpdateManagerAdmins,
		selfRole:  PermUpdateManagerAdminSystemRole,
		orgRole:   PermUpdateManagerAdminsOfRelatedSysRole,
		otherRole: PermUpdateManagerAdminsSystemRole,
	},
}

// UpdateUserGate is the coarse entry check for the user update endpoint:
// the caller must hold at least one user-update permission before the
// target is even looked up.
func UpdateUserGate() []Permission {
	perms := make([]Permission, 0, len(transitionBuckets)*6)
	for _, b := range transitionBuckets {
		perms = append(perms, b.self, b.selfRole, b.other, b.otherRole, b.org, b.orgRole)
	}
	return perms
}

// RequiredPermissions computes every permission a mutation needs; all of
// them must be held. Changing details requires the detail permission of
// each role bucket the transition touches (the old role and, when the role
// changes, the new one); changing the role requires the matching
// _SYSTEM_ROLE permissions. Superadmin targets are refused outright unless
// the actor is that superadmin, before any permission is consulted.
func RequiredPermissions(in TransitionInput) ([]Permission, error) {
	if in.OldRole == RoleSuperAdmin && in.ActorID != in.TargetID {
		return nil, &SuperAdminProtectedError{}
	}

	selfUpdate := in.ActorID == in.TargetID
	sameOrg := in.ActorOrgID != nil && in.TargetOrgID != nil && *in.ActorOrgID == *in.TargetOrgID
	roleChanged := in.NewRole != nil && *in.NewRole != in.OldRole

	touches := func(r Role) bool {
		return in.OldRole == r || (roleChanged && *in.NewRole == r)
	}

	var perms []Permission
	if in.DetailsChanged {
		for _, b := range transitionBuckets {
			if !touches(b.role) {
				continue
			}
			switch {
			case selfUpdate:
				perms = append(perms, b.self)
			case sameOrg:
				perms = append(perms, b.org)
			default:
				perms = append(perms, b.other)
			}
		}
	}
	if roleChanged {
		for _, b := range transitionBuckets {
			if !touches(b.role) {
				continue
			}
			switch {
			case selfUpdate:
				perms = append(perms, b.selfRole)
			case sameOrg:
				perms = append(perms, b.orgRole)
			default:
				perms = append(perms, b.otherRole)
			}
		}
	}
	return perms, nil
}
