package authz

// TierKind says what a ladder tier constrains access to.
type TierKind int

const (
	// TierGlobal grants access to every row of the resource.
	TierGlobal TierKind = iota
	// TierOrg grants access to rows belonging to the principal's org.
	TierOrg
	// TierSelf grants access to rows the principal personally owns.
	TierSelf
)

// Tier pairs a permission with the scope it unlocks. Field is the logical
// column the resulting constraint applies to; global tiers use it only when
// the caller narrows by an explicit org. A self tier with WithOrg set also
// requires the principal to belong to an org and pins OrgField to it.
// RequireOrg fails a self tier closed for org-less principals without
// adding an org constraint to the scope.
type Tier struct {
	Permission Permission
	Kind       TierKind
	Field      string
	WithOrg    bool
	RequireOrg bool
	OrgField   string
}

// Ladder is an ordered privilege ladder for one resource, widest tier
// first. Resolution takes the first tier the principal holds; holding none
// of them is denied with the widest tier's permission name, so responses
// never reveal which narrower grants exist.
type Ladder struct {
	Tiers []Tier
}

func (l Ladder) permissions() []Permission {
	perms := make([]Permission, len(l.Tiers))
	for i, t := range l.Tiers {
		perms[i] = t.Permission
	}
	return perms
}

// Select runs the gate and returns the first tier the principal holds.
// Callers that need tier-specific queries branch on the returned Kind.
func (l Ladder) Select(p *Principal) (Tier, error) {
	sec := p.Security()
	if err := sec.EnsureAtLeastOne(l.permissions()); err != nil {
		return Tier{}, err
	}
	for _, t := range l.Tiers {
		if sec.HasPermission(t.Permission) {
			return t, nil
		}
	}
	// Unreachable after the gate, but keep the failure shape consistent.
	return Tier{}, &PermissionDeniedError{Permission: l.Tiers[0].Permission}
}

// Resolve selects a tier and turns it into a row scope. requestedOrgID is
// the caller's explicit org filter, if any; it narrows a global tier and
// must match the principal's own org on an org tier. A principal on an org
// tier without an org fails closed.
func (l Ladder) Resolve(p *Principal, requestedOrgID *int64) (Scope, error) {
	tier, err := l.Select(p)
	if err != nil {
		return Scope{}, err
	}
	denied := &PermissionDeniedError{Permission: l.Tiers[0].Permission}

	switch tier.Kind {
	case TierGlobal:
		if requestedOrgID != nil {
			return ScopeOf(tier.Field, *requestedOrgID), nil
		}
		return Unrestricted(), nil
	case TierOrg:
		if p.OrgID == nil {
			return Scope{}, denied
		}
		if requestedOrgID != nil && *requestedOrgID != *p.OrgID {
			return Scope{}, denied
		}
		return ScopeOf(tier.Field, *p.OrgID), nil
	case TierSelf:
		if requestedOrgID != nil {
			if p.OrgID == nil || *requestedOrgID != *p.OrgID {
				return Scope{}, denied
			}
		}
		if (tier.WithOrg || tier.RequireOrg) && p.OrgID == nil {
			return Scope{}, denied
		}
		if tier.WithOrg {
			return ScopeOf(tier.OrgField, *p.OrgID).And(tier.Field, p.ID), nil
		}
		return ScopeOf(tier.Field, p.ID), nil
	}
	return Scope{}, denied
}
