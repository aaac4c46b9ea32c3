package orgs

import (
	"context"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Read and update ladders for orgs. The narrow tier is the principal's
// own org, so the scoped column is the org's primary key.
var (
	readLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermReadOrgs, Kind: authz.TierGlobal, Field: "id"},
		{Permission: authz.PermReadOrg, Kind: authz.TierOrg, Field: "id"},
	}}
	updateLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermUpdateOrgs, Kind: authz.TierGlobal, Field: "id"},
		{Permission: authz.PermUpdateOrg, Kind: authz.TierOrg, Field: "id"},
	}}
)

// Service orchestrates org operations.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the orgs the principal may see. Superadmins see all of
// them, everyone else at most their own.
func (s *Service) List(ctx context.Context, principal *authz.Principal, page shared.Page) ([]Org, int, error) {
	scope, err := readLadder.Resolve(principal, nil)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, scope, page)
}

// Get fetches one org. Asking for a foreign org without the global read
// permission is denied; an org hidden by scope reads as missing.
func (s *Service) Get(ctx context.Context, principal *authz.Principal, id int64) (*Org, error) {
	scope, err := readLadder.Resolve(principal, &id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id, scope)
}

// Create inserts a new org.
func (s *Service) Create(ctx context.Context, principal *authz.Principal, input CreateInput) (*Org, error) {
	if err := principal.Security().EnsurePermission(authz.PermCreateOrg); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

// Update applies a partial update to an org the principal may touch.
func (s *Service) Update(ctx context.Context, principal *authz.Principal, id int64, input UpdateInput) error {
	scope, err := updateLadder.Resolve(principal, &id)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, scope, input)
}
