package lots

import (
	"context"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

var (
	readLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermReadLots, Kind: authz.TierGlobal, Field: "org_id"},
		{Permission: authz.PermReadLotsOfRelatedOrg, Kind: authz.TierOrg, Field: "org_id"},
	}}
	createLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermCreateLot, Kind: authz.TierGlobal, Field: "org_id"},
		{Permission: authz.PermCreateLotOfRelatedOrg, Kind: authz.TierOrg, Field: "org_id"},
	}}
	updateLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermUpdateLots, Kind: authz.TierGlobal, Field: "org_id"},
		{Permission: authz.PermUpdateLotsOfRelatedOrg, Kind: authz.TierOrg, Field: "org_id"},
	}}
)

// Service orchestrates lot operations. A lot belongs to an org through
// its complex, so create resolves the target complex's org first.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns lots visible to the principal, optionally narrowed to one
// org or one complex.
func (s *Service) List(ctx context.Context, principal *authz.Principal, orgID, complexID *int64, page shared.Page) ([]Lot, int, error) {
	scope, err := readLadder.Resolve(principal, orgID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, scope, complexID, page)
}

// Get fetches one lot inside the principal's read scope.
func (s *Service) Get(ctx context.Context, principal *authz.Principal, id int64) (*Lot, error) {
	scope, err := readLadder.Resolve(principal, nil)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id, scope)
}

// Create inserts a lot. The org owning the target complex acts as the
// requested org: holders of the narrow permission may only create lots
// in complexes of their own org. A missing complex surfaces as not found
// before any permission decision.
func (s *Service) Create(ctx context.Context, principal *authz.Principal, input CreateInput) (*Lot, error) {
	if _, err := createLadder.Select(principal); err != nil {
		return nil, err
	}
	orgID, err := s.repo.ComplexOrg(ctx, input.ComplexID)
	if err != nil {
		return nil, err
	}
	if _, err := createLadder.Resolve(principal, &orgID); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

// Update applies a partial update to a lot inside the principal's update
// scope.
func (s *Service) Update(ctx context.Context, principal *authz.Principal, id int64, input UpdateInput) error {
	scope, err := updateLadder.Resolve(principal, nil)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, scope, input)
}
