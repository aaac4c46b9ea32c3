package complexes

import (
	"context"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

var (
	readLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermReadComplexes, Kind: authz.TierGlobal, Field: "org_id"},
		{Permission: authz.PermReadComplexesOfRelatedOrg, Kind: authz.TierOrg, Field: "org_id"},
	}}
	createLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermCreateComplex, Kind: authz.TierGlobal, Field: "org_id"},
		{Permission: authz.PermCreateComplexOfRelatedOrg, Kind: authz.TierOrg, Field: "org_id"},
	}}
	updateLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermUpdateComplexes, Kind: authz.TierGlobal, Field: "org_id"},
		{Permission: authz.PermUpdateComplexesOfRelated, Kind: authz.TierOrg, Field: "org_id"},
	}}
)

// Service orchestrates complex operations.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns complexes visible to the principal, optionally narrowed to
// one org. An org filter conflicting with the principal's own org is
// denied, not silently emptied.
func (s *Service) List(ctx context.Context, principal *authz.Principal, orgID *int64, page shared.Page) ([]Complex, int, error) {
	scope, err := readLadder.Resolve(principal, orgID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, scope, page)
}

// Get fetches one complex inside the principal's read scope.
func (s *Service) Get(ctx context.Context, principal *authz.Principal, id int64) (*Complex, error) {
	scope, err := readLadder.Resolve(principal, nil)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id, scope)
}

// Create inserts a complex. The target org of the new complex acts as the
// requested org: holders of the narrow permission may only create inside
// their own org.
func (s *Service) Create(ctx context.Context, principal *authz.Principal, input CreateInput) (*Complex, error) {
	if _, err := createLadder.Resolve(principal, &input.OrgID); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

// Update applies a partial update to a complex inside the principal's
// update scope.
func (s *Service) Update(ctx context.Context, principal *authz.Principal, id int64, input UpdateInput) error {
	scope, err := updateLadder.Resolve(principal, nil)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, scope, input)
}
