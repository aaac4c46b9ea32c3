package tickets

import (
	"context"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

var (
	commentReadLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermReadTicketComments, Kind: authz.TierGlobal, Field: "org_id"},
		{Permission: authz.PermReadTicketCommentsOfRelatedOrg, Kind: authz.TierOrg, Field: "org_id"},
		{Permission: authz.PermReadTicketCommentsIssued, Kind: authz.TierSelf, Field: "issuer_id", RequireOrg: true},
	}}
	commentCreateLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermCreateTicketComment, Kind: authz.TierGlobal},
		{Permission: authz.PermCreateTicketCommentOfRelated, Kind: authz.TierOrg},
		{Permission: authz.PermCreateTicketCommentIssued, Kind: authz.TierSelf},
	}}
	commentUpdateLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermUpdateTicketComments, Kind: authz.TierGlobal, Field: "commenter_id"},
		{Permission: authz.PermUpdateTicketCommentsCreated, Kind: authz.TierSelf, Field: "commenter_id"},
	}}
)

// CommentService orchestrates ticket comment operations. The issued tier
// covers comments on tickets the principal issued; the created tier
// covers comments the principal wrote.
type CommentService struct {
	repo CommentRepository
}

// NewCommentService constructs a CommentService.
func NewCommentService(repo CommentRepository) *CommentService {
	return &CommentService{repo: repo}
}

// ListComments returns the comments of one ticket visible to the
// principal.
func (s *CommentService) ListComments(ctx context.Context, principal *authz.Principal, ticketID int64, page shared.Page) ([]Comment, int, error) {
	scope, err := commentReadLadder.Resolve(principal, nil)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListComments(ctx, ticketID, scope, page)
}

// GetComment fetches one comment inside the principal's read scope.
func (s *CommentService) GetComment(ctx context.Context, principal *authz.Principal, id int64) (*Comment, error) {
	scope, err := commentReadLadder.Resolve(principal, nil)
	if err != nil {
		return nil, err
	}
	return s.repo.FindCommentByID(ctx, id, scope)
}

// CreateComment inserts a comment written by the principal. The narrow
// tiers run a reachability check on the target ticket: the org tier
// requires a ticket of the principal's org, the issued tier a ticket the
// principal issued. An unreachable ticket reads as missing.
func (s *CommentService) CreateComment(ctx context.Context, principal *authz.Principal, input CommentCreateInput) (*Comment, error) {
	tier, err := commentCreateLadder.Select(principal)
	if err != nil {
		return nil, err
	}
	if tier.Kind != authz.TierGlobal {
		if principal.OrgID == nil {
			return nil, &authz.PermissionDeniedError{Permission: commentCreateLadder.Tiers[0].Permission}
		}
		var reachable bool
		switch tier.Kind {
		case authz.TierOrg:
			reachable, err = s.repo.TicketInOrg(ctx, input.TicketID, *principal.OrgID)
		case authz.TierSelf:
			reachable, err = s.repo.TicketIssuedBy(ctx, input.TicketID, principal.ID)
		}
		if err != nil {
			return nil, err
		}
		if !reachable {
			return nil, shared.NotFound("Ticket", input.TicketID)
		}
	}
	return s.repo.CreateComment(ctx, principal.ID, input)
}

// UpdateComment applies a partial update to a comment inside the
// principal's update scope. Without the global permission only the
// comment's author can touch it.
func (s *CommentService) UpdateComment(ctx context.Context, principal *authz.Principal, id int64, input CommentUpdateInput) error {
	scope, err := commentUpdateLadder.Resolve(principal, nil)
	if err != nil {
		return err
	}
	return s.repo.UpdateComment(ctx, id, scope, input)
}
