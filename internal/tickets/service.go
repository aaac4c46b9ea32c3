package tickets

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
	"github.com/super0605/customer-service-platform-backend/jobs"
)

var (
	readLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermReadTickets, Kind: authz.TierGlobal, Field: "org_id"},
		{Permission: authz.PermReadTicketsOfRelatedOrg, Kind: authz.TierOrg, Field: "org_id"},
		{Permission: authz.PermReadTicketsIssued, Kind: authz.TierSelf, Field: "issuer_id", WithOrg: true, OrgField: "org_id"},
	}}
	createLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermCreateTicket, Kind: authz.TierGlobal},
		{Permission: authz.PermCreateTicketOfRelatedOrg, Kind: authz.TierOrg},
		{Permission: authz.PermCreateTicketOfRelatedLot, Kind: authz.TierSelf},
	}}
	updateLadder = authz.Ladder{Tiers: []authz.Tier{
		{Permission: authz.PermUpdateTickets, Kind: authz.TierGlobal, Field: "org_id"},
		{Permission: authz.PermUpdateTicketsOfRelatedOrg, Kind: authz.TierOrg, Field: "org_id"},
	}}
)

// Notifier enqueues ticket notifications.
type Notifier interface {
	EnqueueTicketCreated(ctx context.Context, payload jobs.TicketCreatedPayload) (*asynq.TaskInfo, error)
	EnqueueTicketUpdated(ctx context.Context, payload jobs.TicketUpdatedPayload) (*asynq.TaskInfo, error)
}

// Service orchestrates ticket operations. A ticket belongs to an org
// through its primary lot's complex.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	notifier Notifier
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo Repository) *Service {
	return &Service{logger: logger, repo: repo}
}

// WithNotifier enables background notifications on ticket mutations.
// Enqueueing is best effort and never fails the mutation.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// List returns tickets visible to the principal, narrowed by the filter.
// Holders of only the issued-tickets permission see their own tickets
// inside their own org.
func (s *Service) List(ctx context.Context, principal *authz.Principal, orgID *int64, filter ListFilter, page shared.Page) ([]Ticket, int, error) {
	scope, err := readLadder.Resolve(principal, orgID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, scope, filter, page)
}

// Get fetches one ticket inside the principal's read scope.
func (s *Service) Get(ctx context.Context, principal *authz.Principal, id int64) (*Ticket, error) {
	scope, err := readLadder.Resolve(principal, nil)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id, scope)
}

// Create inserts a ticket issued by the principal. The narrow tiers run a
// reachability check on the primary lot: the org tier requires a lot in a
// complex of the principal's org, the lot tier requires a lot the
// principal holds a role on. An unreachable lot reads as missing.
func (s *Service) Create(ctx context.Context, principal *authz.Principal, input CreateInput) (*Ticket, error) {
	tier, err := createLadder.Select(principal)
	if err != nil {
		return nil, err
	}
	if tier.Kind != authz.TierGlobal {
		if principal.OrgID == nil {
			return nil, &authz.PermissionDeniedError{Permission: createLadder.Tiers[0].Permission}
		}
		var reachable bool
		switch tier.Kind {
		case authz.TierOrg:
			reachable, err = s.repo.LotInOrg(ctx, input.PrimaryLotID, *principal.OrgID)
		case authz.TierSelf:
			reachable, err = s.repo.LotOfUser(ctx, input.PrimaryLotID, principal.ID)
		}
		if err != nil {
			return nil, err
		}
		if !reachable {
			return nil, shared.NotFound("Lot", input.PrimaryLotID)
		}
	}

	ticket, err := s.repo.Create(ctx, principal.ID, input)
	if err != nil {
		return nil, err
	}
	if principal.OrgID != nil {
		s.notifyCreated(ctx, *principal.OrgID, ticket)
	}
	return ticket, nil
}

// Update applies a partial update to a ticket inside the principal's
// update scope and notifies the issuer.
func (s *Service) Update(ctx context.Context, principal *authz.Principal, id int64, input UpdateInput) error {
	scope, err := updateLadder.Resolve(principal, nil)
	if err != nil {
		return err
	}
	ticket, err := s.repo.Update(ctx, id, scope, input)
	if err != nil {
		return err
	}
	s.notifyUpdated(ctx, ticket)
	return nil
}

func (s *Service) notifyCreated(ctx context.Context, orgID int64, ticket *Ticket) {
	if s.notifier == nil {
		return
	}
	email, err := s.repo.ManagerEmail(ctx, orgID)
	if err != nil || email == "" {
		return
	}
	payload := jobs.TicketCreatedPayload{
		TicketID:     ticket.ID,
		TicketType:   ticket.TicketType,
		Title:        ticket.Title,
		ManagerEmail: email,
	}
	if ticket.Description != nil {
		payload.Description = *ticket.Description
	}
	if _, err := s.notifier.EnqueueTicketCreated(ctx, payload); err != nil {
		s.logger.Warn("enqueue ticket created", slog.Int64("ticket_id", ticket.ID), slog.Any("error", err))
	}
}

func (s *Service) notifyUpdated(ctx context.Context, ticket *Ticket) {
	if s.notifier == nil {
		return
	}
	email, err := s.repo.UserEmail(ctx, ticket.IssuerID)
	if err != nil || email == "" {
		return
	}
	payload := jobs.TicketUpdatedPayload{
		TicketID:    ticket.ID,
		Title:       ticket.Title,
		IssuerEmail: email,
	}
	if _, err := s.notifier.EnqueueTicketUpdated(ctx, payload); err != nil {
		s.logger.Warn("enqueue ticket updated", slog.Int64("ticket_id", ticket.ID), slog.Any("error", err))
	}
}
