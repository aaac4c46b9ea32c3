package users

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/super0605/customer-service-platform-backend/internal/auth"
	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
	"github.com/super0605/customer-service-platform-backend/jobs"
)

var listLadder = authz.Ladder{Tiers: []authz.Tier{
	{Permission: authz.PermReadUsers, Kind: authz.TierGlobal, Field: "org_id"},
	{Permission: authz.PermReadUsersOfRelatedOrg, Kind: authz.TierOrg, Field: "org_id"},
}}

// createGate is the coarse entry check for user creation; the role-specific
// permission is checked once the requested role is known.
var createGate = []authz.Permission{
	authz.PermCreateManagerAdmin, authz.PermCreateManagerAdminOfRelatedOrg,
	authz.PermCreateManager, authz.PermCreateManagerOfRelatedOrg,
	authz.PermCreateStandardUser, authz.PermCreateStandardUserOfRelatedOrg,
}

// Notifier enqueues user notifications.
type Notifier interface {
	EnqueueUserWelcome(ctx context.Context, payload jobs.UserWelcomePayload) (*asynq.TaskInfo, error)
}

// Service orchestrates user operations.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	notifier Notifier
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo Repository) *Service {
	return &Service{logger: logger, repo: repo}
}

// WithNotifier enables welcome emails for new users. Enqueueing is best
// effort and never fails the mutation.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// List returns users visible to the principal, optionally narrowed to one
// org. An org filter conflicting with the principal's own org is denied.
func (s *Service) List(ctx context.Context, principal *authz.Principal, orgID *int64, page shared.Page) ([]User, int, error) {
	scope, err := listLadder.Resolve(principal, orgID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, scope, page)
}

// Get fetches one user. Unlike the list ladder the single-user check is
// target dependent: READ_USERS reads anyone, READ_USER reads the caller's
// own record, READ_USERS_OF_RELATED_ORG reads inside the caller's org.
// A caller with only an org-tier grant and no org sees every target as
// missing.
func (s *Service) Get(ctx context.Context, principal *authz.Principal, id int64) (*User, error) {
	sec := principal.Security()
	var scope authz.Scope
	switch {
	case sec.HasPermission(authz.PermReadUsers):
		scope = authz.Unrestricted()
	case principal.ID == id && sec.HasPermission(authz.PermReadUser):
		scope = authz.Unrestricted()
	case sec.HasPermission(authz.PermReadUsersOfRelatedOrg):
		if principal.OrgID == nil {
			return nil, shared.NotFound("User", id)
		}
		scope = authz.ScopeOf("org_id", *principal.OrgID)
	default:
		return nil, &authz.PermissionDeniedError{Permission: authz.PermReadUsers}
	}
	return s.repo.FindByID(ctx, id, scope)
}

// Create registers a user with a server-generated password, returned to
// the caller exactly once. The required permission depends on the new
// user's role and on whether the target org is the principal's own: an
// absent target org counts as the principal's.
func (s *Service) Create(ctx context.Context, principal *authz.Principal, input CreateInput) (*Created, error) {
	sec := principal.Security()
	if err := sec.EnsureAtLeastOne(createGate); err != nil {
		return nil, err
	}

	ofRelatedOrg := principal.OrgID != nil && (input.OrgID == nil || *input.OrgID == *principal.OrgID)
	var need authz.Permission
	switch authz.Role(input.SystemRole) {
	case authz.RoleManagerAdmin:
		need = authz.PermCreateManagerAdmin
		if ofRelatedOrg {
			need = authz.PermCreateManagerAdminOfRelatedOrg
		}
	case authz.RoleManager:
		need = authz.PermCreateManager
		if ofRelatedOrg {
			need = authz.PermCreateManagerOfRelatedOrg
		}
	default:
		need = authz.PermCreateStandardUser
		if ofRelatedOrg {
			need = authz.PermCreateStandardUserOfRelatedOrg
		}
	}
	if err := sec.EnsurePermission(need); err != nil {
		return nil, err
	}

	password, err := auth.GeneratePassword()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, input, hash)
	if err != nil {
		return nil, err
	}
	s.notifyWelcome(ctx, user, password)
	return &Created{Password: password, User: *user}, nil
}

// Update applies a partial update to a user. The full permission demand is
// computed from the transition: which roles it touches, whether it crosses
// org lines, and whether it changes the system role. A superadmin can only
// be updated by themselves.
func (s *Service) Update(ctx context.Context, principal *authz.Principal, id int64, input UpdateInput) error {
	sec := principal.Security()
	if err := sec.EnsureAtLeastOne(authz.UpdateUserGate()); err != nil {
		return err
	}

	target, err := s.repo.FindByID(ctx, id, authz.Unrestricted())
	if err != nil {
		return err
	}

	var newRole *authz.Role
	if input.SystemRole != nil {
		r := authz.Role(*input.SystemRole)
		newRole = &r
	}
	perms, err := authz.RequiredPermissions(authz.TransitionInput{
		ActorID:        principal.ID,
		ActorOrgID:     principal.OrgID,
		TargetID:       id,
		TargetOrgID:    target.OrgID,
		OldRole:        target.SystemRole,
		NewRole:        newRole,
		DetailsChanged: input.DetailsChanged(),
	})
	if err != nil {
		return err
	}
	if err := sec.EnsurePermissions(perms); err != nil {
		return err
	}

	return s.repo.Update(ctx, id, authz.Unrestricted(), input)
}

func (s *Service) notifyWelcome(ctx context.Context, user *User, password string) {
	if s.notifier == nil || user.PrimaryEmail == nil {
		return
	}
	_, err := s.notifier.EnqueueUserWelcome(ctx, jobs.UserWelcomePayload{
		UserID:   user.ID,
		Email:    *user.PrimaryEmail,
		Password: password,
	})
	if err != nil {
		s.logger.Warn("user welcome notification not enqueued", "user_id", user.ID, "error", err)
	}
}
