package auth

import (
	"context"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	tokens *TokenService
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenService) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login validates credentials and issues an access token. Unknown login
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, creds Credentials) (string, error) {
	acc, err := s.repo.FindByLogin(ctx, creds.Login)
	if err != nil {
		return "", err
	}
	if !CheckPassword(acc.PasswordHash, creds.Password) {
		return "", shared.ErrInvalidCredentials
	}
	return s.tokens.Issue(acc.ID)
}

// Validate checks a token's signature and shape without touching storage.
func (s *Service) Validate(raw string) error {
	_, err := s.tokens.Verify(raw)
	return err
}

// Authenticate resolves a raw token into a loaded principal. The
// principal is read from storage on every call, never cached, so a role
// change is honored on the very next request.
func (s *Service) Authenticate(ctx context.Context, raw string) (*authz.Principal, error) {
	id, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	return s.repo.FindPrincipal(ctx, id)
}
