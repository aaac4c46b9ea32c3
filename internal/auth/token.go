package auth

import (
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// TokenService issues and verifies access tokens. A token carries a single
// claim, the principal id, and never expires; revocation happens by
// deleting the account, which makes every outstanding token useless.
type TokenService struct {
	signingKey jwk.Key
}

// NewTokenService builds a TokenService over an HS256 secret.
func NewTokenService(secret []byte) (*TokenService, error) {
	key, err := jwk.FromRaw(secret)
	if err != nil {
		return nil, fmt.Errorf("auth: build signing key: %w", err)
	}
	if err := key.Set(jwk.AlgorithmKey, jwa.HS256); err != nil {
		return nil, fmt.Errorf("auth: set signing algorithm: %w", err)
	}
	return &TokenService{signingKey: key}, nil
}

// Issue signs a token for the principal id.
func (s *TokenService) Issue(principalID int64) (string, error) {
	token, err := jwt.NewBuilder().
		Claim("id", principalID).
		Build()
	if err != nil {
		return "", fmt.Errorf("auth: build token: %w", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.signingKey))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return string(signed), nil
}

// Verify checks the signature and extracts the principal id. Every
// failure mode collapses into ErrInvalidToken so callers cannot learn
// why a token was rejected.
func (s *TokenService) Verify(raw string) (int64, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, s.signingKey),
		jwt.WithValidate(true),
	)
	if err != nil {
		return 0, shared.ErrInvalidToken
	}
	claim, ok := token.Get("id")
	if !ok {
		return 0, shared.ErrInvalidToken
	}
	switch id := claim.(type) {
	case float64:
		return int64(id), nil
	case int64:
		return id, nil
	default:
		return 0, shared.ErrInvalidToken
	}
}
