package auth

import (
	"net/http"
	"strings"

	"github.com/super0605/customer-service-platform-backend/internal/platform/httpx"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// ParseAuthHeader extracts the bearer token from an Authorization header.
func ParseAuthHeader(header string) (string, error) {
	if header == "" {
		return "", shared.ErrMissingCredentials
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", shared.ErrMalformedCredentials
	}
	return token, nil
}

// Middleware authenticates every request: bearer token out of the header,
// signature check, principal load. Requests without a valid principal
// never reach the handler.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := ParseAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		principal, err := s.Authenticate(r.Context(), token)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		ctx := shared.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
