package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/super0605/customer-service-platform-backend/internal/auth"
	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
	_ "github.com/super0605/customer-service-platform-backend/testing"
)

type stubRepo struct {
	account   *auth.Account
	principal *authz.Principal
}

func (s *stubRepo) FindByLogin(ctx context.Context, login string) (*auth.Account, error) {
	if s.account == nil {
		return nil, shared.ErrInvalidCredentials
	}
	return s.account, nil
}

func (s *stubRepo) FindPrincipal(ctx context.Context, id int64) (*authz.Principal, error) {
	if s.principal == nil || s.principal.ID != id {
		return nil, &shared.UnknownPrincipalError{ID: id}
	}
	return s.principal, nil
}

func testTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService([]byte("test-secret-test-secret-test-secret"))
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return tokens
}

func newTestHandler(t *testing.T, repo *stubRepo) (*auth.Handler, *auth.Service) {
	t.Helper()
	svc := auth.NewService(repo, testTokens(t))
	return auth.NewHandler(slog.Default(), svc), svc
}

func serve(h *auth.Handler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.MountRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLoginIssuesToken(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &stubRepo{account: &auth.Account{ID: 7, PasswordHash: hash}}
	handler, svc := newTestHandler(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/access-tokens",
		strings.NewReader(`{"login":"alice@example.com","password":"hunter22"}`))
	rec := serve(handler, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "accessToken") {
		t.Fatalf("missing token in response: %s", body)
	}
	token := strings.TrimSuffix(strings.SplitN(body, `"accessToken":"`, 2)[1], "\"}\n")
	if err := svc.Validate(token); err != nil {
		t.Fatalf("issued token did not validate: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &stubRepo{account: &auth.Account{ID: 7, PasswordHash: hash}}
	handler, _ := newTestHandler(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/access-tokens",
		strings.NewReader(`{"login":"alice@example.com","password":"wrong"}`))
	rec := serve(handler, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginUnknownUserMatchesWrongPassword(t *testing.T) {
	handler, _ := newTestHandler(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/access-tokens",
		strings.NewReader(`{"login":"ghost@example.com","password":"whatever"}`))
	rec := serve(handler, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginRejectsInvalidBody(t *testing.T) {
	handler, _ := newTestHandler(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/access-tokens",
		strings.NewReader(`{"login":""}`))
	rec := serve(handler, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestValidateEndpoint(t *testing.T) {
	handler, svc := newTestHandler(t, &stubRepo{})

	token, err := svc.Login(context.Background(), auth.Credentials{})
	if err == nil {
		t.Fatalf("login on empty repo must fail, got token %q", token)
	}

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/access-tokens/garbage", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
}

func TestMiddlewareAuthenticates(t *testing.T) {
	principal := &authz.Principal{ID: 7, Role: authz.RoleManager, Permissions: authz.NewPermissionSet(nil)}
	repo := &stubRepo{principal: principal}
	_, svc := newTestHandler(t, repo)

	token, err := testTokens(t).Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got *authz.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = shared.PrincipalFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/orgs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	svc.Middleware(next).ServeHTTP(rec, req)

	if got == nil || got.ID != 7 {
		t.Fatalf("expected principal 7 in context, got %+v", got)
	}
}

func TestMiddlewareHeaderErrors(t *testing.T) {
	_, svc := newTestHandler(t, &stubRepo{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	})

	req := httptest.NewRequest(http.MethodGet, "/orgs", nil)
	rec := httptest.NewRecorder()
	svc.Middleware(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing header: expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/orgs", nil)
	req.Header.Set("Authorization", "Token abc")
	rec = httptest.NewRecorder()
	svc.Middleware(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed header: expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/orgs", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	svc.Middleware(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: expected 401, got %d", rec.Code)
	}
}

func TestMiddlewareUnknownPrincipal(t *testing.T) {
	_, svc := newTestHandler(t, &stubRepo{})
	token, err := testTokens(t).Issue(99)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a deleted principal")
	})
	req := httptest.NewRequest(http.MethodGet, "/orgs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	svc.Middleware(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
