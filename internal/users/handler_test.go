package users

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

func newTestHandler(repo *stubRepo) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(logger, NewService(logger, repo))
}

func newTestRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Route("/users", h.MountRoutes)
	return r
}

func doRequest(t *testing.T, router chi.Router, principal *authz.Principal, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(shared.ContextWithPrincipal(req.Context(), principal))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreateRequiresLoginIdentifier(t *testing.T) {
	router := newTestRouter(newTestHandler(newTestRepo()))
	rec := doRequest(t, router, principalWith(1, authz.RoleSuperAdmin, nil), http.MethodPost, "/users", map[string]any{
		"systemRole": "STANDARD_USER",
		"firstName":  "Eve",
		"title":      "Ms",
		"surName":    "Lot",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "primaryEmail")
}

func TestHandlerCreateRejectsSuperAdminRole(t *testing.T) {
	router := newTestRouter(newTestHandler(newTestRepo()))
	rec := doRequest(t, router, principalWith(1, authz.RoleSuperAdmin, nil), http.MethodPost, "/users", map[string]any{
		"systemRole":   "SUPERADMIN",
		"firstName":    "Eve",
		"title":        "Ms",
		"surName":      "Lot",
		"primaryEmail": "eve@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerCreateReturnsPassword(t *testing.T) {
	router := newTestRouter(newTestHandler(newTestRepo()))
	rec := doRequest(t, router, principalWith(1, authz.RoleSuperAdmin, nil), http.MethodPost, "/users", map[string]any{
		"systemRole":   "STANDARD_USER",
		"firstName":    "Eve",
		"title":        "Ms",
		"surName":      "Lot",
		"primaryEmail": "eve@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Created
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Password)
	assert.Equal(t, "Eve", created.User.FirstName)
	assert.NotZero(t, created.User.ID)
}

func TestHandlerListDeniedReadsAsUnauthorized(t *testing.T) {
	router := newTestRouter(newTestHandler(newTestRepo()))
	rec := doRequest(t, router, principalWith(4, authz.RoleStandardUser, orgOf(10)), http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerGetForeignUserReadsAsNotFound(t *testing.T) {
	router := newTestRouter(newTestHandler(newTestRepo()))
	rec := doRequest(t, router, principalWith(3, authz.RoleManager, orgOf(10)), http.MethodGet, "/users/5", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerUpdateInvalidRoleRejected(t *testing.T) {
	router := newTestRouter(newTestHandler(newTestRepo()))
	rec := doRequest(t, router, principalWith(1, authz.RoleSuperAdmin, nil), http.MethodPut, "/users/4", map[string]any{
		"systemRole": "OVERLORD",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerUpdateNoContent(t *testing.T) {
	router := newTestRouter(newTestHandler(newTestRepo()))
	rec := doRequest(t, router, principalWith(1, authz.RoleSuperAdmin, nil), http.MethodPut, "/users/4", map[string]any{
		"firstName": "Cairo",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
