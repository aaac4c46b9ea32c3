package auth

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/super0605/customer-service-platform-backend/internal/platform/httpx"
)

// Handler wires HTTP endpoints for token flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers token routes on the provided router. These are
// the only routes served without authentication.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/access-tokens", h.handleLogin)
	r.Get("/access-tokens/{accessToken}", h.handleValidate)
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := httpx.DecodeJSON(r, &creds); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(creds); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	token, err := h.service.Login(r.Context(), creds)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tokenResponse{AccessToken: token})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "accessToken")
	if err := h.service.Validate(raw); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tokenResponse{AccessToken: raw})
}
