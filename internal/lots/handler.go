package lots

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/super0605/customer-service-platform-backend/internal/platform/httpx"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Handler wires HTTP endpoints for lots.
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

// MountRoutes registers lot routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
}

type listResponse struct {
	Lots []Lot           `json:"lots"`
	Meta shared.PageMeta `json:"meta"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	orgID, err := httpx.OptionalIDQuery(r, "orgId")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	complexID, err := httpx.OptionalIDQuery(r, "complexId")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	page := shared.PageFromQuery(r.URL.Query())
	out, total, err := h.service.List(r.Context(), principal, orgID, complexID, page)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if out == nil {
		out = []Lot{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Lots: out, Meta: shared.MetaFor(page, total)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	lot, err := h.service.Get(r.Context(), principal, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, lot)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	var input CreateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	lot, err := h.service.Create(r.Context(), principal, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, lot)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.service.Update(r.Context(), principal, id, input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
