package tickets

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/super0605/customer-service-platform-backend/internal/platform/httpx"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Handler wires HTTP endpoints for tickets and their comments.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	comments  *CommentService
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, comments *CommentService) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		comments:  comments,
		validator: validator.New(),
	}
}

// MountTicketRoutes registers ticket routes on the provided router.
func (h *Handler) MountTicketRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
}

// MountCommentRoutes registers ticket comment routes.
func (h *Handler) MountCommentRoutes(r chi.Router) {
	r.Get("/", h.handleListComments)
	r.Post("/", h.handleCreateComment)
	r.Get("/{id}", h.handleGetComment)
	r.Put("/{id}", h.handleUpdateComment)
}

type listResponse struct {
	Tickets []Ticket        `json:"tickets"`
	Meta    shared.PageMeta `json:"meta"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	orgID, err := httpx.OptionalIDQuery(r, "orgId")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var filter ListFilter
	if filter.ComplexID, err = httpx.OptionalIDQuery(r, "complexId"); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if filter.PrimaryLotID, err = httpx.OptionalIDQuery(r, "primaryLotId"); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if filter.LotID, err = httpx.OptionalIDQuery(r, "lotId"); err != nil {
		httpx.RespondError(w, err)
		return
	}
	page := shared.PageFromQuery(r.URL.Query())
	out, total, err := h.service.List(r.Context(), principal, orgID, filter, page)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if out == nil {
		out = []Ticket{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Tickets: out, Meta: shared.MetaFor(page, total)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	t, err := h.service.Get(r.Context(), principal, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
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
	t, err := h.service.Create(r.Context(), principal, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, t)
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

type commentListResponse struct {
	Comments []Comment       `json:"comments"`
	Meta     shared.PageMeta `json:"meta"`
}

func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	ticketID, err := httpx.OptionalIDQuery(r, "ticketId")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if ticketID == nil {
		httpx.RespondError(w, fmt.Errorf("%w: ticketId query parameter is required", httpx.ErrValidation))
		return
	}
	page := shared.PageFromQuery(r.URL.Query())
	out, total, err := h.comments.ListComments(r.Context(), principal, *ticketID, page)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if out == nil {
		out = []Comment{}
	}
	httpx.JSON(w, http.StatusOK, commentListResponse{Comments: out, Meta: shared.MetaFor(page, total)})
}

func (h *Handler) handleGetComment(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	c, err := h.comments.GetComment(r.Context(), principal, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	var input CommentCreateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	c, err := h.comments.CreateComment(r.Context(), principal, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input CommentUpdateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.comments.UpdateComment(r.Context(), principal, id, input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
