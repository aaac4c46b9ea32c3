package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/super0605/customer-service-platform-backend/internal/auth"
	"github.com/super0605/customer-service-platform-backend/internal/complexes"
	"github.com/super0605/customer-service-platform-backend/internal/lots"
	"github.com/super0605/customer-service-platform-backend/internal/orgs"
	"github.com/super0605/customer-service-platform-backend/internal/tickets"
	"github.com/super0605/customer-service-platform-backend/internal/users"
	"github.com/super0605/customer-service-platform-backend/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthService      *auth.Service
	AuthHandler      *auth.Handler
	OrgsHandler      *orgs.Handler
	ComplexesHandler *complexes.Handler
	LotsHandler      *lots.Handler
	TicketsHandler   *tickets.Handler
	UsersHandler     *users.Handler
	JobsHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router. Token endpoints and the health
// probe are public; every other route sits behind the authenticator.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.AuthHandler.MountRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(params.AuthService.Middleware)

		r.Route("/orgs", params.OrgsHandler.MountRoutes)
		r.Route("/complexes", params.ComplexesHandler.MountRoutes)
		r.Route("/lots", params.LotsHandler.MountRoutes)
		r.Route("/tickets", params.TicketsHandler.MountTicketRoutes)
		r.Route("/ticket-comments", params.TicketsHandler.MountCommentRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
		if params.JobsHandler != nil {
			r.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
