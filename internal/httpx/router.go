package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/you/go-mestre-flights/internal/auth"
	"github.com/you/go-mestre-flights/internal/config"
	"github.com/you/go-mestre-flights/internal/service"
)

// NewRouter wires the presentation boundary. When jwt_secret is configured
// the API endpoints require a bearer token and /auth/login issues them;
// otherwise everything is open.
func NewRouter(cfg *config.Config, log zerolog.Logger, svc *service.SearchService, hist *service.HistoryService) http.Handler {
	m := chi.NewRouter()

	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(cors.AllowAll().Handler)
	m.Use(Metrics)
	m.Use(Logger(log))

	m.Get("/", RootHandler(cfg))

	mountAPI := func(r chi.Router) {
		r.Get("/search", SearchHandler(svc))
		r.Get("/history", HistoryHandler(hist))
		r.Get("/ws/search", SearchWSHandler(svc))
	}

	if cfg.JWTSecret != "" {
		m.Post("/auth/login", auth.LoginHandler(cfg))
		m.Group(func(r chi.Router) {
			r.Use(auth.Middleware(cfg.JWTSecret))
			mountAPI(r)
		})
	} else {
		mountAPI(m)
	}

	return m
}
