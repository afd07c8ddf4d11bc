// Package router wires the HTTP surface: public listing endpoints, the
// identity-scoped contact endpoints, and the JWT-protected admin group.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/propline/propline/internal/contact"
	"github.com/propline/propline/internal/http/handlers"
	httpmiddleware "github.com/propline/propline/internal/http/middleware"
	"github.com/propline/propline/internal/leads"
	"github.com/propline/propline/internal/properties"
	"github.com/propline/propline/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger            *logging.Logger
	PropertiesHandler *properties.Handler
	ContactHandler    *contact.Handler
	LeadsHandler      *leads.Handler
	AdminDashboard    *handlers.AdminDashboardHandler
	AdminQuota        *handlers.AdminQuotaHandler

	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Requests/sec and burst for the per-IP limiter; zero disables it.
	RateLimitPerSec float64
	RateLimitBurst  int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerSec > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSec, cfg.RateLimitBurst))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.PropertiesHandler != nil {
			public.Route("/properties", func(r chi.Router) {
				r.Get("/", cfg.PropertiesHandler.ListProperties)
				r.Get("/{propertyID}", cfg.PropertiesHandler.GetProperty)
			})
		}
	})

	// Contact endpoints, scoped to the caller identity
	if cfg.ContactHandler != nil {
		r.Group(func(gated chi.Router) {
			gated.Use(requireIdentity)
			gated.Get("/contact/usage", cfg.ContactHandler.CheckUsage)
			gated.Post("/contact/attempts", cfg.ContactHandler.AttemptContact)
		})
	}

	// Admin routes, protected by JWT
	if cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			if cfg.PropertiesHandler != nil {
				admin.Post("/properties", cfg.PropertiesHandler.CreateProperty)
			}
			if cfg.LeadsHandler != nil {
				admin.Get("/properties/{propertyID}/leads", cfg.LeadsHandler.ListByProperty)
			}
			if cfg.AdminDashboard != nil {
				admin.Get("/dashboard", cfg.AdminDashboard.GetDashboardOverview)
			}
			if cfg.AdminQuota != nil {
				admin.Get("/quotas/{identityID}", cfg.AdminQuota.GetQuota)
				admin.Post("/quotas/{identityID}/reset", cfg.AdminQuota.ResetQuota)
			}
		})
	}

	return r
}
