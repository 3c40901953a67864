// Package router wires the HTTP surface: public intake and auth routes,
// authenticated account routes, and JWT-protected admin routes.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/canback/pickup-platform/internal/http/middleware"
	"github.com/canback/pickup-platform/internal/intake"
	"github.com/canback/pickup-platform/internal/register"
	"github.com/canback/pickup-platform/internal/rewards"
	"github.com/canback/pickup-platform/internal/tokens"
	"github.com/canback/pickup-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	IntakeHandler   *intake.Handler
	RewardsHandler  *rewards.Handler
	RegisterHandler *register.Handler
	TokenService    tokens.Service
	MetricsHandler  http.Handler

	AdminAuthSecret    string
	CORSAllowedOrigins []string

	// Requests per second and burst for the public rate limiter. Zero
	// disables it.
	PublicRateLimit float64
	PublicRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		if cfg.PublicRateLimit > 0 {
			public.Use(httpmiddleware.RateLimit(cfg.PublicRateLimit, cfg.PublicRateBurst))
		}

		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		if cfg.IntakeHandler != nil {
			public.Post("/pickups", cfg.IntakeHandler.CreatePickup)
		}
		if cfg.RewardsHandler != nil {
			public.Post("/quote", cfg.RewardsHandler.Quote)
		}
		if cfg.RegisterHandler != nil {
			public.Route("/auth", func(auth chi.Router) {
				auth.Post("/register", cfg.RegisterHandler.Register)
				auth.Post("/login", cfg.RegisterHandler.Login)
				auth.Post("/logout", cfg.RegisterHandler.Logout)
			})
		}
	})

	// Authenticated account routes
	if cfg.RegisterHandler != nil && cfg.TokenService != nil {
		r.Route("/me", func(me chi.Router) {
			me.Use(httpmiddleware.AccountAuth(cfg.TokenService))
			me.Get("/", cfg.RegisterHandler.Me)
			me.Get("/payments", cfg.RegisterHandler.MyPayments)
		})
	}

	// Admin routes (protected by HMAC JWT)
	if cfg.AdminAuthSecret != "" && cfg.IntakeHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/leads", cfg.IntakeHandler.ListLeads)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
