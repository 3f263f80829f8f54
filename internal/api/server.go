// Package api assembles the HTTP surface: middleware stack, CORS, rate
// limiting, and the score feed routes.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/scorewire/gamefeed/internal/api/handler"
	"github.com/scorewire/gamefeed/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(f handler.ScoreFeed, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(f)

	// --- Routes ---
	r.Get("/", h.Root)
	r.Get("/healthz", h.HealthCheck)
	r.Get("/sports", h.Sports)
	r.Get("/scores", h.Scores)
	r.Get("/scores/{sportID}", h.ScoresSport)
	r.Get("/teams/{sportID}", h.Teams)
	r.Get("/snapshot/{sportID}", h.Snapshot)

	return r
}
