package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nmorrow/dream-server/internal/analyzer"
	"github.com/nmorrow/dream-server/internal/archive"
	"github.com/nmorrow/dream-server/internal/config"
	"github.com/nmorrow/dream-server/internal/db"
)

// requestsPerMinute caps each client on the authenticated surface.
const requestsPerMinute = 60

func NewRouter(cfg *config.Config, database *db.DB, arc *archive.Archive, an *analyzer.Analyzer) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)

	handlers := NewHandlers(cfg, database, arc, an)

	// Public endpoints
	r.Get("/health", handlers.Health)

	// API v1 routes (authenticated, rate limited)
	limiter := NewRateLimiter(requestsPerMinute, time.Minute)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg))
		r.Use(RateLimitMiddleware(limiter))
		r.Use(JSONContentType)

		r.Post("/entries", handlers.CreateEntry)
		r.Get("/entries", handlers.ListEntries)
		r.Get("/entries/{id}", handlers.GetEntry)
		r.Put("/entries/{id}", handlers.UpdateEntry)
		r.Delete("/entries/{id}", handlers.DeleteEntry)

		r.Get("/analytics/overview", handlers.Overview)
		r.Get("/analytics/timeline", handlers.Timeline)
		r.Get("/analytics/themes", handlers.Themes)
		r.Get("/analytics/entities", handlers.Entities)
		r.Get("/analytics/patterns", handlers.Patterns)
		r.Get("/analytics/predictions", handlers.Predictions)
		r.Get("/analytics/insights", handlers.Insights)

		r.Post("/summaries/generate", handlers.GenerateSummary)
		r.Get("/summaries", handlers.ListSummaries)

		r.Get("/tags", handlers.Tags)
	})

	return r
}
