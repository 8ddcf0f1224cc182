package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/jobs"
	"github.com/sevigo/code-critic/internal/server/handler"
	"github.com/sevigo/code-critic/internal/storage"
)

// timeoutGrace lets the review pipeline hit its own deadline and answer 504 itself
// before the router's timeout middleware fires.
const timeoutGrace = 5 * time.Second

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, job core.Job, store storage.Store, logger *slog.Logger) *chi.Mux {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = jobs.DefaultTimeout
	}

	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout + timeoutGrace))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	roastHandler := handler.NewRoastHandler(job, store, logger)

	// Path used by existing web clients.
	r.Post("/api/roast", roastHandler.Roast)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/roast", roastHandler.Roast)
		r.Get("/reviews/{sessionID}", roastHandler.GetReview)
	})

	return r
}
