package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/eldtechnologies/courier/internal/api/middleware"
	"github.com/eldtechnologies/courier/internal/handlers"
	"github.com/eldtechnologies/courier/internal/mailbox"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, box *mailbox.Router) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(8 * 1024)) // 8KB max body
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - allow all origins (participants call from anywhere)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := handlers.NewHandler(box)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/participants", h.ListParticipants)
	r.Get("/stats", h.Stats)
	r.Get("/log", h.Log)

	// Routing operations
	r.Post("/send/{id}", h.Send)
	r.Post("/broadcast", h.Broadcast)
	r.Post("/inbox/{id}/next", h.Next)
	r.Get("/inbox/{id}", h.Inbox)

	return r
}
