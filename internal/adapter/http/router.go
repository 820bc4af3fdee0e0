package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paisavault/paisavault/internal/adapter/http/handler"
	"github.com/paisavault/paisavault/internal/adapter/http/middleware"
	"github.com/paisavault/paisavault/internal/infrastructure/auth"
	"github.com/paisavault/paisavault/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	NotebookHandler  *handler.NotebookHandler
	IncomeHandler    *handler.IncomeHandler
	ExpenseHandler   *handler.ExpenseHandler
	SummaryHandler   *handler.SummaryHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTManager))
				r.Get("/me", cfg.AuthHandler.Me)
				r.Put("/me", cfg.AuthHandler.UpdateProfile)
			})
		})

		// Personal data, always scoped to the authenticated user
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTManager))

			r.Route("/notebook", func(r chi.Router) {
				r.Get("/", cfg.NotebookHandler.List)
				r.Post("/", cfg.NotebookHandler.Add)
				r.Post("/{id}/toggle", cfg.NotebookHandler.ToggleSettled)
				r.Get("/{id}/history", cfg.NotebookHandler.History)
				r.Delete("/{id}", cfg.NotebookHandler.Remove)
			})

			r.Route("/income", func(r chi.Router) {
				r.Post("/", cfg.IncomeHandler.Create)
				r.Get("/", cfg.IncomeHandler.List)
				r.Put("/{id}", cfg.IncomeHandler.Update)
				r.Delete("/{id}", cfg.IncomeHandler.Delete)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", cfg.ExpenseHandler.Create)
				r.Get("/", cfg.ExpenseHandler.List)
				r.Put("/{id}", cfg.ExpenseHandler.Update)
				r.Delete("/{id}", cfg.ExpenseHandler.Delete)
			})

			r.Get("/summary", cfg.SummaryHandler.Get)
		})
	})

	return r
}
