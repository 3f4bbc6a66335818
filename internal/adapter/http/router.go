package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/adapter/http/handler"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/adapter/http/middleware"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	DepositHandler   *handler.DepositHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logging          *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
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

		r.Route("/time-deposits", func(r chi.Router) {
			r.Get("/", cfg.DepositHandler.List)
			r.Post("/", cfg.DepositHandler.Create)
			// updateBalances must be registered before {id} so chi does not
			// treat it as a deposit id.
			r.Put("/updateBalances", cfg.DepositHandler.UpdateBalances)
			r.Get("/{id}", cfg.DepositHandler.Get)
			r.Post("/{id}/withdrawals", cfg.DepositHandler.CreateWithdrawal)
		})
	})

	return r
}
