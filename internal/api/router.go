// Package api provides the HTTP surface of the dev server, which runs the
// whole pipeline in-process against an in-memory object store.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/api/handler"
	"github.com/betterway/betterway/internal/api/middleware"
	"github.com/betterway/betterway/internal/history"
	"github.com/betterway/betterway/internal/pipeline"
	"github.com/betterway/betterway/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger

	// Registry exposes upstream provider health (required).
	Registry *resilience.Registry

	// Chain runs the full pipeline (required).
	Chain *pipeline.Chain

	// Store is the object store backing the pipeline (required).
	Store handler.ObjectBrowser

	// History lists past selections (optional).
	History *history.Service
}

// NewRouter creates a new chi router with all routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing())
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry)
	pipelineHandler := handler.NewPipelineHandler(cfg.Chain, cfg.Store, cfg.History)

	pipelineRateLimit := middleware.RateLimitByIP(middleware.PipelineRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Pipeline runs call the upstream planner API - strict rate limiting.
		r.With(pipelineRateLimit).Post("/pipeline/run", pipelineHandler.Run)

		r.Route("/objects", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", pipelineHandler.ListObjects)
			r.Get("/*", pipelineHandler.GetObject)
		})

		r.With(standardRateLimit).Get("/selections", pipelineHandler.ListSelections)
	})

	return r
}
