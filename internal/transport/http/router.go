package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cbmcli/internal/config"
	apierrors "cbmcli/internal/errors"
	"cbmcli/internal/middleware"
	"cbmcli/internal/services"
)

// NewRouter assembles the middleware chain and mounts all API routes.
func NewRouter(cfg *config.Config, service *services.DataService, logger *slog.Logger) http.Handler {
	errorHandler := apierrors.NewErrorHandler(logger)
	registry := prometheus.NewRegistry()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.NewMetrics(registry).Handler)
	if cfg.Server.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, logger).Handler)
	}

	uploadHandler := NewUploadHandler(service, logger, errorHandler, cfg.Server.MaxUploadBytes)
	dataHandler := NewDataHandler(service, logger, errorHandler)
	healthHandler := NewHealthHandler(service, logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/files", uploadHandler.Routes())
		r.Mount("/", dataHandler.Routes())
		r.Get("/health", healthHandler.Health)
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}
