// Package http exposes the analysis session over a chi-based JSON API.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"salesinsights/internal/config"
	"salesinsights/internal/middleware"
	"salesinsights/internal/services"
)

// NewRouter assembles the full middleware chain and API surface.
func NewRouter(cfg *config.Config, logger *slog.Logger, service *services.Service) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Compress(5))
	if cfg.Security.EnableCORS {
		r.Use(middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: cfg.Security.AllowedOrigins,
			Logger:         logger,
		}))
	}
	if cfg.Security.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	handler := NewHandler(service, cfg, logger)
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Mount("/data", handler.DataRoutes())
		r.Mount("/analytics", handler.AnalyticsRoutes())
		r.Mount("/forecast", handler.ForecastRoutes())
		r.Mount("/insights", handler.InsightsRoutes())
	})
	r.Mount("/api/export", handler.ExportRoutes())

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
