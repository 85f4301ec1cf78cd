// Package waitlistservice предоставляет маршруты для основного приложения.
package waitlistservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/cybercentry/waitlist-service/internal/http/handlers/waitlist/health"
	"github.com/cybercentry/waitlist-service/internal/http/handlers/waitlist/join"
	"github.com/cybercentry/waitlist-service/internal/http/mware"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, service join.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		mware.Metrics,
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/waitlist", join.New(logger, service).ServeHTTP)
		r.Get("/waitlist/health", health.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
