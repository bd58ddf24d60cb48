package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/auradaily/aura-api/internal/api"
	apiMiddleware "github.com/auradaily/aura-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.MetricsMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.config.Auth, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	readingHandler := api.NewReadingHandler(app.readingService, app.logger)
	lifestyleHandler := api.NewLifestyleHandler(app.lifestyleService, app.logger)
	insightHandler := api.NewInsightHandler(app.insightService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Profile and birth data
			r.Get("/users/me", userHandler.GetProfile)
			r.Put("/users/me/birth-data", userHandler.UpdateBirthData)

			// Daily energy readings
			r.Get("/readings/history", readingHandler.GetHistory)
			r.Get("/readings/{date}", readingHandler.GetReading)

			// Lifestyle logs
			r.Get("/lifestyle/day/{date}", lifestyleHandler.GetDay)
			r.Post("/lifestyle/{category}", lifestyleHandler.RecordEntry)
			r.Get("/lifestyle/{category}", lifestyleHandler.GetEntries)

			// Correlation insights
			r.Get("/insights/correlations", insightHandler.GetCorrelations)
		})
	})

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
