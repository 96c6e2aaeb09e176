// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

// HTTP routing using Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/gravitus/internal/config"
	"github.com/tomtom215/gravitus/internal/sync"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given manager.
func NewRouter(cfg *config.Config, manager *sync.Manager) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Server.RateLimitReqs
	if cfg.Server.RateLimitWindow > 0 {
		mwConfig.RateLimitWindow = cfg.Server.RateLimitWindow
	}

	return &Router{
		handler:       NewHandler(cfg, manager),
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware stack, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(RequestLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// Operational endpoints, outside the versioned API surface.
	r.Get("/healthz", router.handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		// Session: login gets the strictest limit to slow brute force.
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
		r.Post("/logout", router.handler.Logout)

		// Sync triggers are resource intensive on the remote end.
		r.With(router.chiMiddleware.RateLimitSync()).Post("/sync", router.handler.Sync)

		// Singleton resources.
		r.Get("/resources/{name}", router.handler.Resource)
		r.Post("/resources/{name}/refresh", router.handler.RefreshResource)

		// Synced data.
		r.Get("/workouts", router.handler.Workouts)
		r.Get("/routines", router.handler.Routines)
		r.Get("/feed", router.handler.Feed)

		// Dashboard analytics.
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/sets", router.handler.AnalyticsSets)
			r.Get("/frequency", router.handler.AnalyticsFrequency)
			r.Get("/volume", router.handler.AnalyticsVolume)
			r.Get("/muscles", router.handler.AnalyticsMuscles)
			r.Get("/equipment", router.handler.AnalyticsEquipment)
			r.Get("/progress", router.handler.AnalyticsProgress)
		})
	})

	return r
}
