// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/middleware"
)

// Router builds the chi route tree for the service.
type Router struct {
	handler *Handler
	chiMw   *ChiMiddleware
}

// NewRouter creates a Router from the handler set and middleware factory.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	return &Router{handler: handler, chiMw: chiMw}
}

// chiMiddleware adapts http.HandlerFunc-style middleware to chi's
// func(http.Handler) http.Handler shape.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi wires every route group with its middleware stack and returns
// the root handler.
func (rt *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global stack, outermost first.
	r.Use(chimiddleware.RealIP)
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.RequestLogger))
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.chiMw.CORS())

	// Health probes stay cheap: no compression, generous rate limit.
	r.Route("/health", func(r chi.Router) {
		r.Use(rt.chiMw.RateLimitHealth())
		r.Get("/", rt.handler.HealthLive)
		r.Get("/live", rt.handler.HealthLive)
		r.Get("/ready", rt.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))
		r.Use(chiMiddleware(rt.handler.perfMon.Middleware))

		r.Route("/recommendations", func(r chi.Router) {
			r.Use(rt.chiMw.RateLimitRecommend())
			r.Post("/", rt.handler.Recommend)
			r.Post("/filter", rt.handler.FilterRecommendations)
			r.Get("/user/{userID}", rt.handler.RecommendForUser)
			r.Get("/config", rt.handler.GetConfig)
			r.With(rt.chiMw.RateLimitWrite()).Put("/config", rt.handler.UpdateConfig)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", rt.handler.ListItems)
			r.Get("/{id}", rt.handler.GetItem)
			r.With(rt.chiMw.RateLimitWrite()).Post("/", rt.handler.CreateItem)
			r.With(rt.chiMw.RateLimitWrite()).Put("/{id}", rt.handler.UpdateItem)
			r.With(rt.chiMw.RateLimitWrite()).Delete("/{id}", rt.handler.DeleteItem)
		})

		r.Get("/parks/{park}/items", rt.handler.ParkItems)

		r.Route("/users/{userID}/preferences", func(r chi.Router) {
			r.Get("/", rt.handler.GetPreferences)
			r.With(rt.chiMw.RateLimitWrite()).Put("/", rt.handler.PutPreferences)
		})

		r.Get("/stats", rt.handler.Stats)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
