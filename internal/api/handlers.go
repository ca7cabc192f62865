// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/catalog"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/middleware"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/recommend"
)

// Handler carries the dependencies shared by all endpoint handlers.
type Handler struct {
	engine  *recommend.Engine
	store   *catalog.Store
	perfMon *middleware.PerformanceMonitor
	logger  zerolog.Logger
	started time.Time
}

// NewHandler creates the handler set for the API surface.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(engine *recommend.Engine, store *catalog.Store, perfMon *middleware.PerformanceMonitor, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:  engine,
		store:   store,
		perfMon: perfMon,
		logger:  logger.With().Str("component", "api").Logger(),
		started: time.Now(),
	}
}

// HealthLive reports process liveness. Always 200 while the process runs.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

// HealthReady reports readiness: the catalog store must answer.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	count, err := h.store.CountItems(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("readiness probe failed")
		rw.ServiceUnavailable("catalog store not ready")
		return
	}

	rw.Success(map[string]interface{}{
		"status":        "ok",
		"catalog_items": count,
	})
}

// Stats returns engine counters and the in-process endpoint latency window.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	requests, cacheHits := h.engine.Stats()

	NewResponseWriter(w, r).Success(map[string]interface{}{
		"engine": map[string]int64{
			"requests_total":   requests,
			"cache_hits_total": cacheHits,
		},
		"endpoints": h.perfMon.GetStats(),
	})
}
