// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/metrics"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/recommend"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/validation"
)

// recommendationRequest is the body for POST /api/v1/recommendations.
// Preferences are supplied inline; the catalog is the item source unless
// Items overrides it (useful for what-if planning against a subset).
// Enum fields carry their validation tags on the domain types, so one
// ValidateStruct call covers preferences, context, and bounds.
type recommendationRequest struct {
	Items       []recommend.Item           `json:"items,omitempty"`
	Preferences *recommend.UserPreferences `json:"preferences"`
	Context     *recommend.RequestContext  `json:"context,omitempty"`
	MaxResults  int                        `json:"maxResults,omitempty" validate:"gte=0,lte=50"`
}

// filterRecommendationsRequest is the body for POST /api/v1/recommendations/filter.
type filterRecommendationsRequest struct {
	recommendationRequest
	Filters recommend.Filters `json:"filters"`
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid JSON body: " + err.Error())
		return
	}
	if req.Preferences == nil {
		rw.BadRequest("preferences is required")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	for i := range req.Items {
		if err := req.Items[i].Validate(); err != nil {
			rw.BadRequest("invalid item: " + err.Error())
			return
		}
	}

	start := time.Now()
	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Items:       req.Items,
		Preferences: req.Preferences,
		Context:     req.Context,
		MaxResults:  req.MaxResults,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("recommendation request failed")
		rw.InternalError("failed to compute recommendations")
		return
	}

	metrics.RecordRecommendation(
		string(recommend.SourcePersonalized),
		time.Since(start),
		resp.Metadata.CandidateCount,
		resp.Metadata.ReturnedCount,
		resp.Metadata.CacheHit,
	)

	rw.SuccessWithMeta(resp, &APIMeta{
		Count:    resp.Metadata.ReturnedCount,
		CacheHit: resp.Metadata.CacheHit,
	})
}

// RecommendForUser handles GET /api/v1/recommendations/user/{userID}.
// Preferences come from the stored profile; situational context arrives as
// query parameters (time_of_day, park, weather, max_results).
func (h *Handler) RecommendForUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		rw.BadRequest("user ID is required")
		return
	}

	q := r.URL.Query()
	rctx := &recommend.RequestContext{
		TimeOfDay:   recommend.TimeOfDay(q.Get("time_of_day")),
		CurrentPark: recommend.Park(q.Get("park")),
		Weather:     recommend.Weather(q.Get("weather")),
	}
	if verr := validation.ValidateStruct(rctx); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	maxResults := 0
	if raw := q.Get("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			rw.BadRequest("max_results must be a non-negative integer")
			return
		}
		maxResults = n
	}

	start := time.Now()
	resp, err := h.engine.RecommendForUser(r.Context(), userID, rctx, maxResults)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("user recommendation failed")
		rw.InternalError("failed to compute recommendations")
		return
	}

	metrics.RecordRecommendation(
		string(recommend.SourcePersonalized),
		time.Since(start),
		resp.Metadata.CandidateCount,
		resp.Metadata.ReturnedCount,
		resp.Metadata.CacheHit,
	)

	rw.SuccessWithMeta(resp, &APIMeta{
		Count:    resp.Metadata.ReturnedCount,
		CacheHit: resp.Metadata.CacheHit,
	})
}

// FilterRecommendations handles POST /api/v1/recommendations/filter.
// Computes personalized recommendations and narrows them by hard constraints.
func (h *Handler) FilterRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req filterRecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid JSON body: " + err.Error())
		return
	}
	if req.Preferences == nil {
		rw.BadRequest("preferences is required")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	for i := range req.Items {
		if err := req.Items[i].Validate(); err != nil {
			rw.BadRequest("invalid item: " + err.Error())
			return
		}
	}

	start := time.Now()
	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Items:       req.Items,
		Preferences: req.Preferences,
		Context:     req.Context,
		MaxResults:  req.MaxResults,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("filtered recommendation failed")
		rw.InternalError("failed to compute recommendations")
		return
	}

	filtered := h.engine.Filter(req.Filters, resp.Recommendations)

	metrics.RecordRecommendation(
		string(recommend.SourceFiltered),
		time.Since(start),
		resp.Metadata.CandidateCount,
		len(filtered),
		resp.Metadata.CacheHit,
	)

	rw.SuccessWithMeta(map[string]interface{}{
		"recommendations": filtered,
		"metadata":        resp.Metadata,
	}, &APIMeta{
		Count:    len(filtered),
		CacheHit: resp.Metadata.CacheHit,
	})
}

// GetConfig handles GET /api/v1/recommendations/config.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.Config())
}

// UpdateConfig handles PUT /api/v1/recommendations/config. The engine
// validates the new configuration and invalidates its cache on success.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var cfg recommend.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		rw.BadRequest("invalid JSON body: " + err.Error())
		return
	}

	if err := h.engine.UpdateConfig(cfg); err != nil {
		rw.BadRequest("invalid configuration: " + err.Error())
		return
	}

	metrics.RecordConfigUpdate()
	h.logger.Info().Msg("scoring configuration updated")

	rw.Success(h.engine.Config())
}
