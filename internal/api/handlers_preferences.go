// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/metrics"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/recommend"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/validation"
)

// GetPreferences handles GET /api/v1/users/{userID}/preferences. Unknown
// users get a fresh empty profile rather than a 404, matching store
// semantics: every user has preferences, most of them empty.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := chi.URLParam(r, "userID")
	start := time.Now()
	prefs, err := h.store.Preferences(r.Context(), userID)
	metrics.RecordStoreOperation("get", time.Since(start), err)
	if err != nil {
		rw.StorageError(err)
		return
	}

	rw.Success(prefs)
}

// PutPreferences handles PUT /api/v1/users/{userID}/preferences. The body
// user ID, when present, must match the path.
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := chi.URLParam(r, "userID")

	var prefs recommend.UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		rw.BadRequest("invalid JSON body: " + err.Error())
		return
	}
	if prefs.UserID != "" && prefs.UserID != userID {
		rw.BadRequest("body user ID does not match URL")
		return
	}
	prefs.UserID = userID

	if verr := validation.ValidateStruct(&prefs); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	start := time.Now()
	err := h.store.PutPreferences(r.Context(), &prefs)
	metrics.RecordStoreOperation("put", time.Since(start), err)
	if err != nil {
		rw.StorageError(err)
		return
	}

	h.logger.Info().Str("user_id", userID).Msg("user preferences updated")
	rw.Success(&prefs)
}
