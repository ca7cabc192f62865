// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/catalog"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/metrics"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/recommend"
)

// ListItems handles GET /api/v1/items. An optional park query parameter
// narrows the listing to one park.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var (
		items []recommend.Item
		err   error
	)
	start := time.Now()
	if raw := r.URL.Query().Get("park"); raw != "" {
		park := recommend.Park(raw)
		if !park.Valid() {
			rw.BadRequest("park must be a valid park slug")
			return
		}
		items, err = h.store.ItemsByPark(r.Context(), park)
	} else {
		items, err = h.store.Items(r.Context())
	}
	metrics.RecordStoreOperation("list", time.Since(start), err)
	if err != nil {
		rw.StorageError(err)
		return
	}

	rw.SuccessWithMeta(items, &APIMeta{Count: len(items)})
}

// ParkItems handles GET /api/v1/parks/{park}/items.
func (h *Handler) ParkItems(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	park := recommend.Park(chi.URLParam(r, "park"))
	if !park.Valid() {
		rw.NotFound("unknown park")
		return
	}

	start := time.Now()
	items, err := h.store.ItemsByPark(r.Context(), park)
	metrics.RecordStoreOperation("list", time.Since(start), err)
	if err != nil {
		rw.StorageError(err)
		return
	}

	rw.SuccessWithMeta(items, &APIMeta{Count: len(items)})
}

// GetItem handles GET /api/v1/items/{id}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	start := time.Now()
	item, err := h.store.GetItem(r.Context(), id)
	metrics.RecordStoreOperation("get", time.Since(start), err)
	if errors.Is(err, catalog.ErrItemNotFound) {
		rw.NotFound("item not found: " + id)
		return
	}
	if err != nil {
		rw.StorageError(err)
		return
	}

	rw.Success(item)
}

// CreateItem handles POST /api/v1/items. Creating over an existing ID is a
// conflict; use PUT to replace.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var item recommend.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		rw.BadRequest("invalid JSON body: " + err.Error())
		return
	}
	if err := item.Validate(); err != nil {
		rw.BadRequest("invalid item: " + err.Error())
		return
	}

	if _, err := h.store.GetItem(r.Context(), item.ID); err == nil {
		rw.Conflict("item already exists: " + item.ID)
		return
	} else if !errors.Is(err, catalog.ErrItemNotFound) {
		rw.StorageError(err)
		return
	}

	start := time.Now()
	err := h.store.PutItem(r.Context(), &item)
	metrics.RecordStoreOperation("put", time.Since(start), err)
	if err != nil {
		rw.StorageError(err)
		return
	}

	h.updateCatalogGauge(r)
	h.logger.Info().Str("item_id", item.ID).Str("kind", string(item.Kind)).Msg("catalog item created")
	rw.Created(&item)
}

// UpdateItem handles PUT /api/v1/items/{id}. Upserts; the path ID wins over
// any ID in the body.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")

	var item recommend.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		rw.BadRequest("invalid JSON body: " + err.Error())
		return
	}
	if item.ID != "" && item.ID != id {
		rw.BadRequest("body item ID does not match URL")
		return
	}
	item.ID = id
	if err := item.Validate(); err != nil {
		rw.BadRequest("invalid item: " + err.Error())
		return
	}

	start := time.Now()
	err := h.store.PutItem(r.Context(), &item)
	metrics.RecordStoreOperation("put", time.Since(start), err)
	if err != nil {
		rw.StorageError(err)
		return
	}

	h.updateCatalogGauge(r)
	rw.Success(&item)
}

// DeleteItem handles DELETE /api/v1/items/{id}. Deleting a missing item is
// a no-op and still returns 204.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	start := time.Now()
	err := h.store.DeleteItem(r.Context(), id)
	metrics.RecordStoreOperation("delete", time.Since(start), err)
	if err != nil {
		rw.StorageError(err)
		return
	}

	h.updateCatalogGauge(r)
	rw.NoContent()
}

// updateCatalogGauge refreshes the catalog item count metric after writes.
func (h *Handler) updateCatalogGauge(r *http.Request) {
	if count, err := h.store.CountItems(r.Context()); err == nil {
		metrics.SetCatalogItems(count)
	}
}
