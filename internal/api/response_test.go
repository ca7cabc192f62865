// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	return resp
}

func TestResponseWriterSuccess(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	NewResponseWriter(rec, req).Success(map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want application/json; charset=utf-8", ct)
	}

	resp := decodeEnvelope(t, rec)
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.Error != nil {
		t.Errorf("error = %+v, want nil", resp.Error)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok || data["hello"] != "world" {
		t.Errorf("data = %+v, want hello=world", resp.Data)
	}
}

func TestResponseWriterSuccessWithMeta(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	NewResponseWriter(rec, req).SuccessWithMeta([]string{"a", "b"}, &APIMeta{Count: 2, CacheHit: true})

	resp := decodeEnvelope(t, rec)
	if resp.Meta == nil {
		t.Fatal("meta is nil")
	}
	if resp.Meta.Count != 2 {
		t.Errorf("meta.count = %d, want 2", resp.Meta.Count)
	}
	if !resp.Meta.CacheHit {
		t.Error("meta.cache_hit = false, want true")
	}
	if resp.Meta.Timestamp.IsZero() {
		t.Error("meta.timestamp is zero")
	}
}

func TestResponseWriterCreated(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)

	NewResponseWriter(rec, req).Created(map[string]string{"id": "x"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if resp := decodeEnvelope(t, rec); !resp.Success {
		t.Error("success = false, want true")
	}
}

func TestResponseWriterNoContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/test", nil)

	NewResponseWriter(rec, req).NoContent()

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestResponseWriterErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "bad request",
			write:      func(rw *ResponseWriter) { rw.BadRequest("nope") },
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeBadRequest,
		},
		{
			name:       "not found",
			write:      func(rw *ResponseWriter) { rw.NotFound("missing") },
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "conflict",
			write:      func(rw *ResponseWriter) { rw.Conflict("exists") },
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeConflict,
		},
		{
			name:       "too many requests",
			write:      func(rw *ResponseWriter) { rw.TooManyRequests("slow down") },
			wantStatus: http.StatusTooManyRequests,
			wantCode:   ErrCodeTooManyRequests,
		},
		{
			name:       "internal error",
			write:      func(rw *ResponseWriter) { rw.InternalError("boom") },
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternalError,
		},
		{
			name:       "service unavailable",
			write:      func(rw *ResponseWriter) { rw.ServiceUnavailable("down") },
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrCodeServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.write(NewResponseWriter(rec, req))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeEnvelope(t, rec)
			if resp.Success {
				t.Error("success = true, want false")
			}
			if resp.Error == nil {
				t.Fatal("error is nil")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("error.code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}
