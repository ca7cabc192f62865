// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRequestIDGenerated(t *testing.T) {
	t.Parallel()

	var seenID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if seenID == "" {
		t.Fatal("handler should see a generated request ID in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seenID {
		t.Errorf("response header X-Request-ID = %q, want %q", got, seenID)
	}
}

func TestRequestIDHonorsUpstream(t *testing.T) {
	t.Parallel()

	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		if got := GetRequestID(r.Context()); got != "proxy-supplied-id" {
			t.Errorf("context request ID = %q, want proxy-supplied-id", got)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "proxy-supplied-id")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "proxy-supplied-id" {
		t.Errorf("response header X-Request-ID = %q, want proxy-supplied-id", got)
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("GetRequestID on bare context = %q, want empty", got)
	}
}

func TestPrometheusMetricsCapturesStatus(t *testing.T) {
	t.Parallel()

	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestRequestLoggerPassthrough(t *testing.T) {
	t.Parallel()

	handler := RequestLogger(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestCompressionGzipsWhenAccepted(t *testing.T) {
	t.Parallel()

	payload := strings.Repeat("recommendation ", 200)
	handler := Compression(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}

	gz, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer gz.Close()
	decoded, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if string(decoded) != payload {
		t.Error("decompressed body does not match original payload")
	}
}

func TestCompressionSkippedWithoutAcceptHeader(t *testing.T) {
	t.Parallel()

	handler := Compression(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "" {
		t.Errorf("Content-Encoding = %q, want empty", got)
	}
	if rec.Body.String() != "plain" {
		t.Errorf("body = %q, want plain", rec.Body.String())
	}
}

func TestPerformanceMonitorWindow(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(3)
	for i := 0; i < 5; i++ {
		pm.RecordRequest(&RequestMetric{
			Path:       "/api/v1/recommendations",
			Method:     "POST",
			DurationMS: int64(10 * (i + 1)),
			StatusCode: 200,
			Timestamp:  time.Now(),
		})
	}

	recent := pm.GetRecentMetrics(10)
	if len(recent) != 3 {
		t.Fatalf("window holds %d samples, want 3", len(recent))
	}
	// Oldest two samples were evicted.
	if recent[0].DurationMS != 30 {
		t.Errorf("oldest retained sample = %dms, want 30ms", recent[0].DurationMS)
	}
}

func TestPerformanceMonitorStats(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(100)
	durations := []int64{10, 20, 30, 40, 100}
	for _, d := range durations {
		pm.RecordRequest(&RequestMetric{
			Path: "/api/v1/items", Method: "GET", DurationMS: d, StatusCode: 200, Timestamp: time.Now(),
		})
	}
	pm.RecordRequest(&RequestMetric{
		Path: "/health", Method: "GET", DurationMS: 1, StatusCode: 200, Timestamp: time.Now(),
	})

	stats := pm.GetStats()
	if len(stats) != 2 {
		t.Fatalf("got %d endpoints, want 2", len(stats))
	}
	// Busiest endpoint first.
	top := stats[0]
	if top.Endpoint != "GET /api/v1/items" {
		t.Fatalf("top endpoint = %q", top.Endpoint)
	}
	if top.RequestCount != 5 {
		t.Errorf("RequestCount = %d, want 5", top.RequestCount)
	}
	if top.MinDuration != 10 || top.MaxDuration != 100 {
		t.Errorf("min/max = %d/%d, want 10/100", top.MinDuration, top.MaxDuration)
	}
	if top.AvgDuration != 40 {
		t.Errorf("AvgDuration = %v, want 40", top.AvgDuration)
	}
	if top.P50Duration != 30 {
		t.Errorf("P50Duration = %d, want 30", top.P50Duration)
	}
}

func TestPerformanceMonitorMiddleware(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(10)
	handler := pm.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/items/space-mountain", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	recent := pm.GetRecentMetrics(1)
	if len(recent) != 1 {
		t.Fatal("middleware should record the request")
	}
	if recent[0].StatusCode != http.StatusNoContent {
		t.Errorf("recorded status = %d, want 204", recent[0].StatusCode)
	}
}
