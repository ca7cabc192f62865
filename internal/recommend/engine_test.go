// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// mockProvider is an in-memory CatalogProvider for engine tests.
type mockProvider struct {
	items    []Item
	prefs    map[string]*UserPreferences
	itemsErr error
	calls    int
}

func (m *mockProvider) Items(context.Context) ([]Item, error) {
	m.calls++
	if m.itemsErr != nil {
		return nil, m.itemsErr
	}
	return m.items, nil
}

func (m *mockProvider) Preferences(_ context.Context, userID string) (*UserPreferences, error) {
	if p, ok := m.prefs[userID]; ok {
		return p, nil
	}
	return &UserPreferences{UserID: userID}, nil
}

func newTestEngine(t *testing.T, cfg Config, provider CatalogProvider) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, provider, testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// scenarioCatalog mirrors two popular thrill rides in the same park.
func scenarioCatalog() []Item {
	a := testAttraction("coaster-a", ParkMagicKingdom, AttractionThrill)
	a.Rating = &Rating{Average: 4.8, Count: 15000}
	a.Attraction.WaitMinutes = intPtr(75)
	b := testAttraction("coaster-b", ParkMagicKingdom, AttractionThrill)
	b.Rating = &Rating{Average: 4.6, Count: 12000}
	b.Attraction.WaitMinutes = intPtr(45)
	return []Item{a, b}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Weights.AvoidedType = 1
	if _, err := NewEngine(cfg, nil, testLogger()); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestRecommendRequiresPreferences(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), nil)
	if _, err := e.Recommend(context.Background(), Request{Items: scenarioCatalog()}); err == nil {
		t.Fatal("expected error for missing preferences")
	}
}

func TestRecommendPreferredParkAndType(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), nil)
	resp, err := e.Recommend(context.Background(), Request{
		Items: scenarioCatalog(),
		Preferences: &UserPreferences{
			UserID:                   "u1",
			PreferredParks:           []Park{ParkMagicKingdom},
			PreferredAttractionTypes: []AttractionType{AttractionThrill},
		},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("expected both items recommended, got %d", len(resp.Recommendations))
	}
	// Wait time plays no scoring role; the better-rated, more popular
	// coaster ranks first.
	if resp.Recommendations[0].Item.ID != "coaster-a" {
		t.Errorf("expected coaster-a first, got %s", resp.Recommendations[0].Item.ID)
	}
	for _, r := range resp.Recommendations {
		if r.Score <= 0 {
			t.Errorf("%s: expected positive score, got %v", r.Item.ID, r.Score)
		}
		if r.Source != SourcePersonalized {
			t.Errorf("%s: expected personalized source, got %s", r.Item.ID, r.Source)
		}
	}
	if resp.Metadata.CandidateCount != 2 || resp.Metadata.ScoredCount != 2 || resp.Metadata.ReturnedCount != 2 {
		t.Errorf("unexpected metadata: %+v", resp.Metadata)
	}
}

func TestRecommendAvoidedTypeCarriesJustification(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), nil)
	resp, err := e.Recommend(context.Background(), Request{
		Items: scenarioCatalog(),
		Preferences: &UserPreferences{
			UserID:                 "u1",
			AvoidedAttractionTypes: []AttractionType{AttractionThrill},
		},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, r := range resp.Recommendations {
		if !r.HasAvoidanceReason() {
			t.Errorf("%s: surviving avoided item must carry its justification", r.Item.ID)
		}
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), nil)
	resp, err := e.Recommend(context.Background(), Request{
		Preferences: &UserPreferences{UserID: "u1"},
	})
	if err != nil {
		t.Fatalf("empty catalog must not error: %v", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Errorf("expected empty result, got %d items", len(resp.Recommendations))
	}
}

func TestRecommendMaxResultsBounds(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, nil)
	prefs := &UserPreferences{UserID: "u1", PreferredParks: []Park{ParkMagicKingdom}}

	resp, err := e.Recommend(context.Background(), Request{
		Items:       scenarioCatalog(),
		Preferences: prefs,
		MaxResults:  1,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(resp.Recommendations))
	}
	if resp.Recommendations[0].Item.ID != "coaster-a" {
		t.Errorf("expected the single best item, got %s", resp.Recommendations[0].Item.ID)
	}

	// Requests above the hard cap are clamped rather than rejected.
	over, err := e.Recommend(context.Background(), Request{
		Items:       scenarioCatalog(),
		Preferences: prefs,
		MaxResults:  cfg.Limits.MaxResults + 100,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(over.Recommendations) > cfg.Limits.MaxResults {
		t.Errorf("hard cap exceeded: %d", len(over.Recommendations))
	}
}

func TestRecommendDeterminism(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, nil)
	req := Request{
		Items: scenarioCatalog(),
		Preferences: &UserPreferences{
			UserID:         "u1",
			PreferredParks: []Park{ParkMagicKingdom},
		},
		Context: &RequestContext{TimeOfDay: TimeEvening, Weather: WeatherSunny},
	}

	first, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Recommend(context.Background(), req)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if !reflect.DeepEqual(first.Recommendations, again.Recommendations) {
			t.Fatal("repeated invocations produced different output")
		}
	}
}

func TestRecommendCache(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	provider := &mockProvider{items: scenarioCatalog()}
	e := newTestEngine(t, cfg, provider)

	now := time.Now()
	e.now = func() time.Time { return now }

	req := Request{Preferences: &UserPreferences{UserID: "u1", PreferredParks: []Park{ParkMagicKingdom}}}

	first, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first request must not be a cache hit")
	}

	second, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second identical request should hit the cache")
	}
	if !reflect.DeepEqual(first.Recommendations, second.Recommendations) {
		t.Error("cached response differs from original")
	}

	// Different preferences miss the cache.
	other, err := e.Recommend(context.Background(), Request{
		Preferences: &UserPreferences{UserID: "u2"},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if other.Metadata.CacheHit {
		t.Error("different profile must not hit the cache")
	}

	// Expiry: advance past the TTL and the entry is gone.
	now = now.Add(cfg.Cache.TTL + time.Second)
	expired, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if expired.Metadata.CacheHit {
		t.Error("expired entry served from cache")
	}

	requests, hits := e.Stats()
	if requests != 4 || hits != 1 {
		t.Errorf("Stats() = (%d, %d), want (4, 1)", requests, hits)
	}
}

func TestRecommendCacheKeyedOnItemContent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), nil)
	prefs := &UserPreferences{UserID: "u1", PreferredParks: []Park{ParkMagicKingdom}}

	loved := testAttraction("coaster-a", ParkMagicKingdom, AttractionThrill)
	loved.Rating = &Rating{Average: 4.8, Count: 15000}
	first, err := e.Recommend(context.Background(), Request{
		Items:       []Item{loved},
		Preferences: prefs,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	// Same ID, different content: the earlier scores no longer apply.
	panned := testAttraction("coaster-a", ParkMagicKingdom, AttractionThrill)
	panned.Rating = &Rating{Average: 1.2, Count: 15000}
	second, err := e.Recommend(context.Background(), Request{
		Items:       []Item{panned},
		Preferences: prefs,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if second.Metadata.CacheHit {
		t.Fatal("item with changed content served from cache")
	}
	if len(first.Recommendations) != 1 || len(second.Recommendations) != 1 {
		t.Fatalf("expected single recommendations, got %d and %d",
			len(first.Recommendations), len(second.Recommendations))
	}
	if first.Recommendations[0].Score <= second.Recommendations[0].Score {
		t.Errorf("panned rescore (%v) should drop below original (%v)",
			second.Recommendations[0].Score, first.Recommendations[0].Score)
	}
}

func TestUpdateConfigInvalidatesCache(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), nil)
	req := Request{
		Items:       scenarioCatalog(),
		Preferences: &UserPreferences{UserID: "u1", PreferredParks: []Park{ParkMagicKingdom}},
	}

	if _, err := e.Recommend(context.Background(), req); err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Weights.PreferredPark = 2.0
	if err := e.UpdateConfig(cfg); err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}
	if got := e.Config().Weights.PreferredPark; got != 2.0 {
		t.Errorf("config not swapped: %v", got)
	}

	resp, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Metadata.CacheHit {
		t.Error("cache must be invalidated after a config update")
	}

	bad := DefaultConfig()
	bad.Diversity.Allowance = 0
	if err := e.UpdateConfig(bad); err == nil {
		t.Error("expected error for invalid config update")
	}
}

func TestRecommendForUser(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		items: scenarioCatalog(),
		prefs: map[string]*UserPreferences{
			"alice": {
				UserID:                   "alice",
				PreferredParks:           []Park{ParkMagicKingdom},
				PreferredAttractionTypes: []AttractionType{AttractionThrill},
			},
		},
	}
	e := newTestEngine(t, DefaultConfig(), provider)

	resp, err := e.RecommendForUser(context.Background(), "alice", nil, 5)
	if err != nil {
		t.Fatalf("RecommendForUser: %v", err)
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(resp.Recommendations))
	}

	// Unknown users get an empty profile over the same catalog.
	resp2, err := e.RecommendForUser(context.Background(), "stranger", nil, 5)
	if err != nil {
		t.Fatalf("RecommendForUser: %v", err)
	}
	for _, r := range resp2.Recommendations {
		if r.HasAvoidanceReason() {
			t.Error("empty profile cannot produce avoidance reasons")
		}
	}

	noProvider := newTestEngine(t, DefaultConfig(), nil)
	if _, err := noProvider.RecommendForUser(context.Background(), "alice", nil, 5); err == nil {
		t.Error("expected error without a catalog provider")
	}
}

func TestRecommendProviderError(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{itemsErr: errors.New("store unavailable")}
	e := newTestEngine(t, DefaultConfig(), provider)

	_, err := e.Recommend(context.Background(), Request{
		Preferences: &UserPreferences{UserID: "u1"},
	})
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestEngineFilterRewritesSource(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), nil)
	resp, err := e.Recommend(context.Background(), Request{
		Items:       scenarioCatalog(),
		Preferences: &UserPreferences{UserID: "u1", PreferredParks: []Park{ParkMagicKingdom}},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	filtered := e.Filter(Filters{MaxWaitMinutes: intPtr(50)}, resp.Recommendations)
	if len(filtered) != 1 || filtered[0].Item.ID != "coaster-b" {
		t.Fatalf("expected only coaster-b under 50 min wait, got %v", ids(filtered))
	}
	if filtered[0].Source != SourceFiltered {
		t.Errorf("expected filtered source tag, got %s", filtered[0].Source)
	}
	// Originals are untouched.
	for _, r := range resp.Recommendations {
		if r.Source != SourcePersonalized {
			t.Errorf("original recommendation mutated: %s", r.Source)
		}
	}
}
