// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package recommend

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// CatalogProvider supplies items and preference profiles to the engine.
// Defined here rather than in the storage package so the engine does not
// depend on any concrete store.
type CatalogProvider interface {
	// Items returns the full recommendable catalog snapshot.
	Items(ctx context.Context) ([]Item, error)

	// Preferences returns the stored profile for userID. Implementations
	// return an empty profile, not an error, for unknown users.
	Preferences(ctx context.Context, userID string) (*UserPreferences, error)
}

// Engine runs the full recommendation pipeline: score every catalog item
// against a preference profile, rank with diversity penalties, and cache
// the response. Scoring itself is pure; the engine adds the response
// cache and the optional catalog provider around it.
type Engine struct {
	mu     sync.RWMutex
	cfg    Config
	scorer *Scorer
	ranker *Ranker

	provider CatalogProvider
	logger   zerolog.Logger

	cacheMu sync.Mutex
	cache   map[uint64]cacheEntry

	// now is swapped in tests for deterministic cache expiry.
	now func() time.Time

	requestsTotal  atomic.Int64
	cacheHitsTotal atomic.Int64
}

type cacheEntry struct {
	resp    Response
	expires time.Time
}

// NewEngine builds an engine with the given configuration. The provider
// may be nil when callers always supply items inline with each request.
func NewEngine(cfg Config, provider CatalogProvider, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommend: invalid config: %w", err)
	}
	return &Engine{
		cfg:      cfg,
		scorer:   NewScorer(cfg),
		ranker:   NewRanker(cfg),
		provider: provider,
		logger:   logger.With().Str("component", "recommend").Logger(),
		cache:    make(map[uint64]cacheEntry),
		now:      time.Now,
	}, nil
}

// Config returns a copy of the engine's current configuration.
func (e *Engine) Config() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.Clone()
}

// UpdateConfig swaps the engine configuration after validating it and
// invalidates the response cache, since cached scores were produced under
// the old weights.
func (e *Engine) UpdateConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("recommend: invalid config: %w", err)
	}
	e.mu.Lock()
	e.cfg = cfg
	e.scorer = NewScorer(cfg)
	e.ranker = NewRanker(cfg)
	e.mu.Unlock()

	e.cacheMu.Lock()
	e.cache = make(map[uint64]cacheEntry)
	e.cacheMu.Unlock()

	e.logger.Info().Msg("engine configuration updated, cache invalidated")
	return nil
}

// Recommend scores and ranks the request's items for its preference
// profile. When the request carries no items and the engine has a catalog
// provider, the catalog is fetched from the provider. An empty catalog
// yields an empty response, not an error.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	if req.Preferences == nil {
		return nil, fmt.Errorf("recommend: request missing preferences")
	}

	e.requestsTotal.Add(1)
	start := e.now()

	e.mu.RLock()
	cfg := e.cfg
	scorer := e.scorer
	ranker := e.ranker
	e.mu.RUnlock()

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = cfg.Limits.DefaultMaxResults
	}
	if maxResults > cfg.Limits.MaxResults {
		maxResults = cfg.Limits.MaxResults
	}

	items := req.Items
	if len(items) == 0 && e.provider != nil {
		fetched, err := e.provider.Items(ctx)
		if err != nil {
			return nil, fmt.Errorf("recommend: fetching catalog: %w", err)
		}
		items = fetched
	}

	key := e.cacheKey(items, req.Preferences, req.Context, maxResults)
	if cfg.Cache.Enabled {
		if resp, ok := e.cacheGet(key); ok {
			e.cacheHitsTotal.Add(1)
			resp.Metadata.CacheHit = true
			e.logger.Debug().
				Str("user_id", req.Preferences.UserID).
				Int("returned", len(resp.Recommendations)).
				Msg("recommendation served from cache")
			return &resp, nil
		}
	}

	candidates := make([]Recommendation, 0, len(items))
	for i := range items {
		if rec := scorer.Score(&items[i], req.Preferences, req.Context); rec != nil {
			candidates = append(candidates, *rec)
		}
	}

	ranked := ranker.Rank(candidates, maxResults)

	resp := Response{
		Recommendations: ranked,
		Metadata: ResponseMetadata{
			CandidateCount: len(items),
			ScoredCount:    len(candidates),
			ReturnedCount:  len(ranked),
			Elapsed:        e.now().Sub(start),
			GeneratedAt:    start.UTC(),
		},
	}

	if cfg.Cache.Enabled {
		e.cachePut(key, resp, cfg.Cache)
	}

	e.logger.Debug().
		Str("user_id", req.Preferences.UserID).
		Int("candidates", len(items)).
		Int("scored", len(candidates)).
		Int("returned", len(ranked)).
		Dur("elapsed", resp.Metadata.Elapsed).
		Msg("recommendations generated")

	return &resp, nil
}

// RecommendForUser fetches the stored profile for userID from the catalog
// provider and runs Recommend over the full catalog.
func (e *Engine) RecommendForUser(ctx context.Context, userID string, rctx *RequestContext, maxResults int) (*Response, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("recommend: no catalog provider configured")
	}
	prefs, err := e.provider.Preferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recommend: fetching preferences for %s: %w", userID, err)
	}
	return e.Recommend(ctx, Request{
		Preferences: prefs,
		Context:     rctx,
		MaxResults:  maxResults,
	})
}

// Filter applies hard constraints and re-sorting to an existing
// recommendation list. Pure passthrough to Filters.Apply, with the source
// tag rewritten so callers can tell filtered output from fresh scoring.
func (e *Engine) Filter(f Filters, recs []Recommendation) []Recommendation {
	out := f.Apply(recs)
	for i := range out {
		out[i].Source = SourceFiltered
	}
	return out
}

// Stats reports engine counters since construction.
func (e *Engine) Stats() (requests, cacheHits int64) {
	return e.requestsTotal.Load(), e.cacheHitsTotal.Load()
}

func (e *Engine) cacheGet(key uint64) (Response, bool) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	entry, ok := e.cache[key]
	if !ok || e.now().After(entry.expires) {
		if ok {
			delete(e.cache, key)
		}
		return Response{}, false
	}
	return entry.resp, true
}

func (e *Engine) cachePut(key uint64, resp Response, cc CacheConfig) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	// Evict expired entries first; if still full, drop the soonest-expiring.
	if len(e.cache) >= cc.MaxEntries {
		now := e.now()
		for k, v := range e.cache {
			if now.After(v.expires) {
				delete(e.cache, k)
			}
		}
	}
	if len(e.cache) >= cc.MaxEntries {
		var oldest uint64
		var oldestExp time.Time
		first := true
		for k, v := range e.cache {
			if first || v.expires.Before(oldestExp) {
				oldest, oldestExp, first = k, v.expires, false
			}
		}
		delete(e.cache, oldest)
	}

	e.cache[key] = cacheEntry{resp: resp, expires: e.now().Add(cc.TTL)}
}

// cacheKey hashes the identity of a request: the canonical JSON encoding
// of each item, the preference profile's discriminating fields, context,
// and the result bound. Items are hashed in full so an inline item that
// reuses an ID with different content cannot alias a cached response.
// FNV-1a keeps this cheap relative to scoring.
func (e *Engine) cacheKey(items []Item, prefs *UserPreferences, rctx *RequestContext, maxResults int) uint64 {
	h := fnv.New64a()
	write := func(s string) {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}

	sorted := make([]*Item, len(items))
	for i := range items {
		sorted[i] = &items[i]
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, it := range sorted {
		encoded, err := json.Marshal(it)
		if err != nil {
			write(it.ID)
			continue
		}
		_, _ = h.Write(encoded)
		_, _ = h.Write([]byte{0})
	}

	write(prefs.UserID)
	for _, p := range prefs.PreferredParks {
		write(string(p))
	}
	for _, t := range prefs.PreferredAttractionTypes {
		write(string(t))
	}
	for _, t := range prefs.AvoidedAttractionTypes {
		write(string(t))
	}
	for _, t := range prefs.PreferredDiningTypes {
		write(string(t))
	}
	for _, t := range prefs.PreferredPriceTiers {
		write(string(t))
	}
	for _, c := range prefs.FavoriteCharacters {
		write(c)
	}
	for _, v := range prefs.PastVisits {
		write(v.ItemID)
		if v.Rating != nil {
			write(fmt.Sprintf("%.1f", *v.Rating))
		}
	}
	write(string(prefs.PreferredIntensity))

	if rctx != nil {
		write(string(rctx.TimeOfDay))
		write(string(rctx.CurrentPark))
		write(string(rctx.Weather))
	}
	write(fmt.Sprintf("%d", maxResults))
	return h.Sum64()
}
