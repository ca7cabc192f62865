// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package recommend

import (
	"fmt"
	"time"
)

// Weights holds the scorer term weights. Every weight is tunable at
// runtime. Boost terms must be non-negative; AvoidedType and
// PastNegativeVisit are penalties and must be negative.
type Weights struct {
	// Popularity scales the normalized rating count.
	Popularity float64 `json:"popularity" koanf:"popularity"`

	// UserRating scales the normalized rating average.
	UserRating float64 `json:"user_rating" koanf:"user_rating"`

	// PreferredPark is added when the item's park is in the user's
	// preferred parks. The current-park boost is 1.5x this weight.
	PreferredPark float64 `json:"preferred_park" koanf:"preferred_park"`

	// PreferredType is added when an attraction or dining sub-type is in
	// the matching preferred list.
	PreferredType float64 `json:"preferred_type" koanf:"preferred_type"`

	// AvoidedType is the penalty for avoided attraction sub-types.
	// Must be negative.
	AvoidedType float64 `json:"avoided_type" koanf:"avoided_type"`

	// IntensityMatch is added when an attraction's thrill level equals
	// the user's preferred intensity.
	IntensityMatch float64 `json:"intensity_match" koanf:"intensity_match"`

	// PriceMatch is added when a dining price tier is in the user's
	// preferred tiers.
	PriceMatch float64 `json:"price_match" koanf:"price_match"`

	// PastPositiveVisit rewards a prior visit rated 4 or higher.
	PastPositiveVisit float64 `json:"past_positive_visit" koanf:"past_positive_visit"`

	// PastNegativeVisit penalizes a prior visit rated 2 or lower.
	// Must be negative.
	PastNegativeVisit float64 `json:"past_negative_visit" koanf:"past_negative_visit"`

	// TimeOfDay boosts fireworks shows in the evening and at night.
	TimeOfDay float64 `json:"time_of_day" koanf:"time_of_day"`

	// Weather scales the indoor boost on rainy days; the applied boost
	// is 0.5x this weight.
	Weather float64 `json:"weather" koanf:"weather"`

	// Character is added when a favorite character appears in the item
	// name, description, or tags.
	Character float64 `json:"character" koanf:"character"`

	// HiddenGem boosts highly rated items with few ratings.
	HiddenGem float64 `json:"hidden_gem" koanf:"hidden_gem"`
}

// Thresholds holds the scorer cut points.
type Thresholds struct {
	// PopularityCount is the rating count above which an item counts as
	// popular; hidden gems sit below it. Popularity normalization spans
	// [0, 2*PopularityCount].
	PopularityCount int `json:"popularity_count" koanf:"popularity_count"`

	// HighRating is the minimum average for the hidden-gem boost.
	HighRating float64 `json:"high_rating" koanf:"high_rating"`

	// ScoreEpsilon is the floor applied to negative raw scores that
	// carry no avoidance justification.
	ScoreEpsilon float64 `json:"score_epsilon" koanf:"score_epsilon"`

	// Inclusion is the minimum penalized score for an item to be
	// accepted during ranking, unless it carries an avoidance reason.
	Inclusion float64 `json:"inclusion" koanf:"inclusion"`
}

// Diversity holds the re-ranking penalty parameters.
type Diversity struct {
	// PenaltyFactor is subtracted once per occurrence beyond Allowance
	// of the same diversity key.
	PenaltyFactor float64 `json:"penalty_factor" koanf:"penalty_factor"`

	// Allowance is how many items of one diversity key are accepted
	// before penalties start.
	Allowance int `json:"allowance" koanf:"allowance"`
}

// Normalization holds the linear rescale bounds applied to raw additive
// scores. The bounds are a tunable approximation of the reachable score
// range rather than a derived mathematical bound; Clamp pins the result
// to [0,1] when extreme weight combinations escape the assumed range.
type Normalization struct {
	RawMin float64 `json:"raw_min" koanf:"raw_min"`
	RawMax float64 `json:"raw_max" koanf:"raw_max"`
	Clamp  bool    `json:"clamp" koanf:"clamp"`
}

// Limits bounds result sizes.
type Limits struct {
	// DefaultMaxResults is used when a request does not set MaxResults.
	DefaultMaxResults int `json:"default_max_results" koanf:"default_max_results"`

	// MaxResults is the hard upper bound a request may ask for.
	MaxResults int `json:"max_results" koanf:"max_results"`
}

// CacheConfig controls the engine's response cache.
type CacheConfig struct {
	Enabled    bool          `json:"enabled" koanf:"enabled"`
	TTL        time.Duration `json:"ttl" koanf:"ttl"`
	MaxEntries int           `json:"max_entries" koanf:"max_entries"`
}

// Config is the full engine configuration. Construct with DefaultConfig
// and adjust fields; pass to NewEngine. The engine copies the config at
// construction, so later mutation of the caller's copy has no effect.
type Config struct {
	Weights       Weights       `json:"weights" koanf:"weights"`
	Thresholds    Thresholds    `json:"thresholds" koanf:"thresholds"`
	Diversity     Diversity     `json:"diversity" koanf:"diversity"`
	Normalization Normalization `json:"normalization" koanf:"normalization"`
	Limits        Limits        `json:"limits" koanf:"limits"`
	Cache         CacheConfig   `json:"cache" koanf:"cache"`
}

// DefaultConfig returns the production defaults for the scoring engine.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Popularity:        0.5,
			UserRating:        0.8,
			PreferredPark:     1.0,
			PreferredType:     1.2,
			AvoidedType:       -2.0,
			IntensityMatch:    0.9,
			PriceMatch:        0.6,
			PastPositiveVisit: 1.0,
			PastNegativeVisit: -1.5,
			TimeOfDay:         0.7,
			Weather:           0.8,
			Character:         1.1,
			HiddenGem:         0.6,
		},
		Thresholds: Thresholds{
			PopularityCount: 1000,
			HighRating:      4.5,
			ScoreEpsilon:    0.01,
			Inclusion:       0.1,
		},
		Diversity: Diversity{
			PenaltyFactor: 0.15,
			Allowance:     2,
		},
		Normalization: Normalization{
			RawMin: -1,
			RawMax: 3,
			Clamp:  true,
		},
		Limits: Limits{
			DefaultMaxResults: 10,
			MaxResults:        50,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	boosts := []struct {
		name  string
		value float64
	}{
		{"popularity", c.Weights.Popularity},
		{"user_rating", c.Weights.UserRating},
		{"preferred_park", c.Weights.PreferredPark},
		{"preferred_type", c.Weights.PreferredType},
		{"intensity_match", c.Weights.IntensityMatch},
		{"price_match", c.Weights.PriceMatch},
		{"past_positive_visit", c.Weights.PastPositiveVisit},
		{"time_of_day", c.Weights.TimeOfDay},
		{"weather", c.Weights.Weather},
		{"character", c.Weights.Character},
		{"hidden_gem", c.Weights.HiddenGem},
	}
	for _, w := range boosts {
		if w.value < 0 {
			return fmt.Errorf("config: %s weight must be non-negative, got %v", w.name, w.value)
		}
	}
	if c.Weights.AvoidedType >= 0 {
		return fmt.Errorf("config: avoided_type weight must be negative, got %v", c.Weights.AvoidedType)
	}
	if c.Weights.PastNegativeVisit >= 0 {
		return fmt.Errorf("config: past_negative_visit weight must be negative, got %v", c.Weights.PastNegativeVisit)
	}
	if c.Thresholds.PopularityCount <= 0 {
		return fmt.Errorf("config: popularity_count must be positive, got %d", c.Thresholds.PopularityCount)
	}
	if c.Thresholds.HighRating < 1 || c.Thresholds.HighRating > 5 {
		return fmt.Errorf("config: high_rating must be in [1,5], got %v", c.Thresholds.HighRating)
	}
	if c.Thresholds.ScoreEpsilon <= 0 {
		return fmt.Errorf("config: score_epsilon must be positive, got %v", c.Thresholds.ScoreEpsilon)
	}
	if c.Thresholds.Inclusion < 0 {
		return fmt.Errorf("config: inclusion threshold must be non-negative, got %v", c.Thresholds.Inclusion)
	}
	if c.Diversity.PenaltyFactor < 0 {
		return fmt.Errorf("config: diversity penalty_factor must be non-negative, got %v", c.Diversity.PenaltyFactor)
	}
	if c.Diversity.Allowance < 1 {
		return fmt.Errorf("config: diversity allowance must be at least 1, got %d", c.Diversity.Allowance)
	}
	if c.Normalization.RawMax <= c.Normalization.RawMin {
		return fmt.Errorf("config: normalization raw_max (%v) must exceed raw_min (%v)",
			c.Normalization.RawMax, c.Normalization.RawMin)
	}
	if c.Limits.DefaultMaxResults < 1 {
		return fmt.Errorf("config: default_max_results must be at least 1, got %d", c.Limits.DefaultMaxResults)
	}
	if c.Limits.MaxResults < c.Limits.DefaultMaxResults {
		return fmt.Errorf("config: max_results (%d) must be at least default_max_results (%d)",
			c.Limits.MaxResults, c.Limits.DefaultMaxResults)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("config: cache ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("config: cache max_entries must be at least 1, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() Config {
	// All fields are value types, so a shallow copy is a deep copy.
	return *c
}

// normalize maps v from [lo,hi] to [0,1], clamped at both ends.
// Identical bounds yield 0 rather than dividing by zero.
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	n := (v - lo) / (hi - lo)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// rescale maps a raw additive score into display range using the
// configured bounds, clamping to [0,1] when enabled.
func (n Normalization) rescale(raw float64) float64 {
	span := n.RawMax - n.RawMin
	if span <= 0 {
		return raw
	}
	scaled := (raw - n.RawMin) / span
	if n.Clamp {
		if scaled < 0 {
			return 0
		}
		if scaled > 1 {
			return 1
		}
	}
	return scaled
}
