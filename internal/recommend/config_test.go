// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package recommend

import (
	"math"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"positive avoided weight", func(c *Config) { c.Weights.AvoidedType = 0.5 }},
		{"positive past-negative weight", func(c *Config) { c.Weights.PastNegativeVisit = 0 }},
		{"negative popularity weight", func(c *Config) { c.Weights.Popularity = -1 }},
		{"negative user rating weight", func(c *Config) { c.Weights.UserRating = -0.5 }},
		{"negative character weight", func(c *Config) { c.Weights.Character = -0.1 }},
		{"zero popularity count", func(c *Config) { c.Thresholds.PopularityCount = 0 }},
		{"high rating out of range", func(c *Config) { c.Thresholds.HighRating = 5.5 }},
		{"zero epsilon", func(c *Config) { c.Thresholds.ScoreEpsilon = 0 }},
		{"negative inclusion threshold", func(c *Config) { c.Thresholds.Inclusion = -0.1 }},
		{"negative penalty factor", func(c *Config) { c.Diversity.PenaltyFactor = -1 }},
		{"zero diversity allowance", func(c *Config) { c.Diversity.Allowance = 0 }},
		{"inverted normalization bounds", func(c *Config) { c.Normalization.RawMin, c.Normalization.RawMax = 3, -1 }},
		{"zero default max results", func(c *Config) { c.Limits.DefaultMaxResults = 0 }},
		{"max below default", func(c *Config) { c.Limits.MaxResults = 1 }},
		{"cache enabled without ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"cache enabled without capacity", func(c *Config) { c.Cache.MaxEntries = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Weights.Popularity = 99

	if cfg.Weights.Popularity == 99 {
		t.Error("Clone shares state with the original")
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"midpoint", 2.5, 0, 5, 0.5},
		{"at lower bound", 0, 0, 5, 0},
		{"at upper bound", 5, 0, 5, 1},
		{"below range clamps", -1, 0, 5, 0},
		{"above range clamps", 10, 0, 5, 1},
		{"degenerate range", 3, 5, 5, 0},
		{"rating scale", 4, 1, 5, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalize(tt.v, tt.lo, tt.hi); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("normalize(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestNormalizationRescale(t *testing.T) {
	t.Parallel()

	clamped := Normalization{RawMin: -1, RawMax: 3, Clamp: true}
	unclamped := Normalization{RawMin: -1, RawMax: 3, Clamp: false}

	tests := []struct {
		name string
		n    Normalization
		raw  float64
		want float64
	}{
		{"raw min maps to 0", clamped, -1, 0},
		{"raw max maps to 1", clamped, 3, 1},
		{"midrange", clamped, 1, 0.5},
		{"below range clamps to 0", clamped, -2, 0},
		{"above range clamps to 1", clamped, 5, 1},
		{"below range unclamped goes negative", unclamped, -2, -0.25},
		{"above range unclamped exceeds 1", unclamped, 5, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.n.rescale(tt.raw); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("rescale(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
