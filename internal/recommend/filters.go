// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package recommend

import "sort"

// SortKey selects the re-sort order applied after filtering.
type SortKey string

// Supported sort keys.
const (
	SortRelevance  SortKey = "relevance"
	SortPopularity SortKey = "popularity"
	SortRating     SortKey = "rating"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortRelevance, SortPopularity, SortRating:
		return true
	}
	return false
}

// Filters narrows an existing recommendation list by hard constraints.
// Every predicate is optional; the zero value matches everything. All
// predicates are conjunctive.
type Filters struct {
	// Park keeps only items in the given park.
	Park Park `json:"park,omitempty" validate:"omitempty,park"`

	// Kind keeps only items of the given top-level kind.
	Kind ItemKind `json:"kind,omitempty" validate:"omitempty,itemkind"`

	// AttractionType keeps only attractions of the given sub-type.
	AttractionType AttractionType `json:"attractionType,omitempty" validate:"omitempty,attractiontype"`

	// DiningType keeps only dining of the given sub-type.
	DiningType DiningType `json:"diningType,omitempty" validate:"omitempty,diningtype"`

	// PriceTier keeps only dining at the given tier.
	PriceTier PriceTier `json:"priceTier,omitempty" validate:"omitempty,pricetier"`

	// LightningLaneOnly and GeniePlusOnly keep only attractions offering
	// the respective priority-access scheme.
	LightningLaneOnly bool `json:"lightningLaneOnly,omitempty"`
	GeniePlusOnly     bool `json:"geniePlusOnly,omitempty"`

	// MaxWaitMinutes drops attractions whose posted wait exceeds it.
	// Items without a posted wait always pass.
	MaxWaitMinutes *int `json:"maxWaitMinutes,omitempty" validate:"omitempty,gte=0"`

	// SortBy selects the re-sort order; empty means relevance.
	SortBy SortKey `json:"sortBy,omitempty" validate:"omitempty,sortkey"`

	// MaxResults truncates the filtered list; 0 means no truncation
	// beyond the input length.
	MaxResults int `json:"maxResults,omitempty" validate:"gte=0"`
}

// DefaultFilters returns the unconstrained filter spec: everything
// matches, sorted by relevance, untruncated.
func DefaultFilters() Filters {
	return Filters{SortBy: SortRelevance}
}

// Apply narrows recs by the filter predicates, re-sorts by the selected
// key, and truncates to MaxResults. The input slice is never modified; a
// new slice is returned on every call. Missing optional item data is
// treated as non-matching for the predicate that needs it, never as an
// error.
func (f Filters) Apply(recs []Recommendation) []Recommendation {
	out := make([]Recommendation, 0, len(recs))
	for i := range recs {
		if f.matches(&recs[i].Item) {
			out = append(out, recs[i])
		}
	}

	switch f.SortBy {
	case SortPopularity:
		sort.SliceStable(out, func(i, j int) bool {
			return ratingCount(&out[i].Item) > ratingCount(&out[j].Item)
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return ratingAverage(&out[i].Item) > ratingAverage(&out[j].Item)
		})
	default:
		// Relevance: score descending. Stable so an already score-sorted
		// input keeps its order.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Score > out[j].Score
		})
	}

	if f.MaxResults > 0 && len(out) > f.MaxResults {
		out = out[:f.MaxResults]
	}
	return out
}

func (f Filters) matches(it *Item) bool {
	if f.Park != "" && it.Park != f.Park {
		return false
	}
	if f.Kind != "" && it.Kind != f.Kind {
		return false
	}
	if f.AttractionType != "" {
		if it.Kind != KindAttraction || it.Attraction == nil || it.Attraction.Type != f.AttractionType {
			return false
		}
	}
	if f.DiningType != "" {
		if it.Kind != KindDining || it.Dining == nil || it.Dining.Type != f.DiningType {
			return false
		}
	}
	if f.PriceTier != "" {
		if it.Kind != KindDining || it.Dining == nil || it.Dining.PriceTier != f.PriceTier {
			return false
		}
	}
	if f.LightningLaneOnly {
		if it.Kind != KindAttraction || it.Attraction == nil || !it.Attraction.LightningLane {
			return false
		}
	}
	if f.GeniePlusOnly {
		if it.Kind != KindAttraction || it.Attraction == nil || !it.Attraction.GeniePlus {
			return false
		}
	}
	if f.MaxWaitMinutes != nil && it.Kind == KindAttraction && it.Attraction != nil {
		// Wait-time filtering only constrains attractions with a posted
		// wait; unposted waits pass through.
		if w := it.Attraction.WaitMinutes; w != nil && *w > *f.MaxWaitMinutes {
			return false
		}
	}
	return true
}

func ratingCount(it *Item) int {
	if it.Rating == nil {
		return 0
	}
	return it.Rating.Count
}

func ratingAverage(it *Item) float64 {
	if it.Rating == nil {
		return 0
	}
	return it.Rating.Average
}
