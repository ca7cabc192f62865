// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package recommend

import (
	"reflect"
	"testing"
)

// filterFixture is a mixed recommendation list sorted by score.
func filterFixture() []Recommendation {
	thrillWithWait := func(id string, wait int, score float64, avg float64, count int) Recommendation {
		it := testAttraction(id, ParkMagicKingdom, AttractionThrill)
		it.Attraction.WaitMinutes = intPtr(wait)
		it.Attraction.LightningLane = wait >= 60
		it.Rating = &Rating{Average: avg, Count: count}
		return Recommendation{Item: it, Score: score, Source: SourcePersonalized}
	}

	dining := testDining("rest-1", ParkEpcot, DiningTableService, PriceTier3)
	dining.Rating = &Rating{Average: 4.9, Count: 800}

	noWait := testAttraction("parade-1", ParkMagicKingdom, AttractionParade)
	noWait.Rating = &Rating{Average: 4.2, Count: 5000}

	return []Recommendation{
		thrillWithWait("coaster-a", 75, 0.9, 4.8, 15000),
		thrillWithWait("coaster-b", 45, 0.8, 4.6, 12000),
		{Item: dining, Score: 0.7, Source: SourcePersonalized},
		{Item: noWait, Score: 0.6, Source: SourcePersonalized},
	}
}

func ids(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i := range recs {
		out[i] = recs[i].Item.ID
	}
	return out
}

func TestFiltersPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{
			name:    "no constraints keeps everything",
			filters: DefaultFilters(),
			want:    []string{"coaster-a", "coaster-b", "rest-1", "parade-1"},
		},
		{
			name:    "park filter",
			filters: Filters{Park: ParkEpcot},
			want:    []string{"rest-1"},
		},
		{
			name:    "kind filter",
			filters: Filters{Kind: KindAttraction},
			want:    []string{"coaster-a", "coaster-b", "parade-1"},
		},
		{
			name:    "attraction sub-type filter",
			filters: Filters{AttractionType: AttractionThrill},
			want:    []string{"coaster-a", "coaster-b"},
		},
		{
			name:    "dining sub-type filter",
			filters: Filters{DiningType: DiningTableService},
			want:    []string{"rest-1"},
		},
		{
			name:    "price tier filter",
			filters: Filters{PriceTier: PriceTier3},
			want:    []string{"rest-1"},
		},
		{
			name:    "price tier filter excludes non-dining",
			filters: Filters{PriceTier: PriceTier1},
			want:    []string{},
		},
		{
			name:    "lightning lane only",
			filters: Filters{LightningLaneOnly: true},
			want:    []string{"coaster-a"},
		},
		{
			name:    "genie plus only matches nothing here",
			filters: Filters{GeniePlusOnly: true},
			want:    []string{},
		},
		{
			name:    "max wait drops long waits, unposted waits pass",
			filters: Filters{MaxWaitMinutes: intPtr(50)},
			want:    []string{"coaster-b", "rest-1", "parade-1"},
		},
		{
			name:    "conjunctive predicates",
			filters: Filters{Kind: KindAttraction, MaxWaitMinutes: intPtr(50), AttractionType: AttractionThrill},
			want:    []string{"coaster-b"},
		},
		{
			name:    "max results truncates",
			filters: Filters{MaxResults: 2},
			want:    []string{"coaster-a", "coaster-b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ids(tt.filters.Apply(filterFixture()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFiltersSortKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{
			name:    "relevance keeps score order",
			filters: Filters{SortBy: SortRelevance},
			want:    []string{"coaster-a", "coaster-b", "rest-1", "parade-1"},
		},
		{
			name:    "popularity sorts by rating count",
			filters: Filters{SortBy: SortPopularity},
			want:    []string{"coaster-a", "coaster-b", "parade-1", "rest-1"},
		},
		{
			name:    "rating sorts by rating average",
			filters: Filters{SortBy: SortRating},
			want:    []string{"rest-1", "coaster-a", "coaster-b", "parade-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ids(tt.filters.Apply(filterFixture()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFiltersIdempotence(t *testing.T) {
	t.Parallel()

	f := Filters{Kind: KindAttraction, MaxWaitMinutes: intPtr(80), SortBy: SortPopularity, MaxResults: 3}
	once := f.Apply(filterFixture())
	twice := f.Apply(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering is not idempotent:\nonce  = %v\ntwice = %v", ids(once), ids(twice))
	}
}

func TestFiltersDoNotMutateInput(t *testing.T) {
	t.Parallel()

	input := filterFixture()
	before := make([]Recommendation, len(input))
	copy(before, input)

	_ = Filters{SortBy: SortPopularity, MaxResults: 1}.Apply(input)

	if !reflect.DeepEqual(input, before) {
		t.Error("Apply mutated its input slice")
	}
}

func TestFiltersRelevanceStability(t *testing.T) {
	t.Parallel()

	// An already score-sorted list must come back in the same order.
	input := filterFixture()
	got := Filters{SortBy: SortRelevance}.Apply(input)
	if !reflect.DeepEqual(ids(got), ids(input)) {
		t.Errorf("relevance sort reordered a sorted list: %v", ids(got))
	}
}

func TestSortKeyValid(t *testing.T) {
	t.Parallel()

	for _, k := range []SortKey{SortRelevance, SortPopularity, SortRating} {
		if !k.Valid() {
			t.Errorf("expected %q to be valid", k)
		}
	}
	if SortKey("wait").Valid() {
		t.Error("unexpected valid sort key")
	}
}
