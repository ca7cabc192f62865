// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package recommend

import "sort"

// Ranker orders scored candidates and applies the diversity penalty that
// keeps one sub-category from flooding the results. Like the Scorer it is
// stateless beyond configuration and safe for concurrent use.
type Ranker struct {
	cfg Config
}

// NewRanker returns a ranker using the given configuration.
func NewRanker(cfg Config) *Ranker {
	return &Ranker{cfg: cfg}
}

// Rank sorts candidates, applies diversity penalties, drops entries below
// the inclusion threshold, and truncates to maxResults. The input slice is
// not modified; accepted entries are fresh copies carrying their penalized
// score.
//
// Ordering is deterministic: priority descending, then score descending,
// then item ID ascending as the final tie-break.
func (r *Ranker) Rank(candidates []Recommendation, maxResults int) []Recommendation {
	if maxResults <= 0 || len(candidates) == 0 {
		return []Recommendation{}
	}

	sorted := make([]Recommendation, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Item.ID < sorted[j].Item.ID
	})

	var (
		accepted  = make([]Recommendation, 0, min(maxResults, len(sorted)))
		keyCounts = make(map[string]int)
		allowance = r.cfg.Diversity.Allowance
		factor    = r.cfg.Diversity.PenaltyFactor
		threshold = r.cfg.Thresholds.Inclusion
	)

	for i := range sorted {
		if len(accepted) >= maxResults {
			break
		}
		cand := sorted[i]
		key := cand.Item.DiversityKey()

		score := cand.Score
		if n := keyCounts[key]; n >= allowance {
			// Each occurrence beyond the allowance compounds the penalty.
			score -= float64(n-allowance+1) * factor
			if score < 0 {
				score = 0
			}
		}

		// Items below the inclusion threshold are dropped unless they
		// carry an avoidance justification, which is kept so callers can
		// surface "why not" to the user.
		if score <= threshold && !cand.HasAvoidanceReason() {
			continue
		}

		out := cand
		out.Score = score
		accepted = append(accepted, out)
		keyCounts[key]++
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].Score != accepted[j].Score {
			return accepted[i].Score > accepted[j].Score
		}
		return accepted[i].Item.ID < accepted[j].Item.ID
	})
	return accepted
}
