// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package recommend

import (
	"slices"
	"strings"
)

// Scorer maps (item, preferences, context) to a Recommendation. It is a
// pure computation: it never mutates its inputs and holds no state beyond
// its configuration, so one Scorer is safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer returns a scorer using the given configuration.
// The config is copied; later changes to the caller's copy are ignored.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score evaluates one item against the user's preferences and the request
// context. It returns nil when the item earns no positive signal and no
// avoidance justification; such items never enter the candidate pool.
//
// Scoring is additive: each term applies only when its precondition holds
// and may record a justification string. A negative total without an
// avoidance match is floored at a small epsilon so that unrelated negative
// signals cannot silently suppress an item, while genuine avoidance keeps
// its low score. The raw total is then linearly rescaled into display
// range using the configured bounds.
func (s *Scorer) Score(it *Item, prefs *UserPreferences, rctx *RequestContext) *Recommendation {
	if it == nil || prefs == nil {
		return nil
	}

	var (
		raw     float64
		reasons []string
		w       = s.cfg.Weights
		th      = s.cfg.Thresholds
	)

	// Popularity and rating terms.
	if it.Rating != nil && it.Rating.Count > 0 {
		raw += w.Popularity * normalize(float64(it.Rating.Count), 0, float64(2*th.PopularityCount))
		if it.Rating.Count >= th.PopularityCount {
			reasons = append(reasons, reasonPopular(it.Rating.Count))
		}
	}
	if it.Rating != nil && it.Rating.Average > 0 {
		raw += w.UserRating * normalize(it.Rating.Average, 1, 5)
		if it.Rating.Average >= 4.0 {
			reasons = append(reasons, reasonHighlyRated(it.Rating.Average))
		}
	}

	// Park preference and current-park boost.
	if prefs.PrefersPark(it.Park) {
		raw += w.PreferredPark
		reasons = append(reasons, reasonPreferredPark(it.Park))
	}
	if rctx != nil && rctx.CurrentPark != "" && rctx.CurrentPark == it.Park {
		raw += 1.5 * w.PreferredPark
		reasons = append(reasons, reasonCurrentPark(it.Park))
	}

	// Variant-specific preference terms.
	switch it.Kind {
	case KindAttraction:
		if a := it.Attraction; a != nil {
			if slices.Contains(prefs.PreferredAttractionTypes, a.Type) {
				raw += w.PreferredType
				reasons = append(reasons, reasonPreferredAttractionType(a.Type))
			}
			if slices.Contains(prefs.AvoidedAttractionTypes, a.Type) {
				raw += w.AvoidedType
				reasons = append(reasons, reasonAvoidedType(a.Type))
			}
			if prefs.PreferredIntensity != "" && a.ThrillLevel == prefs.PreferredIntensity {
				raw += w.IntensityMatch
				reasons = append(reasons, reasonIntensityMatch(a.ThrillLevel))
			}
		}
	case KindDining:
		if d := it.Dining; d != nil {
			if slices.Contains(prefs.PreferredDiningTypes, d.Type) {
				raw += w.PreferredType
				reasons = append(reasons, reasonPreferredDiningType(d.Type))
			}
			if d.PriceTier != "" && slices.Contains(prefs.PreferredPriceTiers, d.PriceTier) {
				raw += w.PriceMatch
				reasons = append(reasons, reasonPriceMatch(d.PriceTier))
			}
		}
	case KindShow, KindEvent:
		// No sub-type preference lists exist for shows or events.
	}

	// Past-visit history.
	if visit := prefs.PastVisitFor(it.ID); visit != nil && visit.Rating != nil {
		switch {
		case *visit.Rating >= 4:
			raw += w.PastPositiveVisit
			reasons = append(reasons, reasonPastPositive())
		case *visit.Rating <= 2:
			raw += w.PastNegativeVisit
			reasons = append(reasons, reasonPastNegative())
		}
	}

	// Contextual terms.
	if rctx != nil {
		if isFireworks(it) && (rctx.TimeOfDay == TimeEvening || rctx.TimeOfDay == TimeNight) {
			raw += w.TimeOfDay
			reasons = append(reasons, reasonEveningFireworks())
		}
		if rctx.Weather == WeatherRainy && it.HasTag("indoor") {
			raw += 0.5 * w.Weather
			reasons = append(reasons, reasonRainyIndoor())
		}
	}

	// Favorite characters: case-insensitive substring match over name,
	// description, and tags.
	for _, name := range prefs.FavoriteCharacters {
		if name != "" && itemMentions(it, name) {
			raw += w.Character
			reasons = append(reasons, reasonFavoriteCharacter(name))
		}
	}

	// Hidden gem: high average, low count.
	if it.Rating != nil && it.Rating.Count > 0 &&
		it.Rating.Average >= th.HighRating && it.Rating.Count < th.PopularityCount {
		raw += w.HiddenGem
		reasons = append(reasons, reasonHiddenGem())
	}

	avoided := false
	for _, r := range reasons {
		if strings.HasPrefix(r, avoidedReasonPrefix) {
			avoided = true
			break
		}
	}

	// Unrelated negative signals must not suppress an item outright;
	// only avoidance may drive the score genuinely low.
	if raw < 0 && !avoided {
		raw = th.ScoreEpsilon
	}
	if raw <= 0 && !avoided {
		return nil
	}

	return &Recommendation{
		Item:    *it,
		Score:   s.cfg.Normalization.rescale(raw),
		Reasons: dedupeReasons(reasons),
		Source:  SourcePersonalized,
	}
}

// isFireworks reports whether the item is a fireworks show, either as a
// show variant or as a fireworks-type attraction.
func isFireworks(it *Item) bool {
	if it.Kind == KindShow && it.Show != nil {
		return it.Show.Type == ShowFireworks
	}
	if it.Kind == KindAttraction && it.Attraction != nil {
		return it.Attraction.Type == AttractionFireworks
	}
	return false
}

// itemMentions reports whether needle appears, case-insensitively, in the
// item's name, description, or tags.
func itemMentions(it *Item, needle string) bool {
	n := strings.ToLower(needle)
	if strings.Contains(strings.ToLower(it.Name), n) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Description), n) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), n) {
			return true
		}
	}
	return false
}
