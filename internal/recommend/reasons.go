// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package recommend

import (
	"fmt"
	"strings"
)

// avoidedReasonPrefix marks justifications produced by the avoided
// sub-type penalty. HasAvoidanceReason and the ranker's transparency
// carve-out key off this prefix.
const avoidedReasonPrefix = "Avoided: "

// Reason builders. Kept in one place so display text stays consistent
// across the scorer and any descriptive summaries.

func reasonPopular(count int) string {
	return fmt.Sprintf("Popular with guests (%s ratings)", formatCount(count))
}

func reasonHighlyRated(avg float64) string {
	return fmt.Sprintf("Highly rated (%.1f/5)", avg)
}

func reasonPreferredPark(park Park) string {
	return fmt.Sprintf("In one of your favorite parks (%s)", parkDisplayName(park))
}

func reasonPreferredAttractionType(t AttractionType) string {
	return fmt.Sprintf("Matches your favorite attraction type (%s)", t)
}

func reasonPreferredDiningType(t DiningType) string {
	return fmt.Sprintf("Matches your favorite dining style (%s)", t)
}

func reasonAvoidedType(t AttractionType) string {
	return avoidedReasonPrefix + fmt.Sprintf("you usually skip %s attractions", t)
}

func reasonIntensityMatch(level ThrillLevel) string {
	return fmt.Sprintf("Matches your preferred intensity (%s)", level)
}

func reasonPriceMatch(tier PriceTier) string {
	return fmt.Sprintf("In your price range (%s)", tier)
}

func reasonPastPositive() string {
	return "You loved this on a previous visit"
}

func reasonPastNegative() string {
	return "You rated this low on a previous visit"
}

func reasonCurrentPark(park Park) string {
	return fmt.Sprintf("You're already at %s", parkDisplayName(park))
}

func reasonEveningFireworks() string {
	return "Perfect timing for fireworks"
}

func reasonRainyIndoor() string {
	return "Indoor experience, great for a rainy day"
}

func reasonFavoriteCharacter(name string) string {
	return fmt.Sprintf("Features %s", name)
}

func reasonHiddenGem() string {
	return "Hidden gem: highly rated but not crowded"
}

// reasonLowWait is descriptive text only; wait time never contributes a
// scoring term and is handled exclusively by the filter stage.
func reasonLowWait(minutes int) string {
	return fmt.Sprintf("Short wait right now (%d min)", minutes)
}

// DescribeItem returns display-only highlights for an item, independent
// of scoring. Used by handlers to enrich catalog listings.
func DescribeItem(it *Item) []string {
	var notes []string
	if it.Rating != nil && it.Rating.Count > 0 && it.Rating.Average >= 4.5 {
		notes = append(notes, reasonHighlyRated(it.Rating.Average))
	}
	if it.Kind == KindAttraction && it.Attraction != nil {
		if w := it.Attraction.WaitMinutes; w != nil && *w <= 15 {
			notes = append(notes, reasonLowWait(*w))
		}
		if it.Attraction.LightningLane {
			notes = append(notes, "Lightning Lane available")
		}
		if it.Attraction.GeniePlus {
			notes = append(notes, "Genie+ available")
		}
	}
	if it.Kind == KindDining && it.Dining != nil && it.Dining.MobileOrder {
		notes = append(notes, "Mobile ordering available")
	}
	return notes
}

// parkDisplayName turns a park identifier into guest-facing text.
func parkDisplayName(p Park) string {
	switch p {
	case ParkMagicKingdom:
		return "Magic Kingdom"
	case ParkEpcot:
		return "EPCOT"
	case ParkHollywoodStudios:
		return "Hollywood Studios"
	case ParkAnimalKingdom:
		return "Animal Kingdom"
	}
	return string(p)
}

// formatCount renders large rating counts as "12.5k" style text.
func formatCount(n int) string {
	if n >= 1000 {
		s := fmt.Sprintf("%.1fk", float64(n)/1000)
		return strings.Replace(s, ".0k", "k", 1)
	}
	return fmt.Sprintf("%d", n)
}

// dedupeReasons removes duplicate justification strings while preserving
// first-seen order.
func dedupeReasons(reasons []string) []string {
	if len(reasons) < 2 {
		return reasons
	}
	seen := make(map[string]struct{}, len(reasons))
	out := reasons[:0]
	for _, r := range reasons {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
