// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/recommend"
)

// SeedIfEmpty loads the starter catalog when the store holds no items.
// When seedFile is non-empty it must contain a JSON array of items;
// otherwise the built-in starter catalog is used. Returns the number of
// items written.
func (s *Store) SeedIfEmpty(ctx context.Context, seedFile string) (int, error) {
	count, err := s.CountItems(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Debug().Int("items", count).Msg("catalog already populated, skipping seed")
		return 0, nil
	}

	items := starterCatalog()
	if seedFile != "" {
		data, err := os.ReadFile(seedFile)
		if err != nil {
			return 0, fmt.Errorf("catalog: read seed file: %w", err)
		}
		items = nil
		if err := json.Unmarshal(data, &items); err != nil {
			return 0, fmt.Errorf("catalog: parse seed file: %w", err)
		}
	}

	written := 0
	for i := range items {
		if err := s.PutItem(ctx, &items[i]); err != nil {
			return written, err
		}
		written++
	}
	s.logger.Info().Int("items", written).Msg("catalog seeded")
	return written, nil
}

func intp(v int) *int { return &v }

// starterCatalog is a small cross-park sample used on first start so the
// API is usable before real data is imported.
func starterCatalog() []recommend.Item {
	return []recommend.Item{
		{
			ID: "space-mountain", Name: "Space Mountain",
			Description: "High-speed indoor roller coaster through the darkness of outer space",
			Park:        recommend.ParkMagicKingdom, Location: "Tomorrowland",
			Tags:   []string{"indoor", "dark-ride", "coaster"},
			Rating: &recommend.Rating{Average: 4.7, Count: 18500},
			Kind:   recommend.KindAttraction,
			Attraction: &recommend.AttractionDetails{
				Type: recommend.AttractionThrill, DurationMinutes: 3,
				ThrillLevel: recommend.ThrillHigh, LightningLane: true,
				WaitMinutes: intp(65),
			},
		},
		{
			ID: "haunted-mansion", Name: "Haunted Mansion",
			Description: "Tour a ghostly estate with 999 happy haunts",
			Park:        recommend.ParkMagicKingdom, Location: "Liberty Square",
			Tags:   []string{"indoor", "dark-ride", "classic"},
			Rating: &recommend.Rating{Average: 4.8, Count: 21000},
			Kind:   recommend.KindAttraction,
			Attraction: &recommend.AttractionDetails{
				Type: recommend.AttractionFamily, DurationMinutes: 8,
				ThrillLevel: recommend.ThrillLow, GeniePlus: true,
				WaitMinutes: intp(40),
			},
		},
		{
			ID: "dumbo", Name: "Dumbo the Flying Elephant",
			Description: "Soar above Storybook Circus on a flying elephant",
			Park:        recommend.ParkMagicKingdom, Location: "Fantasyland",
			Tags:   []string{"outdoor", "spinner"},
			Rating: &recommend.Rating{Average: 4.1, Count: 9800},
			Kind:   recommend.KindAttraction,
			Attraction: &recommend.AttractionDetails{
				Type: recommend.AttractionKids, DurationMinutes: 2,
				ThrillLevel: recommend.ThrillLow, WaitMinutes: intp(20),
			},
		},
		{
			ID: "guardians-cosmic-rewind", Name: "Guardians of the Galaxy: Cosmic Rewind",
			Description: "Indoor omnicoaster adventure with the Guardians",
			Park:        recommend.ParkEpcot, Location: "World Discovery",
			Tags:   []string{"indoor", "coaster"},
			Rating: &recommend.Rating{Average: 4.9, Count: 16200},
			Kind:   recommend.KindAttraction,
			Attraction: &recommend.AttractionDetails{
				Type: recommend.AttractionThrill, DurationMinutes: 4,
				ThrillLevel: recommend.ThrillHigh, LightningLane: true,
				WaitMinutes: intp(90),
			},
		},
		{
			ID: "turtle-talk", Name: "Turtle Talk with Crush",
			Description: "Real-time animated chat with Crush from Finding Nemo",
			Park:        recommend.ParkEpcot, Location: "The Seas",
			Tags:   []string{"indoor", "interactive"},
			Rating: &recommend.Rating{Average: 4.6, Count: 620},
			Kind:   recommend.KindAttraction,
			Attraction: &recommend.AttractionDetails{
				Type: recommend.AttractionKids, DurationMinutes: 15,
				ThrillLevel: recommend.ThrillLow, WaitMinutes: intp(10),
			},
		},
		{
			ID: "happily-ever-after", Name: "Happily Ever After",
			Description: "Nighttime fireworks spectacular over Cinderella Castle",
			Park:        recommend.ParkMagicKingdom, Location: "Main Street, U.S.A.",
			Tags:   []string{"outdoor", "nighttime"},
			Rating: &recommend.Rating{Average: 4.9, Count: 24000},
			Kind:   recommend.KindShow,
			Show: &recommend.ShowDetails{
				Type: recommend.ShowFireworks, DurationMinutes: 18,
				ShowTimes: []string{"9:00 PM"},
			},
		},
		{
			ID: "festival-lion-king", Name: "Festival of the Lion King",
			Description: "Broadway-style stage celebration of The Lion King",
			Park:        recommend.ParkAnimalKingdom, Location: "Africa",
			Tags:   []string{"indoor", "music"},
			Rating: &recommend.Rating{Average: 4.8, Count: 7400},
			Kind:   recommend.KindShow,
			Show: &recommend.ShowDetails{
				Type: recommend.ShowStage, DurationMinutes: 30,
				ShowTimes: []string{"10:00 AM", "12:00 PM", "2:00 PM", "4:00 PM"},
			},
		},
		{
			ID: "be-our-guest", Name: "Be Our Guest Restaurant",
			Description: "Dine in the Beast's enchanted castle",
			Park:        recommend.ParkMagicKingdom, Location: "Fantasyland",
			Tags:   []string{"indoor", "themed"},
			Rating: &recommend.Rating{Average: 4.4, Count: 11200},
			Kind:   recommend.KindDining,
			Dining: &recommend.DiningDetails{
				Type: recommend.DiningTableService, Cuisines: []string{"French", "American"},
				PriceTier: recommend.PriceTier3, ReservationsRecommended: true,
			},
		},
		{
			ID: "chef-mickeys", Name: "Chef Mickey's",
			Description: "Character buffet with Mickey Mouse and friends",
			Park:        recommend.ParkMagicKingdom, Location: "Contemporary Resort",
			Tags:   []string{"indoor", "mickey-and-friends"},
			Rating: &recommend.Rating{Average: 4.2, Count: 8900},
			Kind:   recommend.KindDining,
			Dining: &recommend.DiningDetails{
				Type: recommend.DiningCharacterDining, Cuisines: []string{"American"},
				PriceTier: recommend.PriceTier3, ReservationsRecommended: true,
			},
		},
		{
			ID: "dole-whip-stand", Name: "Aloha Isle",
			Description: "Home of the famous Dole Whip pineapple soft-serve",
			Park:        recommend.ParkMagicKingdom, Location: "Adventureland",
			Tags:   []string{"outdoor", "snack"},
			Rating: &recommend.Rating{Average: 4.9, Count: 640},
			Kind:   recommend.KindDining,
			Dining: &recommend.DiningDetails{
				Type: recommend.DiningSnack, PriceTier: recommend.PriceTier1,
				MobileOrder: true,
			},
		},
		{
			ID: "food-wine-festival", Name: "EPCOT International Food & Wine Festival",
			Description: "Seasonal festival of global marketplaces and tastings",
			Park:        recommend.ParkEpcot, Location: "World Showcase",
			Tags:   []string{"outdoor", "seasonal"},
			Rating: &recommend.Rating{Average: 4.5, Count: 5300},
			Kind:   recommend.KindEvent,
			Event:  &recommend.EventDetails{Type: recommend.EventFestival},
		},
	}
}
