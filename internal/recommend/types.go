// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package recommend

import (
	"fmt"
	"strings"
	"time"
)

// ItemKind discriminates the recommendable item variants.
// It is set at construction and never changes for the lifetime of an item.
type ItemKind string

// Supported item kinds.
const (
	KindAttraction ItemKind = "attraction"
	KindDining     ItemKind = "dining"
	KindShow       ItemKind = "show"
	KindEvent      ItemKind = "event"
)

// Valid reports whether k is one of the known item kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case KindAttraction, KindDining, KindShow, KindEvent:
		return true
	}
	return false
}

// Park identifies one of the known theme parks.
type Park string

// Known parks.
const (
	ParkMagicKingdom     Park = "magic-kingdom"
	ParkEpcot            Park = "epcot"
	ParkHollywoodStudios Park = "hollywood-studios"
	ParkAnimalKingdom    Park = "animal-kingdom"
)

// Valid reports whether p is a known park identifier.
func (p Park) Valid() bool {
	switch p {
	case ParkMagicKingdom, ParkEpcot, ParkHollywoodStudios, ParkAnimalKingdom:
		return true
	}
	return false
}

// AttractionType is the sub-type enum for attraction items.
type AttractionType string

// Attraction sub-types.
const (
	AttractionThrill        AttractionType = "thrill"
	AttractionFamily        AttractionType = "family"
	AttractionKids          AttractionType = "kids"
	AttractionShow          AttractionType = "show"
	AttractionWater         AttractionType = "water"
	AttractionCharacterMeet AttractionType = "character-meet"
	AttractionParade        AttractionType = "parade"
	AttractionFireworks     AttractionType = "fireworks"
)

// Valid reports whether t is a known attraction sub-type.
func (t AttractionType) Valid() bool {
	switch t {
	case AttractionThrill, AttractionFamily, AttractionKids, AttractionShow,
		AttractionWater, AttractionCharacterMeet, AttractionParade, AttractionFireworks:
		return true
	}
	return false
}

// DiningType is the sub-type enum for dining items.
type DiningType string

// Dining sub-types.
const (
	DiningQuickService    DiningType = "quick-service"
	DiningTableService    DiningType = "table-service"
	DiningFine            DiningType = "fine-dining"
	DiningCharacterDining DiningType = "character-dining"
	DiningBarLounge       DiningType = "bar-lounge"
	DiningSnack           DiningType = "snack"
)

// Valid reports whether t is a known dining sub-type.
func (t DiningType) Valid() bool {
	switch t {
	case DiningQuickService, DiningTableService, DiningFine,
		DiningCharacterDining, DiningBarLounge, DiningSnack:
		return true
	}
	return false
}

// ShowType is the sub-type enum for show items.
type ShowType string

// Show sub-types.
const (
	ShowStage             ShowType = "stage"
	ShowStreetPerformance ShowType = "street-performance"
	ShowFireworks         ShowType = "fireworks"
	ShowParade            ShowType = "parade"
)

// Valid reports whether t is a known show sub-type.
func (t ShowType) Valid() bool {
	switch t {
	case ShowStage, ShowStreetPerformance, ShowFireworks, ShowParade:
		return true
	}
	return false
}

// EventType is the sub-type enum for event items.
type EventType string

// Event sub-types.
const (
	EventSpecialTicketed EventType = "special-ticketed"
	EventFestival        EventType = "festival"
	EventSeasonal        EventType = "seasonal"
)

// Valid reports whether t is a known event sub-type.
func (t EventType) Valid() bool {
	switch t {
	case EventSpecialTicketed, EventFestival, EventSeasonal:
		return true
	}
	return false
}

// ThrillLevel classifies attraction intensity.
type ThrillLevel string

// Thrill levels, ordered low to high.
const (
	ThrillLow    ThrillLevel = "low"
	ThrillMedium ThrillLevel = "medium"
	ThrillHigh   ThrillLevel = "high"
)

// PriceTier is an ordinal dining price tier ("$" cheapest, "$$$$" most expensive).
type PriceTier string

// Price tiers.
const (
	PriceTier1 PriceTier = "$"
	PriceTier2 PriceTier = "$$"
	PriceTier3 PriceTier = "$$$"
	PriceTier4 PriceTier = "$$$$"
)

// Ordinal returns the 1-based ordinal of the tier, or 0 for an unknown tier.
func (p PriceTier) Ordinal() int {
	switch p {
	case PriceTier1:
		return 1
	case PriceTier2:
		return 2
	case PriceTier3:
		return 3
	case PriceTier4:
		return 4
	}
	return 0
}

// Valid reports whether p is a known tier.
func (p PriceTier) Valid() bool {
	return p.Ordinal() != 0
}

// TimeOfDay buckets the request time for contextual boosts.
type TimeOfDay string

// Time-of-day buckets.
const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

// Valid reports whether t is a known bucket.
func (t TimeOfDay) Valid() bool {
	switch t {
	case TimeMorning, TimeAfternoon, TimeEvening, TimeNight:
		return true
	}
	return false
}

// Weather is the coarse weather condition supplied with a request.
type Weather string

// Weather conditions.
const (
	WeatherSunny  Weather = "sunny"
	WeatherCloudy Weather = "cloudy"
	WeatherRainy  Weather = "rainy"
)

// Valid reports whether w is a known condition.
func (w Weather) Valid() bool {
	switch w {
	case WeatherSunny, WeatherCloudy, WeatherRainy:
		return true
	}
	return false
}

// Rating aggregates guest ratings for an item.
// Average is on a 1-5 scale when Count > 0.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// AttractionDetails holds the attraction-variant payload.
type AttractionDetails struct {
	Type AttractionType `json:"type"`

	// DurationMinutes is the ride or experience length, when published.
	DurationMinutes int         `json:"durationMinutes,omitempty"`
	ThrillLevel     ThrillLevel `json:"thrillLevel,omitempty"`

	// LightningLane and GeniePlus report paid priority-access availability.
	LightningLane bool `json:"lightningLane,omitempty"`
	GeniePlus     bool `json:"geniePlus,omitempty"`

	// WaitMinutes is the expected standby wait. Nil means no posted wait;
	// items without a posted wait pass wait-time filters untouched.
	WaitMinutes *int `json:"waitMinutes,omitempty"`
}

// DiningDetails holds the dining-variant payload.
type DiningDetails struct {
	Type DiningType `json:"type"`

	Cuisines                []string  `json:"cuisines,omitempty"`
	PriceTier               PriceTier `json:"priceTier,omitempty"`
	ReservationsRecommended bool      `json:"reservationsRecommended,omitempty"`
	MobileOrder             bool      `json:"mobileOrder,omitempty"`
}

// ShowDetails holds the show-variant payload.
type ShowDetails struct {
	Type ShowType `json:"type"`

	DurationMinutes int `json:"durationMinutes,omitempty"`

	// ShowTimes are free-text slots such as "2:00 PM".
	ShowTimes []string `json:"showTimes,omitempty"`
}

// EventDetails holds the event-variant payload.
type EventDetails struct {
	Type EventType `json:"type"`

	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Item is a recommendable catalog entry. Kind selects exactly one of the
// variant payload pointers; the rest must be nil. Validate enforces this.
type Item struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Park        Park     `json:"park" validate:"required"`
	Location    string   `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`

	// Rating is nil when the item has no guest ratings yet.
	Rating *Rating `json:"rating,omitempty"`

	OfficialRating        string   `json:"officialRating,omitempty"`
	HeightRequirementCM   int      `json:"heightRequirementCm,omitempty"`
	AccessibilityFeatures []string `json:"accessibilityFeatures,omitempty"`

	Kind ItemKind `json:"kind" validate:"required"`

	Attraction *AttractionDetails `json:"attraction,omitempty"`
	Dining     *DiningDetails     `json:"dining,omitempty"`
	Show       *ShowDetails       `json:"show,omitempty"`
	Event      *EventDetails      `json:"event,omitempty"`
}

// Validate checks the tagged-union invariants: known kind, exactly the
// matching payload populated, valid sub-type, and rating bounds.
func (it *Item) Validate() error {
	if it.ID == "" {
		return fmt.Errorf("item: missing id")
	}
	if it.Name == "" {
		return fmt.Errorf("item %s: missing name", it.ID)
	}
	if !it.Park.Valid() {
		return fmt.Errorf("item %s: unknown park %q", it.ID, it.Park)
	}
	if !it.Kind.Valid() {
		return fmt.Errorf("item %s: unknown kind %q", it.ID, it.Kind)
	}

	populated := 0
	if it.Attraction != nil {
		populated++
	}
	if it.Dining != nil {
		populated++
	}
	if it.Show != nil {
		populated++
	}
	if it.Event != nil {
		populated++
	}
	if populated != 1 {
		return fmt.Errorf("item %s: expected exactly one variant payload, got %d", it.ID, populated)
	}

	switch it.Kind {
	case KindAttraction:
		if it.Attraction == nil {
			return fmt.Errorf("item %s: kind attraction without attraction payload", it.ID)
		}
		if !it.Attraction.Type.Valid() {
			return fmt.Errorf("item %s: unknown attraction type %q", it.ID, it.Attraction.Type)
		}
		if it.Attraction.WaitMinutes != nil && *it.Attraction.WaitMinutes < 0 {
			return fmt.Errorf("item %s: negative wait time", it.ID)
		}
	case KindDining:
		if it.Dining == nil {
			return fmt.Errorf("item %s: kind dining without dining payload", it.ID)
		}
		if !it.Dining.Type.Valid() {
			return fmt.Errorf("item %s: unknown dining type %q", it.ID, it.Dining.Type)
		}
		if it.Dining.PriceTier != "" && it.Dining.PriceTier.Ordinal() == 0 {
			return fmt.Errorf("item %s: unknown price tier %q", it.ID, it.Dining.PriceTier)
		}
	case KindShow:
		if it.Show == nil {
			return fmt.Errorf("item %s: kind show without show payload", it.ID)
		}
		if !it.Show.Type.Valid() {
			return fmt.Errorf("item %s: unknown show type %q", it.ID, it.Show.Type)
		}
	case KindEvent:
		if it.Event == nil {
			return fmt.Errorf("item %s: kind event without event payload", it.ID)
		}
		if !it.Event.Type.Valid() {
			return fmt.Errorf("item %s: unknown event type %q", it.ID, it.Event.Type)
		}
	}

	if it.Rating != nil {
		if it.Rating.Count < 0 {
			return fmt.Errorf("item %s: negative rating count", it.ID)
		}
		if it.Rating.Count > 0 && (it.Rating.Average < 1 || it.Rating.Average > 5) {
			return fmt.Errorf("item %s: rating average %.2f out of [1,5]", it.ID, it.Rating.Average)
		}
	}
	return nil
}

// DiversityKey returns the key used to cap over-representation in ranked
// output: the attraction sub-type for attractions, the top-level kind
// otherwise. Sub-type keys are prefixed so an attraction sub-type that
// shares a name with a kind (e.g. "show") stays a distinct key.
func (it *Item) DiversityKey() string {
	if it.Kind == KindAttraction && it.Attraction != nil {
		return "attraction:" + string(it.Attraction.Type)
	}
	return string(it.Kind)
}

// HasTag reports whether the item carries the given tag, case-insensitively.
func (it *Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// PastVisit records a prior visit to an item, with an optional 1-5 rating.
type PastVisit struct {
	ItemID      string     `json:"itemId" validate:"required"`
	ItemKind    ItemKind   `json:"itemKind,omitempty" validate:"omitempty,itemkind"`
	Rating      *float64   `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	LastVisited *time.Time `json:"lastVisited,omitempty"`
}

// UserPreferences is the explicit preference profile for one user. All
// list and pointer fields are optional; an empty profile is valid and
// simply contributes no preference terms.
type UserPreferences struct {
	UserID string `json:"userId" validate:"required"`

	PreferredParks           []Park           `json:"preferredParks,omitempty" validate:"dive,park"`
	PreferredAttractionTypes []AttractionType `json:"preferredAttractionTypes,omitempty" validate:"dive,attractiontype"`
	AvoidedAttractionTypes   []AttractionType `json:"avoidedAttractionTypes,omitempty" validate:"dive,attractiontype"`
	PreferredDiningTypes     []DiningType     `json:"preferredDiningTypes,omitempty" validate:"dive,diningtype"`
	PreferredPriceTiers      []PriceTier      `json:"preferredPriceTiers,omitempty" validate:"dive,pricetier"`
	FavoriteCharacters       []string         `json:"favoriteCharacters,omitempty"`
	PastVisits               []PastVisit      `json:"pastVisits,omitempty" validate:"dive"`

	PartySize          int         `json:"partySize,omitempty" validate:"omitempty,gte=1"`
	HasYoungChildren   bool        `json:"hasYoungChildren,omitempty"`
	PreferredIntensity ThrillLevel `json:"preferredIntensity,omitempty" validate:"omitempty,oneof=low medium high"`
	MobilityNeeds      bool        `json:"mobilityNeeds,omitempty"`
	WalkingPace        string      `json:"walkingPace,omitempty"`
}

// PrefersPark reports whether park is in the preferred-parks list.
func (p *UserPreferences) PrefersPark(park Park) bool {
	for _, pp := range p.PreferredParks {
		if pp == park {
			return true
		}
	}
	return false
}

// PastVisitFor returns the past-visit record for itemID, or nil when the
// user has not visited it.
func (p *UserPreferences) PastVisitFor(itemID string) *PastVisit {
	for i := range p.PastVisits {
		if p.PastVisits[i].ItemID == itemID {
			return &p.PastVisits[i]
		}
	}
	return nil
}

// RequestContext is the ephemeral situational context for one request.
// All fields are optional; the zero value applies no contextual terms.
type RequestContext struct {
	TimeOfDay   TimeOfDay `json:"timeOfDay,omitempty" validate:"omitempty,timeofday"`
	CurrentPark Park      `json:"currentPark,omitempty" validate:"omitempty,park"`
	Weather     Weather   `json:"weather,omitempty" validate:"omitempty,weather"`
}

// RecommendationSource tags where a recommendation came from.
type RecommendationSource string

// Recommendation sources.
const (
	SourcePersonalized RecommendationSource = "personalized"
	SourceFiltered     RecommendationSource = "filtered"
)

// Recommendation is one scored, ranked output entry. Instances are created
// fresh on every scoring pass and never mutated afterwards; filtering
// produces new slices rather than editing existing entries.
type Recommendation struct {
	Item     Item                 `json:"item"`
	Score    float64              `json:"score"`
	Reasons  []string             `json:"reasons,omitempty"`
	Source   RecommendationSource `json:"source"`
	Priority int                  `json:"priority,omitempty"`
}

// HasAvoidanceReason reports whether any justification records an avoided
// sub-type match. Avoided items stay in ranked output for transparency
// even when their score falls below the inclusion threshold.
func (r *Recommendation) HasAvoidanceReason() bool {
	for _, reason := range r.Reasons {
		if strings.HasPrefix(reason, avoidedReasonPrefix) {
			return true
		}
	}
	return false
}

// Request carries one recommendation invocation. Items and Preferences are
// owned by the caller and are never mutated by the engine.
type Request struct {
	Items       []Item           `json:"items"`
	Preferences *UserPreferences `json:"preferences" validate:"required"`
	Context     *RequestContext  `json:"context,omitempty"`

	// MaxResults bounds the ranked output; 0 selects the configured default.
	MaxResults int `json:"maxResults,omitempty" validate:"gte=0"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	CandidateCount int           `json:"candidateCount"`
	ScoredCount    int           `json:"scoredCount"`
	ReturnedCount  int           `json:"returnedCount"`
	Elapsed        time.Duration `json:"elapsedNs"`
	CacheHit       bool          `json:"cacheHit"`
	GeneratedAt    time.Time     `json:"generatedAt"`
}

// Response is the ranked output of one recommendation request.
type Response struct {
	Recommendations []Recommendation `json:"recommendations"`
	Metadata        ResponseMetadata `json:"metadata"`
}
