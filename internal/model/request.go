package model

import (
	"strings"
)

// Venue type categories accepted by the planner
const (
	VenueTypeIndoor  = "indoor"
	VenueTypeOutdoor = "outdoor"
	VenueTypeHybrid  = "hybrid"
)

// RequestContext carries the planning parameters of one session.
// Downstream components only read it.
type RequestContext struct {
	City           string
	VenueType      string
	Audience       string
	GuestCount     int
	Budget         float64
	Cuisine        string
	Dietary        []string
	EventDate      string // YYYY-MM-DD
	WeatherSummary string
}

// IsOutdoor reports whether the venue type is outdoor, case-insensitive
func (r RequestContext) IsOutdoor() bool {
	return strings.EqualFold(strings.TrimSpace(r.VenueType), VenueTypeOutdoor)
}

// EffectiveCuisine is the cuisine used for resolution and fallback:
// outdoor requests suppress it entirely.
func (r RequestContext) EffectiveCuisine() string {
	if r.IsOutdoor() {
		return ""
	}
	return r.Cuisine
}

// VenueResult is the output of one venue request
type VenueResult struct {
	Suggestions []PlaceRecord `json:"suggestions"`
	Raw         string        `json:"raw"`
	Display     string        `json:"unified_display"`
	WeatherInfo string        `json:"weather_info"`
	PlanID      string        `json:"plan_id,omitempty"`
	Took        int64         `json:"took_ms"`
}
