package model

import (
	"strings"
)

// Provenance records which pipeline stage produced a venue
type Provenance string

const (
	ProvenanceLLMVerified    Provenance = "llm_verified"
	ProvenanceFallbackSearch Provenance = "fallback_search"
)

// MatchStatus tells whether a venue was verified against the places provider
type MatchStatus string

const (
	MatchFound       MatchStatus = "found"
	MatchNotVerified MatchStatus = "not_verified"
)

// Coordinate is a latitude/longitude pair
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OpeningHours holds the human-readable weekly schedule of a place
type OpeningHours struct {
	WeekdayText []string `json:"weekday_text,omitempty"`
	OpenNow     *bool    `json:"open_now,omitempty"`
}

// PlaceRecord is a venue resolved through the places provider.
// Records are built once per lookup and never mutated afterwards;
// WithProvenance returns a stamped copy.
type PlaceRecord struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address,omitempty"`
	Location         *Coordinate   `json:"location,omitempty"`
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	Website          string        `json:"website,omitempty"`
	MapsURL          string        `json:"maps_url,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	Types            []string      `json:"types,omitempty"`
	EditorialSummary string        `json:"editorial_summary,omitempty"`
	ServesCuisine    []string      `json:"serves_cuisine,omitempty"`
	Source           Provenance    `json:"source,omitempty"`
	MatchStatus      MatchStatus   `json:"match_status,omitempty"`
}

// PriceText renders the price tier as repeated lira glyphs, one more than the level
func (p PlaceRecord) PriceText() string {
	if p.PriceLevel == nil {
		return ""
	}
	level := *p.PriceLevel
	if level < 0 {
		level = 0
	}
	if level > 4 {
		level = 4
	}
	return strings.Repeat("₺", level+1)
}

// WithProvenance returns a copy marked as found by the given stage
func (p PlaceRecord) WithProvenance(src Provenance) PlaceRecord {
	p.Source = src
	p.MatchStatus = MatchFound
	return p
}

// Seed is the lightweight result of a text search
type Seed struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

// SearchQuery is a single text search with optional location bias
type SearchQuery struct {
	Text       string
	Bias       *Coordinate
	RadiusM    int
	MaxResults int
}

// CandidateScore pairs a resolved record with its match score
type CandidateScore struct {
	Score  int
	Record *PlaceRecord
}
