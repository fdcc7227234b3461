package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestPlaceRecord_PriceText(t *testing.T) {
	tests := []struct {
		name  string
		level *int
		want  string
	}{
		{name: "absent", level: nil, want: ""},
		{name: "free", level: intPtr(0), want: "₺"},
		{name: "moderate", level: intPtr(2), want: "₺₺₺"},
		{name: "clamped high", level: intPtr(9), want: "₺₺₺₺₺"},
		{name: "clamped low", level: intPtr(-3), want: "₺"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PlaceRecord{PriceLevel: tt.level}
			assert.Equal(t, tt.want, p.PriceText())
		})
	}
}

func TestPlaceRecord_WithProvenanceCopies(t *testing.T) {
	orig := PlaceRecord{PlaceID: "p1", Name: "Park", MatchStatus: MatchNotVerified}

	stamped := orig.WithProvenance(ProvenanceFallbackSearch)

	assert.Equal(t, ProvenanceFallbackSearch, stamped.Source)
	assert.Equal(t, MatchFound, stamped.MatchStatus)
	assert.Empty(t, orig.Source)
	assert.Equal(t, MatchNotVerified, orig.MatchStatus)
}

func TestRequestContext_EffectiveCuisine(t *testing.T) {
	tests := []struct {
		venueType string
		outdoor   bool
		cuisine   string
	}{
		{venueType: "Outdoor", outdoor: true, cuisine: ""},
		{venueType: " outdoor ", outdoor: true, cuisine: ""},
		{venueType: "Indoor", outdoor: false, cuisine: "Italian"},
		{venueType: "Hybrid", outdoor: false, cuisine: "Italian"},
	}

	for _, tt := range tests {
		t.Run(tt.venueType, func(t *testing.T) {
			rc := RequestContext{VenueType: tt.venueType, Cuisine: "Italian"}
			assert.Equal(t, tt.outdoor, rc.IsOutdoor())
			assert.Equal(t, tt.cuisine, rc.EffectiveCuisine())
		})
	}
}
