package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyplanner/internal/config"
	"partyplanner/internal/model"
)

func TestMatchesCuisine(t *testing.T) {
	tests := []struct {
		name     string
		rec      *model.PlaceRecord
		cuisine  string
		expected bool
	}{
		{"empty cuisine always matches", &model.PlaceRecord{Name: "Anything"}, "", true},
		{"serves cuisine tag", &model.PlaceRecord{Name: "Ev", ServesCuisine: []string{"Turkish"}}, "turkish", true},
		{"local synonym in name", &model.PlaceRecord{Name: "Hacı Usta Kebap"}, "Turkish", true},
		{"keyword in types", &model.PlaceRecord{Name: "Da Mario", Types: []string{"pizzeria"}}, "italian", true},
		{"keyword in summary", &model.PlaceRecord{Name: "Zen", EditorialSummary: "Fresh sushi bar"}, "asian", true},
		{"unknown category matches itself", &model.PlaceRecord{Name: "Mexican Grill"}, "mexican", true},
		{"no match", &model.PlaceRecord{Name: "Burger House"}, "italian", false},
		{"nil record", nil, "italian", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesCuisine(tt.rec, tt.cuisine))
		})
	}
}

func TestWordOverlap(t *testing.T) {
	assert.Equal(t, 2, wordOverlap("Le Jardin", "le jardin restaurant"))
	assert.Equal(t, 1, wordOverlap("Park Cafe", "cafe cafe nero"))
	assert.Equal(t, 0, wordOverlap("Trilye", "Bistro Paris"))
	assert.Equal(t, 0, wordOverlap("", "Bistro"))
}

func TestScoreCandidate(t *testing.T) {
	jardin := &model.PlaceRecord{PlaceID: "p1", Name: "Le Jardin Restaurant", FormattedAddress: "Nişantaşı, İstanbul"}
	bistro := &model.PlaceRecord{PlaceID: "p2", Name: "Bistro Paris", FormattedAddress: "Nilüfer, Bursa", EditorialSummary: "Classic French cuisine"}

	// overlap 2, in city +2, no cuisine match -2
	assert.Equal(t, 2, scoreCandidate("Le Jardin", "Istanbul", "french", jardin))
	// overlap 0, other city, cuisine match +3
	assert.Equal(t, 3, scoreCandidate("Le Jardin", "Istanbul", "french", bistro))
	// without a cuisine only overlap and city count
	assert.Equal(t, 4, scoreCandidate("Le Jardin", "Istanbul", "", jardin))
}

func TestResolver_PicksHighestScoreAcrossQueries(t *testing.T) {
	places := newFakePlaces()
	jardin := &model.PlaceRecord{PlaceID: "p1", Name: "Le Jardin Restaurant", FormattedAddress: "Nişantaşı, İstanbul"}
	bistro := &model.PlaceRecord{PlaceID: "p2", Name: "Bistro Paris", FormattedAddress: "Nilüfer, Bursa", EditorialSummary: "Classic French cuisine"}
	places.add("Le Jardin Istanbul", jardin)
	places.add("Le Jardin restaurant Istanbul", bistro)

	r := NewResolver(places, config.DefaultVenueConfig())
	rec := r.Resolve(context.Background(), "Le Jardin", "Istanbul", "French")

	require.NotNil(t, rec)
	assert.Equal(t, "p2", rec.PlaceID)
	assert.Equal(t, []string{
		"Le Jardin Istanbul",
		"Le Jardin",
		"Le Jardin venue Istanbul",
		"Le Jardin restaurant Istanbul",
	}, places.queryTexts())
	for _, q := range places.queries {
		assert.Equal(t, 20000, q.RadiusM)
		assert.Equal(t, 8, q.MaxResults)
		require.NotNil(t, q.Bias)
	}
}

func TestResolver_TieKeepsFirst(t *testing.T) {
	places := newFakePlaces()
	first := &model.PlaceRecord{PlaceID: "a", Name: "Moda Cafe", FormattedAddress: "Kadıköy, İstanbul"}
	second := &model.PlaceRecord{PlaceID: "b", Name: "Moda Cafe", FormattedAddress: "Moda, İstanbul"}
	places.add("Moda Cafe Istanbul", first, second)

	rec := NewResolver(places, config.DefaultVenueConfig()).Resolve(context.Background(), "Moda Cafe", "Istanbul", "")
	require.NotNil(t, rec)
	assert.Equal(t, "a", rec.PlaceID)
}

func TestResolver_ScoreBelowZero(t *testing.T) {
	places := newFakePlaces()
	// overlap 0, other city, cuisine mismatch: -2 never beats the initial -1
	places.add("Zeytin Izmir", &model.PlaceRecord{PlaceID: "z", Name: "Burger Lab", FormattedAddress: "Bornova, Bursa"})
	assert.Nil(t, NewResolver(places, config.DefaultVenueConfig()).Resolve(context.Background(), "Zeytin", "Izmir", "italian"))

	// without a cuisine the same record scores 0 and is kept
	rec := NewResolver(places, config.DefaultVenueConfig()).Resolve(context.Background(), "Zeytin", "Izmir", "")
	require.NotNil(t, rec)
	assert.Equal(t, "z", rec.PlaceID)
}

func TestResolver_DisabledProvider(t *testing.T) {
	places := newFakePlaces()
	places.disabled = true

	assert.Nil(t, NewResolver(places, config.DefaultVenueConfig()).Resolve(context.Background(), "Trilye", "Ankara", ""))
	assert.Empty(t, places.queries)
	assert.Nil(t, NewResolver(nil, config.DefaultVenueConfig()).Resolve(context.Background(), "Trilye", "Ankara", ""))
}

func TestResolver_NoResults(t *testing.T) {
	places := newFakePlaces()
	places.center = nil

	assert.Nil(t, NewResolver(places, config.DefaultVenueConfig()).Resolve(context.Background(), "Nowhere", "Ankara", ""))
	assert.Len(t, places.queries, 4)
	assert.Nil(t, places.queries[0].Bias)
}
