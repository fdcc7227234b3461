package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyplanner/internal/config"
	"partyplanner/internal/model"
)

func TestFallbackQueries(t *testing.T) {
	tests := []struct {
		name      string
		venueType string
		cuisine   string
		outdoor   bool
		expected  []string
	}{
		{
			name:      "indoor turkish",
			venueType: "indoor",
			cuisine:   "Turkish",
			expected: []string{
				"turkish restaurant Ankara",
				"türk restoran Ankara",
				"lokanta Ankara",
				"turkish restaurant Ankara",
				"restaurant Ankara",
				"turkish cafe Ankara",
				"cafe Ankara",
				"turkish party hall Ankara",
				"party hall Ankara",
				"turkish event venue Ankara",
				"event venue Ankara",
			},
		},
		{
			name:      "hybrid without cuisine",
			venueType: "Hybrid",
			expected:  []string{"restaurant with terrace Ankara", "event space Ankara", "venue Ankara"},
		},
		{
			name:      "unknown venue type",
			venueType: "rooftop",
			expected:  []string{"venue Ankara", "restaurant Ankara"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fallbackQueries("Ankara", tt.venueType, tt.cuisine, tt.outdoor))
		})
	}
}

func TestFallbackQueries_OutdoorIgnoresCuisine(t *testing.T) {
	plain := fallbackQueries("Izmir", "outdoor", "", true)
	withCuisine := fallbackQueries("Izmir", "outdoor", "italian", true)

	assert.Equal(t, plain, withCuisine)
	assert.Equal(t, "park Izmir", plain[0])
	for _, q := range plain {
		assert.NotContains(t, q, "italian")
	}
}

func TestFallbackSearch_CapsAtMaxVenues(t *testing.T) {
	places := newFakePlaces()
	for i := 0; i < 6; i++ {
		places.add("restaurant Ankara", &model.PlaceRecord{
			PlaceID:          fmt.Sprintf("r%d", i),
			Name:             fmt.Sprintf("Restaurant %d", i),
			FormattedAddress: "Çankaya, Ankara",
		})
	}

	got := NewFallbackSearch(places, config.DefaultVenueConfig()).Venues(context.Background(), "Ankara", "indoor", "adults", "", false)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"r0", "r1", "r2"}, []string{got[0].PlaceID, got[1].PlaceID, got[2].PlaceID})
	// per-query cap of 4 seeds, details fetched only until three accepted
	assert.Equal(t, []string{"r0", "r1", "r2"}, places.detailed)
	for _, q := range places.queries {
		assert.Equal(t, 15000, q.RadiusM)
		assert.Equal(t, 4, q.MaxResults)
	}
}

func TestFallbackSearch_NeverExceedsThreeVenues(t *testing.T) {
	places := newFakePlaces()
	for i := 0; i < 6; i++ {
		places.add("restaurant Ankara", &model.PlaceRecord{
			PlaceID:          fmt.Sprintf("r%d", i),
			Name:             fmt.Sprintf("Restaurant %d", i),
			FormattedAddress: "Çankaya, Ankara",
		})
	}
	cfg := config.DefaultVenueConfig()
	cfg.MaxVenues = 6
	cfg.FallbackPerQuery = 6

	got := NewFallbackSearch(places, cfg).Venues(context.Background(), "Ankara", "indoor", "adults", "", false)

	assert.Len(t, got, 3)
}

func TestFallbackSearch_StopsAtSeedLimit(t *testing.T) {
	places := newFakePlaces()
	for _, q := range []string{"restaurant Ankara", "cafe Ankara", "party hall Ankara", "event venue Ankara"} {
		for i := 0; i < 4; i++ {
			places.add(q, &model.PlaceRecord{PlaceID: fmt.Sprintf("%s-%d", q, i), Name: q, FormattedAddress: "Kızılay, Bursa"})
		}
	}

	got := NewFallbackSearch(places, config.DefaultVenueConfig()).Venues(context.Background(), "Ankara", "indoor", "", "", false)

	assert.Empty(t, got)
	assert.Equal(t, []string{"restaurant Ankara", "cafe Ankara", "party hall Ankara"}, places.queryTexts())
	assert.Len(t, places.detailed, 12)
}

func TestFallbackSearch_FiltersCityAndCuisine(t *testing.T) {
	places := newFakePlaces()
	places.add("italian restaurant Istanbul",
		&model.PlaceRecord{PlaceID: "a", Name: "Trattoria Roma", FormattedAddress: "Beyoğlu, İstanbul"},
		&model.PlaceRecord{PlaceID: "b", Name: "Pizzeria Napoli", FormattedAddress: "Nilüfer, Bursa"},
		&model.PlaceRecord{PlaceID: "c", Name: "Köfteci Yusuf", FormattedAddress: "Kadıköy, İstanbul"},
	)
	places.add("italyan restoran Istanbul",
		&model.PlaceRecord{PlaceID: "a", Name: "Trattoria Roma", FormattedAddress: "Beyoğlu, İstanbul"},
		&model.PlaceRecord{PlaceID: "d", Name: "Pasta Bar", FormattedAddress: "Şişli, İstanbul"},
	)

	got := NewFallbackSearch(places, config.DefaultVenueConfig()).Venues(context.Background(), "Istanbul", "indoor", "", "Italian", false)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].PlaceID)
	assert.Equal(t, "d", got[1].PlaceID)
}

func TestFallbackSearch_OutdoorSameWithOrWithoutCuisine(t *testing.T) {
	run := func(cuisine string) ([]model.PlaceRecord, []string) {
		places := newFakePlaces()
		places.add("park Izmir", &model.PlaceRecord{PlaceID: "k", Name: "Kültürpark", FormattedAddress: "Konak, İzmir"})
		places.add("beach Izmir", &model.PlaceRecord{PlaceID: "s", Name: "Sahil", FormattedAddress: "Karşıyaka, İzmir"})
		got := NewFallbackSearch(places, config.DefaultVenueConfig()).Venues(context.Background(), "Izmir", "outdoor", "kids", cuisine, true)
		return got, places.queryTexts()
	}

	plainVenues, plainQueries := run("")
	cuisineVenues, cuisineQueries := run("italian")

	assert.Equal(t, plainVenues, cuisineVenues)
	assert.Equal(t, plainQueries, cuisineQueries)
	require.Len(t, plainVenues, 2)
	assert.Equal(t, "k", plainVenues[0].PlaceID)
}

func TestFallbackSearch_Disabled(t *testing.T) {
	places := newFakePlaces()
	places.disabled = true

	assert.Empty(t, NewFallbackSearch(places, config.DefaultVenueConfig()).Venues(context.Background(), "Ankara", "indoor", "", "", false))
	assert.Empty(t, places.queries)
}
