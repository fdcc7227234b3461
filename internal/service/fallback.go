package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/phuslu/log"

	"partyplanner/internal/config"
	"partyplanner/internal/model"
	"partyplanner/internal/utils"
)

// FallbackSearch finds venues by category search when no suggested name
// could be resolved
type FallbackSearch struct {
	places PlaceLookup
	cfg    config.VenueConfig
}

// NewFallbackSearch creates a fallback search. The accept cap never
// exceeds config.MaxVenuesPerRequest.
func NewFallbackSearch(places PlaceLookup, cfg config.VenueConfig) *FallbackSearch {
	if cfg.MaxVenues <= 0 || cfg.MaxVenues > config.MaxVenuesPerRequest {
		cfg.MaxVenues = config.MaxVenuesPerRequest
	}
	return &FallbackSearch{places: places, cfg: cfg}
}

// Venues returns up to MaxVenues places in city, in acceptance order.
// Outdoor searches ignore cuisine entirely.
func (f *FallbackSearch) Venues(ctx context.Context, city, venueType, audience, cuisine string, isOutdoor bool) []model.PlaceRecord {
	if f.places == nil || !f.places.Enabled() {
		return nil
	}
	if isOutdoor {
		cuisine = ""
	}

	var bias *model.Coordinate
	if city != "" {
		if c, err := f.places.Geocode(ctx, city); err == nil {
			bias = c
		}
	}
	radius := f.cfg.IndoorRadiusM
	if isOutdoor {
		radius = f.cfg.OutdoorRadiusM
	}

	queries := fallbackQueries(city, venueType, cuisine, isOutdoor)
	var seeds []model.Seed
	seen := make(map[string]struct{})
	for _, q := range queries {
		if len(seeds) >= f.cfg.FallbackSeedLimit {
			break
		}
		found, err := f.places.TextSearch(ctx, model.SearchQuery{
			Text:       q,
			Bias:       bias,
			RadiusM:    radius,
			MaxResults: f.cfg.FallbackPerQuery,
		})
		if err != nil {
			continue
		}
		for _, s := range found {
			if _, dup := seen[s.PlaceID]; dup {
				continue
			}
			seen[s.PlaceID] = struct{}{}
			seeds = append(seeds, s)
		}
	}

	results := make([]model.PlaceRecord, 0, f.cfg.MaxVenues)
	for _, s := range seeds {
		if len(results) >= f.cfg.MaxVenues {
			break
		}
		if s.PlaceID == "" {
			continue
		}
		rec, err := f.places.Details(ctx, s.PlaceID)
		if err != nil || rec == nil {
			continue
		}
		if !utils.InCity(rec.FormattedAddress, city) {
			continue
		}
		if !isOutdoor && cuisine != "" && !MatchesCuisine(rec, cuisine) {
			continue
		}
		results = append(results, *rec)
	}

	log.Info().
		Str("city", city).
		Str("venue_type", venueType).
		Str("audience", audience).
		Bool("outdoor", isOutdoor).
		Int("queries", len(queries)).
		Int("seeds", len(seeds)).
		Int("accepted", len(results)).
		Msg("🔎 Fallback venue search finished")
	return results
}

// fallbackQueries builds the ordered query list. Outdoor uses open-air
// categories only; otherwise cuisine phrases come first, then each venue
// type term with the cuisine prefixed before its plain form.
func fallbackQueries(city, venueType, cuisine string, isOutdoor bool) []string {
	var queries []string
	if isOutdoor {
		for _, term := range utils.OutdoorTerms() {
			queries = append(queries, fmt.Sprintf("%s %s", term, city))
		}
		return queries
	}

	ckey := utils.CuisineKey(cuisine)
	for _, term := range utils.CuisineSearchTerms(ckey) {
		queries = append(queries, fmt.Sprintf("%s %s", term, city))
	}
	for _, term := range utils.VenueTypeTerms(strings.ToLower(venueType)) {
		if ckey != "" {
			queries = append(queries, fmt.Sprintf("%s %s %s", ckey, term, city))
		}
		queries = append(queries, fmt.Sprintf("%s %s", term, city))
	}
	return queries
}
