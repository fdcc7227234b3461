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

// PlaceLookup is the place provider used by the resolver and fallback.
// Any error is treated as an absent result.
type PlaceLookup interface {
	Enabled() bool
	Geocode(ctx context.Context, city string) (*model.Coordinate, error)
	TextSearch(ctx context.Context, q model.SearchQuery) ([]model.Seed, error)
	Details(ctx context.Context, placeID string) (*model.PlaceRecord, error)
}

// Resolver maps a free-text venue name to the best matching real place
type Resolver struct {
	places PlaceLookup
	cfg    config.VenueConfig
}

// NewResolver creates a resolver
func NewResolver(places PlaceLookup, cfg config.VenueConfig) *Resolver {
	return &Resolver{places: places, cfg: cfg}
}

// Resolve searches four phrasings of name in city and returns the single
// highest scoring place across all of them, or nil. Ties keep the first
// record seen.
func (r *Resolver) Resolve(ctx context.Context, name, city, cuisine string) *model.PlaceRecord {
	if r.places == nil || !r.places.Enabled() {
		return nil
	}

	var bias *model.Coordinate
	if city != "" {
		if c, err := r.places.Geocode(ctx, city); err == nil {
			bias = c
		}
	}

	best := model.CandidateScore{Score: -1}
	for _, q := range resolveQueries(name, city) {
		seeds, err := r.places.TextSearch(ctx, model.SearchQuery{
			Text:       q,
			Bias:       bias,
			RadiusM:    r.cfg.ResolveRadiusM,
			MaxResults: r.cfg.ResolveMaxResults,
		})
		if err != nil {
			continue
		}

		for _, seed := range seeds {
			if seed.PlaceID == "" {
				continue
			}
			rec, err := r.places.Details(ctx, seed.PlaceID)
			if err != nil || rec == nil {
				continue
			}
			if s := scoreCandidate(name, city, cuisine, rec); s > best.Score {
				best = model.CandidateScore{Score: s, Record: rec}
			}
		}
	}

	if best.Record != nil {
		log.Debug().Str("candidate", name).Str("place", best.Record.Name).Int("score", best.Score).Msg("Resolved venue")
	}
	return best.Record
}

func resolveQueries(name, city string) []string {
	return []string{
		fmt.Sprintf("%s %s", name, city),
		name,
		fmt.Sprintf("%s venue %s", name, city),
		fmt.Sprintf("%s restaurant %s", name, city),
	}
}

// scoreCandidate is word overlap with the candidate name, +2 when the
// address is in the city and, when a cuisine is requested, +3 on a cuisine
// match or -2 otherwise.
func scoreCandidate(name, city, cuisine string, rec *model.PlaceRecord) int {
	score := wordOverlap(name, rec.Name)
	if utils.InCity(rec.FormattedAddress, city) {
		score += 2
	}
	if utils.CuisineKey(cuisine) != "" {
		if MatchesCuisine(rec, cuisine) {
			score += 3
		} else {
			score -= 2
		}
	}
	return score
}

func wordOverlap(a, b string) int {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(a)) {
		words[w] = struct{}{}
	}
	n := 0
	counted := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(b)) {
		if _, ok := words[w]; !ok {
			continue
		}
		if _, dup := counted[w]; dup {
			continue
		}
		counted[w] = struct{}{}
		n++
	}
	return n
}
