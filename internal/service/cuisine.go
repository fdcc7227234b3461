package service

import (
	"strings"

	"partyplanner/internal/model"
	"partyplanner/internal/utils"
)

// MatchesCuisine is a recall-oriented check that a place serves the given
// cuisine category. An empty category always matches.
func MatchesCuisine(rec *model.PlaceRecord, cuisine string) bool {
	keywords := utils.CuisineKeywords(cuisine)
	if len(keywords) == 0 {
		return true
	}
	if rec == nil {
		return false
	}

	for _, tag := range rec.ServesCuisine {
		tag = strings.ToLower(strings.TrimSpace(tag))
		for _, kw := range keywords {
			if tag == kw {
				return true
			}
		}
	}

	haystack := strings.Join([]string{
		rec.Name,
		rec.FormattedAddress,
		rec.EditorialSummary,
		strings.Join(rec.Types, " "),
		rec.Website,
	}, " ")
	return utils.ContainsAnyFold(haystack, keywords)
}
