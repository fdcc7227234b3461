package utils

import (
	"strings"
)

// cuisineKeywords are matched against place text; they include local spellings
var cuisineKeywords = map[string][]string{
	"italian":       {"italian", "italiano", "italyan", "ristorante", "trattoria", "pizzeria", "pizza", "pasta"},
	"turkish":       {"turkish", "türk", "lokanta", "kebap", "ocakbaşı", "meze"},
	"mediterranean": {"mediterranean", "akdeniz"},
	"asian":         {"asian", "asya", "sushi", "ramen", "thai", "korean", "kore", "japanese", "japon"},
	"mixed":         {"mixed", "international", "uluslararasi"},
}

// cuisineSearchTerms are phrased as search queries rather than keywords
var cuisineSearchTerms = map[string][]string{
	"italian":       {"italian restaurant", "italyan restoran", "pizzeria", "trattoria"},
	"turkish":       {"turkish restaurant", "türk restoran", "lokanta"},
	"mediterranean": {"mediterranean restaurant", "akdeniz restoran"},
	"asian":         {"asian restaurant", "asya restoran", "sushi", "ramen"},
	"mixed":         {"international restaurant", "mixed cuisine"},
}

var venueTypeTerms = map[string][]string{
	"indoor":  {"restaurant", "cafe", "party hall", "event venue"},
	"outdoor": {"park", "garden", "beach club", "terrace"},
	"hybrid":  {"restaurant with terrace", "event space", "venue"},
}

var defaultVenueTerms = []string{"venue", "restaurant"}

var outdoorTerms = []string{
	"park", "garden", "botanical garden", "zoo", "beach", "beach club",
	"outdoor event space", "promenade", "terrace", "viewing terrace",
	"piknik alanı", "mesire alanı", "çocuk parkı", "seyir terası",
	"koru", "kent ormanı", "tabiat parkı",
}

// CuisineKey lowercases and trims a cuisine category
func CuisineKey(cuisine string) string {
	return strings.ToLower(strings.TrimSpace(cuisine))
}

// CuisineKeywords returns the synonyms of a cuisine category.
// Unknown categories match themselves; empty yields nil.
func CuisineKeywords(cuisine string) []string {
	key := CuisineKey(cuisine)
	if key == "" {
		return nil
	}
	if kws, ok := cuisineKeywords[key]; ok {
		return kws
	}
	return []string{key}
}

// CuisineSearchTerms returns query phrases for a cuisine category
func CuisineSearchTerms(cuisine string) []string {
	key := CuisineKey(cuisine)
	if key == "" {
		return nil
	}
	if terms, ok := cuisineSearchTerms[key]; ok {
		return terms
	}
	return []string{key}
}

// VenueTypeTerms returns generic query phrases for a venue type
func VenueTypeTerms(venueType string) []string {
	if terms, ok := venueTypeTerms[strings.ToLower(strings.TrimSpace(venueType))]; ok {
		return terms
	}
	return defaultVenueTerms
}

// OutdoorTerms returns the open-air venue categories used for outdoor searches
func OutdoorTerms() []string {
	return outdoorTerms
}

// ContainsAnyFold reports whether haystack contains any keyword, ignoring case
func ContainsAnyFold(haystack string, keywords []string) bool {
	h := strings.ToLower(haystack)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(h, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
