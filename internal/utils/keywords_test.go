package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCuisineKeywords(t *testing.T) {
	assert.Contains(t, CuisineKeywords(" Italian "), "trattoria")
	assert.Contains(t, CuisineKeywords("TURKISH"), "lokanta")
	assert.Equal(t, []string{"french"}, CuisineKeywords("French"))
	assert.Nil(t, CuisineKeywords(""))
}

func TestCuisineSearchTerms(t *testing.T) {
	assert.Equal(t, []string{"turkish restaurant", "türk restoran", "lokanta"}, CuisineSearchTerms("Turkish"))
	assert.Equal(t, []string{"international"}, CuisineSearchTerms("International"))
	assert.Nil(t, CuisineSearchTerms("  "))
}

func TestVenueTypeTerms(t *testing.T) {
	assert.Equal(t, []string{"restaurant", "cafe", "party hall", "event venue"}, VenueTypeTerms("Indoor"))
	assert.Equal(t, []string{"restaurant with terrace", "event space", "venue"}, VenueTypeTerms("hybrid"))
	assert.Equal(t, []string{"venue", "restaurant"}, VenueTypeTerms("rooftop"))
}

func TestContainsAnyFold(t *testing.T) {
	assert.True(t, ContainsAnyFold("Luigi's PIZZERIA Napoli", []string{"pizzeria"}))
	assert.False(t, ContainsAnyFold("Sushi Bar", []string{"kebap", ""}))
	assert.False(t, ContainsAnyFold("anything", nil))
}
