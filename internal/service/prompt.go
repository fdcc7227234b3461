package service

import (
	"fmt"
	"strconv"
	"strings"

	"partyplanner/internal/model"
)

const outdoorCuisineRule = "- Cuisine is optional for outdoor; prioritize parks, gardens, terraces, beach clubs, and other open-air venues.\n"

// buildVenuePrompt asks the model for three real venues, one bolded name
// and a one-sentence reason per line. cuisine is the effective cuisine.
func buildVenuePrompt(rc model.RequestContext, cuisine, weather string, isOutdoor bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a venue expert for %s, Turkey.\n", rc.City)
	b.WriteString("Suggest 3 REAL venues that actually exist in the city.\n")

	b.WriteString("\nParty Details:\n")
	fmt.Fprintf(&b, "- City: %s\n", rc.City)
	fmt.Fprintf(&b, "- Venue Type: %s\n", rc.VenueType)
	fmt.Fprintf(&b, "- Audience: %s\n", rc.Audience)
	fmt.Fprintf(&b, "- Guests: %d\n", rc.GuestCount)
	fmt.Fprintf(&b, "- Budget: %s ₺\n", formatNumber(rc.Budget))
	fmt.Fprintf(&b, "- Cuisine: %s\n", cuisine)
	if len(rc.Dietary) > 0 {
		fmt.Fprintf(&b, "- Dietary Needs: %s\n", strings.Join(rc.Dietary, ", "))
	}
	fmt.Fprintf(&b, "- Weather Forecast: %s\n", weather)

	b.WriteString("\nIMPORTANT:\n")
	switch {
	case isOutdoor:
		b.WriteString(outdoorCuisineRule)
	case cuisine != "":
		fmt.Fprintf(&b, "- Only suggest venues that primarily serve **%s** cuisine.\n", cuisine)
	}
	b.WriteString("- If rainy/stormy: prioritize indoor/covered venues.\n")
	b.WriteString("- If clear/sunny: outdoor/hybrid are fine.\n")
	b.WriteString("- Suggest specific, real venues (names only). Keep description to one short sentence each.\n")
	b.WriteString("\nFormat:\n")
	b.WriteString("**Venue Name**: one short reason it fits the party and weather.\n")

	return b.String()
}

// formatNumber prints whole amounts without a decimal part
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
