package service

import (
	"fmt"
	"strconv"
	"strings"

	"partyplanner/internal/model"
)

const noVenuesNotice = "❌ No suitable venues found. Please try different search criteria."

// renderVenueDisplay builds the markdown block shown to the user: the
// weather line followed by one numbered entry per venue
func renderVenueDisplay(weather string, venues []model.PlaceRecord, city string) string {
	var parts []string
	if weather != "" {
		parts = append(parts, "📅 **Weather:** "+weather, "")
	}

	if len(venues) == 0 {
		parts = append(parts, noVenuesNotice)
		return strings.Join(parts, "\n")
	}

	parts = append(parts, fmt.Sprintf("📍 **Recommended Venues in %s:**", city), "")

	for i, v := range venues {
		name := v.Name
		if name == "" {
			name = "Unknown Venue"
		}
		parts = append(parts, fmt.Sprintf("**%d. %s**", i+1, name))

		addr := v.FormattedAddress
		if addr == "" {
			addr = city + " (address not available)"
		}
		parts = append(parts, "📌 **Address:** "+addr)

		var meta []string
		if v.Rating != nil {
			rating := fmt.Sprintf("⭐ %s/5", formatRating(*v.Rating))
			if v.UserRatingsTotal != nil && *v.UserRatingsTotal > 0 {
				rating += fmt.Sprintf(" (%d reviews)", *v.UserRatingsTotal)
			}
			meta = append(meta, rating)
		}
		if price := v.PriceText(); price != "" {
			meta = append(meta, "💰 "+price)
		}
		if len(meta) > 0 {
			parts = append(parts, strings.Join(meta, " · "))
		}

		if v.MapsURL != "" {
			parts = append(parts, "🗺️ **Google Maps:** "+v.MapsURL)
		}
		if v.Website != "" {
			parts = append(parts, "🌐 **Website:** "+v.Website)
		}
		if v.OpeningHours != nil && len(v.OpeningHours.WeekdayText) > 0 {
			hours := make([]string, len(v.OpeningHours.WeekdayText))
			for j, ln := range v.OpeningHours.WeekdayText {
				hours[j] = "- " + ln
			}
			parts = append(parts, "🕒 **Working Hours:**\n"+strings.Join(hours, "\n"))
		}
		parts = append(parts, "")
	}

	return strings.Join(parts, "\n")
}

// formatRating keeps one decimal for whole ratings, "4.0" rather than "4"
func formatRating(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
