package places

import (
	"partyplanner/internal/model"
)

// Provider statuses that mean "no such place" rather than a failure
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusNotFound    = "NOT_FOUND"
)

// detailsFields is the field mask sent to the details endpoint
const detailsFields = "place_id,name,formatted_address,geometry/location,rating,user_ratings_total," +
	"price_level,opening_hours/weekday_text,opening_hours/open_now,website,url,types,editorial_summary"

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location model.Coordinate `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type findPlaceResponse struct {
	Status     string `json:"status"`
	Candidates []struct {
		PlaceID string `json:"place_id"`
	} `json:"candidates"`
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID string `json:"place_id"`
		Name    string `json:"name"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string      `json:"status"`
	Result placeResult `json:"result"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	PriceLevel       *int     `json:"price_level"`
	Website          string   `json:"website"`
	URL              string   `json:"url"`
	Types            []string `json:"types"`
	ServesCuisine    []string `json:"serves_cuisine"`
	Geometry         *struct {
		Location *model.Coordinate `json:"location"`
	} `json:"geometry"`
	OpeningHours *struct {
		WeekdayText []string `json:"weekday_text"`
		OpenNow     *bool    `json:"open_now"`
	} `json:"opening_hours"`
	EditorialSummary *struct {
		Overview string `json:"overview"`
	} `json:"editorial_summary"`
}

// toRecord converts the provider payload into an unverified PlaceRecord
func (r placeResult) toRecord(requestedID string) *model.PlaceRecord {
	rec := &model.PlaceRecord{
		PlaceID:          r.PlaceID,
		Name:             r.Name,
		FormattedAddress: r.FormattedAddress,
		Rating:           r.Rating,
		UserRatingsTotal: r.UserRatingsTotal,
		PriceLevel:       r.PriceLevel,
		Website:          r.Website,
		MapsURL:          r.URL,
		Types:            r.Types,
		ServesCuisine:    r.ServesCuisine,
		MatchStatus:      model.MatchNotVerified,
	}
	if rec.PlaceID == "" {
		rec.PlaceID = requestedID
	}
	if rec.MapsURL == "" {
		rec.MapsURL = MapsURL(rec.PlaceID)
	}
	if r.Geometry != nil && r.Geometry.Location != nil {
		loc := *r.Geometry.Location
		rec.Location = &loc
	}
	if r.OpeningHours != nil {
		rec.OpeningHours = &model.OpeningHours{
			WeekdayText: r.OpeningHours.WeekdayText,
			OpenNow:     r.OpeningHours.OpenNow,
		}
	}
	if r.EditorialSummary != nil {
		rec.EditorialSummary = r.EditorialSummary.Overview
	}
	return rec
}

// MapsURL builds the canonical map link for a place id
func MapsURL(placeID string) string {
	return "https://www.google.com/maps/place/?q=place_id:" + placeID
}
