package model

import "time"

// VenueLogEntry is one finished venue request as stored in the plan log.
// It carries place ids only, never the venue data itself.
type VenueLogEntry struct {
	PlanID    string
	City      string
	VenueType string
	Cuisine   string
	EventDate string
	Path      string
	PlaceIDs  []string
	TookMs    int
}

// Feedback is a stored user action on a suggested place
type Feedback struct {
	ID        int64     `db:"id" json:"id"`
	PlanID    string    `db:"plan_id" json:"plan_id"`
	PlaceID   string    `db:"place_id" json:"place_id"`
	Action    string    `db:"action" json:"action"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
