package model

// VenueRequest represents a venue search request
type VenueRequest struct {
	City           string   `json:"city" binding:"required"`
	VenueType      string   `json:"venue_type" binding:"required,venuetype"`
	Audience       string   `json:"audience,omitempty"`
	GuestCount     int      `json:"guest_count" binding:"gte=0"`
	Budget         float64  `json:"budget" binding:"gte=0"` // venue budget in ₺
	Cuisine        string   `json:"cuisine,omitempty"`
	Dietary        []string `json:"dietary,omitempty"`
	EventDate      string   `json:"event_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	WeatherSummary string   `json:"weather_summary,omitempty"`
}

// Context converts the request into the pipeline's read-only context
func (r VenueRequest) Context() RequestContext {
	return RequestContext{
		City:           r.City,
		VenueType:      r.VenueType,
		Audience:       r.Audience,
		GuestCount:     r.GuestCount,
		Budget:         r.Budget,
		Cuisine:        r.Cuisine,
		Dietary:        r.Dietary,
		EventDate:      r.EventDate,
		WeatherSummary: r.WeatherSummary,
	}
}

// BudgetBreakdown splits the total party budget, all in ₺
type BudgetBreakdown struct {
	Total    int `json:"total" binding:"gte=0"`
	Venue    int `json:"venue" binding:"gte=0"`
	Menu     int `json:"menu" binding:"gte=0"`
	Activity int `json:"activity" binding:"gte=0"`
}

// PlanRequest represents a full party plan request covering all agents
type PlanRequest struct {
	City         string          `json:"city" binding:"required"`
	EventDate    string          `json:"event_date" binding:"required,datetime=2006-01-02"`
	GuestCount   int             `json:"guest_count" binding:"gte=0"`
	Audience     string          `json:"audience,omitempty"`
	VenueType    string          `json:"venue_type" binding:"required,venuetype"`
	Cuisine      string          `json:"cuisine,omitempty"`
	Dietary      []string        `json:"dietary,omitempty"`
	ActivityType string          `json:"activity_type,omitempty"`
	Budget       BudgetBreakdown `json:"budget"`
	Task         string          `json:"task,omitempty"` // "cake" switches the menu agent to cake selection
	Cake         *CakeHints      `json:"cake,omitempty"`
}

// CakeHints are optional inputs that also switch the menu agent to cake mode
type CakeHints struct {
	BudgetTL int    `json:"cake_budget_tl,omitempty"`
	Portions int    `json:"cake_portions,omitempty"`
	Theme    string `json:"cake_theme,omitempty"`
	Dietary  string `json:"cake_dietary,omitempty"`
}

// VenueContext projects the plan request onto the venue pipeline
func (r PlanRequest) VenueContext(weather string) RequestContext {
	return RequestContext{
		City:           r.City,
		VenueType:      r.VenueType,
		Audience:       r.Audience,
		GuestCount:     r.GuestCount,
		Budget:         float64(r.Budget.Venue),
		Cuisine:        r.Cuisine,
		Dietary:        r.Dietary,
		EventDate:      r.EventDate,
		WeatherSummary: weather,
	}
}

// PlanSection is one rendered agent output
type PlanSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PlanResponse represents the combined plan
type PlanResponse struct {
	PlanID   string        `json:"plan_id"`
	Title    string        `json:"title"`
	City     string        `json:"city"`
	Date     string        `json:"date"`
	Weather  string        `json:"weather"`
	Budget   string        `json:"budget"`
	Venue    *VenueResult  `json:"venue"`
	Sections []PlanSection `json:"sections"`
	Took     int64         `json:"took_ms"`
}

// FeedbackRequest represents a user action on a suggested venue
type FeedbackRequest struct {
	PlanID  string `json:"plan_id" binding:"required,uuid"`
	PlaceID string `json:"place_id" binding:"required"`
	Action  string `json:"action" binding:"required,oneof=click directions website booked"`
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
