package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"partyplanner/internal/model"
	"partyplanner/internal/utils"
)

// PlanForecaster renders the short forecast passed to every agent
type PlanForecaster interface {
	ForecastSummary(ctx context.Context, city, date string, hour int) string
}

const (
	planWeatherUnavailable = "Weather forecast unavailable - please check local conditions"
	printActivityChars     = 900
)

// Planner runs the venue pipeline and the four text agents for one party
type Planner struct {
	llm        TextGenerator
	venues     *VenueService
	weather    PlanForecaster
	targetHour int
}

// NewPlanner creates a planner. weather may be nil.
func NewPlanner(llm TextGenerator, venues *VenueService, weather PlanForecaster, targetHour int) *Planner {
	return &Planner{
		llm:        llm,
		venues:     venues,
		weather:    weather,
		targetHour: targetHour,
	}
}

// agentInput is the JSON document every agent receives
type agentInput struct {
	City         string           `json:"city"`
	Date         string           `json:"event_date"`
	GuestCount   int              `json:"guest_count"`
	Audience     string           `json:"audience,omitempty"`
	VenueType    string           `json:"venue_type"`
	Cuisine      string           `json:"cuisine,omitempty"`
	Dietary      []string         `json:"dietary,omitempty"`
	ActivityType string           `json:"activity_type,omitempty"`
	Budget       budgetInput      `json:"budget"`
	Weather      string           `json:"weather_forecast_text"`
	Task         string           `json:"task,omitempty"`
	Cake         *model.CakeHints `json:"cake,omitempty"`
	Style        styleInput       `json:"style"`
}

type budgetInput struct {
	Total    int `json:"total"`
	Venue    int `json:"venue"`
	Menu     int `json:"menu"`
	Activity int `json:"activity"`
}

type styleInput struct {
	Concise    bool   `json:"concise"`
	MaxBullets int    `json:"max_bullets"`
	Language   string `json:"language"`
}

// Plan produces the full party plan. Agents run concurrently and each
// degrades to an error notice, so Plan only fails on a bad payload.
func (p *Planner) Plan(ctx context.Context, req model.PlanRequest) (*model.PlanResponse, error) {
	start := time.Now()

	weather := planWeatherUnavailable
	if p.weather != nil {
		weather = p.weather.ForecastSummary(ctx, req.City, req.EventDate, p.targetHour)
	}

	payload, err := agentPayload(req, weather)
	if err != nil {
		return nil, fmt.Errorf("failed to build agent input: %w", err)
	}

	agents := []agentSpec{budgetAgent, menuAgentFor(req), activityAgent, guestAgent}
	outputs := make([]string, len(agents))
	var venue *model.VenueResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		venue = p.venues.Process(gctx, req.VenueContext(weather))
		return nil
	})
	for i, agent := range agents {
		g.Go(func() error {
			outputs[i] = p.runAgent(gctx, agent, payload)
			return nil
		})
	}
	_ = g.Wait()

	resp := &model.PlanResponse{
		PlanID:  venue.PlanID,
		Title:   fmt.Sprintf("Birthday Plan - %s - %s", req.City, req.EventDate),
		City:    req.City,
		Date:    req.EventDate,
		Weather: weather,
		Budget:  outputs[0],
		Venue:   venue,
		Sections: []model.PlanSection{
			{Title: "Venue", Content: venue.Display},
		},
	}
	for i, agent := range agents[1:] {
		resp.Sections = append(resp.Sections, model.PlanSection{Title: agent.Title, Content: outputs[i+1]})
	}
	if resp.PlanID == "" {
		resp.PlanID = uuid.NewString()
	}
	resp.Took = time.Since(start).Milliseconds()

	log.Info().Str("plan_id", resp.PlanID).Str("city", req.City).Int64("took_ms", resp.Took).Msg("🎉 Party plan generated")
	return resp, nil
}

// runAgent calls the model and cleans up its answer; failures become text
func (p *Planner) runAgent(ctx context.Context, agent agentSpec, payload string) string {
	if p.llm == nil {
		return fmt.Sprintf("❌ %s agent failed: %v", agent.Name, ErrLLMDisabled)
	}
	text, err := p.llm.Generate(ctx, composeAgentPrompt(agent.Instruction, payload), GenerateOptions{
		Temperature: agent.Temperature,
		TopP:        agentTopP,
		MaxTokens:   agentMaxTokens,
	})
	if err != nil {
		log.Warn().Str("agent", agent.Name).Err(err).Msg("⚠️  Agent failed")
		return fmt.Sprintf("❌ %s agent failed: %v", agent.Name, err)
	}
	return utils.EnforceLimits(utils.JSONToMarkdown(text), maxBullets, agent.MaxChars)
}

func agentPayload(req model.PlanRequest, weather string) (string, error) {
	in := agentInput{
		City:         req.City,
		Date:         req.EventDate,
		GuestCount:   req.GuestCount,
		Audience:     req.Audience,
		VenueType:    req.VenueType,
		Cuisine:      req.Cuisine,
		Dietary:      req.Dietary,
		ActivityType: req.ActivityType,
		Budget: budgetInput{
			Total:    req.Budget.Total,
			Venue:    req.Budget.Venue,
			Menu:     req.Budget.Menu,
			Activity: req.Budget.Activity,
		},
		Weather: weather,
		Task:    req.Task,
		Cake:    req.Cake,
		Style:   styleInput{Concise: true, MaxBullets: maxBullets, Language: "en"},
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(in); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// ExportSections returns the plan sections for a printable document, with
// the tighter activity limit used in print
func ExportSections(plan *model.PlanResponse) []model.PlanSection {
	sections := make([]model.PlanSection, 0, len(plan.Sections)+1)
	if plan.Budget != "" {
		sections = append(sections, model.PlanSection{Title: budgetAgent.Title, Content: plan.Budget})
	}
	for _, s := range plan.Sections {
		content := s.Content
		if s.Title != "Venue" {
			limit := 0
			if s.Title == activityAgent.Title {
				limit = printActivityChars
			}
			content = utils.EnforceLimits(content, maxBullets, limit)
		}
		sections = append(sections, model.PlanSection{Title: s.Title, Content: content})
	}
	return sections
}
