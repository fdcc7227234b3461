package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"partyplanner/internal/config"
	"partyplanner/internal/metrics"
	"partyplanner/internal/model"
)

const (
	weatherUnavailable = "Weather information not available - please check local forecast"
	noModelResponse    = "No LLM response available"
	venueTemperature   = 0.6
)

// Venue pipeline outcomes, used for metrics and the plan log
const (
	PathResolved = "resolved"
	PathFallback = "fallback"
	PathRetry    = "fallback_retry"
	PathEmpty    = "empty"
)

// Forecaster renders a one-line forecast for a city and YYYY-MM-DD date.
// It never fails; unavailability is part of the returned sentence.
type Forecaster interface {
	WeatherLine(ctx context.Context, city, date string, hour int) string
}

// RequestLogger records finished venue requests
type RequestLogger interface {
	LogVenueRequest(ctx context.Context, entry model.VenueLogEntry) error
}

// VenueEventCallback is called for streaming venue events
type VenueEventCallback func(event string, data any) error

// VenueService turns model suggestions into verified venues
type VenueService struct {
	llm        TextGenerator
	weather    Forecaster
	resolver   *Resolver
	fallback   *FallbackSearch
	requests   RequestLogger
	cfg        config.VenueConfig
	targetHour int
}

// NewVenueService creates a new venue service. weather and requests may be nil.
func NewVenueService(
	llm TextGenerator,
	places PlaceLookup,
	weather Forecaster,
	requests RequestLogger,
	cfg config.VenueConfig,
	targetHour int,
) *VenueService {
	return &VenueService{
		llm:        llm,
		weather:    weather,
		resolver:   NewResolver(places, cfg),
		fallback:   NewFallbackSearch(places, cfg),
		requests:   requests,
		cfg:        cfg,
		targetHour: targetHour,
	}
}

// Process runs one venue request. It never fails: every collaborator
// failure degrades to fewer or no venues.
func (s *VenueService) Process(ctx context.Context, rc model.RequestContext) *model.VenueResult {
	res, _ := s.run(ctx, rc, nil)
	return res
}

// ProcessStream runs one venue request, reporting each stage through
// callback. It only fails when callback does.
func (s *VenueService) ProcessStream(ctx context.Context, rc model.RequestContext, callback VenueEventCallback) (*model.VenueResult, error) {
	return s.run(ctx, rc, callback)
}

func (s *VenueService) run(ctx context.Context, rc model.RequestContext, callback VenueEventCallback) (*model.VenueResult, error) {
	start := time.Now()
	emit := func(event string, data any) error {
		if callback == nil {
			return nil
		}
		return callback(event, data)
	}

	weather := s.weatherLine(ctx, rc)
	if err := emit("weather", map[string]any{"weather_info": weather}); err != nil {
		return nil, err
	}

	isOutdoor := rc.IsOutdoor()
	cuisine := rc.EffectiveCuisine()

	prompt := buildVenuePrompt(rc, cuisine, weather, isOutdoor)
	raw, err := s.generate(ctx, prompt, callback)
	if err != nil {
		return nil, err
	}

	names := ExtractVenueNames(raw)
	if err := emit("candidates", map[string]any{"names": names}); err != nil {
		return nil, err
	}

	path := PathResolved
	venues := make([]model.PlaceRecord, 0, s.cfg.MaxVenues)
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		rec := s.resolver.Resolve(ctx, name, rc.City, cuisine)
		// acceptance re-checks the requested cuisine, not the effective one
		accepted := rec != nil && (isOutdoor || rc.Cuisine == "" || MatchesCuisine(rec, rc.Cuisine))
		if accepted {
			if _, dup := seen[rec.PlaceID]; dup {
				accepted = false
			} else {
				seen[rec.PlaceID] = struct{}{}
				venues = append(venues, rec.WithProvenance(model.ProvenanceLLMVerified))
			}
		}
		if err := emit("resolved", map[string]any{"name": name, "found": accepted}); err != nil {
			return nil, err
		}
	}

	if len(venues) == 0 {
		path = PathFallback
		venues = stamp(s.fallback.Venues(ctx, rc.City, rc.VenueType, rc.Audience, cuisine, isOutdoor), model.ProvenanceFallbackSearch)
		if err := emit("fallback", map[string]any{"count": len(venues)}); err != nil {
			return nil, err
		}
	}

	if len(venues) == 0 && isOutdoor && strings.TrimSpace(rc.Cuisine) != "" {
		path = PathRetry
		venues = stamp(s.fallback.Venues(ctx, rc.City, rc.VenueType, rc.Audience, "", true), model.ProvenanceFallbackSearch)
		if err := emit("fallback", map[string]any{"count": len(venues), "retry": true}); err != nil {
			return nil, err
		}
	}

	if len(venues) == 0 {
		path = PathEmpty
	}

	if raw == "" {
		raw = noModelResponse
	}

	elapsed := time.Since(start)
	result := &model.VenueResult{
		Suggestions: venues,
		Raw:         raw,
		Display:     renderVenueDisplay(weather, venues, rc.City),
		WeatherInfo: weather,
		PlanID:      uuid.NewString(),
		Took:        elapsed.Milliseconds(),
	}

	metrics.RecordVenueRequest(path, elapsed)
	log.Info().
		Str("plan_id", result.PlanID).
		Str("city", rc.City).
		Str("venue_type", rc.VenueType).
		Str("path", path).
		Int("venues", len(venues)).
		Dur("took", elapsed).
		Msg("✅ Venue request processed")

	s.logRequest(result, rc, path)
	return result, nil
}

// weatherLine prefers the precomputed summary, then asks the forecaster
func (s *VenueService) weatherLine(ctx context.Context, rc model.RequestContext) string {
	if w := strings.TrimSpace(rc.WeatherSummary); w != "" {
		return w
	}
	if s.weather != nil && rc.City != "" && len(strings.TrimSpace(rc.EventDate)) >= 10 {
		return s.weather.WeatherLine(ctx, rc.City, rc.EventDate, s.targetHour)
	}
	return weatherUnavailable
}

// generate returns the model text or "" on any model failure. Only a
// failing stream callback is returned as an error.
func (s *VenueService) generate(ctx context.Context, prompt string, callback VenueEventCallback) (string, error) {
	if s.llm == nil || !s.llm.IsEnabled() {
		return "", nil
	}
	opts := GenerateOptions{Temperature: venueTemperature, MaxTokens: s.cfg.ModelMaxTokens}

	var cbErr error
	var text string
	var err error
	if sg, ok := s.llm.(StreamingGenerator); ok && callback != nil {
		text, err = sg.GenerateStream(ctx, prompt, opts, func(delta string) error {
			if e := callback("llm", map[string]any{"content": delta}); e != nil {
				cbErr = e
				return e
			}
			return nil
		})
	} else {
		text, err = s.llm.Generate(ctx, prompt, opts)
	}

	if cbErr != nil {
		return "", cbErr
	}
	if err != nil {
		log.Warn().Err(err).Msg("⚠️  Venue model call failed, continuing without suggestions")
		return "", nil
	}
	return text, nil
}

// logRequest stores the outcome without blocking the response
func (s *VenueService) logRequest(result *model.VenueResult, rc model.RequestContext, path string) {
	if s.requests == nil {
		return
	}
	entry := model.VenueLogEntry{
		PlanID:    result.PlanID,
		City:      rc.City,
		VenueType: rc.VenueType,
		Cuisine:   rc.Cuisine,
		EventDate: rc.EventDate,
		Path:      path,
		TookMs:    int(result.Took),
	}
	for _, v := range result.Suggestions {
		entry.PlaceIDs = append(entry.PlaceIDs, v.PlaceID)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.requests.LogVenueRequest(ctx, entry); err != nil {
			log.Warn().Err(err).Str("plan_id", entry.PlanID).Msg("⚠️  Failed to log venue request")
		}
	}()
}

// stamp returns provenance-marked copies of found records
func stamp(recs []model.PlaceRecord, src model.Provenance) []model.PlaceRecord {
	out := make([]model.PlaceRecord, len(recs))
	for i, r := range recs {
		out[i] = r.WithProvenance(src)
	}
	return out
}
