package service

import (
	"context"
	"errors"
	"sync"

	"partyplanner/internal/model"
)

var errFakeNotFound = errors.New("not found")

// fakePlaces serves canned search results keyed by query text
type fakePlaces struct {
	mu       sync.Mutex
	disabled bool
	center   *model.Coordinate
	search   map[string][]model.Seed
	details  map[string]*model.PlaceRecord
	queries  []model.SearchQuery
	detailed []string
}

func newFakePlaces() *fakePlaces {
	return &fakePlaces{
		center:  &model.Coordinate{Lat: 39.93, Lng: 32.85},
		search:  map[string][]model.Seed{},
		details: map[string]*model.PlaceRecord{},
	}
}

func (f *fakePlaces) add(query string, recs ...*model.PlaceRecord) {
	for _, r := range recs {
		f.search[query] = append(f.search[query], model.Seed{PlaceID: r.PlaceID, Name: r.Name})
		f.details[r.PlaceID] = r
	}
}

func (f *fakePlaces) Enabled() bool { return !f.disabled }

func (f *fakePlaces) Geocode(ctx context.Context, city string) (*model.Coordinate, error) {
	if f.center == nil {
		return nil, errFakeNotFound
	}
	return f.center, nil
}

func (f *fakePlaces) TextSearch(ctx context.Context, q model.SearchQuery) ([]model.Seed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	seeds := f.search[q.Text]
	if q.MaxResults > 0 && len(seeds) > q.MaxResults {
		seeds = seeds[:q.MaxResults]
	}
	return seeds, nil
}

func (f *fakePlaces) Details(ctx context.Context, placeID string) (*model.PlaceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailed = append(f.detailed, placeID)
	rec, ok := f.details[placeID]
	if !ok {
		return nil, errFakeNotFound
	}
	return rec, nil
}

func (f *fakePlaces) queryTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.queries))
	for i, q := range f.queries {
		out[i] = q.Text
	}
	return out
}

// fakeLLM answers every prompt through reply
type fakeLLM struct {
	mu       sync.Mutex
	disabled bool
	reply    func(prompt string) (string, error)
	prompts  []string
	opts     []GenerateOptions
}

func (f *fakeLLM) IsEnabled() bool { return !f.disabled }

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	f.mu.Unlock()
	if f.reply == nil {
		return "", ErrEmptyResponse
	}
	return f.reply(prompt)
}

// fakeStreamingLLM emits its answer word by word
type fakeStreamingLLM struct {
	fakeLLM
}

func (f *fakeStreamingLLM) GenerateStream(ctx context.Context, prompt string, opts GenerateOptions, onDelta func(string) error) (string, error) {
	text, err := f.Generate(ctx, prompt, opts)
	if err != nil {
		return "", err
	}
	for _, part := range []string{text[:len(text)/2], text[len(text)/2:]} {
		if err := onDelta(part); err != nil {
			return "", err
		}
	}
	return text, nil
}

type fakeForecaster struct {
	line    string
	summary string
	calls   []string
	hours   []int
}

func (f *fakeForecaster) WeatherLine(ctx context.Context, city, date string, hour int) string {
	f.calls = append(f.calls, city+"|"+date)
	f.hours = append(f.hours, hour)
	return f.line
}

func (f *fakeForecaster) ForecastSummary(ctx context.Context, city, date string, hour int) string {
	return f.summary
}

func ptr[T any](v T) *T { return &v }
