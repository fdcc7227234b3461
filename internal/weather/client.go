package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/phuslu/log"

	"partyplanner/internal/config"
	"partyplanner/internal/metrics"
	"partyplanner/internal/model"
)

const (
	dateLayout         = "2006-01-02"
	summaryUnavailable = "Weather forecast unavailable - please check local conditions"
)

// ErrNoForecast is returned when the date is outside the forecast window
// or the city cannot be located
var ErrNoForecast = errors.New("forecast not available")

// Geocoder resolves a city to coordinates; the Places client satisfies it
type Geocoder interface {
	Geocode(ctx context.Context, city string) (*model.Coordinate, error)
}

// Forecast is the expected weather for one city and day
type Forecast struct {
	Date        string   `json:"date"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	MinC        *float64 `json:"t_min_c,omitempty"`
	MaxC        *float64 `json:"t_max_c,omitempty"`
	ExpectedC   *float64 `json:"t_expected_c,omitempty"`
	WeatherCode *int     `json:"weathercode,omitempty"`
	Text        string   `json:"weather_text"`
	Emoji       string   `json:"weather_emoji"`
	Source      string   `json:"source"`
}

// Client fetches Open-Meteo forecasts
type Client struct {
	forecastURL string
	geocodeURL  string
	httpClient  *http.Client
	geocoder    Geocoder
	cache       *cache.Cache
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithGeocoder makes the client try geocoder before Open-Meteo's own geocoding
func WithGeocoder(g Geocoder) ClientOption {
	return func(c *Client) {
		c.geocoder = g
	}
}

// NewClient creates a weather client
func NewClient(cfg config.WeatherConfig, opts ...ClientOption) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		forecastURL: cfg.ForecastURL,
		geocodeURL:  cfg.GeocodeURL,
		httpClient:  &http.Client{Timeout: timeout},
		cache:       cache.New(ttl, 30*time.Minute),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Forecast returns the forecast for city on day, with the expected
// temperature taken at the local hour closest to targetHour.
func (c *Client) Forecast(ctx context.Context, city string, day time.Time, targetHour int) (*Forecast, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrNoForecast
	}
	targetHour = clampHour(targetHour)
	dayStr := day.Format(dateLayout)

	key := fmt.Sprintf("%s|%s|%d", strings.ToLower(city), dayStr, targetHour)
	if v, ok := c.cache.Get(key); ok {
		metrics.RecordCache("weather", true)
		return v.(*Forecast), nil
	}
	metrics.RecordCache("weather", false)

	coord := c.locate(ctx, city)
	if coord == nil {
		metrics.RecordCall("weather", "forecast", "not_found")
		return nil, ErrNoForecast
	}

	params := url.Values{
		"latitude":   {strconv.FormatFloat(coord.Lat, 'f', -1, 64)},
		"longitude":  {strconv.FormatFloat(coord.Lng, 'f', -1, 64)},
		"timezone":   {"auto"},
		"start_date": {dayStr},
		"end_date":   {dayStr},
		"daily":      {"temperature_2m_max,temperature_2m_min,weathercode"},
		"hourly":     {"temperature_2m"},
	}
	var resp forecastResponse
	if err := c.get(ctx, c.forecastURL, params, &resp); err != nil {
		metrics.RecordCall("weather", "forecast", "error")
		return nil, err
	}

	fc := resp.toForecast(dayStr, targetHour)
	if fc == nil {
		metrics.RecordCall("weather", "forecast", "not_found")
		return nil, ErrNoForecast
	}
	fc.Lat, fc.Lng = coord.Lat, coord.Lng
	metrics.RecordCall("weather", "forecast", "ok")

	c.cache.Set(key, fc, cache.DefaultExpiration)
	return fc, nil
}

// WeatherLine renders a one-sentence forecast for date (YYYY-MM-DD) or a
// "not available" sentence. It never fails.
func (c *Client) WeatherLine(ctx context.Context, city, date string, targetHour int) string {
	day, err := parseDate(date)
	if err != nil {
		return fmt.Sprintf("Weather on %s in %s: not available.", date, city)
	}
	fc, err := c.Forecast(ctx, city, day, targetHour)
	if err != nil {
		if !errors.Is(err, ErrNoForecast) {
			log.Warn().Str("city", city).Str("date", date).Err(err).Msg("⚠️  Weather lookup failed")
		}
		return fmt.Sprintf("Weather on %s in %s: not available.", day.Format(dateLayout), city)
	}
	return fc.Line(city)
}

// ForecastSummary renders the short forecast shared by the planning agents
// or a fixed "unavailable" sentence. It never fails.
func (c *Client) ForecastSummary(ctx context.Context, city, date string, targetHour int) string {
	day, err := parseDate(date)
	if err != nil {
		return summaryUnavailable
	}
	fc, err := c.Forecast(ctx, city, day, targetHour)
	if err != nil {
		if !errors.Is(err, ErrNoForecast) {
			log.Warn().Str("city", city).Str("date", date).Err(err).Msg("⚠️  Weather lookup failed")
		}
		return summaryUnavailable
	}
	return fc.Summary()
}

// Line formats the forecast as "Weather on <date> in <city>: ..."
func (f *Forecast) Line(city string) string {
	var parts []string
	if head := strings.TrimSpace(f.Emoji + " " + f.Text); head != "" {
		parts = append(parts, head)
	}
	if f.ExpectedC != nil {
		parts = append(parts, "~"+formatTemp(*f.ExpectedC)+"°C")
	}
	if f.MinC != nil && f.MaxC != nil {
		parts = append(parts, fmt.Sprintf("(min %s°C / max %s°C)", formatTemp(*f.MinC), formatTemp(*f.MaxC)))
	}
	tail := "no details"
	if len(parts) > 0 {
		tail = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Weather on %s in %s: %s.", f.Date, city, tail)
}

// Summary is the short form shared with every planning agent,
// e.g. "☀️ Clear sky 27°C (19°C - 29°C)".
func (f *Forecast) Summary() string {
	var parts []string
	if f.Emoji != "" {
		parts = append(parts, f.Emoji)
	}
	if f.Text != "" {
		parts = append(parts, f.Text)
	}
	if f.ExpectedC != nil {
		parts = append(parts, fmt.Sprintf("%.0f°C", *f.ExpectedC))
	}
	if f.MinC != nil && f.MaxC != nil {
		parts = append(parts, fmt.Sprintf("(%.0f°C - %.0f°C)", *f.MinC, *f.MaxC))
	}
	if len(parts) == 0 {
		return "Weather forecast unavailable"
	}
	return strings.Join(parts, " ")
}

// locate tries the injected geocoder first, then Open-Meteo's free geocoding
func (c *Client) locate(ctx context.Context, city string) *model.Coordinate {
	if c.geocoder != nil {
		if coord, err := c.geocoder.Geocode(ctx, city); err == nil && coord != nil {
			return coord
		}
	}

	params := url.Values{
		"name":     {city},
		"count":    {"1"},
		"language": {"tr"},
		"format":   {"json"},
	}
	var resp geocodeResponse
	if err := c.get(ctx, c.geocodeURL, params, &resp); err != nil {
		metrics.RecordCall("weather", "geocode", "error")
		log.Warn().Str("city", city).Err(err).Msg("⚠️  Open-Meteo geocoding failed")
		return nil
	}
	if len(resp.Results) == 0 {
		metrics.RecordCall("weather", "geocode", "not_found")
		return nil
	}
	metrics.RecordCall("weather", "geocode", "ok")
	return &model.Coordinate{Lat: resp.Results[0].Latitude, Lng: resp.Results[0].Longitude}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("open-meteo request failed with status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

type geocodeResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Daily struct {
		Time        []string   `json:"time"`
		Max         []*float64 `json:"temperature_2m_max"`
		Min         []*float64 `json:"temperature_2m_min"`
		WeatherCode []*int     `json:"weathercode"`
	} `json:"daily"`
	Hourly struct {
		Time        []string   `json:"time"`
		Temperature []*float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

func (r forecastResponse) toForecast(day string, targetHour int) *Forecast {
	var tmin, tmax *float64
	var code *int
	if len(r.Daily.Time) > 0 && r.Daily.Time[0] == day {
		tmin = firstOf(r.Daily.Min)
		tmax = firstOf(r.Daily.Max)
		code = firstOf(r.Daily.WeatherCode)
	}

	texp := nearestHourValue(day, targetHour, r.Hourly.Time, r.Hourly.Temperature)
	if texp == nil && tmin != nil && tmax != nil {
		mid := (*tmin + *tmax) / 2
		texp = &mid
	}

	if tmin == nil && tmax == nil && texp == nil && code == nil {
		return nil
	}

	cond := describe(code)
	return &Forecast{
		Date:        day,
		MinC:        round1(tmin),
		MaxC:        round1(tmax),
		ExpectedC:   round1(texp),
		WeatherCode: code,
		Text:        cond.Text,
		Emoji:       cond.Emoji,
		Source:      "open-meteo",
	}
}

// nearestHourValue prefers the exact "<day>T<HH>:00" slot, then the
// closest hour on the same day.
func nearestHourValue(day string, hour int, times []string, values []*float64) *float64 {
	target := fmt.Sprintf("%sT%02d:00", day, hour)
	for i, t := range times {
		if t == target && i < len(values) {
			return values[i]
		}
	}

	bestIdx, bestDiff := -1, math.MaxInt
	for i, t := range times {
		if !strings.HasPrefix(t, day) || len(t) < 13 || i >= len(values) || values[i] == nil {
			continue
		}
		hh, err := strconv.Atoi(t[11:13])
		if err != nil {
			continue
		}
		diff := hh - hour
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestIdx, bestDiff = i, diff
		}
	}
	if bestIdx < 0 {
		return nil
	}
	return values[bestIdx]
}

func firstOf[T any](vals []*T) *T {
	if len(vals) == 0 {
		return nil
	}
	return vals[0]
}

func round1(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*10) / 10
	return &r
}

func formatTemp(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func clampHour(h int) int {
	if h < 0 {
		return 0
	}
	if h > 23 {
		return 23
	}
	return h
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return time.Parse(dateLayout, s[:10])
}
