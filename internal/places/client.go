package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/phuslu/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"partyplanner/internal/config"
	"partyplanner/internal/metrics"
	"partyplanner/internal/model"
)

var (
	// ErrDisabled means no API key is configured
	ErrDisabled = errors.New("places lookup disabled: no API key configured")
	// ErrNotFound means the provider answered but knows no such place
	ErrNotFound = errors.New("place not found")
	// ErrUnavailable wraps transport, status and decoding failures
	ErrUnavailable = errors.New("places provider unavailable")
)

// Client is a Google Places (legacy web service) client. Results are
// memoized per argument tuple for the configured TTL; transport failures
// are never cached.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	country    string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Cache
	group      singleflight.Group
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Places client from configuration
func NewClient(cfg config.PlacesConfig, opts ...ClientOption) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		country:    cfg.CountryHint,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache.New(ttl, time.Hour),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Enabled returns whether an API key is configured
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Geocode resolves a free-text city to its center coordinate
func (c *Client) Geocode(ctx context.Context, city string) (*model.Coordinate, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrNotFound
	}
	address := city
	if c.country != "" && !strings.Contains(strings.ToLower(city), strings.ToLower(c.country)) {
		address = city + ", " + c.country
	}

	return memoize(ctx, c, "geocode", "geocode|"+address, func(ctx context.Context) (*model.Coordinate, error) {
		var resp geocodeResponse
		if err := c.get(ctx, "geocode/json", url.Values{"address": {address}}, &resp); err != nil {
			return nil, err
		}
		if err := statusError(resp.Status); err != nil {
			return nil, err
		}
		if len(resp.Results) == 0 {
			return nil, ErrNotFound
		}
		loc := resp.Results[0].Geometry.Location
		return &loc, nil
	})
}

// FindPlaceID returns the best matching place id for a free-text query
func (c *Client) FindPlaceID(ctx context.Context, text string, bias *model.Coordinate, radiusM int) (string, error) {
	params := url.Values{
		"input":     {text},
		"inputtype": {"textquery"},
		"fields":    {"place_id"},
	}
	if bias != nil {
		radius := radiusM
		if radius < 1000 {
			radius = 1000
		}
		params.Set("locationbias", fmt.Sprintf("circle:%d@%s", radius, latLng(bias)))
	}

	key := fmt.Sprintf("find|%s|%s|%d", text, biasKey(bias), radiusM)
	return memoize(ctx, c, "find_place", key, func(ctx context.Context) (string, error) {
		var resp findPlaceResponse
		if err := c.get(ctx, "place/findplacefromtext/json", params, &resp); err != nil {
			return "", err
		}
		if err := statusError(resp.Status); err != nil {
			return "", err
		}
		for _, cand := range resp.Candidates {
			if cand.PlaceID != "" {
				return cand.PlaceID, nil
			}
		}
		return "", ErrNotFound
	})
}

// TextSearch returns up to q.MaxResults seeds for a keyword query.
// An empty result is not an error.
func (c *Client) TextSearch(ctx context.Context, q model.SearchQuery) ([]model.Seed, error) {
	params := url.Values{"query": {q.Text}}
	if q.Bias != nil {
		params.Set("location", latLng(q.Bias))
		params.Set("radius", fmt.Sprintf("%d", q.RadiusM))
	}

	key := fmt.Sprintf("search|%s|%s|%d|%d", q.Text, biasKey(q.Bias), q.RadiusM, q.MaxResults)
	return memoize(ctx, c, "text_search", key, func(ctx context.Context) ([]model.Seed, error) {
		var resp textSearchResponse
		if err := c.get(ctx, "place/textsearch/json", params, &resp); err != nil {
			return nil, err
		}
		if err := statusError(resp.Status); err != nil {
			if errors.Is(err, ErrNotFound) {
				return []model.Seed{}, nil
			}
			return nil, err
		}

		results := resp.Results
		if q.MaxResults > 0 && len(results) > q.MaxResults {
			results = results[:q.MaxResults]
		}
		seeds := make([]model.Seed, 0, len(results))
		for _, r := range results {
			if r.PlaceID == "" || r.Name == "" {
				continue
			}
			seeds = append(seeds, model.Seed{PlaceID: r.PlaceID, Name: r.Name})
		}
		return seeds, nil
	})
}

// Details resolves a place id to a full, not yet verified, record
func (c *Client) Details(ctx context.Context, placeID string) (*model.PlaceRecord, error) {
	if placeID == "" {
		return nil, ErrNotFound
	}
	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailsFields},
	}

	return memoize(ctx, c, "details", "details|"+placeID, func(ctx context.Context) (*model.PlaceRecord, error) {
		var resp detailsResponse
		if err := c.get(ctx, "place/details/json", params, &resp); err != nil {
			return nil, err
		}
		if err := statusError(resp.Status); err != nil {
			return nil, err
		}
		return resp.Result.toRecord(placeID), nil
	})
}

// get performs a GET request to the API.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", ErrUnavailable, err)
		}
	}

	params.Set("key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// the raw error may carry the key in the URL, keep it out of the chain
		return fmt.Errorf("%w: %s: transport failure", ErrUnavailable, path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned HTTP %d", ErrUnavailable, path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, path, err)
	}

	return nil
}

type cached[T any] struct {
	value T
	err   error
}

// memoize serves op from the cache or runs fetch once per key, collapsing
// concurrent identical calls. Only definitive answers are stored.
func memoize[T any](ctx context.Context, c *Client, op, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if !c.Enabled() {
		metrics.RecordCall("places", op, "disabled")
		return zero, ErrDisabled
	}

	if v, ok := c.cache.Get(key); ok {
		metrics.RecordCache("places", true)
		entry := v.(cached[T])
		return entry.value, entry.err
	}
	metrics.RecordCache("places", false)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		val, err := fetch(ctx)
		switch {
		case err == nil:
			metrics.RecordCall("places", op, "ok")
		case errors.Is(err, ErrNotFound):
			metrics.RecordCall("places", op, "not_found")
		default:
			metrics.RecordCall("places", op, "error")
			log.Warn().Str("op", op).Err(err).Msg("⚠️  Places lookup failed")
			return val, err
		}
		c.cache.Set(key, cached[T]{value: val, err: err}, cache.DefaultExpiration)
		return val, err
	})
	if v == nil {
		return zero, err
	}
	return v.(T), err
}

func statusError(status string) error {
	switch status {
	case statusOK:
		return nil
	case statusZeroResults, statusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: provider status %s", ErrUnavailable, status)
	}
}

func latLng(c *model.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

func biasKey(c *model.Coordinate) string {
	if c == nil {
		return "-"
	}
	return latLng(c)
}
