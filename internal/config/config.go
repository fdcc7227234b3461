package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	LLM        LLMConfig
	Places     PlacesConfig
	Weather    WeatherConfig
	Venue      VenueConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds the optional plan-log database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	Enabled            bool
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// LLMConfig selects and configures the text generator used by the agents
type LLMConfig struct {
	Provider string // gemini | openai

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey    string
	OpenAIAPIBase   string
	OpenAIChatModel string
	OpenAIExtraBody string // JSON string merged into extra_body

	Temperature float64
	TopP        float64
	MaxTokens   int
	Timeout     time.Duration
	Enabled     bool
}

// PlacesConfig holds the Google Places settings
type PlacesConfig struct {
	APIKey      string
	BaseURL     string
	Language    string
	CountryHint string // appended to geocode lookups when set, e.g. "Turkey"
	Timeout     time.Duration
	CacheTTL    time.Duration
	RateLimit   float64 // requests per second, 0 disables limiting
	RateBurst   int
}

// WeatherConfig holds the Open-Meteo settings
type WeatherConfig struct {
	ForecastURL string
	GeocodeURL  string
	Timeout     time.Duration
	CacheTTL    time.Duration
	TargetHour  int
}

// VenueConfig holds the search limits of the venue pipeline
type VenueConfig struct {
	MaxVenues         int
	ResolveMaxResults int
	ResolveRadiusM    int
	FallbackPerQuery  int
	FallbackSeedLimit int
	OutdoorRadiusM    int
	IndoorRadiusM     int
	ModelMaxTokens    int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// ErrMissingPlacesKey is returned by Validate when strict mode needs a Places key
var ErrMissingPlacesKey = errors.New("GOOGLE_MAPS_API_KEY or GOOGLE_API_KEY is required")

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	googleKey := getEnv("GOOGLE_API_KEY", "")

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", ""),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "party_planner"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		LLM: LLMConfig{
			Provider:        strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", googleKey),
			GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIAPIBase:   getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			OpenAIChatModel: getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			OpenAIExtraBody: getEnv("OPENAI_CHAT_EXTRA_BODY", ""),
			Temperature:     getEnvAsFloat("LLM_TEMPERATURE", 0.5),
			TopP:            getEnvAsFloat("LLM_TOP_P", 0.95),
			MaxTokens:       getEnvAsInt("LLM_MAX_TOKENS", 2560),
			Timeout:         getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Places: PlacesConfig{
			APIKey:      getEnv("GOOGLE_MAPS_API_KEY", googleKey),
			BaseURL:     getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api"),
			Language:    getEnv("PLACES_LANGUAGE", "tr"),
			CountryHint: getEnv("PLACES_COUNTRY_HINT", ""),
			Timeout:     getEnvAsDuration("PLACES_TIMEOUT", 15*time.Second),
			CacheTTL:    getEnvAsDuration("PLACES_CACHE_TTL", 24*time.Hour),
			RateLimit:   getEnvAsFloat("PLACES_RATE_LIMIT", 10),
			RateBurst:   getEnvAsInt("PLACES_RATE_BURST", 5),
		},
		Weather: WeatherConfig{
			ForecastURL: getEnv("WEATHER_FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
			GeocodeURL:  getEnv("WEATHER_GEOCODE_URL", "https://geocoding-api.open-meteo.com/v1/search"),
			Timeout:     getEnvAsDuration("WEATHER_TIMEOUT", 15*time.Second),
			CacheTTL:    getEnvAsDuration("WEATHER_CACHE_TTL", 2*time.Hour),
			TargetHour:  getEnvAsInt("WEATHER_TARGET_HOUR", 18),
		},
		Venue: DefaultVenueConfig(),
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	cfg.Venue.MaxVenues = getEnvAsInt("VENUE_MAX_RESULTS", cfg.Venue.MaxVenues)
	cfg.Venue.ModelMaxTokens = getEnvAsInt("VENUE_MODEL_MAX_TOKENS", cfg.Venue.ModelMaxTokens)

	cfg.PostgreSQL.Enabled = cfg.PostgreSQL.DSN != "" || cfg.PostgreSQL.Host != ""

	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.Enabled = cfg.LLM.OpenAIAPIKey != ""
	default:
		cfg.LLM.Enabled = cfg.LLM.GeminiAPIKey != ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MaxVenuesPerRequest is the most venues a single request may return
const MaxVenuesPerRequest = 3

// DefaultVenueConfig returns the search limits used by the venue pipeline
func DefaultVenueConfig() VenueConfig {
	return VenueConfig{
		MaxVenues:         MaxVenuesPerRequest,
		ResolveMaxResults: 8,
		ResolveRadiusM:    20000,
		FallbackPerQuery:  4,
		FallbackSeedLimit: 12,
		OutdoorRadiusM:    20000,
		IndoorRadiusM:     15000,
		ModelMaxTokens:    900,
	}
}

// Validate checks the loaded values. A missing Places key is not an error:
// venue lookups then degrade to "no venues found".
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q: must be gemini or openai", c.LLM.Provider)
	}
	if c.Venue.MaxVenues <= 0 || c.Venue.MaxVenues > MaxVenuesPerRequest {
		return fmt.Errorf("VENUE_MAX_RESULTS must be within 1..%d, got %d", MaxVenuesPerRequest, c.Venue.MaxVenues)
	}
	if c.Weather.TargetHour < 0 || c.Weather.TargetHour > 23 {
		return fmt.Errorf("WEATHER_TARGET_HOUR must be within 0..23, got %d", c.Weather.TargetHour)
	}
	if c.Places.Timeout <= 0 || c.Weather.Timeout <= 0 {
		return errors.New("outbound timeouts must be positive")
	}
	return nil
}

// RequirePlaces fails fast when the Places key is absent, used by the CLI
func (c *Config) RequirePlaces() error {
	if c.Places.APIKey == "" {
		return ErrMissingPlacesKey
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("Invalid integer value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Warn().Str("key", key).Float64("default", defaultValue).Msg("Invalid float value, using default")
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("15s") or plain seconds ("15")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Dur("default", defaultValue).Msg("Invalid duration value, using default")
		return defaultValue
	}
	return value
}
