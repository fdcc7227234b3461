package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("PLACES_TIMEOUT", "")
	t.Setenv("WEATHER_TARGET_HOUR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, "tr", cfg.Places.Language)
	assert.Equal(t, 15*time.Second, cfg.Places.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Places.CacheTTL)
	assert.Equal(t, 2*time.Hour, cfg.Weather.CacheTTL)
	assert.Equal(t, 18, cfg.Weather.TargetHour)
	assert.Equal(t, 3, cfg.Venue.MaxVenues)
	assert.Equal(t, 900, cfg.Venue.ModelMaxTokens)
}

func TestLoad_GoogleKeyFallback(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "shared-key")
	t.Setenv("LLM_PROVIDER", "gemini")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shared-key", cfg.Places.APIKey)
	assert.Equal(t, "shared-key", cfg.LLM.GeminiAPIKey)
	assert.True(t, cfg.LLM.Enabled)
	assert.NoError(t, cfg.RequirePlaces())
}

func TestLoad_InvalidProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_VenueMaxResults(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "", want: 3},
		{value: "2", want: 2},
		{value: "3", want: 3},
		{value: "6", wantErr: true},
		{value: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("VENUE_MAX_RESULTS="+tt.value, func(t *testing.T) {
			t.Setenv("LLM_PROVIDER", "")
			t.Setenv("PLACES_TIMEOUT", "")
			t.Setenv("WEATHER_TARGET_HOUR", "")
			t.Setenv("VENUE_MAX_RESULTS", tt.value)

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Venue.MaxVenues)
		})
	}
}

func TestRequirePlaces_Missing(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.RequirePlaces(), ErrMissingPlacesKey)
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "plain seconds", value: "30", want: 30 * time.Second},
		{name: "go duration", value: "2h", want: 2 * time.Hour},
		{name: "invalid uses default", value: "soon", want: time.Minute},
		{name: "empty uses default", value: "", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION", time.Minute))
		})
	}
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "party", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=party sslmode=disable", cfg.GetPostgreSQLDSN())

	cfg.PostgreSQL.DSN = "postgres://u:p@db:5432/party?sslmode=require"
	assert.Equal(t, "postgres://u:p@db:5432/party?sslmode=require", cfg.GetPostgreSQLDSN())
}
