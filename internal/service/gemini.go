package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phuslu/log"
	"google.golang.org/genai"

	"partyplanner/internal/config"
	"partyplanner/internal/metrics"
)

// GeminiClient generates text with the Gemini API
type GeminiClient struct {
	client   *genai.Client
	model    string
	timeout  time.Duration
	defaults GenerateOptions
}

// NewGeminiClient creates a Gemini generator. Without an API key the
// client is returned disabled instead of failing.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	g := &GeminiClient{
		model:   cfg.GeminiModel,
		timeout: cfg.Timeout,
		defaults: GenerateOptions{
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			MaxTokens:   cfg.MaxTokens,
		},
	}
	if g.model == "" {
		g.model = "gemini-2.0-flash"
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("⚠️  GEMINI_API_KEY not set, agents will answer with an error notice")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}
	g.client = client
	return g, nil
}

// IsEnabled returns whether an API key was configured
func (g *GeminiClient) IsEnabled() bool {
	return g.client != nil
}

// Generate returns the model's answer for a single-turn prompt
func (g *GeminiClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if !g.IsEnabled() {
		return "", ErrLLMDisabled
	}
	opts = opts.withDefaults(g.defaults)

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(opts.Temperature)),
		TopP:            genai.Ptr(float32(opts.TopP)),
		MaxOutputTokens: int32(opts.MaxTokens),
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
	if err != nil {
		metrics.RecordCall("llm", "generate", "error")
		return "", fmt.Errorf("gemini generate (model: %s): %w", g.model, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		metrics.RecordCall("llm", "generate", "empty")
		return "", ErrEmptyResponse
	}
	metrics.RecordCall("llm", "generate", "ok")
	log.Debug().Str("model", g.model).Dur("duration", time.Since(start)).Int("chars", len(text)).Msg("Gemini generation finished")
	return text, nil
}
