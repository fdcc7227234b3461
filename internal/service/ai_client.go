package service

import (
	"context"
	"errors"
	"strings"

	"github.com/phuslu/log"

	"partyplanner/internal/config"
)

var (
	// ErrLLMDisabled means no model credentials are configured
	ErrLLMDisabled = errors.New("language model is not configured")
	// ErrEmptyResponse means the model answered with no text
	ErrEmptyResponse = errors.New("language model returned an empty response")
)

// GenerateOptions tunes one generation call. Zero values fall back to the
// client's configured defaults.
type GenerateOptions struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

func (o GenerateOptions) withDefaults(d GenerateOptions) GenerateOptions {
	if o.Temperature == 0 {
		o.Temperature = d.Temperature
	}
	if o.TopP == 0 {
		o.TopP = d.TopP
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = d.MaxTokens
	}
	return o
}

// TextGenerator is the language model collaborator shared by every agent
type TextGenerator interface {
	// Generate returns the model's free-text answer to prompt
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// IsEnabled returns whether the generator is configured and ready
	IsEnabled() bool
}

// StreamingGenerator is a TextGenerator that can also emit partial text
type StreamingGenerator interface {
	TextGenerator

	// GenerateStream calls onDelta for every content fragment and returns the full text
	GenerateStream(ctx context.Context, prompt string, opts GenerateOptions, onDelta func(delta string) error) (string, error)
}

// StreamChunk is one parsed fragment of a streamed answer
type StreamChunk struct {
	Content string
}

// NewTextGenerator builds the generator selected by cfg.Provider
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) (TextGenerator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		log.Info().Str("model", cfg.OpenAIChatModel).Str("base", cfg.OpenAIAPIBase).Msg("🔧 Using OpenAI-compatible chat completions")
		return NewOpenAIClient(cfg), nil
	default:
		log.Info().Str("model", cfg.GeminiModel).Msg("🔧 Using Gemini")
		return NewGeminiClient(ctx, cfg)
	}
}

// Ensure both providers implement the generator contracts
var (
	_ StreamingGenerator = (*OpenAIClient)(nil)
	_ TextGenerator      = (*GeminiClient)(nil)
)
