package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/phuslu/log"

	"partyplanner/internal/config"
	"partyplanner/internal/metrics"
)

// OpenAIClient handles OpenAI-compatible chat completion APIs
type OpenAIClient struct {
	cfg         config.LLMConfig
	httpClient  *http.Client
	chunkParser StreamChunkParser
	extraBody   map[string]any
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg config.LLMConfig) *OpenAIClient {
	c := &OpenAIClient{
		cfg:         cfg,
		chunkParser: chatChunkParser{},
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}

	if cfg.OpenAIExtraBody != "" {
		var extra map[string]any
		if err := json.Unmarshal([]byte(cfg.OpenAIExtraBody), &extra); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to parse OPENAI_CHAT_EXTRA_BODY, ignoring it")
		} else {
			c.extraBody = extra
		}
	}
	return c
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.cfg.OpenAIAPIKey != ""
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model       string         `json:"model"`
	Messages    []ChatMessage  `json:"messages"`
	Temperature float64        `json:"temperature,omitempty"`
	TopP        float64        `json:"top_p,omitempty"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
	Stream      bool           `json:"stream,omitempty"`
	ExtraBody   map[string]any `json:"extra_body,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// StreamCallback is called for each chunk in streaming mode
type StreamCallback func(chunk *StreamChunk) error

// Generate sends prompt as a single user message and returns the answer text
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	resp, err := c.ChatCompletion(ctx, c.newRequest(prompt, opts))
	if err != nil {
		metrics.RecordCall("llm", "generate", "error")
		return "", err
	}
	if len(resp.Choices) == 0 {
		metrics.RecordCall("llm", "generate", "empty")
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		metrics.RecordCall("llm", "generate", "empty")
		return "", ErrEmptyResponse
	}
	metrics.RecordCall("llm", "generate", "ok")
	log.Debug().Str("model", resp.Model).Int("tokens", resp.Usage.TotalTokens).Msg("Chat completion finished")
	return text, nil
}

// GenerateStream streams the answer, calling onDelta for each content fragment
func (c *OpenAIClient) GenerateStream(ctx context.Context, prompt string, opts GenerateOptions, onDelta func(delta string) error) (string, error) {
	var full strings.Builder
	err := c.ChatCompletionStream(ctx, c.newRequest(prompt, opts), func(chunk *StreamChunk) error {
		if chunk.Content == "" {
			return nil
		}
		full.WriteString(chunk.Content)
		if onDelta != nil {
			return onDelta(chunk.Content)
		}
		return nil
	})
	if err != nil {
		metrics.RecordCall("llm", "generate_stream", "error")
		return "", fmt.Errorf("streaming error: %w", err)
	}

	text := strings.TrimSpace(full.String())
	if text == "" {
		metrics.RecordCall("llm", "generate_stream", "empty")
		return "", ErrEmptyResponse
	}
	metrics.RecordCall("llm", "generate_stream", "ok")
	return text, nil
}

func (c *OpenAIClient) newRequest(prompt string, opts GenerateOptions) ChatCompletionRequest {
	return ChatCompletionRequest{
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		MaxTokens:   opts.MaxTokens,
	}
}

// applyDefaults fills the model and sampling parameters from config
func (c *OpenAIClient) applyDefaults(req *ChatCompletionRequest) {
	if req.Model == "" {
		req.Model = c.cfg.OpenAIChatModel
	}
	if req.Temperature == 0 && c.cfg.Temperature > 0 {
		req.Temperature = c.cfg.Temperature
	}
	if req.TopP == 0 && c.cfg.TopP > 0 {
		req.TopP = c.cfg.TopP
	}
	if req.MaxTokens == 0 && c.cfg.MaxTokens > 0 {
		req.MaxTokens = c.cfg.MaxTokens
	}
	if req.ExtraBody == nil && c.extraBody != nil {
		req.ExtraBody = c.extraBody
	}
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.IsEnabled() {
		return nil, ErrLLMDisabled
	}
	c.applyDefaults(&req)

	resp, err := c.post(ctx, req, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// ChatCompletionStream performs a streaming chat completion request
func (c *OpenAIClient) ChatCompletionStream(ctx context.Context, req ChatCompletionRequest, callback StreamCallback) error {
	if !c.IsEnabled() {
		return ErrLLMDisabled
	}
	c.applyDefaults(&req)
	req.Stream = true

	resp, err := c.post(ctx, req, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read stream: %w", err)
		}

		trimmed := bytes.TrimSpace(line)
		if bytes.HasPrefix(trimmed, []byte("data: ")) {
			data := bytes.TrimPrefix(trimmed, []byte("data: "))
			if bytes.Equal(data, []byte("[DONE]")) {
				return nil
			}

			chunk, perr := c.chunkParser.ParseChunk(data)
			if perr != nil {
				log.Warn().Err(perr).Msg("⚠️  Failed to parse stream chunk")
			} else if cbErr := callback(chunk); cbErr != nil {
				return fmt.Errorf("callback error: %w", cbErr)
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

func (c *OpenAIClient) post(ctx context.Context, req ChatCompletionRequest, stream bool) (*http.Response, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(c.cfg.OpenAIAPIBase, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.OpenAIAPIKey)
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}
