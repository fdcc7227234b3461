package service

import (
	"encoding/json"
)

// StreamChunkParser is the interface for provider-specific chunk parsing
type StreamChunkParser interface {
	ParseChunk(data []byte) (*StreamChunk, error)
}

// chatChunkParser parses OpenAI-format streaming chunks. Reasoning tokens
// some providers send in reasoning_content are not part of the answer and
// are ignored.
type chatChunkParser struct{}

func (chatChunkParser) ParseChunk(data []byte) (*StreamChunk, error) {
	var raw struct {
		Choices []struct {
			Delta struct {
				Content string `json:"content,omitempty"`
			} `json:"delta"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	chunk := &StreamChunk{}
	if len(raw.Choices) > 0 {
		chunk.Content = raw.Choices[0].Delta.Content
	}
	return chunk, nil
}
