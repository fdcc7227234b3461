package utils

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractAIJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "Pure JSON",
			input: `{"venue": "Park", "guests": 30}`,
			want: map[string]interface{}{
				"venue":  "Park",
				"guests": float64(30),
			},
		},
		{
			name: "JSON in markdown code block",
			input: "```json\n" +
				`{"cake": "chocolate", "portions": 25}` + "\n```",
			want: map[string]interface{}{
				"cake":     "chocolate",
				"portions": float64(25),
			},
		},
		{
			name:  "JSON with surrounding text",
			input: `Here is the budget: {"total": 3000, "currency": "TRY"} as requested.`,
			want: map[string]interface{}{
				"total":    float64(3000),
				"currency": "TRY",
			},
		},
		{
			name:  "JSON with leading byte order mark",
			input: "\ufeff{\"theme\": \"pirates\", \"age\": 9,}",
			want: map[string]interface{}{
				"theme": "pirates",
				"age":   float64(9),
			},
		},
		{
			name:  "JSON with trailing comma",
			input: `{"theme": "space", "age": 7,}`,
			want: map[string]interface{}{
				"theme": "space",
				"age":   float64(7),
			},
		},
		{
			name:  "JSON with unquoted keys",
			input: `{theme: "pirates", age: 9}`,
			want: map[string]interface{}{
				"theme": "pirates",
				"age":   float64(9),
			},
		},
		{
			name:  "JSON with single quotes",
			input: `{'drink': 'ayran'}`,
			want: map[string]interface{}{
				"drink": "ayran",
			},
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Invalid JSON",
			input:   "not json at all",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ExtractAIJSON(tt.input)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractAIJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrNoJSON) {
					t.Errorf("ExtractAIJSON() error = %v, want ErrNoJSON", err)
				}
				return
			}

			var got map[string]interface{}
			if err := json.Unmarshal([]byte(raw), &got); err != nil {
				t.Fatalf("ExtractAIJSON() returned invalid JSON %q: %v", raw, err)
			}
			if len(got) != len(tt.want) {
				t.Errorf("ExtractAIJSON() got = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("ExtractAIJSON()[%s] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestExtractFromMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "JSON code block with json tag",
			input: "```json\n{\"test\": true}\n```",
			want:  `{"test": true}`,
		},
		{
			name:  "JSON code block without tag",
			input: "```\n{\"test\": true}\n```",
			want:  `{"test": true}`,
		},
		{
			name:  "Code block that is not JSON",
			input: "```\nhello\n```",
			want:  "",
		},
		{
			name:  "No code block",
			input: `{"test": true}`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractFromMarkdown(tt.input)
			if got != tt.want {
				t.Errorf("extractFromMarkdown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractBalancedBraces(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  rune
		close rune
		want  string
	}{
		{
			name:  "Simple object",
			input: `{"a": 1}`,
			open:  '{',
			close: '}',
			want:  `{"a": 1}`,
		},
		{
			name:  "Nested objects",
			input: `{"a": {"b": 2}} trailing`,
			open:  '{',
			close: '}',
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "Object with string containing braces",
			input: `{"text": "Hello {world}"}`,
			open:  '{',
			close: '}',
			want:  `{"text": "Hello {world}"}`,
		},
		{
			name:  "Array",
			input: `[1, 2, 3]`,
			open:  '[',
			close: ']',
			want:  `[1, 2, 3]`,
		},
		{
			name:  "Unbalanced",
			input: `{"a": 1`,
			open:  '{',
			close: '}',
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractBalancedBraces(tt.input, tt.open, tt.close)
			if got != tt.want {
				t.Errorf("extractBalancedBraces() = %v, want %v", got, tt.want)
			}
		})
	}
}
