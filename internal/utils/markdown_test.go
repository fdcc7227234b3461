package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONToMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "object keeps key order",
			input: `{"Summary": "Small party", "Costs": {"Venue": 1200, "Cake": "800"}, "Tips": ["DIY", "bulk"]}`,
			want:  "- **Summary:** Small party\n**Costs**\n- **Venue:** 1200\n- **Cake:** 800\n- **Tips:** DIY, bulk",
		},
		{
			name:  "menu wrapper unwrapped",
			input: `{"menu": {"Drinks": ["ayran", "lemonade"], "Cake": "chocolate"}}`,
			want:  "- **Drinks:** ayran, lemonade\n- **Cake:** chocolate",
		},
		{
			name:  "array of objects",
			input: `[{"name": "Treasure hunt", "minutes": 30}, "Face painting"]`,
			want:  "- name: Treasure hunt; minutes: 30\n- Face painting",
		},
		{
			name:  "fenced json",
			input: "```json\n{\"Invite\": \"2 weeks ahead\"}\n```",
			want:  "- **Invite:** 2 weeks ahead",
		},
		{
			name:  "plain text unchanged",
			input: "Book the hall early.",
			want:  "Book the hall early.",
		},
		{
			name:  "broken json unchanged",
			input: "{not really",
			want:  "{not really",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JSONToMarkdown(tt.input))
		})
	}
}

func TestEnforceLimits(t *testing.T) {
	md := "Intro line\n- a\n- b\n- c\nOutro"

	got := EnforceLimits(md, 2, 0)

	assert.Equal(t, "Intro line\nOutro\n\n- a\n- b", got)
}

func TestEnforceLimits_ShortensProse(t *testing.T) {
	prose := strings.Repeat("Balloons are fun. ", 20)

	got := EnforceLimits(prose, 10, 150)

	assert.LessOrEqual(t, len([]rune(got)), 151)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.True(t, strings.HasSuffix(strings.TrimSuffix(got, "…"), "."))
}
