package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVenueNames(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty input",
			input:    "   ",
			expected: []string{},
		},
		{
			name: "one name per line",
			input: "**Köşkün Altı**: home cooking for families.\n" +
				"**Trilye**: seafood with a garden.\n" +
				"**Big Chefs**: large groups welcome.",
			expected: []string{"Köşkün Altı", "Trilye", "Big Chefs"},
		},
		{
			name:     "capped at three in order of appearance",
			input:    "**Alpha Cafe** - a\n**Beta Cafe** - b\n**Gamma Cafe** - c\n**Delta Cafe** - d",
			expected: []string{"Alpha Cafe", "Beta Cafe", "Gamma Cafe"},
		},
		{
			name:     "case-insensitive duplicates dropped",
			input:    "* **Park Cafe**: nice\n- **PARK CAFE**: again\n**Moda Sahil**: sea view",
			expected: []string{"Park Cafe", "Moda Sahil"},
		},
		{
			name:     "parenthetical qualifier stripped",
			input:    "**Kuğulu Park (Çankaya)**: shaded lawns",
			expected: []string{"Kuğulu Park"},
		},
		{
			name:     "short names rejected",
			input:    "**AB**: too short\n**Lokanta 1741**: fine",
			expected: []string{"Lokanta 1741"},
		},
		{
			name:     "prose without bold spans",
			input:    "I would suggest a park near the sea.",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractVenueNames(tt.input))
		})
	}
}
