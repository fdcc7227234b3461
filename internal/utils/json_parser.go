package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONRe    = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedAnyRe     = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	controlCharsRe  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// ErrNoJSON is returned when no JSON document can be recovered from model output
var ErrNoJSON = errors.New("no JSON found in model output")

// ExtractAIJSON recovers a valid JSON document from model output that may be:
// - Pure JSON
// - JSON wrapped in markdown code blocks (```json ... ```)
// - JSON with surrounding text
// - JSON with trailing commas, bare keys or single quotes
func ExtractAIJSON(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNoJSON
	}

	candidates := []string{
		input,
		extractFromMarkdown(input),
		extractJSONFromText(input),
		cleanAndFixJSON(input),
	}
	for _, c := range candidates {
		if c != "" && json.Valid([]byte(c)) {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoJSON, truncateString(input, 100))
}

// extractFromMarkdown extracts JSON from markdown code blocks
// Supports: ```json {...} ```, ```{...}```, or ```\n{...}\n```
func extractFromMarkdown(input string) string {
	if matches := fencedJSONRe.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	if matches := fencedAnyRe.FindStringSubmatch(input); len(matches) > 1 {
		content := strings.TrimSpace(matches[1])
		if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
			return content
		}
	}

	return ""
}

// extractJSONFromText finds JSON object or array in surrounding text
func extractJSONFromText(input string) string {
	if start := strings.Index(input, "{"); start >= 0 {
		if extracted := extractBalancedBraces(input[start:], '{', '}'); extracted != "" {
			return extracted
		}
	}

	if start := strings.Index(input, "["); start >= 0 {
		if extracted := extractBalancedBraces(input[start:], '[', ']'); extracted != "" {
			return extracted
		}
	}

	return ""
}

// extractBalancedBraces extracts content with balanced braces, skipping string literals
func extractBalancedBraces(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		if ch == '\\' {
			escape = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

// cleanAndFixJSON attempts to fix common JSON formatting issues
func cleanAndFixJSON(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\ufeff")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = bareKeyRe.ReplaceAllString(s, `$1"$2"$3`)
	s = fixSingleQuotes(s)
	return controlCharsRe.ReplaceAllString(s, "")
}

// fixSingleQuotes converts single quotes that delimit values to double quotes
func fixSingleQuotes(input string) string {
	var result strings.Builder
	inDouble, inSingle, escape := false, false, false
	var prev rune

	for _, ch := range input {
		switch {
		case escape:
			escape = false
		case ch == '\\':
			escape = true
		case ch == '"' && !inSingle:
			inDouble = !inDouble
		case ch == '\'' && !inDouble:
			if inSingle {
				inSingle = false
				ch = '"'
			} else if prev == 0 || strings.ContainsRune(":,[{ ", prev) {
				// apostrophes inside bare words are left alone
				inSingle = true
				ch = '"'
			}
		}
		result.WriteRune(ch)
		prev = ch
	}

	return result.String()
}

// truncateString truncates a string to maxLen bytes
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
