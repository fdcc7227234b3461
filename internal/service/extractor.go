package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxCandidateNames = 3

var (
	boldSpanRe    = regexp.MustCompile(`\*\*([^*]+?)\*\*\s*[:\-]?`)
	parentheticRe = regexp.MustCompile(`\s*\([^)]*\)\s*`)
)

// ExtractVenueNames pulls up to three distinct venue names out of model
// output written as "**Name**: reason" lines. Order of first appearance
// wins and duplicates are dropped case-insensitively.
func ExtractVenueNames(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	var found []string
	for _, m := range boldSpanRe.FindAllStringSubmatch(text, -1) {
		if name := cleanVenueName(m[1]); name != "" {
			found = append(found, name)
		}
	}

	// bullet lines, in case the model nests the bold name after a marker
	for _, line := range strings.Split(text, "\n") {
		s := strings.TrimSpace(line)
		if !strings.HasPrefix(s, "*") && !strings.HasPrefix(s, "-") {
			continue
		}
		if m := boldSpanRe.FindStringSubmatch(s); m != nil {
			if name := cleanVenueName(m[1]); name != "" {
				found = append(found, name)
			}
		}
	}

	seen := make(map[string]struct{}, len(found))
	names := make([]string, 0, maxCandidateNames)
	for _, n := range found {
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, n)
		if len(names) == maxCandidateNames {
			break
		}
	}
	return names
}

// cleanVenueName strips parenthetical qualifiers and rejects names of two
// characters or less
func cleanVenueName(raw string) string {
	name := strings.Join(strings.Fields(parentheticRe.ReplaceAllString(raw, " ")), " ")
	if utf8.RuneCountInString(name) <= 2 {
		return ""
	}
	return name
}
