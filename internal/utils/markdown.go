package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// jsonField keeps object keys in document order, which map decoding loses
type jsonField struct {
	Key   string
	Value any
}

type jsonObject []jsonField

var bulletPrefixes = []string{"- ", "* ", "• ", "1. ", "2. ", "3. "}

// JSONToMarkdown renders model output that looks like JSON as markdown
// bullets. Anything else is returned unchanged.
func JSONToMarkdown(s string) string {
	trimmed := strings.TrimSpace(s)

	var candidate string
	switch {
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		candidate = trimmed
	case strings.HasPrefix(trimmed, "```"):
		candidate = extractFromMarkdown(trimmed)
	}
	if candidate == "" {
		return s
	}

	raw, err := ExtractAIJSON(candidate)
	if err != nil {
		return s
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	doc, err := decodeOrdered(dec)
	if err != nil {
		return s
	}

	switch v := doc.(type) {
	case jsonObject:
		return objectToMarkdown(v)
	case []any:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			lines = append(lines, "- "+inlineText(item))
		}
		return strings.Join(lines, "\n")
	}
	return s
}

func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		var obj jsonObject
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			val, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, jsonField{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

func objectToMarkdown(obj jsonObject) string {
	// menu agents like to wrap everything in a single "menu" key
	if len(obj) == 1 && obj[0].Key == "menu" {
		if inner, ok := obj[0].Value.(jsonObject); ok {
			obj = inner
		}
	}

	var lines []string
	for _, f := range obj {
		if sub, ok := f.Value.(jsonObject); ok {
			lines = append(lines, "**"+f.Key+"**")
			for _, sf := range sub {
				lines = append(lines, fmt.Sprintf("- **%s:** %s", sf.Key, inlineText(sf.Value)))
			}
			continue
		}
		lines = append(lines, fmt.Sprintf("- **%s:** %s", f.Key, inlineText(f.Value)))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func inlineText(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return strings.TrimSpace(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, inlineText(item))
		}
		return strings.Join(parts, ", ")
	case jsonObject:
		parts := make([]string, 0, len(t))
		for _, f := range t {
			parts = append(parts, f.Key+": "+inlineText(f.Value))
		}
		return strings.Join(parts, "; ")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// EnforceLimits keeps the first maxBullets bullet lines of md, moves the
// remaining prose above them and, when maxChars > 0, shortens the result
// at a sentence or line break.
func EnforceLimits(md string, maxBullets, maxChars int) string {
	var bullets, rest []string
	for _, ln := range strings.Split(md, "\n") {
		if isBullet(ln) {
			if len(bullets) < maxBullets {
				bullets = append(bullets, ln)
			}
			continue
		}
		rest = append(rest, ln)
	}

	plain := strings.TrimSpace(strings.Join(rest, "\n"))
	if maxChars > 0 {
		plain = shorten(plain, maxChars)
	}

	var parts []string
	if plain != "" {
		parts = append(parts, plain)
	}
	if len(bullets) > 0 {
		parts = append(parts, strings.Join(bullets, "\n"))
	}
	text := strings.TrimSpace(strings.Join(parts, "\n\n"))

	if maxChars > 0 {
		text = shorten(text, maxChars)
	}
	return text
}

func isBullet(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// shorten cuts s to limit characters, preferring a break past the first 100 bytes
func shorten(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	cut := string(r[:limit])
	lastBreak := -1
	for _, sep := range []string{"\n", ". ", "! ", "? "} {
		if i := strings.LastIndex(cut, sep); i > lastBreak {
			lastBreak = i
		}
	}
	if lastBreak > 100 {
		return strings.TrimRight(cut[:lastBreak+1], " \t\n") + "…"
	}
	return strings.TrimRight(cut, " \t\n") + "…"
}
