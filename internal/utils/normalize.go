package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// turkishLetters maps the Turkish-specific letters to their ASCII base.
// Dotted/dotless i must be handled before case folding, which would
// otherwise turn İ into "i̇".
var turkishLetters = strings.NewReplacer(
	"ı", "i", "İ", "i",
	"ş", "s", "Ş", "s",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

// NormalizeText case-folds s and strips diacritics. It is idempotent.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = turkishLetters.Replace(s)
	s = cases.Fold().String(s)

	// Casers and transformers keep state, so build them per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// InCity reports whether the normalized city appears in the normalized
// address or the other way around. Empty inputs never match.
func InCity(address, city string) bool {
	a := strings.TrimSpace(NormalizeText(address))
	c := strings.TrimSpace(NormalizeText(city))
	if a == "" || c == "" {
		return false
	}
	return strings.Contains(a, c) || strings.Contains(c, a)
}
