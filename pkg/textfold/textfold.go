// Package textfold normalizes text for signature and label matching:
// lowercase plus diacritic removal, so "Liquidação" matches "liquidacao".
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns s lowercased with combining diacritic marks removed.
func Fold(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Contains reports whether the folded form of s contains the folded form of substr.
func Contains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}
