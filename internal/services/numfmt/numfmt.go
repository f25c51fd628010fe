// Package numfmt converts numeric tokens written in either Brazilian
// (1.234,56) or US (1,234.56) convention into canonical decimal values.
package numfmt

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grahamfi/noteparse/internal/domain"
)

var tokenPattern = regexp.MustCompile(`-?[\d.,]+`)

// Parse interprets token as a decimal value. When both separators are
// present, whichever occurs later in the string is the decimal separator.
// With a single separator kind the locale default decides: BR reads commas
// as decimal and periods as thousands, US the opposite. Returns false when
// the token cannot be read as a number; it never panics.
func Parse(token string, loc domain.Locale) (decimal.Decimal, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return decimal.Decimal{}, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	hasDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '.' || r == ',':
		default:
			return decimal.Decimal{}, false
		}
	}
	if !hasDigit {
		return decimal.Decimal{}, false
	}

	s = canonicalize(s, loc)
	s = strings.TrimSuffix(s, ".")

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negative {
		value = value.Neg()
	}
	return value, true
}

// canonicalize rewrites s into period-decimal form with no thousands separators.
func canonicalize(s string, loc domain.Locale) string {
	lastComma := strings.LastIndex(s, ",")
	lastPeriod := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastPeriod >= 0:
		if lastComma > lastPeriod {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if loc.DecimalComma() {
			// last comma is the decimal point, any earlier ones are noise
			s = strings.ReplaceAll(s[:lastComma], ",", "") + "." + s[lastComma+1:]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastPeriod >= 0:
		if loc.DecimalComma() {
			s = strings.ReplaceAll(s, ".", "")
		} else {
			s = strings.ReplaceAll(s[:lastPeriod], ".", "") + "." + s[lastPeriod+1:]
		}
	}
	return s
}

// ParseAuto interprets token without a locale hint: whichever separator
// occurs last in the string is the decimal separator, even when only one
// kind is present. Used by the generic family where the document locale is
// unknown.
func ParseAuto(token string) (decimal.Decimal, bool) {
	lastComma := strings.LastIndex(token, ",")
	lastPeriod := strings.LastIndex(token, ".")
	if lastComma > lastPeriod {
		return Parse(token, domain.LocaleBR)
	}
	return Parse(token, domain.LocaleUS)
}

// ScanAll returns every parseable numeric token found in s, in order of
// appearance. Unparseable tokens are skipped silently.
func ScanAll(s string, loc domain.Locale) []decimal.Decimal {
	var values []decimal.Decimal
	for _, token := range tokenPattern.FindAllString(s, -1) {
		if v, ok := Parse(token, loc); ok {
			values = append(values, v)
		}
	}
	return values
}

// ScanAllAuto is ScanAll under the locale-free rule of ParseAuto.
func ScanAllAuto(s string) []decimal.Decimal {
	var values []decimal.Decimal
	for _, token := range tokenPattern.FindAllString(s, -1) {
		if v, ok := ParseAuto(token); ok {
			values = append(values, v)
		}
	}
	return values
}
