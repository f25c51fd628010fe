package domain

// Locale is the numeric formatting convention governing token interpretation.
type Locale string

const (
	// LocaleBR uses comma as the decimal separator (1.234,56).
	LocaleBR Locale = "br"
	// LocaleUS uses period as the decimal separator (1,234.56).
	LocaleUS Locale = "us"
)

// DecimalComma reports whether the locale's default decimal separator is a comma.
func (l Locale) DecimalComma() bool {
	return l == LocaleBR
}
