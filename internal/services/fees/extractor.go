// Package fees scans document text for labeled fee lines and sums them into
// a breakdown. The total is always recomputed from the named categories,
// never trusted from a "total" label in the source.
package fees

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/numfmt"
	"github.com/grahamfi/noteparse/pkg/textfold"
)

// category couples one fee field with its textual label variants. The first
// variant that matches wins; later ones are not consulted.
type category struct {
	variants []*regexp.Regexp
	assign   func(*domain.FeeBreakdown, decimal.Decimal)
}

// Extractor scans text for a fixed set of locale-specific fee signatures.
type Extractor struct {
	locale     domain.Locale
	categories []category
}

// NewBrazilExtractor recognizes the fee lines of Brazilian brokerage notes.
// Patterns are written unaccented and matched against folded text, so both
// "Liquidação" and "liquidacao" hit.
func NewBrazilExtractor() *Extractor {
	return &Extractor{
		locale: domain.LocaleBR,
		categories: []category{
			{
				variants: compile(`corretagem[:\s]*([\d.,]+)`, `taxa de corretagem[:\s]*([\d.,]+)`),
				assign:   func(f *domain.FeeBreakdown, v decimal.Decimal) { f.Brokerage = v },
			},
			{
				variants: compile(`liquidacao[:\s]*([\d.,]+)`, `taxa de liquidacao[:\s]*([\d.,]+)`),
				assign:   func(f *domain.FeeBreakdown, v decimal.Decimal) { f.Settlement = v },
			},
			{
				variants: compile(`emolumentos[:\s]*([\d.,]+)`),
				assign:   func(f *domain.FeeBreakdown, v decimal.Decimal) { f.ExchangeFees = v },
			},
			{
				variants: compile(`taxa de custodia[:\s]*([\d.,]+)`, `custodia[:\s]*([\d.,]+)`),
				assign:   func(f *domain.FeeBreakdown, v decimal.Decimal) { f.Custody = v },
			},
			{
				variants: compile(`\biss\b[:\s]*([\d.,]+)`),
				assign:   func(f *domain.FeeBreakdown, v decimal.Decimal) { f.ISS = v },
			},
			{
				variants: compile(`\birrf\b[:\s]*([\d.,]+)`, `i\.r\.r\.f\.?[:\s]*([\d.,]+)`),
				assign:   func(f *domain.FeeBreakdown, v decimal.Decimal) { f.WithholdingTax = v },
			},
		},
	}
}

// NewUSExtractor recognizes the commission summary of US activity statements.
func NewUSExtractor() *Extractor {
	return &Extractor{
		locale: domain.LocaleUS,
		categories: []category{
			{
				variants: compile(`total\s+commission[:\s]*([\d.,]+)`),
				assign:   func(f *domain.FeeBreakdown, v decimal.Decimal) { f.Brokerage = v },
			},
		},
	}
}

// Extract returns the fee breakdown found in text. Categories whose labels
// are absent stay zero; Total is the sum of what was found.
func (e *Extractor) Extract(text string) domain.FeeBreakdown {
	folded := textfold.Fold(text)

	var breakdown domain.FeeBreakdown
	for _, cat := range e.categories {
		for _, variant := range cat.variants {
			m := variant.FindStringSubmatch(folded)
			if m == nil {
				continue
			}
			if v, ok := numfmt.Parse(m[1], e.locale); ok {
				cat.assign(&breakdown, v)
				break
			}
		}
	}

	breakdown.Total = breakdown.Sum()
	return breakdown
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
