// Package asset maps a resolved symbol plus an optional free-text
// description to an asset kind. Rule precedence is total: category keywords,
// then curated allowlists, then symbol shape, then other.
package asset

import (
	"regexp"
	"strings"

	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/pkg/textfold"
)

var (
	// fiiShape matches Brazilian FII tickers: four letters then 11.
	fiiShape = regexp.MustCompile(`^[A-Z]{4}11$`)
	// brShape matches the Brazilian ticker grammar.
	brShape = regexp.MustCompile(`^[A-Z]{4,6}\d{1,2}F?$`)
)

// brazilETFs are well-known Brazilian exchange-traded funds.
var brazilETFs = map[string]struct{}{
	"BOVA11": {}, "IVVB11": {}, "SMAL11": {}, "HASH11": {},
	"DIVO11": {}, "BOVB11": {}, "ECOO11": {},
}

// usETFs are well-known US exchange-traded funds.
var usETFs = map[string]struct{}{
	"SPY": {}, "QQQ": {}, "VTI": {}, "VOO": {}, "IVV": {},
	"VEA": {}, "VWO": {}, "ARKK": {}, "TLT": {}, "GLD": {},
}

// optionSymbolLength: OCC-style option symbols run well past ticker length.
const optionSymbolLength = 10

// Classify returns the asset kind for symbol, optionally informed by a
// free-text description or category string.
func Classify(symbol, description string) domain.AssetKind {
	desc := textfold.Fold(description)
	brazilian := brShape.MatchString(symbol)

	// rule 1: explicit category keywords
	switch {
	case strings.Contains(desc, "etf"):
		if brazilian {
			return domain.AssetETFBR
		}
		return domain.AssetETFUS
	case strings.Contains(desc, "reit"), strings.Contains(desc, "fii"), strings.Contains(desc, "fundo imobiliario"):
		if brazilian {
			return domain.AssetReitBR
		}
		return domain.AssetReitUS
	case strings.Contains(desc, "option"), strings.Contains(desc, "opcao"):
		return domain.AssetOption
	case strings.Contains(desc, "future"), strings.Contains(desc, "futuro"):
		return domain.AssetFuture
	case strings.Contains(desc, "bond"), strings.Contains(desc, "treasury"):
		return domain.AssetBond
	}

	// rule 2: curated allowlists
	if _, ok := brazilETFs[symbol]; ok {
		return domain.AssetETFBR
	}
	if _, ok := usETFs[symbol]; ok {
		return domain.AssetETFUS
	}

	// rule 3: symbol shape
	switch {
	case fiiShape.MatchString(symbol):
		return domain.AssetReitBR
	case brazilian:
		return domain.AssetStockBR
	case len(symbol) > optionSymbolLength:
		return domain.AssetOption
	case len(symbol) >= 1 && len(symbol) <= 5 && isUpperAlpha(symbol):
		return domain.AssetStockUS
	}

	// rule 4: nothing matched
	return domain.AssetOther
}

func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
