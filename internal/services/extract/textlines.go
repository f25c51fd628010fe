package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/numfmt"
)

const minOperationLineLength = 10

// operationMarkers are the side/action hints that qualify a text line as an
// operation row. Lines without one are discarded to bound false positives.
var operationMarkers = []string{" c ", " v ", "compra", "venda", "fracionario", "lote"}

// TextLines is the last-resort strategy: scan raw text lines for a ticker
// plus an action marker and read the surviving numeric candidates
// positionally (quantity first, then price within a plausibility band,
// largest value as total).
func TextLines() Strategy {
	return Strategy{
		Name: "text-lines",
		Run: func(text string, _ []domain.TableGrid, ctx Context) []Candidate {
			var out []Candidate
			for _, line := range strings.Split(text, "\n") {
				if len(line) < minOperationLineLength {
					continue
				}

				sym, ok := ctx.Resolver.GrammarMatch(line)
				if !ok {
					continue
				}

				lower := strings.ToLower(line)
				if !hasOperationMarker(lower) {
					continue
				}

				side := domain.SideBuy
				if strings.Contains(lower, " v ") || strings.Contains(lower, "venda") {
					side = domain.SideSell
				}

				var values []decimal.Decimal
				for _, v := range numfmt.ScanAll(StripSymbol(line, sym), ctx.Locale) {
					if v.IsPositive() {
						values = append(values, v)
					}
				}
				if len(values) < 2 {
					continue
				}

				qty := values[0]

				price := decimal.Zero
				for _, v := range values[1:] {
					if v.GreaterThanOrEqual(priceBandLow) && v.LessThanOrEqual(decimal.NewFromInt(10000)) && !v.Equal(qty) {
						price = v
						break
					}
				}

				total := decimal.Zero
				for _, v := range values {
					if v.GreaterThan(total) {
						total = v
					}
				}

				if !qty.IsPositive() || (!price.IsPositive() && !total.IsPositive()) {
					continue
				}
				if price.IsZero() && total.IsPositive() {
					price = total.Div(qty).Round(2)
				}
				if total.IsZero() {
					total = qty.Mul(price)
				}

				out = append(out, Candidate{
					Symbol:   sym,
					Side:     side,
					Quantity: qty,
					Price:    price,
					Total:    total,
				})
			}
			return out
		},
	}
}

func hasOperationMarker(lower string) bool {
	for _, marker := range operationMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
