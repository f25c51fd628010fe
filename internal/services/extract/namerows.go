package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/numfmt"
)

var (
	standaloneV = regexp.MustCompile(`\bV\b`)
	// brNumber matches Brazilian money tokens (1.234,56) or bare integers.
	brNumber = regexp.MustCompile(`[\d.]+,\d{2}|\b\d+\b`)
)

// NameRows parses the line-based layout used by Rico, where operation rows
// carry company names instead of tickers:
//
//	1-BOVESPA C FRACIONARIO CEMIG PN N1 @# 10 11,30 113,00 D
//
// The numbers are positional (quantity, price, total) and the row is only
// accepted when total matches quantity*price within one currency unit.
func NameRows() Strategy {
	return Strategy{
		Name: "name-rows",
		Run: func(text string, _ []domain.TableGrid, ctx Context) []Candidate {
			var out []Candidate
			for _, line := range strings.Split(text, "\n") {
				lower := strings.ToLower(line)
				if !strings.Contains(lower, "bovespa") && !strings.Contains(lower, "fracionario") && !strings.Contains(lower, "fracionário") {
					continue
				}

				side := domain.SideBuy
				if standaloneV.MatchString(line) {
					side = domain.SideSell
				}

				sym, ok := ctx.Resolver.Resolve(line)
				if !ok {
					continue
				}

				var values []decimal.Decimal
				for _, token := range brNumber.FindAllString(StripSymbol(line, sym), -1) {
					if v, okNum := numfmt.Parse(token, domain.LocaleBR); okNum && v.IsPositive() {
						values = append(values, v)
					}
				}

				// the leading "1" comes from the "1-BOVESPA" market code
				one := decimal.NewFromInt(1)
				valid := values[:0]
				for _, v := range values {
					if !v.Equal(one) {
						valid = append(valid, v)
					}
				}
				if len(valid) < 3 {
					continue
				}

				qty, price, total := valid[0], valid[1], valid[2]
				if total.Sub(qty.Mul(price)).Abs().GreaterThanOrEqual(one) {
					continue
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
