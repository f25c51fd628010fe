package extract

import (
	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/numfmt"
)

// TableRows scans every table row for a grammar ticker and infers the
// quantity/price/total roles from the row's numeric candidates. This is the
// workhorse strategy for tabular brokerage-note layouts.
func TableRows() Strategy {
	return Strategy{
		Name: "table-rows",
		Run: func(_ string, tables []domain.TableGrid, ctx Context) []Candidate {
			var out []Candidate
			for _, table := range tables {
				for _, row := range table {
					rowText := RowText(row)
					if rowText == "" {
						continue
					}

					sym, ok := ctx.Resolver.GrammarMatch(rowText)
					if !ok {
						continue
					}

					values := numfmt.ScanAll(StripSymbol(rowText, sym), ctx.Locale)
					qty, price, total, ok := AssignRoles(values)
					if !ok {
						continue
					}

					out = append(out, Candidate{
						Symbol:   sym,
						Side:     SideFromText(rowText),
						Quantity: qty,
						Price:    price,
						Total:    total,
					})
				}
			}
			return out
		},
	}
}
