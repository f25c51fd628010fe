package extract

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Price sanity band: role assignments implying a unit price outside this
// range are rejected and the caller falls back or skips the row.
var (
	priceBandLow  = decimal.RequireFromString("0.01")
	priceBandHigh = decimal.NewFromInt(100000)
)

// AssignRoles infers quantity, price and total from an unordered pool of
// numeric candidates. Precedence, in order:
//  1. quantity is the first whole-number candidate, else the smallest value
//  2. total is the largest value
//  3. price is back-computed as total/quantity
//
// The assignment is rejected when fewer than two positive values survive or
// the implied price falls outside the sanity band.
func AssignRoles(values []decimal.Decimal) (qty, price, total decimal.Decimal, ok bool) {
	positive := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		if v.IsPositive() {
			positive = append(positive, v)
		}
	}
	if len(positive) < 2 {
		return decimal.Zero, decimal.Zero, decimal.Zero, false
	}

	sorted := make([]decimal.Decimal, len(positive))
	copy(sorted, positive)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	for _, v := range positive {
		if v.Equal(v.Truncate(0)) {
			qty = v
			break
		}
	}
	if qty.IsZero() {
		qty = sorted[0]
	}

	total = sorted[len(sorted)-1]
	price = total.Div(qty).Round(2)

	if price.LessThan(priceBandLow) || price.GreaterThan(priceBandHigh) {
		return decimal.Zero, decimal.Zero, decimal.Zero, false
	}
	return qty, price, total, true
}
