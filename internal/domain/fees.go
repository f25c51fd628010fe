package domain

import "github.com/shopspring/decimal"

// FeeBreakdown is the sum of named charge categories found in a document.
// Total always equals the sum of the named fields; it is recomputed by the
// fee extractor and never trusted from a "total" label in the source.
type FeeBreakdown struct {
	Brokerage      decimal.Decimal `json:"brokerage"`
	Settlement     decimal.Decimal `json:"settlement"`
	ExchangeFees   decimal.Decimal `json:"exchange_fees"`
	Custody        decimal.Decimal `json:"custody"`
	ISS            decimal.Decimal `json:"iss"`
	WithholdingTax decimal.Decimal `json:"withholding_tax"`
	Other          decimal.Decimal `json:"other"`
	Total          decimal.Decimal `json:"total"`
}

// Sum returns the sum of all named categories, ignoring the stored Total.
func (f FeeBreakdown) Sum() decimal.Decimal {
	return f.Brokerage.
		Add(f.Settlement).
		Add(f.ExchangeFees).
		Add(f.Custody).
		Add(f.ISS).
		Add(f.WithholdingTax).
		Add(f.Other)
}

// IsZero reports whether no category carries a value.
func (f FeeBreakdown) IsZero() bool {
	return f.Sum().IsZero()
}
