package domain

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Operation is one reconstructed buy/sell trade. Immutable once constructed.
type Operation struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name,omitempty"`
	Side      Side            `json:"side"`
	AssetKind AssetKind       `json:"asset_kind"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	TradeDate *time.Time      `json:"trade_date,omitempty"`
}

// NewOperation constructs a validated operation.
func NewOperation(symbol string, side Side, quantity, price, total decimal.Decimal, currency string) (Operation, error) {
	if symbol == "" {
		return Operation{}, errors.New("operation symbol must not be empty")
	}
	if !side.IsValid() {
		return Operation{}, errors.Errorf("invalid operation side: %s", side)
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return Operation{}, errors.New("operation quantity must be greater than zero")
	}
	if price.IsNegative() {
		return Operation{}, errors.New("operation price must not be negative")
	}

	return Operation{
		Symbol:    symbol,
		Side:      side,
		AssetKind: AssetOther,
		Quantity:  quantity,
		Price:     price,
		Total:     total,
		Currency:  currency,
	}, nil
}

// ConsistentTotal reports whether Total approximates Quantity*Price within
// the given relative tolerance.
func (o Operation) ConsistentTotal(tolerance decimal.Decimal) bool {
	expected := o.Quantity.Mul(o.Price)
	base := o.Total
	if base.LessThan(decimal.NewFromInt(1)) {
		base = decimal.NewFromInt(1)
	}
	return o.Total.Sub(expected).Abs().Div(base).LessThanOrEqual(tolerance)
}

// String returns a human-readable string representation.
func (o Operation) String() string {
	return fmt.Sprintf("%s %s qty: %s price: %s total: %s", o.Symbol, o.Side, o.Quantity.String(), o.Price.String(), o.Total.String())
}
