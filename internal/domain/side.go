// Package domain defines the value types produced by the extraction engine.
package domain

// Side represents the direction of a trade.
type Side string

const (
	// SideBuy is a purchase.
	SideBuy Side = "buy"
	// SideSell is a sale.
	SideSell Side = "sell"
)

// String returns the string representation.
func (s Side) String() string {
	return string(s)
}

// IsValid checks if the Side value is valid.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}
