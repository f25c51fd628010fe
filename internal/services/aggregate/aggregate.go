// Package aggregate combines extracted operations and fees into the final
// extraction result, computing net value and emitting warnings for
// low-confidence or empty outcomes.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/asset"
	"github.com/grahamfi/noteparse/internal/services/extract"
)

// FeeConvention states whether a family's net value is cost-inclusive.
// Which convention applies is an explicit per-family parameter, never
// inferred from the document.
type FeeConvention string

const (
	// FeesIncluded adds the fee total to the operation totals (equity
	// settlement convention).
	FeesIncluded FeeConvention = "include"
	// FeesExcluded tracks fees separately from net value.
	FeesExcluded FeeConvention = "exclude"
)

// totalTolerance is the relative tolerance for accepting a stated total
// against the independently derived quantity*price.
var totalTolerance = decimal.RequireFromString("0.01")

const (
	// WarnUnknownSource is emitted when no institution signature matched.
	WarnUnknownSource = "could not identify the source institution"
	// WarnNoDate is emitted when no document date could be extracted.
	WarnNoDate = "could not extract the document date"
)

// Input is everything the aggregator needs to build a result.
type Input struct {
	Source            string
	SourceKnown       bool
	DocumentDate      *time.Time
	DocumentRef       string
	Operations        []domain.Operation
	Fees              *domain.FeeBreakdown
	Currency          string
	Convention        FeeConvention
	RequireOperations bool
	Warnings          []string
}

// Build assembles the final result. Net value is the sum of operation
// totals, plus the fee total under FeesIncluded. Success follows the
// family's contract: lenient families succeed whenever parsing ran to
// completion, strict ones require at least one operation.
func Build(in Input) domain.ExtractionResult {
	warnings := make([]string, 0, len(in.Warnings)+2)
	if !in.SourceKnown {
		warnings = append(warnings, WarnUnknownSource)
	}
	if in.DocumentDate == nil {
		warnings = append(warnings, WarnNoDate)
	}
	warnings = append(warnings, in.Warnings...)

	net := decimal.Zero
	for _, op := range in.Operations {
		net = net.Add(op.Total)
	}
	if in.Convention == FeesIncluded && in.Fees != nil {
		net = net.Add(in.Fees.Total)
	}

	success := true
	if in.RequireOperations {
		success = len(in.Operations) > 0
	}

	return domain.ExtractionResult{
		Success:      success,
		Source:       in.Source,
		DocumentDate: in.DocumentDate,
		DocumentRef:  in.DocumentRef,
		Operations:   in.Operations,
		Fees:         in.Fees,
		NetValue:     net,
		Currency:     in.Currency,
		Warnings:     warnings,
	}
}

// OperationsFromCandidates applies the acceptance rules to raw candidates:
// symbol resolved, quantity positive, at least one of price/total positive.
// Total is recomputed as quantity*price whenever it was absent or fails the
// tolerance check; price is back-computed from a lone total. Each accepted
// operation is classified and stamped with the document date when the
// candidate carries none. Rejected candidates are skipped silently.
func OperationsFromCandidates(candidates []extract.Candidate, currency string, fallbackDate *time.Time) []domain.Operation {
	ops := make([]domain.Operation, 0, len(candidates))
	for _, c := range candidates {
		if !c.Quantity.IsPositive() {
			continue
		}

		price, total := c.Price.Abs(), c.Total.Abs()
		if !price.IsPositive() && !total.IsPositive() {
			continue
		}
		if !price.IsPositive() {
			price = total.Div(c.Quantity).Round(2)
		}
		if !total.IsPositive() || !consistent(c.Quantity, price, total) {
			total = c.Quantity.Mul(price)
		}

		op, err := domain.NewOperation(c.Symbol, c.Side, c.Quantity, price, total, currency)
		if err != nil {
			continue
		}
		op.Name = c.Name
		op.AssetKind = asset.Classify(c.Symbol, c.Name)
		op.TradeDate = c.TradeDate
		if op.TradeDate == nil {
			op.TradeDate = fallbackDate
		}
		ops = append(ops, op)
	}
	return ops
}

func consistent(qty, price, total decimal.Decimal) bool {
	base := total
	if base.LessThan(decimal.NewFromInt(1)) {
		base = decimal.NewFromInt(1)
	}
	return total.Sub(qty.Mul(price)).Abs().Div(base).LessThanOrEqual(totalTolerance)
}
