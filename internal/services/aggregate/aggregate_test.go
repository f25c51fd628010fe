package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/extract"
)

func mustOp(t *testing.T, symbol string, total string) domain.Operation {
	t.Helper()
	op, err := domain.NewOperation(symbol, domain.SideBuy,
		decimal.NewFromInt(1), decimal.RequireFromString(total), decimal.RequireFromString(total), "BRL")
	require.NoError(t, err)
	return op
}

func TestBuild_NetValueConventions(t *testing.T) {
	ops := []domain.Operation{mustOp(t, "PETR4", "3550"), mustOp(t, "VALE3", "450")}
	fees := &domain.FeeBreakdown{Brokerage: decimal.RequireFromString("4.90"), Total: decimal.RequireFromString("4.90")}

	included := Build(Input{Operations: ops, Fees: fees, Convention: FeesIncluded, SourceKnown: true, DocumentDate: &time.Time{}})
	require.Equal(t, "4004.9", included.NetValue.String())

	excluded := Build(Input{Operations: ops, Fees: fees, Convention: FeesExcluded, SourceKnown: true, DocumentDate: &time.Time{}})
	require.Equal(t, "4000", excluded.NetValue.String())
}

func TestBuild_Warnings(t *testing.T) {
	res := Build(Input{Warnings: []string{"no operations found"}})

	require.Contains(t, res.Warnings, WarnUnknownSource)
	require.Contains(t, res.Warnings, WarnNoDate)
	require.Contains(t, res.Warnings, "no operations found")
}

func TestBuild_SuccessModes(t *testing.T) {
	lenient := Build(Input{RequireOperations: false})
	require.True(t, lenient.Success)

	strict := Build(Input{RequireOperations: true})
	require.False(t, strict.Success)

	strictWithOps := Build(Input{RequireOperations: true, Operations: []domain.Operation{mustOp(t, "AAPL", "100")}})
	require.True(t, strictWithOps.Success)
}

func TestOperationsFromCandidates_Acceptance(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	candidates := []extract.Candidate{
		{Symbol: "PETR4", Side: domain.SideBuy, Quantity: decimal.NewFromInt(100), Price: decimal.RequireFromString("35.5"), Total: decimal.NewFromInt(3550)},
		// zero quantity: rejected
		{Symbol: "VALE3", Side: domain.SideBuy, Quantity: decimal.Zero, Price: decimal.NewFromInt(68)},
		// neither price nor total: rejected
		{Symbol: "ITSA4", Side: domain.SideSell, Quantity: decimal.NewFromInt(10)},
	}

	ops := OperationsFromCandidates(candidates, "BRL", &date)

	require.Len(t, ops, 1)
	require.Equal(t, "PETR4", ops[0].Symbol)
	require.Equal(t, domain.AssetStockBR, ops[0].AssetKind)
	require.Equal(t, "BRL", ops[0].Currency)
	require.NotNil(t, ops[0].TradeDate)
	require.Equal(t, date, *ops[0].TradeDate)
}

func TestOperationsFromCandidates_RecomputesInconsistentTotal(t *testing.T) {
	candidates := []extract.Candidate{
		{Symbol: "PETR4", Side: domain.SideBuy, Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(355), Total: decimal.NewFromInt(355)},
	}

	ops := OperationsFromCandidates(candidates, "BRL", nil)

	require.Len(t, ops, 1)
	require.Equal(t, "3550", ops[0].Total.String())
	require.True(t, ops[0].ConsistentTotal(decimal.RequireFromString("0.01")))
}

func TestOperationsFromCandidates_BackComputesPrice(t *testing.T) {
	candidates := []extract.Candidate{
		{Symbol: "AAPL", Side: domain.SideSell, Quantity: decimal.NewFromInt(50), Total: decimal.RequireFromString("9275")},
	}

	ops := OperationsFromCandidates(candidates, "USD", nil)

	require.Len(t, ops, 1)
	require.Equal(t, "185.5", ops[0].Price.String())
	require.Equal(t, "9275", ops[0].Total.String())
}

func TestOperationsFromCandidates_ConsistentTotalKept(t *testing.T) {
	// stated total within tolerance of quantity*price is preserved as stated
	candidates := []extract.Candidate{
		{Symbol: "AMZN", Side: domain.SideBuy, Quantity: decimal.RequireFromString("0.99965"), Price: decimal.RequireFromString("87.2299"), Total: decimal.RequireFromString("87.20")},
	}

	ops := OperationsFromCandidates(candidates, "USD", nil)

	require.Len(t, ops, 1)
	require.Equal(t, "87.2", ops[0].Total.String())
}
