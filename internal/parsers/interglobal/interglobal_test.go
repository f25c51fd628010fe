package interglobal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grahamfi/noteparse/config"
	"github.com/grahamfi/noteparse/internal/domain"
)

const confirmation = `INTER CO SECURITIES LLC
Transaction Confirmation
Confirmation Date: 03/15/2024
AAPL Apple Inc Sell 50 185.50 03/15/2024
MSFT Microsoft Corp Buy 10 320.00 03/15/2024
`

func TestParse_ConfirmationLines(t *testing.T) {
	res := New(nil, config.Default()).Parse(domain.Document{Text: confirmation}, "", false)

	require.True(t, res.Success)
	require.Equal(t, "Inter&Co", res.Source)
	require.Equal(t, "USD", res.Currency)
	require.NotNil(t, res.DocumentDate)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *res.DocumentDate)
	require.Len(t, res.Operations, 2)

	sell := res.Operations[0]
	require.Equal(t, "AAPL", sell.Symbol)
	require.Equal(t, "Apple Inc", sell.Name)
	require.Equal(t, domain.SideSell, sell.Side)
	require.Equal(t, "50", sell.Quantity.String())
	require.Equal(t, "185.5", sell.Price.String())
	require.Equal(t, "9275", sell.Total.String())

	buy := res.Operations[1]
	require.Equal(t, "MSFT", buy.Symbol)
	require.Equal(t, domain.SideBuy, buy.Side)

	// fees are tracked separately from net value here
	require.Equal(t, "12475", res.NetValue.String())
	require.True(t, res.Fees.IsZero())
}

func TestParse_TableFallback(t *testing.T) {
	doc := domain.Document{
		Text: "inter&co\nConfirmation Date: 03/15/2024",
		Tables: []domain.TableGrid{{
			{"Symbol", "Action", "Qty", "Price", "Trade Date"},
			{"VOO", "Buy", "5", "430.10", "03/15/2024"},
		}},
	}

	res := New(nil, config.Default()).Parse(doc, "", false)

	require.True(t, res.Success)
	require.Len(t, res.Operations, 1)
	op := res.Operations[0]
	require.Equal(t, "VOO", op.Symbol)
	require.Equal(t, domain.SideBuy, op.Side)
	require.Equal(t, "5", op.Quantity.String())
	require.Equal(t, "430.1", op.Price.String())
	require.Equal(t, "2150.5", op.Total.String())
	require.Equal(t, domain.AssetETFUS, op.AssetKind)
}

func TestParse_StrictFailure(t *testing.T) {
	res := New(nil, config.Default()).Parse(domain.Document{Text: "unrelated text"}, "", false)

	require.False(t, res.Success)
	require.Empty(t, res.Operations)
	require.Contains(t, res.Warnings, "document does not look like an inter&co trade confirmation")
	require.Contains(t, res.Warnings, "no trades found in the confirmation")
}

func TestParse_BlacklistedLeadingToken(t *testing.T) {
	// USD satisfies the ticker shape but is a currency code
	doc := domain.Document{Text: "USD account summary Buy 10 99.00"}

	res := New(nil, config.Default()).Parse(doc, "", false)
	require.False(t, res.Success)
	require.Empty(t, res.Operations)
}
