package avenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grahamfi/noteparse/config"
	"github.com/grahamfi/noteparse/internal/domain"
)

const confirmation = `AVENUE SECURITIES LLC
Apex Clearing Corporation
Current Trade Date: 12/16/2022
B 12/16/2022 12/20/2022 0.42810 AMZN 203.69 87.20
S 12/16/2022 12/20/2022 TSLA 0.10000 157.80
`

func TestParse_Confirmation(t *testing.T) {
	res := New(nil, config.Default()).Parse(domain.Document{Text: confirmation}, "", false)

	require.True(t, res.Success)
	require.Equal(t, "Avenue", res.Source)
	require.Equal(t, "USD", res.Currency)
	require.NotNil(t, res.DocumentDate)
	require.Equal(t, time.Date(2022, 12, 16, 0, 0, 0, 0, time.UTC), *res.DocumentDate)
	require.Len(t, res.Operations, 2)

	// quantity-first layout with a fractional share count
	buy := res.Operations[0]
	require.Equal(t, "AMZN", buy.Symbol)
	require.Equal(t, domain.SideBuy, buy.Side)
	require.Equal(t, "0.4281", buy.Quantity.String())
	require.Equal(t, "203.69", buy.Price.String())
	require.Equal(t, "87.2", buy.Total.Round(2).String())
	require.NotNil(t, buy.TradeDate)
	require.Equal(t, time.Date(2022, 12, 16, 0, 0, 0, 0, time.UTC), *buy.TradeDate)

	// symbol-first layout
	sell := res.Operations[1]
	require.Equal(t, "TSLA", sell.Symbol)
	require.Equal(t, domain.SideSell, sell.Side)
	require.Equal(t, "0.1", sell.Quantity.String())
	require.Equal(t, "157.8", sell.Price.String())
	require.Equal(t, "15.78", sell.Total.String())

	require.Equal(t, "102.98", res.NetValue.Round(2).String())
	require.True(t, res.Fees.IsZero())
}

func TestParse_LineWithoutDates(t *testing.T) {
	doc := domain.Document{Text: "avenue securities\nB AMZN 0.5 100.00\n"}

	res := New(nil, config.Default()).Parse(doc, "", false)

	require.True(t, res.Success)
	require.Len(t, res.Operations, 1)
	op := res.Operations[0]
	require.Equal(t, "AMZN", op.Symbol)
	require.Equal(t, "0.5", op.Quantity.String())
	require.Equal(t, "100", op.Price.String())
	require.Nil(t, op.TradeDate)
}

func TestParse_StrictFailure(t *testing.T) {
	res := New(nil, config.Default()).Parse(domain.Document{Text: "avenue securities\nno trades today"}, "", false)

	require.False(t, res.Success)
	require.Contains(t, res.Warnings, "no trades found in the confirmation")
}

func TestParse_Encrypted(t *testing.T) {
	res := New(nil, config.Default()).Parse(domain.Document{Encrypted: true}, "secret", false)

	require.False(t, res.Success)
	require.Contains(t, res.Warnings[0], "password protected")
}
