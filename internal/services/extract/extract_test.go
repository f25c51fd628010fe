package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/symbol"
)

func brContext() Context {
	return Context{Locale: domain.LocaleBR, Resolver: symbol.NewBrazilResolver()}
}

func stubStrategy(name string, candidates []Candidate) Strategy {
	return Strategy{
		Name: name,
		Run: func(string, []domain.TableGrid, Context) []Candidate {
			return candidates
		},
	}
}

func TestChain_ShortCircuitsOnFirstNonEmpty(t *testing.T) {
	ran := false
	first := stubStrategy("first", []Candidate{{Symbol: "PETR4"}})
	second := Strategy{
		Name: "second",
		Run: func(string, []domain.TableGrid, Context) []Candidate {
			ran = true
			return []Candidate{{Symbol: "VALE3"}}
		},
	}

	candidates, winner := NewChain(first, second).Run("", nil, brContext())

	require.Len(t, candidates, 1)
	require.Equal(t, "PETR4", candidates[0].Symbol)
	require.Equal(t, "first", winner)
	require.False(t, ran, "lower-priority strategy must never run once a higher one yields candidates")
}

func TestChain_FallsThroughEmptyStrategies(t *testing.T) {
	empty := stubStrategy("empty", nil)
	last := stubStrategy("last", []Candidate{{Symbol: "ITSA4"}})

	candidates, winner := NewChain(empty, empty, last).Run("", nil, brContext())

	require.Len(t, candidates, 1)
	require.Equal(t, "last", winner)
}

func TestChain_AllEmpty(t *testing.T) {
	candidates, winner := NewChain(stubStrategy("a", nil), stubStrategy("b", nil)).Run("", nil, brContext())

	require.Nil(t, candidates)
	require.Equal(t, "", winner)
}

func TestSideFromText_DefaultsToBuy(t *testing.T) {
	// unrecognized marker defaults to buy, deliberately
	require.Equal(t, domain.SideBuy, SideFromText("PETR4 X 100 35,50"))
	require.Equal(t, domain.SideBuy, SideFromText("PETR4 C 100 35,50"))
	require.Equal(t, domain.SideSell, SideFromText("PETR4 V 100 35,50"))
	require.Equal(t, domain.SideSell, SideFromText("venda PETR4"))
	require.Equal(t, domain.SideSell, SideFromText("AAPL Sell 50"))
}

func TestAssignRoles(t *testing.T) {
	values := []decimal.Decimal{
		decimal.RequireFromString("100"),
		decimal.RequireFromString("35.5"),
		decimal.RequireFromString("3550"),
	}

	qty, price, total, ok := AssignRoles(values)
	require.True(t, ok)
	require.Equal(t, "100", qty.String())
	require.Equal(t, "35.5", price.String())
	require.Equal(t, "3550", total.String())
}

func TestAssignRoles_RejectsSparseOrImplausible(t *testing.T) {
	_, _, _, ok := AssignRoles([]decimal.Decimal{decimal.NewFromInt(100)})
	require.False(t, ok, "one value is not enough")

	// implied price of 1e6 falls outside the sanity band
	_, _, _, ok = AssignRoles([]decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.NewFromInt(1000000000),
	})
	require.False(t, ok)
}

func TestTableRows(t *testing.T) {
	tables := []domain.TableGrid{
		{
			{"data", "header", "row"},
			{"PETR4", "C", "100", "35,50", "3.550,00"},
			{"VALE3", "V", "50", "68,00", "3.400,00"},
			{"", "", ""},
		},
	}

	candidates := TableRows().Run("", tables, brContext())

	require.Len(t, candidates, 2)
	require.Equal(t, "PETR4", candidates[0].Symbol)
	require.Equal(t, domain.SideBuy, candidates[0].Side)
	require.Equal(t, "100", candidates[0].Quantity.String())
	require.Equal(t, "35.5", candidates[0].Price.String())
	require.Equal(t, "3550", candidates[0].Total.String())

	require.Equal(t, "VALE3", candidates[1].Symbol)
	require.Equal(t, domain.SideSell, candidates[1].Side)
}

func TestNameRows(t *testing.T) {
	text := "NOTA DE NEGOCIAÇÃO\n" +
		"1-BOVESPA C FRACIONARIO CEMIG PN N1 @# 10 11,30 113,00 D\n" +
		"1-BOVESPA V FRACIONARIO PETROBRAS PN 5 35,00 175,00 C\n" +
		"rodapé sem operação\n"

	candidates := NameRows().Run(text, nil, brContext())

	require.Len(t, candidates, 2)
	require.Equal(t, "CMIG4", candidates[0].Symbol)
	require.Equal(t, domain.SideBuy, candidates[0].Side)
	require.Equal(t, "10", candidates[0].Quantity.String())
	require.Equal(t, "11.3", candidates[0].Price.String())
	require.Equal(t, "113", candidates[0].Total.String())

	require.Equal(t, "PETR4", candidates[1].Symbol)
	require.Equal(t, domain.SideSell, candidates[1].Side)
}

func TestNameRows_RejectsInconsistentTotal(t *testing.T) {
	// 10 * 11,30 = 113,00; a stated total off by >= 1.00 is rejected
	text := "1-BOVESPA C FRACIONARIO CEMIG PN N1 10 11,30 999,00 D\n"

	candidates := NameRows().Run(text, nil, brContext())
	require.Empty(t, candidates)
}

func TestTextLines(t *testing.T) {
	text := "cabeçalho da nota\nPETR4 C 100 35,50 3550,00\n"

	candidates := TextLines().Run(text, nil, brContext())

	require.Len(t, candidates, 1)
	c := candidates[0]
	require.Equal(t, "PETR4", c.Symbol)
	require.Equal(t, domain.SideBuy, c.Side)
	require.Equal(t, "100", c.Quantity.String())
	require.Equal(t, "35.5", c.Price.String())
	require.Equal(t, "3550", c.Total.String())
}

func TestTextLines_BackComputesPrice(t *testing.T) {
	// 35000 exceeds the per-unit plausibility ceiling, so no value is taken
	// as price directly; it is back-computed from total/quantity instead
	text := "PETR4 compra 100 35.000,00\n"

	candidates := TextLines().Run(text, nil, brContext())

	require.Len(t, candidates, 1)
	require.Equal(t, "100", candidates[0].Quantity.String())
	require.Equal(t, "350", candidates[0].Price.String())
	require.Equal(t, "35000", candidates[0].Total.String())
}

func TestTextLines_SkipsLinesWithoutMarkerOrSymbol(t *testing.T) {
	require.Empty(t, TextLines().Run("PETR4 100 35,50 3550,00\n", nil, brContext()), "no action marker")
	require.Empty(t, TextLines().Run("compra 100 35,50 3550,00\n", nil, brContext()), "no symbol")
	require.Empty(t, TextLines().Run("short\n", nil, brContext()))
}
