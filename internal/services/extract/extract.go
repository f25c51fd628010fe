// Package extract implements the operation extraction chain: an ordered list
// of heuristic strategies tried in sequence, where the first strategy to
// yield at least one candidate wins.
package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/symbol"
)

// Context carries the locale hint and the symbol resolver shared by every
// strategy in a chain.
type Context struct {
	Locale   domain.Locale
	Resolver *symbol.Resolver
	Logger   *zap.Logger
}

func (c Context) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Candidate is an unvalidated operation guess produced mid-strategy, before
// acceptance checks turn it into a domain.Operation.
type Candidate struct {
	Symbol    string
	Name      string
	Side      domain.Side
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	Total     decimal.Decimal
	TradeDate *time.Time
}

// Strategy is one self-contained heuristic for turning raw text and tables
// into candidates. Strategies never fail: an input they cannot read yields
// zero candidates and the chain falls through.
type Strategy struct {
	Name string
	Run  func(text string, tables []domain.TableGrid, ctx Context) []Candidate
}

// Chain runs strategies in priority order with early exit on the first
// non-empty result. No state persists between attempts.
type Chain struct {
	strategies []Strategy
}

// NewChain builds a chain over the given strategies, most format-specific first.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Run returns the candidates of the first strategy that produced any,
// together with that strategy's name. Later strategies are never run and
// never merged in. Returns nil and "" when every strategy came up empty.
func (c *Chain) Run(text string, tables []domain.TableGrid, ctx Context) ([]Candidate, string) {
	logger := ctx.logger()
	for _, s := range c.strategies {
		candidates := s.Run(text, tables, ctx)
		logger.Debug("extraction strategy attempted",
			zap.String("strategy", s.Name),
			zap.Int("candidates", len(candidates)))
		if len(candidates) > 0 {
			return candidates, s.Name
		}
	}
	return nil, ""
}

// SideFromText returns sell when an explicit sell marker is present in s,
// defaulting to buy otherwise. The buy default on unrecognized markers is
// deliberate.
func SideFromText(s string) domain.Side {
	lower := strings.ToLower(s)
	if strings.Contains(lower, " v ") || strings.Contains(lower, "venda") || strings.Contains(lower, "sell") {
		return domain.SideSell
	}
	return domain.SideBuy
}

// RowText flattens a table row into one space-joined string, dropping empty cells.
func RowText(row domain.Row) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, " ")
}

// StripSymbol removes the first occurrence of sym from s so the ticker's own
// digits (PETR4 -> 4) do not pollute the numeric candidate pool.
func StripSymbol(s, sym string) string {
	if sym == "" {
		return s
	}
	return strings.Replace(s, sym, "", 1)
}
