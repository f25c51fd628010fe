// Package ibkr parses Interactive Brokers activity statements, either as a
// decoded document (tabular layout) or as a Flex/activity CSV export.
package ibkr

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grahamfi/noteparse/config"
	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/aggregate"
	"github.com/grahamfi/noteparse/internal/services/extract"
	"github.com/grahamfi/noteparse/internal/services/fees"
	"github.com/grahamfi/noteparse/internal/services/numfmt"
	"github.com/grahamfi/noteparse/internal/services/source"
	"github.com/grahamfi/noteparse/internal/services/symbol"
)

const (
	family   = "ibkr"
	currency = "USD"
)

var signatures = source.SignatureSet{
	Label:      "Interactive Brokers",
	Signatures: []string{"interactive brokers", "ibkr", "ib llc"},
}

// Parser extracts trades from IBKR activity statements. Statements list many
// sections; only rows inside the Trades section are read.
type Parser struct {
	logger     *zap.Logger
	cfg        config.Config
	identifier *source.Identifier
	resolver   *symbol.Resolver
	fees       *fees.Extractor
	convention aggregate.FeeConvention
}

func New(logger *zap.Logger, cfg config.Config) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		logger:     logger,
		cfg:        cfg,
		identifier: source.NewIdentifier(signatures),
		resolver:   symbol.NewUSResolver(),
		fees:       fees.NewUSExtractor(),
		convention: cfg.ConventionFor(family, aggregate.FeesIncluded),
	}
}

func (p *Parser) Parse(doc domain.Document, password string, debug bool) domain.ExtractionResult {
	parseID := uuid.NewString()
	logger := p.logger.With(zap.String("parse_id", parseID), zap.String("family", family))

	if doc.Encrypted {
		logger.Warn("document is password protected")
		res := domain.Failure("document is password protected; export an unprotected activity statement")
		res.ParseID = parseID
		return res
	}

	label, known := p.identifier.Identify(doc.Text)

	candidates, winner := extract.NewChain(tradesSection()).Run(doc.Text, doc.Tables, extract.Context{
		Locale:   domain.LocaleUS,
		Resolver: p.resolver,
		Logger:   logger,
	})

	ops := aggregate.OperationsFromCandidates(candidates, currency, nil)
	breakdown := p.fees.Extract(doc.Text)

	// statements carry no single document date; borrow the first trade's
	var docDate *time.Time
	for _, op := range ops {
		if op.TradeDate != nil {
			docDate = op.TradeDate
			break
		}
	}

	logger.Info("statement parsed",
		zap.String("strategy", winner),
		zap.Int("operations", len(ops)))

	var warnings []string
	if len(ops) == 0 {
		warnings = append(warnings, "no trades found in the statement")
	}

	res := aggregate.Build(aggregate.Input{
		Source:       label,
		SourceKnown:  known,
		DocumentDate: docDate,
		Operations:   ops,
		Fees:         &breakdown,
		Currency:     currency,
		Convention:   p.convention,
		Warnings:     warnings,
	})
	res.ParseID = parseID
	if debug {
		res.RawText = p.cfg.DebugEcho(doc.Text)
	}
	return res
}

var (
	isoDate   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	clockTime = regexp.MustCompile(`\b\d{1,2}:\d{2}(:\d{2})?\b`)
)

// tradesSection reads table rows, but only once a Trades section header has
// been seen. The gate persists across tables because statements split long
// sections over page boundaries. Summary headers do not open the gate.
func tradesSection() extract.Strategy {
	return extract.Strategy{
		Name: "trades-section",
		Run: func(_ string, tables []domain.TableGrid, ctx extract.Context) []extract.Candidate {
			var out []extract.Candidate
			inTrades := false
			for _, table := range tables {
				for _, row := range table {
					rowText := extract.RowText(row)
					lower := strings.ToLower(rowText)

					if strings.Contains(lower, "trades") {
						inTrades = !strings.Contains(lower, "summary")
						continue
					}
					if !inTrades {
						continue
					}

					sym, ok := ctx.Resolver.GrammarMatch(rowText)
					if !ok {
						continue
					}

					// the Date/Time cell must not leak digits into the scan
					var tradeDate *time.Time
					if m := isoDate.FindString(rowText); m != "" {
						if d, err := time.Parse("2006-01-02", m); err == nil {
							tradeDate = &d
						}
					}
					scanText := clockTime.ReplaceAllString(isoDate.ReplaceAllString(rowText, " "), " ")

					values := numfmt.ScanAll(extract.StripSymbol(scanText, sym), ctx.Locale)
					if len(values) < 2 {
						continue
					}

					// negative quantity marks a sell
					side := domain.SideBuy
					if values[0].IsNegative() {
						side = domain.SideSell
					}
					qty := values[0].Abs()
					price := values[1].Abs()
					total := qty.Mul(price)
					if len(values) >= 3 {
						total = values[2].Abs()
					}

					out = append(out, extract.Candidate{
						Symbol:    sym,
						Side:      side,
						Quantity:  qty,
						Price:     price,
						Total:     total,
						TradeDate: tradeDate,
					})
				}
			}
			return out
		},
	}
}
