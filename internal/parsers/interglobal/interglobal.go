// Package interglobal parses Inter&Co global-account trade confirmations.
package interglobal

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/grahamfi/noteparse/config"
	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/aggregate"
	"github.com/grahamfi/noteparse/internal/services/docmeta"
	"github.com/grahamfi/noteparse/internal/services/extract"
	"github.com/grahamfi/noteparse/internal/services/numfmt"
	"github.com/grahamfi/noteparse/internal/services/source"
	"github.com/grahamfi/noteparse/internal/services/symbol"
)

const (
	family   = "inter-global"
	currency = "USD"
)

var signatures = source.SignatureSet{
	Label:      "Inter&Co",
	Signatures: []string{"inter co securities", "inter & co", "inter&co", "transaction confirmation"},
}

var (
	symbolShape = regexp.MustCompile(`^[A-Z]{1,5}$`)
	numberShape = regexp.MustCompile(`^\d+\.?\d*$`)
	dateShape   = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	rowLeading  = regexp.MustCompile(`^([A-Z]{2,5})\b`)
	actionWord  = regexp.MustCompile(`\b(buy|sell)\b`)
	slashDate   = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
)

// Parser extracts trades from Inter&Co confirmations. Success is strict: a
// confirmation that yields no trades fails.
type Parser struct {
	logger     *zap.Logger
	cfg        config.Config
	identifier *source.Identifier
	resolver   *symbol.Resolver
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
		convention: cfg.ConventionFor(family, aggregate.FeesExcluded),
	}
}

func (p *Parser) Parse(doc domain.Document, password string, debug bool) domain.ExtractionResult {
	parseID := uuid.NewString()
	logger := p.logger.With(zap.String("parse_id", parseID), zap.String("family", family))

	if doc.Encrypted {
		logger.Warn("document is password protected")
		res := domain.Failure("document is password protected; supply the account password")
		res.ParseID = parseID
		return res
	}

	label, known := p.identifier.Identify(doc.Text)
	date := docmeta.LabeledUSDate(doc.Text, "confirmation date", "trade date")

	candidates, winner := extract.NewChain(confirmationLines(), confirmationRows()).Run(doc.Text, doc.Tables, extract.Context{
		Locale:   domain.LocaleUS,
		Resolver: p.resolver,
		Logger:   logger,
	})

	ops := aggregate.OperationsFromCandidates(candidates, currency, date)

	logger.Info("confirmation parsed",
		zap.String("strategy", winner),
		zap.Int("operations", len(ops)))

	var warnings []string
	if !known {
		warnings = append(warnings, "document does not look like an inter&co trade confirmation")
	}
	if len(ops) == 0 {
		warnings = append(warnings, "no trades found in the confirmation")
	}

	res := aggregate.Build(aggregate.Input{
		Source:            label,
		SourceKnown:       known,
		DocumentDate:      date,
		Operations:        ops,
		Fees:              &domain.FeeBreakdown{},
		Currency:          currency,
		Convention:        p.convention,
		RequireOperations: true,
		Warnings:          warnings,
	})
	res.ParseID = parseID
	if debug {
		res.RawText = p.cfg.DebugEcho(doc.Text)
	}
	return res
}

// confirmationLines reads the positional text layout:
//
//	AAPL Apple Inc Sell 50 185.50 03/15/2024
//
// symbol first, security name up to the action word, then quantity and price.
func confirmationLines() extract.Strategy {
	return extract.Strategy{
		Name: "confirmation-lines",
		Run: func(text string, _ []domain.TableGrid, _ extract.Context) []extract.Candidate {
			var out []extract.Candidate
			for _, line := range strings.Split(text, "\n") {
				parts := strings.Fields(line)

				actionIdx := -1
				side := domain.SideBuy
				for i, part := range parts {
					switch strings.ToLower(part) {
					case "buy":
						actionIdx = i
					case "sell":
						actionIdx = i
						side = domain.SideSell
					}
					if actionIdx >= 0 {
						break
					}
				}
				if actionIdx < 1 {
					continue
				}

				sym := parts[0]
				if !symbolShape.MatchString(sym) || symbol.Blacklisted(sym) {
					continue
				}
				name := strings.Join(parts[1:actionIdx], " ")

				var (
					numbers   []decimal.Decimal
					tradeDate *time.Time
				)
				for _, part := range parts[actionIdx+1:] {
					if dateShape.MatchString(part) {
						if tradeDate == nil {
							tradeDate = docmeta.USDate(part)
						}
						continue
					}
					clean := strings.ReplaceAll(part, ",", "")
					if !numberShape.MatchString(clean) {
						continue
					}
					if v, err := decimal.NewFromString(clean); err == nil {
						numbers = append(numbers, v)
					}
				}
				if len(numbers) < 2 {
					continue
				}

				qty, price := numbers[0], numbers[1]
				out = append(out, extract.Candidate{
					Symbol:    sym,
					Name:      name,
					Side:      side,
					Quantity:  qty,
					Price:     price,
					Total:     qty.Mul(price),
					TradeDate: tradeDate,
				})
			}
			return out
		},
	}
}

// confirmationRows is the tabular fallback: a leading ticker cell, an action
// word somewhere in the row, quantity and price as the first two numbers.
func confirmationRows() extract.Strategy {
	return extract.Strategy{
		Name: "confirmation-rows",
		Run: func(_ string, tables []domain.TableGrid, ctx extract.Context) []extract.Candidate {
			var out []extract.Candidate
			for _, table := range tables {
				for _, row := range table {
					rowText := extract.RowText(row)
					lower := strings.ToLower(rowText)
					if !actionWord.MatchString(lower) {
						continue
					}

					m := rowLeading.FindStringSubmatch(rowText)
					if m == nil || symbol.Blacklisted(m[1]) {
						continue
					}
					sym := m[1]

					scanText := slashDate.ReplaceAllString(rowText, " ")
					var numbers []decimal.Decimal
					for _, v := range numfmt.ScanAll(extract.StripSymbol(scanText, sym), ctx.Locale) {
						if v.IsPositive() {
							numbers = append(numbers, v)
						}
					}
					if len(numbers) < 2 {
						continue
					}

					side := domain.SideBuy
					if strings.Contains(lower, "sell") {
						side = domain.SideSell
					}
					qty, price := numbers[0], numbers[1]
					out = append(out, extract.Candidate{
						Symbol:   sym,
						Side:     side,
						Quantity: qty,
						Price:    price,
						Total:    qty.Mul(price),
					})
				}
			}
			return out
		},
	}
}
