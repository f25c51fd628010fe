// Package avenue parses Avenue Securities (Apex clearing) trade confirmations.
package avenue

import (
	"regexp"
	"sort"
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
	"github.com/grahamfi/noteparse/internal/services/source"
	"github.com/grahamfi/noteparse/internal/services/symbol"
)

const (
	family   = "avenue"
	currency = "USD"
)

var signatures = source.SignatureSet{
	Label:      "Avenue",
	Signatures: []string{"avenue securities", "avenue", "apex clearing"},
}

var (
	symbolShape = regexp.MustCompile(`^[A-Z]{1,5}$`)
	fracNumber  = regexp.MustCompile(`^\d+\.\d+$`)
	anyNumber   = regexp.MustCompile(`^\d+\.?\d*$`)
	dateShape   = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
)

// Parser extracts trades from Avenue confirmations. Rows mark the side with a
// bare B or S column and commonly carry fractional quantities. Success is
// strict.
type Parser struct {
	logger     *zap.Logger
	cfg        config.Config
	identifier *source.Identifier
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
	date := docmeta.LabeledUSDate(doc.Text, "current trade date", "processdate", "process date")

	candidates, winner := extract.NewChain(confirmationLines()).Run(doc.Text, doc.Tables, extract.Context{
		Locale: domain.LocaleUS,
		Logger: logger,
	})

	ops := aggregate.OperationsFromCandidates(candidates, currency, date)

	logger.Info("confirmation parsed",
		zap.String("strategy", winner),
		zap.Int("operations", len(ops)))

	var warnings []string
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

// confirmationLines reads the positional confirmation layout. After the B/S
// marker come the trade and settlement dates, then either
//
//	0.42810 AMZN 203.69 ...    (quantity first)
//	AMZN 0.42810 203.69 ...    (symbol first)
//
// The first date is the trade date.
func confirmationLines() extract.Strategy {
	return extract.Strategy{
		Name: "confirmation-lines",
		Run: func(text string, _ []domain.TableGrid, _ extract.Context) []extract.Candidate {
			var out []extract.Candidate
			for _, line := range strings.Split(text, "\n") {
				parts := strings.Fields(line)

				sideIdx := -1
				side := domain.SideBuy
				for i, part := range parts {
					if part == "B" {
						sideIdx = i
					} else if part == "S" {
						sideIdx = i
						side = domain.SideSell
					}
					if sideIdx >= 0 {
						break
					}
				}
				if sideIdx < 0 {
					continue
				}

				var tradeDate *time.Time
				dataParts := parts[sideIdx+1:]
				for len(dataParts) > 0 && dateShape.MatchString(dataParts[0]) {
					if tradeDate == nil {
						tradeDate = docmeta.USDate(dataParts[0])
					}
					dataParts = dataParts[1:]
				}

				sym, qty, price, ok := readTrade(dataParts)
				if !ok {
					continue
				}

				out = append(out, extract.Candidate{
					Symbol:    sym,
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

// readTrade extracts symbol, quantity and price from the part of a row after
// the side and date columns.
func readTrade(parts []string) (string, decimal.Decimal, decimal.Decimal, bool) {
	if len(parts) < 3 {
		return "", decimal.Zero, decimal.Zero, false
	}

	// quantity-first layout: a fractional number right before the symbol
	if fracNumber.MatchString(parts[0]) && validSymbol(parts[1]) {
		qty, err := decimal.NewFromString(parts[0])
		if err != nil {
			return "", decimal.Zero, decimal.Zero, false
		}
		for _, part := range parts[2:] {
			if price, ok := readNumber(part); ok {
				return parts[1], qty, price, true
			}
		}
		return "", decimal.Zero, decimal.Zero, false
	}

	// symbol-first layout: sort the remaining numbers, smallest is the
	// fractional quantity, the next one above a dollar is the price
	if !validSymbol(parts[0]) {
		return "", decimal.Zero, decimal.Zero, false
	}
	var numbers []decimal.Decimal
	for _, part := range parts[1:] {
		if v, ok := readNumber(part); ok {
			numbers = append(numbers, v)
		}
	}
	if len(numbers) < 2 {
		return "", decimal.Zero, decimal.Zero, false
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i].LessThan(numbers[j]) })

	qty := numbers[0]
	price := numbers[len(numbers)-1]
	if numbers[1].GreaterThan(decimal.NewFromInt(1)) {
		price = numbers[1]
	}
	return parts[0], qty, price, true
}

func validSymbol(s string) bool {
	return symbolShape.MatchString(s) && !symbol.Blacklisted(s)
}

func readNumber(part string) (decimal.Decimal, bool) {
	clean := strings.ReplaceAll(part, ",", "")
	if !anyNumber.MatchString(clean) {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
