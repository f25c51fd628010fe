// Package generic is the fallback family for documents no dedicated parser
// claims: it sniffs the currency, tries both ticker grammars and reads
// numbers with per-token separator detection. Results always carry a
// low-confidence warning.
package generic

import (
	"strings"

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

const family = "generic"

// WarnLowConfidence marks every generic result.
const WarnLowConfidence = "parsed with the generic fallback; verify the extracted values"

// maxPlausibleQuantity separates share counts from money amounts when a row
// starts with a large number.
var maxPlausibleQuantity = decimal.NewFromInt(10000)

// relative tolerance before a stated total is recomputed
var totalTolerance = decimal.RequireFromString("0.1")

// Parser is the last-resort extractor. Success is strict.
type Parser struct {
	logger     *zap.Logger
	cfg        config.Config
	identifier *source.Identifier
	brResolver *symbol.Resolver
	usResolver *symbol.Resolver
	convention aggregate.FeeConvention
}

func New(logger *zap.Logger, cfg config.Config) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		logger:     logger,
		cfg:        cfg,
		identifier: source.NewBrazilIdentifier(cfg.ExtraSignatures...),
		brResolver: symbol.NewBrazilResolver(cfg.ExtraNameMap...),
		usResolver: symbol.NewUSResolver(),
		convention: cfg.ConventionFor(family, aggregate.FeesExcluded),
	}
}

func (p *Parser) Parse(doc domain.Document, password string, debug bool) domain.ExtractionResult {
	parseID := uuid.NewString()
	logger := p.logger.With(zap.String("parse_id", parseID), zap.String("family", family))

	if doc.Encrypted {
		logger.Warn("document is password protected")
		res := domain.Failure(WarnLowConfidence, "document is password protected")
		res.ParseID = parseID
		return res
	}

	currency := sniffCurrency(doc.Text)
	label, known := p.identifier.Identify(doc.Text)
	date := docmeta.GenericDate(doc.Text)

	locale := domain.LocaleBR
	if currency == "USD" {
		locale = domain.LocaleUS
	}

	candidates, winner := extract.NewChain(p.dualGrammarRows(), extract.TextLines()).Run(doc.Text, doc.Tables, extract.Context{
		Locale:   locale,
		Resolver: p.brResolver,
		Logger:   logger,
	})

	ops := aggregate.OperationsFromCandidates(candidates, currency, date)

	logger.Info("document parsed",
		zap.String("strategy", winner),
		zap.String("currency", currency),
		zap.Int("operations", len(ops)))

	warnings := []string{WarnLowConfidence}
	if len(ops) == 0 {
		warnings = append(warnings, "no operations could be extracted")
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

// sniffCurrency guesses the document currency: dollar markers without a
// Brazilian R$ mean USD, everything else defaults to BRL.
func sniffCurrency(text string) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "r$") {
		return "BRL"
	}
	if strings.Contains(lower, "usd") || strings.Contains(lower, "$") {
		return "USD"
	}
	return "BRL"
}

// dualGrammarRows scans table rows with the Brazilian grammar first and the
// US grammar second, reading numbers with per-token separator detection so
// mixed-format documents still parse. Tables shorter than two rows are
// ignored as decoration.
func (p *Parser) dualGrammarRows() extract.Strategy {
	return extract.Strategy{
		Name: "dual-grammar-rows",
		Run: func(_ string, tables []domain.TableGrid, _ extract.Context) []extract.Candidate {
			var out []extract.Candidate
			for _, table := range tables {
				if len(table) < 2 {
					continue
				}
				for _, row := range table {
					rowText := extract.RowText(row)
					if rowText == "" {
						continue
					}

					sym, ok := p.brResolver.GrammarMatch(rowText)
					if !ok {
						sym, ok = p.usResolver.GrammarMatch(rowText)
					}
					if !ok {
						continue
					}

					var values []decimal.Decimal
					for _, v := range numfmt.ScanAllAuto(extract.StripSymbol(rowText, sym)) {
						values = append(values, v.Abs())
					}
					if len(values) < 2 {
						continue
					}

					qty := values[0]
					if qty.GreaterThanOrEqual(maxPlausibleQuantity) {
						qty = decimal.NewFromInt(1)
					}
					price := values[1]
					total := qty.Mul(price)
					if len(values) >= 3 {
						total = values[len(values)-1]
					}
					if !plausibleTotal(qty, price, total) {
						total = qty.Mul(price)
					}

					out = append(out, extract.Candidate{
						Symbol:   sym,
						Side:     extract.SideFromText(rowText),
						Quantity: qty,
						Price:    price,
						Total:    total,
					})
				}
			}
			return out
		},
	}
}

func plausibleTotal(qty, price, total decimal.Decimal) bool {
	if !total.IsPositive() {
		return false
	}
	base := total
	if base.LessThan(decimal.NewFromInt(1)) {
		base = decimal.NewFromInt(1)
	}
	return total.Sub(qty.Mul(price)).Abs().Div(base).LessThanOrEqual(totalTolerance)
}
