// Package brnota parses Brazilian brokerage notes (notas de corretagem)
// issued by B3 brokers such as Clear, XP and Rico.
package brnota

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grahamfi/noteparse/config"
	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/aggregate"
	"github.com/grahamfi/noteparse/internal/services/docmeta"
	"github.com/grahamfi/noteparse/internal/services/extract"
	"github.com/grahamfi/noteparse/internal/services/fees"
	"github.com/grahamfi/noteparse/internal/services/source"
	"github.com/grahamfi/noteparse/internal/services/symbol"
)

const (
	family   = "br-nota"
	currency = "BRL"
)

// Parser extracts trades from Brazilian brokerage notes. Success is lenient:
// a note that parses cleanly but yields no trades still succeeds, with a
// warning.
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
		identifier: source.NewBrazilIdentifier(cfg.ExtraSignatures...),
		resolver:   symbol.NewBrazilResolver(cfg.ExtraNameMap...),
		fees:       fees.NewBrazilExtractor(),
		convention: cfg.ConventionFor(family, aggregate.FeesIncluded),
	}
}

func (p *Parser) Parse(doc domain.Document, password string, debug bool) domain.ExtractionResult {
	parseID := uuid.NewString()
	logger := p.logger.With(zap.String("parse_id", parseID), zap.String("family", family))

	if doc.Encrypted {
		logger.Warn("document is password protected")
		res := domain.Failure(encryptedWarning(password))
		res.ParseID = parseID
		return res
	}

	label, known := p.identifier.Identify(doc.Text)
	date := docmeta.BrazilNoteDate(doc.Text)
	ref := docmeta.NoteNumber(doc.Text)

	candidates, winner := p.chainFor(label, doc.Text).Run(doc.Text, doc.Tables, extract.Context{
		Locale:   domain.LocaleBR,
		Resolver: p.resolver,
		Logger:   logger,
	})

	ops := aggregate.OperationsFromCandidates(candidates, currency, date)
	breakdown := p.fees.Extract(doc.Text)

	logger.Info("note parsed",
		zap.String("source", label),
		zap.String("strategy", winner),
		zap.Int("operations", len(ops)))

	var warnings []string
	if len(ops) == 0 {
		warnings = append(warnings, "no operations could be extracted")
	}

	res := aggregate.Build(aggregate.Input{
		Source:       label,
		SourceKnown:  known,
		DocumentDate: date,
		DocumentRef:  ref,
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

// chainFor orders the strategies for the note at hand. Rico notes (and any
// note carrying the bovespa market column) lead with the name-row layout,
// everything else starts at the tabular workhorse.
func (p *Parser) chainFor(label, text string) *extract.Chain {
	if label == "Rico" || strings.Contains(strings.ToLower(text), "bovespa") {
		return extract.NewChain(extract.NameRows(), extract.TableRows(), extract.TextLines())
	}
	return extract.NewChain(extract.TableRows(), extract.TextLines())
}

func encryptedWarning(password string) string {
	if password == "" {
		return "document is password protected; brokers commonly use the holder's CPF digits as the passphrase"
	}
	return "the supplied password did not open the document"
}
