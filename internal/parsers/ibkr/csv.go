package ibkr

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/services/aggregate"
	"github.com/grahamfi/noteparse/internal/services/asset"
	"github.com/grahamfi/noteparse/internal/services/numfmt"
)

// Column name variants across the activity and Flex export flavors.
var (
	symbolCols = []string{"symbol"}
	qtyCols    = []string{"quantity", "qty"}
	priceCols  = []string{"t. price", "trade price", "price"}
	amountCols = []string{"proceeds", "amount", "trade money"}
	commCols   = []string{"comm/fee", "commission", "comm in usd", "ibcommission"}
	dateCols   = []string{"date/time", "tradedate", "trade date", "date"}
	classCols  = []string{"asset category", "assetclass", "asset class"}
)

var csvDateLayouts = []string{"2006-01-02", "20060102", "01/02/2006", "1/2/2006"}

type columns struct {
	symbol, qty, price, amount, comm, date, class int
}

// ParseCSV reads a trades CSV export. Header names differ between export
// flavors, so columns are located by name against a variant list, and rows
// from other statement sections are skipped. Unreadable rows become warnings,
// never errors.
func (p *Parser) ParseCSV(r io.Reader) domain.ExtractionResult {
	parseID := uuid.NewString()
	logger := p.logger.With(zap.String("parse_id", parseID), zap.String("family", family))

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		res := domain.Failure("could not read csv: " + err.Error())
		res.ParseID = parseID
		return res
	}

	headerIdx, cols := locateHeader(records)
	if headerIdx < 0 {
		res := domain.Failure("no trades header row found in csv")
		res.ParseID = parseID
		return res
	}
	header := records[headerIdx]
	// activity exports prefix every record with its section name
	sectioned := fold(header[0]) == "trades"

	var (
		ops       []domain.Operation
		warnings  []string
		brokerage decimal.Decimal
		docDate   *time.Time
	)
	for i, rec := range records[headerIdx+1:] {
		rowNum := headerIdx + i + 2

		if sectioned && (cell(rec, 0) != header[0] || fold(cell(rec, 1)) != "data") {
			continue
		}

		sym := cell(rec, cols.symbol)
		if !isSymbol(sym) {
			continue
		}

		qtyTok := cell(rec, cols.qty)
		qty, ok := numfmt.Parse(qtyTok, domain.LocaleUS)
		if !ok || qty.IsZero() {
			warnings = append(warnings, fmt.Sprintf("csv row %d skipped: unreadable quantity %q", rowNum, qtyTok))
			continue
		}
		side := domain.SideBuy
		if qty.IsNegative() {
			side = domain.SideSell
		}
		qty = qty.Abs()

		price, _ := numfmt.Parse(cell(rec, cols.price), domain.LocaleUS)
		price = price.Abs()
		amount, _ := numfmt.Parse(cell(rec, cols.amount), domain.LocaleUS)
		total := amount.Abs()
		if !price.IsPositive() && !total.IsPositive() {
			warnings = append(warnings, fmt.Sprintf("csv row %d skipped: no price or proceeds", rowNum))
			continue
		}
		if !price.IsPositive() {
			price = total.Div(qty).Round(2)
		}
		if !total.IsPositive() {
			total = qty.Mul(price)
		}

		op, err := domain.NewOperation(sym, side, qty, price, total, currency)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("csv row %d skipped: %v", rowNum, err))
			continue
		}
		op.AssetKind = asset.Classify(sym, cell(rec, cols.class))
		if d := parseCSVDate(cell(rec, cols.date)); d != nil {
			op.TradeDate = d
			if docDate == nil {
				docDate = d
			}
		}
		ops = append(ops, op)

		if comm, okComm := numfmt.Parse(cell(rec, cols.comm), domain.LocaleUS); okComm {
			brokerage = brokerage.Add(comm.Abs())
		}
	}

	logger.Info("csv parsed", zap.Int("operations", len(ops)), zap.Int("skipped", len(warnings)))

	if len(ops) == 0 {
		warnings = append(warnings, "no trades found in the statement")
	}

	breakdown := domain.FeeBreakdown{Brokerage: brokerage}
	breakdown.Total = breakdown.Sum()

	res := aggregate.Build(aggregate.Input{
		Source:       signatures.Label,
		SourceKnown:  true,
		DocumentDate: docDate,
		Operations:   ops,
		Fees:         &breakdown,
		Currency:     currency,
		Convention:   p.convention,
		Warnings:     warnings,
	})
	res.ParseID = parseID
	return res
}

// locateHeader returns the first record naming both a symbol and a quantity
// column, with the resolved column indexes.
func locateHeader(records [][]string) (int, columns) {
	for i, rec := range records {
		cols := columns{
			symbol: findColumn(rec, symbolCols),
			qty:    findColumn(rec, qtyCols),
			price:  findColumn(rec, priceCols),
			amount: findColumn(rec, amountCols),
			comm:   findColumn(rec, commCols),
			date:   findColumn(rec, dateCols),
			class:  findColumn(rec, classCols),
		}
		if cols.symbol >= 0 && cols.qty >= 0 {
			return i, cols
		}
	}
	return -1, columns{}
}

func findColumn(rec []string, names []string) int {
	for i, c := range rec {
		folded := fold(c)
		for _, name := range names {
			if folded == name {
				return i
			}
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isSymbol accepts plain uppercase tickers, optionally with digits or a
// class dot (BRK.B). Section labels like "Total" are mixed case and fail.
func isSymbol(s string) bool {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == ' ':
		default:
			return false
		}
	}
	return true
}

// parseCSVDate reads the date part of a "2023-03-15, 10:30:05" style cell.
func parseCSVDate(s string) *time.Time {
	datePart := strings.TrimSpace(strings.SplitN(s, ",", 2)[0])
	if datePart == "" {
		return nil
	}
	for _, layout := range csvDateLayouts {
		if d, err := time.Parse(layout, datePart); err == nil {
			return &d
		}
	}
	return nil
}
