package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExtractionResult is the unit returned to the caller for one document.
// Family parsers always return a value, never an error: total failure is
// Success=false plus a descriptive warning.
type ExtractionResult struct {
	Success      bool            `json:"success"`
	Source       string          `json:"source,omitempty"`
	DocumentDate *time.Time      `json:"document_date,omitempty"`
	DocumentRef  string          `json:"document_ref,omitempty"`
	Operations   []Operation     `json:"operations"`
	Fees         *FeeBreakdown   `json:"fees,omitempty"`
	NetValue     decimal.Decimal `json:"net_value"`
	Currency     string          `json:"currency"`
	// RawText echoes the first part of the input text when debug is requested.
	RawText string `json:"raw_text,omitempty"`
	// ParseID correlates log lines with this result.
	ParseID  string   `json:"parse_id,omitempty"`
	Warnings []string `json:"warnings"`
}

// Failure builds a failed result carrying the given warnings.
func Failure(warnings ...string) ExtractionResult {
	return ExtractionResult{
		Success:  false,
		Warnings: warnings,
	}
}
