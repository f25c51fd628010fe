// Package parsers exposes the document-family adapters behind one interface
// and a name-keyed factory.
package parsers

import (
	"fmt"

	"github.com/grahamfi/noteparse/internal/domain"
)

// Family names accepted by the factory.
const (
	FamilyBrazilNote  = "br-nota"
	FamilyIBKR        = "ibkr"
	FamilyInterGlobal = "inter-global"
	FamilyAvenue      = "avenue"
	FamilyGeneric     = "generic"
)

// Families lists the supported family names in factory order.
func Families() []string {
	return []string{FamilyBrazilNote, FamilyIBKR, FamilyInterGlobal, FamilyAvenue, FamilyGeneric}
}

// Request carries one decoded document through a parse.
type Request struct {
	Document domain.Document
	// Password is what the caller supplied for an encrypted document. The
	// engine does not decrypt; it only reports whether one was given.
	Password string
	// Debug asks for the raw-text echo in the result.
	Debug bool
}

// Parser turns a decoded document into an extraction result. Parse never
// returns an error: every recoverable problem becomes a failed result
// carrying warnings.
type Parser interface {
	Parse(req Request) domain.ExtractionResult
}

type parserFunc func(req Request) domain.ExtractionResult

func (f parserFunc) Parse(req Request) domain.ExtractionResult { return f(req) }

// recoverable converts a panic inside a strategy into a failed result so a
// malformed document cannot take the process down.
func recoverable(p Parser) Parser {
	return parserFunc(func(req Request) (res domain.ExtractionResult) {
		defer func() {
			if r := recover(); r != nil {
				res = domain.Failure(fmt.Sprintf("parser panic: %v", r))
			}
		}()
		return p.Parse(req)
	})
}
