// Package symbol resolves trade symbols from text fragments, either by
// regional ticker grammar or by free-text security-name lookup.
package symbol

import (
	"regexp"
	"strings"

	"github.com/grahamfi/noteparse/pkg/textfold"
)

var (
	// brGrammar matches Brazilian tickers: 4-6 letters, 1-2 digits, optional
	// fractional-lot F suffix (PETR4, VALE3, TAEE11, PETR4F).
	brGrammar = regexp.MustCompile(`\b[A-Z]{4,6}\d{1,2}F?\b`)
	// usGrammar matches US tickers: 1-5 uppercase letters.
	usGrammar = regexp.MustCompile(`\b[A-Z]{1,5}\b`)
)

// NameMapping maps a folded security-name substring to a canonical symbol.
// Order matters: the first pattern contained in the fragment wins.
type NameMapping struct {
	Pattern string `yaml:"pattern"`
	Symbol  string `yaml:"symbol"`
}

// Resolver identifies trade symbols in text fragments.
type Resolver struct {
	grammar  *regexp.Regexp
	nameMap  []NameMapping
	excluded map[string]struct{}
}

// NewBrazilResolver builds a resolver for the Brazilian ticker grammar and
// the curated issuer-name list. Extra mappings are consulted after the
// built-in ones.
func NewBrazilResolver(extra ...NameMapping) *Resolver {
	return &Resolver{
		grammar:  brGrammar,
		nameMap:  append(append([]NameMapping{}, brazilNameMap...), extra...),
		excluded: blacklist,
	}
}

// NewUSResolver builds a resolver for the US ticker grammar. US documents
// carry symbols directly, so no name list is wired.
func NewUSResolver() *Resolver {
	return &Resolver{
		grammar:  usGrammar,
		excluded: blacklist,
	}
}

// Resolve returns the symbol found in fragment, trying the ticker grammar
// first and the name list second. Grammar matches present in the blacklist
// are discarded and scanning continues with later matches.
func (r *Resolver) Resolve(fragment string) (string, bool) {
	if sym, ok := r.GrammarMatch(fragment); ok {
		return sym, true
	}
	return r.NameLookup(fragment)
}

// GrammarMatch returns the first non-blacklisted grammar match in fragment.
func (r *Resolver) GrammarMatch(fragment string) (string, bool) {
	for _, m := range r.grammar.FindAllString(fragment, -1) {
		if _, bad := r.excluded[m]; bad {
			continue
		}
		return m, true
	}
	return "", false
}

// NameLookup maps a free-text security name to its canonical symbol. The
// name list is an ordered slice, so the tie-break between overlapping names
// is a property of the data.
func (r *Resolver) NameLookup(fragment string) (string, bool) {
	folded := textfold.Fold(fragment)
	for _, m := range r.nameMap {
		if m.Pattern != "" && strings.Contains(folded, textfold.Fold(m.Pattern)) {
			return m.Symbol, true
		}
	}
	return "", false
}
