// Package source classifies which institution produced a document by
// scanning for known substring signatures.
package source

import "strings"

// Unknown is returned when no signature matches.
const Unknown = ""

// SignatureSet couples an institution label with its lowercase text signatures.
type SignatureSet struct {
	Label      string   `yaml:"label"`
	Signatures []string `yaml:"signatures"`
}

// brazilSignatures identifies Brazilian brokerage houses. Ordered: the first
// label whose any signature appears in the lowercased text wins.
var brazilSignatures = []SignatureSet{
	{Label: "Clear", Signatures: []string{"clear corretora", "clear s.a", "clear ctvm", "clear -"}},
	{Label: "XP", Signatures: []string{"xp investimentos", "xp cctvm", "xp s.a.", "xp s/a"}},
	{Label: "Rico", Signatures: []string{"rico investimentos", "rico ctvm", "rico s.a", "rico -", "rico s/a", "riconnect", "rico corretora"}},
	{Label: "BTG Pactual", Signatures: []string{"btg pactual", "btg ctvm"}},
	{Label: "Nuinvest", Signatures: []string{"nuinvest", "easynvest"}},
	{Label: "Inter", Signatures: []string{"inter dtvm", "banco inter", "inter invest", "inter s.a", "intermedium"}},
	{Label: "Genial", Signatures: []string{"genial investimentos"}},
	{Label: "Modal", Signatures: []string{"modal dtvm"}},
	{Label: "Ágora", Signatures: []string{"agora ctvm", "ágora"}},
}

// Identifier matches document text against an ordered signature list.
type Identifier struct {
	sets []SignatureSet
}

// NewBrazilIdentifier builds an identifier for Brazilian brokers. Extra sets
// are consulted after the built-in ones.
func NewBrazilIdentifier(extra ...SignatureSet) *Identifier {
	return &Identifier{sets: append(append([]SignatureSet{}, brazilSignatures...), extra...)}
}

// NewIdentifier builds an identifier over the given sets only.
func NewIdentifier(sets ...SignatureSet) *Identifier {
	return &Identifier{sets: sets}
}

// Identify returns the label of the first institution whose any signature is
// a substring of the lowercased text, or Unknown.
func (i *Identifier) Identify(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, set := range i.sets {
		for _, sig := range set.Signatures {
			if sig != "" && strings.Contains(lower, sig) {
				return set.Label, true
			}
		}
	}
	return Unknown, false
}
