// Package docmeta extracts document-level metadata: trade/note dates and
// note numbers, per locale conventions.
package docmeta

import (
	"regexp"
	"time"

	"github.com/grahamfi/noteparse/pkg/textfold"
)

var (
	brazilDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`data pregao[:\s]*(\d{2}/\d{2}/\d{4})`),
		regexp.MustCompile(`data do pregao[:\s]*(\d{2}/\d{2}/\d{4})`),
		regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`),
	}

	noteNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`nr\.\s*nota[:\s]*(\d+)`),
		regexp.MustCompile(`nota[:\s]*(\d+)`),
		regexp.MustCompile(`numero[:\s]*(\d+)`),
	}

	usDateToken = `(\d{1,2}/\d{1,2}/\d{2,4})`

	genericDatePatterns = []struct {
		re     *regexp.Regexp
		layout string
	}{
		{regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`), "02/01/2006"},
		{regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), "2006-01-02"},
	}
)

// BrazilNoteDate finds the trading-session date of a Brazilian note,
// preferring explicitly labeled dates over the first bare dd/mm/yyyy.
func BrazilNoteDate(text string) *time.Time {
	folded := textfold.Fold(text)
	for _, re := range brazilDatePatterns {
		m := re.FindStringSubmatch(folded)
		if m == nil {
			continue
		}
		if d, err := time.Parse("02/01/2006", m[1]); err == nil {
			return &d
		}
	}
	return nil
}

// NoteNumber finds the brokerage note number, or "" when absent.
func NoteNumber(text string) string {
	folded := textfold.Fold(text)
	for _, re := range noteNumberPatterns {
		if m := re.FindStringSubmatch(folded); m != nil {
			return m[1]
		}
	}
	return ""
}

// LabeledUSDate finds a mm/dd date following any of the given labels,
// accepting two- and four-digit years. Labels are matched folded.
func LabeledUSDate(text string, labels ...string) *time.Time {
	folded := textfold.Fold(text)
	for _, label := range labels {
		re, err := regexp.Compile(regexp.QuoteMeta(textfold.Fold(label)) + `[:\s]*` + usDateToken)
		if err != nil {
			continue
		}
		m := re.FindStringSubmatch(folded)
		if m == nil {
			continue
		}
		if d := parseUSDate(m[1]); d != nil {
			return d
		}
	}
	return nil
}

// USDate parses a bare mm/dd/yy or mm/dd/yyyy token.
func USDate(token string) *time.Time {
	return parseUSDate(token)
}

func parseUSDate(token string) *time.Time {
	for _, layout := range []string{"1/2/2006", "1/2/06"} {
		if d, err := time.Parse(layout, token); err == nil {
			return &d
		}
	}
	return nil
}

// GenericDate finds the first dd/mm/yyyy or yyyy-mm-dd date in text.
func GenericDate(text string) *time.Time {
	for _, p := range genericDatePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if d, err := time.Parse(p.layout, m[1]); err == nil {
			return &d
		}
	}
	return nil
}
