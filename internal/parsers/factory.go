package parsers

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/grahamfi/noteparse/config"
	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/parsers/avenue"
	"github.com/grahamfi/noteparse/internal/parsers/brnota"
	"github.com/grahamfi/noteparse/internal/parsers/generic"
	"github.com/grahamfi/noteparse/internal/parsers/ibkr"
	"github.com/grahamfi/noteparse/internal/parsers/interglobal"
)

// Get builds the parser for a family name. The returned parser recovers from
// strategy panics, turning them into failed results.
func Get(family string, logger *zap.Logger, cfg config.Config) (Parser, error) {
	switch family {
	case FamilyBrazilNote:
		return wrap(brnota.New(logger, cfg).Parse), nil
	case FamilyIBKR:
		return wrap(ibkr.New(logger, cfg).Parse), nil
	case FamilyInterGlobal:
		return wrap(interglobal.New(logger, cfg).Parse), nil
	case FamilyAvenue:
		return wrap(avenue.New(logger, cfg).Parse), nil
	case FamilyGeneric:
		return wrap(generic.New(logger, cfg).Parse), nil
	default:
		return nil, errors.Errorf("unknown parser family %q", family)
	}
}

func wrap(parse func(domain.Document, string, bool) domain.ExtractionResult) Parser {
	return recoverable(parserFunc(func(req Request) domain.ExtractionResult {
		return parse(req.Document, req.Password, req.Debug)
	}))
}
