package numfmt

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/grahamfi/noteparse/internal/domain"
)

// Property: for any value v, the Brazilian rendering (thousands periods,
// decimal comma) and the US rendering (thousands commas, decimal period)
// both normalize back to v exactly.

func groupThousands(units int64, sep string) string {
	digits := strconv.FormatInt(units, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return strings.Join(groups, sep)
}

func TestParse_RoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("brazilian rendering round-trips", prop.ForAll(
		func(units int64, cents int) bool {
			want := decimal.NewFromInt(units).Add(decimal.New(int64(cents), -2))
			token := fmt.Sprintf("%s,%02d", groupThousands(units, "."), cents)
			got, ok := Parse(token, domain.LocaleBR)
			return ok && got.Equal(want)
		},
		gen.Int64Range(0, 999_999_999),
		gen.IntRange(0, 99),
	))

	properties.Property("us rendering round-trips", prop.ForAll(
		func(units int64, cents int) bool {
			want := decimal.NewFromInt(units).Add(decimal.New(int64(cents), -2))
			token := fmt.Sprintf("%s.%02d", groupThousands(units, ","), cents)
			got, ok := Parse(token, domain.LocaleUS)
			return ok && got.Equal(want)
		},
		gen.Int64Range(0, 999_999_999),
		gen.IntRange(0, 99),
	))

	properties.Property("negative values keep their magnitude", prop.ForAll(
		func(units int64, cents int) bool {
			want := decimal.NewFromInt(units).Add(decimal.New(int64(cents), -2)).Neg()
			token := fmt.Sprintf("-%s,%02d", groupThousands(units, "."), cents)
			got, ok := Parse(token, domain.LocaleBR)
			return ok && got.Equal(want)
		},
		gen.Int64Range(1, 999_999_999),
		gen.IntRange(0, 99),
	))

	properties.TestingRun(t)
}
