package calculator

import (
	"fmt"
	"strings"

	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitGrams     Unit = "grams"
	UnitKilograms Unit = "kilograms"
)

type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
)

// Input is one cost calculation. Weight and PricePerGram are non-negative;
// zero is a valid input and yields a zero total.
type Input struct {
	Weight       decimal.Decimal
	Unit         Unit
	PricePerGram decimal.Decimal
	Currency     Currency
}

var gramsPerKg = decimal.NewFromInt(constants.GramsPerKilogram)

// Cost returns the total in the requested currency. inrPerUSD is the fixed
// conversion rate, INR per one USD. No rounding is applied here; the
// display layer formats.
func Cost(in Input, inrPerUSD decimal.Decimal) (decimal.Decimal, error) {
	if in.Weight.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative weight %s", in.Weight)
	}
	if in.PricePerGram.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %s", in.PricePerGram)
	}

	grams := in.Weight
	switch in.Unit {
	case UnitGrams:
	case UnitKilograms:
		grams = grams.Mul(gramsPerKg)
	default:
		return decimal.Zero, fmt.Errorf("unknown unit %q", in.Unit)
	}

	total := grams.Mul(in.PricePerGram)

	switch in.Currency {
	case CurrencyINR:
		return total, nil
	case CurrencyUSD:
		if inrPerUSD.IsZero() {
			return decimal.Zero, fmt.Errorf("zero conversion rate")
		}
		return total.Div(inrPerUSD), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown currency %q", in.Currency)
	}
}

// Format renders a total as "{currency} {value}" with thousands separators
// and two decimals, e.g. "INR 1,234.50".
func Format(c Currency, total decimal.Decimal) string {
	fixed := total.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%s.%s", c, sign, b.String(), frac)
}
