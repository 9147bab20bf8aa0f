package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rate = decimal.NewFromFloat(83.0)

func TestCost_ZeroInputsYieldZero(t *testing.T) {
	for _, in := range []Input{
		{Weight: decimal.Zero, Unit: UnitGrams, PricePerGram: decimal.NewFromInt(75), Currency: CurrencyINR},
		{Weight: decimal.NewFromInt(10), Unit: UnitGrams, PricePerGram: decimal.Zero, Currency: CurrencyINR},
		{Weight: decimal.Zero, Unit: UnitKilograms, PricePerGram: decimal.Zero, Currency: CurrencyUSD},
	} {
		total, err := Cost(in, rate)
		require.NoError(t, err)
		assert.True(t, total.IsZero(), "expected zero total for %+v", in)
	}
}

func TestCost_ScalesLinearlyWithWeightAndPrice(t *testing.T) {
	base := Input{Weight: decimal.NewFromInt(10), Unit: UnitGrams, PricePerGram: decimal.NewFromInt(75), Currency: CurrencyINR}

	total, err := Cost(base, rate)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(750)))

	doubleWeight := base
	doubleWeight.Weight = base.Weight.Mul(decimal.NewFromInt(2))
	doubled, err := Cost(doubleWeight, rate)
	require.NoError(t, err)
	assert.True(t, doubled.Equal(total.Mul(decimal.NewFromInt(2))))

	doublePrice := base
	doublePrice.PricePerGram = base.PricePerGram.Mul(decimal.NewFromInt(2))
	doubled, err = Cost(doublePrice, rate)
	require.NoError(t, err)
	assert.True(t, doubled.Equal(total.Mul(decimal.NewFromInt(2))))
}

func TestCost_UnitConversion(t *testing.T) {
	price := decimal.NewFromInt(75)

	asKg, err := Cost(Input{Weight: decimal.NewFromInt(1), Unit: UnitKilograms, PricePerGram: price, Currency: CurrencyINR}, rate)
	require.NoError(t, err)

	asGrams, err := Cost(Input{Weight: decimal.NewFromInt(1000), Unit: UnitGrams, PricePerGram: price, Currency: CurrencyINR}, rate)
	require.NoError(t, err)

	assert.True(t, asKg.Equal(asGrams), "1 kg should cost the same as 1000 g")
}

func TestCost_CurrencyConversion(t *testing.T) {
	in := Input{Weight: decimal.NewFromInt(830), Unit: UnitGrams, PricePerGram: decimal.NewFromInt(100), Currency: CurrencyINR}

	inr, err := Cost(in, rate)
	require.NoError(t, err)

	in.Currency = CurrencyUSD
	usd, err := Cost(in, rate)
	require.NoError(t, err)

	assert.True(t, usd.Equal(inr.Div(rate)), "USD total should be the INR total divided by the rate")
	assert.True(t, usd.Equal(decimal.NewFromInt(1000)))
}

func TestCost_RejectsNegativeAndUnknownInputs(t *testing.T) {
	_, err := Cost(Input{Weight: decimal.NewFromInt(-1), Unit: UnitGrams, PricePerGram: decimal.Zero, Currency: CurrencyINR}, rate)
	assert.Error(t, err)

	_, err = Cost(Input{Weight: decimal.Zero, Unit: "ounces", PricePerGram: decimal.Zero, Currency: CurrencyINR}, rate)
	assert.Error(t, err)

	_, err = Cost(Input{Weight: decimal.Zero, Unit: UnitGrams, PricePerGram: decimal.Zero, Currency: "EUR"}, rate)
	assert.Error(t, err)

	_, err = Cost(Input{Weight: decimal.NewFromInt(1), Unit: UnitGrams, PricePerGram: decimal.NewFromInt(1), Currency: CurrencyUSD}, decimal.Zero)
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "INR 0.00", Format(CurrencyINR, decimal.Zero))
	assert.Equal(t, "INR 1,234.50", Format(CurrencyINR, decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "USD 1,000,000.00", Format(CurrencyUSD, decimal.NewFromInt(1000000)))
	assert.Equal(t, "INR 999.99", Format(CurrencyINR, decimal.NewFromFloat(999.99)))
	assert.Equal(t, "INR -12,345.68", Format(CurrencyINR, decimal.NewFromFloat(-12345.675)))
}
