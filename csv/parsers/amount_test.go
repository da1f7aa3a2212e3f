package parsers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUnknownIsNotZero(t *testing.T) {
	zero := Known(decimal.Zero)

	assert.False(t, Unknown.IsKnown())
	assert.True(t, zero.IsKnown())
	assert.False(t, Unknown.Equal(zero))
	assert.Equal(t, UnknownToken, Unknown.String())
	assert.Equal(t, "0", zero.String())

	_, ok := Unknown.Decimal()
	assert.False(t, ok)
}

func TestAmountNullDecimal(t *testing.T) {
	value := Known(decimal.RequireFromString("-100.50"))

	nd := value.NullDecimal()
	assert.True(t, nd.Valid)
	assert.True(t, AmountFromNull(nd).Equal(value))

	nd = Unknown.NullDecimal()
	assert.False(t, nd.Valid)
	assert.False(t, AmountFromNull(nd).IsKnown())
}

func TestAmountStringKeepsScale(t *testing.T) {
	assert.Equal(t, "1000.10", Known(decimal.RequireFromString("1000.10")).String())
	assert.Equal(t, "-100", Known(decimal.NewFromInt(100).Neg()).String())
}
