package parsers

import (
	"github.com/DefiantLabs/crypto-tax/util"
	"github.com/shopspring/decimal"
)

// UnknownToken is how an unknown amount is rendered in reports.
const UnknownToken = "UNKNOWN"

// Amount is a report figure that may not be known yet. Unknown amounts are left for a
// downstream cost-basis process to fill in and must never be treated as zero.
type Amount struct {
	value decimal.Decimal
	known bool
}

// Unknown is the amount a classifier emits when it cannot determine a figure.
var Unknown = Amount{}

func Known(value decimal.Decimal) Amount {
	return Amount{value: value, known: true}
}

func (a Amount) IsKnown() bool {
	return a.known
}

// Decimal returns the value and whether it is known. The value is zero when unknown.
func (a Amount) Decimal() (decimal.Decimal, bool) {
	if !a.known {
		return decimal.Zero, false
	}
	return a.value, true
}

// NullDecimal maps the amount onto a nullable column, unknown becoming NULL.
func (a Amount) NullDecimal() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: a.value, Valid: a.known}
}

// AmountFromNull is the inverse of NullDecimal.
func AmountFromNull(nd decimal.NullDecimal) Amount {
	if !nd.Valid {
		return Unknown
	}
	return Known(nd.Decimal)
}

func (a Amount) Equal(other Amount) bool {
	if a.known != other.known {
		return false
	}
	return !a.known || a.value.Equal(other.value)
}

func (a Amount) String() string {
	if !a.known {
		return UnknownToken
	}
	return util.FormatDecimal(a.value)
}
