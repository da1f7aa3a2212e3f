package irs

import (
	"github.com/DefiantLabs/crypto-tax/csv/parsers"
	"github.com/DefiantLabs/crypto-tax/util"
	"github.com/shopspring/decimal"
)

// pricePrecision is the number of fractional digits kept in Price per Unit.
const pricePrecision = 2

func (row Row) GetRowForCsv() []string {
	return []string{
		row.Date,
		row.Label,
		row.Asset,
		util.FormatDecimal(row.Quantity),
		row.PricePerUnit.StringFixed(pricePrecision),
		row.Proceeds.String(),
		row.CostBasis.String(),
		row.GainLoss.String(),
		row.Notes,
	}
}

func (row Row) GetDate() string {
	return row.Date
}

// ParseRawTransaction fills the row from a single raw transaction.
func (row *Row) ParseRawTransaction(tx parsers.RawTransaction) {
	row.Date = tx.Date
	row.Asset = tx.Asset
	row.Quantity = tx.Quantity
	row.PricePerUnit = PricePerUnit(tx.USDValue, tx.Quantity)

	txType, label := Classify(tx.Type)
	row.TransactionType = txType
	row.Label = label

	p := policies[txType]
	row.Proceeds = p.proceeds.apply(tx.USDValue)
	row.CostBasis = p.costBasis.apply(tx.USDValue)
	row.GainLoss = p.gainLoss.apply(tx.USDValue)
	row.Notes = p.notes
}

// PricePerUnit divides the USD value by the quantity, rounding half away from zero to cents.
// A zero quantity yields a zero price.
func PricePerUnit(value, quantity decimal.Decimal) decimal.Decimal {
	if quantity.IsZero() {
		return decimal.Zero
	}
	return value.DivRound(quantity, pricePrecision)
}
