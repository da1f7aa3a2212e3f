package db

import (
	"testing"

	"github.com/DefiantLabs/crypto-tax/csv/parsers"
	"github.com/DefiantLabs/crypto-tax/csv/parsers/irs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaxReport(t *testing.T) {
	rows := []irs.Row{
		{
			Date: "2024-05-01", TransactionType: irs.Other, Label: "Airdrop", Asset: "ARB",
			Quantity: decimal.RequireFromString("10"), PricePerUnit: decimal.RequireFromString("1.20"),
			Proceeds: parsers.Known(decimal.RequireFromString("12")), CostBasis: parsers.Unknown, GainLoss: parsers.Unknown,
			Notes: irs.NotesCheckType,
		},
	}

	report := NewTaxReport("in.csv", "sum", rows)
	assert.Equal(t, "in.csv", report.Source)
	assert.Equal(t, irs.ParserKey, report.Format)
	assert.Equal(t, 1, report.RowCount)
	require.Len(t, report.Rows, 1)

	row := report.Rows[0]
	assert.Equal(t, 0, row.Position)
	assert.Equal(t, "Airdrop", row.TransactionType)
	assert.Equal(t, "Other", row.Category)
	assert.True(t, row.Proceeds.Valid)
	assert.False(t, row.CostBasis.Valid)
	assert.False(t, row.GainLoss.Valid)
}

func TestIRSRowsRebuildsStoredRows(t *testing.T) {
	rows := []irs.Row{
		{
			Date: "2024-01-05", TransactionType: irs.Buy, Label: "Buy", Asset: "BTC",
			Quantity: decimal.RequireFromString("0.50"), PricePerUnit: decimal.RequireFromString("40000.00"),
			Proceeds: parsers.Known(decimal.Zero), CostBasis: parsers.Known(decimal.RequireFromString("20000")),
			GainLoss: parsers.Known(decimal.Zero),
		},
		{
			Date: "2024-02-01", TransactionType: irs.Other, Label: "Sale", Asset: "SOL",
			Quantity: decimal.RequireFromString("3"), PricePerUnit: decimal.RequireFromString("10.00"),
			Proceeds: parsers.Known(decimal.RequireFromString("30")), CostBasis: parsers.Unknown, GainLoss: parsers.Unknown,
			Notes: irs.NotesCheckType,
		},
	}

	rebuilt := IRSRows(NewTaxReport("in.csv", "sum", rows).Rows)
	require.Len(t, rebuilt, len(rows))
	for i := range rows {
		assert.Equal(t, rows[i].GetRowForCsv(), rebuilt[i].GetRowForCsv())
		assert.Equal(t, rows[i].TransactionType, rebuilt[i].TransactionType)
		assert.True(t, rows[i].Proceeds.Equal(rebuilt[i].Proceeds))
		assert.True(t, rows[i].CostBasis.Equal(rebuilt[i].CostBasis))
	}
	assert.Equal(t, irs.Other, rebuilt[1].TransactionType, "an Other row labelled Sale stays Other")
}
