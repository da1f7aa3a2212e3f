package irs

import (
	"strings"

	"github.com/DefiantLabs/crypto-tax/csv/parsers"
	"github.com/DefiantLabs/crypto-tax/util"
)

// Classify resolves a raw type token, matched case-insensitively, to its transaction type
// and the label written to the report. Surrounding whitespace is significant: " buy" is
// not a known token and keeps its padding in the Other label.
func Classify(rawType string) (TransactionType, string) {
	token := strings.ToLower(rawType)
	if txType, ok := rawTypes[token]; ok {
		return txType, txType.String()
	}
	return Other, util.Capitalize(token)
}

// ParseTransactionType is the inverse of TransactionType.String. Unrecognised names are Other.
func ParseTransactionType(name string) TransactionType {
	for _, txType := range []TransactionType{Buy, Sale, Trade, LossClaim} {
		if name == txType.String() {
			return txType
		}
	}
	return Other
}

func (p *Parser) ProcessRawTransactions(records []parsers.RawTransaction) error {
	for _, record := range records {
		var row Row
		row.ParseRawTransaction(record)
		p.Rows = append(p.Rows, row)
	}
	return nil
}

func (p *Parser) GetRows() []parsers.CsvRow {
	csvRows := make([]parsers.CsvRow, len(p.Rows))
	for i, v := range p.Rows {
		csvRows[i] = v
	}
	return csvRows
}

func (p Parser) GetHeaders() []string {
	return []string{
		"Date", "Transaction Type", "Asset", "Quantity", "Price per Unit (USD)",
		"Proceeds (USD)", "Cost Basis (USD)", "Gain/Loss (USD)", "Notes",
	}
}

// RowsOf picks the IRS rows out of a generic row list, keeping their order.
func RowsOf(csvRows []parsers.CsvRow) []Row {
	rows := make([]Row, 0, len(csvRows))
	for _, r := range csvRows {
		if row, ok := r.(Row); ok {
			rows = append(rows, row)
		}
	}
	return rows
}
