package parsers

import (
	"github.com/shopspring/decimal"
)

// Parser turns raw transactions into rows for one report format.
type Parser interface {
	ProcessRawTransactions(records []RawTransaction) error
	GetHeaders() []string
	GetRows() []CsvRow
}

type CsvRow interface {
	GetRowForCsv() []string
	GetDate() string
}

// RawTransaction is one row of the raw wallet/exchange export.
// From, To and TxHash are carried along but no report format uses them yet.
type RawTransaction struct {
	Date     string
	Type     string
	Asset    string
	Quantity decimal.Decimal
	USDValue decimal.Decimal
	From     string
	To       string
	TxHash   string
}
