package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Column names of the raw transaction export.
const (
	ColumnDate     = "Date"
	ColumnType     = "Type"
	ColumnAsset    = "Asset"
	ColumnQuantity = "Quantity"
	ColumnUSDValue = "USD_Value"
	ColumnFrom     = "From"
	ColumnTo       = "To"
	ColumnTxHash   = "Tx_Hash"
)

// InputHeaders are the columns every raw export must carry. Extra columns are ignored.
var InputHeaders = []string{
	ColumnDate, ColumnType, ColumnAsset, ColumnQuantity, ColumnUSDValue, ColumnFrom, ColumnTo, ColumnTxHash,
}

const utf8BOM = "\ufeff"

// MaxExponent bounds the decimal exponent of Quantity and USD_Value. Reports render
// amounts in plain notation, so 1e-5000000 would expand to a five million digit cell.
const MaxExponent = 64

// ErrExponentOutOfRange is wrapped in the RowError of an amount beyond MaxExponent.
var ErrExponentOutOfRange = fmt.Errorf("exponent out of range, at most %d digits of scale are supported", MaxExponent)

// ReadRawTransactions reads a header-labeled CSV of raw transactions. Any row that does not
// parse fails the whole read.
func ReadRawTransactions(r io.Reader) ([]RawTransaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: input is empty, expected a header row", ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading input header: %w", err)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []RawTransaction
	for position := 1; ; position++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedInput, position, err)
		}

		record, err := parseRecord(position, fields, columns)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var missing []string
	for _, required := range InputHeaders {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return columns, nil
}

func parseRecord(position int, fields []string, columns map[string]int) (RawTransaction, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(fields) {
			return ""
		}
		return fields[idx]
	}

	record := RawTransaction{
		Date:   field(ColumnDate),
		Type:   field(ColumnType),
		Asset:  field(ColumnAsset),
		From:   field(ColumnFrom),
		To:     field(ColumnTo),
		TxHash: field(ColumnTxHash),
	}

	var err error
	record.Quantity, err = parseDecimal(position, record.Date, ColumnQuantity, field(ColumnQuantity))
	if err != nil {
		return record, err
	}
	record.USDValue, err = parseDecimal(position, record.Date, ColumnUSDValue, field(ColumnUSDValue))
	if err != nil {
		return record, err
	}

	return record, nil
}

func parseDecimal(position int, date, column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, &RowError{Row: position, Date: date, Column: column, Value: value, Err: err}
	}
	if exp := d.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return decimal.Zero, &RowError{Row: position, Date: date, Column: column, Value: value, Err: ErrExponentOutOfRange}
	}
	return d, nil
}
