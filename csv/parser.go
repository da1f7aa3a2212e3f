package csv

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/DefiantLabs/crypto-tax/csv/parsers"
	"github.com/DefiantLabs/crypto-tax/csv/parsers/irs"
)

// Register new parsers by adding them to this list
var supportedParsers = []string{irs.ParserKey}

// ErrInvalidParser is returned for a report format nobody registered.
var ErrInvalidParser = errors.New("invalid parser key")

func init() {
	parsers.RegisterParsers(supportedParsers)
}

func GetParser(parserKey string) parsers.Parser {
	switch parserKey {
	case irs.ParserKey:
		parser := irs.Parser{}
		return &parser
	}
	return nil
}

// Transform maps every raw transaction onto a report row, keeping input order.
func Transform(records []parsers.RawTransaction, parserKey string) ([]parsers.CsvRow, []string, error) {
	parser := GetParser(parserKey)
	if parser == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidParser, parserKey)
	}

	if err := parser.ProcessRawTransactions(records); err != nil {
		config.Log.Error("Error processing raw transactions.", err)
		return nil, nil, err
	}

	return parser.GetRows(), parser.GetHeaders(), nil
}

// GenerateReport reads a raw transaction export and transforms it. Nothing is returned
// unless every row parsed.
func GenerateReport(r io.Reader, parserKey string) ([]parsers.CsvRow, []string, error) {
	records, err := parsers.ReadRawTransactions(r)
	if err != nil {
		return nil, nil, err
	}
	config.Log.Debugf("Read %d raw transactions", len(records))

	return Transform(records, parserKey)
}

// ParseFile is GenerateReport over the file at path.
func ParseFile(path string, parserKey string) ([]parsers.CsvRow, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening input %s: %w", path, err)
	}
	defer file.Close()

	return GenerateReport(file, parserKey)
}
