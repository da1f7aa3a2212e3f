package parsers

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is wrapped by every error caused by bad input data.
	ErrMalformedInput = errors.New("malformed input")
	// ErrMissingColumn is returned when the input header lacks a required column.
	ErrMissingColumn = fmt.Errorf("%w: missing required column", ErrMalformedInput)
)

// RowError identifies the input row that could not be parsed.
type RowError struct {
	Row    int // 1-based position among data rows
	Date   string
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (date %q): invalid %s %q: %v", e.Row, e.Date, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() []error {
	return []error{ErrMalformedInput, e.Err}
}
