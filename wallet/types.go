package wallet

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Source names where a Result came from.
type Source string

const (
	SourceCovalent    Source = "covalent"
	SourceHelius      Source = "helius"
	SourceBlockstream Source = "blockstream"
	SourceCache       Source = "cache"
	SourceMock        Source = "mock"
)

var (
	ErrEmptyAddress = errors.New("wallet address must not be empty")
	ErrNoAPIKey     = errors.New("api key not set")
)

// Transaction is a single on-chain transfer normalized across explorers.
type Transaction struct {
	ID     string          `json:"id"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Token  string          `json:"token"`
	Type   string          `json:"type"`
}

type Result struct {
	Transactions []Transaction `json:"transactions"`
	Source       Source        `json:"source"`
	// Mock is true when the transactions are placeholder data, not chain history.
	Mock bool `json:"mock"`
}
