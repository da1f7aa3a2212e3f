package wallet

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// MockTransactions returns placeholder history for address.
// The ids are derived from the address so repeated calls return identical data.
func MockTransactions(address string) []Transaction {
	return []Transaction{
		{ID: mockID(address, 0), From: address, To: "0xabc...", Amount: decimal.RequireFromString("1.23"), Token: "ETH", Type: "transfer"},
		{ID: mockID(address, 1), From: address, To: "0xdef...", Amount: decimal.RequireFromString("0.5"), Token: "USDC", Type: "swap"},
	}
}

func mockID(address string, n int) string {
	h := xxhash.Sum64String(fmt.Sprintf("%s/%d", address, n))
	return fmt.Sprintf("tx_%d", 1000+h%9000)
}
