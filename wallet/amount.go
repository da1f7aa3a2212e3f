package wallet

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// parseAmount reads an explorer amount that may be a JSON number, a quoted number, null or "".
// Anything unparseable counts as zero.
func parseAmount(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero
	}

	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
