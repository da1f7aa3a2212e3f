package wallet

import (
	"github.com/DefiantLabs/crypto-tax/util"
)

type family int

const (
	familyEVM family = iota
	familySolana
	familyBitcoin
)

type Chain struct {
	// Name is the canonical chain name, aliases resolve to it.
	Name       string
	family     family
	covalentID string
}

var chains = map[string]Chain{
	"eth":      {Name: "eth", family: familyEVM, covalentID: "1"},
	"ethereum": {Name: "eth", family: familyEVM, covalentID: "1"},
	"base":     {Name: "base", family: familyEVM, covalentID: "8453"},
	"arbitrum": {Name: "arbitrum", family: familyEVM, covalentID: "42161"},
	"arb":      {Name: "arbitrum", family: familyEVM, covalentID: "42161"},
	"sol":      {Name: "solana", family: familySolana},
	"solana":   {Name: "solana", family: familySolana},
	"btc":      {Name: "bitcoin", family: familyBitcoin},
	"bitcoin":  {Name: "bitcoin", family: familyBitcoin},
}

// ParseChain resolves a chain name or alias, case-insensitively.
func ParseChain(name string) (Chain, bool) {
	c, ok := chains[util.NormalizeKey(name)]
	return c, ok
}
