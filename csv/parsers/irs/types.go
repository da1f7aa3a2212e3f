package irs

import (
	"github.com/DefiantLabs/crypto-tax/csv/parsers"
	"github.com/shopspring/decimal"
)

const (
	// ParserKey is the key used to identify this parser
	ParserKey = "irs"

	NotesNeedsCalculation = "Cost basis/gain-loss needs calculation"
	NotesReportedLoss     = "Reported loss"
	NotesCheckType        = "Check transaction type"
)

type Parser struct {
	Rows []Row
}

type Row struct {
	Date            string
	TransactionType TransactionType
	// Label is what gets written in the Transaction Type column. For Other it is the
	// capitalized raw type.
	Label        string
	Asset        string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	Proceeds     parsers.Amount
	CostBasis    parsers.Amount
	GainLoss     parsers.Amount
	Notes        string
}

type TransactionType int

const (
	Buy TransactionType = iota
	// Example: purchase or deposit of crypto (i.e; Paid $40,000 for 1 BTC)
	// The whole USD value becomes the cost basis, nothing is realized.

	Sale
	// Example: sale or withdrawal of crypto (i.e; Sold 2 ETH for $5,000)
	// Proceeds are known, cost basis comes from lot tracking.

	Trade
	// Example: trading one crypto for another (i.e; Trade 1 BTC for 10 ETH)
	// Treated like a sale of the sent asset.

	LossClaim
	// Example: a loss the user reports directly (i.e; rug pull, lost keys)

	Other
	// Any type we do not know how to treat. Flagged for review.
)

func (at TransactionType) String() string {
	return [...]string{"Buy", "Sale", "Trade", "Loss Claim", "Other"}[at]
}

// rawTypes maps lower-cased raw type tokens onto transaction types. Tokens not in the map
// are Other.
var rawTypes = map[string]TransactionType{
	"buy":        Buy,
	"deposit":    Buy,
	"sell":       Sale,
	"withdraw":   Sale,
	"trade":      Trade,
	"loss_claim": LossClaim,
}

// valueRule says how a report figure is derived from the transaction's USD value.
type valueRule int

const (
	zero valueRule = iota
	usdValue
	negatedUSDValue
	unknown
)

func (r valueRule) apply(value decimal.Decimal) parsers.Amount {
	switch r {
	case zero:
		return parsers.Known(decimal.Zero)
	case usdValue:
		return parsers.Known(value)
	case negatedUSDValue:
		return parsers.Known(value.Neg())
	default:
		return parsers.Unknown
	}
}

type policy struct {
	proceeds  valueRule
	costBasis valueRule
	gainLoss  valueRule
	notes     string
}

var policies = map[TransactionType]policy{
	Buy:       {proceeds: zero, costBasis: usdValue, gainLoss: zero},
	Sale:      {proceeds: usdValue, costBasis: unknown, gainLoss: unknown, notes: NotesNeedsCalculation},
	Trade:     {proceeds: usdValue, costBasis: unknown, gainLoss: unknown, notes: NotesNeedsCalculation},
	LossClaim: {proceeds: zero, costBasis: zero, gainLoss: negatedUSDValue, notes: NotesReportedLoss},
	Other:     {proceeds: usdValue, costBasis: unknown, gainLoss: unknown, notes: NotesCheckType},
}
