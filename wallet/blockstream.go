package wallet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/DefiantLabs/crypto-tax/rest"
	"github.com/shopspring/decimal"
)

const (
	blockstreamTransactionsEndpoint = "/api/address/%s/txs"
	satoshiExp                      = -8
)

type blockstreamTransaction struct {
	TxID string `json:"txid"`
	Vin  []struct {
		Prevout struct {
			ScriptPubKeyAddress string `json:"scriptpubkey_address"`
		} `json:"prevout"`
	} `json:"vin"`
	Vout []struct {
		ScriptPubKeyAddress string `json:"scriptpubkey_address"`
		Value               int64  `json:"value"`
	} `json:"vout"`
}

// blockstream serves Bitcoin. The API is public and needs no key.
type blockstream struct {
	baseURL string
	client  *http.Client
}

func (b *blockstream) source() Source {
	return SourceBlockstream
}

func (b *blockstream) fetch(ctx context.Context, address string, _ Chain) ([]Transaction, error) {
	requestURL := fmt.Sprintf("%s"+blockstreamTransactionsEndpoint, strings.TrimRight(b.baseURL, "/"), url.PathEscape(address))

	var resp []blockstreamTransaction
	if err := rest.GetJSON(ctx, b.client, requestURL, nil, &resp); err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, len(resp))
	for _, tx := range resp {
		normalized := Transaction{
			ID:     tx.TxID,
			Amount: decimal.Zero,
			Token:  "BTC",
			Type:   "transfer",
		}
		if len(tx.Vin) > 0 {
			normalized.From = tx.Vin[0].Prevout.ScriptPubKeyAddress
		}
		if len(tx.Vout) > 0 {
			normalized.To = tx.Vout[0].ScriptPubKeyAddress
			normalized.Amount = decimal.New(tx.Vout[0].Value, satoshiExp)
		}
		txs = append(txs, normalized)
	}
	return txs, nil
}
