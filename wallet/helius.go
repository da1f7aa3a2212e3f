package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/DefiantLabs/crypto-tax/rest"
)

const heliusTransactionsEndpoint = "/v0/addresses/%s/transactions"

type heliusTransaction struct {
	Signature   string          `json:"signature"`
	AccountData []heliusAccount `json:"accountData"`
	Amount      json.RawMessage `json:"amount"`
	Token       string          `json:"token"`
	Type        string          `json:"type"`
}

type heliusAccount struct {
	Account string `json:"account"`
}

// helius serves Solana.
type helius struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func (h *helius) source() Source {
	return SourceHelius
}

func (h *helius) fetch(ctx context.Context, address string, _ Chain) ([]Transaction, error) {
	if h.apiKey == "" {
		return nil, fmt.Errorf("helius: %w", ErrNoAPIKey)
	}

	endpoint := fmt.Sprintf(heliusTransactionsEndpoint, url.PathEscape(address))
	requestURL := fmt.Sprintf("%s%s?api-key=%s", strings.TrimRight(h.baseURL, "/"), endpoint, url.QueryEscape(h.apiKey))

	var resp []heliusTransaction
	if err := rest.GetJSON(ctx, h.client, requestURL, nil, &resp); err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, len(resp))
	for _, tx := range resp {
		var from, to string
		if n := len(tx.AccountData); n > 0 {
			from = tx.AccountData[0].Account
			to = tx.AccountData[n-1].Account
		}
		token := tx.Token
		if token == "" {
			token = "SOL"
		}
		txType := tx.Type
		if txType == "" {
			txType = "transfer"
		}
		txs = append(txs, Transaction{
			ID:     tx.Signature,
			From:   from,
			To:     to,
			Amount: parseAmount(tx.Amount),
			Token:  token,
			Type:   txType,
		})
	}
	return txs, nil
}
