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

const covalentTransactionsEndpoint = "/v1/%s/address/%s/transactions_v2/"

type covalentResponse struct {
	Data struct {
		Items []covalentItem `json:"items"`
	} `json:"data"`
}

type covalentItem struct {
	TxHash               string          `json:"tx_hash"`
	FromAddress          string          `json:"from_address"`
	ToAddress            string          `json:"to_address"`
	Value                json.RawMessage `json:"value"`
	ContractTickerSymbol *string         `json:"contract_ticker_symbol"`
}

// covalent serves the EVM chains.
type covalent struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func (c *covalent) source() Source {
	return SourceCovalent
}

func (c *covalent) fetch(ctx context.Context, address string, chain Chain) ([]Transaction, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("covalent: %w", ErrNoAPIKey)
	}

	endpoint := fmt.Sprintf(covalentTransactionsEndpoint, chain.covalentID, url.PathEscape(address))
	requestURL := fmt.Sprintf("%s%s?key=%s", strings.TrimRight(c.baseURL, "/"), endpoint, url.QueryEscape(c.apiKey))

	var resp covalentResponse
	if err := rest.GetJSON(ctx, c.client, requestURL, nil, &resp); err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		token := "ETH"
		if item.ContractTickerSymbol != nil {
			token = *item.ContractTickerSymbol
		}
		txs = append(txs, Transaction{
			ID:     item.TxHash,
			From:   item.FromAddress,
			To:     item.ToAddress,
			Amount: parseAmount(item.Value),
			Token:  token,
			Type:   "transfer",
		})
	}
	return txs, nil
}
