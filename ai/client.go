package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/DefiantLabs/crypto-tax/rest"
)

var (
	ErrNoAPIKey        = errors.New("ai api key not set")
	ErrInvalidResponse = errors.New("invalid classification response")
)

const classifyPrompt = "Classify the following crypto transactions by type (trade, staking, LP, NFT, airdrop, etc.) " +
	"and return a JSON list with a 'type' and 'explanation' for each transaction. Transactions: "

type Classification struct {
	Type        string `json:"type"`
	Explanation string `json:"explanation"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client talks to an OpenAI compatible chat completions gateway.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
	next   map[Complexity]*atomic.Uint64
}

func NewClient(conf config.AI) *Client {
	next := make(map[Complexity]*atomic.Uint64, len(tiers))
	for complexity := range tiers {
		next[complexity] = new(atomic.Uint64)
	}

	return &Client{
		url:    conf.URL,
		apiKey: conf.APIKey,
		http:   &http.Client{Timeout: conf.Timeout},
		next:   next,
	}
}

// SelectModel picks the next model of the complexity's tier, rotating through the tier in order.
func (c *Client) SelectModel(complexity Complexity) string {
	models, ok := tiers[complexity]
	if !ok {
		models = tiers[Simple]
		complexity = Simple
	}
	n := c.next[complexity].Add(1) - 1
	return models[n%uint64(len(models))]
}

// Classify asks the gateway to label each transaction. transactions is sent as JSON.
func (c *Client) Classify(ctx context.Context, transactions any, complexity Complexity) ([]Classification, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	payload, err := json.Marshal(transactions)
	if err != nil {
		return nil, err
	}

	model := c.SelectModel(complexity)
	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "user", Content: classifyPrompt + string(payload)},
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}

	config.Log.Infof("Sending classification request with model: %s", model)

	var resp chatResponse
	if err := rest.PostJSON(ctx, c.http, c.url, headers, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: model %s returned no choices", ErrInvalidResponse, model)
	}

	content := resp.Choices[0].Message.Content
	var classifications []Classification
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &classifications); err != nil {
		return nil, fmt.Errorf("%w: model %s returned %q", ErrInvalidResponse, model, content)
	}

	return classifications, nil
}

// stripCodeFence removes a surrounding markdown code block, which chat models like to add.
func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
