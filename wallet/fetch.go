package wallet

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/DefiantLabs/crypto-tax/config"
	"golang.org/x/time/rate"
)

type provider interface {
	source() Source
	fetch(ctx context.Context, address string, chain Chain) ([]Transaction, error)
}

// Fetcher pulls wallet history from the block explorer for each chain.
// Every failure path degrades to mock data, except an empty address or a cancelled context.
type Fetcher struct {
	providers map[family]provider
	cache     Cache
	ttl       time.Duration
	limiter   *rate.Limiter
}

// NewFetcher builds a Fetcher for the configured providers. A nil cache disables caching.
func NewFetcher(conf config.Providers, c Cache, ttl time.Duration) *Fetcher {
	client := &http.Client{Timeout: conf.Timeout}
	burst := int(conf.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &Fetcher{
		providers: map[family]provider{
			familyEVM:     &covalent{baseURL: conf.CovalentURL, apiKey: conf.CovalentAPIKey, client: client},
			familySolana:  &helius{baseURL: conf.HeliusURL, apiKey: conf.HeliusAPIKey, client: client},
			familyBitcoin: &blockstream{baseURL: conf.BlockstreamURL, client: client},
		},
		cache:   c,
		ttl:     ttl,
		limiter: rate.NewLimiter(rate.Limit(conf.RequestsPerSecond), burst),
	}
}

func (f *Fetcher) FetchTransactions(ctx context.Context, address, chainName string) (Result, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Result{}, ErrEmptyAddress
	}

	chain, ok := ParseChain(chainName)
	if !ok {
		config.Log.Warnf("Unsupported chain '%s', using mock data.", chainName)
		return mockResult(address), nil
	}

	key := cacheKey(chain, address)
	if f.cache != nil {
		txs, hit, err := f.cache.Get(ctx, key)
		if err != nil {
			config.Log.Warnf("Wallet cache read failed for %s: %v", key, err)
		} else if hit {
			config.Log.Debugf("Wallet history for %s served from cache", key)
			return Result{Transactions: txs, Source: SourceCache}, nil
		}
	}

	p := f.providers[chain.family]
	if err := f.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}

	config.Log.Infof("Fetching transactions for %s on %s via %s", address, chain.Name, p.source())
	txs, err := p.fetch(ctx, address, chain)
	if errors.Is(err, ErrNoAPIKey) {
		config.Log.Warnf("%s api key not set, using mock data.", p.source())
		return mockResult(address), nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		config.Log.Errorf("%s request failed: %v. Using mock data.", p.source(), err)
		return mockResult(address), nil
	}
	if len(txs) == 0 {
		config.Log.Warnf("No transactions found from %s, using mock data.", p.source())
		return mockResult(address), nil
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, key, txs, f.ttl); err != nil {
			config.Log.Warnf("Wallet cache write failed for %s: %v", key, err)
		}
	}

	return Result{Transactions: txs, Source: p.source()}, nil
}

func mockResult(address string) Result {
	return Result{Transactions: MockTransactions(address), Source: SourceMock, Mock: true}
}
