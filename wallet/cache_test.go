package wallet

import (
	"context"
	"testing"
	"time"

	testUtils "github.com/DefiantLabs/crypto-tax/test/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: "0x1", From: "a", To: "b", Amount: decimal.RequireFromString("0.00000001"), Token: "BTC", Type: "transfer"},
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	_, hit, err := c.Get(ctx, "missing")
	if err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}

	txs := sampleTransactions()
	if err := c.Set(ctx, "k", txs, time.Minute); err != nil {
		t.Fatal(err)
	}
	txs[0].ID = "mutated"

	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if got[0].ID != "0x1" {
		t.Fatalf("cache entry was mutated through the caller's slice: %s", got[0].ID)
	}

	if err := c.Set(ctx, "short", txs, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Fatal("expected entry to expire")
	}
}

type RedisCacheTestSuite struct {
	suite.Suite
	cache *RedisCache
	clean func()
}

func (suite *RedisCacheTestSuite) SetupSuite() {
	conf, err := testUtils.SetupTestRedis()
	if err != nil {
		suite.T().Skipf("docker unavailable: %v", err)
	}

	suite.cache = NewRedisCache(conf.Client)
	suite.clean = conf.Clean
}

func (suite *RedisCacheTestSuite) TearDownSuite() {
	if suite.clean != nil {
		suite.clean()
	}
}

func (suite *RedisCacheTestSuite) TestRoundTrip() {
	ctx := context.Background()

	_, hit, err := suite.cache.Get(ctx, cacheKeyPrefix+"missing")
	suite.Require().NoError(err)
	suite.Require().False(hit)

	key := cacheKey(Chain{Name: "bitcoin"}, "bc1me")
	suite.Require().NoError(suite.cache.Set(ctx, key, sampleTransactions(), time.Minute))

	got, hit, err := suite.cache.Get(ctx, key)
	suite.Require().NoError(err)
	suite.Require().True(hit)
	suite.Require().Len(got, 1)
	suite.Assert().Equal("0.00000001", got[0].Amount.String())
	suite.Assert().Equal("BTC", got[0].Token)
}

func (suite *RedisCacheTestSuite) TestTTL() {
	ctx := context.Background()
	key := cacheKeyPrefix + "ttl"
	suite.Require().NoError(suite.cache.Set(ctx, key, sampleTransactions(), time.Minute))

	ttl, err := suite.cache.rdb.TTL(ctx, key).Result()
	suite.Require().NoError(err)
	suite.Assert().Greater(ttl, time.Duration(0))
	suite.Assert().LessOrEqual(ttl, time.Minute)
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping docker test in short mode")
	}
	suite.Run(t, new(RedisCacheTestSuite))
}
