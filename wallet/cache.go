package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "c/wallet/"

// Cache stores fetched wallet history between runs.
type Cache interface {
	Get(ctx context.Context, key string) ([]Transaction, bool, error)
	Set(ctx context.Context, key string, txs []Transaction, ttl time.Duration) error
}

func cacheKey(chain Chain, address string) string {
	return cacheKeyPrefix + chain.Name + "/" + address
}

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{
		rdb: rdb,
	}
}

// ConnectRedis opens a client for conf and checks it with a ping.
func ConnectRedis(ctx context.Context, conf config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (s *RedisCache) Get(ctx context.Context, key string) ([]Transaction, bool, error) {
	res, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var txs []Transaction
	if err := json.Unmarshal(res, &txs); err != nil {
		return nil, false, err
	}
	return txs, true, nil
}

func (s *RedisCache) Set(ctx context.Context, key string, txs []Transaction, ttl time.Duration) error {
	res, err := json.Marshal(txs)
	if err != nil {
		return err
	}

	return s.rdb.Set(ctx, key, res, ttl).Err()
}

// MemoryCache keeps history in process, used when no redis is configured.
type MemoryCache struct {
	c *cache.Cache
}

func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		c: cache.New(defaultTTL, 2*defaultTTL),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]Transaction, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	txs, ok := v.([]Transaction)
	if !ok {
		return nil, false, nil
	}
	return append([]Transaction(nil), txs...), true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, txs []Transaction, ttl time.Duration) error {
	m.c.Set(key, append([]Transaction(nil), txs...), ttl)
	return nil
}
