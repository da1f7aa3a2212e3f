package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
)

type TestDockerRedisConfig struct {
	Client *redis.Client
	Addr   string
	Clean  func()
}

func SetupTestRedis() (*TestDockerRedisConfig, error) {
	pool, err := newPool()
	if err != nil {
		return nil, err
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       fmt.Sprintf("redis-%s", randResourceNameSuffix(10)),
		Repository: "redis",
		Tag:        "7-alpine",
	})
	if err != nil {
		return nil, err
	}

	addr := fmt.Sprintf("%s:%s", resource.GetBoundIP("6379/tcp"), resource.GetPort("6379/tcp"))
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	if err := pool.Retry(func() error {
		return rdb.Ping(context.Background()).Err()
	}); err != nil {
		_ = purge(pool, resource, nil)
		return nil, err
	}

	clean := func() {
		_ = rdb.Close()
		if err := purge(pool, resource, nil); err != nil {
			log.Fatalf("Could not clean up redis: %s", err)
		}
	}

	return &TestDockerRedisConfig{Client: rdb, Addr: addr, Clean: clean}, nil
}
