package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/ory/dockertest/v3"
	"go.mongodb.org/mongo-driver/mongo"
	mOptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	mongoImage   = "mongo"
	mongoVersion = "5.0.2"

	MongoDBName = "crypto_tax_test"
)

type TestDockerMongoConfig struct {
	Database *mongo.Database
	URI      string
	Clean    func()
}

func SetupTestMongo() (*TestDockerMongoConfig, error) {
	pool, err := newPool()
	if err != nil {
		return nil, err
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       fmt.Sprintf("mongo-%s", randResourceNameSuffix(10)),
		Repository: mongoImage,
		Tag:        mongoVersion,
		Env: []string{
			"MONGO_INITDB_DATABASE=" + MongoDBName,
			"MONGO_INITDB_ROOT_USERNAME=admin",
			"MONGO_INITDB_ROOT_PASSWORD=password",
		},
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://admin:password@%s:%s", resource.GetBoundIP("27017/tcp"), resource.GetPort("27017/tcp"))

	var client *mongo.Client
	if err := pool.Retry(func() error {
		var err error
		client, err = mongo.Connect(ctx, mOptions.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		return client.Ping(ctx, readpref.Primary())
	}); err != nil {
		_ = purge(pool, resource, nil)
		return nil, err
	}

	clean := func() {
		_ = client.Disconnect(ctx)
		if err := purge(pool, resource, nil); err != nil {
			log.Fatalf("Could not clean up mongo: %s", err)
		}
	}

	return &TestDockerMongoConfig{Database: client.Database(MongoDBName), URI: uri, Clean: clean}, nil
}
