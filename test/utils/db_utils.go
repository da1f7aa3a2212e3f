package utils

import (
	"fmt"
	"log"

	dbTypes "github.com/DefiantLabs/crypto-tax/db"
	"github.com/ory/dockertest/v3"
	"gorm.io/gorm"
)

func SetupTestDatabase() (*TestDockerDBConfig, error) {
	pool, err := newPool()
	if err != nil {
		return nil, err
	}

	databaseName := "test"
	user := "test"
	password := "test"

	connectUserEnv := fmt.Sprintf("POSTGRES_USER=%s", user)
	connectPasswordEnv := fmt.Sprintf("POSTGRES_PASSWORD=%s", password)
	connectDbEnv := fmt.Sprintf("POSTGRES_DB=%s", databaseName)

	networkName, network, err := createDockerNetwork(pool)
	if err != nil {
		return nil, err
	}

	resourceName := fmt.Sprintf("postgres-%s", randResourceNameSuffix(10))

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       resourceName,
		Repository: "postgres",
		Tag:        "15-alpine",
		Env:        []string{connectUserEnv, connectPasswordEnv, connectDbEnv},
		Networks:   []*dockertest.Network{network},
	})
	if err != nil {
		_ = pool.RemoveNetwork(network)
		return nil, err
	}

	var db *gorm.DB
	host := resource.GetBoundIP("5432/tcp")
	port := resource.GetPort("5432/tcp")

	if err := pool.Retry(func() error {
		var err error
		db, err = dbTypes.PostgresDbConnect(host, port, databaseName, user, password, "silent")
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}); err != nil {
		_ = purge(pool, resource, network)
		return nil, err
	}

	clean := func() {
		if err := purge(pool, resource, network); err != nil {
			log.Fatalf("Could not clean up database: %s", err)
		}
	}

	conf := TestDockerDBConfig{
		DockerResourceName: resourceName,
		DockerNetwork:      networkName,
		GormDB:             db,
		Host:               host,
		Port:               port,
		Database:           databaseName,
		User:               user,
		Password:           password,
		LogLevel:           "silent",
		Clean:              clean,
	}

	return &conf, nil
}

type TestDockerDBConfig struct {
	DockerResourceName string
	DockerNetwork      string
	GormDB             *gorm.DB
	Host               string
	Port               string
	Database           string
	User               string
	Password           string
	LogLevel           string
	Clean              func()
}
