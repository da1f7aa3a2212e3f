package utils

import (
	"fmt"
	"math/rand"

	dockertest "github.com/ory/dockertest/v3"
)

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randResourceNameSuffix(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}
	return string(b)
}

// newPool connects to the local docker daemon. The error is returned when docker is unavailable
// so callers can skip integration tests.
func newPool() (*dockertest.Pool, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, err
	}

	err = pool.Client.Ping()
	if err != nil {
		return nil, err
	}

	return pool, nil
}

func createDockerNetwork(pool *dockertest.Pool) (string, *dockertest.Network, error) {
	// create a docker network and attach to the resource
	networkName := fmt.Sprintf("test-network-%s", randResourceNameSuffix(10))
	network, err := pool.CreateNetwork(networkName)
	if err != nil {
		return "", nil, err
	}

	return networkName, network, nil
}

func purge(pool *dockertest.Pool, resource *dockertest.Resource, network *dockertest.Network) error {
	if err := pool.Purge(resource); err != nil {
		return fmt.Errorf("could not purge resource: %w", err)
	}

	if network != nil {
		if err := pool.RemoveNetwork(network); err != nil {
			return fmt.Errorf("could not remove network: %w", err)
		}
	}

	return nil
}
