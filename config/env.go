package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables holding upstream credentials.
const (
	EnvCovalentAPIKey   = "COVALENT_API_KEY"
	EnvHeliusAPIKey     = "HELIUS_API_KEY"
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
)

// LoadEnv loads the given .env files (default ./.env) into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// valueOrEnv keeps an explicitly configured value and otherwise reads key from the environment.
func valueOrEnv(value, key string) string {
	if value != "" {
		return value
	}
	return os.Getenv(key)
}
