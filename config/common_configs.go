package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/DefiantLabs/crypto-tax/util"
	"github.com/spf13/cobra"
)

// These configs are used across multiple commands, and are not specific to a single command
type log struct {
	Level  string
	Path   string
	Pretty bool
}

type Database struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string `mapstructure:"log-level"`
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a redis address was configured.
func (r Redis) Enabled() bool {
	return !util.StrNotSet(r.Addr)
}

type Mongo struct {
	URI      string `mapstructure:"uri"`
	Database string
}

// Enabled reports whether a mongo uri was configured.
func (m Mongo) Enabled() bool {
	return !util.StrNotSet(m.URI)
}

func SetupLogFlags(logConf *log, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logConf.Level, "log.level", "info", "log level")
	cmd.PersistentFlags().BoolVar(&logConf.Pretty, "log.pretty", false, "pretty logs")
	cmd.PersistentFlags().StringVar(&logConf.Path, "log.path", "", "log path, logs only go to stderr when unset")
}

func SetupDatabaseFlags(databaseConf *Database, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&databaseConf.Host, "database.host", "", "database host")
	cmd.PersistentFlags().StringVar(&databaseConf.Port, "database.port", "5432", "database port")
	cmd.PersistentFlags().StringVar(&databaseConf.Database, "database.database", "", "database name")
	cmd.PersistentFlags().StringVar(&databaseConf.User, "database.user", "", "database user")
	cmd.PersistentFlags().StringVar(&databaseConf.Password, "database.password", "", "database password")
	cmd.PersistentFlags().StringVar(&databaseConf.LogLevel, "database.log-level", "", "database loglevel")
}

func SetupRedisFlags(redisConf *Redis, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&redisConf.Addr, "redis.addr", "", "redis address (host:port), an in-memory cache is used when unset")
	cmd.PersistentFlags().StringVar(&redisConf.Password, "redis.password", "", "redis password")
	cmd.PersistentFlags().IntVar(&redisConf.DB, "redis.db", 0, "redis database number")
	cmd.PersistentFlags().DurationVar(&redisConf.TTL, "redis.ttl", 15*time.Minute, "how long fetched wallet history stays cached")
}

func SetupMongoFlags(mongoConf *Mongo, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&mongoConf.URI, "mongo.uri", "", "mongo connection uri for the audit trail, auditing is off when unset")
	cmd.PersistentFlags().StringVar(&mongoConf.Database, "mongo.database", "crypto_tax", "mongo database name")
}

func validateDatabaseConf(dbConf Database) error {
	if util.StrNotSet(dbConf.Host) {
		return errors.New("database host must be set")
	}
	if util.StrNotSet(dbConf.Port) {
		return errors.New("database port must be set")
	}
	if util.StrNotSet(dbConf.Database) {
		return errors.New("database name (i.e. database) must be set")
	}
	if util.StrNotSet(dbConf.User) {
		return errors.New("database user must be set")
	}
	if util.StrNotSet(dbConf.Password) {
		return errors.New("database password must be set")
	}

	return nil
}

func validateRedisConf(redisConf Redis) error {
	if redisConf.Enabled() && !strings.Contains(redisConf.Addr, ":") {
		return fmt.Errorf("redis addr '%v' must be host:port", redisConf.Addr)
	}
	if redisConf.DB < 0 {
		return errors.New("redis db must be 0 or greater")
	}
	if redisConf.TTL <= 0 {
		return errors.New("redis ttl must be positive")
	}
	return nil
}

func validateMongoConf(mongoConf Mongo) error {
	if !mongoConf.Enabled() {
		return nil
	}
	if !strings.HasPrefix(mongoConf.URI, "mongodb://") && !strings.HasPrefix(mongoConf.URI, "mongodb+srv://") {
		return errors.New("mongo uri must start with mongodb:// or mongodb+srv://")
	}
	if util.StrNotSet(mongoConf.Database) {
		return errors.New("mongo database must be set")
	}
	return nil
}

// Reads the Viper mapstructure tag to get the valid keys for a given config struct
func getValidConfigKeys(section any, baseName string) (keys []string) {
	v := reflect.ValueOf(section)
	typeOfS := v.Type()

	if baseName == "" {
		baseName = strings.ToLower(typeOfS.Name())
	}

	for i := 0; i < v.NumField(); i++ {
		field := typeOfS.Field(i)

		// Hack to get around the fact that we have embedded struct inside a struct in some of our definitions
		if !strings.HasPrefix(field.Type.String(), "config.") {
			name := field.Tag.Get("mapstructure")
			if name == "" {
				name = field.Name
			}

			key := fmt.Sprintf("%v.%v", baseName, strings.ReplaceAll(strings.ToLower(name), " ", ""))
			keys = append(keys, key)
		}
	}
	return
}

func addConfigKeys(validKeys map[string]struct{}, section any, baseName string) {
	for _, key := range getValidConfigKeys(section, baseName) {
		validKeys[key] = struct{}{}
	}
}

// superfluousKeys returns every key that is not in validKeys.
func superfluousKeys(keys []string, validKeys map[string]struct{}) []string {
	ignoredKeys := make([]string, 0)
	for _, key := range keys {
		if _, ok := validKeys[key]; !ok {
			ignoredKeys = append(ignoredKeys, key)
		}
	}
	return ignoredKeys
}
