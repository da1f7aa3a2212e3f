package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (suite *ConfigTestSuite) TestValidateDatabaseConf() {
	conf := Database{
		Host:     "",
		Port:     "",
		Database: "",
		User:     "",
		Password: "",
	}

	err := validateDatabaseConf(conf)
	suite.Require().Error(err)
	conf.Host = "fake-host"

	err = validateDatabaseConf(conf)
	suite.Require().Error(err)

	conf.Port = "5432"
	err = validateDatabaseConf(conf)
	suite.Require().Error(err)

	conf.Database = "fake-database"
	err = validateDatabaseConf(conf)
	suite.Require().Error(err)

	conf.User = "fake-user"
	err = validateDatabaseConf(conf)
	suite.Require().Error(err)

	conf.Password = "fake-password"
	err = validateDatabaseConf(conf)
	suite.Require().NoError(err)
}

func (suite *ConfigTestSuite) TestValidateRedisConf() {
	conf := Redis{TTL: time.Minute}
	suite.Require().NoError(validateRedisConf(conf))
	suite.Require().False(conf.Enabled())

	conf.Addr = "localhost"
	suite.Require().Error(validateRedisConf(conf))

	conf.Addr = "localhost:6379"
	suite.Require().NoError(validateRedisConf(conf))
	suite.Require().True(conf.Enabled())

	conf.TTL = 0
	suite.Require().Error(validateRedisConf(conf))
}

func (suite *ConfigTestSuite) TestValidateMongoConf() {
	conf := Mongo{}
	suite.Require().NoError(validateMongoConf(conf))

	conf.URI = "localhost:27017"
	suite.Require().Error(validateMongoConf(conf))

	conf.URI = "mongodb://localhost:27017"
	suite.Require().Error(validateMongoConf(conf))

	conf.Database = "crypto_tax"
	suite.Require().NoError(validateMongoConf(conf))
}

func (suite *ConfigTestSuite) TestValidConfigKeys() {
	keys := getValidConfigKeys(Database{}, "")
	suite.Require().Contains(keys, "database.host")
	suite.Require().Contains(keys, "database.log-level")

	keys = getValidConfigKeys(Providers{}, "")
	suite.Require().Contains(keys, "providers.covalent-api-key")
	suite.Require().Contains(keys, "providers.requests-per-second")
}

func (suite *ConfigTestSuite) TestParseLevel() {
	suite.Require().Equal(zerolog.DebugLevel, parseLevel("DEBUG"))
	suite.Require().Equal(zerolog.ErrorLevel, parseLevel("error"))
	suite.Require().Equal(zerolog.InfoLevel, parseLevel(""))
	suite.Require().Equal(zerolog.InfoLevel, parseLevel("verbose"))
}

func (suite *ConfigTestSuite) TestLoadEnv() {
	suite.Require().NoError(LoadEnv(filepath.Join(suite.T().TempDir(), "missing.env")))

	envFile := filepath.Join(suite.T().TempDir(), ".env")
	suite.Require().NoError(os.WriteFile(envFile, []byte("CRYPTO_TAX_TEST_KEY=from-file\n"), 0o600))
	suite.T().Setenv("CRYPTO_TAX_TEST_KEY", "")
	suite.Require().NoError(os.Unsetenv("CRYPTO_TAX_TEST_KEY"))

	suite.Require().NoError(LoadEnv(envFile))
	suite.Require().Equal("from-file", os.Getenv("CRYPTO_TAX_TEST_KEY"))
	suite.Require().Equal("explicit", valueOrEnv("explicit", "CRYPTO_TAX_TEST_KEY"))
	suite.Require().Equal("from-file", valueOrEnv("", "CRYPTO_TAX_TEST_KEY"))
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
