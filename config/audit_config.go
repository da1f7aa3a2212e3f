package config

import (
	"errors"

	"github.com/spf13/cobra"
)

type AuditConfig struct {
	Log   log
	Mongo Mongo
	Base  auditBase
}

type auditBase struct {
	Limit int64 `mapstructure:"limit"`
}

func SetupAuditSpecificFlags(conf *AuditConfig, cmd *cobra.Command) {
	cmd.Flags().Int64Var(&conf.Base.Limit, "limit", 20, "How many of the latest audit events to show")
}

func (conf *AuditConfig) Validate() error {
	if !conf.Mongo.Enabled() {
		return errors.New("mongo uri must be set to read the audit trail")
	}
	if conf.Base.Limit <= 0 {
		return errors.New("limit must be positive")
	}
	return validateMongoConf(conf.Mongo)
}

func CheckSuperfluousAuditKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addConfigKeys(validKeys, log{}, "")
	addConfigKeys(validKeys, Mongo{}, "")
	addConfigKeys(validKeys, auditBase{}, "base")

	return superfluousKeys(keys, validKeys)
}
