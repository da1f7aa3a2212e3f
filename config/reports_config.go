package config

import (
	"errors"

	"github.com/spf13/cobra"
)

// ReportsConfig is shared by the subcommands that read stored reports back.
type ReportsConfig struct {
	Database Database
	Log      log
	Base     reportsBase
}

type reportsBase struct {
	Limit  int    `mapstructure:"limit"`
	ID     uint   `mapstructure:"id"`
	Output string `mapstructure:"output"`
}

func SetupReportsListFlags(conf *ReportsConfig, cmd *cobra.Command) {
	cmd.Flags().IntVar(&conf.Base.Limit, "limit", 20, "How many of the latest stored reports to list")
}

func SetupReportsShowFlags(conf *ReportsConfig, cmd *cobra.Command) {
	cmd.Flags().UintVar(&conf.Base.ID, "id", 0, "ID of the stored report to render")
	cmd.Flags().StringVar(&conf.Base.Output, "output", "", "If set, write the rendered report CSV to this file instead of stdout")
}

func (conf *ReportsConfig) ValidateList() error {
	if conf.Base.Limit <= 0 {
		return errors.New("limit must be positive")
	}
	return validateDatabaseConf(conf.Database)
}

func (conf *ReportsConfig) ValidateShow() error {
	if conf.Base.ID == 0 {
		return errors.New("id must be set")
	}
	return validateDatabaseConf(conf.Database)
}

func CheckSuperfluousReportsKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addConfigKeys(validKeys, Database{}, "")
	addConfigKeys(validKeys, log{}, "")
	addConfigKeys(validKeys, reportsBase{}, "base")

	return superfluousKeys(keys, validKeys)
}
