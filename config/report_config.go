package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/DefiantLabs/crypto-tax/util"
	"github.com/spf13/cobra"
)

type ReportConfig struct {
	Database Database
	Mongo    Mongo
	Log      log
	Base     reportBase
}

type reportBase struct {
	Input   string `mapstructure:"input"`
	Output  string `mapstructure:"output"`
	Format  string `mapstructure:"format"`
	Persist bool   `mapstructure:"persist"`
}

func SetupReportSpecificFlags(validParserKeys []string, conf *ReportConfig, cmd *cobra.Command) {
	cmd.Flags().StringVar(&conf.Base.Input, "input", "", "CSV export of raw transactions (Date,Type,Asset,Quantity,USD_Value,From,To,Tx_Hash)")
	cmd.Flags().StringVar(&conf.Base.Output, "output", "", "Where to write the tax report CSV. The file is replaced atomically.")
	cmd.Flags().BoolVar(&conf.Base.Persist, "persist", false, "If set, the generated report is also stored in the database")
	defaultParser := ""
	if len(validParserKeys) != 0 {
		defaultParser = validParserKeys[0]
	}

	cmd.Flags().StringVar(&conf.Base.Format, "format", defaultParser, "The format to output")
}

func (conf *ReportConfig) Validate(validCsvParsers []string) error {
	found := false

	for _, v := range validCsvParsers {
		if v == conf.Base.Format {
			found = true
			break
		}
	}

	if !found {
		return fmt.Errorf("invalid format %s, valid formats are %s", conf.Base.Format, validCsvParsers)
	}

	if util.StrNotSet(conf.Base.Input) {
		return errors.New("input must be set")
	}
	if util.StrNotSet(conf.Base.Output) {
		return errors.New("output must be set")
	}
	if filepath.Clean(conf.Base.Input) == filepath.Clean(conf.Base.Output) {
		return errors.New("output must not overwrite the input")
	}

	if conf.Base.Persist {
		if err := validateDatabaseConf(conf.Database); err != nil {
			return err
		}
	}

	return validateMongoConf(conf.Mongo)
}

func CheckSuperfluousReportKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addConfigKeys(validKeys, Database{}, "")
	addConfigKeys(validKeys, log{}, "")
	addConfigKeys(validKeys, Mongo{}, "")
	addConfigKeys(validKeys, reportBase{}, "base")

	return superfluousKeys(keys, validKeys)
}
