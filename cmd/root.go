package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DefiantLabs/crypto-tax/audit"
	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/DefiantLabs/crypto-tax/db"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	cfgFile string // config file location to load
	envFile string // .env file location to load
	rootCmd = &cobra.Command{
		Use:   "crypto-tax",
		Short: "A CLI tool for turning wallet activity into IRS-friendly tax reports",
		Long: `Crypto Tax CLI reads raw wallet transaction exports and writes IRS-friendly tax reports.
		It can also fetch wallet history from block explorers and classify transactions with an AI gateway.`,
	}
	viperConf = viper.New()
)

func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Execute executes the root command. SIGINT and SIGTERM cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(loadEnv, getViperConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file location (default is <CWD>/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file holding API keys, skipped when missing")
}

func loadEnv() {
	if err := config.LoadEnv(envFile); err != nil {
		log.Fatalf("Failed to load env file %v. Err: %v", envFile, err)
	}
}

func getViperConfig() {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("toml")
	} else {
		// Check in current working dir
		pwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Could not determine current working dir. Err: %v", err)
		}
		if _, err := os.Stat(fmt.Sprintf("%v/config.toml", pwd)); err == nil {
			cfgFile = pwd
		} else {
			// file not in current working dir. Check home dir instead
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatalf("Failed to find user home dir. Err: %v", err)
			}
			cfgFile = fmt.Sprintf("%s/.crypto-tax", home)
		}
		v.AddConfigPath(cfgFile)
		v.SetConfigType("toml")
		v.SetConfigName("config")
	}

	var noConfig bool
	err := v.ReadInConfig()
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "Config File \"config\" Not Found"):
			noConfig = true
		case strings.Contains(err.Error(), "incomplete number"):
			log.Fatalf("Failed to read config file %v. This usually means you forgot to wrap a string in quotes.", err)
		default:
			log.Fatalf("Failed to read config file. Err: %v", err)
		}
	}

	if !noConfig {
		log.Println("CFG successfully read from: ", cfgFile)
	}

	viperConf = v
}

// configKey is where a flag lives in the config file. Shared sections already carry their
// section in the flag name; command specific flags live under [base].
func configKey(flagName string) string {
	if strings.Contains(flagName, ".") {
		return flagName
	}
	return "base." + flagName
}

// Set config vars from config file not already specified on command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := configKey(f.Name)

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
			if err != nil {
				log.Fatalf("Failed to bind config file value %v. Err: %v", configName, err)
			}
		}
	})
}

func warnSuperfluousKeys(ignoredKeys []string) {
	if len(ignoredKeys) > 0 {
		config.Log.Warnf("Warning, the following invalid keys will be ignored: %v", ignoredKeys)
	}
}

func setupLogger(logLevel string, logPath string, prettyLogging bool) {
	config.DoConfigureLogger(logPath, logLevel, prettyLogging)
}

func connectToDBAndMigrate(dbConfig config.Database) (*gorm.DB, error) {
	database, err := db.PostgresDbConnect(dbConfig.Host, dbConfig.Port, dbConfig.Database, dbConfig.User, dbConfig.Password, strings.ToLower(dbConfig.LogLevel))
	if err != nil {
		config.Log.Error("Could not establish connection to the database", err)
		return nil, err
	}

	sqldb, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxIdleConns(2)
	sqldb.SetMaxOpenConns(10)
	sqldb.SetConnMaxLifetime(time.Hour)

	err = db.MigrateModels(database)
	if err != nil {
		config.Log.Error("Error running DB migrations", err)
	}

	return database, err
}

// openTrail opens the audit trail. Auditing never stops a command, so failures fall back to a NopTrail.
func openTrail(ctx context.Context, mongoConf config.Mongo) (audit.Trail, func()) {
	trail, closeFn, err := audit.Open(ctx, mongoConf)
	if err != nil {
		config.Log.Warn("Could not open the audit trail, events will not be recorded.", err)
		return audit.NopTrail{}, func() {}
	}
	return trail, closeFn
}

func recordEvent(ctx context.Context, trail audit.Trail, event audit.Event) {
	if err := trail.Record(ctx, event); err != nil {
		config.Log.Warn("Could not record audit event "+event.Action, err)
	}
}
