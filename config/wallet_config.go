package config

import (
	"errors"
	"time"

	"github.com/DefiantLabs/crypto-tax/util"
	"github.com/spf13/cobra"
)

type WalletConfig struct {
	Log       log
	Redis     Redis
	Mongo     Mongo
	Providers Providers
	Base      walletBase
}

type walletBase struct {
	Address string `mapstructure:"address"`
	Chain   string `mapstructure:"chain"`
	Output  string `mapstructure:"output"`
}

// Providers holds the block explorer endpoints and credentials.
type Providers struct {
	CovalentURL       string        `mapstructure:"covalent-url"`
	CovalentAPIKey    string        `mapstructure:"covalent-api-key"`
	HeliusURL         string        `mapstructure:"helius-url"`
	HeliusAPIKey      string        `mapstructure:"helius-api-key"`
	BlockstreamURL    string        `mapstructure:"blockstream-url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
}

func SetupProviderFlags(providerConf *Providers, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&providerConf.CovalentURL, "providers.covalent-url", "https://api.covalenthq.com", "covalent api base url")
	cmd.PersistentFlags().StringVar(&providerConf.CovalentAPIKey, "providers.covalent-api-key", "", "covalent api key (default $"+EnvCovalentAPIKey+")")
	cmd.PersistentFlags().StringVar(&providerConf.HeliusURL, "providers.helius-url", "https://api.helius.xyz", "helius api base url")
	cmd.PersistentFlags().StringVar(&providerConf.HeliusAPIKey, "providers.helius-api-key", "", "helius api key (default $"+EnvHeliusAPIKey+")")
	cmd.PersistentFlags().StringVar(&providerConf.BlockstreamURL, "providers.blockstream-url", "https://blockstream.info", "blockstream api base url")
	cmd.PersistentFlags().DurationVar(&providerConf.Timeout, "providers.timeout", 20*time.Second, "timeout for a single explorer request")
	cmd.PersistentFlags().Float64Var(&providerConf.RequestsPerSecond, "providers.requests-per-second", 5, "max explorer requests per second")
}

func SetupWalletSpecificFlags(conf *WalletConfig, cmd *cobra.Command) {
	cmd.Flags().StringVar(&conf.Base.Address, "address", "", "The wallet address to fetch history for")
	cmd.Flags().StringVar(&conf.Base.Chain, "chain", "eth", "The chain the address lives on (eth, base, arbitrum, solana, bitcoin)")
	cmd.Flags().StringVar(&conf.Base.Output, "output", "", "If set, write the transactions as JSON to this file instead of stdout")
}

// ResolveCredentials fills unset API keys from the environment.
func (p *Providers) ResolveCredentials() {
	p.CovalentAPIKey = valueOrEnv(p.CovalentAPIKey, EnvCovalentAPIKey)
	p.HeliusAPIKey = valueOrEnv(p.HeliusAPIKey, EnvHeliusAPIKey)
}

func validateProviderConf(providerConf Providers) error {
	if util.StrNotSet(providerConf.CovalentURL) || util.StrNotSet(providerConf.HeliusURL) || util.StrNotSet(providerConf.BlockstreamURL) {
		return errors.New("provider urls must be set")
	}
	if providerConf.Timeout <= 0 {
		return errors.New("provider timeout must be positive")
	}
	if providerConf.RequestsPerSecond <= 0 {
		return errors.New("requests-per-second must be positive")
	}
	return nil
}

func (conf *WalletConfig) Validate() error {
	if util.StrNotSet(conf.Base.Address) {
		return errors.New("address must be set")
	}
	if util.StrNotSet(conf.Base.Chain) {
		return errors.New("chain must be set")
	}
	if err := validateProviderConf(conf.Providers); err != nil {
		return err
	}
	if err := validateRedisConf(conf.Redis); err != nil {
		return err
	}
	return validateMongoConf(conf.Mongo)
}

func CheckSuperfluousWalletKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addConfigKeys(validKeys, log{}, "")
	addConfigKeys(validKeys, Redis{}, "")
	addConfigKeys(validKeys, Mongo{}, "")
	addConfigKeys(validKeys, Providers{}, "")
	addConfigKeys(validKeys, walletBase{}, "base")

	return superfluousKeys(keys, validKeys)
}
