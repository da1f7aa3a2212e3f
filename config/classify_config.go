package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/DefiantLabs/crypto-tax/util"
	"github.com/spf13/cobra"
)

type ClassifyConfig struct {
	Log  log
	AI   AI
	Base classifyBase
}

type classifyBase struct {
	Input      string `mapstructure:"input"`
	Complexity string `mapstructure:"complexity"`
}

// AI configures the OpenRouter gateway.
type AI struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api-key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func SetupAIFlags(aiConf *AI, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&aiConf.URL, "ai.url", "https://openrouter.ai/api/v1/chat/completions", "chat completions endpoint")
	cmd.PersistentFlags().StringVar(&aiConf.APIKey, "ai.api-key", "", "gateway api key (default $"+EnvOpenRouterAPIKey+")")
	cmd.PersistentFlags().DurationVar(&aiConf.Timeout, "ai.timeout", 30*time.Second, "timeout for a single classification request")
}

func SetupClassifySpecificFlags(conf *ClassifyConfig, cmd *cobra.Command) {
	cmd.Flags().StringVar(&conf.Base.Input, "input", "", "JSON file with the transactions to classify (as written by the wallet command)")
	cmd.Flags().StringVar(&conf.Base.Complexity, "complexity", "simple", "Task complexity hint, one of simple or complex")
}

// ResolveCredentials fills an unset API key from the environment.
func (a *AI) ResolveCredentials() {
	a.APIKey = valueOrEnv(a.APIKey, EnvOpenRouterAPIKey)
}

func (conf *ClassifyConfig) Validate(validComplexities []string) error {
	if util.StrNotSet(conf.Base.Input) {
		return errors.New("input must be set")
	}

	found := false
	for _, v := range validComplexities {
		if v == conf.Base.Complexity {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("invalid complexity %s, valid values are %s", conf.Base.Complexity, validComplexities)
	}

	if util.StrNotSet(conf.AI.URL) {
		return errors.New("ai url must be set")
	}
	if util.StrNotSet(conf.AI.APIKey) {
		return fmt.Errorf("ai api key must be set (flag ai.api-key or $%s)", EnvOpenRouterAPIKey)
	}
	if conf.AI.Timeout <= 0 {
		return errors.New("ai timeout must be positive")
	}
	return nil
}

func CheckSuperfluousClassifyKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addConfigKeys(validKeys, log{}, "")
	addConfigKeys(validKeys, AI{}, "ai")
	addConfigKeys(validKeys, classifyBase{}, "base")

	return superfluousKeys(keys, validKeys)
}
