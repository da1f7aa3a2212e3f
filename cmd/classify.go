package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/DefiantLabs/crypto-tax/ai"
	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/spf13/cobra"
)

var classifyConfig config.ClassifyConfig

func init() {
	config.SetupLogFlags(&classifyConfig.Log, classifyCmd)
	config.SetupAIFlags(&classifyConfig.AI, classifyCmd)
	config.SetupClassifySpecificFlags(&classifyConfig, classifyCmd)
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classifies transactions with an AI model.",
	Long: `Sends the transactions in a JSON file (a list, or the output of the wallet command) to an
	OpenRouter compatible gateway and prints a type and explanation for each one. Simple tasks
	use the free model tier, complex ones the paid tier.`,
	PreRunE: setupClassify,
	Run: func(cmd *cobra.Command, args []string) {
		transactions, err := readTransactions(classifyConfig.Base.Input)
		if err != nil {
			config.Log.Fatal("Error reading transactions", err)
		}

		complexity, err := ai.ParseComplexity(classifyConfig.Base.Complexity)
		if err != nil {
			config.Log.Fatal("Error reading complexity", err)
		}

		client := ai.NewClient(classifyConfig.AI)
		classifications, err := client.Classify(cmd.Context(), transactions, complexity)
		if err != nil {
			config.Log.Fatal("AI classification failed", err)
		}

		out, err := json.MarshalIndent(classifications, "", "  ")
		if err != nil {
			config.Log.Fatal("Error encoding classifications", err)
		}
		fmt.Println(string(out))
	},
}

// readTransactions loads a JSON list of transactions, unwrapping the wallet command's output.
func readTransactions(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening input %s: %w", path, err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}

	if m, ok := payload.(map[string]any); ok {
		if txs, ok := m["transactions"]; ok {
			return txs, nil
		}
	}
	return payload, nil
}

func setupClassify(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	classifyConfig.AI.ResolveCredentials()

	err := classifyConfig.Validate(ai.ValidComplexities())
	if err != nil {
		return err
	}

	setupLogger(classifyConfig.Log.Level, classifyConfig.Log.Path, classifyConfig.Log.Pretty)
	warnSuperfluousKeys(config.CheckSuperfluousClassifyKeys(viperConf.AllKeys()))

	return nil
}
