package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/DefiantLabs/crypto-tax/audit"
	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/DefiantLabs/crypto-tax/csv"
	"github.com/DefiantLabs/crypto-tax/wallet"
	"github.com/spf13/cobra"
)

var walletConfig config.WalletConfig

func init() {
	config.SetupLogFlags(&walletConfig.Log, walletCmd)
	config.SetupRedisFlags(&walletConfig.Redis, walletCmd)
	config.SetupMongoFlags(&walletConfig.Mongo, walletCmd)
	config.SetupProviderFlags(&walletConfig.Providers, walletCmd)
	config.SetupWalletSpecificFlags(&walletConfig, walletCmd)
	rootCmd.AddCommand(walletCmd)
}

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Fetches the transaction history of a wallet.",
	Long: `Fetches the transaction history of a wallet on ETH, Base, Arbitrum (Covalent), Solana (Helius)
	or Bitcoin (Blockstream) and prints it as JSON. When no API key is set, the explorer fails or
	returns nothing, placeholder data is printed instead and marked with "mock": true.`,
	PreRunE: setupWallet,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cache := walletCache(cmd)
		fetcher := wallet.NewFetcher(walletConfig.Providers, cache, walletConfig.Redis.TTL)

		res, err := fetcher.FetchTransactions(ctx, walletConfig.Base.Address, walletConfig.Base.Chain)
		if err != nil {
			config.Log.Fatal("Error fetching wallet history", err)
		}

		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			config.Log.Fatal("Error encoding wallet history", err)
		}

		if walletConfig.Base.Output != "" {
			if err := csv.WriteFile(walletConfig.Base.Output, append(out, '\n')); err != nil {
				config.Log.Fatal("Error writing wallet history", err)
			}
			config.Log.Infof("Wrote %d transactions to %s", len(res.Transactions), walletConfig.Base.Output)
		} else {
			fmt.Println(string(out))
		}

		trail, closeTrail := openTrail(ctx, walletConfig.Mongo)
		defer closeTrail()

		recordEvent(ctx, trail, audit.Event{
			Action:  audit.WalletFetched,
			Subject: walletConfig.Base.Chain + ":" + walletConfig.Base.Address,
			Details: map[string]string{
				"source": string(res.Source),
				"count":  strconv.Itoa(len(res.Transactions)),
				"mock":   strconv.FormatBool(res.Mock),
			},
		})
	},
}

// walletCache prefers redis and falls back to an in-process cache.
func walletCache(cmd *cobra.Command) wallet.Cache {
	if !walletConfig.Redis.Enabled() {
		return wallet.NewMemoryCache(walletConfig.Redis.TTL)
	}

	rdb, err := wallet.ConnectRedis(cmd.Context(), walletConfig.Redis)
	if err != nil {
		config.Log.Warn("Could not connect to redis, using an in-memory cache.", err)
		return wallet.NewMemoryCache(walletConfig.Redis.TTL)
	}
	cobra.OnFinalize(func() {
		_ = rdb.Close()
	})
	return wallet.NewRedisCache(rdb)
}

func setupWallet(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	walletConfig.Providers.ResolveCredentials()

	err := walletConfig.Validate()
	if err != nil {
		return err
	}

	setupLogger(walletConfig.Log.Level, walletConfig.Log.Path, walletConfig.Log.Pretty)
	warnSuperfluousKeys(config.CheckSuperfluousWalletKeys(viperConf.AllKeys()))

	return nil
}
