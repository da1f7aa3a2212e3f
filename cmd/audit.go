package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/DefiantLabs/crypto-tax/audit"
	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/spf13/cobra"
)

var auditConfig config.AuditConfig

func init() {
	config.SetupLogFlags(&auditConfig.Log, auditCmd)
	config.SetupMongoFlags(&auditConfig.Mongo, auditCmd)
	config.SetupAuditSpecificFlags(&auditConfig, auditCmd)
	rootCmd.AddCommand(auditCmd)
}

var auditCmd = &cobra.Command{
	Use:     "audit",
	Short:   "Shows the latest audit trail events.",
	Long:    `Prints the most recent audit events (generated reports, persisted reports, wallet fetches), newest first.`,
	PreRunE: setupAudit,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		trail, closeTrail, err := audit.Connect(ctx, auditConfig.Mongo)
		if err != nil {
			config.Log.Fatal("Could not connect to the audit trail", err)
		}
		defer closeTrail()

		events, err := trail.Latest(ctx, auditConfig.Base.Limit)
		if err != nil {
			config.Log.Fatal("Error reading the audit trail", err)
		}

		out, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			config.Log.Fatal("Error encoding audit events", err)
		}
		fmt.Println(string(out))
	},
}

func setupAudit(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	err := auditConfig.Validate()
	if err != nil {
		return err
	}

	setupLogger(auditConfig.Log.Level, auditConfig.Log.Path, auditConfig.Log.Pretty)
	warnSuperfluousKeys(config.CheckSuperfluousAuditKeys(viperConf.AllKeys()))

	return nil
}
