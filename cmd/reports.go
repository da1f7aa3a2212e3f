package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/DefiantLabs/crypto-tax/csv"
	"github.com/DefiantLabs/crypto-tax/csv/parsers/irs"
	dbTypes "github.com/DefiantLabs/crypto-tax/db"
	"github.com/DefiantLabs/crypto-tax/db/models"
	"github.com/spf13/cobra"
)

var reportsConfig config.ReportsConfig

func init() {
	config.SetupLogFlags(&reportsConfig.Log, reportsCmd)
	config.SetupDatabaseFlags(&reportsConfig.Database, reportsCmd)
	config.SetupReportsListFlags(&reportsConfig, reportsListCmd)
	config.SetupReportsShowFlags(&reportsConfig, reportsShowCmd)
	reportsCmd.AddCommand(reportsListCmd, reportsShowCmd)
	rootCmd.AddCommand(reportsCmd)
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Reads back reports stored with report --persist.",
}

var reportsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Lists the latest stored reports, newest first.",
	PreRunE: setupReportsList,
	Run: func(cmd *cobra.Command, args []string) {
		db, err := connectToDBAndMigrate(reportsConfig.Database)
		if err != nil {
			config.Log.Fatal("Could not establish connection to the database", err)
		}

		reports, err := dbTypes.GetTaxReports(db, reportsConfig.Base.Limit)
		if err != nil {
			config.Log.Fatal("Error reading stored reports", err)
		}

		out, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			config.Log.Fatal("Error encoding stored reports", err)
		}
		fmt.Println(string(out))
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Renders a stored report back to CSV.",
	Long: `Loads a stored report by ID and renders it with the same writer the report command uses,
	so the output matches the CSV written when the report was generated.`,
	PreRunE: setupReportsShow,
	Run: func(cmd *cobra.Command, args []string) {
		db, err := connectToDBAndMigrate(reportsConfig.Database)
		if err != nil {
			config.Log.Fatal("Could not establish connection to the database", err)
		}

		report, err := dbTypes.GetTaxReport(db, reportsConfig.Base.ID)
		if err != nil {
			config.Log.Fatal(fmt.Sprintf("Error loading report %d", reportsConfig.Base.ID), err)
		}

		rows, err := dbTypes.GetTaxReportRows(db, report.ID)
		if err != nil {
			config.Log.Fatal("Error loading report rows", err)
		}

		buffer, err := renderStoredReport(rows)
		if err != nil {
			config.Log.Fatal("Error generating CSV", err)
		}

		if checksum := csv.Checksum(buffer.Bytes()); checksum != report.Checksum {
			config.Log.ZWarn().
				Uint("report_id", report.ID).
				Str("stored", report.Checksum).
				Str("rendered", checksum).
				Msg("Rendered report does not match the stored checksum")
		}

		if reportsConfig.Base.Output == "" {
			_, err = os.Stdout.Write(buffer.Bytes())
		} else {
			err = csv.WriteFile(reportsConfig.Base.Output, buffer.Bytes())
		}
		if err != nil {
			config.Log.Fatal("Error writing report", err)
		}
	},
}

// renderStoredReport writes stored rows through the IRS parser's headers and row layout.
func renderStoredReport(stored []models.TaxReportRow) (bytes.Buffer, error) {
	parser := irs.Parser{Rows: dbTypes.IRSRows(stored)}
	return csv.ToCsv(parser.GetRows(), parser.GetHeaders())
}

func setupReportsList(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	if err := reportsConfig.ValidateList(); err != nil {
		return err
	}

	setupLogger(reportsConfig.Log.Level, reportsConfig.Log.Path, reportsConfig.Log.Pretty)
	warnSuperfluousKeys(config.CheckSuperfluousReportsKeys(viperConf.AllKeys()))

	return nil
}

func setupReportsShow(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	if err := reportsConfig.ValidateShow(); err != nil {
		return err
	}

	setupLogger(reportsConfig.Log.Level, reportsConfig.Log.Path, reportsConfig.Log.Pretty)
	warnSuperfluousKeys(config.CheckSuperfluousReportsKeys(viperConf.AllKeys()))

	return nil
}
