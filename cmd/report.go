package cmd

import (
	"errors"
	"strconv"

	"github.com/DefiantLabs/crypto-tax/audit"
	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/DefiantLabs/crypto-tax/csv"
	csvParsers "github.com/DefiantLabs/crypto-tax/csv/parsers"
	"github.com/DefiantLabs/crypto-tax/csv/parsers/irs"
	dbTypes "github.com/DefiantLabs/crypto-tax/db"

	"github.com/spf13/cobra"
)

var (
	reportConfig    config.ReportConfig
	validParserKeys = csvParsers.GetParserKeys()
)

func init() {
	config.SetupLogFlags(&reportConfig.Log, reportCmd)
	config.SetupDatabaseFlags(&reportConfig.Database, reportCmd)
	config.SetupMongoFlags(&reportConfig.Mongo, reportCmd)
	config.SetupReportSpecificFlags(validParserKeys, &reportConfig, reportCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates an IRS-friendly tax report from a raw transaction export.",
	Long: `Reads a raw wallet transaction CSV (Date,Type,Asset,Quantity,USD_Value,From,To,Tx_Hash),
	classifies every row and writes the tax report CSV. Figures that need cost-basis tracking
	are written as UNKNOWN. Nothing is written unless every row parses.`,
	PreRunE: setupReport,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		csvRows, headers, err := csv.ParseFile(reportConfig.Base.Input, reportConfig.Base.Format)
		if err != nil {
			config.Log.Fatal("Error generating report", err)
		}

		buffer, err := csv.ToCsv(csvRows, headers)
		if err != nil {
			config.Log.Fatal("Error generating CSV", err)
		}

		err = csv.WriteFile(reportConfig.Base.Output, buffer.Bytes())
		if err != nil {
			config.Log.Fatal("Error writing report", err)
		}

		checksum := csv.Checksum(buffer.Bytes())
		config.Log.ZInfo().
			Str("output", reportConfig.Base.Output).
			Int("rows", len(csvRows)).
			Str("checksum", checksum).
			Msg("Report written")

		trail, closeTrail := openTrail(ctx, reportConfig.Mongo)
		defer closeTrail()

		recordEvent(ctx, trail, audit.Event{
			Action:  audit.ReportGenerated,
			Subject: reportConfig.Base.Output,
			Details: map[string]string{
				"input":    reportConfig.Base.Input,
				"format":   reportConfig.Base.Format,
				"checksum": checksum,
				"rows":     strconv.Itoa(len(csvRows)),
			},
		})

		if !reportConfig.Base.Persist {
			return
		}

		db, err := connectToDBAndMigrate(reportConfig.Database)
		if err != nil {
			config.Log.Fatal("Could not establish connection to the database", err)
		}

		report := dbTypes.NewTaxReport(reportConfig.Base.Input, checksum, irs.RowsOf(csvRows))
		saved, created, err := dbTypes.SaveTaxReport(db, report)
		if err != nil {
			config.Log.Fatal("Error saving report", err)
		}

		if created {
			config.Log.Infof("Report stored with ID %d", saved.ID)
		} else {
			config.Log.Infof("Identical report already stored with ID %d, nothing written", saved.ID)
		}

		recordEvent(ctx, trail, audit.Event{
			Action:  audit.ReportPersisted,
			Subject: reportConfig.Base.Output,
			Details: map[string]string{
				"report_id": strconv.FormatUint(uint64(saved.ID), 10),
				"checksum":  checksum,
				"created":   strconv.FormatBool(created),
			},
		})
	},
}

func setupReport(cmd *cobra.Command, args []string) error {
	if len(validParserKeys) == 0 {
		return errors.New("error during setup, no CSV parsers found")
	}

	bindFlags(cmd, viperConf)
	err := reportConfig.Validate(validParserKeys)
	if err != nil {
		return err
	}

	setupLogger(reportConfig.Log.Level, reportConfig.Log.Path, reportConfig.Log.Pretty)
	warnSuperfluousKeys(config.CheckSuperfluousReportKeys(viperConf.AllKeys()))

	return nil
}
