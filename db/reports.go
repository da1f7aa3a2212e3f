package db

import (
	"errors"

	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/DefiantLabs/crypto-tax/csv/parsers"
	"github.com/DefiantLabs/crypto-tax/csv/parsers/irs"
	"github.com/DefiantLabs/crypto-tax/db/models"
	"gorm.io/gorm"
)

// NewTaxReport converts classified rows into a storable report, keeping their order.
func NewTaxReport(source string, checksum string, rows []irs.Row) models.TaxReport {
	report := models.TaxReport{
		Source:   source,
		Format:   irs.ParserKey,
		Checksum: checksum,
		RowCount: len(rows),
		Rows:     make([]models.TaxReportRow, 0, len(rows)),
	}

	for i, row := range rows {
		report.Rows = append(report.Rows, models.TaxReportRow{
			Position:        i,
			Date:            row.Date,
			TransactionType: row.Label,
			Category:        row.TransactionType.String(),
			Asset:           row.Asset,
			Quantity:        row.Quantity,
			PricePerUnit:    row.PricePerUnit,
			Proceeds:        row.Proceeds.NullDecimal(),
			CostBasis:       row.CostBasis.NullDecimal(),
			GainLoss:        row.GainLoss.NullDecimal(),
			Notes:           row.Notes,
		})
	}

	return report
}

// SaveTaxReport stores the report and its rows in one transaction. When a report with the
// same checksum already exists, that report is returned, created is false and nothing is written.
func SaveTaxReport(db *gorm.DB, report models.TaxReport) (saved models.TaxReport, created bool, err error) {
	err = db.Transaction(func(dbTransaction *gorm.DB) error {
		var existing models.TaxReport
		result := dbTransaction.Where("checksum = ?", report.Checksum).First(&existing)
		if result.Error == nil {
			saved = existing
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			config.Log.Error("Error searching DB for report.", result.Error)
			return result.Error
		}

		if err := dbTransaction.Create(&report).Error; err != nil {
			config.Log.Error("Error creating report.", err)
			return err
		}

		saved = report
		created = true
		return nil
	})

	return saved, created, err
}

// GetTaxReports returns up to limit reports, newest first. Rows are not loaded.
func GetTaxReports(db *gorm.DB, limit int) ([]models.TaxReport, error) {
	var reports []models.TaxReport
	result := db.Order("created_at desc").Order("id desc").Limit(limit).Find(&reports)
	return reports, result.Error
}

// GetTaxReportRows returns the rows of a report in report order.
func GetTaxReportRows(db *gorm.DB, reportID uint) ([]models.TaxReportRow, error) {
	var rows []models.TaxReportRow
	result := db.Where("tax_report_id = ?", reportID).Order("position asc").Find(&rows)
	return rows, result.Error
}

// IRSRows rebuilds report rows from their stored form, so a saved report renders to the
// same CSV it was generated as.
func IRSRows(stored []models.TaxReportRow) []irs.Row {
	rows := make([]irs.Row, 0, len(stored))
	for _, row := range stored {
		rows = append(rows, irs.Row{
			Date:            row.Date,
			TransactionType: irs.ParseTransactionType(row.Category),
			Label:           row.TransactionType,
			Asset:           row.Asset,
			Quantity:        row.Quantity,
			PricePerUnit:    row.PricePerUnit,
			Proceeds:        parsers.AmountFromNull(row.Proceeds),
			CostBasis:       parsers.AmountFromNull(row.CostBasis),
			GainLoss:        parsers.AmountFromNull(row.GainLoss),
			Notes:           row.Notes,
		})
	}
	return rows
}

// GetTaxReport loads a single report by id, without its rows.
func GetTaxReport(db *gorm.DB, reportID uint) (models.TaxReport, error) {
	var report models.TaxReport
	result := db.First(&report, reportID)
	return report, result.Error
}
