package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxReport is one generated report. Checksum identifies the rendered CSV, so the same
// export is only stored once.
type TaxReport struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Source    string
	Format    string
	Checksum  string `gorm:"uniqueIndex;not null"`
	RowCount  int
	Rows      []TaxReportRow `gorm:"foreignKey:TaxReportID;constraint:OnDelete:CASCADE" json:",omitempty"`
}

// TaxReportRow mirrors one line of the report. The nullable amounts are NULL when the
// figure is UNKNOWN. TransactionType holds the label as rendered; Category is the
// classified type, which differs from the label for Other rows.
type TaxReportRow struct {
	ID              uint `gorm:"primaryKey"`
	TaxReportID     uint `gorm:"uniqueIndex:idx_report_position;not null"`
	Position        int  `gorm:"uniqueIndex:idx_report_position"`
	Date            string
	TransactionType string              `gorm:"index"`
	Category        string              `gorm:"index"`
	Asset           string              `gorm:"index"`
	Quantity        decimal.Decimal     `gorm:"type:numeric"`
	PricePerUnit    decimal.Decimal     `gorm:"type:numeric"`
	Proceeds        decimal.NullDecimal `gorm:"type:numeric"`
	CostBasis       decimal.NullDecimal `gorm:"type:numeric"`
	GainLoss        decimal.NullDecimal `gorm:"type:numeric"`
	Notes           string
}
