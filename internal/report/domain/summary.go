package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Summary is one generated report. Rows are append-only.
type Summary struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	UserID       string         `json:"user_id" gorm:"index:idx_summaries_user_created,priority:1;not null"`
	SheetURL     string         `json:"sheet_url" gorm:"type:text;not null"`
	Summary      string         `json:"summary" gorm:"type:text;not null"`
	RowsAnalyzed int            `json:"rows_analyzed"`
	Headers      datatypes.JSON `json:"headers" gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index:idx_summaries_user_created,priority:2,sort:desc"`
}

// TableName specifies the table name for GORM
func (Summary) TableName() string {
	return "summaries"
}

// Report is the outcome of a successful generation request.
type Report struct {
	Summary      string
	RowsAnalyzed int
	Headers      []string
}

// HeaderPreview returns at most HeaderPreviewLimit header names.
func (r *Report) HeaderPreview() []string {
	if len(r.Headers) <= HeaderPreviewLimit {
		return r.Headers
	}
	return r.Headers[:HeaderPreviewLimit]
}
