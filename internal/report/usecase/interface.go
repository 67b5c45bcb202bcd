package usecase

import (
	"context"

	authdomain "qisqa-backend/internal/auth/domain"
	reportdomain "qisqa-backend/internal/report/domain"
)

// SheetFetcher retrieves the CSV export of a public sheet
type SheetFetcher interface {
	FetchCSV(ctx context.Context, sheetID string) (string, error)
}

// ReportUsecase defines the interface for report operations
type ReportUsecase interface {
	// GenerateReport runs the whole pipeline for one sheet URL.
	// Every failure is a *reportdomain.ReportError.
	GenerateReport(ctx context.Context, user *authdomain.User, sheetURL string) (*reportdomain.Report, error)
	ListSummaries(ctx context.Context, userID string, limit, offset int) ([]*reportdomain.Summary, int64, error)
}
