package dto

import reportdomain "qisqa-backend/internal/report/domain"

// GenerateReportRequest is the body of POST /api/generateReport
type GenerateReportRequest struct {
	SheetURL string `json:"sheetUrl"`
}

// ReportResponse is returned when a report was generated
type ReportResponse struct {
	Success      bool     `json:"success"`
	Summary      string   `json:"summary"`
	Message      string   `json:"message"`
	RowsAnalyzed int      `json:"rowsAnalyzed"`
	Headers      []string `json:"headers"`
}

// ErrorResponse is returned for every failure
type ErrorResponse struct {
	Error string `json:"error"`
}

type SummariesResponse struct {
	Summaries []*reportdomain.Summary `json:"summaries"`
	Limit     int                     `json:"limit"`
	Offset    int                     `json:"offset"`
	Total     int64                   `json:"total"`
}
