package delivery

import (
	"net/http"
	"strconv"

	authdelivery "qisqa-backend/internal/auth/delivery"
	reportdomain "qisqa-backend/internal/report/domain"
	reportdto "qisqa-backend/internal/report/dto"
	"qisqa-backend/internal/report/usecase"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
	}
}

// GenerateReport fetches a public sheet, summarizes it and stores the result
// POST /api/generateReport
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req reportdto.GenerateReportRequest
	// an unreadable body is treated the same as a missing URL
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Err(err).Str("client_ip", c.ClientIP()).Msg("unreadable generate report body")
	}

	user, _ := authdelivery.CurrentUser(c)
	report, err := h.reportUsecase.GenerateReport(c.Request.Context(), user, req.SheetURL)
	if err != nil {
		reportErr := reportdomain.AsReportError(err)
		c.JSON(reportErr.Status(), reportdto.ErrorResponse{Error: reportErr.Message})
		return
	}

	c.JSON(http.StatusOK, reportdto.ReportResponse{
		Success:      true,
		Summary:      report.Summary,
		Message:      reportdomain.MsgReportCreated,
		RowsAnalyzed: report.RowsAnalyzed,
		Headers:      report.HeaderPreview(),
	})
}

// ListSummaries returns the caller's stored reports, newest first
// GET /api/summaries?limit=&offset=
func (h *ReportHandler) ListSummaries(c *gin.Context) {
	user, ok := authdelivery.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, reportdto.ErrorResponse{Error: reportdomain.MsgUnauthenticated})
		return
	}

	limit := defaultListLimit
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = min(parsed, maxListLimit)
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	summaries, total, err := h.reportUsecase.ListSummaries(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		log.Error().Str("user_id", user.ID).Err(err).Msg("failed to list summaries")
		c.JSON(http.StatusInternalServerError, reportdto.ErrorResponse{Error: reportdomain.MsgListFailed})
		return
	}
	if summaries == nil {
		summaries = []*reportdomain.Summary{}
	}

	c.JSON(http.StatusOK, reportdto.SummariesResponse{
		Summaries: summaries,
		Limit:     limit,
		Offset:    offset,
		Total:     total,
	})
}
