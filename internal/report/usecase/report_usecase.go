package usecase

import (
	"context"
	"encoding/json"
	"strings"

	authdomain "qisqa-backend/internal/auth/domain"
	reportdomain "qisqa-backend/internal/report/domain"
	"qisqa-backend/internal/report/repository"
	"qisqa-backend/pkg/ai"

	"github.com/phuslu/log"
	"gorm.io/datatypes"
)

// DefaultPromptMaxChars bounds the CSV excerpt when no budget is configured.
const DefaultPromptMaxChars = 3000

// reportUsecase implements ReportUsecase interface
type reportUsecase struct {
	fetcher        SheetFetcher
	generator      ai.TextGenerator
	summaryRepo    repository.SummaryRepository
	promptMaxChars int
}

// NewReportUsecase creates a new instance of reportUsecase
func NewReportUsecase(fetcher SheetFetcher, generator ai.TextGenerator, summaryRepo repository.SummaryRepository, promptMaxChars int) ReportUsecase {
	if promptMaxChars <= 0 {
		promptMaxChars = DefaultPromptMaxChars
	}
	return &reportUsecase{
		fetcher:        fetcher,
		generator:      generator,
		summaryRepo:    summaryRepo,
		promptMaxChars: promptMaxChars,
	}
}

func (u *reportUsecase) GenerateReport(ctx context.Context, user *authdomain.User, sheetURL string) (*reportdomain.Report, error) {
	if user == nil || user.ID == "" {
		return nil, reportdomain.NewError(reportdomain.KindUnauthenticated, reportdomain.MsgUnauthenticated, nil)
	}

	sheetID, err := ExtractSheetID(sheetURL)
	if err != nil {
		return nil, err
	}

	csv, err := u.fetcher.FetchCSV(ctx, sheetID)
	if err != nil {
		log.Warn().Str("user_id", user.ID).Str("sheet_id", sheetID).Err(err).Msg("sheet fetch failed")
		return nil, reportdomain.NewError(reportdomain.KindFetchFailed, reportdomain.MsgFetchFailed, err)
	}

	data := ParseSheet(csv)
	if !data.HasEnoughData() {
		log.Warn().Str("user_id", user.ID).Str("sheet_id", sheetID).Int("rows", len(data.DataRows)).Msg("sheet has nothing to analyze")
		return nil, reportdomain.NewError(reportdomain.KindInsufficientData, reportdomain.MsgInsufficientData, nil)
	}

	prompt := BuildPrompt(data, u.promptMaxChars)
	text, err := u.generator.Generate(ctx, SystemInstruction, prompt)
	if err != nil {
		log.Error().Str("user_id", user.ID).Str("sheet_id", sheetID).Err(err).Msg("report generation failed")
		return nil, reportdomain.NewError(reportdomain.KindGenerationFailed, reportdomain.MsgGenerationFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		log.Error().Str("user_id", user.ID).Str("sheet_id", sheetID).Msg("model returned an empty report")
		return nil, reportdomain.NewError(reportdomain.KindGenerationFailed, reportdomain.MsgGenerationFailed, ai.ErrEmptyResponse)
	}

	report := &reportdomain.Report{
		Summary:      text,
		RowsAnalyzed: len(data.DataRows),
		Headers:      data.Headers,
	}

	u.persist(ctx, user.ID, sheetURL, report)

	log.Info().Str("user_id", user.ID).Str("sheet_id", sheetID).Int("rows", report.RowsAnalyzed).Msg("report generated")
	return report, nil
}

// persist stores the report. Failures are logged only; the caller still
// receives the generated summary.
func (u *reportUsecase) persist(ctx context.Context, userID, sheetURL string, report *reportdomain.Report) {
	headers, err := json.Marshal(report.Headers)
	if err != nil {
		log.Error().Str("user_id", userID).Err(err).Msg("failed to encode summary headers")
		headers = nil
	}

	summary := &reportdomain.Summary{
		UserID:       userID,
		SheetURL:     sheetURL,
		Summary:      report.Summary,
		RowsAnalyzed: report.RowsAnalyzed,
		Headers:      datatypes.JSON(headers),
	}
	if err := u.summaryRepo.Create(ctx, summary); err != nil {
		log.Error().Str("user_id", userID).Err(err).Msg("failed to store summary")
	}
}

func (u *reportUsecase) ListSummaries(ctx context.Context, userID string, limit, offset int) ([]*reportdomain.Summary, int64, error) {
	return u.summaryRepo.FindByUserID(ctx, userID, limit, offset)
}
