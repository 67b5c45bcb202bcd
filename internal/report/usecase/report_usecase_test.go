package usecase

import (
	"context"
	"errors"
	"testing"

	authdomain "qisqa-backend/internal/auth/domain"
	reportdomain "qisqa-backend/internal/report/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSheetURL = "https://docs.google.com/spreadsheets/d/1AbC_23/edit"

type mockFetcher struct{ mock.Mock }

func (m *mockFetcher) FetchCSV(ctx context.Context, sheetID string) (string, error) {
	args := m.Called(ctx, sheetID)
	return args.String(0), args.Error(1)
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

type mockSummaryRepo struct{ mock.Mock }

func (m *mockSummaryRepo) Create(ctx context.Context, summary *reportdomain.Summary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *mockSummaryRepo) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*reportdomain.Summary, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	summaries, _ := args.Get(0).([]*reportdomain.Summary)
	return summaries, args.Get(1).(int64), args.Error(2)
}

type fixture struct {
	fetcher   *mockFetcher
	generator *mockGenerator
	repo      *mockSummaryRepo
	usecase   ReportUsecase
}

func newFixture() *fixture {
	f := &fixture{
		fetcher:   new(mockFetcher),
		generator: new(mockGenerator),
		repo:      new(mockSummaryRepo),
	}
	f.usecase = NewReportUsecase(f.fetcher, f.generator, f.repo, 0)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.fetcher.AssertExpectations(t)
	f.generator.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

var testUser = &authdomain.User{ID: "user-1", Email: "ali@example.com"}

func requireReportError(t *testing.T, err error, kind reportdomain.ErrorKind, message string) {
	t.Helper()
	var reportErr *reportdomain.ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, kind, reportErr.Kind)
	assert.Equal(t, message, reportErr.Message)
}

func TestGenerateReportSuccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.fetcher.On("FetchCSV", ctx, "1AbC_23").Return("name,score\nAli,90\nVali,85\n", nil).Once()
	f.generator.On("Generate", ctx, SystemInstruction, mock.MatchedBy(func(prompt string) bool {
		return assert.Contains(t, prompt, "SARLAVHALAR: name, score") &&
			assert.Contains(t, prompt, "MA'LUMOTLAR SONI: 2 ta qator")
	})).Return("Qisqa Tahlil: ...", nil).Once()
	f.repo.On("Create", ctx, mock.MatchedBy(func(s *reportdomain.Summary) bool {
		return s.UserID == "user-1" &&
			s.SheetURL == testSheetURL &&
			s.Summary == "Qisqa Tahlil: ..." &&
			s.RowsAnalyzed == 2 &&
			string(s.Headers) == `["name","score"]`
	})).Return(nil).Once()

	report, err := f.usecase.GenerateReport(ctx, testUser, testSheetURL)
	require.NoError(t, err)
	assert.Equal(t, "Qisqa Tahlil: ...", report.Summary)
	assert.Equal(t, 2, report.RowsAnalyzed)
	assert.Equal(t, []string{"name", "score"}, report.Headers)
	f.assertExpectations(t)
}

func TestGenerateReportPersistFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.fetcher.On("FetchCSV", ctx, "1AbC_23").Return("name,score\nAli,90\n", nil).Once()
	f.generator.On("Generate", ctx, SystemInstruction, mock.Anything).Return("Qisqa Tahlil: ok", nil).Once()
	f.repo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused")).Once()

	report, err := f.usecase.GenerateReport(ctx, testUser, testSheetURL)
	require.NoError(t, err)
	assert.Equal(t, "Qisqa Tahlil: ok", report.Summary)
	assert.Equal(t, 1, report.RowsAnalyzed)
	f.assertExpectations(t)
}

func TestGenerateReportRequiresUser(t *testing.T) {
	for _, user := range []*authdomain.User{nil, {}} {
		f := newFixture()

		_, err := f.usecase.GenerateReport(context.Background(), user, testSheetURL)

		requireReportError(t, err, reportdomain.KindUnauthenticated, reportdomain.MsgUnauthenticated)
		f.assertExpectations(t)
	}
}

func TestGenerateReportInvalidURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		message string
	}{
		{"empty", "", reportdomain.MsgMissingURL},
		{"whitespace", "   ", reportdomain.MsgMissingURL},
		{"not a sheet", "https://example.com/not-a-sheet", reportdomain.MsgInvalidURL},
		{"docs but no id", "https://docs.google.com/spreadsheets/", reportdomain.MsgInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.usecase.GenerateReport(context.Background(), testUser, tt.url)

			requireReportError(t, err, reportdomain.KindInvalidInput, tt.message)
			// no outbound calls were made
			f.assertExpectations(t)
		})
	}
}

func TestGenerateReportFetchFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.fetcher.On("FetchCSV", ctx, "1AbC_23").Return("", errors.New("sheet is not publicly accessible")).Once()

	_, err := f.usecase.GenerateReport(ctx, testUser, testSheetURL)

	requireReportError(t, err, reportdomain.KindFetchFailed, reportdomain.MsgFetchFailed)
	f.assertExpectations(t)
}

func TestGenerateReportInsufficientData(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.fetcher.On("FetchCSV", ctx, "1AbC_23").Return("name,score\n", nil).Once()

	_, err := f.usecase.GenerateReport(ctx, testUser, testSheetURL)

	requireReportError(t, err, reportdomain.KindInsufficientData, reportdomain.MsgInsufficientData)
	f.assertExpectations(t)
}

func TestGenerateReportModelFailure(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{"provider error", "", errors.New("quota exceeded for project 42")},
		{"empty output", "", nil},
		{"whitespace output", " \n\t ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			f.fetcher.On("FetchCSV", ctx, "1AbC_23").Return("name,score\nAli,90\n", nil).Once()
			f.generator.On("Generate", ctx, SystemInstruction, mock.Anything).Return(tt.text, tt.err).Once()

			_, err := f.usecase.GenerateReport(ctx, testUser, testSheetURL)

			requireReportError(t, err, reportdomain.KindGenerationFailed, reportdomain.MsgGenerationFailed)
			assert.NotContains(t, reportdomain.AsReportError(err).Message, "quota")
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestListSummaries(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	stored := []*reportdomain.Summary{{ID: "s-1", UserID: "user-1"}}
	f.repo.On("FindByUserID", ctx, "user-1", 20, 0).Return(stored, int64(1), nil).Once()

	summaries, total, err := f.usecase.ListSummaries(ctx, "user-1", 20, 0)

	require.NoError(t, err)
	assert.Equal(t, stored, summaries)
	assert.EqualValues(t, 1, total)
	f.assertExpectations(t)
}

func TestGenerateReportKeepsModelOutputVerbatim(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.fetcher.On("FetchCSV", ctx, "1AbC_23").Return("name,score\nAli,90\n", nil).Once()
	f.generator.On("Generate", ctx, SystemInstruction, mock.Anything).Return("\nQisqa Tahlil: ok\n", nil).Once()
	f.repo.On("Create", ctx, mock.MatchedBy(func(s *reportdomain.Summary) bool {
		return s.Summary == "\nQisqa Tahlil: ok\n"
	})).Return(nil).Once()

	report, err := f.usecase.GenerateReport(ctx, testUser, testSheetURL)
	require.NoError(t, err)
	assert.Equal(t, "\nQisqa Tahlil: ok\n", report.Summary)
	f.assertExpectations(t)
}
