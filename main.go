package main

import (
	"context"

	api "qisqa-backend/cmd/api"
	authUsecase "qisqa-backend/internal/auth/usecase"
	reportdomain "qisqa-backend/internal/report/domain"
	reportRepo "qisqa-backend/internal/report/repository"
	reportUsecase "qisqa-backend/internal/report/usecase"
	"qisqa-backend/pkg/ai"
	"qisqa-backend/pkg/config"
	"qisqa-backend/pkg/database"
	"qisqa-backend/pkg/logger"
	"qisqa-backend/pkg/sheets"

	"github.com/phuslu/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&reportdomain.Summary{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Initialize repositories (dependency injection)
	summaryRepo := reportRepo.NewSummaryRepository(db)

	// Initialize outbound clients
	sheetsClient := sheets.NewClient(sheets.Config{
		BaseURL:      cfg.SheetsBaseURL,
		Timeout:      cfg.SheetsFetchTimeout,
		MaxBodyBytes: cfg.SheetsMaxBodyBytes,
	})

	generator, err := ai.NewTextGenerator(context.Background(), ai.Config{
		Provider:        ai.ProviderType(cfg.AIProvider),
		Timeout:         cfg.AITimeout,
		GeminiAPIKey:    cfg.GeminiApiKey,
		GeminiModel:     cfg.GeminiModel,
		OpenAIAPIKey:    cfg.OpenAIApiKey,
		OpenAIModel:     cfg.OpenAIModel,
		OpenAIBaseURL:   cfg.OpenAIBaseURL,
		AnthropicAPIKey: cfg.AnthropicApiKey,
		ClaudeModel:     cfg.ClaudeModel,
		OllamaBaseURL:   cfg.OllamaBaseURL,
		OllamaModel:     cfg.OllamaModel,
	})
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.AIProvider).Msg("failed to initialize AI provider")
	}
	log.Info().Str("provider", cfg.AIProvider).Msg("AI provider initialized")

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(cfg)
	reportUsecaseInstance := reportUsecase.NewReportUsecase(sheetsClient, generator, summaryRepo, cfg.PromptMaxCSVChars)

	// Initialize HTTP handler
	handler := api.NewHandler(cfg, authUsecaseInstance, reportUsecaseInstance)

	// Start server
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
