package ai

import (
	"context"
	"fmt"
	"time"

	"qisqa-backend/pkg/gemini"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType
	Timeout  time.Duration

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	AnthropicAPIKey string
	ClaudeModel     string

	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// NewTextGenerator creates a TextGenerator based on the config.
// Switch AI provider by changing config.Provider; there is no implicit default.
func NewTextGenerator(ctx context.Context, cfg Config) (TextGenerator, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		svc, err := gemini.NewGeminiService(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIService(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Timeout), nil

	case ProviderClaude:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for Claude provider")
		}
		return NewClaudeService(cfg.AnthropicAPIKey, cfg.ClaudeModel, cfg.Timeout), nil

	case ProviderOllama:
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
