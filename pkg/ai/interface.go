package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("model returned no text")

// TextGenerator is the interface for one-shot text generation.
// Implement this interface to add new AI providers (Gemini, OpenAI, Claude, Ollama, etc.)
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOpenAI ProviderType = "openai"
	ProviderClaude ProviderType = "claude"
	ProviderOllama ProviderType = "ollama"
)
