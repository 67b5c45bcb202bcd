package api

import (
	"net/http"

	"qisqa-backend/pkg/ai"
	"qisqa-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

// AISettings describes the generator the server was started with.
// Keys are never exposed.
type AISettings struct {
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SettingsHandler serves the read-only runtime settings
type SettingsHandler struct {
	settings AISettings
}

func NewSettingsHandler(cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{settings: AISettings{
		Provider:       cfg.AIProvider,
		Model:          activeModel(cfg),
		TimeoutSeconds: int(cfg.AITimeout.Seconds()),
	}}
}

func activeModel(cfg *config.Config) string {
	switch ai.ProviderType(cfg.AIProvider) {
	case ai.ProviderGemini:
		return cfg.GeminiModel
	case ai.ProviderClaude:
		return cfg.ClaudeModel
	case ai.ProviderOllama:
		return cfg.OllamaModel
	default:
		return cfg.OpenAIModel
	}
}

// GetAISettings returns the configured provider and model
// GET /api/settings/ai
func (h *SettingsHandler) GetAISettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings)
}
