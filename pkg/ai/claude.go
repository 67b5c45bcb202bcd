package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const claudeMaxTokens = 2048

// ClaudeService implements TextGenerator using the Anthropic Messages API.
type ClaudeService struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

func NewClaudeService(apiKey, model string, timeout time.Duration, opts ...option.RequestOption) *ClaudeService {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &ClaudeService{
		client:  anthropic.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}
}

func (s *ClaudeService) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: claudeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude API call failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	text := response.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("claude: %w", ErrEmptyResponse)
	}
	return text, nil
}
