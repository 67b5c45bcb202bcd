package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerate(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Qisqa Tahlil: yaxshi.  "}}]}`))
	}))
	defer srv.Close()

	svc := NewOpenAIService(srv.URL+"/v1", "sk-test", "", time.Second)
	text, err := svc.Generate(context.Background(), "system text", "user prompt")
	require.NoError(t, err)

	assert.Equal(t, "  Qisqa Tahlil: yaxshi.  ", text, "output is returned verbatim")
	assert.Equal(t, "gpt-4o", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system text", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "user prompt", got.Messages[1].Content)
}

func TestOpenAIGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "provider error", status: http.StatusTooManyRequests, body: `{"error":{"message":"rate limit"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "blank content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"   "}}]}`},
		{name: "bad json", status: http.StatusOK, body: `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			svc := NewOpenAIService(srv.URL, "sk-test", "gpt-4o", time.Second)
			_, err := svc.Generate(context.Background(), "s", "p")
			assert.Error(t, err)
		})
	}
}

func TestOllamaGenerate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"Qisqa Tahlil: ma'lumotlar.\n","done":true}`))
	}))
	defer srv.Close()

	svc := NewOllamaService(srv.URL, "mistral", time.Second)
	text, err := svc.Generate(context.Background(), "sys", "prompt")
	require.NoError(t, err)

	assert.Equal(t, "Qisqa Tahlil: ma'lumotlar.\n", text)
	assert.Equal(t, "mistral", got["model"])
	assert.Equal(t, "sys", got["system"])
	assert.Equal(t, "prompt", got["prompt"])
	assert.Equal(t, false, got["stream"])
}

func TestOllamaGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":" \n ","done":true}`))
	}))
	defer srv.Close()

	_, err := NewOllamaService(srv.URL, "", time.Second).Generate(context.Background(), "", "p")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClaudeGenerate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": [{"type": "text", "text": "Qisqa Tahlil: hisobot.\n\n"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	svc := NewClaudeService("sk-ant-test", "", time.Second, option.WithBaseURL(srv.URL))
	text, err := svc.Generate(context.Background(), "tizim", "so'rov")
	require.NoError(t, err)

	assert.Equal(t, "Qisqa Tahlil: hisobot.\n\n", text)
	assert.Equal(t, "claude-sonnet-4-20250514", got["model"])
	system, ok := got["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Equal(t, "tizim", system[0].(map[string]any)["text"])
}

func TestNewTextGenerator(t *testing.T) {
	ctx := context.Background()

	gen, err := NewTextGenerator(ctx, Config{Provider: ProviderOpenAI, OpenAIAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIService{}, gen)

	gen, err = NewTextGenerator(ctx, Config{Provider: ProviderOllama})
	require.NoError(t, err)
	assert.IsType(t, &OllamaService{}, gen)

	gen, err = NewTextGenerator(ctx, Config{Provider: ProviderClaude, AnthropicAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &ClaudeService{}, gen)

	_, err = NewTextGenerator(ctx, Config{Provider: ProviderGemini})
	assert.Error(t, err)

	_, err = NewTextGenerator(ctx, Config{Provider: ProviderOpenAI})
	assert.Error(t, err)

	_, err = NewTextGenerator(ctx, Config{Provider: "bard"})
	assert.Error(t, err)
}
