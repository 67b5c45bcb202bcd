package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string `yaml:"port"`
	GinMode   string `yaml:"gin_mode"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	DatabaseURL string `yaml:"database_url"`

	// JWTSecret verifies access tokens issued by the identity provider.
	JWTSecret      string `yaml:"jwt_secret"`
	JWTAudience    string `yaml:"jwt_audience"`
	AuthCookieName string `yaml:"auth_cookie_name"`

	// CORSAllowedOrigins are the only origins allowed to make credentialed
	// cross-origin requests, e.g. "https://qisqa.uz".
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	AIProvider      string        `yaml:"ai_provider"`
	AITimeout       time.Duration `yaml:"ai_timeout"`
	GeminiApiKey    string        `yaml:"gemini_api_key"`
	GeminiModel     string        `yaml:"gemini_model"`
	OpenAIApiKey    string        `yaml:"openai_api_key"`
	OpenAIModel     string        `yaml:"openai_model"`
	OpenAIBaseURL   string        `yaml:"openai_base_url"`
	AnthropicApiKey string        `yaml:"anthropic_api_key"`
	ClaudeModel     string        `yaml:"claude_model"`
	OllamaBaseURL   string        `yaml:"ollama_base_url"`
	OllamaModel     string        `yaml:"ollama_model"`

	SheetsBaseURL      string        `yaml:"sheets_base_url"`
	SheetsFetchTimeout time.Duration `yaml:"sheets_fetch_timeout"`
	SheetsMaxBodyBytes int64         `yaml:"sheets_max_body_bytes"`
	PromptMaxCSVChars  int           `yaml:"prompt_max_csv_chars"`
}

func defaults() Config {
	return Config{
		Port:               "8080",
		GinMode:            "release",
		LogLevel:           "info",
		LogFormat:          "json",
		JWTAudience:        "authenticated",
		AuthCookieName:     "sb-access-token",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		AIProvider:         "openai",
		AITimeout:          60 * time.Second,
		GeminiModel:        "gemini-2.5-flash",
		OpenAIModel:        "gpt-4o",
		OpenAIBaseURL:      "https://api.openai.com/v1",
		ClaudeModel:        "claude-sonnet-4-20250514",
		OllamaBaseURL:      "http://localhost:11434",
		OllamaModel:        "llama3",
		SheetsBaseURL:      "https://docs.google.com",
		SheetsFetchTimeout: 15 * time.Second,
		SheetsMaxBodyBytes: 10 << 20,
		PromptMaxCSVChars:  3000,
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and finally environment variables (including a .env file).
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTAudience = getEnv("JWT_AUDIENCE", c.JWTAudience)
	c.AuthCookieName = getEnv("AUTH_COOKIE_NAME", c.AuthCookieName)
	c.CORSAllowedOrigins = getList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)
	c.AIProvider = strings.ToLower(getEnv("AI_PROVIDER", c.AIProvider))
	c.GeminiApiKey = getEnv("GEMINI_API_KEY", c.GeminiApiKey)
	c.GeminiModel = getEnv("GEMINI_MODEL", c.GeminiModel)
	c.OpenAIApiKey = getEnv("OPENAI_API_KEY", c.OpenAIApiKey)
	c.OpenAIModel = getEnv("OPENAI_MODEL", c.OpenAIModel)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.AnthropicApiKey = getEnv("ANTHROPIC_API_KEY", c.AnthropicApiKey)
	c.ClaudeModel = getEnv("CLAUDE_MODEL", c.ClaudeModel)
	c.OllamaBaseURL = getEnv("OLLAMA_BASE_URL", c.OllamaBaseURL)
	c.OllamaModel = getEnv("OLLAMA_MODEL", c.OllamaModel)
	c.SheetsBaseURL = getEnv("SHEETS_BASE_URL", c.SheetsBaseURL)

	var err error
	if c.AITimeout, err = getDuration("AI_TIMEOUT", c.AITimeout); err != nil {
		return err
	}
	if c.SheetsFetchTimeout, err = getDuration("SHEETS_FETCH_TIMEOUT", c.SheetsFetchTimeout); err != nil {
		return err
	}
	if c.PromptMaxCSVChars, err = getInt("PROMPT_MAX_CSV_CHARS", c.PromptMaxCSVChars); err != nil {
		return err
	}
	maxBody, err := getInt("SHEETS_MAX_BODY_BYTES", int(c.SheetsMaxBodyBytes))
	if err != nil {
		return err
	}
	c.SheetsMaxBodyBytes = int64(maxBody)
	return nil
}

// Validate reports configuration that would leave the service unable to serve
// requests. It runs at startup so that misconfiguration fails the boot instead
// of surfacing per request.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}

	switch c.AIProvider {
	case "gemini":
		if c.GeminiApiKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for gemini provider"))
		}
	case "openai":
		if c.OpenAIApiKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for openai provider"))
		}
	case "claude":
		if c.AnthropicApiKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required for claude provider"))
		}
	case "ollama":
		if c.OllamaBaseURL == "" {
			errs = append(errs, errors.New("OLLAMA_BASE_URL is required for ollama provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AI_PROVIDER %q (valid: gemini, openai, claude, ollama)", c.AIProvider))
	}

	for _, origin := range c.CORSAllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			errs = append(errs, err)
		}
	}

	if c.AITimeout <= 0 {
		errs = append(errs, errors.New("AI_TIMEOUT must be positive"))
	}
	if c.SheetsFetchTimeout <= 0 {
		errs = append(errs, errors.New("SHEETS_FETCH_TIMEOUT must be positive"))
	}
	if c.SheetsMaxBodyBytes <= 0 {
		errs = append(errs, errors.New("SHEETS_MAX_BODY_BYTES must be positive"))
	}
	if c.PromptMaxCSVChars <= 0 {
		errs = append(errs, errors.New("PROMPT_MAX_CSV_CHARS must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// validateOrigin accepts a bare scheme://host[:port] origin. No wildcard:
// every allowed origin receives credentials.
func validateOrigin(origin string) error {
	if origin == "*" {
		return errors.New("CORS_ALLOWED_ORIGINS must not contain \"*\"")
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS entry %q is not an origin (scheme://host[:port])", origin)
	}
	return nil
}

// IsOriginAllowed reports whether origin is listed in CORSAllowedOrigins.
func (c *Config) IsOriginAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range c.CORSAllowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getList splits a comma-separated variable, dropping blank entries.
func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}
