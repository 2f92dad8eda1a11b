package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service reads at startup.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Tutor  TutorConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	tutor, err := loadTutorConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Tutor: tutor}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig holds the hosted completion model settings.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required model credentials were provided.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds a chat model instance from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("model credentials missing: provide ARK_API_KEY + Model or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("Model")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// TutorConfig tunes the turn pipeline around the completion call.
type TutorConfig struct {
	// CompletionTimeout bounds one completion attempt.
	CompletionTimeout time.Duration
	// CompletionRetries is the number of extra attempts after a failed call.
	CompletionRetries int
	// ReplyWordLimit caps replies; longer replies are truncated with a notice.
	ReplyWordLimit int
	// ForwardFirstInput also answers the first question instead of only greeting.
	ForwardFirstInput bool
}

func loadTutorConfig() (TutorConfig, error) {
	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("TUTOR_COMPLETION_TIMEOUT"); err != nil {
		return TutorConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return TutorConfig{}, fmt.Errorf("TUTOR_COMPLETION_TIMEOUT must be at least 1 second, got %d", *override)
		}
		timeoutSeconds = *override
	}

	retries := 1
	if override, err := parseOptionalIntEnv("TUTOR_COMPLETION_RETRIES"); err != nil {
		return TutorConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return TutorConfig{}, fmt.Errorf("TUTOR_COMPLETION_RETRIES must not be negative, got %d", *override)
		}
		retries = *override
	}

	wordLimit := 200
	if override, err := parseOptionalIntEnv("TUTOR_REPLY_WORD_LIMIT"); err != nil {
		return TutorConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return TutorConfig{}, fmt.Errorf("TUTOR_REPLY_WORD_LIMIT must be at least 1, got %d", *override)
		}
		wordLimit = *override
	}

	forwardFirst, err := parseBoolEnv("TUTOR_FORWARD_FIRST_INPUT", false)
	if err != nil {
		return TutorConfig{}, err
	}

	return TutorConfig{
		CompletionTimeout: time.Duration(timeoutSeconds) * time.Second,
		CompletionRetries: retries,
		ReplyWordLimit:    wordLimit,
		ForwardFirstInput: forwardFirst,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
