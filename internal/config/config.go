package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

type Config struct {
	ListenAddr string
	Env        string
	LogLevel   string

	GeminiAPIKey         string
	AssistantModel       string
	AssistantBaseURL     string
	AssistantTemperature float64
	AssistantIncludeCost bool

	SeedSample bool
	SeedFile   string

	EnableMetrics bool
}

// LoadDotEnv reads .env style files into the environment. Variables that
// are already set win. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func Load() *Config {
	config := &Config{
		ListenAddr:           getEnv("LISTEN_ADDR", ":8080"),
		Env:                  getEnv("APP_ENV", "production"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		AssistantModel:       getEnv("ASSISTANT_MODEL", defaultModel),
		AssistantBaseURL:     getEnv("ASSISTANT_BASE_URL", defaultBaseURL),
		AssistantTemperature: 0.2,
		AssistantIncludeCost: getBool("ASSISTANT_INCLUDE_COST", true),
		SeedSample:           getBool("SEED_SAMPLE", true),
		SeedFile:             os.Getenv("SEED_FILE"),
		EnableMetrics:        getBool("ENABLE_METRICS", false),
	}

	// Unparseable values are left for Validate to report
	if tempStr := os.Getenv("ASSISTANT_TEMPERATURE"); tempStr != "" {
		if temp, err := strconv.ParseFloat(tempStr, 64); err == nil {
			config.AssistantTemperature = temp
		} else {
			config.AssistantTemperature = -1
		}
	}

	return config
}

// Validate checks ranges and required values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("LISTEN_ADDR must not be empty")
	}
	switch strings.ToLower(c.Env) {
	case "development", "production", "test":
	default:
		return fmt.Errorf("APP_ENV must be development, production or test, got %q", c.Env)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.AssistantTemperature < 0 || c.AssistantTemperature > 2 {
		return fmt.Errorf("ASSISTANT_TEMPERATURE must be between 0 and 2, got %v", c.AssistantTemperature)
	}
	if strings.TrimSpace(c.AssistantModel) == "" {
		return errors.New("ASSISTANT_MODEL must not be empty")
	}
	if !strings.HasPrefix(c.AssistantBaseURL, "http://") && !strings.HasPrefix(c.AssistantBaseURL, "https://") {
		return fmt.Errorf("ASSISTANT_BASE_URL must be an http(s) URL, got %q", c.AssistantBaseURL)
	}
	return nil
}

// LoadAndValidate loads from the environment and validates the result
func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// AssistantConfigured reports whether a Gemini key is present
func (c *Config) AssistantConfigured() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
