package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	GroqAPIKey      string
	GroqBaseURL     string
	GroqModel       string
	GroqTemperature float32
	GroqMaxTokens   int
	GroqTopP        float32

	MaxSymptomLength int
	ResponseTimeout  time.Duration

	DatabaseEnabled      bool
	DBPath               string
	HistoryRetentionDays int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com"),
		GroqModel:       getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		DBPath:          getEnv("DB_PATH", "./data/symptom-checker.db"),
		APIPort:         getEnv("API_PORT", "9000"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		DatabaseEnabled: getEnv("DATABASE_ENABLED", "true") == "true",
	}

	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required (get a free key at https://console.groq.com)")
	}

	temperature, err := getEnvFloat("GROQ_TEMPERATURE", 0.7)
	if err != nil {
		return nil, err
	}
	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("GROQ_TEMPERATURE must be in [0, 2], got %v", temperature)
	}
	cfg.GroqTemperature = temperature

	maxTokens, err := getEnvInt("GROQ_MAX_TOKENS", 1000)
	if err != nil {
		return nil, err
	}
	if maxTokens <= 0 {
		return nil, fmt.Errorf("GROQ_MAX_TOKENS must be greater than 0")
	}
	cfg.GroqMaxTokens = maxTokens

	topP, err := getEnvFloat("GROQ_TOP_P", 0.9)
	if err != nil {
		return nil, err
	}
	if topP <= 0 || topP > 1 {
		return nil, fmt.Errorf("GROQ_TOP_P must be in (0, 1], got %v", topP)
	}
	cfg.GroqTopP = topP

	maxLength, err := getEnvInt("MAX_SYMPTOM_LENGTH", 1000)
	if err != nil {
		return nil, err
	}
	if maxLength <= 0 {
		return nil, fmt.Errorf("MAX_SYMPTOM_LENGTH must be greater than 0")
	}
	cfg.MaxSymptomLength = maxLength

	timeoutSec, err := getEnvInt("RESPONSE_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	if timeoutSec <= 0 {
		return nil, fmt.Errorf("RESPONSE_TIMEOUT must be greater than 0")
	}
	cfg.ResponseTimeout = time.Duration(timeoutSec) * time.Second

	retention, err := getEnvInt("HISTORY_RETENTION_DAYS", 0)
	if err != nil {
		return nil, err
	}
	if retention < 0 {
		return nil, fmt.Errorf("HISTORY_RETENTION_DAYS must not be negative")
	}
	cfg.HistoryRetentionDays = retention

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	// Create the data directory if it doesn't exist (for the DB file)
	if cfg.DatabaseEnabled {
		dataDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return value, nil
}

func getEnvFloat(key string, defaultValue float32) (float32, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return float32(value), nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", raw)
	}
}
