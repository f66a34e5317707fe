package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL      string
	Port             string
	LogLevel         string
	LogFormat        string
	PrometheusPort   string
	TelegramToken    string
	TelegramChatID   int64
	WebhookURL       string
	ReminderInterval time.Duration
	NATSURL          string
	AuthJWTSecret    string
	MigrationsPath   string
	SeedFile         string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           getEnvOrDefault("PORT", "8080"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
		PrometheusPort: getEnvOrDefault("PROMETHEUS_PORT", "9090"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		WebhookURL:     os.Getenv("WEBHOOK_URL"),
		NATSURL:        os.Getenv("NATS_URL"),
		AuthJWTSecret:  os.Getenv("AUTH_JWT_SECRET"),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
		SeedFile:       os.Getenv("SEED_FILE"),
	}

	interval, err := time.ParseDuration(getEnvOrDefault("REMINDER_INTERVAL", "1h"))
	if err != nil || interval <= 0 {
		return nil, fmt.Errorf("REMINDER_INTERVAL must be a positive duration: %q", os.Getenv("REMINDER_INTERVAL"))
	}
	cfg.ReminderInterval = interval

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramChatID = id
	}

	return cfg, nil
}

// UsesDatabase reports whether a PostgreSQL store is configured
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// TelegramEnabled reports whether the bot should start
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
