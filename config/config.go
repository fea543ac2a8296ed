package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config is the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Alerts   AlertsConfig
	Debug    bool
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Port string
}

// DatabaseConfig points at the single local SQLite file.
type DatabaseConfig struct {
	Path string
	Seed bool
}

// AuthConfig controls credential storage and session tokens.
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	PasswordScheme string
}

// AlertsConfig drives the low-stock check.
type AlertsConfig struct {
	LowStockThreshold int
	CronSchedule      string
	WebhookURL        string
}

const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"

	defaultJWTSecret = "stockmanager-dev-secret"
)

// Load reads environment variables (optionally from envFile) into a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// a missing .env is fine, the environment may carry everything
		_ = godotenv.Load()
	}

	ttl, err := time.ParseDuration(getenvWithDefault("TOKEN_TTL", "72h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}

	threshold, err := strconv.Atoi(getenvWithDefault("LOW_STOCK_THRESHOLD", "10"))
	if err != nil {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD: %w", err)
	}

	seed, err := strconv.ParseBool(getenvWithDefault("SEED_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("SEED_DATA: %w", err)
	}

	debug, _ := strconv.ParseBool(os.Getenv("APP_DEBUG"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getenvWithDefault("DB_PATH", "stockmanager.db"),
			Seed: seed,
		},
		Auth: AuthConfig{
			JWTSecret:      getenvWithDefault("JWT_SECRET", defaultJWTSecret),
			TokenTTL:       ttl,
			PasswordScheme: strings.ToLower(getenvWithDefault("PASSWORD_SCHEME", SchemePlain)),
		},
		Alerts: AlertsConfig{
			LowStockThreshold: threshold,
			CronSchedule:      os.Getenv("LOW_STOCK_CRON"),
			WebhookURL:        os.Getenv("ALERT_WEBHOOK_URL"),
		},
		Debug: debug,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures required fields are populated and values are usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	switch {
	case c.Server.Port == "":
		return errors.New("APP_PORT must be provided")
	case c.Database.Path == "":
		return errors.New("DB_PATH must be provided")
	case c.Auth.JWTSecret == "":
		return errors.New("JWT_SECRET must not be empty")
	case c.Auth.TokenTTL <= 0:
		return errors.New("TOKEN_TTL must be positive")
	}

	if c.Auth.PasswordScheme != SchemePlain && c.Auth.PasswordScheme != SchemeBcrypt {
		return fmt.Errorf("PASSWORD_SCHEME must be %q or %q, got %q", SchemePlain, SchemeBcrypt, c.Auth.PasswordScheme)
	}

	if c.Alerts.LowStockThreshold <= 0 {
		return errors.New("LOW_STOCK_THRESHOLD must be positive")
	}

	if c.Alerts.CronSchedule != "" {
		if _, err := cron.ParseStandard(c.Alerts.CronSchedule); err != nil {
			return fmt.Errorf("LOW_STOCK_CRON is not a valid cron expression: %w", err)
		}
	}

	return nil
}

// UsesDefaultSecret reports whether tokens are signed with the built-in development key.
func (c *Config) UsesDefaultSecret() bool {
	return c.Auth.JWTSecret == defaultJWTSecret
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
