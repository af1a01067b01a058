package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const defaultBaseURL = "http://localhost:3000"

type GoogleOAuth struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURI  string `env:"REDIRECT_URI" validate:"omitempty,url"`
}

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	SessionSecret       string        `env:"SESSION_SECRET,required" validate:"required,min=32"`
	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"720h" validate:"min=1m"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	Google GoogleOAuth `envPrefix:"GOOGLE_"`

	// Base URL candidates, first non-empty wins (see BaseURL).
	AppURL        string `env:"APP_URL"`
	PublicAppURL  string `env:"NEXT_PUBLIC_APP_URL"`
	BetterAuthURL string `env:"BETTER_AUTH_URL"`

	ResendAPIKey  string        `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom    string        `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1h" validate:"min=1m"`

	SweepCron string `env:"SWEEP_CRON" envDefault:"@every 15m" validate:"required"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// BaseURL walks the APP_URL → NEXT_PUBLIC_APP_URL → BETTER_AUTH_URL chain
// and falls back to the local dev origin.
func (c *Config) BaseURL() string {
	for _, u := range []string{c.AppURL, c.PublicAppURL, c.BetterAuthURL} {
		if u = strings.TrimSpace(u); u != "" {
			return strings.TrimRight(u, "/")
		}
	}
	return defaultBaseURL
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) IsLocal() bool {
	return c.Env == "local"
}
