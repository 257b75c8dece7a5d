// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; sessions go to the session store.
// Precedence: built-in defaults, then config.json, then PASSGATE_* env vars.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"passgate/cli/internal/xdg"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL   string    `json:"base_url" env:"PASSGATE_BASE_URL" validate:"required,url"`
	Endpoints Endpoints `json:"endpoints"`

	// Store selects the session backend: auto picks keychain when one is
	// available and falls back to sqlite.
	Store string `json:"store" env:"PASSGATE_STORE" validate:"oneof=auto keychain file sqlite memory"`

	// Discover enables endpoint discovery: when set, the service's published
	// discovery document overrides the endpoint paths and password policy.
	Discover bool `json:"discover" env:"PASSGATE_DISCOVER"`

	LogLevel  string `json:"log_level" env:"PASSGATE_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `json:"log_format" env:"PASSGATE_LOG_FORMAT" validate:"oneof=text json"`

	HTTPTimeoutSec int `json:"http_timeout_sec" env:"PASSGATE_HTTP_TIMEOUT_SEC" validate:"min=1,max=300"`
	MinPasswordLen int `json:"min_password_len" env:"PASSGATE_MIN_PASSWORD_LEN" validate:"min=1,max=128"`
}

// Endpoints contains the credential-service API paths.
type Endpoints struct {
	Login    string `json:"login" env:"PASSGATE_LOGIN_PATH"`       // e.g., "/api/v1/auth/login"
	Register string `json:"register" env:"PASSGATE_REGISTER_PATH"` // e.g., "/api/v1/auth/register"
	Logout   string `json:"logout"`                                // e.g., "/api/v1/auth/logout"
	Me       string `json:"me"`                                    // e.g., "/api/v1/auth/me"
	Health   string `json:"health"`                                // e.g., "/api/health"
}

func defaults() *Config {
	return &Config{
		BaseURL: "https://api.passgate.dev",
		Endpoints: Endpoints{
			Login:    "/api/v1/auth/login",
			Register: "/api/v1/auth/register",
			Logout:   "/api/v1/auth/logout",
			Me:       "/api/v1/auth/me",
			Health:   "/api/health",
		},
		Store:          "auto",
		LogLevel:       "info",
		LogFormat:      "text",
		HTTPTimeoutSec: 15,
		MinPasswordLen: 8,
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file yields defaults. Env vars are
// applied on top and the result is validated.
func Load() (*Config, error) {
	cfg := defaults()

	p, err := path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults apply.
	default:
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against the struct rules. It is called
// by Load and again by commands that mutate settings before saving them.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c *Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// SlogLevel maps the configured level name onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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

// HTTPTimeout returns the request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}
