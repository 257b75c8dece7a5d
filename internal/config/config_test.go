package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://api.passgate.dev", cfg.BaseURL)
	require.Equal(t, "/api/v1/auth/login", cfg.Endpoints.Login)
	require.Equal(t, "auto", cfg.Store)
	require.Equal(t, 8, cfg.MinPasswordLen)
	require.Equal(t, 15*time.Second, cfg.HTTPTimeout())
	require.False(t, cfg.Discover)
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, "passgate")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	body := `{"base_url":"https://auth.internal.example","store":"file","log_level":"debug","min_password_len":12}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://auth.internal.example", cfg.BaseURL)
	require.Equal(t, "file", cfg.Store)
	require.Equal(t, 12, cfg.MinPasswordLen)
	// Fields absent from the file keep their defaults.
	require.Equal(t, "/api/v1/auth/register", cfg.Endpoints.Register)
	require.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, "passgate")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"base_url":"https://from-file.example"}`), 0o600))

	t.Setenv("PASSGATE_BASE_URL", "https://from-env.example")
	t.Setenv("PASSGATE_STORE", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://from-env.example", cfg.BaseURL)
	require.Equal(t, "memory", cfg.Store)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown store", "PASSGATE_STORE", "redis"},
		{"unknown log level", "PASSGATE_LOG_LEVEL", "chatty"},
		{"base url without scheme", "PASSGATE_BASE_URL", "api.passgate.dev"},
		{"timeout out of range", "PASSGATE_HTTP_TIMEOUT_SEC", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Store = "sqlite"
	cfg.LogLevel = "warn"
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", got.Store)
	require.Equal(t, slog.LevelWarn, got.SlogLevel())
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		c := Config{LogLevel: tt.in}
		require.Equal(t, tt.want, c.SlogLevel())
	}
}
