package configs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("ICU_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("ICU_API_KEY", "secret")
	t.Setenv("ICU_ATHLETE_ID", "i12345")

	// An explicit path that does not exist is an error.
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: filekey\nathlete_id: i111\n"), 0o600))

	t.Setenv("ICU_CONFIG_FILE", path)
	t.Setenv("ICU_API_KEY", "")
	t.Setenv("ICU_ATHLETE_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "filekey", cfg.APIKey)
	assert.Equal(t, "i111", cfg.AthleteID)
	assert.Equal(t, "https://intervals.icu/api/v1", cfg.BaseURL)

	t.Setenv("ICU_ATHLETE_ID", "i999")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "filekey", cfg.APIKey)
	assert.Equal(t, "i999", cfg.AthleteID, "env var should override file value")
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- nope"), 0o600))

	t.Setenv("ICU_CONFIG_FILE", path)
	_, err := Load()
	assert.Error(t, err)
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		athleteID string
		want      bool
	}{
		{"valid prefixed id", "key", "i12345", true},
		{"valid numeric id", "key", "12345", true},
		{"missing key", "", "i12345", false},
		{"blank key", "   ", "i12345", false},
		{"missing athlete", "key", "", false},
		{"malformed athlete", "key", "athlete-1", false},
		{"whitespace around id", "key", " i12345 ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{APIKey: tt.apiKey, AthleteID: tt.athleteID}
			assert.Equal(t, tt.want, cfg.ValidateCredentials())
		})
	}
}

func TestParsedLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"garbage", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.in}
		assert.Equal(t, tt.want, cfg.ParsedLogLevel(), "level %q", tt.in)
	}
}

func TestContextRoundTrip(t *testing.T) {
	cfg := &Config{APIKey: "k"}
	ctx := NewContext(context.Background(), cfg)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, cfg, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
