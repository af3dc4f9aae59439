package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validCfg returns a fully-valid Config for mutation testing.
func validCfg() *Config {
	return &Config{
		API: APIConfig{ListenAddr: ":8080"},
		Sessions: SessionsConfig{
			MaxSessions:          10,
			IdleTTLMinutes:       60,
			SweepIntervalSeconds: 30,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// inTempDir runs the test from an empty directory so no stray config.yaml or
// .env is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestConfigDefaults(t *testing.T) {
	inTempDir(t)
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("TRIPPLANNER_API_LISTEN_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.API.ListenAddr)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Claude.Model)
	assert.False(t, cfg.Claude.Enabled())
	assert.Equal(t, DefaultMaxSessions, cfg.Sessions.MaxSessions)
	assert.Equal(t, DefaultIdleTTLMinutes, cfg.Sessions.IdleTTLMinutes)
	assert.Equal(t, "₹", cfg.Render.CurrencySymbol)
	assert.Equal(t, "INR", cfg.Render.CurrencyCode)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfigEnvOverride(t *testing.T) {
	inTempDir(t)
	t.Setenv("TRIPPLANNER_API_LISTEN_ADDR", "127.0.0.1:9090")
	t.Setenv("TRIPPLANNER_API_AUTH_TOKEN", "s3cret")
	t.Setenv("ANTHROPIC_API_KEY", "test-key-12345")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.API.ListenAddr)
	assert.Equal(t, "s3cret", cfg.API.AuthToken)
	assert.Equal(t, "test-key-12345", cfg.Claude.APIKey)
	assert.True(t, cfg.Claude.Enabled())
}

func TestConfigFile(t *testing.T) {
	dir := inTempDir(t)
	t.Setenv("TRIPPLANNER_API_LISTEN_ADDR", "")
	yaml := "render:\n  currency_symbol: \"$\"\nsessions:\n  max_sessions: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "$", cfg.Render.CurrencySymbol)
	assert.Equal(t, 5, cfg.Sessions.MaxSessions)
}

func TestConfigDotEnv(t *testing.T) {
	dir := inTempDir(t)
	// godotenv never overrides variables that are already set, so make
	// sure this one is absent rather than empty.
	t.Setenv("TRIPPLANNER_API_AUTH_TOKEN", "")
	require.NoError(t, os.Unsetenv("TRIPPLANNER_API_AUTH_TOKEN"))
	t.Cleanup(func() { _ = os.Unsetenv("TRIPPLANNER_API_AUTH_TOKEN") })
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRIPPLANNER_API_AUTH_TOKEN=from-dotenv\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.API.AuthToken)
}

func TestConfigClaudeStringMasksKey(t *testing.T) {
	cfg := ClaudeConfig{
		APIKey: "sk-ant-1234567890abcdef",
		Model:  "claude-haiku-4-5-20251001",
	}
	s := cfg.String()
	assert.Contains(t, s, "sk-a")
	assert.NotContains(t, s, "1234567890")
	assert.Contains(t, ClaudeConfig{APIKey: "short"}.String(), "***")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty listen addr", func(c *Config) { c.API.ListenAddr = "" }, "api.listen_addr"},
		{"negative max sessions", func(c *Config) { c.Sessions.MaxSessions = -1 }, "max_sessions"},
		{"negative ttl", func(c *Config) { c.Sessions.IdleTTLMinutes = -5 }, "idle_ttl_minutes"},
		{"zero sweep with ttl", func(c *Config) { c.Sessions.SweepIntervalSeconds = 0 }, "sweep_interval_seconds"},
		{"zero sweep without ttl", func(c *Config) {
			c.Sessions.IdleTTLMinutes = 0
			c.Sessions.SweepIntervalSeconds = 0
		}, ""},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}
}
