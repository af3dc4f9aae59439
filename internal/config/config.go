package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultMaxSessions caps live planning sessions in the API server.
	DefaultMaxSessions = 1000

	// DefaultIdleTTLMinutes is how long an untouched session survives.
	DefaultIdleTTLMinutes = 60

	// DefaultSweepIntervalSeconds is how often idle sessions are reaped.
	DefaultSweepIntervalSeconds = 60
)

// Config holds all configuration for tripplanner.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Claude   ClaudeConfig   `mapstructure:"claude"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	Render   RenderConfig   `mapstructure:"render"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// ClaudeConfig holds Anthropic Claude API settings used for trip blurbs.
type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// String returns a safe representation of ClaudeConfig with the API key masked.
func (c ClaudeConfig) String() string {
	masked := maskAPIKey(c.APIKey)
	return fmt.Sprintf("ClaudeConfig{APIKey:%s, Model:%s}", masked, c.Model)
}

// Enabled reports whether narration can be used.
func (c ClaudeConfig) Enabled() bool { return c.APIKey != "" }

// maskAPIKey shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskAPIKey(key string) string {
	const visible = 4
	if len(key) <= visible*2 {
		return "***"
	}
	return key[:visible] + "****" + key[len(key)-visible:]
}

// SessionsConfig bounds the in-memory planning sessions.
type SessionsConfig struct {
	MaxSessions          int `mapstructure:"max_sessions"`
	IdleTTLMinutes       int `mapstructure:"idle_ttl_minutes"`
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds"`
}

// RenderConfig controls how summaries are presented.
type RenderConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	CurrencyCode   string `mapstructure:"currency_code"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from a .env file, a config file and environment
// variables, in increasing order of precedence for the latter two.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()

	// Defaults
	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.auth_token", "")

	v.SetDefault("claude.model", "claude-haiku-4-5-20251001")

	v.SetDefault("sessions.max_sessions", DefaultMaxSessions)
	v.SetDefault("sessions.idle_ttl_minutes", DefaultIdleTTLMinutes)
	v.SetDefault("sessions.sweep_interval_seconds", DefaultSweepIntervalSeconds)

	v.SetDefault("render.currency_symbol", "₹")
	v.SetDefault("render.currency_code", "INR")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".tripplanner"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("TRIPPLANNER")
	v.AutomaticEnv()

	// Map specific env vars
	_ = v.BindEnv("claude.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("api.listen_addr", "TRIPPLANNER_API_LISTEN_ADDR")
	_ = v.BindEnv("api.auth_token", "TRIPPLANNER_API_AUTH_TOKEN")
	_ = v.BindEnv("sessions.idle_ttl_minutes", "TRIPPLANNER_SESSIONS_IDLE_TTL_MINUTES")
	_ = v.BindEnv("logging.level", "TRIPPLANNER_LOGGING_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file: defaults + env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	if c.Sessions.MaxSessions < 0 {
		return fmt.Errorf("sessions.max_sessions must be >= 0")
	}
	if c.Sessions.IdleTTLMinutes < 0 {
		return fmt.Errorf("sessions.idle_ttl_minutes must be >= 0")
	}
	if c.Sessions.IdleTTLMinutes > 0 && c.Sessions.SweepIntervalSeconds <= 0 {
		return fmt.Errorf("sessions.sweep_interval_seconds must be greater than 0 when idle expiry is on")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q must be text or json", c.Logging.Format)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
