// Package common provides shared utilities for the Vire dashboard
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the dashboard
type Config struct {
	Environment     string         `toml:"environment"`
	DisplayCurrency string         `toml:"display_currency"` // ISO code used for money display (default "INR")
	Server          ServerConfig   `toml:"server"`
	Upstream        UpstreamConfig `toml:"upstream"`
	Refresh         RefreshConfig  `toml:"refresh"`
	Charts          ChartsConfig   `toml:"charts"`
	Logging         LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// UpstreamConfig holds the portfolio API configuration
type UpstreamConfig struct {
	BaseURL       string `toml:"base_url"`
	SummaryPath   string `toml:"summary_path"`
	PortfolioPath string `toml:"portfolio_path"`
	DeletePath    string `toml:"delete_path"`
	RateLimit     int    `toml:"rate_limit"`
	Timeout       string `toml:"timeout"` // empty means no timeout
}

// GetTimeout parses the timeout. An empty or invalid value yields 0 (no timeout).
func (c *UpstreamConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// RefreshConfig holds refresh cycle behaviour
type RefreshConfig struct {
	// DiscardStale drops the results of a cycle that finishes after a later
	// cycle has already been applied. Off by default: last completion wins.
	DiscardStale bool `toml:"discard_stale"`
}

// ChartsConfig holds chart mount configuration
type ChartsConfig struct {
	Mounts []string `toml:"mounts"` // mount ids that exist on the page
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment:     "development",
		DisplayCurrency: money.INR,
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8090,
		},
		Upstream: UpstreamConfig{
			BaseURL:       "http://localhost:8080",
			SummaryPath:   "/api/summary",
			PortfolioPath: "/api/portfolio",
			DeletePath:    "/delete",
			RateLimit:     5,
		},
		Charts: ChartsConfig{
			Mounts: []string{"pieChart", "lineChart", "barChart"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	validateDisplayCurrency(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("VIRE_DASH_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("VIRE_DASH_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("VIRE_DASH_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("VIRE_DASH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("VIRE_DASH_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if url := os.Getenv("VIRE_DASH_UPSTREAM_URL"); url != "" {
		config.Upstream.BaseURL = strings.TrimRight(url, "/")
	}

	if v := os.Getenv("VIRE_DASH_UPSTREAM_TIMEOUT"); v != "" {
		config.Upstream.Timeout = v
	}

	if v := os.Getenv("VIRE_DASH_DISCARD_STALE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Refresh.DiscardStale = b
		}
	}

	if dc := os.Getenv("VIRE_DASH_DISPLAY_CURRENCY"); dc != "" {
		config.DisplayCurrency = strings.ToUpper(dc)
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// validateDisplayCurrency ensures DisplayCurrency is a currency go-money knows,
// defaulting to INR.
func validateDisplayCurrency(config *Config) {
	dc := strings.ToUpper(strings.TrimSpace(config.DisplayCurrency))
	if money.GetCurrency(dc) == nil {
		dc = money.INR
	}
	config.DisplayCurrency = dc
}
