// Package config loads recipegen settings: defaults, an optional YAML
// file, then RECIPEGEN_* environment overrides. Command-line flags are
// applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/recipegen/internal/logger"
)

// Environment variables read by applyEnvOverrides.
const (
	EnvBaseURL       = "RECIPEGEN_BASE_URL"
	EnvLogFile       = "RECIPEGEN_LOG_FILE"
	EnvLogLevel      = "RECIPEGEN_LOG_LEVEL"
	EnvMarkdownStyle = "RECIPEGEN_MARKDOWN_STYLE"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "recipegen.yaml"

// Config holds all recipegen configuration.
type Config struct {
	// Base URL of the recipe service, without the /api suffix.
	BaseURL string `yaml:"base_url"`
	// HTTP timeout for one request, e.g. "90s". Generation is slow.
	Timeout string `yaml:"timeout"`

	// Logging
	LogFile  string `yaml:"log_file"`  // "stderr" logs to the console
	LogLevel string `yaml:"log_level"` // off, normal, verbose

	// glamour style for the recipe card: auto, dark, light, notty...
	MarkdownStyle string `yaml:"markdown_style"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "http://localhost:8000",
		Timeout:       "120s",
		LogFile:       ".recipegen-logs/recipegen.log",
		LogLevel:      "normal",
		MarkdownStyle: "auto",
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.YAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// YAML returns the configuration in config-file form.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvMarkdownStyle); v != "" {
		c.MarkdownStyle = v
	}
}

// GetTimeout returns the HTTP timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 120 * time.Second
	}
	return d
}

// GetLogLevel parses LogLevel.
func (c *Config) GetLogLevel() (logger.Level, error) {
	return logger.ParseLevel(c.LogLevel)
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL not configured (set base_url or %s)", EnvBaseURL)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base URL %q must start with http:// or https://", c.BaseURL)
	}
	if _, err := c.GetLogLevel(); err != nil {
		return err
	}
	return nil
}
