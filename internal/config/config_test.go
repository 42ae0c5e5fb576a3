package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipegen/internal/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvBaseURL, EnvLogFile, EnvLogLevel, EnvMarkdownStyle} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "recipegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://recipes.example.com
timeout: 45s
log_level: verbose
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://recipes.example.com", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.GetTimeout())
	assert.Equal(t, ".recipegen-logs/recipegen.log", cfg.LogFile, "unset keys keep their default")

	lvl, err := cfg.GetLogLevel()
	require.NoError(t, err)
	assert.Equal(t, logger.LevelVerbose, lvl)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "http://10.0.0.2:8000")
	t.Setenv(EnvLogFile, "stderr")
	t.Setenv(EnvMarkdownStyle, "dracula")

	path := filepath.Join(t.TempDir(), "recipegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://ignored\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:8000", cfg.BaseURL)
	assert.Equal(t, "stderr", cfg.LogFile)
	assert.Equal(t, "dracula", cfg.MarkdownStyle)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:8000", cfg.BaseURL)
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "recipegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "recipegen.yaml")
	cfg := DefaultConfig()
	cfg.BaseURL = "https://api.example.com"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"no scheme", func(c *Config) { c.BaseURL = "localhost:8000" }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetTimeoutFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = "soon"
	assert.Equal(t, 120*time.Second, cfg.GetTimeout())
}
