package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 50, cfg.Scan.MaxPosts)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "results", cfg.Output.Directory)
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 30*time.Second, cfg.Instagram.Timeout)

	assert.False(t, cfg.Probe.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Probe.Timeout)
	assert.Equal(t, 5, cfg.Probe.Concurrency)
	assert.Len(t, cfg.Probe.Platforms, 7)

	require.NoError(t, cfg.Validate())
}

func TestDefaultPlatformsAreTemplates(t *testing.T) {
	for _, tpl := range DefaultPlatforms {
		assert.Contains(t, tpl, "%s", tpl)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad format", func(c *Config) { c.Output.Format = "xml" }},
		{"empty output dir", func(c *Config) { c.Output.Directory = "" }},
		{"zero max posts", func(c *Config) { c.Scan.MaxPosts = 0 }},
		{"zero probe timeout", func(c *Config) { c.Probe.Timeout = 0 }},
		{"excessive probe concurrency", func(c *Config) { c.Probe.Concurrency = 50 }},
		{"template without placeholder", func(c *Config) { c.Probe.Platforms = []string{"https://example.com/user"} }},
		{"zero request timeout", func(c *Config) { c.Instagram.Timeout = 0 }},
		{"zero rpm", func(c *Config) { c.RateLimit.RequestsPerMinute = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("INSTASCAN_SESSION_ID", "env-session")
	t.Setenv("INSTASCAN_MAX_POSTS", "25")
	t.Setenv("INSTASCAN_OUTPUT_FORMAT", "json")
	t.Setenv("INSTASCAN_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "env-session", cfg.Instagram.SessionID)
	assert.Equal(t, 25, cfg.Scan.MaxPosts)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
instagram:
  session_id: file-session
  timeout: 15s
scan:
  max_posts: 10
output:
  format: csv
  directory: exports
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "file-session", cfg.Instagram.SessionID)
	assert.Equal(t, 15*time.Second, cfg.Instagram.Timeout)
	assert.Equal(t, 10, cfg.Scan.MaxPosts)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "exports", cfg.Output.Directory)
}

func TestLoadFromFileMissingPathFails(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"session-id":      "flag-session",
		"format":          "json",
		"output-dir":      "out",
		"max-posts":       99,
		"timeout":         3 * time.Second,
		"external-search": true,
		"verbose":         true,
		"log-level":       "debug",
	})

	assert.Equal(t, "flag-session", cfg.Instagram.SessionID)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "out", cfg.Output.Directory)
	assert.Equal(t, 99, cfg.Scan.MaxPosts)
	assert.Equal(t, 3*time.Second, cfg.Probe.Timeout)
	assert.True(t, cfg.Probe.Enabled)
	assert.True(t, cfg.Scan.Verbose)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("INSTASCAN_OUTPUT_FORMAT", "csv")

	tmp := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	cfg, err := Load("", map[string]interface{}{"format": "json"})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Scan.MaxPosts = 7
	require.NoError(t, cfg.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, 7, loaded.Scan.MaxPosts)
}
