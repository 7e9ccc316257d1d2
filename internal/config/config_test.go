// ABOUTME: Tests for brewmatch configuration loading and path expansion.
// ABOUTME: Covers YAML parsing, defaults, validation, storage paths, and feed detection.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 2, cfg.Engine.OverFetchFactor)
	assert.Equal(t, 3, cfg.Engine.DefaultLimit)
	assert.Equal(t, 10, cfg.Engine.AdminLimit)
	assert.False(t, cfg.HasFeed())
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "brewmatch")
	require.NoError(t, os.MkdirAll(configDir, 0750))

	configData := `storage:
  driver: sqlite
  path: "~/coffee/brewmatch.db"
engine:
  overfetch_factor: 4
feed:
  url: "https://feed.example.com"
  api_key: "feed-key"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configData), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Engine.OverFetchFactor)
	assert.Equal(t, 3, cfg.Engine.DefaultLimit, "unset default_limit keeps the default")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.HasFeed())
	assert.Equal(t, "feed-key", cfg.Feed.APIKey)

	home, _ := os.UserHomeDir()
	got, err := cfg.StorageLocation()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "coffee", "brewmatch.db"), got)
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "brewmatch")
	require.NoError(t, os.MkdirAll(configDir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("storage: [unclosed"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Storage = StorageConfig{Driver: "postgres", DSN: "postgres://localhost/brewmatch"}
	cfg.Metrics.Addr = ":9090"
	require.NoError(t, cfg.Save())

	path, err := GetConfigPath()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", loaded.Storage.Driver)
	location, err := loaded.StorageLocation()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/brewmatch", location)
	assert.Equal(t, ":9090", loaded.Metrics.Addr)
}

func TestDefaultStoragePath(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataDir)

	got, err := Default().GetStoragePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "brewmatch", "brewmatch.db"), got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mysql" }, "storage.driver"},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = "postgres" }, "storage.dsn"},
		{"zero overfetch", func(c *Config) { c.Engine.OverFetchFactor = 0 }, "overfetch_factor"},
		{"zero default limit", func(c *Config) { c.Engine.DefaultLimit = 0 }, "default_limit"},
		{"negative admin limit", func(c *Config) { c.Engine.AdminLimit = -1 }, "admin_limit"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad feed url", func(c *Config) { c.Feed.URL = "ftp://feed" }, "feed.url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
