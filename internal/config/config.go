// ABOUTME: Configuration management for brewmatch with YAML config loading.
// ABOUTME: Handles storage driver selection, engine tuning, logging, feed, and ~ expansion.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/brewmatch/internal/logging"
)

// Config stores brewmatch configuration loaded from ~/.config/brewmatch/config.yaml.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Engine  EngineConfig  `yaml:"engine"`
	Log     LogConfig     `yaml:"log"`
	Feed    FeedConfig    `yaml:"feed"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// StorageConfig selects and locates the database.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

// EngineConfig tunes recommendation retrieval.
type EngineConfig struct {
	OverFetchFactor int `yaml:"overfetch_factor"`
	DefaultLimit    int `yaml:"default_limit"`
	AdminLimit      int `yaml:"admin_limit"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FeedConfig holds optional remote catalog feed settings.
type FeedConfig struct {
	URL    string `yaml:"url,omitempty"`
	APIKey string `yaml:"api_key,omitempty"`
}

// MetricsConfig holds the optional /metrics listen address.
type MetricsConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Driver: "sqlite"},
		Engine: EngineConfig{
			OverFetchFactor: 2,
			DefaultLimit:    3,
			AdminLimit:      10,
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// HasFeed returns true if a remote catalog feed is configured.
func (c *Config) HasFeed() bool {
	return c.Feed.URL != ""
}

// GetStoragePath returns the SQLite file path, defaulting to the XDG data directory.
func (c *Config) GetStoragePath() (string, error) {
	if c.Storage.Path != "" {
		return ExpandPath(c.Storage.Path)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "brewmatch.db"), nil
}

// StorageLocation returns what storage.Open expects for the configured driver:
// a file path for sqlite, the DSN for postgres.
func (c *Config) StorageLocation() (string, error) {
	if c.Storage.Driver == "postgres" {
		return c.Storage.DSN, nil
	}
	return c.GetStoragePath()
}

// Validate rejects settings the rest of the program cannot use.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "":
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when storage.driver is postgres")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q (want sqlite or postgres)", c.Storage.Driver)
	}

	if c.Engine.OverFetchFactor < 1 {
		return fmt.Errorf("engine.overfetch_factor must be at least 1, got %d", c.Engine.OverFetchFactor)
	}
	if c.Engine.DefaultLimit < 1 {
		return fmt.Errorf("engine.default_limit must be at least 1, got %d", c.Engine.DefaultLimit)
	}
	if c.Engine.AdminLimit < 1 {
		return fmt.Errorf("engine.admin_limit must be at least 1, got %d", c.Engine.AdminLimit)
	}

	if c.Log.Level != "" && !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	if c.Log.Format != "" && c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("unknown log.format %q (want json or console)", c.Log.Format)
	}

	if c.Feed.URL != "" {
		u, err := url.Parse(c.Feed.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("feed.url must be an http(s) URL, got %q", c.Feed.URL)
		}
	}
	return nil
}

// DataDir returns the default brewmatch data directory.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "brewmatch"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "brewmatch", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk over the defaults. Returns Default() if the file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
