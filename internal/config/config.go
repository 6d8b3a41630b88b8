// Package config handles the configuration directory, the config file and
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	// AppName is the application directory name.
	AppName = "svns"

	// ConfigFile is the optional YAML settings file.
	ConfigFile = "config.yaml"

	// EnvFile is the optional dotenv file loaded before reading overrides.
	EnvFile = ".env"

	// DatabaseFile is the default task database filename.
	DatabaseFile = "svns.db"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultSignalLimit is the open-task cap of the signal list.
	DefaultSignalLimit = 5
)

// Environment overrides.
const (
	EnvSignalLimit = "SVNS_SIGNAL_LIMIT"
	EnvDatabase    = "SVNS_DATABASE"
	EnvLogLevel    = "SVNS_LOG_LEVEL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// SignalLimit caps the number of open signal tasks.
	SignalLimit int

	// Database is the task database path. Relative paths are resolved
	// against Dir.
	Database string

	// LogLevel is the log level used when Debug is off.
	LogLevel string
}

// fileConfig mirrors config.yaml.
type fileConfig struct {
	SignalLimit int    `yaml:"signal_limit"`
	Database    string `yaml:"database"`
	LogLevel    string `yaml:"log_level"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/svns or $HOME/.config/svns.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:         dir,
		SignalLimit: DefaultSignalLimit,
		Database:    DatabaseFile,
	}, nil
}

// Load is New followed by reading config.yaml, .env and the environment,
// in increasing order of precedence. Missing files are not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(cfg.Dir, ConfigFile))
	switch {
	case err == nil:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
		if fc.SignalLimit != 0 {
			cfg.SignalLimit = fc.SignalLimit
		}
		if fc.Database != "" {
			cfg.Database = fc.Database
		}
		cfg.LogLevel = fc.LogLevel
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	// godotenv.Load never overrides variables already set in the process
	envPath := filepath.Join(cfg.Dir, EnvFile)
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvFile, err)
		}
	}

	if v := os.Getenv(EnvSignalLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", EnvSignalLimit, v)
		}
		cfg.SignalLimit = n
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if cfg.SignalLimit < 1 {
		return nil, fmt.Errorf("signal limit must be at least 1, got %d", cfg.SignalLimit)
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DatabasePath returns the absolute or Dir-relative database path.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(c.Dir, c.Database)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
