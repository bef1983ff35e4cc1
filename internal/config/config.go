// Package config provides configuration loading and validation for the
// player catalog server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variables consumed by the server.
const EnvPrefix = "PLAYER_CATALOG"

// Config represents the root configuration structure.
type Config struct {
	// Address is the listen address of the HTTP API, e.g. ":8080".
	Address string `yaml:"address,omitempty"`

	// Database holds the MongoDB connection settings.
	Database DatabaseConfig `yaml:"database"`

	// Provider holds the external player data provider settings.
	Provider ProviderConfig `yaml:"provider"`

	// Sync optionally enables background roster synchronization.
	Sync *SyncConfig `yaml:"sync,omitempty"`

	// Logging optionally tunes the process logger.
	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// DatabaseConfig defines MongoDB connection settings.
type DatabaseConfig struct {
	// URI is a full MongoDB connection string. When set it takes
	// precedence over Host/Port/User.
	URI string `yaml:"uri,omitempty"`

	// Host is the database server hostname or IP address.
	Host string `yaml:"host,omitempty"`

	// Port is the database server port (defaults to 27017).
	Port int `yaml:"port,omitempty"`

	// User is the database username.
	User string `yaml:"user,omitempty"`

	// PasswordFile is the path to a file containing the database password.
	// This is the recommended approach for production deployments.
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name.
	Database string `yaml:"database"`

	// Collection is the players collection name (defaults to "players").
	Collection string `yaml:"collection,omitempty"`

	// MaxPoolSize is the maximum number of pooled connections.
	MaxPoolSize uint64 `yaml:"maxPoolSize,omitempty"`

	// ConnectTimeout is the connection timeout (e.g. "10s").
	ConnectTimeout string `yaml:"connectTimeout,omitempty"`
}

// ProviderConfig defines the external player data provider endpoint.
type ProviderConfig struct {
	// Endpoint is the base URL of the provider API (without path).
	Endpoint string `yaml:"endpoint"`

	// Timeout is the per-request timeout (e.g. "30s").
	Timeout string `yaml:"timeout,omitempty"`
}

// SyncConfig defines background synchronization settings.
type SyncConfig struct {
	// Clubs are the club ids to synchronize on each run.
	Clubs []string `yaml:"clubs"`

	// Interval is the time between runs (e.g. "1h").
	Interval string `yaml:"interval"`

	// Overwrite makes scheduled merges replace documents flagged for
	// manual correction. Off by default.
	Overwrite bool `yaml:"overwrite,omitempty"`

	// Concurrency bounds the provider fan-out when resolving player
	// activity status.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// LoggingConfig defines process logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level,omitempty"`

	// File is an optional log file path; when set, output is rotated.
	File string `yaml:"file,omitempty"`

	// MaxSizeMB is the rotation size threshold per file.
	MaxSizeMB int `yaml:"maxSizeMB,omitempty"`

	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `yaml:"maxBackups,omitempty"`
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from PLAYER_CATALOG_DATABASE_PASSWORD environment variable
//
// The password from file has leading/trailing whitespace trimmed.
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		cleanPath := filepath.Clean(d.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if password := os.Getenv(EnvPrefix + "_DATABASE_PASSWORD"); password != "" {
		return password, nil
	}

	return "", nil
}

// SyncInterval parses the configured interval.
func (s *SyncConfig) SyncInterval() (time.Duration, error) {
	if s == nil || s.Interval == "" {
		return 0, nil
	}
	interval, err := time.ParseDuration(s.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid sync interval %q: %w", s.Interval, err)
	}
	return interval, nil
}

// ProviderTimeout parses the configured provider timeout; zero means the
// client default applies.
func (p *ProviderConfig) ProviderTimeout() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid provider timeout %q: %w", p.Timeout, err)
	}
	return timeout, nil
}

// Validate checks the configuration for completeness.
func (c *Config) Validate() error {
	if c.Database.URI == "" && c.Database.Host == "" {
		return fmt.Errorf("database: uri or host is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database: name is required")
	}
	if c.Provider.Endpoint == "" {
		return fmt.Errorf("provider: endpoint is required")
	}
	if _, err := c.Provider.ProviderTimeout(); err != nil {
		return fmt.Errorf("provider: %w", err)
	}

	if c.Sync != nil {
		interval, err := c.Sync.SyncInterval()
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}
		if interval <= 0 {
			return fmt.Errorf("sync: interval is required when sync is configured")
		}
		if len(c.Sync.Clubs) == 0 {
			return fmt.Errorf("sync: at least one club is required when sync is configured")
		}
		for _, club := range c.Sync.Clubs {
			if strings.TrimSpace(club) == "" {
				return fmt.Errorf("sync: club ids must not be empty")
			}
		}
		if c.Sync.Concurrency < 0 {
			return fmt.Errorf("sync: concurrency must not be negative")
		}
	}

	return nil
}

// Loader loads configuration files.
type Loader struct{}

// NewConfigLoader creates a configuration loader.
func NewConfigLoader() *Loader {
	return &Loader{}
}

// LoadConfig reads and parses a YAML configuration file.
func (*Loader) LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}

	// Resolve symlinks to prevent symlink attacks.
	// Note that this calls filepath.Clean internally.
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate symlinks: %w", err)
	}

	data, err := os.ReadFile(realPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Address == "" {
		cfg.Address = ":8080"
	}

	return &cfg, nil
}
