// Package config loads process-level configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every recognised environment variable.
const EnvPrefix = "DATALEX"

// Storage backends for engine records.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds settings resolved before the application is wired.
// Command-line flags take precedence over these values.
type Config struct {
	// DataDir holds the fragment database. Defaults to ~/.datalex/data.
	DataDir string `envconfig:"DATA_DIR"`

	// ConfigDir holds config.toml. Defaults to ~/.datalex.
	ConfigDir string `envconfig:"CONFIG_DIR"`

	// Storage is sqlite or memory.
	Storage string `envconfig:"STORAGE" default:"sqlite"`

	// Verbose enables debug logging.
	Verbose bool `envconfig:"VERBOSE" default:"false"`
}

// Load reads an optional .env file, then DATALEX_* variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage %q: want %s or %s", c.Storage, StorageSQLite, StorageMemory)
	}
}

// UsesSQLite reports whether records are persisted on disk.
func (c *Config) UsesSQLite() bool {
	return c.Storage == StorageSQLite
}

// ResolveDirs fills empty directories with their defaults under the home directory.
func (c *Config) ResolveDirs() error {
	if c.ConfigDir != "" && c.DataDir != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	if c.ConfigDir == "" {
		c.ConfigDir = filepath.Join(home, ".datalex")
	}
	if c.DataDir == "" {
		c.DataDir = filepath.Join(home, ".datalex", "data")
	}
	return nil
}
