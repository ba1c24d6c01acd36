package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in configuration.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all book-catalog settings.
type Config struct {
	// CatalogPath is the JSON snapshot used by the file backend.
	CatalogPath string `yaml:"catalog_path"`

	// Backend selects the store implementation: "file" or "sqlite".
	Backend string `yaml:"backend"`

	// DatabasePath is the SQLite file used by the sqlite backend.
	DatabasePath string `yaml:"database_path"`

	// LogLevel is a zap level name ("info", "debug", ...).
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		CatalogPath:  "library.json",
		Backend:      BackendFile,
		DatabasePath: "library.db",
		LogLevel:     "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (skipped when path is empty or the file does not exist), then
// environment overrides. Unlike the catalog snapshot, a malformed config
// file is an error: it is startup input the user just wrote.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file; fall through to env overrides.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BOOK_CATALOG_FILE"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("BOOK_CATALOG_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("BOOK_CATALOG_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("BOOK_CATALOG_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate rejects unknown backend names early, before any store is opened.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
		return nil
	}
	return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendFile, BackendSQLite)
}
