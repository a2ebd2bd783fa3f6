// Package config provides configuration loading and validation for the assistant server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPort is the HTTP port used when neither flags nor the config file set one.
const DefaultPort = 8080

// Config represents the server configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Host           string   `json:"host,omitempty"`            // Interface to bind, empty for all
	Port           int      `json:"port,omitempty"`            // HTTP port
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS origins, "*" allows any

	// Data
	KnowledgeFile string `json:"knowledge_file,omitempty"` // Override for the embedded knowledge tables
	DatabaseURL   string `json:"database_url,omitempty"`   // postgres:// or sqlite:// lead store

	// Behavior
	ShutdownTimeoutSeconds int  `json:"shutdown_timeout_seconds,omitempty"` // Graceful shutdown budget
	Verbose                bool `json:"verbose,omitempty"`                  // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'shutdown_timeout_seconds' must be non-negative")
	}

	if c.KnowledgeFile != "" {
		if _, err := os.Stat(c.KnowledgeFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: knowledge file not found: %s", c.KnowledgeFile)
		}
	}

	if c.DatabaseURL != "" && !hasAnyPrefix(c.DatabaseURL, "postgres://", "postgresql://", "sqlite://", "file:") {
		return fmt.Errorf("config error: unsupported database_url scheme")
	}

	for _, origin := range c.AllowedOrigins {
		if origin != "*" && !hasAnyPrefix(origin, "http://", "https://") {
			return fmt.Errorf("config error: invalid allowed origin %q", origin)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Host == "" {
		result.Host = defaults.Host
	}
	if result.KnowledgeFile == "" {
		result.KnowledgeFile = defaults.KnowledgeFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = append([]string(nil), defaults.AllowedOrigins...)
	}

	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}
	if result.ShutdownTimeoutSeconds == 0 {
		if defaults.ShutdownTimeoutSeconds > 0 {
			result.ShutdownTimeoutSeconds = defaults.ShutdownTimeoutSeconds
		} else {
			result.ShutdownTimeoutSeconds = 10
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
