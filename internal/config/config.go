// Package config loads the Data Alchemist client configuration from
// ~/.alchemist/config.yaml with environment variable overrides.
// Precedence: flags > environment > file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	// API is the backend connection.
	API APIConfig `yaml:"api"`

	// Notifications controls transient error toasts.
	Notifications NotifyConfig `yaml:"notifications"`

	// Output controls rendering.
	Output OutputConfig `yaml:"output"`
}

// APIConfig configures the backend connection and the three client timeouts.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`

	// Timeouts, as Go duration strings. Short covers health checks and
	// status polls, Default covers data/rule traffic, Long covers the AI
	// endpoints.
	ShortTimeout   string `yaml:"short_timeout"`
	DefaultTimeout string `yaml:"default_timeout"`
	LongTimeout    string `yaml:"long_timeout"`
}

// NotifyConfig configures error notification behavior.
type NotifyConfig struct {
	// QuietPaths are URL substrings whose request failures are not
	// surfaced as notifications. Status polling and AI endpoints fail
	// routinely before any data is uploaded.
	QuietPaths []string `yaml:"quiet_paths"`
}

// OutputConfig configures terminal rendering.
type OutputConfig struct {
	// Theme is "auto", "light" or "dark".
	Theme string `yaml:"theme"`
	// PageLimit is the default list page size.
	PageLimit int `yaml:"page_limit"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:3001/api",
			ShortTimeout:   "10s",
			DefaultTimeout: "30s",
			LongTimeout:    "120s",
		},
		Notifications: NotifyConfig{
			QuietPaths: []string{"/upload/status", "/data/", "/ai/"},
		},
		Output: OutputConfig{
			Theme:     "auto",
			PageLimit: 20,
		},
	}
}

// DefaultPath returns ~/.alchemist/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".alchemist", "config.yaml")
	}
	return filepath.Join(home, ".alchemist", "config.yaml")
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, creating the parent directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets ALCHEMIST_BASE_URL and ALCHEMIST_TOKEN override the
// file values. Tokens usually come from the environment in CI.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ALCHEMIST_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("ALCHEMIST_TOKEN"); v != "" {
		c.API.Token = v
	}
}

func parseTimeout(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ShortTimeout returns the parsed short timeout (default 10s).
func (c *Config) ShortTimeout() time.Duration {
	return parseTimeout(c.API.ShortTimeout, 10*time.Second)
}

// DefaultTimeout returns the parsed default timeout (default 30s).
func (c *Config) DefaultTimeout() time.Duration {
	return parseTimeout(c.API.DefaultTimeout, 30*time.Second)
}

// LongTimeout returns the parsed long timeout for AI calls (default 120s).
func (c *Config) LongTimeout() time.Duration {
	return parseTimeout(c.API.LongTimeout, 120*time.Second)
}

// Validate checks the config for obvious misconfiguration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Output.PageLimit < 1 {
		return fmt.Errorf("output.page_limit must be positive, got %d", c.Output.PageLimit)
	}
	return nil
}
