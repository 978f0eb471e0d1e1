// Package config holds the jamjudge configuration: agent provider
// settings, storage location and logging behavior. Configuration lives in
// a YAML file under the data directory, with environment variables taking
// precedence for credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all jamjudge configuration.
type Config struct {
	// Agent configures how submissions reach the evaluation agent.
	Agent AgentConfig `yaml:"agent"`

	// Storage configures the local evaluation store.
	Storage StorageConfig `yaml:"storage"`

	// UI settings
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// AgentConfig configures the evaluation agent transport.
type AgentConfig struct {
	Provider string `yaml:"provider"` // runtime, gemini
	BaseURL  string `yaml:"base_url"` // agent runtime endpoint
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"` // gemini provider only
	Timeout  string `yaml:"timeout"`
}

// StorageConfig configures the SQLite store.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// UIConfig configures the terminal dashboard.
type UIConfig struct {
	Theme string `yaml:"theme"` // light, dark, auto
}

// LoggingConfig configures categorized file logging.
type LoggingConfig struct {
	DebugMode bool `yaml:"debug_mode"`
}

// DataDir returns the jamjudge data directory (~/.jamjudge), falling back
// to a relative directory when the home directory cannot be resolved.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jamjudge"
	}
	return filepath.Join(home, ".jamjudge")
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Provider: "runtime",
			Timeout:  "2m",
		},
		Storage: StorageConfig{
			DatabasePath: filepath.Join(DataDir(), "jamjudge.db"),
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file, returning defaults when the
// file does not exist. Environment variables override file values.
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

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// AgentTimeout parses the configured agent timeout, falling back to zero
// (transport default) on a malformed value.
func (c *Config) AgentTimeout() time.Duration {
	d, err := time.ParseDuration(c.Agent.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("JAMJUDGE_AGENT_URL"); url != "" {
		c.Agent.BaseURL = url
		if c.Agent.Provider == "" {
			c.Agent.Provider = "runtime"
		}
	}
	if key := os.Getenv("JAMJUDGE_API_KEY"); key != "" {
		c.Agent.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Agent.APIKey = key
		c.Agent.Provider = "gemini"
	}
	if db := os.Getenv("JAMJUDGE_DB"); db != "" {
		c.Storage.DatabasePath = db
	}
}
