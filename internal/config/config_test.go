package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Agent.Provider != "runtime" {
		t.Errorf("expected Provider=runtime, got %s", cfg.Agent.Provider)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("expected Theme=auto, got %s", cfg.UI.Theme)
	}
	if cfg.Storage.DatabasePath == "" {
		t.Error("expected a default database path")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("JAMJUDGE_AGENT_URL", "")
	t.Setenv("JAMJUDGE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("JAMJUDGE_DB", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Agent.Provider != "runtime" {
		t.Errorf("expected defaults, got provider %s", cfg.Agent.Provider)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	t.Setenv("JAMJUDGE_AGENT_URL", "")
	t.Setenv("JAMJUDGE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("JAMJUDGE_DB", "")

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Agent.Provider = "gemini"
	cfg.Agent.APIKey = "sk-test"
	cfg.Agent.Model = "gemini-2.5-pro"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Agent.Provider != "gemini" {
		t.Errorf("expected Provider=gemini, got %s", loaded.Agent.Provider)
	}
	if loaded.Agent.APIKey != "sk-test" {
		t.Errorf("expected APIKey=sk-test, got %s", loaded.Agent.APIKey)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JAMJUDGE_AGENT_URL", "https://agents.example.test")
	t.Setenv("JAMJUDGE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")
	t.Setenv("JAMJUDGE_DB", "/tmp/override.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Agent.BaseURL != "https://agents.example.test" {
		t.Errorf("agent URL override not applied: %s", cfg.Agent.BaseURL)
	}
	// GEMINI_API_KEY flips the provider.
	if cfg.Agent.Provider != "gemini" || cfg.Agent.APIKey != "env-gemini-key" {
		t.Errorf("gemini override not applied: %s / %s", cfg.Agent.Provider, cfg.Agent.APIKey)
	}
	if cfg.Storage.DatabasePath != "/tmp/override.db" {
		t.Errorf("db override not applied: %s", cfg.Storage.DatabasePath)
	}
}

func TestAgentTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.AgentTimeout(); got != 2*time.Minute {
		t.Errorf("expected 2m default, got %v", got)
	}
	cfg.Agent.Timeout = "garbage"
	if got := cfg.AgentTimeout(); got != 0 {
		t.Errorf("expected 0 for malformed timeout, got %v", got)
	}
}
