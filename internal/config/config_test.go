package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "ollama" {
		t.Errorf("provider = %q, want ollama", cfg.Provider)
	}
	if cfg.Agent.ConfidenceThreshold != 0.6 {
		t.Errorf("confidence threshold = %v, want 0.6", cfg.Agent.ConfidenceThreshold)
	}
	if cfg.Agent.HistoryWindow != 10 {
		t.Errorf("history window = %d, want 10", cfg.Agent.HistoryWindow)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("telemetry should default to enabled")
	}
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".sheetmind")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "provider: anthropic\nmodel: claude-3-5-haiku\nagent:\n  confidence_threshold: 0.8\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Model != "claude-3-5-haiku" {
		t.Errorf("model = %q, want claude-3-5-haiku", cfg.Model)
	}
	if cfg.Agent.ConfidenceThreshold != 0.8 {
		t.Errorf("confidence threshold = %v, want 0.8", cfg.Agent.ConfidenceThreshold)
	}
	// Unset keys keep their defaults.
	if cfg.Ollama.Host != "http://localhost:11434" {
		t.Errorf("ollama host = %q, want default", cfg.Ollama.Host)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHEETMIND_PROVIDER", "openai")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q, want env override openai", cfg.Provider)
	}
}

func TestWriteDefaultIsIdempotent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, err := WriteDefault()
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	custom := []byte("provider: openai\n")
	if err := os.WriteFile(path, custom, 0644); err != nil {
		t.Fatal(err)
	}

	// A second call must not clobber the existing file.
	if _, err := WriteDefault(); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(custom) {
		t.Error("WriteDefault overwrote an existing config file")
	}
}
