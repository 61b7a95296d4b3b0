// Package config manages application configuration from files and environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	Ollama   struct {
		Host string `mapstructure:"host"`
	} `mapstructure:"ollama"`
	Agent struct {
		ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
		HistoryWindow       int     `mapstructure:"history_window"`
	} `mapstructure:"agent"`
	Telemetry struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"telemetry"`
	Output struct {
		Format string `mapstructure:"format"`
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`
}

// Load reads the configuration from ~/.sheetmind/config.yaml and environment
// variables (SHEETMIND_ prefix).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())

	// Defaults
	v.SetDefault("provider", "ollama")
	v.SetDefault("model", "llama3.2")
	v.SetDefault("ollama.host", "http://localhost:11434")
	v.SetDefault("agent.confidence_threshold", 0.6)
	v.SetDefault("agent.history_window", 10)
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("output.color", true)
	v.SetDefault("output.format", "text")

	// Environment variable overrides
	v.SetEnvPrefix("SHEETMIND")
	v.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Dir returns the configuration directory (~/.sheetmind).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sheetmind"
	}
	return filepath.Join(home, ".sheetmind")
}

// WriteDefault writes a starter config file if none exists yet, returning the
// path it lives at.
func WriteDefault() (string, error) {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	starter := `# SheetMind configuration
provider: ollama        # ollama, anthropic, or openai
model: llama3.2
ollama:
  host: http://localhost:11434
agent:
  confidence_threshold: 0.6
  history_window: 10
telemetry:
  enabled: true
output:
  format: text
  color: true
`
	if err := os.WriteFile(path, []byte(starter), 0644); err != nil {
		return "", err
	}
	return path, nil
}
