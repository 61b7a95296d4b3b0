// Package session wires configuration and CLI flags into ready-to-use agent
// sessions.
package session

import (
	"fmt"
	"os"

	"github.com/klytics/sheetmind/internal/agent"
	"github.com/klytics/sheetmind/internal/ai"
	"github.com/klytics/sheetmind/internal/config"
)

// NewAgent builds an agent session from the loaded configuration, with flag
// overrides for provider and model. An unreachable or misconfigured AI
// provider is not fatal: the agent degrades to canned fallback responses, and
// a hint is printed to stderr.
func NewAgent(providerName, model string) (*agent.Agent, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %s\n", err)
		cfg = &config.Config{}
	}

	if providerName == "" {
		providerName = cfg.Provider
	}
	if model == "" {
		model = cfg.Model
	}

	provider := buildProvider(providerName, model, cfg)

	return agent.New(agent.Options{
		Provider:            provider,
		ConfidenceThreshold: cfg.Agent.ConfidenceThreshold,
		HistoryWindow:       cfg.Agent.HistoryWindow,
	}), cfg
}

func buildProvider(name, model string, cfg *config.Config) ai.Provider {
	// The config file can pin the Ollama host without touching OLLAMA_HOST.
	if name == "ollama" && os.Getenv("OLLAMA_HOST") == "" && cfg.Ollama.Host != "" {
		return ai.NewOllamaProvider(cfg.Ollama.Host, model)
	}

	provider, err := ai.NewProvider(name, model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: AI fallback disabled: %s\n", err)
		return nil
	}
	return provider
}
