// Package ai provides the text-generation fallback used when the rule-based
// command parser reports low confidence. Providers are opaque text-in /
// text-out collaborators; nothing here feeds back into the parser itself.
package ai

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Message is one turn of a conversation sent along with a prompt.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Provider is the interface every AI backend implements.
type Provider interface {
	// Generate sends the conversation and returns the model's text reply.
	Generate(ctx context.Context, system string, messages []Message) (string, error)

	// Name returns the provider identifier.
	Name() string
}

// NewProvider creates a provider instance based on the provider name.
func NewProvider(name, model string) (Provider, error) {
	switch strings.ToLower(name) {
	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set — get your API key at https://console.anthropic.com/settings/keys")
		}
		return NewAnthropicProvider(apiKey, model), nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model), nil
	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q — supported providers: anthropic, openai, ollama", name)
	}
}
