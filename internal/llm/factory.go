package llm

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoAPIKey is returned by NewProvider when the provider's key is not in
// the environment.
var ErrNoAPIKey = errors.New("api key not configured")

// NewProvider creates a new LLM provider based on the given provider type and model.
// Supported provider types: "openai", "openrouter". baseURL overrides the
// provider's default endpoint when non-empty.
func NewProvider(providerType string, model string, baseURL string) (Provider, error) {
	switch providerType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable is not set", ErrNoAPIKey)
		}
		return NewOpenAICompatibleProvider("openai", apiKey, model, baseURL), nil

	case "openrouter":
		apiKey := os.Getenv("OPENROUTER_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: OPENROUTER_API_KEY environment variable is not set", ErrNoAPIKey)
		}
		if baseURL == "" {
			baseURL = openRouterBaseURL
		}
		return NewOpenAICompatibleProvider("openrouter", apiKey, model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
