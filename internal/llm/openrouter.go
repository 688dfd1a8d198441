package llm

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider creates a provider for the OpenRouter API
// (OpenAI-compatible).
func NewOpenRouterProvider(apiKey string, model string) *OpenAIProvider {
	return NewOpenAICompatibleProvider("openrouter", apiKey, model, openRouterBaseURL)
}
