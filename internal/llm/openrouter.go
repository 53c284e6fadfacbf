package llm

import "fmt"

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "google/gemini-2.5-flash"
)

// openRouterHeaders attribute requests to the app on openrouter.ai.
var openRouterHeaders = map[string]string{
	"HTTP-Referer": "https://github.com/abhisek/mathspace",
	"X-Title":      "Mathspace Adventure",
}

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible API.
// Model IDs are vendor-prefixed ("google/gemini-2.5-flash") and passed
// through untouched.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenRouterModel
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		headers: openRouterHeaders,
	})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

func (*OpenRouterProvider) Vendor() string { return "openrouter" }
