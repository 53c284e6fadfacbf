package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/mathspace/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, eventRepo)
	return WithRetry(logged, cfg.Retry), nil
}

// NewSpeechProvider creates the configured SpeechProvider wrapped with
// retry and logging. Returns ErrSpeechUnsupported when speech is disabled
// or the text provider cannot speak.
func NewSpeechProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (SpeechProvider, error) {
	if err := cfg.ValidateSpeech(); err != nil {
		return nil, err
	}

	var base SpeechProvider
	var err error

	name := cfg.SpeechProviderName()
	switch name {
	case "gemini":
		base, err = NewGeminiSpeechProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAISpeechProvider(cfg.OpenAI)
	case "mock":
		return NewMockSpeechProvider(), nil
	case "none":
		return nil, ErrSpeechUnsupported
	default:
		return nil, fmt.Errorf("unknown speech provider: %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s speech: %w", name, err)
	}

	logged := WithSpeechLogging(base, eventRepo)
	return WithSpeechRetry(logged, cfg.Retry), nil
}

// Providers bundles the text and speech providers built from the environment.
type Providers struct {
	Config Config
	Text   Provider

	// Speech is nil when unavailable; SpeechErr says why.
	Speech    SpeechProvider
	SpeechErr error
}

// NewProvidersFromEnv resolves configuration from the environment and
// builds both providers. Only a text provider failure is an error.
func NewProvidersFromEnv(ctx context.Context, eventRepo store.EventRepo) (*Providers, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}

	text, err := NewProvider(ctx, cfg, eventRepo)
	if err != nil {
		return nil, err
	}

	p := &Providers{Config: cfg, Text: text}
	p.Speech, p.SpeechErr = NewSpeechProvider(ctx, cfg, eventRepo)
	return p, nil
}
