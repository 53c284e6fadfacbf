package llm

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultGeminiVoice = "Kore"
	defaultOpenAIVoice = "alloy"
)

// Config holds all provider configuration.
type Config struct {
	// Provider selects the text provider.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	// Speech selects the speech provider. Empty follows Provider when
	// that provider can speak. Values: "gemini", "openai", "mock", "none"
	Speech string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries. Default: 30s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey   string
	Model    string // Default: "gpt-4o-mini"
	BaseURL  string // Optional. Override for compatible APIs.
	TTSModel string // Default: "tts-1"
	Voice    string // Default: "alloy"

	headers map[string]string // sent with every request
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey   string
	Model    string // Default: "gemini-flash"
	TTSModel string // Default: "gemini-tts"
	Voice    string // Default: "Kore"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model:    "gpt-4o-mini",
			TTSModel: "tts",
			Voice:    defaultOpenAIVoice,
		},
		Gemini: GeminiConfig{
			Model:    "gemini-flash",
			TTSModel: "gemini-tts",
			Voice:    defaultGeminiVoice,
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from MATHSPACE_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "MATHSPACE_LLM_PROVIDER")
	setFromEnv(&cfg.Speech, "MATHSPACE_TTS_PROVIDER")

	setFromEnv(&cfg.Anthropic.APIKey, "MATHSPACE_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "MATHSPACE_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "MATHSPACE_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "MATHSPACE_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "MATHSPACE_OPENAI_BASE_URL")
	setFromEnv(&cfg.OpenAI.TTSModel, "MATHSPACE_OPENAI_TTS_MODEL")
	setFromEnv(&cfg.OpenAI.Voice, "MATHSPACE_OPENAI_VOICE")

	setFromEnv(&cfg.Gemini.APIKey, "MATHSPACE_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "MATHSPACE_GEMINI_MODEL")
	setFromEnv(&cfg.Gemini.TTSModel, "MATHSPACE_GEMINI_TTS_MODEL")
	setFromEnv(&cfg.Gemini.Voice, "MATHSPACE_GEMINI_VOICE")

	setFromEnv(&cfg.OpenRouter.APIKey, "MATHSPACE_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "MATHSPACE_OPENROUTER_MODEL")

	cfg.applySpeechEnv()
	return cfg
}

// applySpeechEnv applies MATHSPACE_TTS_MODEL and MATHSPACE_TTS_VOICE to
// whichever provider speaks.
func (c *Config) applySpeechEnv() {
	switch c.SpeechProviderName() {
	case "gemini":
		setFromEnv(&c.Gemini.TTSModel, "MATHSPACE_TTS_MODEL")
		setFromEnv(&c.Gemini.Voice, "MATHSPACE_TTS_VOICE")
	case "openai":
		setFromEnv(&c.OpenAI.TTSModel, "MATHSPACE_TTS_MODEL")
		setFromEnv(&c.OpenAI.Voice, "MATHSPACE_TTS_VOICE")
	}
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini, then OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"} {
		if k := os.Getenv(key); k != "" {
			cfg.Provider = "gemini"
			cfg.Gemini.APIKey = k
			return cfg, true
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig prefers explicit MATHSPACE_* settings and falls back to
// key discovery.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	if cfg.hasKey() || cfg.Provider == "mock" {
		return cfg, cfg.Validate()
	}
	if found, ok := DiscoverConfig(); ok {
		found.Speech = cfg.Speech
		found.applySpeechEnv()
		return found, found.Validate()
	}
	return Config{}, fmt.Errorf("no LLM API key found (set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY)")
}

func (c Config) hasKey() bool {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "openai":
		return c.OpenAI.APIKey != ""
	case "gemini":
		return c.Gemini.APIKey != ""
	case "openrouter":
		return c.OpenRouter.APIKey != ""
	}
	return false
}

// SpeechProviderName returns the speech provider that Speech resolves to.
// "none" means speech is disabled.
func (c Config) SpeechProviderName() string {
	if c.Speech != "" {
		return c.Speech
	}
	switch c.Provider {
	case "gemini", "openai", "mock":
		return c.Provider
	}
	return "none"
}

// Validate checks that the selected text provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("MATHSPACE_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("MATHSPACE_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("MATHSPACE_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("MATHSPACE_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// ValidateSpeech checks the speech provider. A speech problem never
// prevents text generation.
func (c Config) ValidateSpeech() error {
	switch c.SpeechProviderName() {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("MATHSPACE_GEMINI_API_KEY is required for gemini speech")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("MATHSPACE_OPENAI_API_KEY is required for openai speech")
		}
	case "mock", "none":
	default:
		return fmt.Errorf("unknown speech provider: %q", c.Speech)
	}
	return nil
}
