package llm

import (
	"context"
	"encoding/json"
)

// Provider generates text or structured JSON from a prompt.
type Provider interface {
	// Generate sends a prompt and returns the model output. When the
	// request carries a Schema, the provider asks for JSON conforming to it
	// and Content holds that JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt, e.g. the Professor Robot persona.
	System string

	// Messages is the conversation history. Missions and tutor questions
	// are single-turn, so this normally holds one user message.
	Messages []Message

	// Schema, when set, asks for structured JSON output. When nil the
	// response Content is the raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness in [0, 1]. Zero means provider default
	// for providers that distinguish it.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "problem-batch".
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema definition.
	Definition map[string]any

	// Envelope, when set, replaces Definition when validating responses.
	// Consumers that check entries themselves pass the outer shape only,
	// so one bad entry does not fail the whole response.
	Envelope map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the validated JSON when a Schema was given, otherwise the
	// raw response text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
