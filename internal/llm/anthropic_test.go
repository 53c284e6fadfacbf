package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5"}
}

// anthropicReply serves a message made of the given text blocks.
func anthropicReply(stop string, texts ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blocks := make([]map[string]any, len(texts))
		for i, text := range texts {
			blocks[i] = map[string]any{"type": "text", "text": text}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     blocks,
			"model":       "claude-haiku-4-5",
			"stop_reason": stop,
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}
}

func anthropicFailure(status int, kind string, header http.Header) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": kind, "message": "nope"},
		})
	}
}

func askBatch(p *AnthropicProvider) (*Response, error) {
	return p.Generate(context.Background(), Request{
		System:    "Generate math problems.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate 1 Addition problem."}},
		Schema:    batchSchema("anthropic-test-batch", false),
		MaxTokens: 256,
	})
}

const oneProblem = `{"problems":[{"id":"add-1","question":"What is 2 + 3?","options":["4","5","6","7"],"correctAnswer":"5"}]}`

func TestAnthropicProvider_PlainText(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply("end_turn", "Five ", "apples!"))
	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "What is 2 + 3?"}},
		MaxTokens: 64,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != "Five apples!" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q, want end", resp.StopReason)
	}
}

func TestAnthropicProvider_StructuredOutput(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
	}{
		{"bare JSON", []string{oneProblem}},
		{"fenced JSON", []string{"```json\n" + oneProblem + "\n```"}},
		{"split across blocks", []string{oneProblem[:20], oneProblem[20:]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, anthropicReply("end_turn", tt.texts...))
			resp, err := askBatch(p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(resp.Content) != oneProblem {
				t.Errorf("content = %s", resp.Content)
			}
		})
	}
}

func TestAnthropicProvider_SchemaMismatch(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply("end_turn", `{"problems":[{"id":"x"}]}`))
	_, err := askBatch(p)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
	if !Unusable(err) {
		t.Error("schema mismatch should be unusable")
	}
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply("max_tokens", oneProblem[:40]))
	_, err := askBatch(p)
	var truncated *ErrMaxTokensExceeded
	if !errors.As(err, &truncated) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
	if len(truncated.Content) != 40 {
		t.Errorf("partial content length = %d, want 40", len(truncated.Content))
	}
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicFailure(http.StatusTooManyRequests, "rate_limit_error",
		http.Header{"Retry-After": []string{"7"}}))
	_, err := askBatch(p)
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
	if rl.RetryAfter != 7*time.Second {
		t.Errorf("retry after = %s, want 7s", rl.RetryAfter)
	}
}

func TestAnthropicProvider_ServerError(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicFailure(http.StatusInternalServerError, "api_error", nil))
	_, err := askBatch(p)
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
	if Unusable(err) {
		t.Error("an outage is not an unusable answer")
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"claude-sonnet", "claude-sonnet-4-5"},
		{"claude-haiku", "claude-haiku-4-5"},
		{"claude-opus-4-1", "claude-opus-4-1"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRetryAfterHeader(t *testing.T) {
	future := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	tests := []struct {
		value string
		min   time.Duration
		max   time.Duration
	}{
		{"", 0, 0},
		{"3", 3 * time.Second, 3 * time.Second},
		{"soon", 0, 0},
		{"-1", 0, 0},
		{future, 59 * time.Minute, time.Hour},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.value != "" {
			h.Set("Retry-After", tt.value)
		}
		if got := retryAfter(h); got < tt.min || got > tt.max {
			t.Errorf("retryAfter(%q) = %s, want within [%s, %s]", tt.value, got, tt.min, tt.max)
		}
	}
}
