package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var (
	down    = MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	garbled = MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
	cut     = MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"pro`)}}
	okResp  = MockResponse{Content: json.RawMessage(`{"ok":true}`)}
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first attempt", []MockResponse{okResp}, 1, false},
		{"transient then success", []MockResponse{down, okResp}, 2, false},
		{"rate limited then success", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, okResp}, 2, false},
		{"plain error is transient", []MockResponse{{Err: errors.New("connection reset")}, okResp}, 2, false},
		{"all attempts fail", []MockResponse{down, down, down, okResp}, 3, true},
		{"truncation is final", []MockResponse{cut, okResp}, 1, true},
		{"invalid response retried once", []MockResponse{garbled, garbled, okResp}, 2, true},
		{"invalid then valid", []MockResponse{garbled, okResp}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && string(resp.Content) != `{"ok":true}` {
				t.Errorf("content = %s", resp.Content)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_KeepsErrorType(t *testing.T) {
	mock := NewMockProvider(cut)
	_, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
	var truncated *ErrMaxTokensExceeded
	if !errors.As(err, &truncated) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T", err)
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(down, down, okResp)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, retryConfig()).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ZeroAttemptsStillCalls(t *testing.T) {
	mock := NewMockProvider(okResp)
	if _, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestBackoff(t *testing.T) {
	r := retrier{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}

	for attempt, base := range []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond} {
		got := r.backoff(attempt, errors.New("x"))
		lo, hi := base*8/10, base*12/10
		if got < lo || got > hi {
			t.Errorf("attempt %d: backoff %s outside [%s, %s]", attempt, got, lo, hi)
		}
	}
	if got := r.backoff(10, errors.New("x")); got > 1200*time.Millisecond {
		t.Errorf("backoff %s exceeds jittered cap", got)
	}

	rl := &ErrRateLimit{RetryAfter: 300 * time.Millisecond}
	if got := r.backoff(0, rl); got != 300*time.Millisecond {
		t.Errorf("rate limit backoff = %s, want 300ms", got)
	}
	rl.RetryAfter = time.Minute
	if got := r.backoff(0, rl); got != time.Second {
		t.Errorf("long RetryAfter backoff = %s, want capped 1s", got)
	}
}

func TestDecoratorsForwardIdentity(t *testing.T) {
	p := WithRetry(WithLogging(NewMockProvider(), nil), retryConfig())
	if p.ModelID() != "mock" {
		t.Errorf("model = %q, want mock", p.ModelID())
	}
	if got := vendorOf(p); got != "mock" {
		t.Errorf("vendor = %q, want mock", got)
	}

	sp := WithSpeechRetry(WithSpeechLogging(NewMockSpeechProvider(), nil), retryConfig())
	if got := vendorOf(sp); got != "mock" {
		t.Errorf("speech vendor = %q, want mock", got)
	}
	if got := vendorOf(struct{}{}); got != "unknown" {
		t.Errorf("vendor of a bare value = %q, want unknown", got)
	}
}

func TestPurposeFrom(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != PurposeUnlabeled {
		t.Errorf("unset purpose = %q", got)
	}
	ctx := WithPurpose(context.Background(), PurposeSpeech)
	if got := PurposeFrom(ctx); got != PurposeSpeech {
		t.Errorf("purpose = %q, want %q", got, PurposeSpeech)
	}
}
