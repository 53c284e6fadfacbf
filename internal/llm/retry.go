package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retrier runs a call with exponential backoff and jitter.
type retrier struct {
	config RetryConfig
}

// do calls fn until it succeeds, fails permanently or attempts run out.
func (r retrier) do(ctx context.Context, fn func() error) error {
	var lastErr error
	invalidRetried := false

	attempts := max(r.config.MaxAttempts, 1)
	for attempt := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.retryable(err, &invalidRetried) {
			return err
		}

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}

	return lastErr
}

// RetryProvider retries transient Generate failures.
type RetryProvider struct {
	inner Provider
	retrier
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, retrier: retrier{config: cfg}}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var resp *Response
	err := r.do(ctx, func() error {
		var err error
		resp, err = r.inner.Generate(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func (r *RetryProvider) Vendor() string { return vendorOf(r.inner) }

// RetrySpeechProvider retries transient Synthesize failures.
type RetrySpeechProvider struct {
	inner SpeechProvider
	retrier
}

// WithSpeechRetry wraps a SpeechProvider with retry logic.
func WithSpeechRetry(p SpeechProvider, cfg RetryConfig) SpeechProvider {
	return &RetrySpeechProvider{inner: p, retrier: retrier{config: cfg}}
}

func (r *RetrySpeechProvider) Synthesize(ctx context.Context, req SpeechRequest) (*SpeechResponse, error) {
	var resp *SpeechResponse
	err := r.do(ctx, func() error {
		var err error
		resp, err = r.inner.Synthesize(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *RetrySpeechProvider) ModelID() string {
	return r.inner.ModelID()
}

func (r *RetrySpeechProvider) Vendor() string { return vendorOf(r.inner) }

// retryable reports whether err is worth another attempt. Cancellation
// and truncation are final; a response that failed validation gets one
// more try; everything else is treated as transient.
func (r retrier) retryable(err error, invalidRetried *bool) bool {
	var (
		truncated *ErrMaxTokensExceeded
		invalid   *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.As(err, &truncated):
		return false
	case errors.As(err, &invalid):
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
	}
	return true
}

// backoff is exponential with +/-20% jitter, capped at MaxWait. A rate
// limit's RetryAfter replaces the computed wait but is capped the same way.
func (r retrier) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		if r.config.MaxWait > 0 && rl.RetryAfter > r.config.MaxWait {
			return r.config.MaxWait
		}
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if r.config.MaxWait > 0 {
		wait = math.Min(wait, float64(r.config.MaxWait))
	}
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
