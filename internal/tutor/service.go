package tutor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/mathspace/internal/audio"
	"github.com/abhisek/mathspace/internal/llm"
	"github.com/abhisek/mathspace/internal/store"
)

var (
	// ErrEmptyQuestion is returned for a blank question. Nothing is sent.
	ErrEmptyQuestion = errors.New("empty question")

	// ErrBusy is returned while another question is being answered.
	ErrBusy = errors.New("professor robot is still answering")
)

// Answer is Professor Robot's reply to one question.
type Answer struct {
	Question string
	Text     string

	// Fallback is set when Text is a canned message rather than an
	// explanation from the provider.
	Fallback bool

	Latency time.Duration
}

// Service answers free-text questions. At most one question is in flight;
// provider failures never surface as errors, only as fallback text.
type Service struct {
	provider llm.Provider
	speech   llm.SpeechProvider
	asks     store.AskRepo
	cfg      Config

	mu   sync.Mutex
	busy bool
}

// NewService creates a tutor. speech and asks may be nil.
func NewService(provider llm.Provider, speech llm.SpeechProvider, asks store.AskRepo, cfg Config) *Service {
	return &Service{provider: provider, speech: speech, asks: asks, cfg: cfg}
}

// Explain asks the provider to explain question. The only errors are
// ErrEmptyQuestion and ErrBusy.
func (s *Service) Explain(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, ErrEmptyQuestion
	}
	if !s.acquire() {
		return Answer{}, ErrBusy
	}
	defer s.release()

	start := time.Now()
	ans := Answer{Question: question}
	text, err := s.generate(ctx, question)
	switch {
	case err != nil:
		slog.Warn("explanation failed", "error", err)
		ans.Text, ans.Fallback = FallbackUnavailable, true
	case text == "":
		ans.Text, ans.Fallback = FallbackEmpty, true
	default:
		ans.Text = text
	}
	ans.Latency = time.Since(start)

	s.record(ctx, ans)
	return ans, nil
}

// Busy reports whether a question is being answered.
func (s *Service) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// SpeechEnabled reports whether Speak can produce audio.
func (s *Service) SpeechEnabled() bool {
	return s != nil && s.speech != nil
}

// Speak synthesizes text and returns the base64 PCM16 payload. An empty
// result means no audio; failures are logged, not returned.
func (s *Service) Speak(ctx context.Context, text string) string {
	if s.speech == nil || strings.TrimSpace(text) == "" {
		return ""
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeSpeech)
	resp, err := s.speech.Synthesize(ctx, llm.SpeechRequest{Text: text, Style: s.cfg.SpeechStyle})
	if err != nil {
		slog.Warn("speech synthesis failed", "error", err)
		return ""
	}
	return resp.Audio
}

// Say speaks text through p and reports whether playback started.
func (s *Service) Say(ctx context.Context, text string, p *audio.Pipeline) bool {
	if !s.SpeechEnabled() || p == nil {
		return false
	}
	return p.Speak(ctx, s.Speak(ctx, text))
}

func (s *Service) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Service) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Service) generate(ctx context.Context, question string) (string, error) {
	if s.provider == nil {
		return "", &llm.ErrProviderUnavailable{Err: errors.New("no provider configured")}
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExplanation)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt(s.cfg.Language),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: question},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Content)), nil
}

func (s *Service) record(ctx context.Context, ans Answer) {
	if s.asks == nil {
		return
	}
	err := s.asks.AppendAskEvent(ctx, store.AskEventData{
		Question:  ans.Question,
		Answer:    ans.Text,
		Fallback:  ans.Fallback,
		LatencyMs: ans.Latency.Milliseconds(),
	})
	if err != nil {
		slog.Warn("record ask event", "error", err)
	}
}
