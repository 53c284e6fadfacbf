package problemgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abhisek/mathspace/internal/llm"
	"github.com/abhisek/mathspace/internal/quiz"
)

// GenerateInput holds all context needed to generate a batch.
type GenerateInput struct {
	Category   quiz.Category
	Difficulty quiz.Difficulty
	Count      int

	// PriorQuestions are questions already asked in this category, oldest
	// first. Used for deduplication in the prompt.
	PriorQuestions []string
}

// LLMSource implements quiz.Source using an LLM provider.
type LLMSource struct {
	provider llm.Provider
	config   Config

	mu    sync.Mutex
	prior map[quiz.Category][]string
}

// New creates a new LLMSource with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMSource {
	return &LLMSource{
		provider: provider,
		config:   cfg,
		prior:    make(map[quiz.Category][]string),
	}
}

// Problems asks the provider for count problems. Provider failures are
// reported as quiz.ErrSourceUnavailable and undecodable output as
// quiz.ErrMalformedResponse. Entries failing a configured validator are
// dropped; the rest go to quiz validation untouched.
func (s *LLMSource) Problems(ctx context.Context, category quiz.Category, difficulty quiz.Difficulty, count int) ([]quiz.RawProblem, error) {
	if s == nil || s.provider == nil {
		return nil, fmt.Errorf("%w: no LLM provider configured", quiz.ErrSourceUnavailable)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeProblemGen)

	input := GenerateInput{
		Category:       category,
		Difficulty:     difficulty,
		Count:          count,
		PriorQuestions: s.priorQuestions(category),
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, s.config)},
		},
		Schema:      BatchSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, classifyProviderError(err)
	}

	raw, err := parseBatch(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quiz.ErrMalformedResponse, err)
	}

	kept := make([]quiz.RawProblem, 0, len(raw))
	for i, p := range raw {
		if verr := s.check(p, input); verr != nil {
			slog.Warn("generated problem dropped",
				"category", category, "index", i, "validator", verr.Validator, "reason", verr.Message)
			continue
		}
		kept = append(kept, p)
	}
	if len(raw) > 0 && len(kept) == 0 {
		return nil, fmt.Errorf("%w: every generated problem failed checks", quiz.ErrMalformedResponse)
	}

	s.remember(category, kept)
	return kept, nil
}

// check runs the validators in order; the first failure wins.
func (s *LLMSource) check(p quiz.RawProblem, input GenerateInput) *ValidationError {
	for _, v := range s.config.Validators {
		if verr := v.Validate(p, input); verr != nil {
			return verr
		}
	}
	return nil
}

func (s *LLMSource) priorQuestions(category quiz.Category) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prior[category]...)
}

func (s *LLMSource) remember(category quiz.Category, problems []quiz.RawProblem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs := s.prior[category]
	for _, p := range problems {
		if p.Question != nil && *p.Question != "" {
			qs = append(qs, *p.Question)
		}
	}
	if max := s.config.MaxPriorQuestions; max > 0 && len(qs) > max {
		qs = qs[len(qs)-max:]
	}
	s.prior[category] = qs
}

// classifyProviderError maps provider errors onto the quiz taxonomy.
// Output that arrived but could not be used counts as malformed.
func classifyProviderError(err error) error {
	if llm.Unusable(err) {
		return fmt.Errorf("%w: %w", quiz.ErrMalformedResponse, err)
	}
	return fmt.Errorf("%w: %w", quiz.ErrSourceUnavailable, err)
}

// parseBatch decodes either {"problems": [...]} or a bare array. An entry
// that does not decode becomes an empty RawProblem, which quiz validation
// rejects on its own without failing the batch.
func parseBatch(content json.RawMessage) ([]quiz.RawProblem, error) {
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return nil, errors.New("empty response")
	}

	var items []json.RawMessage
	if content[0] == '[' {
		if err := json.Unmarshal(content, &items); err != nil {
			return nil, fmt.Errorf("decode problem array: %w", err)
		}
	} else {
		var envelope struct {
			Problems *[]json.RawMessage `json:"problems"`
		}
		if err := json.Unmarshal(content, &envelope); err != nil {
			return nil, fmt.Errorf("decode problem batch: %w", err)
		}
		if envelope.Problems == nil {
			return nil, errors.New(`response has no "problems" array`)
		}
		items = *envelope.Problems
	}

	raw := make([]quiz.RawProblem, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &raw[i]); err != nil {
			slog.Warn("undecodable problem entry", "index", i, "error", err)
			raw[i] = quiz.RawProblem{}
		}
	}
	return raw, nil
}
