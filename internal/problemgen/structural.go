package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathspace/internal/quiz"
)

// Limits enforced by StructuralValidator.
const (
	maxQuestionLen    = 500
	maxExplanationLen = 1000
	maxHintLen        = 300
	minOptions        = 2
	maxOptions        = 6
)

// StructuralValidator checks lengths and the shape of the option list.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p quiz.RawProblem, _ GenerateInput) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if p.Question != nil && len(*p.Question) > maxQuestionLen {
		return fail("question exceeds %d characters", maxQuestionLen)
	}
	if p.Explanation != nil && len(*p.Explanation) > maxExplanationLen {
		return fail("explanation exceeds %d characters", maxExplanationLen)
	}
	if p.Hint != nil && len(*p.Hint) > maxHintLen {
		return fail("hint exceeds %d characters", maxHintLen)
	}

	if p.Options == nil {
		return nil
	}
	if n := len(p.Options); n < minOptions || n > maxOptions {
		return fail("has %d options, want %d to %d", n, minOptions, maxOptions)
	}
	for i, o := range p.Options {
		if strings.TrimSpace(o) == "" {
			return fail("option %d is blank", i+1)
		}
	}
	return nil
}
