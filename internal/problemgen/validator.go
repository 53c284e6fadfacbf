package problemgen

import (
	"fmt"

	"github.com/abhisek/mathspace/internal/quiz"
)

// Validator checks a generated entry before it reaches quiz validation.
// Implementations should be stateless and safe for concurrent use. Missing
// fields are left to quiz validation, so validators skip what is absent.
type Validator interface {
	// Name returns a short identifier for this validator, e.g.
	// "structural" or "math-check".
	Name() string

	// Validate returns nil if the entry passes.
	Validate(p quiz.RawProblem, input GenerateInput) *ValidationError
}

// ValidationError describes why an entry failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
