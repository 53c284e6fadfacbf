package problemgen

// Config controls the behavior of the LLMSource.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated entry. They execute in order; the first failure drops
	// the entry.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Language is the language problems are written in.
	Language string

	// MaxPriorQuestions is the maximum number of prior questions per
	// category to include in the prompt for deduplication.
	MaxPriorQuestions int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&MathCheckValidator{},
		},
		MaxTokens:         2048,
		Temperature:       0.7,
		Language:          "English",
		MaxPriorQuestions: 10,
	}
}
