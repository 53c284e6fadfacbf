package tutor

// Config holds tuning parameters for Professor Robot.
type Config struct {
	// MaxTokens caps the explanation length.
	MaxTokens int

	// Temperature for generation.
	Temperature float64

	// Language the explanation is written in.
	Language string

	// SpeechStyle is the delivery passed to the speech provider.
	SpeechStyle string
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.7,
		Language:    "English",
		SpeechStyle: "cheerfully",
	}
}
