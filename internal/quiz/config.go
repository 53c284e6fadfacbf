package quiz

// Config holds mission defaults.
type Config struct {
	// Count is the number of problems requested per mission.
	Count int

	// Difficulty is used when the player does not pick one.
	Difficulty Difficulty
}

// DefaultConfig returns the standard five Easy problems per mission.
func DefaultConfig() Config {
	return Config{
		Count:      5,
		Difficulty: Easy,
	}
}
