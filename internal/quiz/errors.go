package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable means the problem source could not be reached or
	// failed to answer.
	ErrSourceUnavailable = errors.New("problem source unavailable")

	// ErrMalformedResponse means the source answered but nothing usable could
	// be decoded from it.
	ErrMalformedResponse = errors.New("malformed problem response")

	// ErrNoProblems means the source answered with an empty batch.
	ErrNoProblems = errors.New("no problems available")
)

// classifySourceError maps an arbitrary source error onto the taxonomy.
// Errors already tagged as malformed or unavailable are kept.
func classifySourceError(err error) error {
	if errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrSourceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}

// Rejection records why a raw entry was dropped during validation.
type Rejection struct {
	Index  int
	ID     string
	Reason string
}

func (r Rejection) Error() string {
	if r.ID != "" {
		return fmt.Sprintf("problem %d (%s): %s", r.Index, r.ID, r.Reason)
	}
	return fmt.Sprintf("problem %d: %s", r.Index, r.Reason)
}
