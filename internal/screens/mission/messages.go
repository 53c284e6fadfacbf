package mission

import "github.com/abhisek/mathspace/internal/quiz"

// batchMsg carries a finished problem load back to the screen. Batches
// from an earlier session are ignored by quiz.Session.Receive.
type batchMsg struct {
	batch quiz.Batch
}

// spokenMsg reports that a speech request finished.
type spokenMsg struct {
	played bool
}
