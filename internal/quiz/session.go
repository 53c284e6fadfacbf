package quiz

import (
	"context"

	"github.com/google/uuid"
)

// Source produces raw problem entries for a category and difficulty.
// Implementations should return errors wrapping ErrSourceUnavailable or
// ErrMalformedResponse where they can tell the two apart.
type Source interface {
	Problems(ctx context.Context, category Category, difficulty Difficulty, count int) ([]RawProblem, error)
}

// Status is the lifecycle phase of a Session.
type Status int

const (
	StatusLoading  Status = iota // Waiting for the problem batch
	StatusPlaying                // Problems loaded, mission in progress
	StatusEmpty                  // Load finished without a usable problem
	StatusFinished               // Advanced past the last problem
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusPlaying:
		return "playing"
	case StatusEmpty:
		return "empty"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Request identifies one problem load for one session.
type Request struct {
	SessionID  string
	Category   Category
	Difficulty Difficulty
	Count      int
}

// Batch is the outcome of a Request. It carries the session identity so a
// result arriving after the player moved on can be recognized and dropped.
type Batch struct {
	SessionID string
	Problems  []Problem
	Rejected  []Rejection
	Err       error
}

// Fetch runs req against src and validates the entries. It does not touch
// any session and may be called from any goroutine.
func Fetch(ctx context.Context, src Source, req Request) Batch {
	b := Batch{SessionID: req.SessionID}
	if src == nil {
		b.Err = ErrSourceUnavailable
		return b
	}

	raw, err := src.Problems(ctx, req.Category, req.Difficulty, req.Count)
	if err != nil {
		b.Err = classifySourceError(err)
		return b
	}

	b.Problems, b.Rejected = ValidateBatch(raw)
	if req.Count > 0 && len(b.Problems) > req.Count {
		b.Problems = b.Problems[:req.Count]
	}

	switch {
	case len(b.Problems) > 0:
	case len(b.Rejected) > 0:
		b.Err = ErrMalformedResponse
	default:
		b.Err = ErrNoProblems
	}
	return b
}

// Session is the state of one play-through of a mission. It is owned by a
// single consumer and is not safe for concurrent use.
type Session struct {
	id         string
	category   Category
	difficulty Difficulty
	status     Status
	err        error

	problems []Problem
	rejected []Rejection

	index     int
	selected  string
	answered  bool
	corrected bool
	feedback  Feedback
	score     int
	correct   int
}

// NewSession returns a session waiting for its problem batch.
func NewSession(category Category, difficulty Difficulty) *Session {
	return &Session{
		id:         uuid.NewString(),
		category:   category,
		difficulty: difficulty,
		status:     StatusLoading,
	}
}

// Load creates a session and fills it synchronously from src.
func Load(ctx context.Context, src Source, category Category, difficulty Difficulty, count int) *Session {
	s := NewSession(category, difficulty)
	s.Receive(Fetch(ctx, src, s.Request(count)))
	return s
}

// Request returns the load request for this session.
func (s *Session) Request(count int) Request {
	return Request{
		SessionID:  s.id,
		Category:   s.category,
		Difficulty: s.difficulty,
		Count:      count,
	}
}

// Receive applies a batch. It returns false, leaving the session untouched,
// when the batch belongs to another session or the session already loaded.
func (s *Session) Receive(b Batch) bool {
	if b.SessionID != s.id || s.status != StatusLoading {
		return false
	}

	s.rejected = b.Rejected
	if b.Err != nil || len(b.Problems) == 0 {
		s.status = StatusEmpty
		s.err = b.Err
		if s.err == nil {
			s.err = ErrNoProblems
		}
		return true
	}

	s.problems = b.Problems
	s.index = 0
	s.score = 0
	s.correct = 0
	s.status = StatusPlaying
	return true
}

// SubmitAnswer records the answer for the current problem. Only the first
// answer per problem counts; later calls are ignored and return false.
func (s *Session) SubmitAnswer(answer string) (Feedback, bool) {
	if s.status != StatusPlaying || s.corrected {
		return Feedback{}, false
	}

	p := s.problems[s.index]
	s.selected = answer
	s.answered = true
	s.corrected = true

	fb := Feedback{
		Answer:        answer,
		CorrectAnswer: p.CorrectAnswer,
		Explanation:   p.Explanation,
	}
	if p.IsCorrect(answer) {
		fb.Correct = true
		fb.Points = PointsPerCorrect
		s.score += PointsPerCorrect
		s.correct++
	}
	s.feedback = fb
	return fb, true
}

// Advance moves past a corrected problem. On the last problem the session
// finishes and the index stays put. Returns false if nothing changed.
func (s *Session) Advance() bool {
	if s.status != StatusPlaying || !s.corrected {
		return false
	}

	if s.index == len(s.problems)-1 {
		s.status = StatusFinished
		return true
	}

	s.index++
	s.selected = ""
	s.answered = false
	s.corrected = false
	s.feedback = Feedback{}
	return true
}

// Restart returns a fresh loading session for the same mission. The old
// session's identity no longer matches, so its pending batch is discarded.
func (s *Session) Restart() *Session {
	return NewSession(s.category, s.difficulty)
}

func (s *Session) ID() string             { return s.id }
func (s *Session) Category() Category     { return s.category }
func (s *Session) Difficulty() Difficulty { return s.difficulty }
func (s *Session) Status() Status         { return s.status }
func (s *Session) Score() int             { return s.score }
func (s *Session) Correct() int           { return s.correct }
func (s *Session) Index() int             { return s.index }
func (s *Session) Len() int               { return len(s.problems) }
func (s *Session) Corrected() bool        { return s.corrected }
func (s *Session) Finished() bool         { return s.status == StatusFinished }

// Err is the reason the session is empty, or nil.
func (s *Session) Err() error { return s.err }

// Rejected lists the entries dropped from the loaded batch.
func (s *Session) Rejected() []Rejection { return s.rejected }

// Current returns the problem on display. The second result is false when
// no problem is available (loading or empty).
func (s *Session) Current() (Problem, bool) {
	if s.status != StatusPlaying && s.status != StatusFinished {
		return Problem{}, false
	}
	return s.problems[s.index], true
}

// Selected returns the submitted answer for the current problem, if any.
func (s *Session) Selected() (string, bool) {
	return s.selected, s.answered
}

// Feedback returns the outcome of the current problem's answer, if any.
func (s *Session) Feedback() (Feedback, bool) {
	return s.feedback, s.corrected
}

// Result summarizes the session so far.
func (s *Session) Result() Result {
	answered := s.index
	if s.corrected {
		answered++
	}
	return Result{
		SessionID:  s.id,
		Category:   s.category,
		Difficulty: s.difficulty,
		Score:      s.score,
		Correct:    s.correct,
		Answered:   answered,
		Total:      len(s.problems),
	}
}

// State is a read-only copy of a session for rendering or encoding.
type State struct {
	SessionID      string     `json:"sessionId"`
	Category       Category   `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	Status         string     `json:"status"`
	Error          string     `json:"error,omitempty"`
	ProblemCount   int        `json:"problemCount"`
	CurrentIndex   int        `json:"currentIndex"`
	Current        *Problem   `json:"current,omitempty"`
	SelectedAnswer *string    `json:"selectedAnswer"`
	Corrected      bool       `json:"corrected"`
	Feedback       *Feedback  `json:"feedback,omitempty"`
	Score          int        `json:"score"`
	Correct        int        `json:"correct"`
	Finished       bool       `json:"finished"`
}

// Snapshot copies the session into a State.
func (s *Session) Snapshot() State {
	st := State{
		SessionID:    s.id,
		Category:     s.category,
		Difficulty:   s.difficulty,
		Status:       s.status.String(),
		ProblemCount: len(s.problems),
		CurrentIndex: s.index,
		Corrected:    s.corrected,
		Score:        s.score,
		Correct:      s.correct,
		Finished:     s.Finished(),
	}
	if s.err != nil {
		st.Error = s.err.Error()
	}
	if p, ok := s.Current(); ok {
		p.Options = append([]string(nil), p.Options...)
		st.Current = &p
	}
	if s.answered {
		sel := s.selected
		st.SelectedAnswer = &sel
	}
	if s.corrected {
		fb := s.feedback
		st.Feedback = &fb
	}
	return st
}
