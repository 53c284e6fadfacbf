package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/store"
)

// Journal writes mission lifecycle events and folds finished missions into
// progress. Write failures are logged and never reach the player. A nil
// Journal records nothing.
type Journal struct {
	events   store.MissionRepo
	progress *Service
}

// NewJournal creates a journal. Either argument may be nil.
func NewJournal(events store.MissionRepo, progress *Service) *Journal {
	return &Journal{events: events, progress: progress}
}

// Start records a mission that loaded its problems.
func (j *Journal) Start(ctx context.Context, s *quiz.Session) {
	if j == nil || j.events == nil {
		return
	}
	j.appendMission(ctx, s, store.MissionStart, 0)
}

// Answer records a submitted answer.
func (j *Journal) Answer(ctx context.Context, s *quiz.Session, p quiz.Problem, fb quiz.Feedback, elapsed time.Duration) {
	if j == nil || j.events == nil {
		return
	}
	err := j.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     s.ID(),
		ProblemID:     p.ID,
		Category:      string(s.Category()),
		Difficulty:    string(s.Difficulty()),
		Question:      p.Question,
		CorrectAnswer: p.CorrectAnswer,
		GivenAnswer:   fb.Answer,
		Correct:       fb.Correct,
		Points:        fb.Points,
		TimeMs:        elapsed.Milliseconds(),
	})
	if err != nil {
		slog.Warn("record answer event", "session", s.ID(), "error", err)
	}
}

// Finish records a finished mission and returns the badges it earned.
func (j *Journal) Finish(ctx context.Context, s *quiz.Session, elapsed time.Duration) []Badge {
	if j == nil {
		return nil
	}
	if j.events != nil {
		j.appendMission(ctx, s, store.MissionEnd, elapsed)
	}
	if j.progress == nil {
		return nil
	}
	earned, err := j.progress.Record(ctx, s.Result())
	if err != nil {
		slog.Warn("record progress", "session", s.ID(), "error", err)
	}
	return earned
}

// Abandon records a mission left before the last problem.
func (j *Journal) Abandon(ctx context.Context, s *quiz.Session, elapsed time.Duration) {
	if j == nil || j.events == nil {
		return
	}
	j.appendMission(ctx, s, store.MissionAbandon, elapsed)
}

func (j *Journal) appendMission(ctx context.Context, s *quiz.Session, action string, elapsed time.Duration) {
	r := s.Result()
	err := j.events.AppendMissionEvent(ctx, store.MissionEventData{
		SessionID:    s.ID(),
		Action:       action,
		Category:     string(s.Category()),
		Difficulty:   string(s.Difficulty()),
		ProblemCount: s.Len(),
		Answered:     r.Answered,
		Correct:      r.Correct,
		Score:        r.Score,
		DurationSecs: int(elapsed.Seconds()),
	})
	if err != nil {
		slog.Warn("record mission event", "session", s.ID(), "action", action, "error", err)
	}
}
