package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var missionEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "action", "category",
	"difficulty", "problem_count", "answered", "correct", "score", "duration_secs",
}

func (r *eventRepo) AppendMissionEvent(ctx context.Context, data MissionEventData) error {
	switch data.Action {
	case MissionStart, MissionEnd, MissionAbandon:
	default:
		return fmt.Errorf("invalid mission action %q", data.Action)
	}
	err := r.insert(ctx, missionEventsTable, missionEventColumns[3:],
		data.SessionID,
		data.Action,
		data.Category,
		data.Difficulty,
		data.ProblemCount,
		data.Answered,
		data.Correct,
		data.Score,
		data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save mission event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryMissions(ctx context.Context, opts QueryOpts) ([]MissionRecord, error) {
	b := builder()
	sel := b.Select(missionEventColumns...).
		From(b.Table(missionEventsTable)).
		Where(entsql.EQ("action", MissionEnd))
	query, args := opts.apply(sel).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query missions: %w", err)
	}
	defer rows.Close()

	var missions []MissionRecord
	for rows.Next() {
		var m MissionRecord
		err := rows.Scan(
			&m.ID, &m.Sequence, &m.Timestamp, &m.SessionID, &m.Action, &m.Category,
			&m.Difficulty, &m.ProblemCount, &m.Answered, &m.Correct, &m.Score, &m.DurationSecs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan mission: %w", err)
		}
		missions = append(missions, m)
	}
	return missions, rows.Err()
}

var answerEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "problem_id", "category",
	"difficulty", "question", "correct_answer", "given_answer", "correct",
	"points", "time_ms",
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, answerEventsTable, answerEventColumns[3:],
		data.SessionID,
		data.ProblemID,
		data.Category,
		data.Difficulty,
		data.Question,
		data.CorrectAnswer,
		data.GivenAnswer,
		data.Correct,
		data.Points,
		data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	b := builder()
	query, args := b.Select(answerEventColumns...).
		From(b.Table(answerEventsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var answers []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		err := rows.Scan(
			&a.ID, &a.Sequence, &a.Timestamp, &a.SessionID, &a.ProblemID, &a.Category,
			&a.Difficulty, &a.Question, &a.CorrectAnswer, &a.GivenAnswer, &a.Correct,
			&a.Points, &a.TimeMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (r *eventRepo) CategoryStats(ctx context.Context) ([]CategoryStats, error) {
	b := builder()
	query, args := b.Select(
		"category",
		entsql.As(entsql.Count("*"), "answered"),
		entsql.As(entsql.Sum("correct"), "correct_count"),
		entsql.As(entsql.Sum("points"), "total_points"),
	).
		From(b.Table(answerEventsTable)).
		GroupBy("category").
		OrderBy("category").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category stats: %w", err)
	}
	defer rows.Close()

	var stats []CategoryStats
	for rows.Next() {
		var s CategoryStats
		if err := rows.Scan(&s.Category, &s.Answered, &s.Correct, &s.Points); err != nil {
			return nil, fmt.Errorf("scan category stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
