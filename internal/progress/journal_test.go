package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/store"
)

type staticSource []quiz.RawProblem

func (s staticSource) Problems(context.Context, quiz.Category, quiz.Difficulty, int) ([]quiz.RawProblem, error) {
	return s, nil
}

func strp(s string) *string { return &s }

func twoProblems() staticSource {
	return staticSource{
		{ID: strp("p1"), Question: strp("2 + 2 = ?"), Options: []string{"3", "4"}, CorrectAnswer: strp("4"), Explanation: strp("2 + 2 = 4"), Hint: strp("Double 2")},
		{ID: strp("p2"), Question: strp("5 - 1 = ?"), Options: []string{"4", "6"}, CorrectAnswer: strp("4"), Explanation: strp("5 - 1 = 4"), Hint: strp("Count down")},
	}
}

func play(t *testing.T, j *Journal, answers ...string) *quiz.Session {
	t.Helper()
	ctx := context.Background()
	s := quiz.Load(ctx, twoProblems(), quiz.Addition, quiz.Easy, 2)
	require.Equal(t, quiz.StatusPlaying, s.Status())
	j.Start(ctx, s)

	for _, a := range answers {
		p, _ := s.Current()
		fb, ok := s.SubmitAnswer(a)
		require.True(t, ok)
		j.Answer(ctx, s, p, fb, 1500*time.Millisecond)
		s.Advance()
	}
	return s
}

func TestJournal_FinishedMission(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	svc, err := NewService(ctx, st.SnapshotRepo(), st.EventRepo())
	require.NoError(t, err)
	j := NewJournal(st.EventRepo(), svc)

	s := play(t, j, "4", "6")
	require.True(t, s.Finished())
	earned := j.Finish(ctx, s, 42*time.Second)
	assert.Equal(t, []BadgeID{BadgeFirstMission}, badgeIDs(earned))

	missions, err := st.EventRepo().QueryMissions(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, missions, 1)
	m := missions[0]
	assert.Equal(t, s.ID(), m.SessionID)
	assert.Equal(t, 2, m.Answered)
	assert.Equal(t, 1, m.Correct)
	assert.Equal(t, 10, m.Score)
	assert.Equal(t, 42, m.DurationSecs)

	answers, err := st.EventRepo().QueryAnswers(ctx, s.ID())
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.True(t, answers[0].Correct)
	assert.Equal(t, "6", answers[1].GivenAnswer)
	assert.Equal(t, int64(1500), answers[1].TimeMs)

	assert.Equal(t, 10, svc.Stats().Points)
}

func TestJournal_AbandonIsNotFinished(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	j := NewJournal(st.EventRepo(), nil)

	s := play(t, j, "4")
	j.Abandon(ctx, s, time.Second)

	missions, err := st.EventRepo().QueryMissions(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, missions, "only finished missions are listed")
}

func TestJournal_Nil(t *testing.T) {
	var j *Journal
	s := play(t, j, "4", "4")
	assert.Nil(t, j.Finish(context.Background(), s, time.Second))
	j.Abandon(context.Background(), s, time.Second)
}
