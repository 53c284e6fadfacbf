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

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestService_RecordPersists(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	svc, err := NewService(ctx, st.SnapshotRepo(), st.EventRepo())
	require.NoError(t, err)
	assert.Zero(t, svc.Stats().Missions)

	earned, err := svc.Record(ctx, result(quiz.Addition, 5, 5))
	require.NoError(t, err)
	assert.Equal(t, []BadgeID{BadgeFirstMission, PerfectBadge(quiz.Addition)}, badgeIDs(earned))

	reloaded, err := NewService(ctx, st.SnapshotRepo(), st.EventRepo())
	require.NoError(t, err)
	got := reloaded.Stats()
	assert.Equal(t, 50, got.Points)
	assert.Equal(t, 1, got.Missions)
	assert.True(t, got.Has(PerfectBadge(quiz.Addition)))
}

func TestService_SnapshotSequence(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	require.NoError(t, st.EventRepo().AppendAskEvent(ctx, store.AskEventData{Question: "q", Answer: "a"}))

	svc, err := NewService(ctx, st.SnapshotRepo(), st.EventRepo())
	require.NoError(t, err)
	_, err = svc.Record(ctx, result(quiz.Logic, 1, 5))
	require.NoError(t, err)

	snap, err := st.SnapshotRepo().Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(1), snap.Sequence)
	assert.Equal(t, store.SnapshotVersion, snap.Data.Version)
	require.NotNil(t, snap.Data.Progress)
	assert.Equal(t, 10, snap.Data.Progress.Points)
}

func TestService_IgnoresEmptyMission(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	svc, err := NewService(ctx, st.SnapshotRepo(), st.EventRepo())
	require.NoError(t, err)
	earned, err := svc.Record(ctx, quiz.Result{Category: quiz.Addition, Total: 5})
	require.NoError(t, err)
	assert.Empty(t, earned)

	snap, err := st.SnapshotRepo().Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestService_InMemory(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(ctx, nil, nil)
	require.NoError(t, err)
	svc.now = func() time.Time { return t0 }

	_, err = svc.Record(ctx, result(quiz.Subtraction, 4, 5))
	require.NoError(t, err)
	s := svc.Stats()
	assert.Equal(t, 40, s.Points)
	assert.True(t, s.Badges[BadgeFirstMission].Equal(t0))
}
