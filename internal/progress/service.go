package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/store"
)

// KeepSnapshots is how many progress snapshots survive a prune.
const KeepSnapshots = 20

// Service keeps the player's stats and persists them as snapshots after
// every recorded mission.
type Service struct {
	snaps  store.SnapshotRepo
	events store.EventRepo
	now    func() time.Time

	mu    sync.Mutex
	stats Stats
}

// NewService loads the latest snapshot. Either repo may be nil, in which
// case progress lives in memory only.
func NewService(ctx context.Context, snaps store.SnapshotRepo, events store.EventRepo) (*Service, error) {
	s := &Service{snaps: snaps, events: events, now: time.Now, stats: New()}
	if snaps == nil {
		return s, nil
	}
	snap, err := snaps.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if snap != nil {
		s.stats = FromData(snap.Data.Progress)
	}
	return s, nil
}

// Stats returns a copy of the current stats.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.clone()
}

// Record applies a mission result, saves a snapshot and returns the badges
// it earned. The in-memory stats are updated even if saving fails.
func (s *Service) Record(ctx context.Context, r quiz.Result) ([]Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, earned := Apply(s.stats, r, s.now().UTC())
	if next.Missions == s.stats.Missions {
		return nil, nil
	}
	s.stats = next
	return earned, s.save(ctx)
}

func (s *Service) save(ctx context.Context) error {
	if s.snaps == nil {
		return nil
	}
	var seq int64
	if s.events != nil {
		n, err := s.events.LastSequence(ctx)
		if err != nil {
			return fmt.Errorf("read sequence: %w", err)
		}
		seq = n
	}
	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: s.now(),
		Data: store.SnapshotData{
			Version:  store.SnapshotVersion,
			Progress: s.stats.Data(),
		},
	}
	if err := s.snaps.Save(ctx, snap); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if err := s.snaps.Prune(ctx, KeepSnapshots); err != nil {
		return fmt.Errorf("prune progress: %w", err)
	}
	return nil
}
