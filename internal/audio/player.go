package audio

import (
	"context"
	"sync"
)

// Player plays a buffer once. Play should return as soon as playback has
// been scheduled; overlapping calls may overlap in the output.
type Player interface {
	Play(ctx context.Context, buf *Buffer) error
}

// NopPlayer discards every buffer. Used when audio output is disabled.
type NopPlayer struct{}

func (NopPlayer) Play(context.Context, *Buffer) error { return nil }

// RecordingPlayer keeps every buffer it is given. Safe for concurrent use.
type RecordingPlayer struct {
	mu      sync.Mutex
	Buffers []*Buffer
	Err     error
}

func (r *RecordingPlayer) Play(_ context.Context, buf *Buffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Buffers = append(r.Buffers, buf)
	return nil
}

// Count returns the number of buffers played.
func (r *RecordingPlayer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Buffers)
}
