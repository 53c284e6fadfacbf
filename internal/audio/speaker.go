package audio

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// SpeakerPlayer plays buffers on the default output device. The device is
// opened lazily on first use and only once per process, so every buffer
// must match the format given to NewSpeakerPlayer.
type SpeakerPlayer struct {
	format Format

	once   sync.Once
	device *oto.Context
	err    error
}

// NewSpeakerPlayer returns a player for the given format.
func NewSpeakerPlayer(format Format) *SpeakerPlayer {
	return &SpeakerPlayer{format: format}
}

func (p *SpeakerPlayer) open() error {
	p.once.Do(func() {
		if err := p.format.validate(); err != nil {
			p.err = err
			return
		}
		c, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   p.format.SampleRate,
			ChannelCount: p.format.Channels,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			p.err = fmt.Errorf("open audio device: %w", err)
			return
		}
		<-ready
		p.device = c
	})
	return p.err
}

// Play starts playback and returns immediately. The player is released
// when the buffer has been drained.
func (p *SpeakerPlayer) Play(ctx context.Context, buf *Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if buf.Format() != p.format {
		return fmt.Errorf("%w: speaker is %d Hz/%d ch, buffer is %d Hz/%d ch",
			ErrInvalidFormat, p.format.SampleRate, p.format.Channels, buf.SampleRate, buf.Channels())
	}
	if buf.Frames == 0 {
		return nil
	}
	if err := p.open(); err != nil {
		return err
	}

	player := p.device.NewPlayer(bytes.NewReader(buf.float32LE()))
	player.Play()

	go func() {
		for player.IsPlaying() {
			time.Sleep(20 * time.Millisecond)
		}
		_ = player.Close()
	}()
	return nil
}
