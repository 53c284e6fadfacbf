package audio

import (
	"context"
	"log/slog"
)

// Pipeline decodes speech payloads and hands them to a Player. Failures are
// logged and swallowed; speech never interrupts the caller.
type Pipeline struct {
	player Player
	format Format
	log    *slog.Logger
}

// NewPipeline builds a pipeline for SpeechFormat payloads. A nil player
// disables output and a nil logger discards log records.
func NewPipeline(player Player, logger *slog.Logger) *Pipeline {
	if player == nil {
		player = NopPlayer{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		player: player,
		format: SpeechFormat,
		log:    logger.With("component", "audio"),
	}
}

// Speak plays a base64 PCM16 payload once. It reports whether playback was
// started. An empty payload means no audio and is not logged as a failure.
func (p *Pipeline) Speak(ctx context.Context, payload string) bool {
	if payload == "" {
		return false
	}

	buf, err := p.Prepare(payload)
	if err != nil {
		p.log.Warn("speech payload dropped", "error", err, "payload_len", len(payload))
		return false
	}

	if err := p.player.Play(ctx, buf); err != nil {
		p.log.Warn("speech playback failed", "error", err, "frames", buf.Frames)
		return false
	}
	p.log.Debug("speech playback started", "frames", buf.Frames, "seconds", buf.Duration())
	return true
}

// Prepare decodes a payload into a buffer in the pipeline's format.
func (p *Pipeline) Prepare(payload string) (*Buffer, error) {
	raw, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	return ToSamples(raw, p.format.SampleRate, p.format.Channels)
}
