package llm

import (
	"context"
	"strconv"
	"strings"
)

// Speech payload defaults: 16-bit little-endian PCM, mono, 24 kHz.
const (
	SpeechSampleRate = 24000
	SpeechChannels   = 1
)

// SpeechProvider turns text into spoken audio.
type SpeechProvider interface {
	// Synthesize returns base64 PCM16 audio for req.Text. A response with
	// an empty Audio field means the provider produced no audio; that is
	// not an error.
	Synthesize(ctx context.Context, req SpeechRequest) (*SpeechResponse, error)

	// ModelID returns the speech model identifier.
	ModelID() string
}

// SpeechRequest describes the text to speak.
type SpeechRequest struct {
	Text string

	// Style is an adverb for the delivery, e.g. "cheerfully". Providers
	// that take free-form prompts prepend it.
	Style string
}

// SpeechResponse holds a synthesized payload.
type SpeechResponse struct {
	// Audio is standard base64 of little-endian 16-bit PCM samples.
	Audio      string
	SampleRate int
	Channels   int
	Model      string
	Usage      Usage
}

// speechPrompt builds the spoken prompt for prompt-driven TTS models.
func speechPrompt(req SpeechRequest) string {
	if req.Style == "" {
		return req.Text
	}
	return "Say " + req.Style + ": " + req.Text
}

// sampleRateFromMIME extracts rate=N from a type like
// "audio/L16;codec=pcm;rate=24000", falling back to SpeechSampleRate.
func sampleRateFromMIME(mime string) int {
	for _, part := range strings.Split(mime, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || k != "rate" {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return SpeechSampleRate
}
