// Package audio turns base64 PCM speech payloads into sample buffers and
// plays them.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// SpeechFormat is the fixed format of synthesized speech: 16-bit PCM,
// mono, 24 kHz.
var SpeechFormat = Format{SampleRate: 24000, Channels: 1}

// ErrInvalidFormat is returned for a non-positive sample rate or channel count.
var ErrInvalidFormat = errors.New("invalid audio format")

// Format describes a PCM stream.
type Format struct {
	SampleRate int
	Channels   int
}

func (f Format) validate() error {
	if f.SampleRate < 1 || f.Channels < 1 {
		return fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, f.SampleRate, f.Channels)
	}
	return nil
}

// DecodeError reports a payload that is not valid standard base64.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode audio payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode decodes a standard (padded) base64 payload.
func Decode(payload string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return b, nil
}

// Buffer holds normalized samples split by channel. Every channel has
// Frames samples in [-1, 1).
type Buffer struct {
	SampleRate int
	Data       [][]float32
	Frames     int
}

// Channels returns the channel count.
func (b *Buffer) Channels() int { return len(b.Data) }

// Format returns the buffer's sample rate and channel count.
func (b *Buffer) Format() Format {
	return Format{SampleRate: b.SampleRate, Channels: b.Channels()}
}

// Duration returns the playback length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(b.Frames) / float64(b.SampleRate)
}

// ToSamples interprets data as interleaved little-endian signed 16-bit
// samples. Bytes that do not complete a frame are dropped.
func ToSamples(data []byte, sampleRate, channels int) (*Buffer, error) {
	if err := (Format{SampleRate: sampleRate, Channels: channels}).validate(); err != nil {
		return nil, err
	}

	frames := len(data) / 2 / channels
	buf := &Buffer{
		SampleRate: sampleRate,
		Data:       make([][]float32, channels),
		Frames:     frames,
	}
	for c := range buf.Data {
		buf.Data[c] = make([]float32, frames)
	}

	for i := range frames {
		for c := range channels {
			off := (i*channels + c) * 2
			v := int16(binary.LittleEndian.Uint16(data[off:]))
			buf.Data[c][i] = float32(v) / 32768
		}
	}
	return buf, nil
}

// EncodePCM16 interleaves the buffer back into little-endian 16-bit PCM.
// Samples outside [-1, 1) are clamped.
func EncodePCM16(buf *Buffer) []byte {
	ch := buf.Channels()
	out := make([]byte, buf.Frames*ch*2)
	for i := range buf.Frames {
		for c := range ch {
			off := (i*ch + c) * 2
			binary.LittleEndian.PutUint16(out[off:], uint16(toInt16(buf.Data[c][i])))
		}
	}
	return out
}

// float32LE interleaves the buffer as little-endian float32 samples.
func (b *Buffer) float32LE() []byte {
	ch := b.Channels()
	out := make([]byte, b.Frames*ch*4)
	for i := range b.Frames {
		for c := range ch {
			off := (i*ch + c) * 4
			binary.LittleEndian.PutUint32(out[off:], math.Float32bits(b.Data[c][i]))
		}
	}
	return out
}

// ints interleaves the buffer as 16-bit integer sample values.
func (b *Buffer) ints() []int {
	ch := b.Channels()
	out := make([]int, b.Frames*ch)
	for i := range b.Frames {
		for c := range ch {
			out[i*ch+c] = int(toInt16(b.Data[c][i]))
		}
	}
	return out
}

func toInt16(f float32) int16 {
	v := math.Round(float64(f) * 32768)
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}
