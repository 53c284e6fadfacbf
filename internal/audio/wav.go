package audio

import (
	"context"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVPlayer "plays" a buffer by writing it to a 16-bit WAV file at Path.
// Each call replaces the file.
type WAVPlayer struct {
	Path string
}

func (p WAVPlayer) Play(ctx context.Context, buf *Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(p.Path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}
	if err := WriteWAV(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteWAV encodes buf as a PCM 16-bit WAV stream.
func WriteWAV(w io.WriteSeeker, buf *Buffer) error {
	if err := buf.Format().validate(); err != nil {
		return err
	}

	enc := wav.NewEncoder(w, buf.SampleRate, 16, buf.Channels(), 1)
	ib := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: buf.Channels(),
			SampleRate:  buf.SampleRate,
		},
		Data:           buf.ints(),
		SourceBitDepth: 16,
	}
	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("write wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// ReadWAV decodes a 16-bit PCM WAV stream into a buffer.
func ReadWAV(r io.ReadSeeker) (*Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav stream")
	}
	ib, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read wav samples: %w", err)
	}
	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported wav bit depth %d", dec.BitDepth)
	}

	ch := ib.Format.NumChannels
	if ch < 1 {
		return nil, ErrInvalidFormat
	}
	frames := len(ib.Data) / ch
	buf := &Buffer{
		SampleRate: ib.Format.SampleRate,
		Data:       make([][]float32, ch),
		Frames:     frames,
	}
	for c := range buf.Data {
		buf.Data[c] = make([]float32, frames)
	}
	for i := range frames {
		for c := range ch {
			buf.Data[c][i] = float32(ib.Data[i*ch+c]) / 32768
		}
	}
	return buf, nil
}
