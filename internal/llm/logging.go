package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/mathspace/internal/store"
)

// LoggingProvider is a decorator that records every request as an event.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    vendorOf(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	appendEvent(ctx, l.eventRepo, data)
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) Vendor() string { return vendorOf(l.inner) }

// LoggingSpeechProvider records every synthesis request as an event. The
// audio itself is not stored, only its size.
type LoggingSpeechProvider struct {
	inner     SpeechProvider
	eventRepo store.EventRepo
}

// WithSpeechLogging wraps a SpeechProvider with event logging.
func WithSpeechLogging(p SpeechProvider, repo store.EventRepo) SpeechProvider {
	return &LoggingSpeechProvider{inner: p, eventRepo: repo}
}

func (l *LoggingSpeechProvider) Synthesize(ctx context.Context, req SpeechRequest) (*SpeechResponse, error) {
	start := time.Now()
	resp, err := l.inner.Synthesize(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    vendorOf(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: speechPrompt(req),
	}
	if resp != nil {
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Audio == "" {
			data.ResponseBody = "(no audio)"
		} else {
			data.ResponseBody = fmt.Sprintf("[audio: %d base64 chars, %d Hz, %d ch]",
				len(resp.Audio), resp.SampleRate, resp.Channels)
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	appendEvent(ctx, l.eventRepo, data)
	return resp, err
}

func (l *LoggingSpeechProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingSpeechProvider) Vendor() string { return vendorOf(l.inner) }

// appendEvent records the event without failing the request.
func appendEvent(ctx context.Context, repo store.EventRepo, data store.LLMRequestEventData) {
	if repo == nil {
		return
	}
	if err := repo.AppendLLMRequest(ctx, data); err != nil {
		slog.Warn("failed to record llm request event", "purpose", data.Purpose, "error", err)
	}
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
