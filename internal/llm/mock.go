package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty. Structured content is validated like a real backend.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	content, err := finishStructured(req.Schema, string(resp.Content), false)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:    content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

func (*MockProvider) Vendor() string { return "mock" }

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockSpeech is a canned response for the MockSpeechProvider.
type MockSpeech struct {
	Audio string
	Err   error
}

// MockSpeechProvider is a deterministic SpeechProvider for testing.
type MockSpeechProvider struct {
	mu        sync.Mutex
	responses []MockSpeech
	Calls     []SpeechRequest
}

// NewMockSpeechProvider creates a MockSpeechProvider with canned responses.
func NewMockSpeechProvider(responses ...MockSpeech) *MockSpeechProvider {
	return &MockSpeechProvider{responses: responses}
}

// Synthesize returns the next canned payload or ErrProviderUnavailable if
// the queue is empty.
func (m *MockSpeechProvider) Synthesize(_ context.Context, req SpeechRequest) (*SpeechResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &SpeechResponse{
		Audio:      resp.Audio,
		SampleRate: SpeechSampleRate,
		Channels:   SpeechChannels,
		Model:      "mock-tts",
	}, nil
}

// ModelID returns "mock-tts".
func (m *MockSpeechProvider) ModelID() string {
	return "mock-tts"
}

func (*MockSpeechProvider) Vendor() string { return "mock" }

// CallCount returns the number of Synthesize calls made.
func (m *MockSpeechProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
