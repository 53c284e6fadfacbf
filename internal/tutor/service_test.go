package tutor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathspace/internal/audio"
	"github.com/abhisek/mathspace/internal/llm"
	"github.com/abhisek/mathspace/internal/store"
)

func openAskRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open("file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

// blockingProvider holds every Generate call until release is closed.
type blockingProvider struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	close(b.started)
	<-b.release
	return &llm.Response{Content: []byte("Three plus four makes seven.")}, nil
}

func (b *blockingProvider) ModelID() string { return "blocking" }

func TestExplain_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("  If you have 2 apples and get 3 more, you have 5!\n")})
	svc := NewService(mock, nil, nil, DefaultConfig())

	ans, err := svc.Explain(context.Background(), " What is 2 + 3? ")
	require.NoError(t, err)
	assert.Equal(t, "What is 2 + 3?", ans.Question)
	assert.Equal(t, "If you have 2 apples and get 3 more, you have 5!", ans.Text)
	assert.False(t, ans.Fallback)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Nil(t, req.Schema, "explanations are plain text")
	assert.Contains(t, req.System, "Professor Robot")
	assert.Contains(t, req.System, "Answer in English.")
	assert.Equal(t, "What is 2 + 3?", req.Messages[0].Content)
}

func TestExplain_EmptyQuestion(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, nil, nil, DefaultConfig())

	_, err := svc.Explain(context.Background(), "   \n")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Zero(t, mock.CallCount())
}

func TestExplain_ProviderFailureFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("offline")}})
	svc := NewService(mock, nil, nil, DefaultConfig())

	ans, err := svc.Explain(context.Background(), "Why is 0 special?")
	require.NoError(t, err)
	assert.True(t, ans.Fallback)
	assert.Equal(t, FallbackUnavailable, ans.Text)
}

func TestExplain_NilProviderFallsBack(t *testing.T) {
	svc := NewService(nil, nil, nil, DefaultConfig())

	ans, err := svc.Explain(context.Background(), "What is a square?")
	require.NoError(t, err)
	assert.True(t, ans.Fallback)
	assert.Equal(t, FallbackUnavailable, ans.Text)
}

func TestExplain_EmptyExplanationFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("  ")})
	svc := NewService(mock, nil, nil, DefaultConfig())

	ans, err := svc.Explain(context.Background(), "What is 9 - 4?")
	require.NoError(t, err)
	assert.True(t, ans.Fallback)
	assert.Equal(t, FallbackEmpty, ans.Text)
}

func TestExplain_Busy(t *testing.T) {
	p := &blockingProvider{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(p, nil, nil, DefaultConfig())

	done := make(chan Answer)
	go func() {
		ans, _ := svc.Explain(context.Background(), "What is 3 + 4?")
		done <- ans
	}()
	<-p.started

	assert.True(t, svc.Busy())
	_, err := svc.Explain(context.Background(), "What is 5 + 5?")
	assert.ErrorIs(t, err, ErrBusy)

	close(p.release)
	ans := <-done
	assert.Equal(t, "Three plus four makes seven.", ans.Text)
	assert.False(t, svc.Busy())
}

func TestExplain_Language(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("Lima!")})
	cfg := DefaultConfig()
	cfg.Language = "Indonesian"
	svc := NewService(mock, nil, nil, cfg)

	_, err := svc.Explain(context.Background(), "Berapa 2 + 3?")
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].System, "Answer in Indonesian.")
}

func TestExplain_RecordsAskEvents(t *testing.T) {
	repo := openAskRepo(t)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: []byte("A triangle has 3 sides.")},
		llm.MockResponse{Err: errors.New("boom")},
	)
	svc := NewService(mock, nil, repo, DefaultConfig())
	ctx := context.Background()

	_, err := svc.Explain(ctx, "How many sides does a triangle have?")
	require.NoError(t, err)
	_, err = svc.Explain(ctx, "And a hexagon?")
	require.NoError(t, err)

	asks, err := repo.QueryAskEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, asks, 2)

	// Newest first.
	assert.Equal(t, "And a hexagon?", asks[0].Question)
	assert.True(t, asks[0].Fallback)
	assert.Equal(t, FallbackUnavailable, asks[0].Answer)
	assert.Equal(t, "A triangle has 3 sides.", asks[1].Answer)
	assert.False(t, asks[1].Fallback)
}

func TestSpeak(t *testing.T) {
	speech := llm.NewMockSpeechProvider(
		llm.MockSpeech{Audio: "AAAA"},
		llm.MockSpeech{Err: &llm.ErrProviderUnavailable{}},
		llm.MockSpeech{},
	)
	svc := NewService(nil, speech, nil, DefaultConfig())
	ctx := context.Background()

	assert.True(t, svc.SpeechEnabled())
	assert.Equal(t, "AAAA", svc.Speak(ctx, "Great job!"))
	assert.Empty(t, svc.Speak(ctx, "Great job!"), "failures yield no audio")
	assert.Empty(t, svc.Speak(ctx, "Great job!"), "no payload is not an error")
	assert.Empty(t, svc.Speak(ctx, "  "))

	require.Equal(t, 3, speech.CallCount(), "blank text is not sent")
	assert.Equal(t, "cheerfully", speech.Calls[0].Style)
}

func TestSpeak_Disabled(t *testing.T) {
	svc := NewService(nil, nil, nil, DefaultConfig())
	assert.False(t, svc.SpeechEnabled())
	assert.Empty(t, svc.Speak(context.Background(), "Hello"))
}

func TestSay(t *testing.T) {
	speech := llm.NewMockSpeechProvider(
		llm.MockSpeech{Audio: "AAAAAA=="},
		llm.MockSpeech{Audio: "%%%"},
	)
	svc := NewService(nil, speech, nil, DefaultConfig())
	player := &audio.RecordingPlayer{}
	pipeline := audio.NewPipeline(player, nil)
	ctx := context.Background()

	assert.True(t, svc.Say(ctx, "Five!", pipeline))
	assert.False(t, svc.Say(ctx, "Five!", pipeline), "undecodable audio is dropped")
	assert.False(t, svc.Say(ctx, "Five!", nil))
	assert.Equal(t, 1, player.Count())
	require.Len(t, player.Buffers, 1)
	assert.Equal(t, 2, player.Buffers[0].Frames)
}

func TestSay_NilService(t *testing.T) {
	var svc *Service
	assert.False(t, svc.SpeechEnabled())
	assert.False(t, svc.Say(context.Background(), "Hi", audio.NewPipeline(nil, nil)))
}
