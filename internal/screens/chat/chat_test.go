package chat

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathspace/internal/audio"
	"github.com/abhisek/mathspace/internal/llm"
	"github.com/abhisek/mathspace/internal/tutor"
)

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

// runBatch executes cmd and any batched commands, returning their messages.
func runBatch(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runBatch(c)...)
	}
	return out
}

func ask(c *ChatScreen, question string) {
	c.input.Model.SetValue(question)
	_, cmd := c.Update(enter())
	for _, msg := range runBatch(cmd) {
		_, next := c.Update(msg)
		for _, m := range runBatch(next) {
			c.Update(m)
		}
	}
}

func TestChat_Greeting(t *testing.T) {
	c := New(tutor.NewService(nil, nil, nil, tutor.DefaultConfig()), nil)
	if !strings.Contains(c.View(100, 30), "Professor Robot") {
		t.Error("empty chat should greet the player")
	}
}

func TestChat_AskShowsAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("Two plus two is four!")})
	c := New(tutor.NewService(mock, nil, nil, tutor.DefaultConfig()), nil)

	ask(c, "What is 2 + 2?")

	if c.Pending() {
		t.Error("answer should clear pending")
	}
	if len(c.entries) != 1 || c.entries[0].answer != "Two plus two is four!" {
		t.Fatalf("entries = %+v", c.entries)
	}
	view := c.View(100, 30)
	if !strings.Contains(view, "What is 2 + 2?") || !strings.Contains(view, "Two plus two is four!") {
		t.Error("view should show the exchange")
	}
	if c.input.Value() != "" {
		t.Error("input should be cleared after asking")
	}
}

func TestChat_BlankQuestionIgnored(t *testing.T) {
	mock := llm.NewMockProvider()
	c := New(tutor.NewService(mock, nil, nil, tutor.DefaultConfig()), nil)

	c.input.Model.SetValue("   ")
	if _, cmd := c.Update(enter()); cmd != nil {
		t.Error("blank question should not be sent")
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times", mock.CallCount())
	}
}

func TestChat_OneQuestionAtATime(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("Four!")})
	c := New(tutor.NewService(mock, nil, nil, tutor.DefaultConfig()), nil)

	c.input.Model.SetValue("first")
	_, cmd := c.Update(enter())
	if cmd == nil || !c.Pending() {
		t.Fatal("first question should be pending")
	}
	if !strings.Contains(c.View(100, 30), "thinking") {
		t.Error("view should show the loading indicator")
	}

	c.input.Model.SetValue("second")
	if _, again := c.Update(enter()); again != nil {
		t.Error("second question should wait for the first")
	}
}

func TestChat_FallbackNotSpoken(t *testing.T) {
	speech := llm.NewMockSpeechProvider(llm.MockSpeech{Audio: "AAAAAA=="})
	player := &audio.RecordingPlayer{}
	c := New(tutor.NewService(nil, speech, nil, tutor.DefaultConfig()), audio.NewPipeline(player, nil))

	ask(c, "Why is the sky blue?")

	if len(c.entries) != 1 || !c.entries[0].fallback || c.entries[0].answer != tutor.FallbackUnavailable {
		t.Fatalf("entries = %+v", c.entries)
	}
	if speech.CallCount() != 0 {
		t.Error("fallback text should not be spoken")
	}
}

func TestChat_AnswerSpoken(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("A square has four sides.")})
	speech := llm.NewMockSpeechProvider(llm.MockSpeech{Audio: "AAAAAA=="})
	player := &audio.RecordingPlayer{}
	c := New(tutor.NewService(mock, speech, nil, tutor.DefaultConfig()), audio.NewPipeline(player, nil))

	ask(c, "How many sides does a square have?")

	if player.Count() != 1 {
		t.Errorf("played %d buffers, want 1", player.Count())
	}
	if speech.Calls[0].Text != "A square has four sides." {
		t.Errorf("spoke %q", speech.Calls[0].Text)
	}
	if c.speaking {
		t.Error("speaking should clear after playback")
	}
}

func TestChat_KeepsRecentEntries(t *testing.T) {
	var responses []llm.MockResponse
	for range keepEntries + 2 {
		responses = append(responses, llm.MockResponse{Content: []byte("ok")})
	}
	c := New(tutor.NewService(llm.NewMockProvider(responses...), nil, nil, tutor.DefaultConfig()), nil)

	for i := 0; i < keepEntries+2; i++ {
		ask(c, "question")
	}
	if len(c.entries) != keepEntries {
		t.Errorf("entries = %d, want %d", len(c.entries), keepEntries)
	}
}

func TestChat_CloseCancels(t *testing.T) {
	c := New(tutor.NewService(nil, nil, nil, tutor.DefaultConfig()), nil)
	c.Close()
	if c.ctx.Err() == nil {
		t.Error("close should cancel the context")
	}
}
