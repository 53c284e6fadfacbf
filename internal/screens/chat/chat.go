// Package chat is the Professor Robot conversation screen.
package chat

import (
	"context"
	"errors"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/audio"
	"github.com/abhisek/mathspace/internal/screen"
	"github.com/abhisek/mathspace/internal/tutor"
	"github.com/abhisek/mathspace/internal/ui/components"
	"github.com/abhisek/mathspace/internal/ui/layout"
	"github.com/abhisek/mathspace/internal/ui/theme"
)

// maxQuestionLen caps what the player can type.
const maxQuestionLen = 200

// keepEntries is how many exchanges stay on screen.
const keepEntries = 4

type answerMsg struct {
	answer tutor.Answer
	err    error
}

type spokenMsg struct{}

type entry struct {
	question string
	answer   string
	fallback bool
}

// ChatScreen lets the player ask Professor Robot free-form questions.
type ChatScreen struct {
	tutor    *tutor.Service
	pipeline *audio.Pipeline

	ctx    context.Context
	cancel context.CancelFunc

	input    components.TextInput
	spinner  spinner.Model
	entries  []entry
	pending  bool
	speaking bool
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.Closer = (*ChatScreen)(nil)

// New creates a chat screen. A nil pipeline keeps Professor Robot silent.
func New(t *tutor.Service, pipeline *audio.Pipeline) *ChatScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &ChatScreen{
		tutor:    t,
		pipeline: pipeline,
		ctx:      ctx,
		cancel:   cancel,
		input:    components.NewTextInput("Ask about numbers, shapes or puzzles...", maxQuestionLen),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Title() string { return "Professor Robot" }

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "Esc", Description: "Back"},
	}
}

// Close abandons any outstanding question.
func (c *ChatScreen) Close() { c.cancel() }

// Pending reports whether a question is waiting for an answer.
func (c *ChatScreen) Pending() bool { return c.pending }

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		c.pending = false
		if errors.Is(msg.err, tutor.ErrEmptyQuestion) || errors.Is(msg.err, tutor.ErrBusy) {
			return c, nil
		}
		c.entries = append(c.entries, entry{
			question: msg.answer.Question,
			answer:   msg.answer.Text,
			fallback: msg.answer.Fallback,
		})
		if len(c.entries) > keepEntries {
			c.entries = c.entries[len(c.entries)-keepEntries:]
		}
		if msg.answer.Fallback {
			return c, nil
		}
		return c, c.speak(msg.answer.Text)

	case spokenMsg:
		c.speaking = false
		return c, nil

	case spinner.TickMsg:
		if !c.pending && !c.speaking {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return c, c.ask()
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// ask sends the typed question. Only one question is outstanding at a time.
func (c *ChatScreen) ask() tea.Cmd {
	if c.pending || c.input.Value() == "" {
		return nil
	}
	question := c.input.Take()
	c.pending = true
	ctx, t := c.ctx, c.tutor
	return tea.Batch(c.spinner.Tick, func() tea.Msg {
		ans, err := t.Explain(ctx, question)
		return answerMsg{answer: ans, err: err}
	})
}

func (c *ChatScreen) speak(text string) tea.Cmd {
	if !c.tutor.SpeechEnabled() || c.pipeline == nil {
		return nil
	}
	c.speaking = true
	ctx, t, p := c.ctx, c.tutor, c.pipeline
	return tea.Batch(c.spinner.Tick, func() tea.Msg {
		t.Say(ctx, text, p)
		return spokenMsg{}
	})
}

func (c *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	textWidth := cw - 6

	var sections []string
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.PlasmaCyan).Render(robotArt))

	if len(c.entries) == 0 && !c.pending {
		sections = append(sections, bubble(tutor.Greeting, textWidth, theme.Text))
	}
	for _, e := range c.entries {
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.StarYellow).Width(textWidth).Align(lipgloss.Right).Render(e.question),
		)
		fg := theme.Text
		if e.fallback {
			fg = theme.Accent
		}
		sections = append(sections, bubble(e.answer, textWidth, fg))
	}

	switch {
	case c.pending:
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(c.spinner.View()+" Professor Robot is thinking..."))
	case c.speaking:
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(c.spinner.View()+" Professor Robot is speaking..."))
	}

	c.input.SetWidth(textWidth)
	sections = append(sections, "", c.input.View())

	content := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func bubble(text string, width int, fg color.Color) string {
	return lipgloss.NewStyle().
		Foreground(fg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(width).
		Render(text)
}

const robotArt = ` ┌─────┐
 │ ▣ ▣ │
 │  ═  │
 └┬───┬┘`
