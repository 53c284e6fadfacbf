package mission

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathspace/internal/audio"
	"github.com/abhisek/mathspace/internal/progress"
	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/router"
	"github.com/abhisek/mathspace/internal/screen"
	"github.com/abhisek/mathspace/internal/screens/summary"
	"github.com/abhisek/mathspace/internal/tutor"
	"github.com/abhisek/mathspace/internal/ui/components"
	"github.com/abhisek/mathspace/internal/ui/layout"
)

// Options wires a mission screen to its services. Journal, Tutor and
// Pipeline may be nil.
type Options struct {
	Source   quiz.Source
	Count    int
	Journal  *progress.Journal
	Tutor    *tutor.Service
	Pipeline *audio.Pipeline
}

// MissionScreen plays one quiz session.
type MissionScreen struct {
	opts    Options
	session *quiz.Session

	ctx    context.Context
	cancel context.CancelFunc

	choices  components.Choices
	spinner  spinner.Model
	showHint bool
	speaking bool
	confirm  bool
	done     bool

	started time.Time
	shown   time.Time
	now     func() time.Time
}

var _ screen.Screen = (*MissionScreen)(nil)
var _ screen.KeyHintProvider = (*MissionScreen)(nil)
var _ screen.EscHandler = (*MissionScreen)(nil)
var _ screen.Closer = (*MissionScreen)(nil)

// New creates a mission screen for category and difficulty. Problems are
// requested when the screen is pushed.
func New(opts Options, category quiz.Category, difficulty quiz.Difficulty) *MissionScreen {
	if opts.Count <= 0 {
		opts.Count = quiz.DefaultConfig().Count
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &MissionScreen{
		opts:    opts,
		session: quiz.NewSession(category, difficulty),
		ctx:     ctx,
		cancel:  cancel,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		now:     time.Now,
	}
}

func (m *MissionScreen) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// load requests problems for the current session.
func (m *MissionScreen) load() tea.Cmd {
	ctx, src, req := m.ctx, m.opts.Source, m.session.Request(m.opts.Count)
	return func() tea.Msg {
		return batchMsg{batch: quiz.Fetch(ctx, src, req)}
	}
}

func (m *MissionScreen) Title() string {
	return string(m.session.Category()) + " Mission"
}

// HandlesEsc keeps Esc inside the screen while a mission is running, so it
// can ask before abandoning.
func (m *MissionScreen) HandlesEsc() bool {
	return m.session.Status() == quiz.StatusPlaying && !m.done
}

// Close cancels outstanding loads and speech.
func (m *MissionScreen) Close() { m.cancel() }

// Session exposes the running session.
func (m *MissionScreen) Session() *quiz.Session {
	return m.session
}

func (m *MissionScreen) KeyHints() []layout.KeyHint {
	switch {
	case m.confirm:
		return []layout.KeyHint{{Key: "Y", Description: "End mission"}, {Key: "N", Description: "Keep going"}}
	case m.session.Status() == quiz.StatusEmpty:
		return []layout.KeyHint{{Key: "R", Description: "Try again"}, {Key: "Esc", Description: "Back"}}
	case m.session.Status() != quiz.StatusPlaying:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case m.session.Corrected():
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if m.opts.Tutor.SpeechEnabled() {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Read aloud"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "H", Description: "Hint"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (m *MissionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchMsg:
		if !m.session.Receive(msg.batch) {
			return m, nil
		}
		if m.session.Status() == quiz.StatusPlaying {
			m.started = m.now()
			m.opts.Journal.Start(m.ctx, m.session)
			m.present()
		}
		return m, nil

	case spinner.TickMsg:
		if m.session.Status() != quiz.StatusLoading && !m.speaking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case spokenMsg:
		m.speaking = false
		return m, nil

	case components.ChoiceMsg:
		m.submit(msg.Option)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *MissionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if m.confirm {
		switch key {
		case "y", "Y":
			return m, m.abandon()
		case "n", "N", "esc":
			m.confirm = false
		}
		return m, nil
	}

	switch m.session.Status() {
	case quiz.StatusLoading:
		if key == "esc" {
			return m, m.leave()
		}
		return m, nil

	case quiz.StatusEmpty:
		switch key {
		case "r", "R":
			m.session = m.session.Restart()
			return m, tea.Batch(m.load(), m.spinner.Tick)
		case "esc", "enter":
			return m, m.leave()
		}
		return m, nil

	case quiz.StatusFinished:
		return m, nil
	}

	if key == "esc" {
		m.confirm = true
		return m, nil
	}
	if key == "h" || key == "H" {
		m.showHint = !m.showHint
		return m, nil
	}

	if m.session.Corrected() {
		switch key {
		case "enter", "space", "n":
			return m, m.advance()
		case "s", "S":
			return m, m.speak()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.choices, cmd = m.choices.Update(msg)
	return m, cmd
}

// present resets the per-problem view for the current problem.
func (m *MissionScreen) present() {
	p, ok := m.session.Current()
	if !ok {
		return
	}
	m.choices = components.NewChoices(p.Options)
	m.showHint = false
	m.shown = m.now()
}

func (m *MissionScreen) submit(option string) {
	p, ok := m.session.Current()
	if !ok {
		return
	}
	fb, accepted := m.session.SubmitAnswer(option)
	if !accepted {
		return
	}
	m.choices.Reveal(option, fb.CorrectAnswer)
	m.opts.Journal.Answer(m.ctx, m.session, p, fb, m.now().Sub(m.shown))
}

func (m *MissionScreen) advance() tea.Cmd {
	if !m.session.Advance() {
		return nil
	}
	if !m.session.Finished() {
		m.present()
		return nil
	}

	m.done = true
	badges := m.opts.Journal.Finish(m.ctx, m.session, m.now().Sub(m.started))
	m.cancel()
	opts, cat, diff := m.opts, m.session.Category(), m.session.Difficulty()
	next := summary.New(m.session.Result(), badges, func() screen.Screen {
		return New(opts, cat, diff)
	})
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (m *MissionScreen) speak() tea.Cmd {
	fb, ok := m.session.Feedback()
	if !ok || m.speaking || !m.opts.Tutor.SpeechEnabled() {
		return nil
	}
	m.speaking = true
	ctx, t, p := m.ctx, m.opts.Tutor, m.opts.Pipeline
	text := fb.Explanation
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return spokenMsg{played: t.Say(ctx, text, p)}
	})
}

func (m *MissionScreen) abandon() tea.Cmd {
	m.done = true
	m.opts.Journal.Abandon(m.ctx, m.session, m.now().Sub(m.started))
	return m.leave()
}

func (m *MissionScreen) leave() tea.Cmd {
	m.cancel()
	return func() tea.Msg { return router.PopScreenMsg{} }
}
