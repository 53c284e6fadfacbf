package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/router"
	"github.com/abhisek/mathspace/internal/screen"
	"github.com/abhisek/mathspace/internal/screens/home"
	"github.com/abhisek/mathspace/internal/screens/welcome"
	"github.com/abhisek/mathspace/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	home.Deps

	// Category, when set, skips the splash and opens a mission in that
	// category on top of the home screen.
	Category quiz.Category
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   home.Deps
	start  screen.Screen
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the launch splash, or on
// a mission when opts.Category is set.
func newAppModel(opts Options) AppModel {
	m := AppModel{deps: opts.Deps}
	if opts.Category != "" {
		h := home.New(opts.Deps)
		m.router = router.New(h)
		m.start = h.Launch(opts.Category, opts.Quiz.Difficulty)
		return m
	}
	next := func() screen.Screen { return home.New(opts.Deps) }
	m.router = router.New(welcome.New(next))
	return m
}

func (m AppModel) Init() tea.Cmd {
	if m.start != nil {
		start := m.start
		return func() tea.Msg { return router.PushScreenMsg{Screen: start} }
	}
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) headerStats() layout.HeaderStats {
	if m.deps.Progress == nil {
		return layout.HeaderStats{Level: 1}
	}
	s := m.deps.Progress.Stats()
	return layout.HeaderStats{Level: s.Level, Points: s.Points}
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStats(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until the player quits or
// ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
