package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/router"
	"github.com/abhisek/mathspace/internal/screen"
	"github.com/abhisek/mathspace/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	countdownEnd = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const rocketArt = `    /\
   /  \
  | ++ |
  | -- |
 /| ×÷ |\
/_|____|_\
   /\/\`

var flameFrames = []string{"  ' ' '", " ' ' ' ", "'  '  '"}

type tickMsg time.Time

// WelcomeScreen shows a short launch countdown, then hands over to the
// screen built by next. Any key skips ahead.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// countdown returns the label for the current moment of the launch.
func (w *WelcomeScreen) countdown() string {
	if w.elapsed >= countdownEnd {
		return "Liftoff!"
	}
	step := countdownEnd / 3
	return []string{"3...", "2...", "1..."}[min(int(w.elapsed/step), 2)]
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rocket := lipgloss.NewStyle().Foreground(theme.Text).Render(rocketArt)
	if w.elapsed >= countdownEnd {
		flame := flameFrames[w.tickCount%len(flameFrames)]
		rocket += "\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(flame)
	}
	sections = append(sections, rocket, "")

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.StarYellow).
		Bold(true).
		Render(w.countdown()))

	if w.elapsed >= countdownEnd {
		sections = append(sections,
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Blast off into numbers, shapes and puzzles!"),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
