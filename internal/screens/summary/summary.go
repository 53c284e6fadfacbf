package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/progress"
	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/router"
	"github.com/abhisek/mathspace/internal/screen"
	"github.com/abhisek/mathspace/internal/ui/components"
	"github.com/abhisek/mathspace/internal/ui/layout"
	"github.com/abhisek/mathspace/internal/ui/theme"
)

// SummaryScreen shows the result of a finished mission.
type SummaryScreen struct {
	result quiz.Result
	badges []progress.Badge
	again  func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. again builds the screen for playing the same
// mission once more; nil hides the option.
func New(result quiz.Result, badges []progress.Badge, again func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{result: result, badges: badges, again: again}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Mission Report"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	if s.again != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Play again"})
	}
	return append(hints, layout.KeyHint{Key: "H", Description: "Home"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "h", "H":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "r", "R":
		if s.again == nil {
			return s, nil
		}
		next := s.again()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

// cheer picks the closing line for a score.
func cheer(r quiz.Result) string {
	switch {
	case r.Perfect():
		return "Perfect mission! Every answer was right!"
	case r.Total > 0 && r.Correct*2 >= r.Total:
		return "Great flying, space cadet!"
	default:
		return "Every mission makes you stronger. Try again!"
	}
}

// stars renders one filled star per correct answer.
func stars(r quiz.Result) string {
	return strings.Repeat("★", r.Correct) + strings.Repeat("☆", max(r.Total-r.Correct, 0))
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Center("Mission complete!", width, lipgloss.NewStyle().Foreground(theme.PlasmaCyan).Bold(true)))
	b.WriteString("\n")
	b.WriteString(layout.Center(fmt.Sprintf("%s · %s", r.Category, r.Difficulty), width, lipgloss.NewStyle().Foreground(theme.TextDim)))
	b.WriteString("\n\n")

	card := strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.StarYellow).Bold(true).Render(stars(r)),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("Score: %d points", r.Score)),
		lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("Correct: %d of %d", r.Correct, r.Total)),
	}, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(card, cw)))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(cheer(r), width, lipgloss.NewStyle().Foreground(theme.Success)))
	b.WriteString("\n")

	if len(s.badges) > 0 {
		b.WriteString("\n")
		b.WriteString(layout.Center("New badges", width, lipgloss.NewStyle().Foreground(theme.TextDim)))
		b.WriteString("\n")
		b.WriteString(layout.Center(strings.Repeat("─", min(cw, 40)), width, lipgloss.NewStyle().Foreground(theme.Border)))
		b.WriteString("\n")
		for _, badge := range s.badges {
			b.WriteString(layout.Center("🏅 "+badge.Name, width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
