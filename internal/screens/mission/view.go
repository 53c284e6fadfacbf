package mission

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/ui/components"
	"github.com/abhisek/mathspace/internal/ui/theme"
)

func (m *MissionScreen) View(width, height int) string {
	if m.confirm {
		return renderQuitConfirm(width)
	}

	switch m.session.Status() {
	case quiz.StatusLoading:
		return centered(width, theme.TextDim, "\n\n\n"+m.spinner.View()+" Launching your mission...")
	case quiz.StatusEmpty:
		return renderEmpty(width, m.session.Err())
	}

	p, ok := m.session.Current()
	if !ok {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	bar := components.NewProgressBar("Problem", m.session.Index()+1, m.session.Len(), cw-16)
	score := lipgloss.NewStyle().Foreground(theme.StarYellow).Bold(true).
		Render(fmt.Sprintf("  ★ %d", m.session.Score()))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()+score))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 6).
		Align(lipgloss.Center).Render(p.Question)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.TintedPanel(question, cw, categoryColor(m.session.Category()))))
	b.WriteString("\n\n")

	b.WriteString(m.choices.View(width))

	if m.showHint && p.Hint != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.PlasmaCyan, "💡 "+p.Hint))
		b.WriteString("\n")
	}

	if fb, ok := m.session.Feedback(); ok {
		b.WriteString("\n")
		b.WriteString(renderFeedback(fb, cw, width))
		if m.speaking {
			b.WriteString("\n")
			b.WriteString(centered(width, theme.TextDim, m.spinner.View()+" Professor Robot is reading..."))
		}
		b.WriteString("\n\n")
		next := "Press Enter for the next problem"
		if m.session.Index() == m.session.Len()-1 {
			next = "Press Enter to finish the mission"
		}
		b.WriteString(centered(width, theme.TextDim, next))
	}

	return b.String()
}

func renderFeedback(fb quiz.Feedback, cw, width int) string {
	var b strings.Builder
	if fb.Correct {
		b.WriteString(styled(width, theme.Correct, fmt.Sprintf("Awesome! +%d", fb.Points)))
	} else {
		b.WriteString(styled(width, theme.Incorrect, "Almost!"))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.TextDim, "The answer is "+fb.CorrectAnswer))
	}
	if fb.Explanation != "" {
		b.WriteString("\n\n")
		exp := lipgloss.NewStyle().Width(min(cw, 70)).Foreground(theme.Text).Render(fb.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}
	return b.String()
}

// emptyMessage explains why a mission has no problems.
func emptyMessage(err error) string {
	switch {
	case errors.Is(err, quiz.ErrSourceUnavailable):
		return "Mission control is out of reach. Check your connection and try again."
	case errors.Is(err, quiz.ErrMalformedResponse):
		return "The mission map got scrambled on the way. Let's try again!"
	default:
		return "No problems arrived this time. Let's try again!"
	}
}

func renderEmpty(width int, err error) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(styled(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), "Houston, we have a problem!"))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Text, emptyMessage(err)))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.TextDim, "[R] Try again    [Esc] Back"))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(styled(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "Return to base early?"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.TextDim, "Points from this mission will not be kept."))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Success, "[Y] Yes, end mission"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Primary, "[N] No, keep flying"))
	return b.String()
}

func categoryColor(c quiz.Category) color.Color {
	switch c {
	case quiz.Geometry:
		return theme.ShapeColor
	case quiz.Logic:
		return theme.LogicColor
	default:
		return theme.NumberColor
	}
}

func centered(width int, fg color.Color, s string) string {
	return styled(width, lipgloss.NewStyle().Foreground(fg), s)
}

func styled(width int, style lipgloss.Style, s string) string {
	return style.Width(width).Align(lipgloss.Center).Render(s)
}
