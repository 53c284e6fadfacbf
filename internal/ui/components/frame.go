package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/ui/theme"
)

const (
	minContentWidth = 20
	maxContentWidth = 64
)

// ContentWidth is the inner width every section inside the hull shares:
// the frame minus its border and padding, clamped to a readable range.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, minContentWidth), maxContentWidth)
}

// HullFrame draws the double-lined ship hull around a whole screen and
// centers content inside it.
func HullFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel is a rounded instrument panel cw columns wide.
func Panel(content string, cw int) string {
	return TintedPanel(content, cw, theme.Border)
}

// TintedPanel is a Panel with its own border color, used for category and
// feedback panels.
func TintedPanel(content string, cw int, border color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

var (
	buttonBase = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	buttonLit = buttonBase.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.StarYellow).
			BorderForeground(theme.StarYellow)

	buttonIdle = buttonBase.
			Foreground(theme.Text).
			BorderForeground(theme.Border)
)

// MenuButton renders one menu entry. The selected entry is lit and marked
// with a rocket.
func MenuButton(label string, selected bool, width int) string {
	if selected {
		return buttonLit.Width(width).Render("🚀 " + label)
	}
	return buttonIdle.Width(width).Render(label)
}
