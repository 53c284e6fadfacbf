package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const titleFull = ` █▀▄▀█ ▄▀█ ▀█▀ █ █ █▀ █▀█ ▄▀█ █▀▀ █▀▀
 █ ▀ █ █▀█  █  █▀█ ▄█ █▀▀ █▀█ █▄▄ ██▄`

const titleCompact = "M · A · T · H · S · P · A · C · E"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.StarYellow).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders level, points and badge count in a bordered box
// matching the content width.
func renderStatsBar(level, points, badges, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.PlasmaCyan).Bold(true)
	pointStyle := lipgloss.NewStyle().Foreground(theme.StarYellow).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	labels := []string{"LEVEL %d", "★ %d POINTS", "🏅 %d BADGES"}
	sep := "  "
	if compact {
		labels = []string{"LV%d", "★%d", "🏅%d"}
		sep = " "
	}
	stats := strings.Join([]string{
		levelStyle.Render(fmt.Sprintf(labels[0], level)),
		pointStyle.Render(fmt.Sprintf(labels[1], points)),
		badgeStyle.Render(fmt.Sprintf(labels[2], badges)),
	}, sep)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.PlasmaCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.StarYellow).
		BorderForeground(theme.StarYellow)
	normalBtn := base.Foreground(theme.Text)
	disabledBtn := base.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		switch {
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.StarYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner renders a warning when no LLM provider is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to launch missions (see mathspace --help)")
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
