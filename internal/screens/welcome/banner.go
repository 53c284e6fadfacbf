package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/ui/theme"
)

const bannerArt = `
 █▀▄▀█ ▄▀█ ▀█▀ █ █ █▀ █▀█ ▄▀█ █▀▀ █▀▀
 █ ▀ █ █▀█  █  █▀█ ▄█ █▀▀ █▀█ █▄▄ ██▄`

const bannerCompact = "M A T H S P A C E"

// RenderBanner returns the MATHSPACE banner. Terminals narrower than 44
// columns get the spaced-out text version.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.PlasmaCyan).
		Bold(true)

	if width < 44 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
