package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/ui/theme"
)

// MascotVariant selects which Professor Robot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Cyan, ready to help
	MascotCelebrating                      // Gold, star eyes: badge earned today
	MascotOffline                          // Dim, antenna down: no LLM provider
)

const mascotIdle = `   ╷
┌──┴──┐
│ ◉ ◉ │
│  ◡  │
│ +−×÷│
└─────┘`

const mascotCelebrating = ` ✦ ╷ ✦
┌──┴──┐
│ ★ ★ │
│  ◡  │
│ +−×÷│
└─────┘`

const mascotOffline = `
┌──╴──┐
│ – – │
│  ﹏  │
│ +−×÷│
└─────┘`

// RenderMascot returns the robot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.PlasmaCyan
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.StarYellow
	case MascotOffline:
		art, fg = mascotOffline, theme.TextDim
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
