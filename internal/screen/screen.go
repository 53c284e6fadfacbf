package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathspace/internal/ui/layout"
)

// Screen is one page of the game: home, a mission, the tutor chat. The
// app draws the header and footer; a screen only fills the space between.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders into width x height cells.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when they become the
// top of the stack again.
type Resumer interface {
	Resume() tea.Cmd
}

// EscHandler is implemented by screens that sometimes want Esc for
// themselves instead of the default pop.
type EscHandler interface {
	HandlesEsc() bool
}

// Closer is implemented by screens holding work that should stop once the
// screen leaves the stack.
type Closer interface {
	Close()
}
