package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: deep space with bright mission lights.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#06B6D4") // Cyan
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1026") // Night sky
	BgCard    = lipgloss.Color("#1E1B4B") // Nebula
	Border    = lipgloss.Color("#3730A3") // Deep indigo

	StarYellow = lipgloss.Color("#FDE047")
	PlasmaCyan   = lipgloss.Color("#67E8F9")
)

// Category colors for the mission cards.
var (
	NumberColor = lipgloss.Color("#818CF8")
	ShapeColor  = lipgloss.Color("#F472B6")
	LogicColor  = lipgloss.Color("#FB923C")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
