package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/ui/theme"
)

// ChoiceMsg is emitted when the player picks an option.
type ChoiceMsg struct {
	Option string
}

// Choices is the answer grid of a multiple-choice problem. Once revealed it
// ignores input and colors the correct and chosen options.
type Choices struct {
	Options  []string
	Cursor   int
	chosen   string
	answer   string
	revealed bool
}

// NewChoices creates an answer grid with the cursor on the first option.
func NewChoices(options []string) Choices {
	return Choices{Options: options}
}

// Update moves the cursor with the arrow keys and picks with enter or the
// number keys 1-9.
func (c Choices) Update(msg tea.Msg) (Choices, tea.Cmd) {
	if c.revealed || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j", "right":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "enter", "space":
		return c, choose(c.Options[c.Cursor])
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(c.Options) {
				c.Cursor = idx
				return c, choose(c.Options[idx])
			}
		}
	}
	return c, nil
}

func choose(option string) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Option: option} }
}

// Reveal locks the grid and marks the chosen and correct options.
func (c *Choices) Reveal(chosen, correct string) {
	c.chosen = chosen
	c.answer = correct
	c.revealed = true
}

// Revealed reports whether the grid is locked.
func (c Choices) Revealed() bool { return c.revealed }

// View renders one option per line.
func (c Choices) View(width int) string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.revealed && opt == c.answer:
			style = theme.Correct
			line += "  ✓"
		case c.revealed && opt == c.chosen:
			style = theme.Incorrect
			line += "  ✗"
		case c.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.StarYellow).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
