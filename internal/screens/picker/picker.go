package picker

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/router"
	"github.com/abhisek/mathspace/internal/screen"
	"github.com/abhisek/mathspace/internal/ui/components"
	"github.com/abhisek/mathspace/internal/ui/layout"
	"github.com/abhisek/mathspace/internal/ui/theme"
)

// Symbol returns the planet marker shown next to a category.
func Symbol(c quiz.Category) string {
	switch c {
	case quiz.Addition:
		return "+"
	case quiz.Subtraction:
		return "−"
	case quiz.Multiplication:
		return "×"
	case quiz.Division:
		return "÷"
	case quiz.Geometry:
		return "△"
	case quiz.Logic:
		return "?"
	default:
		return "•"
	}
}

// PickerScreen lets the player choose any category and difficulty.
type PickerScreen struct {
	start      func(quiz.Category, quiz.Difficulty) screen.Screen
	cursor     int
	difficulty quiz.Difficulty
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker. start builds the mission screen for a choice.
func New(start func(quiz.Category, quiz.Difficulty) screen.Screen, difficulty quiz.Difficulty) *PickerScreen {
	if difficulty == "" {
		difficulty = quiz.Easy
	}
	return &PickerScreen{start: start, difficulty: difficulty}
}

func (p *PickerScreen) Init() tea.Cmd { return nil }

func (p *PickerScreen) Title() string { return "All Missions" }

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Planet"},
		{Key: "←→", Description: "Difficulty"},
		{Key: "Enter", Description: "Launch"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selection returns the highlighted category and difficulty.
func (p *PickerScreen) Selection() (quiz.Category, quiz.Difficulty) {
	return quiz.Categories[p.cursor], p.difficulty
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	n := len(quiz.Categories)
	switch kmsg.String() {
	case "up", "k":
		p.cursor = (p.cursor - 1 + n) % n
	case "down", "j":
		p.cursor = (p.cursor + 1) % n
	case "right", "l", "d", "tab":
		p.difficulty = p.difficulty.Next()
	case "left":
		for range len(quiz.Difficulties) - 1 {
			p.difficulty = p.difficulty.Next()
		}
	case "enter", "space":
		next := p.start(p.Selection())
		return p, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	return p, nil
}

func (p *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var rows []string
	for i, c := range quiz.Categories {
		label := fmt.Sprintf("%s  %s", Symbol(c), c)
		rows = append(rows, components.MenuButton(label, i == p.cursor, 24))
	}
	menu := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(rows, "\n"))

	var diffs []string
	for _, d := range quiz.Difficulties {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		label := " " + string(d) + " "
		if d == p.difficulty {
			style = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.PlasmaCyan).Bold(true)
		}
		diffs = append(diffs, style.Render(label))
	}

	content := strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.StarYellow).Bold(true).Render("Choose your planet"),
		menu,
		strings.Join(diffs, "  "),
	}, "\n\n")
	return components.HullFrame(content, width, height)
}
