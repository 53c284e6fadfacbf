package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/screen"
	"github.com/abhisek/mathspace/internal/ui/theme"
)

// OfflineMessage is shown when a feature needs an LLM provider that is not
// configured.
const OfflineMessage = "Mission control is offline.\n\nSet an API key (for example GEMINI_API_KEY)\nand launch Mathspace again.\nSee mathspace --help for details."

// PlaceholderScreen shows a static notice in place of an unavailable screen.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen with the given title and the offline notice.
func New(title string) *PlaceholderScreen {
	return WithMessage(title, OfflineMessage)
}

// WithMessage creates a PlaceholderScreen with a custom notice.
func WithMessage(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := theme.Title.Render("╌╌ 📡 ╌╌") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(p.message) + "\n\n" +
		theme.Hint.Render("Press Esc to return to base")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
