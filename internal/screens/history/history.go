package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathspace/internal/router"
	"github.com/abhisek/mathspace/internal/screen"
	"github.com/abhisek/mathspace/internal/store"
	"github.com/abhisek/mathspace/internal/ui/layout"
	"github.com/abhisek/mathspace/internal/ui/theme"
)

// Limit is how many past missions are listed.
const Limit = 50

type historyLoadedMsg struct {
	Missions []store.MissionRecord
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerRecord
	Err       error
}

// HistoryScreen lists finished missions; Enter expands the answers given.
type HistoryScreen struct {
	repo     store.MissionRepo
	missions []store.MissionRecord
	answers  map[string][]store.AnswerRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.MissionRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		answers:  make(map[string][]store.AnswerRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		missions, err := repo.QueryMissions(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Missions: missions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Mission Log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.missions = msg.Missions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err == nil {
			s.answers[msg.SessionID] = msg.Answers
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.missions)-1 {
				s.selected++
			}
		case "enter":
			if len(s.missions) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, s.loadAnswers(s.missions[s.selected].SessionID)
		}
	}
	return s, nil
}

// loadAnswers fetches a mission's answers the first time it is expanded.
func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	if _, ok := s.answers[sessionID]; ok {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		answers, err := repo.QueryAnswers(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}
	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+s.errMsg)
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading mission log...")
	}
	if len(s.missions) == 0 {
		return center(theme.Hint, "\n\n  No missions yet. Time to launch!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, m := range s.missions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.StarYellow).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+missionLine(m))))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, line := range answerLines(s.answers[m.SessionID]) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func missionLine(m store.MissionRecord) string {
	return fmt.Sprintf("%s  %-14s %-6s  %d/%d correct  %3d pts  %d:%02d",
		m.Timestamp.Local().Format("Jan 02 15:04"),
		m.Category, m.Difficulty,
		m.Correct, m.ProblemCount, m.Score,
		m.DurationSecs/60, m.DurationSecs%60)
}

func answerLines(answers []store.AnswerRecord) []string {
	if len(answers) == 0 {
		return []string{"    No answers recorded"}
	}
	lines := make([]string, 0, len(answers))
	for _, a := range answers {
		mark := "✓"
		detail := a.GivenAnswer
		if !a.Correct {
			mark = "✗"
			detail = fmt.Sprintf("%s (answer: %s)", a.GivenAnswer, a.CorrectAnswer)
		}
		lines = append(lines, fmt.Sprintf("    %s %s  %s", mark, a.Question, detail))
	}
	return lines
}
