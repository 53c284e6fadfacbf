package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathspace/internal/audio"
	"github.com/abhisek/mathspace/internal/progress"
	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/router"
	"github.com/abhisek/mathspace/internal/screen"
	"github.com/abhisek/mathspace/internal/screens/chat"
	"github.com/abhisek/mathspace/internal/screens/history"
	"github.com/abhisek/mathspace/internal/screens/mission"
	"github.com/abhisek/mathspace/internal/screens/picker"
	"github.com/abhisek/mathspace/internal/screens/placeholder"
	"github.com/abhisek/mathspace/internal/store"
	"github.com/abhisek/mathspace/internal/tutor"
	"github.com/abhisek/mathspace/internal/ui/components"
	"github.com/abhisek/mathspace/internal/ui/layout"
)

// Deps are the services the home screen hands to the screens it opens.
// A nil Source means no LLM provider is configured.
type Deps struct {
	Source   quiz.Source
	Quiz     quiz.Config
	Tutor    *tutor.Service
	Progress *progress.Service
	Journal  *progress.Journal
	Missions store.MissionRepo
	Pipeline *audio.Pipeline
}

// Menu labels, in display order.
const (
	LabelNumbers = "NUMBER OPERATIONS"
	LabelShapes  = "SHAPE WORLD"
	LabelLogic   = "LOGIC CHALLENGE"
	LabelAll     = "ALL MISSIONS"
	LabelRobot   = "PROFESSOR ROBOT"
	LabelHistory = "MISSION LOG"
	LabelExit    = "EXIT"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	offline    map[int]bool

	stats  progress.Stats
	mascot MascotVariant
	now    func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Quiz.Count <= 0 {
		deps.Quiz = quiz.DefaultConfig()
	}
	h := &HomeScreen{deps: deps, now: time.Now}

	launch := func(title string, c quiz.Category) components.MenuItem {
		return components.MenuItem{Label: title, Action: func() tea.Cmd {
			return push(h.missionScreen(c, h.deps.Quiz.Difficulty, title))
		}}
	}
	items := []components.MenuItem{
		launch(LabelNumbers, quiz.Addition),
		launch(LabelShapes, quiz.Geometry),
		launch(LabelLogic, quiz.Logic),
		{Label: LabelAll, Action: func() tea.Cmd {
			if h.deps.Source == nil {
				return push(placeholder.New("All Missions"))
			}
			return push(picker.New(func(c quiz.Category, d quiz.Difficulty) screen.Screen {
				return h.missionScreen(c, d, string(c))
			}, h.deps.Quiz.Difficulty))
		}},
		{Label: LabelRobot, Action: func() tea.Cmd {
			if h.deps.Tutor == nil {
				return push(placeholder.New("Professor Robot"))
			}
			return push(chat.New(h.deps.Tutor, h.deps.Pipeline))
		}},
		{Label: LabelHistory, Action: func() tea.Cmd {
			if h.deps.Missions == nil {
				return push(placeholder.WithMessage("Mission Log", "The mission log needs a save file."))
			}
			return push(history.New(h.deps.Missions))
		}},
		{Label: LabelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	h.offline = make(map[int]bool)
	for i, item := range items {
		h.menuLabels = append(h.menuLabels, item.Label)
		if deps.Source == nil && i <= 3 {
			h.offline[i] = true
		}
	}
	h.refresh()
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// Launch returns the mission screen for c and d, or the offline notice when
// no problem source is configured.
func (h *HomeScreen) Launch(c quiz.Category, d quiz.Difficulty) screen.Screen {
	return h.missionScreen(c, d, string(c))
}

func (h *HomeScreen) missionScreen(c quiz.Category, d quiz.Difficulty, title string) screen.Screen {
	if h.deps.Source == nil {
		return placeholder.New(title)
	}
	return mission.New(mission.Options{
		Source:   h.deps.Source,
		Count:    h.deps.Quiz.Count,
		Journal:  h.deps.Journal,
		Tutor:    h.deps.Tutor,
		Pipeline: h.deps.Pipeline,
	}, c, d)
}

// refresh reloads the player stats and picks the mascot.
func (h *HomeScreen) refresh() {
	if h.deps.Progress != nil {
		h.stats = h.deps.Progress.Stats()
	} else {
		h.stats = progress.New()
	}

	h.mascot = MascotIdle
	switch {
	case h.deps.Source == nil:
		h.mascot = MascotOffline
	case h.earnedRecently(24 * time.Hour):
		h.mascot = MascotCelebrating
	}
}

func (h *HomeScreen) earnedRecently(window time.Duration) bool {
	now := h.now()
	for _, at := range h.stats.Badges {
		if now.Sub(at) < window {
			return true
		}
	}
	return false
}

// Stats returns the stats shown in the stats bar.
func (h *HomeScreen) Stats() progress.Stats {
	return h.stats
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the stats when a mission returns to the menu.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || layout.IsCompactWidth(width)
	tiny := layout.IsCompactHeight(termHeight)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}
	sections = append(sections, renderStatsBar(h.stats.Level, h.stats.Points, len(h.stats.Badges), cw, compact))
	if h.deps.Source == nil {
		sections = append(sections, renderLLMBanner(cw))
	}
	if tiny {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, h.offline))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, h.offline))
	}

	return components.HullFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
