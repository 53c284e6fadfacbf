package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathspace/internal/llm"
	"github.com/abhisek/mathspace/internal/progress"
	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/router"
	"github.com/abhisek/mathspace/internal/screens/chat"
	"github.com/abhisek/mathspace/internal/screens/history"
	"github.com/abhisek/mathspace/internal/screens/mission"
	"github.com/abhisek/mathspace/internal/screens/picker"
	"github.com/abhisek/mathspace/internal/screens/placeholder"
	"github.com/abhisek/mathspace/internal/store"
	"github.com/abhisek/mathspace/internal/tutor"
)

type nopSource struct{}

func (nopSource) Problems(context.Context, quiz.Category, quiz.Difficulty, int) ([]quiz.RawProblem, error) {
	return nil, nil
}

func openDeps(t *testing.T) (Deps, *progress.Service) {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	svc, err := progress.NewService(context.Background(), st.SnapshotRepo(), st.EventRepo())
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	return Deps{
		Source:   nopSource{},
		Tutor:    tutor.NewService(llm.NewMockProvider(), nil, nil, tutor.DefaultConfig()),
		Progress: svc,
		Journal:  progress.NewJournal(st.EventRepo(), svc),
		Missions: st.EventRepo(),
	}, svc
}

func down(h *HomeScreen, n int) {
	for i := 0; i < n; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
}

// choose selects the nth item and returns the screen it pushes.
func choose(t *testing.T, h *HomeScreen, n int) tea.Msg {
	t.Helper()
	down(h, n)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("item %d produced no command", n)
	}
	return cmd()
}

func pushed(t *testing.T, msg tea.Msg) any {
	t.Helper()
	p, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	return p.Screen
}

func TestMenuItems(t *testing.T) {
	deps, _ := openDeps(t)
	h := New(deps)

	want := []string{LabelNumbers, LabelShapes, LabelLogic, LabelAll, LabelRobot, LabelHistory, LabelExit}
	if len(h.menuLabels) != len(want) {
		t.Fatalf("got %d items, want %d", len(h.menuLabels), len(want))
	}
	for i, l := range want {
		if h.menuLabels[i] != l {
			t.Errorf("item %d = %q, want %q", i, h.menuLabels[i], l)
		}
	}
}

func TestMissionItemsLaunchMissions(t *testing.T) {
	for i, name := range []string{"Addition Mission", "Geometry Mission", "Logic Mission"} {
		deps, _ := openDeps(t)
		h := New(deps)
		m, ok := pushed(t, choose(t, h, i)).(*mission.MissionScreen)
		if !ok {
			t.Fatalf("item %d did not push a mission", i)
		}
		if m.Title() != name {
			t.Errorf("item %d title = %q, want %q", i, m.Title(), name)
		}
	}
}

func TestOtherItems(t *testing.T) {
	deps, _ := openDeps(t)

	if _, ok := pushed(t, choose(t, New(deps), 3)).(*picker.PickerScreen); !ok {
		t.Error("ALL MISSIONS should push the picker")
	}
	if _, ok := pushed(t, choose(t, New(deps), 4)).(*chat.ChatScreen); !ok {
		t.Error("PROFESSOR ROBOT should push the chat")
	}
	if _, ok := pushed(t, choose(t, New(deps), 5)).(*history.HistoryScreen); !ok {
		t.Error("MISSION LOG should push the history")
	}
	if _, ok := choose(t, New(deps), 6).(tea.QuitMsg); !ok {
		t.Error("EXIT should quit")
	}
}

func TestOfflineShowsPlaceholders(t *testing.T) {
	h := New(Deps{})

	for i := 0; i < 6; i++ {
		h := New(Deps{})
		if _, ok := pushed(t, choose(t, h, i)).(*placeholder.PlaceholderScreen); !ok {
			t.Errorf("item %d should push a placeholder when offline", i)
		}
	}
	if h.mascot != MascotOffline {
		t.Errorf("mascot = %v, want offline", h.mascot)
	}
	if !strings.Contains(h.View(100, 40), "EXIT") {
		t.Error("view should still list the menu")
	}
}

func TestResumeRefreshesStats(t *testing.T) {
	deps, svc := openDeps(t)
	h := New(deps)
	if h.Stats().Points != 0 || h.mascot != MascotIdle {
		t.Fatalf("fresh stats = %+v, mascot %v", h.Stats(), h.mascot)
	}

	_, err := svc.Record(context.Background(), quiz.Result{Category: quiz.Addition, Score: 20, Correct: 2, Answered: 2, Total: 2})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	h.Resume()

	if h.Stats().Points != 20 {
		t.Errorf("points = %d, want 20", h.Stats().Points)
	}
	if h.mascot != MascotCelebrating {
		t.Errorf("mascot = %v, want celebrating after a new badge", h.mascot)
	}

	h.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	h.Resume()
	if h.mascot != MascotIdle {
		t.Errorf("mascot = %v, want idle once the badge is old", h.mascot)
	}
}

func TestViewShowsStats(t *testing.T) {
	deps, _ := openDeps(t)
	h := New(deps)
	view := h.View(120, 40)
	for _, want := range []string{"LEVEL 1", "0 POINTS", LabelNumbers} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
