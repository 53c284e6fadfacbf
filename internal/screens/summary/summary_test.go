package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathspace/internal/progress"
	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/router"
	"github.com/abhisek/mathspace/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "Mission" }

func testResult() quiz.Result {
	return quiz.Result{
		SessionID:  "s1",
		Category:   quiz.Geometry,
		Difficulty: quiz.Easy,
		Score:      40,
		Correct:    4,
		Answered:   5,
		Total:      5,
	}
}

func testBadges() []progress.Badge {
	return []progress.Badge{
		{ID: progress.BadgeFirstMission, Name: progress.BadgeName(progress.BadgeFirstMission), EarnedAt: time.Now()},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(), nil, nil)
	if s.Title() != "Mission Report" {
		t.Errorf("Title = %q, want %q", s.Title(), "Mission Report")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testResult(), testBadges(), nil).View(100, 30)
	for _, want := range []string{"Mission complete!", "Score: 40 points", "Correct: 4 of 5", "★★★★☆", "First Launch"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(view, "New badges") {
		t.Error("expected badge section")
	}
}

func TestSummaryScreen_NoBadges(t *testing.T) {
	view := New(testResult(), nil, nil).View(100, 30)
	if strings.Contains(view, "New badges") {
		t.Error("badge section should be hidden without badges")
	}
}

func TestCheer(t *testing.T) {
	perfect := testResult()
	perfect.Correct = 5
	if got := cheer(perfect); !strings.HasPrefix(got, "Perfect mission!") {
		t.Errorf("cheer(perfect) = %q", got)
	}
	low := testResult()
	low.Correct = 1
	if got := cheer(low); !strings.Contains(got, "Try again") {
		t.Errorf("cheer(low) = %q", got)
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyPressMsg
		want tea.Msg
	}{
		{"enter pops", tea.KeyPressMsg{Code: tea.KeyEnter}, router.PopScreenMsg{}},
		{"esc pops", tea.KeyPressMsg{Code: tea.KeyEscape}, router.PopScreenMsg{}},
		{"h goes home", tea.KeyPressMsg{Code: 'h', Text: "h"}, router.PopToRootMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := New(testResult(), nil, nil).Update(tt.key)
			if cmd == nil {
				t.Fatal("expected command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("got %T, want %T", got, tt.want)
			}
		})
	}
}

func TestSummaryScreen_PlayAgain(t *testing.T) {
	calls := 0
	s := New(testResult(), nil, func() screen.Screen {
		calls++
		return &stubScreen{}
	})

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen == nil {
		t.Fatalf("expected ReplaceScreenMsg with screen, got %#v", cmd())
	}
	if calls != 1 {
		t.Errorf("again called %d times, want 1", calls)
	}
}

func TestSummaryScreen_PlayAgainHidden(t *testing.T) {
	s := New(testResult(), nil, nil)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("r should do nothing without again")
	}
	if n := len(s.KeyHints()); n != 2 {
		t.Errorf("KeyHints length = %d, want 2", n)
	}
}
