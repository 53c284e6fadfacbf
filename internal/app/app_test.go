package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/router"
	"github.com/abhisek/mathspace/internal/screen"
	"github.com/abhisek/mathspace/internal/screens/home"
	"github.com/abhisek/mathspace/internal/ui/layout"
)

type stub struct {
	title    string
	keepsEsc bool
	got      []string
}

func (s *stub) Init() tea.Cmd                 { return nil }
func (s *stub) View(width, height int) string { return "stub body" }
func (s *stub) Title() string                 { return s.title }
func (s *stub) HandlesEsc() bool              { return s.keepsEsc }
func (s *stub) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "y", Description: "Yes"}}
}

func (s *stub) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.got = append(s.got, k.String())
	}
	return s, nil
}

func withStack(screens ...screen.Screen) AppModel {
	m := AppModel{router: router.New(screens[0])}
	for _, s := range screens[1:] {
		m.router.Push(s)
	}
	return m
}

var esc = tea.KeyPressMsg{Code: tea.KeyEscape}

func TestEscPops(t *testing.T) {
	m := withStack(&stub{title: "root"}, &stub{title: "top"})
	_, cmd := m.Update(esc)
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("esc should pop")
	}
}

func TestEscAtRootIgnored(t *testing.T) {
	root := &stub{title: "root"}
	m := withStack(root)
	if _, cmd := m.Update(esc); cmd != nil {
		t.Fatal("esc at root should do nothing")
	}
	if len(root.got) != 0 {
		t.Fatal("esc at root should not reach the screen")
	}
}

func TestEscHandlerKeepsEsc(t *testing.T) {
	top := &stub{title: "top", keepsEsc: true}
	m := withStack(&stub{title: "root"}, top)
	m.Update(esc)
	if len(top.got) != 1 || top.got[0] != "esc" {
		t.Fatalf("screen got %v, want [esc]", top.got)
	}
	if m.router.Depth() != 2 {
		t.Fatal("stack should be unchanged")
	}
}

func TestFooterUsesScreenHints(t *testing.T) {
	m := withStack(&stub{title: "Mission Report"})
	hints := m.footerHints(m.router.Active())
	if len(hints) != 1 || hints[0].Description != "Yes" {
		t.Fatalf("hints = %+v", hints)
	}
	if got := m.headerStats(); got.Level != 1 || got.Points != 0 {
		t.Fatalf("header stats without progress = %+v", got)
	}
}

func TestStartsOnWelcome(t *testing.T) {
	m := newAppModel(Options{})
	if m.Init() == nil {
		t.Fatal("welcome should start its countdown")
	}
	if m.router.Depth() != 1 || m.router.Active().Title() != "" {
		t.Fatalf("depth = %d, title %q", m.router.Depth(), m.router.Active().Title())
	}
}

func TestStartsOnMission(t *testing.T) {
	m := newAppModel(Options{Category: quiz.Logic})
	msg := m.Init()()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected a push, got %T", msg)
	}
	// No source is configured, so the mission is the offline notice.
	if push.Screen.Title() != "Logic" {
		t.Fatalf("pushed %q", push.Screen.Title())
	}
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatal("home should sit under the mission")
	}
}
