package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gramiz/internal/screen"
)

type fakeScreen struct {
	name    string
	initRan bool
}

func (s *fakeScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *fakeScreen) View(int, int) string                    { return s.name }
func (s *fakeScreen) Title() string                           { return s.name }

func TestPushRunsInit(t *testing.T) {
	r := New(&fakeScreen{name: "home"})

	practice := &fakeScreen{name: "practice"}
	r.Push(practice)

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if got := r.Active().Title(); got != "practice" {
		t.Errorf("active = %q, want practice", got)
	}
	if !practice.initRan {
		t.Error("pushed screen's Init should run")
	}
}

func TestPopReturnsToPrevious(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	r.Push(&fakeScreen{name: "practice"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	if got := r.Active().Title(); got != "home" {
		t.Errorf("active = %q, want home", got)
	}
}

func TestPopKeepsBottomScreen(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth = %d after bottom pop, want 1", r.Depth())
	}
}

func TestReplaceSwapsTop(t *testing.T) {
	r := New(&fakeScreen{name: "home"})

	summary := &fakeScreen{name: "summary"}
	r.Replace(summary)

	if r.Depth() != 1 {
		t.Errorf("depth = %d after replace, want 1", r.Depth())
	}
	if got := r.Active().Title(); got != "summary" {
		t.Errorf("active = %q, want summary", got)
	}
	if !summary.initRan {
		t.Error("replacement screen's Init should run")
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	r.Push(&fakeScreen{name: "practice"})
	r.Replace(&fakeScreen{name: "summary"})

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if got := r.Active().Title(); got != "summary" {
		t.Errorf("active = %q, want summary", got)
	}
}

func TestNavigationMessages(t *testing.T) {
	r := New(&fakeScreen{name: "home"})

	r.Update(PushScreenMsg{Screen: &fakeScreen{name: "practice"}})
	if got := r.Active().Title(); got != "practice" {
		t.Fatalf("after push msg, active = %q", got)
	}

	summary := &fakeScreen{name: "summary"}
	r.Update(ReplaceScreenMsg{Screen: summary})
	if got := r.Active().Title(); got != "summary" {
		t.Fatalf("after replace msg, active = %q", got)
	}
	if !summary.initRan {
		t.Error("Init should run via ReplaceScreenMsg")
	}

	r.Update(PopScreenMsg{})
	if got := r.Active().Title(); got != "home" {
		t.Fatalf("after pop msg, active = %q", got)
	}
}
