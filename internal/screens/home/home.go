// Package home is the application's landing screen: a menu over the
// loaded content pack, with a quick look at the learner's progress.
package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/feedback"
	"github.com/abhisek/gramiz/internal/learner"
	"github.com/abhisek/gramiz/internal/review"
	"github.com/abhisek/gramiz/internal/router"
	"github.com/abhisek/gramiz/internal/screen"
	"github.com/abhisek/gramiz/internal/screens/practice"
	"github.com/abhisek/gramiz/internal/screens/progress"
	sess "github.com/abhisek/gramiz/internal/session"
	"github.com/abhisek/gramiz/internal/store"
	"github.com/abhisek/gramiz/internal/ui/components"
	"github.com/abhisek/gramiz/internal/ui/theme"
)

// Deps carries everything the home screen needs to launch a session.
type Deps struct {
	Pack      *exercise.Pack
	EventRepo store.EventRepo
	SnapRepo  store.SnapshotRepo
	Explainer *feedback.Explainer
	Config    sess.Config
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps Deps

	menu         components.Menu
	sessionCount int
	strengths    int
	weaknesses   int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	ctx := context.Background()
	if deps.EventRepo != nil {
		if n, err := deps.EventRepo.SessionCount(ctx); err == nil {
			h.sessionCount = n
		}
	}
	if snap := h.loadSnapshot(ctx); snap != nil {
		p := learner.FromSnapshot(snap.Profile)
		h.strengths = len(p.StrengthAreas)
		h.weaknesses = len(p.WeaknessAreas)
	}

	items := []components.MenuItem{
		{Label: "START PRACTICE", Action: func() tea.Cmd {
			return h.startPractice()
		}},
		{Label: "PROGRESS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(deps.EventRepo)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// loadSnapshot restores the latest learner snapshot, or nil for a
// fresh learner.
func (h *HomeScreen) loadSnapshot(ctx context.Context) *store.SnapshotData {
	if h.deps.SnapRepo == nil {
		return nil
	}
	snap, err := h.deps.SnapRepo.Latest(ctx)
	if err != nil || snap == nil {
		return nil
	}
	return &snap.Data
}

func (h *HomeScreen) startPractice() tea.Cmd {
	deps := h.deps
	if deps.Pack == nil || len(deps.Pack.Questions) == 0 {
		return nil
	}
	return func() tea.Msg {
		snap := h.loadSnapshot(context.Background())
		var profile *learner.Profile
		if snap != nil {
			profile = learner.FromSnapshot(snap.Profile)
		}
		scheduler := review.NewScheduler(snap)

		pack := *deps.Pack
		if deps.Config.Adaptive {
			pack.Questions = scheduler.OrderQuestions(pack.Questions, time.Now())
		}

		state := sess.NewState(&pack, profile, deps.Config)
		state.EventRepo = deps.EventRepo
		state.Explainer = deps.Explainer
		state.Reviews = scheduler
		return router.PushScreenMsg{
			Screen: practice.New(state, deps.SnapRepo),
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("G R A M I Z")
	subtitle := theme.Subtitle.Render("grammar practice, one sentence at a time")
	sections = append(sections, title+"\n"+subtitle)

	packLine := ""
	if h.deps.Pack != nil {
		packLine = fmt.Sprintf("Pack: %s (%d questions)", h.deps.Pack.Name, len(h.deps.Pack.Questions))
	}
	stats := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s\nSessions: %d   Strong topics: %d   Needs work: %d",
			packLine, h.sessionCount, h.strengths, h.weaknesses))
	sections = append(sections, stats)

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
