// Package app wires the Bubble Tea program: root model, screen router,
// and the shared header/footer frame.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/feedback"
	"github.com/abhisek/gramiz/internal/router"
	"github.com/abhisek/gramiz/internal/screen"
	"github.com/abhisek/gramiz/internal/screens/home"
	"github.com/abhisek/gramiz/internal/session"
	"github.com/abhisek/gramiz/internal/store"
	"github.com/abhisek/gramiz/internal/streak"
	"github.com/abhisek/gramiz/internal/ui/layout"
)

// Options carries the app's injected dependencies. Everything except
// Pack is optional; missing pieces degrade features rather than fail.
type Options struct {
	Pack         *exercise.Pack
	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo
	Explainer    *feedback.Explainer
	Config       session.Config
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	streak int
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	days, _ := streak.Current(context.Background(), opts.EventRepo, time.Now())

	homeScreen := home.New(home.Deps{
		Pack:      opts.Pack,
		EventRepo: opts.EventRepo,
		SnapRepo:  opts.SnapshotRepo,
		Explainer: opts.Explainer,
		Config:    opts.Config,
	})
	return AppModel{
		router: router.New(homeScreen),
		streak: days,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.streak, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
