// Package progress shows the learner's accumulated stats: per-topic
// accuracy, frequent mistakes, and overall totals from the event log.
package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gramiz/internal/learner"
	"github.com/abhisek/gramiz/internal/router"
	"github.com/abhisek/gramiz/internal/screen"
	"github.com/abhisek/gramiz/internal/store"
	"github.com/abhisek/gramiz/internal/ui/components"
	"github.com/abhisek/gramiz/internal/ui/layout"
	"github.com/abhisek/gramiz/internal/ui/theme"
)

type progressLoadedMsg struct {
	Topics   []store.TopicStats
	Mistakes []store.MistakeStats
	Answers  store.AnswerStats
	Sessions int
	Err      error
}

// ProgressScreen displays aggregated learner statistics.
type ProgressScreen struct {
	eventRepo store.EventRepo

	topics   []store.TopicStats
	mistakes []store.MistakeStats
	answers  store.AnswerStats
	sessions int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a new ProgressScreen.
func New(eventRepo store.EventRepo) *ProgressScreen {
	return &ProgressScreen{eventRepo: eventRepo}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return func() tea.Msg {
		if s.eventRepo == nil {
			return progressLoadedMsg{}
		}
		ctx := context.Background()

		topics, err := s.eventRepo.TopicStats(ctx)
		if err != nil {
			return progressLoadedMsg{Err: err}
		}
		mistakes, err := s.eventRepo.MistakeStats(ctx)
		if err != nil {
			return progressLoadedMsg{Err: err}
		}
		answers, err := s.eventRepo.AnswerStats(ctx)
		if err != nil {
			return progressLoadedMsg{Err: err}
		}
		sessions, err := s.eventRepo.SessionCount(ctx)
		if err != nil {
			return progressLoadedMsg{Err: err}
		}

		return progressLoadedMsg{
			Topics:   topics,
			Mistakes: mistakes,
			Answers:  answers,
			Sessions: sessions,
		}
	}
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.topics = msg.Topics
			s.mistakes = msg.Mistakes
			s.answers = msg.Answers
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}
	if s.answers.Total == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing here yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	var accuracy float64
	if s.answers.Total > 0 {
		accuracy = float64(s.answers.Correct) / float64(s.answers.Total) * 100
	}
	overall := fmt.Sprintf("Sessions: %d   Answers: %d   Accuracy: %.0f%%   Avg time: %.1fs",
		s.sessions, s.answers.Total, accuracy, float64(s.answers.AvgTimeMs)/1000)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(overall)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Topics")))
	b.WriteString("\n\n")

	barWidth := min(width-40, 40)
	for _, ts := range s.topics {
		bar := components.NewProgressBar(fmt.Sprintf("%-20s", ts.Topic), ts.Accuracy(), true, barWidth+28)
		line := bar.View()
		flag := ""
		if ts.Accuracy() < learner.RemediationThreshold {
			flag = lipgloss.NewStyle().Foreground(theme.Warning).Render("  review")
		} else if ts.Accuracy() >= learner.EnrichmentThreshold {
			flag = lipgloss.NewStyle().Foreground(theme.Success).Render("  strong")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line+flag))
		b.WriteString("\n")
	}

	if len(s.mistakes) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Frequent mistakes")))
		b.WriteString("\n\n")

		shown := s.mistakes
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, m := range shown {
			line := fmt.Sprintf("  %-20s ×%d   last seen %s",
				m.ErrorType, m.Count, m.Last.Format("Jan 02"))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
