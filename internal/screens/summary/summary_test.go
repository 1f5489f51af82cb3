package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gramiz/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		Duration:       8 * time.Minute,
		TotalQuestions: 10,
		TotalCorrect:   9,
		TotalHints:     2,
		Accuracy:       0.9,
		TopicResults: []session.TopicResult{
			{Topic: "plurals", Attempted: 4, Correct: 4},
			{Topic: "verb-agreement", Attempted: 6, Correct: 5},
		},
		EligibleForEnrichment: true,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty summary view")
	}
	if !strings.Contains(view, "plurals") {
		t.Error("expected topic breakdown in view")
	}
	if !strings.Contains(view, "90%") {
		t.Error("expected accuracy in view")
	}
}

func TestSummaryScreen_EnrichmentBanner(t *testing.T) {
	s := New(testSummary())
	if !strings.Contains(s.View(80, 24), "harder material") {
		t.Error("expected enrichment banner for a 90% run")
	}
}

func TestSummaryScreen_RemediationBanner(t *testing.T) {
	sum := testSummary()
	sum.EligibleForEnrichment = false
	sum.NeedsRemediation = true
	s := New(sum)
	if !strings.Contains(s.View(80, 24), "review") {
		t.Error("expected remediation banner")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	if len(s.KeyHints()) != 1 {
		t.Errorf("KeyHints length = %d, want 1", len(s.KeyHints()))
	}
}
