package practice

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/feedback"
	sess "github.com/abhisek/gramiz/internal/session"
	"github.com/abhisek/gramiz/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state.ShowingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.state.Phase == sess.PhaseFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the active question display.
func (s *PracticeScreen) renderQuestionView(width int) string {
	state := s.state
	q := state.CurrentQuestion()
	if q == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading question...")
	}

	var b strings.Builder

	elapsed := time.Since(state.StartTime)
	mins := int(elapsed.Minutes())
	secs := int(elapsed.Seconds()) % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Topic: %s", q.Topic))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %d:%02d",
			state.CurrentIndex+1,
			len(state.Pack.Questions),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			state.TotalCorrect,
			mins, secs,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	var body string
	switch q.Type {
	case exercise.TypeMultipleChoice:
		body = s.mc.View()
	case exercise.TypeFillInBlank:
		body = s.renderBlanks(q)
	case exercise.TypeDragAndDrop:
		body = s.board.View()
	case exercise.TypeSentenceBuilder:
		body = s.bank.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))

	// An active hint stays visible under the question.
	if fb := state.LastFeedback; fb != nil && fb.Type == feedback.TypeHint {
		b.WriteString("\n\n")
		hint := lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(fmt.Sprintf("%s: %s", fb.Title, fb.Message))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hint))
	}

	if state.AttemptNumber > 1 {
		b.WriteString("\n\n")
		attempt := theme.Hint.Render(fmt.Sprintf("attempt %d", state.AttemptNumber))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, attempt))
	}

	return b.String()
}

func (s *PracticeScreen) renderBlanks(q *exercise.Question) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")
	for i := range s.blanks {
		b.WriteString(s.blanks[i].View())
		b.WriteString("\n")
	}
	return b.String()
}

// renderFeedback renders the graded-answer overlay.
func (s *PracticeScreen) renderFeedback(width int) string {
	fb := s.state.LastFeedback
	if fb == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")

	titleStyle := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Bold(true)
	switch fb.Type {
	case feedback.TypeCorrect:
		titleStyle = titleStyle.Foreground(theme.Success)
	case feedback.TypePartial:
		titleStyle = titleStyle.Foreground(theme.Warning)
	default:
		titleStyle = titleStyle.Foreground(theme.Error)
	}
	b.WriteString(titleStyle.Render(fb.Title))
	b.WriteString("\n\n")

	msgStyle := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, msgStyle.Render(fb.Message)))
	b.WriteString("\n")

	if len(fb.Details) > 0 {
		var details strings.Builder
		for _, d := range fb.Details {
			details.WriteString("• " + d + "\n")
		}
		block := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.TextDim).
			Render(details.String())
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	}

	if s.explanation != nil {
		b.WriteString("\n")
		exp := s.explanation.Feedback()
		card := theme.Card.Width(min(width-8, 70)).Render(
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(exp.Title) +
				"\n\n" + exp.Message)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
		b.WriteString("\n")
	} else if s.state.PendingExplanation {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("writing an explanation..."))
		b.WriteString("\n")
	}

	if fb.Encouragement != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fb.Encouragement))
	}

	if fb.NextSteps != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fb.NextSteps))
	}

	if len(fb.RelatedConcepts) > 0 {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("related: " + strings.Join(fb.RelatedConcepts, ", ")))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your progress will be saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
