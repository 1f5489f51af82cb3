// Package practice implements the question-answering screen: it renders
// the active question with the right input component, routes submissions
// through the session engine, and overlays graded feedback, hints, and
// async explanations.
package practice

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/feedback"
	"github.com/abhisek/gramiz/internal/learner"
	"github.com/abhisek/gramiz/internal/router"
	"github.com/abhisek/gramiz/internal/screen"
	"github.com/abhisek/gramiz/internal/screens/summary"
	sess "github.com/abhisek/gramiz/internal/session"
	"github.com/abhisek/gramiz/internal/store"
	"github.com/abhisek/gramiz/internal/ui/components"
	"github.com/abhisek/gramiz/internal/ui/layout"
)

// PracticeScreen implements screen.Screen for an active practice run.
type PracticeScreen struct {
	state    *sess.State
	snapRepo store.SnapshotRepo

	// Per-question input component; which one is live depends on the
	// current question's type.
	mc         components.MultiChoice
	blanks     []components.TextInput
	blankFocus int
	board      components.ZoneBoard
	bank       components.WordBank

	explanation *feedback.Explanation
	errMsg      string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a practice screen over a prepared session state.
func New(state *sess.State, snapRepo store.SnapshotRepo) *PracticeScreen {
	return &PracticeScreen{
		state:    state,
		snapRepo: snapRepo,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	sess.RecordStart(s.state)
	return tea.Batch(s.setupQuestion(), tickCmd())
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.state.ShowingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.Phase == sess.PhaseFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+G", Description: "Hint"},
		{Key: "Ctrl+S", Description: "Skip"},
		{Key: "Esc", Description: "Quit"},
	}
}

// setupQuestion builds the input component for the current question.
func (s *PracticeScreen) setupQuestion() tea.Cmd {
	q := s.state.CurrentQuestion()
	if q == nil {
		return func() tea.Msg { return sessionEndMsg{} }
	}

	switch q.Type {
	case exercise.TypeMultipleChoice:
		s.mc = components.NewMultiChoice(q.Prompt, q.MultipleChoice.Options)
	case exercise.TypeFillInBlank:
		s.blanks = nil
		for _, b := range q.FillInBlank.Blanks {
			s.blanks = append(s.blanks, components.NewTextInput(b.ID, "type here", 40))
		}
		s.blankFocus = 0
		if len(s.blanks) > 0 {
			return s.blanks[0].Focus()
		}
	case exercise.TypeDragAndDrop:
		items := make([]components.BoardItem, 0, len(q.DragAndDrop.Items))
		for _, it := range q.DragAndDrop.Items {
			items = append(items, components.BoardItem{ID: it.ID, Label: it.Label})
		}
		zones := make([]components.BoardZone, 0, len(q.DragAndDrop.Zones))
		for _, z := range q.DragAndDrop.Zones {
			zones = append(zones, components.BoardZone{ID: z.ID, Label: z.Label})
		}
		s.board = components.NewZoneBoard(q.Prompt, items, zones)
	case exercise.TypeSentenceBuilder:
		s.bank = components.NewWordBank(q.Prompt, q.SentenceBuilder.Words)
	}
	return nil
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.state.Phase == sess.PhaseSummary {
			return s, nil
		}
		return s, tickCmd()

	case explanationPollMsg:
		return s.pollExplanation()

	case explanationReadyMsg:
		s.explanation = msg.Explanation
		return s, nil

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToComponent(msg)
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.state.ShowingQuitConfirm {
		switch key {
		case "y", "Y":
			s.state.ShowingQuitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.state.ShowingQuitConfirm = false
		}
		return s, nil
	}

	if s.state.Phase == sess.PhaseFeedback {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if s.state.Phase != sess.PhaseActive {
		return s, nil
	}

	switch key {
	case "esc":
		s.state.ShowingQuitConfirm = true
		return s, nil
	case "ctrl+g":
		if fb := sess.RequestHint(s.state); fb != nil {
			s.state.LastFeedback = fb
		}
		return s, nil
	case "ctrl+s":
		sess.GiveUp(s.state)
		s.explanation = nil
		return s, s.setupQuestion()
	}

	return s.forwardToComponent(msg)
}

// forwardToComponent routes a message to the live input component and
// submits once the component reports a completed answer.
func (s *PracticeScreen) forwardToComponent(msg tea.Msg) (screen.Screen, tea.Cmd) {
	q := s.state.CurrentQuestion()
	if q == nil || s.state.Phase != sess.PhaseActive {
		return s, nil
	}

	var cmd tea.Cmd
	switch q.Type {
	case exercise.TypeMultipleChoice:
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			return s.submit(exercise.Response{Selections: s.mc.Selections()})
		}

	case exercise.TypeFillInBlank:
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			switch kmsg.String() {
			case "tab", "down":
				s.moveBlankFocus(1)
				return s, nil
			case "shift+tab", "up":
				s.moveBlankFocus(-1)
				return s, nil
			case "enter":
				return s.submitBlanks(q)
			}
		}
		if s.blankFocus < len(s.blanks) {
			s.blanks[s.blankFocus], cmd = s.blanks[s.blankFocus].Update(msg)
		}

	case exercise.TypeDragAndDrop:
		s.board, cmd = s.board.Update(msg)
		if s.board.Submitted {
			return s.submit(exercise.Response{Placements: s.board.Placements()})
		}

	case exercise.TypeSentenceBuilder:
		s.bank, cmd = s.bank.Update(msg)
		if s.bank.Submitted {
			return s.submit(exercise.Response{WordOrder: s.bank.Sentence()})
		}
	}

	return s, cmd
}

func (s *PracticeScreen) moveBlankFocus(delta int) {
	if len(s.blanks) == 0 {
		return
	}
	s.blanks[s.blankFocus].Blur()
	s.blankFocus = (s.blankFocus + delta + len(s.blanks)) % len(s.blanks)
	s.blanks[s.blankFocus].Focus()
}

func (s *PracticeScreen) submitBlanks(q *exercise.Question) (screen.Screen, tea.Cmd) {
	values := make(map[string]string, len(s.blanks))
	for i, b := range q.FillInBlank.Blanks {
		values[b.ID] = s.blanks[i].Value()
	}
	for _, v := range values {
		if v == "" {
			return s, nil
		}
	}
	return s.submit(exercise.Response{Blanks: values})
}

func (s *PracticeScreen) submit(resp exercise.Response) (screen.Screen, tea.Cmd) {
	q := s.state.CurrentQuestion()
	sess.HandleAnswer(s.state, resp)

	// Color the components with the graded result.
	switch q.Type {
	case exercise.TypeMultipleChoice:
		s.mc.MarkResult(q.MultipleChoice.Correct)
	case exercise.TypeFillInBlank:
		for i, b := range q.FillInBlank.Blanks {
			ok := false
			for _, acceptable := range b.Acceptable {
				if resp.Blanks[b.ID] == acceptable {
					ok = true
					break
				}
			}
			s.blanks[i].Submit(ok)
		}
	}

	if s.state.PendingExplanation {
		return s, pollExplanationCmd()
	}
	return s, nil
}

func (s *PracticeScreen) pollExplanation() (screen.Screen, tea.Cmd) {
	if s.state.Explainer == nil || !s.state.PendingExplanation {
		return s, nil
	}
	if x, ok := s.state.Explainer.ConsumeExplanation(); ok {
		s.state.PendingExplanation = false
		return s, func() tea.Msg { return explanationReadyMsg{Explanation: x} }
	}
	return s, pollExplanationCmd()
}

func (s *PracticeScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	correct := s.state.LastOutcome != nil && s.state.LastOutcome.IsCorrect

	if correct {
		s.explanation = nil
		s.state.Advance()
		if s.state.Phase == sess.PhaseSummary {
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		return s, s.setupQuestion()
	}

	// Wrong answer: same question, fresh attempt.
	s.state.Phase = sess.PhaseActive
	s.state.LastFeedback = nil
	s.resetComponent()
	return s, nil
}

func (s *PracticeScreen) resetComponent() {
	q := s.state.CurrentQuestion()
	if q == nil {
		return
	}
	switch q.Type {
	case exercise.TypeMultipleChoice:
		s.mc.Reset()
	case exercise.TypeFillInBlank:
		for i := range s.blanks {
			s.blanks[i].Reset()
		}
	case exercise.TypeDragAndDrop:
		s.board.Reset()
	case exercise.TypeSentenceBuilder:
		s.bank.Reset()
	}
}

func (s *PracticeScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	sess.RecordEnd(s.state)
	s.saveSnapshot(context.Background())

	sum := sess.BuildSummary(s.state)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

// saveSnapshot rebuilds the learner profile from the event log and
// persists it so the next session starts personalized.
func (s *PracticeScreen) saveSnapshot(ctx context.Context) {
	if s.snapRepo == nil || s.state.EventRepo == nil {
		return
	}
	profile, err := learner.BuildProfile(ctx, s.state.EventRepo)
	if err != nil {
		return
	}
	data := store.SnapshotData{
		Version: 1,
		Profile: profile.ToSnapshot(),
	}
	if s.state.Reviews != nil {
		data.Reviews = s.state.Reviews.Snapshot()
	}
	_ = s.snapRepo.Save(ctx, &store.Snapshot{
		Timestamp: time.Now(),
		Data:      data,
	})
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// pollExplanationCmd checks for a finished LLM explanation shortly.
func pollExplanationCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return explanationPollMsg(t)
	})
}
