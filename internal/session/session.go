package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/gramiz/internal/diagnosis"
	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/feedback"
	"github.com/abhisek/gramiz/internal/grading"
	"github.com/abhisek/gramiz/internal/hints"
	"github.com/abhisek/gramiz/internal/learner"
	"github.com/abhisek/gramiz/internal/store"
)

// HandleAnswer grades a submission, diagnoses it, and composes feedback.
// Session tallies and the event log are updated as side effects. Returns
// nil when no question is active.
func HandleAnswer(state *State, resp exercise.Response) *feedback.Generated {
	q := state.CurrentQuestion()
	if q == nil {
		return nil
	}

	outcome := grading.Validate(q, resp, state.Config.Grading)
	analysis := state.Analyzer.Analyze(q, resp)

	if state.AttemptNumber == 1 {
		state.TotalQuestions++
		tr := state.PerTopicResults[q.Topic]
		if tr == nil {
			tr = &TopicResult{Topic: q.Topic}
			state.PerTopicResults[q.Topic] = tr
		}
		tr.Attempted++
		if state.Reviews != nil {
			state.Reviews.Record(q.Topic, outcome.IsCorrect, time.Now())
		}
	}
	if outcome.IsCorrect {
		state.TotalCorrect++
		if tr := state.PerTopicResults[q.Topic]; tr != nil {
			tr.Correct++
		}
		state.Results = append(state.Results, learner.Result{Correct: true})
	}

	fb := feedback.Generate(feedback.Context{
		Question:      q,
		Analysis:      &analysis,
		AttemptNumber: state.AttemptNumber,
		HintsUsed:     state.HintsThisQuestion,
		TimeSpent:     time.Since(state.QuestionStartTime),
		Profile:       state.Profile,
	}, state.Config.Feedback)

	state.LastOutcome = &outcome
	state.LastAnalysis = &analysis
	state.LastFeedback = fb
	state.Phase = PhaseFeedback

	appendAnswerEvent(state, q, resp, outcome, analysis)

	if !outcome.IsCorrect {
		maybeRequestExplanation(state, q, resp, analysis)
		state.AttemptNumber++
	}

	return fb
}

// GiveUp records the current question as missed and moves on.
func GiveUp(state *State) {
	if state.CurrentQuestion() == nil {
		return
	}
	state.Results = append(state.Results, learner.Result{Correct: false})
	state.Advance()
}

// RequestHint advances the hint sequence for the current question and
// returns the hint wrapped as feedback, or nil once hints are exhausted.
func RequestHint(state *State) *feedback.Generated {
	q := state.CurrentQuestion()
	if q == nil {
		return nil
	}

	if state.HintSeq == nil {
		state.HintSeq = hints.BuildSequence(q, state.Config.MaxHints, state.Config.Adaptive)
	}

	h := state.HintSeq.Next(state.Profile)
	if h == nil {
		return nil
	}
	state.HintsThisQuestion++
	state.TotalHints++

	if state.EventRepo != nil {
		err := state.EventRepo.AppendHintEvent(context.Background(), store.HintEventData{
			SessionID:        state.SessionID,
			QuestionID:       q.ID,
			Level:            h.Level,
			HintType:         string(h.Type),
			Category:         h.Category,
			RevealPercentage: h.RevealPercentage,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log hint event: %v\n", err)
		}
	}

	return feedback.FromHint(h, state.HintSeq.Remaining())
}

// RecordStart appends the session start event.
func RecordStart(state *State) {
	if state.EventRepo == nil {
		return
	}
	err := state.EventRepo.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID: state.SessionID,
		Action:    "start",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log session start: %v\n", err)
	}
}

// RecordEnd appends the session end event with final tallies.
func RecordEnd(state *State) {
	state.Elapsed = time.Since(state.StartTime)
	if state.EventRepo == nil {
		return
	}
	err := state.EventRepo.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:       state.SessionID,
		Action:          "end",
		QuestionsServed: state.TotalQuestions,
		CorrectAnswers:  state.TotalCorrect,
		HintsUsed:       state.TotalHints,
		DurationSecs:    int64(state.Elapsed.Seconds()),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log session end: %v\n", err)
	}
}

func appendAnswerEvent(state *State, q *exercise.Question, resp exercise.Response, outcome grading.Outcome, analysis diagnosis.Analysis) {
	if state.EventRepo == nil {
		return
	}
	err := state.EventRepo.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:     state.SessionID,
		QuestionID:    q.ID,
		QuestionType:  string(q.Type),
		Topic:         q.Topic,
		Answer:        ResponseText(q, resp),
		Correct:       outcome.IsCorrect,
		Points:        outcome.Points,
		MaxPoints:     outcome.MaxPoints,
		PartialCredit: outcome.PartialCredit,
		ErrorType:     string(analysis.ErrorType),
		Severity:      string(analysis.Severity),
		AttemptNumber: state.AttemptNumber,
		HintsUsed:     state.HintsThisQuestion,
		TimeMs:        time.Since(state.QuestionStartTime).Milliseconds(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log answer event: %v\n", err)
	}
}

func maybeRequestExplanation(state *State, q *exercise.Question, resp exercise.Response, analysis diagnosis.Analysis) {
	threshold := state.Config.ExplainAfterWrong
	if threshold <= 0 || state.Explainer == nil || state.PendingExplanation {
		return
	}
	if state.AttemptNumber < threshold {
		return
	}
	state.PendingExplanation = true
	a := analysis
	state.Explainer.RequestExplanation(context.Background(), feedback.ExplainInput{
		Question: q,
		Answer:   ResponseText(q, resp),
		Analysis: &a,
	})
}

// ResponseText flattens a submission into a single display string for
// event logging and LLM prompts.
func ResponseText(q *exercise.Question, resp exercise.Response) string {
	switch q.Type {
	case exercise.TypeMultipleChoice:
		return strings.Join(resp.Selections, ", ")
	case exercise.TypeFillInBlank:
		parts := make([]string, 0, len(q.FillInBlank.Blanks))
		for _, b := range q.FillInBlank.Blanks {
			parts = append(parts, fmt.Sprintf("%s=%s", b.ID, resp.Blanks[b.ID]))
		}
		return strings.Join(parts, ", ")
	case exercise.TypeDragAndDrop:
		parts := make([]string, 0, len(q.DragAndDrop.Zones))
		for _, z := range q.DragAndDrop.Zones {
			parts = append(parts, fmt.Sprintf("%s=[%s]", z.ID, strings.Join(resp.Placements[z.ID], " ")))
		}
		return strings.Join(parts, ", ")
	case exercise.TypeSentenceBuilder:
		return strings.Join(resp.WordOrder, " ")
	default:
		return ""
	}
}
