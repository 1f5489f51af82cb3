// Package session orchestrates a practice run: it walks a content pack's
// questions, routes each submission through grading, diagnosis, and
// feedback, advances hint sequences, and appends events to the store.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/gramiz/internal/diagnosis"
	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/feedback"
	"github.com/abhisek/gramiz/internal/grading"
	"github.com/abhisek/gramiz/internal/hints"
	"github.com/abhisek/gramiz/internal/learner"
	"github.com/abhisek/gramiz/internal/review"
	"github.com/abhisek/gramiz/internal/store"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseActive   Phase = iota // Serving questions
	PhaseFeedback              // Showing answer feedback
	PhaseSummary               // Showing summary screen
)

// Config bundles the per-session option surfaces.
type Config struct {
	Grading  grading.Options
	Feedback feedback.Options

	// MaxHints caps hints per question (0 = default cap).
	MaxHints int

	// Adaptive enables profile-aware hint selection.
	Adaptive bool

	// ExplainAfterWrong is how many wrong attempts on one question
	// trigger an async LLM explanation (0 disables).
	ExplainAfterWrong int
}

// DefaultConfig returns the standard session settings.
func DefaultConfig() Config {
	return Config{
		Grading: grading.Options{
			AllowPartialCredit: true,
			ProvideFeedback:    true,
		},
		Feedback:          feedback.DefaultOptions(),
		Adaptive:          true,
		ExplainAfterWrong: 2,
	}
}

// TopicResult tracks per-topic performance within a single session.
type TopicResult struct {
	Topic     string
	Attempted int
	Correct   int
}

// State tracks the runtime state of an active session.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Pack is the content pack being practiced.
	Pack *exercise.Pack

	// CurrentIndex is the index into Pack.Questions.
	CurrentIndex int

	// AttemptNumber is the 1-based attempt count on the current question.
	AttemptNumber int

	// HintSeq is the hint sequence for the current question, built
	// lazily on the first hint request.
	HintSeq *hints.Sequence

	// HintsThisQuestion counts hints revealed on the current question.
	HintsThisQuestion int

	// TotalQuestions counts questions answered (first attempts).
	TotalQuestions int

	// TotalCorrect counts questions eventually answered correctly.
	TotalCorrect int

	// TotalHints counts hints revealed across the session.
	TotalHints int

	// PerTopicResults tracks per-topic stats for the summary screen.
	PerTopicResults map[string]*TopicResult

	// Results records the final per-question outcome in order.
	Results []learner.Result

	// Profile is the learner profile loaded at session start (may be nil).
	Profile *learner.Profile

	// StartTime is when the session began.
	StartTime time.Time

	// QuestionStartTime tracks when the current question was first shown.
	QuestionStartTime time.Time

	// Elapsed tracks total elapsed time.
	Elapsed time.Duration

	// Phase is the current session phase.
	Phase Phase

	// LastOutcome, LastAnalysis, and LastFeedback hold the most recent
	// grading results for the feedback display.
	LastOutcome  *grading.Outcome
	LastAnalysis *diagnosis.Analysis
	LastFeedback *feedback.Generated

	// ShowingQuitConfirm is true when the quit dialog is displayed.
	ShowingQuitConfirm bool

	// PendingExplanation is true when an LLM explanation has been
	// requested but not yet consumed.
	PendingExplanation bool

	// Analyzer runs the diagnostic pass.
	Analyzer *diagnosis.Analyzer

	// EventRepo persists answer, hint, and session events (nil disables
	// persistence).
	EventRepo store.EventRepo

	// Explainer generates LLM explanations (nil disables).
	Explainer *feedback.Explainer

	// Reviews tracks the spaced-review schedule per topic, updated on
	// first attempts (nil disables).
	Reviews *review.Scheduler

	Config Config
}

// NewState creates a session over a pack with a fresh session ID.
func NewState(pack *exercise.Pack, profile *learner.Profile, cfg Config) *State {
	now := time.Now()
	return &State{
		SessionID:         uuid.NewString(),
		Pack:              pack,
		AttemptNumber:     1,
		PerTopicResults:   make(map[string]*TopicResult),
		Profile:           profile,
		StartTime:         now,
		QuestionStartTime: now,
		Phase:             PhaseActive,
		Analyzer:          diagnosis.NewAnalyzer(),
		Config:            cfg,
	}
}

// CurrentQuestion returns the active question, or nil past the end.
func (s *State) CurrentQuestion() *exercise.Question {
	if s.Pack == nil || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Pack.Questions) {
		return nil
	}
	return &s.Pack.Questions[s.CurrentIndex]
}

// Advance moves to the next question, resetting per-question state.
// Returns false when the pack is exhausted.
func (s *State) Advance() bool {
	s.CurrentIndex++
	s.AttemptNumber = 1
	s.HintSeq = nil
	s.HintsThisQuestion = 0
	s.LastOutcome = nil
	s.LastAnalysis = nil
	s.LastFeedback = nil
	s.PendingExplanation = false
	s.QuestionStartTime = time.Now()

	if s.CurrentQuestion() == nil {
		s.Phase = PhaseSummary
		return false
	}
	s.Phase = PhaseActive
	return true
}
