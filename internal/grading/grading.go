// Package grading scores learner submissions. Validate dispatches on the
// question type and always returns a usable outcome: malformed question
// data degrades to a zero-score result with diagnostic details instead of
// crossing the boundary as a panic or error, so one bad question cannot
// take down a grading batch.
package grading

import (
	"fmt"
	"math"

	"github.com/abhisek/gramiz/internal/exercise"
)

// Options configures a single validation call. The zero value grades
// all-or-nothing, case-insensitively, with lenient sentence matching and
// no feedback string.
type Options struct {
	// AllowPartialCredit enables fractional scoring for question types
	// that support it. Without it, scoring is all-or-nothing.
	AllowPartialCredit bool

	// CaseSensitive overrides the per-blank (and per-question) default
	// and forces exact-case comparison everywhere.
	CaseSensitive bool

	// StrictMatching requires exact word order for sentence builder.
	// Without it, a word-multiset match also counts as correct.
	StrictMatching bool

	// ProvideFeedback emits the human-readable Feedback string.
	ProvideFeedback bool
}

// Outcome is the result of grading one submission. Created fresh per call
// and never persisted by this package.
type Outcome struct {
	IsCorrect bool
	Points    float64
	MaxPoints float64

	// Feedback is a short human-readable summary. Empty unless
	// Options.ProvideFeedback was set.
	Feedback string

	// PartialCredit is the fraction of the question answered correctly,
	// clamped to [0, 1]. 1 when fully correct. Only drives Points when
	// Options.AllowPartialCredit is set.
	PartialCredit float64

	// ErrorDetails lists per-part problems (failed blanks, misplaced
	// items) or, for malformed input, what was wrong with the question.
	ErrorDetails []string
}

// Validate grades a submission against a question. It never panics across
// this boundary: malformed question data yields a zero-score outcome with
// ErrorDetails populated, which the caller may surface or retry.
func Validate(q *exercise.Question, resp exercise.Response, opts Options) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = malformedOutcome(q, fmt.Sprintf("internal grading error: %v", r))
		}
	}()

	if q == nil {
		return malformedOutcome(nil, "question is nil")
	}
	if err := q.CheckShape(); err != nil {
		return malformedOutcome(q, err.Error())
	}

	switch q.Type {
	case exercise.TypeMultipleChoice:
		out = validateMultipleChoice(q, resp, opts)
	case exercise.TypeFillInBlank:
		out = validateFillInBlank(q, resp, opts)
	case exercise.TypeDragAndDrop:
		out = validateDragAndDrop(q, resp, opts)
	case exercise.TypeSentenceBuilder:
		out = validateSentenceBuilder(q, resp, opts)
	default:
		return malformedOutcome(q, fmt.Sprintf("unsupported question type: %q", q.Type))
	}

	clampOutcome(&out)
	if opts.ProvideFeedback {
		out.Feedback = summarize(out)
	}
	return out
}

func malformedOutcome(q *exercise.Question, detail string) Outcome {
	out := Outcome{ErrorDetails: []string{detail}}
	if q != nil {
		out.MaxPoints = q.Points
	}
	return out
}

// clampOutcome enforces the scoring invariants: PartialCredit in [0,1],
// Points in [0, MaxPoints], full points on a correct answer.
func clampOutcome(out *Outcome) {
	if out.PartialCredit < 0 {
		out.PartialCredit = 0
	}
	if out.PartialCredit > 1 {
		out.PartialCredit = 1
	}
	if out.IsCorrect {
		out.PartialCredit = 1
		out.Points = out.MaxPoints
	}
	if out.Points < 0 {
		out.Points = 0
	}
	if out.Points > out.MaxPoints {
		out.Points = out.MaxPoints
	}
}

func summarize(out Outcome) string {
	switch {
	case out.IsCorrect:
		return "Correct!"
	case out.Points > 0:
		return fmt.Sprintf("Partially correct: %.2f of %.2f points.", out.Points, out.MaxPoints)
	case len(out.ErrorDetails) > 0:
		return "Not quite: " + out.ErrorDetails[0]
	default:
		return "Not quite. Try again."
	}
}

// round2 rounds to 2 decimal places for point arithmetic.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
