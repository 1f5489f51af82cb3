// Package feedback composes the user-facing response to a graded
// submission: diagnosis, hint state, attempt history, and an optional
// learner profile go in, one Generated message comes out. Composition is
// entirely rule-based; the optional Explainer adds LLM-written
// explanations asynchronously.
package feedback

import (
	"fmt"
	"time"

	"github.com/abhisek/gramiz/internal/diagnosis"
	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/hints"
	"github.com/abhisek/gramiz/internal/learner"
)

// Type classifies a feedback message.
type Type string

const (
	TypeCorrect     Type = "correct"
	TypeIncorrect   Type = "incorrect"
	TypePartial     Type = "partial"
	TypeHint        Type = "hint"
	TypeExplanation Type = "explanation"
)

// Tone selects the register of encouragement lines.
type Tone string

const (
	ToneFormal      Tone = "formal"
	ToneCasual      Tone = "casual"
	ToneEncouraging Tone = "encouraging"
)

// Generated is the composed feedback for one submission.
type Generated struct {
	Type    Type
	Title   string
	Message string

	// Details lists the specific issues found, one entry per problem.
	Details []string

	Encouragement string
	NextSteps     string

	// VisualAid is an asset key for the presentation layer; empty when no
	// aid applies.
	VisualAid string

	RelatedConcepts []string

	Severity diagnosis.Severity

	// Confidence is how sure the diagnosis behind this message is, in
	// [0, 1].
	Confidence float64
}

// Context carries everything the composer needs about one attempt. The
// session layer fills it in; this package never reads a data store.
type Context struct {
	Question *exercise.Question
	Analysis *diagnosis.Analysis

	// AttemptNumber is 1-based.
	AttemptNumber int

	// HintsUsed counts hints revealed before this attempt.
	HintsUsed int

	TimeSpent time.Duration

	// Profile is optional; when present it personalizes wording.
	Profile *learner.Profile
}

// Options controls which composition stages run.
type Options struct {
	EnableAdaptive        bool
	EnableEncouragement   bool
	EnableVisualAids      bool
	EnableRelatedConcepts bool
	Tone                  Tone
	MaxHints              int
}

// DefaultOptions enables every stage with an encouraging tone.
func DefaultOptions() Options {
	return Options{
		EnableAdaptive:        true,
		EnableEncouragement:   true,
		EnableVisualAids:      true,
		EnableRelatedConcepts: true,
		Tone:                  ToneEncouraging,
		MaxHints:              hints.DefaultMaxHints,
	}
}

// Generate composes feedback from a diagnosed attempt. A nil Analysis is
// treated as a plain incorrect outcome.
func Generate(ctx Context, opts Options) *Generated {
	analysis := ctx.Analysis
	if analysis == nil {
		analysis = &diagnosis.Analysis{
			ErrorType: diagnosis.ErrorIncorrect,
			Severity:  diagnosis.SeverityMajor,
		}
	}
	if ctx.AttemptNumber < 1 {
		ctx.AttemptNumber = 1
	}

	fb := &Generated{
		Type:       outcomeType(analysis),
		Details:    analysis.SpecificIssues,
		Severity:   analysis.Severity,
		Confidence: confidence(analysis),
	}
	fb.Title, fb.Message = baseMessage(fb.Type, analysis, ctx)

	if opts.EnableRelatedConcepts && fb.Type != TypeCorrect {
		fb.RelatedConcepts = relatedConcepts(ctx.Question, analysis.ErrorType)
	}

	if opts.EnableAdaptive && ctx.Profile != nil {
		fb.Message += personalization(ctx.Profile, analysis)
	}

	if opts.EnableVisualAids && fb.Type != TypeCorrect {
		if analysis.Severity == diagnosis.SeverityMajor || ctx.AttemptNumber > 2 {
			fb.VisualAid = visualAidKey(ctx.Question, analysis.ErrorType)
		}
	}

	if opts.EnableEncouragement && fb.Type != TypeCorrect {
		fb.Encouragement = encouragement(opts.Tone, ctx.AttemptNumber)
	}

	fb.NextSteps = nextSteps(fb.Type, ctx)
	return fb
}

// outcomeType maps a diagnosis to the feedback type: correct, partial
// above half credit, incorrect otherwise.
func outcomeType(a *diagnosis.Analysis) Type {
	switch {
	case a.IsCorrect:
		return TypeCorrect
	case a.PartialCredit > 0.5:
		return TypePartial
	default:
		return TypeIncorrect
	}
}

func confidence(a *diagnosis.Analysis) float64 {
	switch {
	case a.IsCorrect:
		return 1.0
	case a.CommonMistake:
		return 0.9
	default:
		return 0.75
	}
}

func visualAidKey(q *exercise.Question, errType diagnosis.ErrorType) string {
	if q == nil {
		return fmt.Sprintf("guide/%s", errType)
	}
	return fmt.Sprintf("guide/%s/%s", q.Type, errType)
}

// FromHint wraps a revealed hint as feedback so it renders through the
// same presentation path as graded results.
func FromHint(h *hints.Hint, remaining int) *Generated {
	return &Generated{
		Type:       TypeHint,
		Title:      fmt.Sprintf("Hint %d", h.Level+1),
		Message:    h.Content,
		NextSteps:  fmt.Sprintf("%d hint(s) remaining. Try the question again.", remaining),
		Confidence: 1.0,
	}
}
