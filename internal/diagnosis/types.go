// Package diagnosis produces a structured explanation of why an answer is
// wrong. It shares inputs with the grading package but optimizes for
// diagnostic quality over compact scoring; the feedback layer consumes its
// output. All checks are shallow rule-based heuristics.
package diagnosis

// ErrorType classifies the nature of a wrong answer.
type ErrorType string

const (
	ErrorSpelling      ErrorType = "spelling"
	ErrorGrammar       ErrorType = "grammar"
	ErrorWordOrder     ErrorType = "word_order"
	ErrorMisplacement  ErrorType = "misplacement"
	ErrorIncorrect     ErrorType = "incorrect"
	ErrorMisconception ErrorType = "common_misconception"
	ErrorNone          ErrorType = ""
)

// Severity grades how far off the answer was.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

// Analysis is the diagnostic result for one submission. Transient,
// computed per submission.
type Analysis struct {
	IsCorrect bool

	// PartialCredit is the diagnostic credit estimate in [0, 1]. Unlike
	// grading, near-misses (spelling slips, grammatical variants) earn
	// fractional weight here.
	PartialCredit float64

	// ErrorType is the primary classification; ErrorNone when correct.
	ErrorType ErrorType

	// Severity is set for wrong answers.
	Severity Severity

	// CommonMistake is true when the answer matches a known distractor.
	CommonMistake bool

	// SpecificIssues describes what went wrong, one entry per problem.
	SpecificIssues []string

	// Strengths describes what the learner got right.
	Strengths []string
}

// Per-blank diagnostic credit weights. A spelling slip shows the learner
// knew the word; a grammatical variant shows they nearly had the form.
const (
	spellingWeight = 0.5
	grammarWeight  = 0.7
)

// plausibilityFloor is the minimum partial credit for a sentence that is
// out of target order but still grammatically plausible.
const plausibilityFloor = 0.7
