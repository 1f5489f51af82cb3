package diagnosis

import (
	"fmt"
	"strings"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/grading"
	"github.com/abhisek/gramiz/internal/textsim"
)

// Analyzer runs the diagnostic pass. Zero-value Analyzer uses the seeded
// distractor registry; inject a DistractorSource for authored lists.
type Analyzer struct {
	Distractors DistractorSource
}

// NewAnalyzer creates an Analyzer with the default distractor registry.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Distractors: DefaultDistractors()}
}

// Analyze diagnoses a submission. Like grading.Validate it never panics
// across the boundary: malformed questions come back as a major
// "incorrect" analysis with the problem in SpecificIssues.
func (a *Analyzer) Analyze(q *exercise.Question, resp exercise.Response) (an Analysis) {
	defer func() {
		if r := recover(); r != nil {
			an = Analysis{
				ErrorType:      ErrorIncorrect,
				Severity:       SeverityMajor,
				SpecificIssues: []string{fmt.Sprintf("internal analysis error: %v", r)},
			}
		}
	}()

	if q == nil {
		return Analysis{
			ErrorType:      ErrorIncorrect,
			Severity:       SeverityMajor,
			SpecificIssues: []string{"question is nil"},
		}
	}
	if err := q.CheckShape(); err != nil {
		return Analysis{
			ErrorType:      ErrorIncorrect,
			Severity:       SeverityMajor,
			SpecificIssues: []string{err.Error()},
		}
	}

	switch q.Type {
	case exercise.TypeMultipleChoice:
		an = a.analyzeMultipleChoice(q, resp)
	case exercise.TypeFillInBlank:
		an = a.analyzeFillInBlank(q, resp)
	case exercise.TypeDragAndDrop:
		an = a.analyzeDragAndDrop(q, resp)
	case exercise.TypeSentenceBuilder:
		an = a.analyzeSentenceBuilder(q, resp)
	}

	if an.PartialCredit < 0 {
		an.PartialCredit = 0
	}
	if an.PartialCredit > 1 {
		an.PartialCredit = 1
	}
	return an
}

func (a *Analyzer) analyzeMultipleChoice(q *exercise.Question, resp exercise.Response) Analysis {
	out := grading.Validate(q, resp, grading.Options{})
	if out.IsCorrect {
		return correctAnalysis("picked the right option")
	}

	an := Analysis{
		ErrorType: ErrorIncorrect,
		Severity:  SeverityMajor,
	}
	for _, sel := range resp.Selections {
		if isKnownDistractor(a.Distractors, sel, q.MultipleChoice.Correct) {
			an.ErrorType = ErrorMisconception
			an.Severity = SeverityModerate
			an.CommonMistake = true
			an.SpecificIssues = append(an.SpecificIssues, fmt.Sprintf(
				"%q is a common mix-up for this one", sel))
			return an
		}
	}
	an.SpecificIssues = append(an.SpecificIssues, "selected option is not correct")
	return an
}

func (a *Analyzer) analyzeFillInBlank(q *exercise.Question, resp exercise.Response) Analysis {
	d := q.FillInBlank

	var an Analysis
	credit := 0.0
	correct := 0
	worst := SeverityMinor

	for _, blank := range d.Blanks {
		answer := strings.TrimSpace(resp.Blanks[blank.ID])
		if matchesAcceptable(blank, answer) {
			correct++
			credit++
			continue
		}

		kind, issue := classifyBlank(blank, answer)
		if isKnownDistractor(a.Distractors, answer, blank.Acceptable) {
			an.CommonMistake = true
		}
		an.SpecificIssues = append(an.SpecificIssues, issue)

		// The primary error type is the first wrong blank's class.
		if an.ErrorType == ErrorNone {
			an.ErrorType = kind
		}

		switch kind {
		case ErrorSpelling:
			credit += spellingWeight
		case ErrorGrammar:
			credit += grammarWeight
			worst = maxSeverity(worst, SeverityModerate)
		default:
			worst = SeverityMajor
		}
	}

	total := len(d.Blanks)
	if correct == total {
		return correctAnalysis("filled every blank correctly")
	}

	an.IsCorrect = false
	an.PartialCredit = credit / float64(total)
	an.Severity = worst
	if correct > 0 {
		an.Strengths = append(an.Strengths, fmt.Sprintf("%d of %d blanks correct", correct, total))
	}
	return an
}

// classifyBlank decides why one blank is wrong: a spelling slip (small
// edit distance to an acceptable answer), a grammatical variant of one,
// or plain incorrect.
func classifyBlank(blank exercise.Blank, answer string) (ErrorType, string) {
	if answer == "" {
		return ErrorIncorrect, fmt.Sprintf("blank %s left empty", blank.ID)
	}
	for _, acceptable := range blank.Acceptable {
		if textsim.IsSpellingSlip(answer, acceptable) {
			return ErrorSpelling, fmt.Sprintf(
				"blank %s: %q looks like a misspelling of %q", blank.ID, answer, acceptable)
		}
	}
	for _, acceptable := range blank.Acceptable {
		if textsim.IsVariantOf(answer, acceptable) {
			return ErrorGrammar, fmt.Sprintf(
				"blank %s: %q is a grammatical variant of %q", blank.ID, answer, acceptable)
		}
	}
	return ErrorIncorrect, fmt.Sprintf("blank %s: %q is not an accepted answer", blank.ID, answer)
}

func matchesAcceptable(blank exercise.Blank, answer string) bool {
	if answer == "" {
		return false
	}
	for _, acceptable := range blank.Acceptable {
		if blank.CaseSensitive {
			if answer == strings.TrimSpace(acceptable) {
				return true
			}
		} else if strings.EqualFold(answer, strings.TrimSpace(acceptable)) {
			return true
		}
	}
	return false
}

func (a *Analyzer) analyzeDragAndDrop(q *exercise.Question, resp exercise.Response) Analysis {
	out := grading.Validate(q, resp, grading.Options{AllowPartialCredit: true})
	if out.IsCorrect {
		return correctAnalysis("every item placed in the right zone")
	}

	an := Analysis{
		ErrorType:      ErrorMisplacement,
		PartialCredit:  out.PartialCredit,
		SpecificIssues: out.ErrorDetails,
	}
	if out.PartialCredit > 0.5 {
		an.Severity = SeverityMinor
		an.Strengths = append(an.Strengths, "most items placed correctly")
	} else {
		an.Severity = SeverityModerate
	}
	return an
}

func (a *Analyzer) analyzeSentenceBuilder(q *exercise.Question, resp exercise.Response) Analysis {
	d := q.SentenceBuilder
	out := grading.Validate(q, resp, grading.Options{})
	if out.IsCorrect {
		return correctAnalysis("built a correct sentence")
	}

	candidate := strings.Join(resp.WordOrder, " ")
	an := Analysis{
		ErrorType:     ErrorIncorrect,
		Severity:      SeverityMajor,
		PartialCredit: textsim.WordOverlap(candidate, d.Acceptable[0]),
	}

	wantWords := textsim.Words(d.Acceptable[0])
	transposed := textsim.Transpositions(resp.WordOrder, wantWords)
	if len(transposed) > 0 {
		an.ErrorType = ErrorWordOrder
		if len(transposed) <= 2 {
			an.Severity = SeverityMinor
		} else {
			an.Severity = SeverityModerate
		}
		an.SpecificIssues = append(an.SpecificIssues, fmt.Sprintf(
			"%d words are in the wrong position", len(transposed)))
	} else {
		an.SpecificIssues = append(an.SpecificIssues, "sentence does not match the target")
	}

	// An out-of-order sentence that still reads as subject + verb keeps
	// most of its credit.
	if isPlausibleSentence(resp.WordOrder) {
		an.Strengths = append(an.Strengths, "the sentence is grammatically plausible")
		if an.PartialCredit < plausibilityFloor {
			an.PartialCredit = plausibilityFloor
		}
	}
	return an
}

func correctAnalysis(strength string) Analysis {
	return Analysis{
		IsCorrect:     true,
		PartialCredit: 1,
		Strengths:     []string{strength},
	}
}

func maxSeverity(a, b Severity) Severity {
	rank := map[Severity]int{SeverityMinor: 0, SeverityModerate: 1, SeverityMajor: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
