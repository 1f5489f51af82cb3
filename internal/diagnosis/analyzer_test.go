package diagnosis

import (
	"testing"

	"github.com/abhisek/gramiz/internal/exercise"
)

func fibQuestion(blanks ...exercise.Blank) *exercise.Question {
	return &exercise.Question{
		ID:          "fib",
		Type:        exercise.TypeFillInBlank,
		Prompt:      "fill",
		Points:      10,
		FillInBlank: &exercise.FillInBlankData{Blanks: blanks},
	}
}

func TestAnalyze_SpellingSlip(t *testing.T) {
	q := fibQuestion(exercise.Blank{ID: "b1", Acceptable: []string{"running"}})
	an := NewAnalyzer().Analyze(q, exercise.Response{Blanks: map[string]string{"b1": "runing"}})

	if an.IsCorrect {
		t.Fatal("misspelling is not correct")
	}
	if an.ErrorType != ErrorSpelling {
		t.Errorf("got error type %q, want %q", an.ErrorType, ErrorSpelling)
	}
	if an.PartialCredit != 0.5 {
		t.Errorf("got partial credit %v, want 0.5", an.PartialCredit)
	}
	if an.Severity != SeverityMinor {
		t.Errorf("got severity %q, want %q", an.Severity, SeverityMinor)
	}
}

func TestAnalyze_GrammaticalVariant(t *testing.T) {
	q := fibQuestion(exercise.Blank{ID: "b1", Acceptable: []string{"walk"}})
	an := NewAnalyzer().Analyze(q, exercise.Response{Blanks: map[string]string{"b1": "walking"}})

	if an.ErrorType != ErrorGrammar {
		t.Errorf("got error type %q, want %q", an.ErrorType, ErrorGrammar)
	}
	if an.PartialCredit != 0.7 {
		t.Errorf("got partial credit %v, want 0.7", an.PartialCredit)
	}
}

func TestAnalyze_IrregularPluralVariant(t *testing.T) {
	q := fibQuestion(exercise.Blank{ID: "b1", Acceptable: []string{"children"}})
	an := NewAnalyzer().Analyze(q, exercise.Response{Blanks: map[string]string{"b1": "child"}})

	if an.ErrorType != ErrorGrammar {
		t.Errorf("got error type %q, want %q", an.ErrorType, ErrorGrammar)
	}
}

func TestAnalyze_PlainIncorrectBlank(t *testing.T) {
	q := fibQuestion(exercise.Blank{ID: "b1", Acceptable: []string{"children"}})
	an := NewAnalyzer().Analyze(q, exercise.Response{Blanks: map[string]string{"b1": "zebra"}})

	if an.ErrorType != ErrorIncorrect {
		t.Errorf("got error type %q, want %q", an.ErrorType, ErrorIncorrect)
	}
	if an.Severity != SeverityMajor {
		t.Errorf("got severity %q, want %q", an.Severity, SeverityMajor)
	}
	if an.PartialCredit != 0 {
		t.Errorf("got partial credit %v, want 0", an.PartialCredit)
	}
}

func TestAnalyze_MixedBlanks(t *testing.T) {
	q := fibQuestion(
		exercise.Blank{ID: "b1", Acceptable: []string{"goes"}},
		exercise.Blank{ID: "b2", Acceptable: []string{"running"}},
	)
	an := NewAnalyzer().Analyze(q, exercise.Response{Blanks: map[string]string{
		"b1": "goes",   // correct
		"b2": "runing", // spelling slip
	}})

	// (1 + 0.5) / 2
	if an.PartialCredit != 0.75 {
		t.Errorf("got partial credit %v, want 0.75", an.PartialCredit)
	}
	if len(an.Strengths) == 0 {
		t.Error("partially correct answers should record strengths")
	}
}

func TestAnalyze_CommonMisconception(t *testing.T) {
	q := &exercise.Question{
		ID:     "mc",
		Type:   exercise.TypeMultipleChoice,
		Prompt: "Plural of child?",
		Points: 10,
		MultipleChoice: &exercise.MultipleChoiceData{
			Options: []string{"childs", "children", "kids"},
			Correct: []string{"children"},
		},
	}
	an := NewAnalyzer().Analyze(q, exercise.Response{Selections: []string{"childs"}})

	if an.ErrorType != ErrorMisconception {
		t.Errorf("got error type %q, want %q", an.ErrorType, ErrorMisconception)
	}
	if !an.CommonMistake {
		t.Error("known distractor should set CommonMistake")
	}

	an = NewAnalyzer().Analyze(q, exercise.Response{Selections: []string{"kids"}})
	if an.ErrorType != ErrorIncorrect {
		t.Errorf("unknown wrong answer: got %q, want %q", an.ErrorType, ErrorIncorrect)
	}
	if an.CommonMistake {
		t.Error("unknown wrong answer should not set CommonMistake")
	}
}

func TestAnalyze_DragAndDropSeverity(t *testing.T) {
	q := &exercise.Question{
		ID:     "dnd",
		Type:   exercise.TypeDragAndDrop,
		Prompt: "sort",
		Points: 12,
		DragAndDrop: &exercise.DragAndDropData{
			Items: []exercise.DragItem{
				{ID: "a", Label: "a"}, {ID: "b", Label: "b"},
				{ID: "c", Label: "c"}, {ID: "d", Label: "d"},
			},
			Zones: []exercise.DropZone{
				{ID: "z1", Accepts: []string{"a", "b"}},
				{ID: "z2", Accepts: []string{"c", "d"}},
			},
		},
	}

	// 3 of 4 placed correctly: ratio 0.75 > 0.5 — minor.
	an := NewAnalyzer().Analyze(q, exercise.Response{Placements: map[string][]string{
		"z1": {"a", "b"}, "z2": {"c"},
	}})
	if an.ErrorType != ErrorMisplacement || an.Severity != SeverityMinor {
		t.Errorf("got %q/%q, want misplacement/minor", an.ErrorType, an.Severity)
	}

	// 1 of 4: ratio 0.25 — moderate.
	an = NewAnalyzer().Analyze(q, exercise.Response{Placements: map[string][]string{
		"z1": {"a", "c"}, "z2": {"b"},
	}})
	if an.Severity != SeverityModerate {
		t.Errorf("got severity %q, want %q", an.Severity, SeverityModerate)
	}
}

func sbQuestion() *exercise.Question {
	return &exercise.Question{
		ID:     "sb",
		Type:   exercise.TypeSentenceBuilder,
		Prompt: "build",
		Points: 10,
		SentenceBuilder: &exercise.SentenceBuilderData{
			Words:      []string{"running", "the", "is", "dog"},
			Acceptable: []string{"The dog is running"},
		},
	}
}

func TestAnalyze_WordOrderTranspositions(t *testing.T) {
	// Two transposed words — minor word-order error, but a full multiset
	// match is graded correct by the lenient validator, so force more
	// disorder via a sentence that differs.
	q := sbQuestion()
	q.SentenceBuilder.Acceptable = []string{"The big dog is running fast"}
	q.SentenceBuilder.Words = []string{"the", "big", "dog", "is", "running", "fast"}

	an := NewAnalyzer().Analyze(q, exercise.Response{
		WordOrder: []string{"big", "the", "dog", "is", "running"},
	})
	if an.ErrorType != ErrorWordOrder {
		t.Errorf("got error type %q, want %q", an.ErrorType, ErrorWordOrder)
	}
	if an.Severity != SeverityMinor {
		t.Errorf("2 transpositions: got severity %q, want %q", an.Severity, SeverityMinor)
	}
}

func TestAnalyze_PlausibilityFloor(t *testing.T) {
	q := sbQuestion()
	q.SentenceBuilder.Acceptable = []string{"The dog is running home now"}

	// Out of order but contains a subject-like ("the") and verb-like
	// ("is") token.
	an := NewAnalyzer().Analyze(q, exercise.Response{
		WordOrder: []string{"dog", "the", "is", "running"},
	})
	if an.IsCorrect {
		t.Fatal("should not fully match the longer target")
	}
	if an.PartialCredit < 0.7 {
		t.Errorf("plausible sentence should floor partial credit at 0.7, got %v", an.PartialCredit)
	}
}

func TestAnalyze_MalformedQuestion(t *testing.T) {
	q := &exercise.Question{ID: "bad", Type: exercise.TypeSentenceBuilder, Points: 5}
	an := NewAnalyzer().Analyze(q, exercise.Response{})
	if an.ErrorType != ErrorIncorrect || an.Severity != SeverityMajor {
		t.Errorf("malformed question: got %q/%q, want incorrect/major", an.ErrorType, an.Severity)
	}
	if len(an.SpecificIssues) == 0 {
		t.Error("malformed question should explain itself")
	}
}

func TestAnalyze_CorrectAnswer(t *testing.T) {
	q := fibQuestion(exercise.Blank{ID: "b1", Acceptable: []string{"goes"}})
	an := NewAnalyzer().Analyze(q, exercise.Response{Blanks: map[string]string{"b1": "goes"}})
	if !an.IsCorrect || an.ErrorType != ErrorNone || an.PartialCredit != 1 {
		t.Errorf("correct answer: got %+v", an)
	}
}
