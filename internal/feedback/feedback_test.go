package feedback

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/gramiz/internal/diagnosis"
	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/hints"
	"github.com/abhisek/gramiz/internal/learner"
)

func fibQuestion() *exercise.Question {
	return &exercise.Question{
		ID:     "q1",
		Type:   exercise.TypeFillInBlank,
		Prompt: "The ___ are playing.",
		Topic:  "plurals",
		Points: 5,
		FillInBlank: &exercise.FillInBlankData{
			Blanks: []exercise.Blank{{ID: "b1", Acceptable: []string{"children"}}},
		},
	}
}

func correctAnalysis() *diagnosis.Analysis {
	return &diagnosis.Analysis{IsCorrect: true, PartialCredit: 1}
}

func wrongAnalysis(errType diagnosis.ErrorType, sev diagnosis.Severity) *diagnosis.Analysis {
	return &diagnosis.Analysis{
		ErrorType:      errType,
		Severity:       sev,
		SpecificIssues: []string{"blank b1: expected one of [children]"},
	}
}

func TestGenerate_CorrectFirstTry(t *testing.T) {
	fb := Generate(Context{
		Question:      fibQuestion(),
		Analysis:      correctAnalysis(),
		AttemptNumber: 1,
	}, DefaultOptions())

	if fb.Type != TypeCorrect {
		t.Fatalf("got type %q, want correct", fb.Type)
	}
	if fb.Title != "Perfect!" {
		t.Errorf("first try with no hints: got title %q, want Perfect!", fb.Title)
	}
	if fb.Encouragement != "" {
		t.Error("correct outcome should carry no encouragement line")
	}
	if fb.NextSteps != "Move on to the next question." {
		t.Errorf("got next steps %q", fb.NextSteps)
	}
	if fb.Confidence != 1.0 {
		t.Errorf("got confidence %v, want 1", fb.Confidence)
	}
}

func TestGenerate_CorrectDegradesWithHints(t *testing.T) {
	fb := Generate(Context{
		Question:      fibQuestion(),
		Analysis:      correctAnalysis(),
		AttemptNumber: 1,
		HintsUsed:     2,
	}, DefaultOptions())

	if fb.Title != "Correct!" {
		t.Errorf("correct with hints used: got title %q, want Correct!", fb.Title)
	}
}

func TestGenerate_PartialAboveHalf(t *testing.T) {
	a := wrongAnalysis(diagnosis.ErrorGrammar, diagnosis.SeverityModerate)
	a.PartialCredit = 0.7

	fb := Generate(Context{Question: fibQuestion(), Analysis: a, AttemptNumber: 1}, DefaultOptions())
	if fb.Type != TypePartial {
		t.Errorf("partial credit 0.7: got type %q, want partial", fb.Type)
	}
	if !strings.Contains(fb.Message, "70%") {
		t.Errorf("partial message should carry the percentage, got %q", fb.Message)
	}
}

func TestGenerate_HalfCreditIsIncorrect(t *testing.T) {
	a := wrongAnalysis(diagnosis.ErrorIncorrect, diagnosis.SeverityModerate)
	a.PartialCredit = 0.5

	fb := Generate(Context{Question: fibQuestion(), Analysis: a, AttemptNumber: 1}, DefaultOptions())
	if fb.Type != TypeIncorrect {
		t.Errorf("partial credit at exactly 0.5: got type %q, want incorrect", fb.Type)
	}
}

func TestGenerate_CommonMistakeWording(t *testing.T) {
	a := wrongAnalysis(diagnosis.ErrorMisconception, diagnosis.SeverityModerate)
	a.CommonMistake = true

	fb := Generate(Context{Question: fibQuestion(), Analysis: a, AttemptNumber: 1}, DefaultOptions())
	if fb.Title != "A classic mix-up" {
		t.Errorf("got title %q", fb.Title)
	}
	if fb.Confidence != 0.9 {
		t.Errorf("known distractor should raise confidence to 0.9, got %v", fb.Confidence)
	}
}

func TestGenerate_RelatedConcepts(t *testing.T) {
	fb := Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorGrammar, diagnosis.SeverityModerate),
		AttemptNumber: 1,
	}, DefaultOptions())

	found := false
	for _, c := range fb.RelatedConcepts {
		if c == "verb forms" {
			found = true
		}
	}
	if !found {
		t.Errorf("grammar error should relate to verb forms, got %v", fb.RelatedConcepts)
	}
	// The question topic rides along.
	if fb.RelatedConcepts[len(fb.RelatedConcepts)-1] != "plurals" {
		t.Errorf("question topic should be appended, got %v", fb.RelatedConcepts)
	}

	opts := DefaultOptions()
	opts.EnableRelatedConcepts = false
	fb = Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorGrammar, diagnosis.SeverityModerate),
		AttemptNumber: 1,
	}, opts)
	if fb.RelatedConcepts != nil {
		t.Error("disabled related concepts should stay nil")
	}
}

func TestGenerate_VisualLearnerPersonalization(t *testing.T) {
	profile := &learner.Profile{PreferredHintStyle: learner.HintStyleVisual}
	fb := Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorSpelling, diagnosis.SeverityMinor),
		AttemptNumber: 1,
		Profile:       profile,
	}, DefaultOptions())

	if !strings.Contains(fb.Message, "visual guide") {
		t.Errorf("visual learner should be pointed at the visual guide, got %q", fb.Message)
	}
}

func TestGenerate_RecurringMistakePersonalization(t *testing.T) {
	profile := &learner.Profile{CommonMistakes: []learner.ErrorPattern{
		{Type: "spelling", Frequency: 3, LastOccurrence: time.Now()},
	}}
	fb := Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorSpelling, diagnosis.SeverityMinor),
		AttemptNumber: 1,
		Profile:       profile,
	}, DefaultOptions())

	if !strings.Contains(fb.Message, "pattern we've seen before") {
		t.Errorf("recurring mistake should be called out, got %q", fb.Message)
	}

	opts := DefaultOptions()
	opts.EnableAdaptive = false
	fb = Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorSpelling, diagnosis.SeverityMinor),
		AttemptNumber: 1,
		Profile:       profile,
	}, opts)
	if strings.Contains(fb.Message, "pattern we've seen before") {
		t.Error("adaptive disabled: no personalization clause")
	}
}

func TestGenerate_VisualAid(t *testing.T) {
	fb := Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorIncorrect, diagnosis.SeverityMajor),
		AttemptNumber: 1,
	}, DefaultOptions())
	if fb.VisualAid == "" {
		t.Error("major severity should attach a visual aid")
	}

	fb = Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorSpelling, diagnosis.SeverityMinor),
		AttemptNumber: 3,
	}, DefaultOptions())
	if fb.VisualAid == "" {
		t.Error("more than two attempts should attach a visual aid")
	}

	fb = Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorSpelling, diagnosis.SeverityMinor),
		AttemptNumber: 1,
	}, DefaultOptions())
	if fb.VisualAid != "" {
		t.Errorf("minor slip on the first attempt needs no visual aid, got %q", fb.VisualAid)
	}

	opts := DefaultOptions()
	opts.EnableVisualAids = false
	fb = Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorIncorrect, diagnosis.SeverityMajor),
		AttemptNumber: 1,
	}, opts)
	if fb.VisualAid != "" {
		t.Error("disabled visual aids should stay empty")
	}
}

func TestGenerate_EncouragementTone(t *testing.T) {
	base := Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorIncorrect, diagnosis.SeverityMajor),
		AttemptNumber: 1,
	}

	opts := DefaultOptions()
	opts.Tone = ToneFormal
	formal := Generate(base, opts)

	opts.Tone = ToneCasual
	casual := Generate(base, opts)

	if formal.Encouragement == "" || casual.Encouragement == "" {
		t.Fatal("incorrect outcomes should carry encouragement")
	}
	if formal.Encouragement == casual.Encouragement {
		t.Error("tones should produce different encouragement lines")
	}

	// Wording scales with attempts.
	later := base
	later.AttemptNumber = 3
	opts.Tone = ToneCasual
	third := Generate(later, opts)
	if third.Encouragement == casual.Encouragement {
		t.Error("encouragement should change by attempt number")
	}

	opts.EnableEncouragement = false
	if fb := Generate(base, opts); fb.Encouragement != "" {
		t.Error("disabled encouragement should stay empty")
	}
}

func TestGenerate_NextSteps(t *testing.T) {
	fb := Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorIncorrect, diagnosis.SeverityMajor),
		AttemptNumber: 3,
		HintsUsed:     0,
	}, DefaultOptions())
	if !strings.Contains(fb.NextSteps, "hint") {
		t.Errorf("three hintless attempts should suggest a hint, got %q", fb.NextSteps)
	}

	fb = Generate(Context{
		Question:      fibQuestion(),
		Analysis:      wrongAnalysis(diagnosis.ErrorIncorrect, diagnosis.SeverityMajor),
		AttemptNumber: 3,
		HintsUsed:     1,
	}, DefaultOptions())
	if !strings.Contains(fb.NextSteps, "blank") {
		t.Errorf("expected type-specific review suggestion, got %q", fb.NextSteps)
	}
}

func TestGenerate_NilAnalysis(t *testing.T) {
	fb := Generate(Context{Question: fibQuestion(), AttemptNumber: 1}, DefaultOptions())
	if fb.Type != TypeIncorrect {
		t.Errorf("nil analysis defaults to incorrect, got %q", fb.Type)
	}
	if fb.Severity != diagnosis.SeverityMajor {
		t.Errorf("nil analysis defaults to major severity, got %q", fb.Severity)
	}
}

func TestFromHint(t *testing.T) {
	h := &hints.Hint{Level: 1, Content: "Check the verb."}
	fb := FromHint(h, 1)
	if fb.Type != TypeHint {
		t.Errorf("got type %q, want hint", fb.Type)
	}
	if fb.Title != "Hint 2" {
		t.Errorf("got title %q", fb.Title)
	}
	if fb.Message != "Check the verb." {
		t.Errorf("got message %q", fb.Message)
	}
}
