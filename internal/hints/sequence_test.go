package hints

import (
	"testing"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/learner"
)

func sbQuestion() *exercise.Question {
	return &exercise.Question{
		ID:     "sb",
		Type:   exercise.TypeSentenceBuilder,
		Prompt: "build",
		Points: 10,
		Hints:  []string{"Think about the article.", "The subject comes first."},
		SentenceBuilder: &exercise.SentenceBuilderData{
			Words:      []string{"running", "the", "is", "dog"},
			Acceptable: []string{"The dog is running"},
		},
	}
}

func TestBuildSequence_Order(t *testing.T) {
	seq := BuildSequence(sbQuestion(), 0, false)

	if seq.CurrentIndex != -1 {
		t.Errorf("new sequence starts at -1, got %d", seq.CurrentIndex)
	}
	if seq.MaxHints != DefaultMaxHints {
		t.Errorf("got max hints %d, want %d", seq.MaxHints, DefaultMaxHints)
	}
	for i := 1; i < len(seq.Hints); i++ {
		if seq.Hints[i].RevealPercentage < seq.Hints[i-1].RevealPercentage {
			t.Fatalf("hints not sorted by reveal percentage: %+v", seq.Hints)
		}
	}
}

func TestBuildSequence_CapsMaxHints(t *testing.T) {
	seq := BuildSequence(sbQuestion(), 10, false)
	if seq.MaxHints != DefaultMaxHints {
		t.Errorf("max hints must cap at %d, got %d", DefaultMaxHints, seq.MaxHints)
	}
}

func TestNext_RevealsExactlyMaxHints(t *testing.T) {
	seq := BuildSequence(sbQuestion(), 0, false)

	lastReveal := -1
	for i := 0; i < seq.MaxHints; i++ {
		h := seq.Next(nil)
		if h == nil {
			t.Fatalf("hint %d: got nil before exhaustion", i)
		}
		if h.Level != i {
			t.Errorf("hint %d: got level %d", i, h.Level)
		}
		if h.RevealPercentage <= lastReveal {
			t.Errorf("hint %d: reveal %d not strictly increasing after %d",
				i, h.RevealPercentage, lastReveal)
		}
		lastReveal = h.RevealPercentage
	}

	if h := seq.Next(nil); h != nil {
		t.Errorf("call after exhaustion should return nil, got %+v", h)
	}
	if h := seq.Next(nil); h != nil {
		t.Error("exhausted sequence must stay exhausted")
	}
}

func TestNext_NeverRewinds(t *testing.T) {
	seq := BuildSequence(sbQuestion(), 0, false)
	seq.Next(nil)
	idx := seq.CurrentIndex
	seq.Next(nil)
	if seq.CurrentIndex <= idx {
		t.Error("cursor must advance monotonically")
	}
}

func TestNext_CursorNeverExceedsCap(t *testing.T) {
	seq := BuildSequence(sbQuestion(), 2, false)
	for i := 0; i < 5; i++ {
		seq.Next(nil)
	}
	if seq.CurrentIndex > seq.MaxHints-1 {
		t.Errorf("cursor %d exceeded max %d", seq.CurrentIndex, seq.MaxHints-1)
	}
}

func TestNext_AdaptivePrefersMistakeCategory(t *testing.T) {
	profile := &learner.Profile{CommonMistakes: []learner.ErrorPattern{
		{Type: "word_order", Frequency: 4},
	}}

	// No authored hints, so the word_order strategy hints are the pool.
	q := sbQuestion()
	q.Hints = nil

	seq := BuildSequence(q, 0, true)
	h := seq.Next(profile)
	if h == nil {
		t.Fatal("expected a hint")
	}
	if h.Category != "word_order" {
		t.Errorf("adaptive selection should prefer the recorded mistake type, got category %q", h.Category)
	}
}

func TestNext_AdaptiveFallsBackWithoutMatch(t *testing.T) {
	profile := &learner.Profile{CommonMistakes: []learner.ErrorPattern{
		{Type: "spelling", Frequency: 2},
	}}

	q := sbQuestion()
	seq := BuildSequence(q, 0, true)
	plain := BuildSequence(q, 0, false)

	// No sentence-builder hint targets spelling, so order matches the
	// non-adaptive sequence.
	h := seq.Next(profile)
	want := plain.Next(nil)
	if h.Content != want.Content {
		t.Errorf("no category match should fall back to position order:\ngot  %q\nwant %q",
			h.Content, want.Content)
	}
}

func TestSequence_NoAuthoredHints(t *testing.T) {
	q := &exercise.Question{
		ID:     "mc",
		Type:   exercise.TypeMultipleChoice,
		Prompt: "p",
		Points: 5,
		MultipleChoice: &exercise.MultipleChoiceData{
			Options: []string{"a", "b"},
			Correct: []string{"a"},
		},
	}
	seq := BuildSequence(q, 0, false)
	if len(seq.Hints) == 0 {
		t.Fatal("strategy hints should exist even without authored hints")
	}
	if seq.Next(nil) == nil {
		t.Error("expected a generated hint")
	}
}

func TestRemainingAndUsed(t *testing.T) {
	seq := BuildSequence(sbQuestion(), 0, false)
	if seq.Used() != 0 {
		t.Errorf("got used %d, want 0", seq.Used())
	}
	if seq.Remaining() != seq.MaxHints {
		t.Errorf("got remaining %d, want %d", seq.Remaining(), seq.MaxHints)
	}
	seq.Next(nil)
	if seq.Used() != 1 || seq.Remaining() != seq.MaxHints-1 {
		t.Errorf("after one hint: used=%d remaining=%d", seq.Used(), seq.Remaining())
	}
}
