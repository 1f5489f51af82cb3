package session

import (
	"context"
	"testing"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/feedback"
	"github.com/abhisek/gramiz/internal/learner"
	"github.com/abhisek/gramiz/internal/review"
	"github.com/abhisek/gramiz/internal/store"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	return NewState(exercise.SamplePack(), nil, DefaultConfig())
}

func newTestStateWithStore(t *testing.T) (*State, store.EventRepo) {
	t.Helper()
	s, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()
	st := newTestState(t)
	st.EventRepo = repo
	return st, repo
}

func TestNewState(t *testing.T) {
	st := newTestState(t)
	if st.SessionID == "" {
		t.Error("expected a session ID")
	}
	if st.CurrentQuestion() == nil || st.CurrentQuestion().ID != "starter-mc-1" {
		t.Error("expected first question of the pack")
	}
	if st.AttemptNumber != 1 {
		t.Errorf("attempt = %d, want 1", st.AttemptNumber)
	}
	if st.Phase != PhaseActive {
		t.Errorf("phase = %v, want active", st.Phase)
	}
}

func TestHandleAnswer_Correct(t *testing.T) {
	st := newTestState(t)

	fb := HandleAnswer(st, exercise.Response{Selections: []string{"children"}})
	if fb == nil || fb.Type != feedback.TypeCorrect {
		t.Fatalf("expected correct feedback, got %+v", fb)
	}
	if st.TotalQuestions != 1 || st.TotalCorrect != 1 {
		t.Errorf("tallies: questions=%d correct=%d", st.TotalQuestions, st.TotalCorrect)
	}
	if st.LastOutcome == nil || !st.LastOutcome.IsCorrect {
		t.Error("outcome should be recorded")
	}
	if st.Phase != PhaseFeedback {
		t.Error("phase should switch to feedback")
	}
	if tr := st.PerTopicResults["plurals"]; tr == nil || tr.Correct != 1 {
		t.Errorf("topic tally wrong: %+v", tr)
	}
}

func TestHandleAnswer_WrongIncrementsAttempt(t *testing.T) {
	st := newTestState(t)

	fb := HandleAnswer(st, exercise.Response{Selections: []string{"childs"}})
	if fb == nil || fb.Type == feedback.TypeCorrect {
		t.Fatal("expected non-correct feedback")
	}
	if st.AttemptNumber != 2 {
		t.Errorf("attempt = %d, want 2", st.AttemptNumber)
	}
	// Second wrong answer on the same question doesn't recount it.
	HandleAnswer(st, exercise.Response{Selections: []string{"childes"}})
	if st.TotalQuestions != 1 {
		t.Errorf("questions = %d, want 1", st.TotalQuestions)
	}
	if st.TotalCorrect != 0 {
		t.Errorf("correct = %d, want 0", st.TotalCorrect)
	}
}

func TestHandleAnswer_EventualCorrectCountsOnce(t *testing.T) {
	st := newTestState(t)

	HandleAnswer(st, exercise.Response{Selections: []string{"childs"}})
	HandleAnswer(st, exercise.Response{Selections: []string{"children"}})
	if st.TotalQuestions != 1 || st.TotalCorrect != 1 {
		t.Errorf("tallies: questions=%d correct=%d, want 1/1", st.TotalQuestions, st.TotalCorrect)
	}
}

func TestHandleAnswer_RecordsReviewOnFirstAttemptOnly(t *testing.T) {
	st := newTestState(t)
	st.Reviews = review.NewScheduler(nil)

	HandleAnswer(st, exercise.Response{Selections: []string{"childs"}})
	rs := st.Reviews.Get("plurals")
	if rs == nil {
		t.Fatal("expected topic tracked after first attempt")
	}
	if rs.ConsecutiveHits != 0 {
		t.Errorf("hits = %d, want 0 after a miss", rs.ConsecutiveHits)
	}

	// A retry on the same question doesn't touch the schedule.
	HandleAnswer(st, exercise.Response{Selections: []string{"children"}})
	if got := st.Reviews.Get("plurals").ConsecutiveHits; got != 0 {
		t.Errorf("hits = %d after retry, want 0", got)
	}
}

func TestAdvance(t *testing.T) {
	st := newTestState(t)

	HandleAnswer(st, exercise.Response{Selections: []string{"childs"}})
	RequestHint(st)

	if !st.Advance() {
		t.Fatal("expected more questions")
	}
	if st.CurrentQuestion().ID != "starter-fib-1" {
		t.Errorf("got question %q", st.CurrentQuestion().ID)
	}
	if st.AttemptNumber != 1 || st.HintsThisQuestion != 0 || st.HintSeq != nil {
		t.Error("per-question state should reset on advance")
	}
	if st.LastFeedback != nil {
		t.Error("feedback should clear on advance")
	}

	// Walk to the end.
	for st.Advance() {
	}
	if st.Phase != PhaseSummary {
		t.Error("exhausted pack should switch to summary phase")
	}
	if st.CurrentQuestion() != nil {
		t.Error("no current question past the end")
	}
}

func TestRequestHint_CapAndTallies(t *testing.T) {
	st := newTestState(t)

	var served int
	for i := 0; i < 6; i++ {
		if fb := RequestHint(st); fb != nil {
			if fb.Type != feedback.TypeHint {
				t.Errorf("hint feedback type = %q", fb.Type)
			}
			served++
		}
	}
	if served != 3 {
		t.Errorf("served %d hints, want 3", served)
	}
	if st.TotalHints != 3 || st.HintsThisQuestion != 3 {
		t.Errorf("tallies: total=%d question=%d", st.TotalHints, st.HintsThisQuestion)
	}
}

func TestGiveUp(t *testing.T) {
	st := newTestState(t)
	GiveUp(st)
	if len(st.Results) != 1 || st.Results[0].Correct {
		t.Errorf("give-up should record a miss, got %v", st.Results)
	}
	if st.CurrentQuestion().ID != "starter-fib-1" {
		t.Error("give-up should advance")
	}
}

func TestEventsPersisted(t *testing.T) {
	st, repo := newTestStateWithStore(t)
	ctx := context.Background()

	RecordStart(st)
	HandleAnswer(st, exercise.Response{Selections: []string{"children"}})
	RequestHint(st)
	RecordEnd(st)

	stats, err := repo.AnswerStats(ctx)
	if err != nil {
		t.Fatalf("answer stats: %v", err)
	}
	if stats.Total != 1 || stats.Correct != 1 {
		t.Errorf("answer events: %+v", stats)
	}

	n, err := repo.SessionCount(ctx)
	if err != nil {
		t.Fatalf("session count: %v", err)
	}
	if n != 1 {
		t.Errorf("completed sessions = %d, want 1", n)
	}

	counts, err := repo.HintTypeCounts(ctx)
	if err != nil {
		t.Fatalf("hint counts: %v", err)
	}
	if len(counts) == 0 {
		t.Error("expected a hint event")
	}
}

func TestBuildSummary(t *testing.T) {
	st := newTestState(t)

	HandleAnswer(st, exercise.Response{Selections: []string{"children"}})
	st.Advance()
	HandleAnswer(st, exercise.Response{Blanks: map[string]string{"b1": "goes"}})
	st.Advance()
	HandleAnswer(st, exercise.Response{Placements: map[string][]string{
		"nouns": {"dog", "tree"},
		"verbs": {"run", "jump"},
	}})
	st.Advance()
	HandleAnswer(st, exercise.Response{WordOrder: []string{"the", "dog", "is", "running"}})
	RecordEnd(st)

	sum := BuildSummary(st)
	if sum.TotalQuestions != 4 || sum.TotalCorrect != 4 {
		t.Errorf("summary tallies: %d/%d", sum.TotalCorrect, sum.TotalQuestions)
	}
	if sum.Accuracy != 1.0 {
		t.Errorf("accuracy = %v", sum.Accuracy)
	}
	if !sum.EligibleForEnrichment {
		t.Error("perfect run should be enrichment-eligible")
	}
	if sum.NeedsRemediation {
		t.Error("perfect run should not flag remediation")
	}
	if len(sum.TopicResults) != 4 {
		t.Errorf("got %d topics, want 4", len(sum.TopicResults))
	}
}

func TestResponseText(t *testing.T) {
	pack := exercise.SamplePack()

	mc := ResponseText(&pack.Questions[0], exercise.Response{Selections: []string{"children"}})
	if mc != "children" {
		t.Errorf("mc text = %q", mc)
	}

	fib := ResponseText(&pack.Questions[1], exercise.Response{Blanks: map[string]string{"b1": "goes"}})
	if fib != "b1=goes" {
		t.Errorf("fib text = %q", fib)
	}

	sb := ResponseText(&pack.Questions[3], exercise.Response{WordOrder: []string{"the", "dog"}})
	if sb != "the dog" {
		t.Errorf("sb text = %q", sb)
	}
}

func TestSummaryRemediation(t *testing.T) {
	st := newTestState(t)
	st.Results = []learner.Result{
		{Correct: true}, {Correct: false}, {Correct: false},
		{Correct: false}, {Correct: true},
	}
	sum := BuildSummary(st)
	if !sum.NeedsRemediation {
		t.Error("accuracy 0.4 should flag remediation")
	}
}
