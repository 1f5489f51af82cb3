package review

import (
	"testing"
	"time"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/store"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestRecord_FirstCorrect(t *testing.T) {
	s := NewScheduler(nil)
	s.Record("plurals", true, testNow)

	st := s.Get("plurals")
	if st == nil {
		t.Fatal("expected topic to be tracked")
	}
	if st.Stage != 1 {
		t.Errorf("Stage = %d, want 1", st.Stage)
	}
	if st.ConsecutiveHits != 1 {
		t.Errorf("ConsecutiveHits = %d, want 1", st.ConsecutiveHits)
	}
	// Stage 1 interval is 3 days.
	want := testNow.AddDate(0, 0, 3)
	if !st.NextReview.Equal(want) {
		t.Errorf("NextReview = %v, want %v", st.NextReview, want)
	}
}

func TestRecord_WrongDropsStageAndSchedulesTomorrow(t *testing.T) {
	s := NewScheduler(nil)
	s.Record("verb-tense", true, testNow)
	s.Record("verb-tense", true, testNow)
	s.Record("verb-tense", false, testNow)

	st := s.Get("verb-tense")
	if st.Stage != 1 {
		t.Errorf("Stage = %d, want 1", st.Stage)
	}
	if st.ConsecutiveHits != 0 {
		t.Errorf("ConsecutiveHits = %d, want 0", st.ConsecutiveHits)
	}
	want := testNow.AddDate(0, 0, 1)
	if !st.NextReview.Equal(want) {
		t.Errorf("NextReview = %v, want %v", st.NextReview, want)
	}
}

func TestRecord_Graduation(t *testing.T) {
	s := NewScheduler(nil)
	for i := 0; i < GraduationHits; i++ {
		s.Record("plurals", true, testNow)
	}

	st := s.Get("plurals")
	if !st.Graduated {
		t.Error("expected topic to graduate after six straight hits")
	}
	want := testNow.AddDate(0, 0, GraduatedIntervalDays)
	if !st.NextReview.Equal(want) {
		t.Errorf("NextReview = %v, want %v", st.NextReview, want)
	}
}

func TestRecord_WrongRevokesGraduation(t *testing.T) {
	s := NewScheduler(nil)
	for i := 0; i < GraduationHits; i++ {
		s.Record("plurals", true, testNow)
	}
	s.Record("plurals", false, testNow)

	if st := s.Get("plurals"); st.Graduated {
		t.Error("expected a miss to revoke graduation")
	}
}

func TestRecord_EmptyTopicIgnored(t *testing.T) {
	s := NewScheduler(nil)
	s.Record("", true, testNow)
	if st := s.Get(""); st != nil {
		t.Error("expected empty topic to be ignored")
	}
}

func TestDue_SortedMostOverdueFirst(t *testing.T) {
	s := NewScheduler(nil)
	s.topics["plurals"] = &State{Topic: "plurals", NextReview: testNow.AddDate(0, 0, -1)}
	s.topics["verb-tense"] = &State{Topic: "verb-tense", NextReview: testNow.AddDate(0, 0, -5)}
	s.topics["word-order"] = &State{Topic: "word-order", NextReview: testNow.AddDate(0, 0, 2)}

	got := s.Due(testNow)
	want := []string{"verb-tense", "plurals"}
	if len(got) != len(want) {
		t.Fatalf("Due() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Due()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOrderQuestions_DueTopicsFirst(t *testing.T) {
	s := NewScheduler(nil)
	s.topics["verb-tense"] = &State{Topic: "verb-tense", NextReview: testNow.AddDate(0, 0, -1)}
	s.topics["plurals"] = &State{Topic: "plurals", NextReview: testNow.AddDate(0, 0, 5)}

	qs := []exercise.Question{
		{ID: "q1", Topic: "plurals"},
		{ID: "q2", Topic: "verb-tense"},
		{ID: "q3", Topic: "plurals"},
		{ID: "q4", Topic: "verb-tense"},
	}

	got := s.OrderQuestions(qs, testNow)
	wantIDs := []string{"q2", "q4", "q1", "q3"}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestOrderQuestions_NothingDue(t *testing.T) {
	s := NewScheduler(nil)
	s.topics["plurals"] = &State{Topic: "plurals", NextReview: testNow.AddDate(0, 0, 5)}

	qs := []exercise.Question{
		{ID: "q1", Topic: "plurals"},
		{ID: "q2", Topic: "verb-tense"},
	}
	got := s.OrderQuestions(qs, testNow)
	if got[0].ID != "q1" || got[1].ID != "q2" {
		t.Errorf("expected original order, got %q then %q", got[0].ID, got[1].ID)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewScheduler(nil)
	s.Record("plurals", true, testNow)
	s.Record("verb-tense", false, testNow)

	restored := NewScheduler(&store.SnapshotData{Reviews: s.Snapshot()})

	for _, topic := range []string{"plurals", "verb-tense"} {
		orig, got := s.Get(topic), restored.Get(topic)
		if got == nil {
			t.Fatalf("topic %q missing after restore", topic)
		}
		if got.Stage != orig.Stage || got.ConsecutiveHits != orig.ConsecutiveHits ||
			got.Graduated != orig.Graduated {
			t.Errorf("topic %q: restored %+v, want %+v", topic, got, orig)
		}
		if !got.NextReview.Equal(orig.NextReview) {
			t.Errorf("topic %q: NextReview = %v, want %v", topic, got.NextReview, orig.NextReview)
		}
	}
}

func TestNewScheduler_SkipsBadDates(t *testing.T) {
	snap := &store.SnapshotData{Reviews: map[string]store.ReviewStateData{
		"plurals": {Topic: "plurals", NextReview: "not-a-date", LastReview: "also bad"},
	}}
	s := NewScheduler(snap)
	if st := s.Get("plurals"); st != nil {
		t.Error("expected entry with bad dates to be skipped")
	}
}

func TestSnapshot_EmptyIsNil(t *testing.T) {
	s := NewScheduler(nil)
	if got := s.Snapshot(); got != nil {
		t.Errorf("Snapshot() = %v, want nil", got)
	}
}
