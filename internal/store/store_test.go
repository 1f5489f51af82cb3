package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{
		"answer_events", "hint_events", "session_events",
		"llm_request_events", "snapshots", "global_sequence",
	} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAnswerEventsAndStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", QuestionID: "q1", QuestionType: "multiple_choice", Topic: "plurals", Answer: "children", Correct: true, Points: 5, MaxPoints: 5, PartialCredit: 1, TimeMs: 4000},
		{SessionID: "s1", QuestionID: "q2", QuestionType: "fill_in_blank", Topic: "plurals", Answer: "childs", Correct: false, MaxPoints: 5, ErrorType: "common_misconception", Severity: "moderate", TimeMs: 8000},
		{SessionID: "s1", QuestionID: "q3", QuestionType: "sentence_builder", Topic: "word-order", Answer: "dog the runs", Correct: false, MaxPoints: 10, ErrorType: "word_order", Severity: "minor", TimeMs: 6000},
		{SessionID: "s1", QuestionID: "q3", QuestionType: "sentence_builder", Topic: "word-order", Answer: "the dog runs", Correct: true, Points: 10, MaxPoints: 10, PartialCredit: 1, AttemptNumber: 2, TimeMs: 2000},
	}
	for i, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stats, err := repo.AnswerStats(ctx)
	if err != nil {
		t.Fatalf("answer stats: %v", err)
	}
	if stats.Total != 4 || stats.Correct != 2 {
		t.Errorf("got total=%d correct=%d, want 4/2", stats.Total, stats.Correct)
	}
	if stats.AvgTimeMs != 5000 {
		t.Errorf("got avg time %d, want 5000", stats.AvgTimeMs)
	}

	topics, err := repo.TopicStats(ctx)
	if err != nil {
		t.Fatalf("topic stats: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("got %d topics, want 2", len(topics))
	}
	// Sorted by topic name.
	if topics[0].Topic != "plurals" || topics[0].Attempted != 2 || topics[0].Correct != 1 {
		t.Errorf("plurals stats wrong: %+v", topics[0])
	}
	if acc := topics[0].Accuracy(); acc != 0.5 {
		t.Errorf("got accuracy %v, want 0.5", acc)
	}

	mistakes, err := repo.MistakeStats(ctx)
	if err != nil {
		t.Fatalf("mistake stats: %v", err)
	}
	if len(mistakes) != 2 {
		t.Fatalf("got %d mistake types, want 2", len(mistakes))
	}
	for _, m := range mistakes {
		if m.Count != 1 {
			t.Errorf("mistake %s: count %d, want 1", m.ErrorType, m.Count)
		}
		if m.Last.IsZero() {
			t.Errorf("mistake %s: zero last-occurrence", m.ErrorType)
		}
	}
}

func TestHintEventsAndCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	hints := []HintEventData{
		{SessionID: "s1", QuestionID: "q1", Level: 0, HintType: "text", RevealPercentage: 33},
		{SessionID: "s1", QuestionID: "q1", Level: 1, HintType: "visual", Category: "misplacement", RevealPercentage: 66},
		{SessionID: "s1", QuestionID: "q2", Level: 0, HintType: "visual", RevealPercentage: 45},
	}
	for i, h := range hints {
		if err := repo.AppendHintEvent(ctx, h); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	counts, err := repo.HintTypeCounts(ctx)
	if err != nil {
		t.Fatalf("hint type counts: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("got %d hint types, want 2", len(counts))
	}
	if counts[0].HintType != "visual" || counts[0].Count != 2 {
		t.Errorf("most used hint type should be visual x2, got %+v", counts[0])
	}
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "s1", Action: "start"},
		{SessionID: "s1", Action: "end", QuestionsServed: 4, CorrectAnswers: 3, DurationSecs: 300},
		{SessionID: "s2", Action: "start"},
	}
	for i, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	n, err := repo.SessionCount(ctx)
	if err != nil {
		t.Fatalf("session count: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d completed sessions, want 1", n)
	}
}

func TestLLMRequestEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "explanation",
		InputTokens:  100,
		OutputTokens: 50,
		LatencyMs:    120,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM llm_request_events").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d llm events, want 1", n)
	}
}

func TestSessionDays(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "s1", Action: "start"},
		{SessionID: "s1", Action: "end", QuestionsServed: 4},
		{SessionID: "s2", Action: "end", QuestionsServed: 2},
	}
	for i, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	days, err := repo.SessionDays(ctx)
	if err != nil {
		t.Fatalf("session days: %v", err)
	}
	// Both end events land on today, start events never count.
	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}
	today := time.Now().UTC().Format("2006-01-02")
	if got := days[0].Format("2006-01-02"); got != today {
		t.Errorf("got day %s, want %s", got, today)
	}
}

func TestQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock",
			Purpose:      "explanation",
			InputTokens:  100 + i,
			OutputTokens: 50,
			Success:      true,
			RequestBody:  "req",
			ResponseBody: "resp",
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first.
	if events[0].ID <= events[1].ID {
		t.Errorf("expected descending IDs, got %d then %d", events[0].ID, events[1].ID)
	}
	if events[0].InputTokens != 102 {
		t.Errorf("got input tokens %d, want 102", events[0].InputTokens)
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event, got nil")
	}
	if e.RequestBody != "req" || e.ResponseBody != "resp" {
		t.Errorf("bodies = %q/%q, want req/resp", e.RequestBody, e.ResponseBody)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown ID, got %+v", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	reqs := []LLMRequestEventData{
		{Provider: "mock", Model: "model-a", Purpose: "explanation", InputTokens: 100, OutputTokens: 40, LatencyMs: 200, Success: true},
		{Provider: "mock", Model: "model-a", Purpose: "explanation", InputTokens: 120, OutputTokens: 60, LatencyMs: 400, Success: true},
		{Provider: "mock", Model: "model-b", Purpose: "explanation", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: false},
	}
	for i, r := range reqs {
		if err := repo.AppendLLMRequest(ctx, r); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 1 {
		t.Fatalf("got %d purposes, want 1", len(byPurpose))
	}
	u := byPurpose[0]
	if u.Calls != 3 || u.InputTokens != 230 || u.OutputTokens != 105 {
		t.Errorf("usage = %+v, want 3 calls, 230 in, 105 out", u)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("got %d models, want 2", len(byModel))
	}
	if byModel[0].Model != "model-a" || byModel[0].InputTokens != 220 {
		t.Errorf("model-a usage = %+v, want 220 input tokens", byModel[0])
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: 1,
			Profile: ProfileSnapshot{
				SuccessRate:        0.8,
				PreferredHintStyle: "visual",
				CommonMistakes: []MistakePattern{
					{Type: "spelling", Frequency: 3, LastOccurrence: now},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if snap.Data.Profile.SuccessRate != 0.8 {
		t.Errorf("success rate = %v, want 0.8", snap.Data.Profile.SuccessRate)
	}
	if len(snap.Data.Profile.CommonMistakes) != 1 {
		t.Errorf("common mistakes = %v", snap.Data.Profile.CommonMistakes)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	// Latest should still be sequence 7.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune with keep=5 should be a no-op.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining snapshots = %d, want 2", count)
	}
}
