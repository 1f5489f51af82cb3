package store

import (
	"context"
	"time"
)

// AnswerEventData captures one graded answer submission.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	QuestionType  string
	Topic         string
	Answer        string
	Correct       bool
	Points        float64
	MaxPoints     float64
	PartialCredit float64
	ErrorType     string
	Severity      string
	AttemptNumber int
	HintsUsed     int
	TimeMs        int64
}

// HintEventData captures one revealed hint.
type HintEventData struct {
	SessionID        string
	QuestionID       string
	Level            int
	HintType         string
	Category         string
	RevealPercentage int
}

// SessionEventData captures a session lifecycle action ("start", "end").
type SessionEventData struct {
	SessionID       string
	Action          string
	QuestionsServed int
	CorrectAnswers  int
	HintsUsed       int
	DurationSecs    int64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// QueryOpts bounds an event query. A zero Limit means no limit.
type QueryOpts struct {
	Limit int
}

// LLMEventRecord is a stored LLM request event, as read back for the
// inspection commands.
type LLMEventRecord struct {
	ID           int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMUsageStats aggregates LLM calls by purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM calls by model, for cost estimation.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// TopicStats aggregates answer history for one topic.
type TopicStats struct {
	Topic     string
	Attempted int
	Correct   int
}

// Accuracy returns the fraction of correct answers, 0 when empty.
func (t TopicStats) Accuracy() float64 {
	if t.Attempted == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempted)
}

// MistakeStats aggregates wrong answers by diagnosed error type.
type MistakeStats struct {
	ErrorType string
	Count     int
	Last      time.Time
}

// AnswerStats aggregates the full answer history.
type AnswerStats struct {
	Total     int
	Correct   int
	AvgTimeMs int64
}

// HintTypeCount counts revealed hints by presentation type.
type HintTypeCount struct {
	HintType string
	Count    int
}

// EventRepo provides append and aggregate-query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records a graded answer submission.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendHintEvent records a revealed hint.
	AppendHintEvent(ctx context.Context, data HintEventData) error

	// AppendSessionEvent records a session lifecycle action.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// TopicStats aggregates answer history per topic.
	TopicStats(ctx context.Context) ([]TopicStats, error)

	// MistakeStats aggregates wrong answers by error type, most frequent
	// first.
	MistakeStats(ctx context.Context) ([]MistakeStats, error)

	// AnswerStats aggregates the full answer history.
	AnswerStats(ctx context.Context) (AnswerStats, error)

	// HintTypeCounts counts revealed hints by presentation type, most
	// used first.
	HintTypeCounts(ctx context.Context) ([]HintTypeCount, error)

	// SessionCount counts completed sessions.
	SessionCount(ctx context.Context) (int, error)

	// SessionDays lists the distinct days with at least one completed
	// session, newest first.
	SessionDays(ctx context.Context) ([]time.Time, error)

	// QueryLLMEvents lists recent LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent fetches one LLM request event by ID, nil if absent.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// MistakePattern is the stored form of a recurring mistake.
type MistakePattern struct {
	Type           string    `json:"type"`
	Frequency      int       `json:"frequency"`
	LastOccurrence time.Time `json:"last_occurrence"`
}

// ProfileSnapshot is the stored form of a learner profile. The learner
// package converts it to its domain type; store stays dependency-free.
type ProfileSnapshot struct {
	StrengthAreas      []string         `json:"strength_areas"`
	WeaknessAreas      []string         `json:"weakness_areas"`
	PreferredHintStyle string           `json:"preferred_hint_style"`
	AvgResponseMs      int64            `json:"avg_response_ms"`
	SuccessRate        float64          `json:"success_rate"`
	CommonMistakes     []MistakePattern `json:"common_mistakes"`
}

// ReviewStateData is the stored form of one topic's review schedule.
// Dates are RFC 3339 strings.
type ReviewStateData struct {
	Topic           string `json:"topic"`
	Stage           int    `json:"stage"`
	NextReview      string `json:"next_review"`
	ConsecutiveHits int    `json:"consecutive_hits"`
	Graduated       bool   `json:"graduated"`
	LastReview      string `json:"last_review"`
}

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version int             `json:"version"`
	Profile ProfileSnapshot `json:"profile"`

	// Reviews is the spaced-review schedule keyed by topic. Absent for
	// snapshots written before review scheduling existed.
	Reviews map[string]ReviewStateData `json:"reviews,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}
