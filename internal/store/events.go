package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// parseTimestamp reads the SQLite CURRENT_TIMESTAMP text format, falling
// back to RFC 3339. Returns the zero time on failure.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}

// eventRepo implements EventRepo on raw SQL with the global sequence
// counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(sequence, session_id, question_id, question_type, topic, answer,
		 correct, points, max_points, partial_credit, error_type, severity,
		 attempt_number, hints_used, time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.QuestionID, data.QuestionType,
		data.Topic, data.Answer, data.Correct, data.Points, data.MaxPoints,
		data.PartialCredit, data.ErrorType, data.Severity,
		data.AttemptNumber, data.HintsUsed, data.TimeMs)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendHintEvent(ctx context.Context, data HintEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO hint_events
		(sequence, session_id, question_id, level, hint_type, category, reveal_percentage)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.QuestionID, data.Level,
		data.HintType, data.Category, data.RevealPercentage)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, session_id, action, questions_served, correct_answers, hints_used, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Action, data.QuestionsServed,
		data.CorrectAnswers, data.HintsUsed, data.DurationSecs)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO llm_request_events
		(sequence, provider, model, purpose, input_tokens, output_tokens,
		 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.Provider, data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
		data.RequestBody, data.ResponseBody)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) TopicStats(ctx context.Context) ([]TopicStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT topic,
		COUNT(*), SUM(CASE WHEN correct THEN 1 ELSE 0 END)
		FROM answer_events WHERE topic != ''
		GROUP BY topic ORDER BY topic`)
	if err != nil {
		return nil, fmt.Errorf("query topic stats: %w", err)
	}
	defer rows.Close()

	var out []TopicStats
	for rows.Next() {
		var t TopicStats
		if err := rows.Scan(&t.Topic, &t.Attempted, &t.Correct); err != nil {
			return nil, fmt.Errorf("scan topic stats: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *eventRepo) MistakeStats(ctx context.Context) ([]MistakeStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT error_type,
		COUNT(*), MAX(timestamp)
		FROM answer_events WHERE NOT correct AND error_type != ''
		GROUP BY error_type ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query mistake stats: %w", err)
	}
	defer rows.Close()

	var out []MistakeStats
	for rows.Next() {
		var m MistakeStats
		var last string
		if err := rows.Scan(&m.ErrorType, &m.Count, &last); err != nil {
			return nil, fmt.Errorf("scan mistake stats: %w", err)
		}
		m.Last = parseTimestamp(last)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *eventRepo) AnswerStats(ctx context.Context) (AnswerStats, error) {
	var stats AnswerStats
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0),
		COALESCE(CAST(AVG(time_ms) AS INTEGER), 0)
		FROM answer_events`).Scan(&stats.Total, &stats.Correct, &stats.AvgTimeMs)
	if err != nil {
		return AnswerStats{}, fmt.Errorf("query answer stats: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) HintTypeCounts(ctx context.Context) ([]HintTypeCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT hint_type, COUNT(*)
		FROM hint_events WHERE hint_type != ''
		GROUP BY hint_type ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query hint type counts: %w", err)
	}
	defer rows.Close()

	var out []HintTypeCount
	for rows.Next() {
		var h HintTypeCount
		if err := rows.Scan(&h.HintType, &h.Count); err != nil {
			return nil, fmt.Errorf("scan hint type count: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *eventRepo) SessionDays(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT date(timestamp) FROM session_events
		 WHERE action = 'end' ORDER BY 1 DESC`)
	if err != nil {
		return nil, fmt.Errorf("query session days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan session day: %w", err)
		}
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (r *eventRepo) SessionCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_events WHERE action = 'end'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("query session count: %w", err)
	}
	return n, nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	q := `SELECT id, timestamp, provider, model, purpose, input_tokens,
	             output_tokens, latency_ms, success, error_message
	      FROM llm_request_events ORDER BY id DESC`
	args := []any{}
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMEventRecord
	for rows.Next() {
		var e LLMEventRecord
		var ts string
		err := rows.Scan(&e.ID, &ts, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		e.Timestamp = parseTimestamp(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT purpose, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
		COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0)
		FROM llm_request_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query llm usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []LLMUsageStats
	for rows.Next() {
		var u LLMUsageStats
		err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens,
			&u.OutputTokens, &u.AvgLatencyMs)
		if err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT model, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query llm usage by model: %w", err)
	}
	defer rows.Close()

	var out []LLMModelUsage
	for rows.Next() {
		var u LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan llm model usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEventRecord, error) {
	var e LLMEventRecord
	var ts string
	err := r.db.QueryRowContext(ctx, `SELECT id, timestamp, provider, model,
		purpose, input_tokens, output_tokens, latency_ms, success,
		error_message, request_body, response_body
		FROM llm_request_events WHERE id = ?`, id).Scan(
		&e.ID, &ts, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens,
		&e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
		&e.RequestBody, &e.ResponseBody)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get llm event: %w", err)
	}
	e.Timestamp = parseTimestamp(ts)
	return &e, nil
}
