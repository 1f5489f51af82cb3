package review

import (
	"sort"
	"time"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/store"
)

// Scheduler tracks the review schedule for every topic the learner has
// practiced. It is rebuilt from the latest snapshot at session start
// and written back at session end.
type Scheduler struct {
	topics map[string]*State
}

// NewScheduler creates a scheduler, restoring review state from the
// snapshot when one exists. Entries with unparseable dates are skipped.
func NewScheduler(snap *store.SnapshotData) *Scheduler {
	s := &Scheduler{topics: make(map[string]*State)}
	if snap == nil || snap.Reviews == nil {
		return s
	}
	for topic, rd := range snap.Reviews {
		next, err := time.Parse(time.RFC3339, rd.NextReview)
		if err != nil {
			continue
		}
		last, err := time.Parse(time.RFC3339, rd.LastReview)
		if err != nil {
			continue
		}
		s.topics[topic] = &State{
			Topic:           rd.Topic,
			Stage:           rd.Stage,
			NextReview:      next,
			ConsecutiveHits: rd.ConsecutiveHits,
			Graduated:       rd.Graduated,
			LastReview:      last,
		}
	}
	return s
}

// Record updates a topic's schedule after a first-attempt answer,
// starting to track the topic if this is its first appearance. A
// correct answer climbs the ladder; a wrong one drops a stage and
// schedules the topic for the next day.
func (s *Scheduler) Record(topic string, correct bool, now time.Time) {
	if topic == "" {
		return
	}
	st := s.topics[topic]
	if st == nil {
		st = &State{Topic: topic}
		s.topics[topic] = st
	}

	st.LastReview = now
	if correct {
		st.ConsecutiveHits++
		if !st.Graduated {
			st.Stage++
			if st.ConsecutiveHits >= GraduationHits {
				st.Graduated = true
			}
		}
		st.NextReview = now.AddDate(0, 0, st.IntervalDays())
		return
	}

	st.ConsecutiveHits = 0
	if st.Stage > 0 {
		st.Stage--
	}
	st.Graduated = false
	st.NextReview = now.AddDate(0, 0, 1)
}

// Due returns the topics at or past their review date, most overdue
// first, ties broken by name.
func (s *Scheduler) Due(now time.Time) []string {
	type dueTopic struct {
		topic   string
		overdue float64
	}
	var due []dueTopic
	for topic, st := range s.topics {
		if st.IsDue(now) {
			due = append(due, dueTopic{topic: topic, overdue: st.OverdueDays(now)})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].overdue != due[j].overdue {
			return due[i].overdue > due[j].overdue
		}
		return due[i].topic < due[j].topic
	})

	out := make([]string, len(due))
	for i, d := range due {
		out[i] = d.topic
	}
	return out
}

// Get returns the review state for a topic, nil if untracked.
func (s *Scheduler) Get(topic string) *State {
	return s.topics[topic]
}

// OrderQuestions returns the questions with due-topic questions moved
// to the front. Relative order is preserved within each half, so pack
// authoring order still shapes the session.
func (s *Scheduler) OrderQuestions(qs []exercise.Question, now time.Time) []exercise.Question {
	due := make(map[string]bool)
	for _, topic := range s.Due(now) {
		due[topic] = true
	}
	if len(due) == 0 {
		return qs
	}

	out := make([]exercise.Question, 0, len(qs))
	var rest []exercise.Question
	for _, q := range qs {
		if due[q.Topic] {
			out = append(out, q)
		} else {
			rest = append(rest, q)
		}
	}
	return append(out, rest...)
}

// Snapshot exports the review state for persistence.
func (s *Scheduler) Snapshot() map[string]store.ReviewStateData {
	if len(s.topics) == 0 {
		return nil
	}
	out := make(map[string]store.ReviewStateData, len(s.topics))
	for topic, st := range s.topics {
		out[topic] = store.ReviewStateData{
			Topic:           st.Topic,
			Stage:           st.Stage,
			NextReview:      st.NextReview.Format(time.RFC3339),
			ConsecutiveHits: st.ConsecutiveHits,
			Graduated:       st.Graduated,
			LastReview:      st.LastReview.Format(time.RFC3339),
		}
	}
	return out
}
