// Package review schedules grammar topics for re-practice on an
// expanding interval ladder, so weak or stale topics resurface at the
// front of a session before strong ones.
package review

import "time"

// BaseIntervals is the expanding review ladder in days. Stage 0 is the
// first review after a topic is answered correctly.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60}

// GraduationHits is the consecutive-correct count after which a topic
// graduates to the long maintenance interval.
const GraduationHits = 6

// GraduatedIntervalDays is the review interval for graduated topics.
const GraduatedIntervalDays = 90

// State holds the review schedule for a single topic.
type State struct {
	Topic           string
	Stage           int
	NextReview      time.Time
	ConsecutiveHits int
	Graduated       bool
	LastReview      time.Time
}

// IsDue reports whether the topic is at or past its review date.
func (s *State) IsDue(now time.Time) bool {
	return !now.Before(s.NextReview)
}

// OverdueDays returns how many days past due the topic is, 0 if not
// yet due.
func (s *State) OverdueDays(now time.Time) float64 {
	if now.Before(s.NextReview) {
		return 0
	}
	return now.Sub(s.NextReview).Hours() / 24.0
}

// IntervalDays returns the current review interval in days.
func (s *State) IntervalDays() int {
	if s.Graduated {
		return GraduatedIntervalDays
	}
	if s.Stage >= len(BaseIntervals) {
		return BaseIntervals[len(BaseIntervals)-1]
	}
	return BaseIntervals[s.Stage]
}

// Status describes a topic's review standing for display.
type Status string

const (
	StatusNotDue    Status = "not_due"
	StatusDue       Status = "due"
	StatusOverdue   Status = "overdue"
	StatusGraduated Status = "graduated"
)

// Status returns the review standing. A topic counts as overdue once
// it is past due by more than half its interval.
func (s *State) Status(now time.Time) Status {
	if !s.IsDue(now) {
		if s.Graduated {
			return StatusGraduated
		}
		return StatusNotDue
	}
	grace := float64(s.IntervalDays()) * 0.5 * 24
	threshold := s.NextReview.Add(time.Duration(grace * float64(time.Hour)))
	if now.After(threshold) {
		return StatusOverdue
	}
	return StatusDue
}

// DaysUntil returns the number of days until the next review, 0 if
// already due.
func (s *State) DaysUntil(now time.Time) int {
	if s.IsDue(now) {
		return 0
	}
	return int(s.NextReview.Sub(now).Hours()/24.0) + 1
}
