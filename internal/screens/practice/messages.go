package practice

import (
	"time"

	"github.com/abhisek/gramiz/internal/feedback"
)

// timerTickMsg is sent every second to update the elapsed display.
type timerTickMsg time.Time

// explanationPollMsg is sent at short intervals while an async LLM
// explanation is pending.
type explanationPollMsg time.Time

// explanationReadyMsg delivers a consumed explanation.
type explanationReadyMsg struct {
	Explanation *feedback.Explanation
}

// feedbackDoneMsg is sent when the learner dismisses the feedback view.
type feedbackDoneMsg struct{}

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}
