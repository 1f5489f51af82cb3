package session

import (
	"sort"
	"time"

	"github.com/abhisek/gramiz/internal/learner"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	TotalHints     int
	Accuracy       float64
	TopicResults   []TopicResult

	// NeedsRemediation and EligibleForEnrichment are the aggregate
	// placement flags for this session's results.
	NeedsRemediation      bool
	EligibleForEnrichment bool
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(state *State) *Summary {
	var topics []TopicResult
	for _, tr := range state.PerTopicResults {
		topics = append(topics, *tr)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Topic < topics[j].Topic })

	var accuracy float64
	if state.TotalQuestions > 0 {
		accuracy = float64(state.TotalCorrect) / float64(state.TotalQuestions)
	}

	return &Summary{
		Duration:              state.Elapsed,
		TotalQuestions:        state.TotalQuestions,
		TotalCorrect:          state.TotalCorrect,
		TotalHints:            state.TotalHints,
		Accuracy:              accuracy,
		TopicResults:          topics,
		NeedsRemediation:      learner.NeedsRemediation(state.Results),
		EligibleForEnrichment: learner.EligibleForEnrichment(state.Results),
	}
}
