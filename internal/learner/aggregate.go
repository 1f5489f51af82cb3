package learner

// Accuracy thresholds for aggregate placement decisions.
const (
	// RemediationThreshold is the accuracy below which (exclusive) a
	// learner is flagged for remediation.
	RemediationThreshold = 0.6

	// EnrichmentThreshold is the accuracy at or above which a learner
	// is eligible for enrichment material.
	EnrichmentThreshold = 0.9
)

// Result is the minimal per-question outcome used by aggregate checks.
type Result struct {
	Correct bool
}

// AccuracyOf returns the fraction of correct results, 0 for an empty set.
func AccuracyOf(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	correct := 0
	for _, r := range results {
		if r.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(results))
}

// NeedsRemediation flags a result set with accuracy below 0.6.
func NeedsRemediation(results []Result) bool {
	return len(results) > 0 && AccuracyOf(results) < RemediationThreshold
}

// EligibleForEnrichment flags a result set with accuracy of 0.9 or more.
func EligibleForEnrichment(results []Result) bool {
	return len(results) > 0 && AccuracyOf(results) >= EnrichmentThreshold
}
