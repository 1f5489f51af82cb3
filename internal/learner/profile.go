// Package learner models the longitudinal learner profile consumed by the
// adaptive hint and feedback layers. Profiles are maintained externally
// (rebuilt from stored events); this engine only reads them.
package learner

import "time"

// HintStyle is the learner's preferred hint presentation.
type HintStyle string

const (
	HintStyleText       HintStyle = "text"
	HintStyleVisual     HintStyle = "visual"
	HintStyleExample    HintStyle = "example"
	HintStyleStructural HintStyle = "structural"
)

// ErrorPattern records a recurring mistake type.
type ErrorPattern struct {
	// Type is the diagnosis error type, e.g. "spelling" or "word_order".
	Type string

	// Frequency counts occurrences of this mistake type.
	Frequency int

	// LastOccurrence is when the mistake was last seen.
	LastOccurrence time.Time
}

// Profile is the read-only longitudinal learner record.
type Profile struct {
	// StrengthAreas and WeaknessAreas hold topic labels.
	StrengthAreas []string
	WeaknessAreas []string

	// PreferredHintStyle biases hint selection and feedback wording.
	PreferredHintStyle HintStyle

	// AverageResponseTime is the mean time per answer.
	AverageResponseTime time.Duration

	// SuccessRate is the overall accuracy in [0, 1].
	SuccessRate float64

	// CommonMistakes lists recurring mistake patterns, most frequent
	// first.
	CommonMistakes []ErrorPattern
}

// HasMistake reports whether the profile records the given mistake type.
func (p *Profile) HasMistake(errType string) bool {
	if p == nil {
		return false
	}
	for _, m := range p.CommonMistakes {
		if m.Type == errType {
			return true
		}
	}
	return false
}
