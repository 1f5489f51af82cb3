// Package hints implements the hint-reveal state machine: an ordered,
// capped hint sequence per question that only ever advances. The sequence
// value is owned by the caller; concurrency and persistence are the
// caller's responsibility.
package hints

import (
	"sort"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/learner"
)

// DefaultMaxHints caps how many hints a learner can reveal per question.
const DefaultMaxHints = 3

// HintType describes the presentation style of a hint.
type HintType string

const (
	HintText       HintType = "text"
	HintVisual     HintType = "visual"
	HintExample    HintType = "example"
	HintStructural HintType = "structural"
)

// Hint is one revealable hint.
type Hint struct {
	// Level is the hint's position in the revealed order, assigned when
	// the hint is returned (0-based).
	Level int

	Content string
	Type    HintType

	// RevealPercentage orders hints from least to most revealing
	// (0-100): how much of the help budget this hint consumes.
	RevealPercentage int

	// Category labels the mistake type this hint targets (diagnosis
	// error types). Adaptive selection matches it against the learner's
	// recorded common mistakes. Empty for generic hints.
	Category string
}

// Sequence is the per-question-attempt hint state machine. States:
// not started (CurrentIndex == -1), revealed (0..MaxHints-1), exhausted.
// It is mutated monotonically forward by Next and never rewinds.
type Sequence struct {
	Hints        []Hint
	CurrentIndex int
	MaxHints     int
	Adaptive     bool
}

// BuildSequence constructs the ordered hint list for a question:
// author-provided hints first with reveal percentages at even thirds,
// then type-specific strategy hints, sorted ascending by reveal
// percentage. maxHints is capped at DefaultMaxHints; pass 0 to use the
// default.
func BuildSequence(q *exercise.Question, maxHints int, adaptive bool) *Sequence {
	if maxHints <= 0 || maxHints > DefaultMaxHints {
		maxHints = DefaultMaxHints
	}

	var all []Hint
	for i, content := range q.Hints {
		reveal := (i + 1) * 33
		if reveal > 100 {
			reveal = 100
		}
		all = append(all, Hint{
			Content:          content,
			Type:             HintText,
			RevealPercentage: reveal,
		})
	}
	all = append(all, strategyHints(q)...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].RevealPercentage < all[j].RevealPercentage
	})

	return &Sequence{
		Hints:        all,
		CurrentIndex: -1,
		MaxHints:     maxHints,
		Adaptive:     adaptive,
	}
}

// Exhausted reports whether no more hints can be revealed.
func (s *Sequence) Exhausted() bool {
	if s.CurrentIndex >= s.MaxHints-1 {
		return true
	}
	return s.CurrentIndex >= len(s.Hints)-1
}

// Remaining returns how many hints can still be revealed.
func (s *Sequence) Remaining() int {
	limit := s.MaxHints
	if len(s.Hints) < limit {
		limit = len(s.Hints)
	}
	r := limit - (s.CurrentIndex + 1)
	if r < 0 {
		return 0
	}
	return r
}

// Used returns how many hints have been revealed so far.
func (s *Sequence) Used() int {
	return s.CurrentIndex + 1
}

// Next advances the cursor and returns the next hint, or nil once the
// sequence is exhausted. Advancing an exhausted sequence is a normal
// outcome, not an error. In adaptive mode the hint chosen at this level
// prefers one whose Category matches a mistake type recorded in the
// profile, over the position-ordered default.
func (s *Sequence) Next(profile *learner.Profile) *Hint {
	if s.Exhausted() {
		return nil
	}
	s.CurrentIndex++

	idx := s.CurrentIndex
	if s.Adaptive && profile != nil {
		idx = s.pickAdaptive(profile)
	}
	if idx != s.CurrentIndex {
		// Swap the preferred hint into the cursor position so revealed
		// hints stay a prefix of the list.
		s.Hints[s.CurrentIndex], s.Hints[idx] = s.Hints[idx], s.Hints[s.CurrentIndex]
	}

	h := s.Hints[s.CurrentIndex]
	h.Level = s.CurrentIndex
	s.Hints[s.CurrentIndex] = h
	return &h
}

// pickAdaptive scans the unrevealed hints for one targeting a recorded
// common mistake. Falls back to the cursor position.
func (s *Sequence) pickAdaptive(profile *learner.Profile) int {
	for i := s.CurrentIndex; i < len(s.Hints); i++ {
		if s.Hints[i].Category != "" && profile.HasMistake(s.Hints[i].Category) {
			return i
		}
	}
	return s.CurrentIndex
}
