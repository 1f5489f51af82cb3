package learner

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/gramiz/internal/store"
)

// BuildProfile rebuilds the learner profile from the event log. Topics at
// or above the enrichment threshold become strength areas, topics below
// the remediation threshold become weakness areas, and the preferred hint
// style is the most-consumed hint presentation type.
func BuildProfile(ctx context.Context, repo store.EventRepo) (*Profile, error) {
	stats, err := repo.AnswerStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}

	p := &Profile{
		AverageResponseTime: time.Duration(stats.AvgTimeMs) * time.Millisecond,
	}
	if stats.Total > 0 {
		p.SuccessRate = float64(stats.Correct) / float64(stats.Total)
	}

	topics, err := repo.TopicStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}
	for _, t := range topics {
		switch {
		case t.Accuracy() >= EnrichmentThreshold:
			p.StrengthAreas = append(p.StrengthAreas, t.Topic)
		case t.Accuracy() < RemediationThreshold:
			p.WeaknessAreas = append(p.WeaknessAreas, t.Topic)
		}
	}

	mistakes, err := repo.MistakeStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}
	for _, m := range mistakes {
		p.CommonMistakes = append(p.CommonMistakes, ErrorPattern{
			Type:           m.ErrorType,
			Frequency:      m.Count,
			LastOccurrence: m.Last,
		})
	}

	hintTypes, err := repo.HintTypeCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}
	if len(hintTypes) > 0 {
		p.PreferredHintStyle = HintStyle(hintTypes[0].HintType)
	}

	return p, nil
}

// ToSnapshot converts the profile into its stored form.
func (p *Profile) ToSnapshot() store.ProfileSnapshot {
	snap := store.ProfileSnapshot{
		StrengthAreas:      p.StrengthAreas,
		WeaknessAreas:      p.WeaknessAreas,
		PreferredHintStyle: string(p.PreferredHintStyle),
		AvgResponseMs:      p.AverageResponseTime.Milliseconds(),
		SuccessRate:        p.SuccessRate,
	}
	for _, m := range p.CommonMistakes {
		snap.CommonMistakes = append(snap.CommonMistakes, store.MistakePattern{
			Type:           m.Type,
			Frequency:      m.Frequency,
			LastOccurrence: m.LastOccurrence,
		})
	}
	return snap
}

// FromSnapshot restores a profile from its stored form.
func FromSnapshot(snap store.ProfileSnapshot) *Profile {
	p := &Profile{
		StrengthAreas:       snap.StrengthAreas,
		WeaknessAreas:       snap.WeaknessAreas,
		PreferredHintStyle:  HintStyle(snap.PreferredHintStyle),
		AverageResponseTime: time.Duration(snap.AvgResponseMs) * time.Millisecond,
		SuccessRate:         snap.SuccessRate,
	}
	for _, m := range snap.CommonMistakes {
		p.CommonMistakes = append(p.CommonMistakes, ErrorPattern{
			Type:           m.Type,
			Frequency:      m.Frequency,
			LastOccurrence: m.LastOccurrence,
		})
	}
	return p
}
