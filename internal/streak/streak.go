// Package streak computes the learner's daily practice streak from the
// event log.
package streak

import (
	"context"
	"time"

	"github.com/abhisek/gramiz/internal/store"
)

// Current returns the number of consecutive calendar days with at least
// one completed session, counting back from today. A streak survives
// until a full day is skipped: practicing yesterday but not yet today
// still counts.
func Current(ctx context.Context, repo store.EventRepo, now time.Time) (int, error) {
	if repo == nil {
		return 0, nil
	}
	days, err := repo.SessionDays(ctx)
	if err != nil {
		return 0, err
	}
	return count(days, now), nil
}

func count(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	cursor := truncate(now)
	// No session today yet: the streak may still be alive from yesterday.
	if !days[0].Equal(cursor) {
		cursor = cursor.AddDate(0, 0, -1)
	}

	n := 0
	for _, day := range days {
		if !day.Equal(cursor) {
			break
		}
		n++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return n
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
