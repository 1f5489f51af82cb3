package grading

import (
	"fmt"

	"github.com/abhisek/gramiz/internal/exercise"
)

// validateDragAndDrop grades each target zone against its accepted item
// set. Partial credit is correctly-placed items over total items. A
// mismatch is surfaced twice: as an incorrect placement on the zone it
// landed in and as a missing item on the zone that expected it.
func validateDragAndDrop(q *exercise.Question, resp exercise.Response, opts Options) Outcome {
	d := q.DragAndDrop
	out := Outcome{MaxPoints: q.Points}

	accepts := make(map[string]map[string]bool, len(d.Zones))
	for _, zone := range d.Zones {
		set := make(map[string]bool, len(zone.Accepts))
		for _, id := range zone.Accepts {
			set[id] = true
		}
		accepts[zone.ID] = set
	}

	placedCorrectly := 0
	placedAt := make(map[string]string) // item ID -> zone ID
	for _, zone := range d.Zones {
		for _, itemID := range resp.Placements[zone.ID] {
			placedAt[itemID] = zone.ID
			if accepts[zone.ID][itemID] {
				placedCorrectly++
			} else {
				out.ErrorDetails = append(out.ErrorDetails, fmt.Sprintf(
					"zone %s: incorrect placement of %s", zone.ID, itemID,
				))
			}
		}
	}

	for _, zone := range d.Zones {
		for _, itemID := range zone.Accepts {
			if placedAt[itemID] != zone.ID {
				out.ErrorDetails = append(out.ErrorDetails, fmt.Sprintf(
					"zone %s: missing %s", zone.ID, itemID,
				))
			}
		}
	}

	total := len(d.Items)
	ratio := float64(placedCorrectly) / float64(total)
	out.PartialCredit = ratio
	out.IsCorrect = placedCorrectly == total

	switch {
	case out.IsCorrect:
		out.Points = q.Points
	case opts.AllowPartialCredit:
		out.Points = round2(ratio * q.Points)
	}
	return out
}
