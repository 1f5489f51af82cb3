package grading

import (
	"strings"

	"github.com/abhisek/gramiz/internal/exercise"
)

// validateMultipleChoice grades by set intersection: the submission is
// correct when any selection matches any acceptable answer. Scoring is
// binary, no partial credit for this type.
func validateMultipleChoice(q *exercise.Question, resp exercise.Response, opts Options) Outcome {
	d := q.MultipleChoice
	caseSensitive := d.CaseSensitive || opts.CaseSensitive

	out := Outcome{MaxPoints: q.Points}

	if len(resp.Selections) == 0 {
		out.ErrorDetails = append(out.ErrorDetails, "no option selected")
		return out
	}

	for _, sel := range resp.Selections {
		for _, correct := range d.Correct {
			if equalChoice(sel, correct, caseSensitive) {
				out.IsCorrect = true
				out.Points = q.Points
				out.PartialCredit = 1
				return out
			}
		}
	}

	out.ErrorDetails = append(out.ErrorDetails, "selected option is not correct")
	return out
}

func equalChoice(a, b string, caseSensitive bool) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}
