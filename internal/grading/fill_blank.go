package grading

import (
	"fmt"
	"strings"

	"github.com/abhisek/gramiz/internal/exercise"
)

// validateFillInBlank grades each blank independently against its own
// acceptable-answer list. Overall correctness requires every blank; with
// partial credit enabled, points scale with correctBlanks/totalBlanks.
func validateFillInBlank(q *exercise.Question, resp exercise.Response, opts Options) Outcome {
	d := q.FillInBlank
	out := Outcome{MaxPoints: q.Points}

	correct := 0
	for _, blank := range d.Blanks {
		answer := resp.Blanks[blank.ID]
		if blankCorrect(blank, answer, opts) {
			correct++
			continue
		}
		out.ErrorDetails = append(out.ErrorDetails, fmt.Sprintf(
			"blank %s: expected one of [%s]",
			blank.ID, strings.Join(blank.Acceptable, ", "),
		))
	}

	total := len(d.Blanks)
	ratio := float64(correct) / float64(total)
	out.PartialCredit = ratio
	out.IsCorrect = correct == total

	switch {
	case out.IsCorrect:
		out.Points = q.Points
	case opts.AllowPartialCredit:
		out.Points = round2(ratio * q.Points)
	}
	return out
}

// blankCorrect compares a submission against one blank. Case sensitivity
// is the blank's own setting unless the global strict-case option is on.
func blankCorrect(blank exercise.Blank, answer string, opts Options) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	caseSensitive := blank.CaseSensitive || opts.CaseSensitive
	for _, acceptable := range blank.Acceptable {
		acceptable = strings.TrimSpace(acceptable)
		if caseSensitive {
			if answer == acceptable {
				return true
			}
		} else if strings.EqualFold(answer, acceptable) {
			return true
		}
	}
	return false
}
