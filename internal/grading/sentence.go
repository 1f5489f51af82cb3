package grading

import (
	"strings"

	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/textsim"
)

// validateSentenceBuilder grades the learner's word sequence, joined by
// single spaces, against the acceptable target sentences. Strict matching
// requires exact word order; otherwise a word-multiset match also counts.
// When incorrect, partial credit is the unique-word overlap with the first
// acceptable sentence.
func validateSentenceBuilder(q *exercise.Question, resp exercise.Response, opts Options) Outcome {
	d := q.SentenceBuilder
	out := Outcome{MaxPoints: q.Points}

	if len(resp.WordOrder) == 0 {
		out.ErrorDetails = append(out.ErrorDetails, "no sentence built")
		return out
	}

	candidate := strings.Join(resp.WordOrder, " ")

	for _, acceptable := range d.Acceptable {
		wantWords := textsim.Words(acceptable)
		if sameOrder(resp.WordOrder, wantWords) {
			out.IsCorrect = true
			break
		}
		if !opts.StrictMatching && textsim.SameWordMultiset(resp.WordOrder, wantWords) {
			out.IsCorrect = true
			break
		}
	}

	if out.IsCorrect {
		out.Points = q.Points
		out.PartialCredit = 1
		return out
	}

	out.ErrorDetails = append(out.ErrorDetails,
		"sentence does not match: "+candidate)
	out.PartialCredit = textsim.WordOverlap(candidate, d.Acceptable[0])
	if opts.AllowPartialCredit {
		out.Points = round2(out.PartialCredit * q.Points)
	}
	return out
}

// sameOrder reports whether got matches want word for word after
// normalization.
func sameOrder(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if textsim.Normalize(got[i]) != textsim.Normalize(want[i]) {
			return false
		}
	}
	return true
}
