// Package textsim provides shallow text-similarity heuristics used by the
// grading and diagnosis layers: normalization, edit distance, word-set
// overlap, and grammatical-variant candidate generation. All heuristics are
// intentionally rule-based approximations, not a grammar engine.
package textsim

import (
	"strings"
	"unicode"
)

// Normalize lowercases, trims, strips punctuation, and collapses whitespace.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsPunct(r):
			// dropped
		default:
			if pendingSpace && len(out) > 0 {
				out = append(out, ' ')
			}
			pendingSpace = false
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}

// Words splits s into normalized words.
func Words(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Fields(n)
}

// Levenshtein computes the edit distance between a and b with unit costs
// for insertion, deletion, and substitution.
func Levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	row := make([]int, m+1)
	for j := 0; j <= m; j++ {
		row[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= m; j++ {
			tmp := row[j]
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			row[j] = minOf(row[j]+1, row[j-1]+1, prev+cost)
			prev = tmp
		}
	}
	return row[m]
}

// SpellingSlipMaxDistance is the largest normalized edit distance still
// classified as a spelling slip rather than a wrong answer.
const SpellingSlipMaxDistance = 2

// IsSpellingSlip reports whether got is a small misspelling of want:
// normalized edit distance in [1, SpellingSlipMaxDistance].
func IsSpellingSlip(got, want string) bool {
	d := Levenshtein(Normalize(got), Normalize(want))
	return d >= 1 && d <= SpellingSlipMaxDistance
}

// WordOverlap returns the intersection-over-union of the unique normalized
// word sets of a and b. Two empty inputs overlap fully.
func WordOverlap(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range Words(s) {
		set[w] = true
	}
	return set
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
