package diagnosis

import (
	"strings"

	"github.com/abhisek/gramiz/internal/textsim"
)

// subjectTokens are words that read as a sentence subject on their own.
// Articles count because they introduce a noun phrase. Shallow by design;
// this is not a parser.
var subjectTokens = map[string]bool{
	"i": true, "you": true, "he": true, "she": true, "it": true,
	"we": true, "they": true,
	"the": true, "a": true, "an": true,
	"this": true, "that": true, "these": true, "those": true,
}

// verbTokens are common verbs and auxiliaries recognized directly.
var verbTokens = map[string]bool{
	"is": true, "are": true, "was": true, "were": true, "am": true,
	"be": true, "been": true, "being": true,
	"has": true, "have": true, "had": true,
	"do": true, "does": true, "did": true,
	"can": true, "could": true, "will": true, "would": true,
	"go": true, "goes": true, "went": true,
	"run": true, "runs": true, "ran": true,
}

// isPlausibleSentence reports whether the word sequence contains a
// recognizable subject-like token and a recognizable verb-like token.
func isPlausibleSentence(words []string) bool {
	hasSubject := false
	hasVerb := false
	for _, w := range words {
		n := textsim.Normalize(w)
		if subjectTokens[n] {
			hasSubject = true
		}
		if isVerbLike(n) {
			hasVerb = true
		}
	}
	return hasSubject && hasVerb
}

// isVerbLike recognizes direct verb tokens plus -ed/-ing inflections.
func isVerbLike(w string) bool {
	if verbTokens[w] {
		return true
	}
	if len(w) > 4 && (strings.HasSuffix(w, "ed") || strings.HasSuffix(w, "ing")) {
		return true
	}
	return false
}
