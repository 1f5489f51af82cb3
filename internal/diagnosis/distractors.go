package diagnosis

import "github.com/abhisek/gramiz/internal/textsim"

// DistractorSource supplies known wrong answers for a given correct
// answer. Implementations must be read-only; the engine never mutates or
// caches beyond the lookup. The default source is the seeded registry
// below, but callers may inject their own (e.g. authored per content
// pack).
type DistractorSource interface {
	// Distractors returns the known wrong answers commonly given when
	// the correct answer is the given text. Normalized comparison is the
	// caller's job.
	Distractors(correct string) []string
}

// registrySource is the built-in DistractorSource backed by seed data.
type registrySource struct{}

// DefaultDistractors returns the seeded distractor registry.
func DefaultDistractors() DistractorSource {
	return registrySource{}
}

func (registrySource) Distractors(correct string) []string {
	return distractorRegistry[textsim.Normalize(correct)]
}

// distractorRegistry maps a normalized correct answer to the wrong
// answers learners commonly give for it. Seeded once, never mutated.
var distractorRegistry = map[string][]string{
	"children": {"childs", "childes"},
	"mice":     {"mouses", "mices"},
	"geese":    {"gooses"},
	"feet":     {"foots", "feets"},
	"teeth":    {"tooths"},
	"women":    {"womans"},
	"men":      {"mans"},
	"went":     {"goed", "wented"},
	"ran":      {"runned"},
	"ate":      {"eated"},
	"saw":      {"seed", "sawed"},
	"brought":  {"bringed", "brang"},
	"caught":   {"catched"},
	"taught":   {"teached"},
	"better":   {"gooder", "more good"},
	"worse":    {"badder", "more bad"},
}

// isKnownDistractor reports whether got is a recorded distractor for any
// of the acceptable answers.
func isKnownDistractor(src DistractorSource, got string, acceptable []string) bool {
	if src == nil {
		return false
	}
	ng := textsim.Normalize(got)
	if ng == "" {
		return false
	}
	for _, correct := range acceptable {
		for _, d := range src.Distractors(correct) {
			if textsim.Normalize(d) == ng {
				return true
			}
		}
	}
	return false
}
