package textsim

import "strings"

// irregularPlurals maps singular forms to irregular plurals. Seeded once at
// init and never mutated, safe for concurrent reads.
var irregularPlurals = map[string]string{
	"child":  "children",
	"person": "people",
	"man":    "men",
	"woman":  "women",
	"foot":   "feet",
	"tooth":  "teeth",
	"goose":  "geese",
	"mouse":  "mice",
	"ox":     "oxen",
	"sheep":  "sheep",
	"deer":   "deer",
	"fish":   "fish",
}

// irregularSingulars is the reverse index of irregularPlurals.
var irregularSingulars map[string]string

func init() {
	irregularSingulars = make(map[string]string, len(irregularPlurals))
	for sg, pl := range irregularPlurals {
		irregularSingulars[pl] = sg
	}
}

// Variants generates grammatical-variant candidates for a normalized word:
// regular plural suffixes (-s, -es, -ies, -ves), the irregular-plural
// lookup in both directions, and verb suffix forms (-ed, -ing, -s).
// The input word itself is never included.
func Variants(word string) []string {
	w := Normalize(word)
	if w == "" {
		return nil
	}

	seen := map[string]bool{w: true}
	var out []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	// Regular plurals.
	add(w + "s")
	add(w + "es")
	if strings.HasSuffix(w, "y") && len(w) > 1 {
		add(w[:len(w)-1] + "ies")
	}
	if strings.HasSuffix(w, "f") {
		add(w[:len(w)-1] + "ves")
	}
	if strings.HasSuffix(w, "fe") {
		add(w[:len(w)-2] + "ves")
	}

	// Irregular plurals, both directions.
	add(irregularPlurals[w])
	add(irregularSingulars[w])

	// Verb suffix candidates.
	add(w + "ed")
	add(w + "ing")
	if strings.HasSuffix(w, "e") {
		add(w[:len(w)-1] + "ed")
		add(w[:len(w)-1] + "ing")
	}

	return out
}

// IsVariantOf reports whether got is a grammatical variant of want in
// either direction, after normalization.
func IsVariantOf(got, want string) bool {
	g := Normalize(got)
	w := Normalize(want)
	if g == "" || w == "" || g == w {
		return false
	}
	for _, v := range Variants(w) {
		if v == g {
			return true
		}
	}
	for _, v := range Variants(g) {
		if v == w {
			return true
		}
	}
	return false
}
