package textsim

// Transpositions returns the positions in got where the word differs from
// want at that index but exists somewhere else in want — words placed at
// the wrong position rather than wrong words. Comparison is over
// normalized words; extra trailing words in got are ignored.
func Transpositions(got, want []string) []int {
	wantSet := make(map[string]bool, len(want))
	normWant := make([]string, len(want))
	for i, w := range want {
		normWant[i] = Normalize(w)
		wantSet[normWant[i]] = true
	}

	var positions []int
	for i, g := range got {
		if i >= len(normWant) {
			break
		}
		ng := Normalize(g)
		if ng != normWant[i] && wantSet[ng] {
			positions = append(positions, i)
		}
	}
	return positions
}

// SameWordMultiset reports whether got and want contain the same normalized
// words with the same multiplicities, regardless of order.
func SameWordMultiset(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	counts := make(map[string]int, len(want))
	for _, w := range want {
		counts[Normalize(w)]++
	}
	for _, g := range got {
		counts[Normalize(g)]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}
