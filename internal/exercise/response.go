package exercise

// Response is a learner's submission for one question. Only the field
// matching the question type is consulted by the engine.
type Response struct {
	// Selections holds the chosen option texts for multiple choice.
	// Multi-select submissions carry more than one entry.
	Selections []string `json:"selections,omitempty"`

	// Blanks maps blank ID to the typed answer for fill in blank.
	Blanks map[string]string `json:"blanks,omitempty"`

	// Placements maps zone ID to the item IDs dropped there.
	Placements map[string][]string `json:"placements,omitempty"`

	// WordOrder is the learner's word sequence for sentence builder.
	WordOrder []string `json:"word_order,omitempty"`
}
