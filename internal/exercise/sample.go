package exercise

// SamplePack returns a small built-in pack so `gramiz play` works without
// any content files on disk.
func SamplePack() *Pack {
	return &Pack{
		Name: "starter",
		Questions: []Question{
			{
				ID:     "starter-mc-1",
				Type:   TypeMultipleChoice,
				Prompt: "Which word is the plural of \"child\"?",
				Topic:  "plurals",
				Points: 10,
				Hints:  []string{"It does not end in -s.", "Think of an irregular form."},
				MultipleChoice: &MultipleChoiceData{
					Options: []string{"childs", "children", "childes", "child"},
					Correct: []string{"children"},
				},
			},
			{
				ID:     "starter-fib-1",
				Type:   TypeFillInBlank,
				Prompt: "She ____ to school every day. (go)",
				Topic:  "verb-tense",
				Points: 10,
				Hints:  []string{"Third person singular, present tense."},
				FillInBlank: &FillInBlankData{
					Blanks: []Blank{
						{ID: "b1", Acceptable: []string{"goes"}},
					},
				},
			},
			{
				ID:     "starter-dnd-1",
				Type:   TypeDragAndDrop,
				Prompt: "Sort the words into nouns and verbs.",
				Topic:  "parts-of-speech",
				Points: 12,
				DragAndDrop: &DragAndDropData{
					Items: []DragItem{
						{ID: "dog", Label: "dog"},
						{ID: "run", Label: "run"},
						{ID: "tree", Label: "tree"},
						{ID: "jump", Label: "jump"},
					},
					Zones: []DropZone{
						{ID: "nouns", Label: "Nouns", Accepts: []string{"dog", "tree"}},
						{ID: "verbs", Label: "Verbs", Accepts: []string{"run", "jump"}},
					},
				},
			},
			{
				ID:     "starter-sb-1",
				Type:   TypeSentenceBuilder,
				Prompt: "Build a sentence from the words.",
				Topic:  "word-order",
				Points: 10,
				Hints:  []string{"Start with the article."},
				SentenceBuilder: &SentenceBuilderData{
					Words:      []string{"running", "the", "is", "dog"},
					Acceptable: []string{"The dog is running"},
				},
			},
		},
	}
}
