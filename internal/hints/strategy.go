package hints

import (
	"fmt"
	"strings"

	"github.com/abhisek/gramiz/internal/exercise"
)

// strategyHints generates type-specific hints that follow any authored
// hints in the reveal order. Reveal percentages sit between and after the
// authored thirds so sorting interleaves sensibly.
func strategyHints(q *exercise.Question) []Hint {
	switch q.Type {
	case exercise.TypeMultipleChoice:
		return multipleChoiceHints(q)
	case exercise.TypeFillInBlank:
		return fillInBlankHints(q)
	case exercise.TypeDragAndDrop:
		return dragAndDropHints(q)
	case exercise.TypeSentenceBuilder:
		return sentenceBuilderHints(q)
	default:
		return nil
	}
}

func multipleChoiceHints(q *exercise.Question) []Hint {
	return []Hint{
		{
			Content:          "Rule out the options that look obviously wrong first.",
			Type:             HintStructural,
			RevealPercentage: 40,
			Category:         "common_misconception",
		},
		{
			Content:          "Read the prompt once more — one option matches it exactly.",
			Type:             HintText,
			RevealPercentage: 90,
		},
	}
}

func fillInBlankHints(q *exercise.Question) []Hint {
	hints := []Hint{
		{
			Content:          "Say the sentence aloud with your answer in place. Does it sound right?",
			Type:             HintText,
			RevealPercentage: 45,
			Category:         "grammar",
		},
		{
			Content:          "Check your spelling letter by letter before submitting.",
			Type:             HintText,
			RevealPercentage: 70,
			Category:         "spelling",
		},
	}
	if d := q.FillInBlank; d != nil && len(d.Blanks) > 0 && len(d.Blanks[0].Acceptable) > 0 {
		first := d.Blanks[0].Acceptable[0]
		if first != "" {
			hints = append(hints, Hint{
				Content:          fmt.Sprintf("The first blank starts with %q.", string([]rune(first)[0])),
				Type:             HintExample,
				RevealPercentage: 95,
			})
		}
	}
	return hints
}

func dragAndDropHints(q *exercise.Question) []Hint {
	hints := []Hint{
		{
			Content:          "Sort the items you are sure about first, then revisit the rest.",
			Type:             HintStructural,
			RevealPercentage: 45,
			Category:         "misplacement",
		},
	}
	if d := q.DragAndDrop; d != nil && len(d.Zones) > 0 {
		labels := make([]string, 0, len(d.Zones))
		for _, z := range d.Zones {
			labels = append(labels, z.Label)
		}
		hints = append(hints, Hint{
			Content:          "Think about what each zone means: " + strings.Join(labels, ", ") + ".",
			Type:             HintVisual,
			RevealPercentage: 80,
			Category:         "misplacement",
		})
	}
	return hints
}

func sentenceBuilderHints(q *exercise.Question) []Hint {
	hints := []Hint{
		{
			Content:          "English sentences usually go subject, then verb, then the rest.",
			Type:             HintStructural,
			RevealPercentage: 45,
			Category:         "word_order",
		},
	}
	if d := q.SentenceBuilder; d != nil && len(d.Acceptable) > 0 {
		words := strings.Fields(d.Acceptable[0])
		if len(words) > 0 {
			hints = append(hints, Hint{
				Content:          fmt.Sprintf("The sentence starts with %q.", words[0]),
				Type:             HintExample,
				RevealPercentage: 85,
				Category:         "word_order",
			})
		}
	}
	return hints
}
