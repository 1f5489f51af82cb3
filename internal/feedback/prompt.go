package feedback

import (
	"fmt"
	"strings"

	"github.com/abhisek/gramiz/internal/exercise"
)

const explainerSystemPrompt = `You are a patient, encouraging English grammar tutor for young learners. A student gave a wrong answer and needs a short, clear explanation of the rule they missed.`

func buildExplainUserMessage(input ExplainInput) string {
	var b strings.Builder

	if q := input.Question; q != nil {
		b.WriteString(fmt.Sprintf("Question type: %s\n", q.Type))
		b.WriteString(fmt.Sprintf("Prompt: %s\n", q.Prompt))
		if q.Topic != "" {
			b.WriteString(fmt.Sprintf("Topic: %s\n", q.Topic))
		}
		b.WriteString(fmt.Sprintf("Expected: %s\n", expectedSummary(q)))
	}
	b.WriteString(fmt.Sprintf("Student's answer: %s\n", input.Answer))

	if a := input.Analysis; a != nil {
		b.WriteString(fmt.Sprintf("\nDiagnosed error type: %s\n", a.ErrorType))
		if a.CommonMistake {
			b.WriteString("This matches a known common mistake.\n")
		}
		for _, issue := range a.SpecificIssues {
			b.WriteString(fmt.Sprintf("- %s\n", issue))
		}
	}

	b.WriteString(`
Instructions:
Explain the grammar rule the student missed:
1. State the rule in 2-3 simple sentences a child would understand.
2. Explain why the student's specific answer doesn't follow the rule. Be kind, never mocking.
3. Give one short example sentence that uses the rule correctly.
4. Use plain text only. No markup, no bullet lists.`)

	return b.String()
}

// expectedSummary renders the acceptable answer(s) of a question as a
// short plain-text line for the prompt.
func expectedSummary(q *exercise.Question) string {
	switch q.Type {
	case exercise.TypeMultipleChoice:
		return strings.Join(q.MultipleChoice.Correct, " or ")
	case exercise.TypeFillInBlank:
		parts := make([]string, 0, len(q.FillInBlank.Blanks))
		for _, blank := range q.FillInBlank.Blanks {
			parts = append(parts, fmt.Sprintf("%s: %s", blank.ID, strings.Join(blank.Acceptable, "/")))
		}
		return strings.Join(parts, "; ")
	case exercise.TypeDragAndDrop:
		parts := make([]string, 0, len(q.DragAndDrop.Zones))
		for _, z := range q.DragAndDrop.Zones {
			parts = append(parts, fmt.Sprintf("%s: %s", z.Label, strings.Join(z.Accepts, ", ")))
		}
		return strings.Join(parts, "; ")
	case exercise.TypeSentenceBuilder:
		return strings.Join(q.SentenceBuilder.Acceptable, " or ")
	default:
		return ""
	}
}
