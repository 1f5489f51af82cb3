package feedback

import (
	"fmt"

	"github.com/abhisek/gramiz/internal/diagnosis"
	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/learner"
)

// baseMessage builds the title and message for the outcome type. Correct
// variants degrade with hints used and attempts taken; incorrect variants
// acknowledge known misconceptions.
func baseMessage(t Type, a *diagnosis.Analysis, ctx Context) (string, string) {
	switch t {
	case TypeCorrect:
		return correctMessage(ctx)
	case TypePartial:
		return "Partly there!", fmt.Sprintf(
			"You earned %.0f%% of the points. Look at what went wrong and adjust.",
			a.PartialCredit*100)
	default:
		return incorrectMessage(a, ctx)
	}
}

func correctMessage(ctx Context) (string, string) {
	switch {
	case ctx.HintsUsed == 0 && ctx.AttemptNumber == 1:
		return "Perfect!", "You nailed it on the first try."
	case ctx.HintsUsed == 0:
		return "Got it!", "Persistence pays off. Well done."
	default:
		return "Correct!", "You got there with a little help. That still counts."
	}
}

func incorrectMessage(a *diagnosis.Analysis, ctx Context) (string, string) {
	if a.CommonMistake {
		if ctx.AttemptNumber == 1 {
			return "A classic mix-up", "That's a very common mistake. The rule here has an exception worth remembering."
		}
		return "Same trap again", "This answer trips up a lot of learners. Slow down and think about the exception to the rule."
	}
	switch {
	case ctx.AttemptNumber == 1:
		return "Not quite", "That's not the answer we're looking for. Take another look."
	case ctx.AttemptNumber == 2:
		return "Still not quite", "Getting closer? Compare your answer against the prompt once more."
	default:
		return "Let's slow down", "Take a breath and re-read the question carefully before trying again."
	}
}

// conceptsByError maps an error type to the concepts worth reviewing.
var conceptsByError = map[diagnosis.ErrorType][]string{
	diagnosis.ErrorSpelling:      {"spelling patterns", "silent letters"},
	diagnosis.ErrorGrammar:       {"verb forms", "singular and plural"},
	diagnosis.ErrorWordOrder:     {"sentence structure", "subject-verb-object order"},
	diagnosis.ErrorMisplacement:  {"parts of speech", "word categories"},
	diagnosis.ErrorMisconception: {"irregular forms"},
}

func relatedConcepts(q *exercise.Question, errType diagnosis.ErrorType) []string {
	concepts := append([]string(nil), conceptsByError[errType]...)
	if q != nil && q.Topic != "" {
		concepts = append(concepts, q.Topic)
	}
	return concepts
}

// personalization returns a clause to append when a learner profile is
// present: visual-style learners get pointed at the visual guide, and
// recurring mistake types get flagged as a known pattern.
func personalization(p *learner.Profile, a *diagnosis.Analysis) string {
	var clause string
	if p.PreferredHintStyle == learner.HintStyleVisual {
		clause += " Check the visual guide for this topic."
	}
	if a.ErrorType != diagnosis.ErrorNone && p.HasMistake(string(a.ErrorType)) {
		clause += " This relates to a pattern we've seen before."
	}
	return clause
}

// encouragementByTone holds the encouragement lines per tone, indexed by
// attempt bucket (first, second, third-or-later).
var encouragementByTone = map[Tone][3]string{
	ToneFormal: {
		"Review the relevant rule and attempt the question again.",
		"Consider the feedback above before your next attempt.",
		"A short review of the material may help before continuing.",
	},
	ToneCasual: {
		"No worries, give it another go!",
		"Close one! Shake it off and try again.",
		"Tough question. Want to grab a hint?",
	},
	ToneEncouraging: {
		"You can do this! Try again.",
		"You're getting closer. Keep at it!",
		"Every attempt teaches you something. One more try!",
	},
}

func encouragement(tone Tone, attempt int) string {
	lines, ok := encouragementByTone[tone]
	if !ok {
		lines = encouragementByTone[ToneEncouraging]
	}
	idx := attempt - 1
	if idx < 0 {
		idx = 0
	}
	if idx > 2 {
		idx = 2
	}
	return lines[idx]
}

// reviewByType suggests what to revisit per question type.
var reviewByType = map[exercise.QuestionType]string{
	exercise.TypeMultipleChoice:  "Re-read each option carefully and rule out the ones that can't be right.",
	exercise.TypeFillInBlank:     "Re-read the sentence around each blank and check what form fits.",
	exercise.TypeDragAndDrop:     "Review what each zone means before placing the items.",
	exercise.TypeSentenceBuilder: "Review basic sentence order: subject first, then the verb.",
}

func nextSteps(t Type, ctx Context) string {
	if t == TypeCorrect {
		return "Move on to the next question."
	}
	if ctx.AttemptNumber >= 3 && ctx.HintsUsed == 0 {
		return "Try using a hint before your next attempt."
	}
	if ctx.Question != nil {
		if s, ok := reviewByType[ctx.Question.Type]; ok {
			return s
		}
	}
	return "Review the material and try again."
}
