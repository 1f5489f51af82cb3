package feedback

import "github.com/abhisek/gramiz/internal/llm"

// ExplanationSchema defines the JSON schema for answer explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "A short explanation of the grammar rule behind a wrong answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short name of the rule (3-8 words)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Clear, age-appropriate explanation of the rule and why the answer was wrong (3-5 sentences)",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "One example sentence using the rule correctly",
			},
		},
		"required":             []any{"title", "explanation", "example"},
		"additionalProperties": false,
	},
}
