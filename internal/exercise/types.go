// Package exercise defines the question model shared by the grading,
// diagnosis, hint, and feedback layers. Questions are a tagged union keyed
// by Type with one payload struct per question type, validated at the
// loading boundary so grading logic never shape-sniffs.
package exercise

import (
	"encoding/json"
	"fmt"
)

// QuestionType tags the interaction type of a question.
type QuestionType string

const (
	TypeMultipleChoice  QuestionType = "multiple_choice"
	TypeFillInBlank     QuestionType = "fill_in_blank"
	TypeDragAndDrop     QuestionType = "drag_and_drop"
	TypeSentenceBuilder QuestionType = "sentence_builder"
)

// Question is a published exercise question. Owned by content authoring;
// immutable once loaded, read-only to the engine.
type Question struct {
	// ID identifies the question within its content pack.
	ID string `json:"id"`

	// Type selects which payload field is populated.
	Type QuestionType `json:"type"`

	// Prompt is the question text displayed to the learner.
	Prompt string `json:"prompt"`

	// Topic labels the grammar concept being exercised
	// (e.g. "plurals", "verb-tense", "word-order"). Used for stats
	// and learner-profile aggregation, not for grading.
	Topic string `json:"topic,omitempty"`

	// Points is the maximum score for this question.
	Points float64 `json:"points"`

	// Hints are optional author-provided hints, ordered least to most
	// revealing. Empty slice if none were authored.
	Hints []string `json:"hints,omitempty"`

	// Exactly one of the following is non-nil, matching Type.
	MultipleChoice  *MultipleChoiceData  `json:"-"`
	FillInBlank     *FillInBlankData     `json:"-"`
	DragAndDrop     *DragAndDropData     `json:"-"`
	SentenceBuilder *SentenceBuilderData `json:"-"`
}

// MultipleChoiceData holds the options and the acceptable selections.
type MultipleChoiceData struct {
	// Options are the displayed choices.
	Options []string `json:"options"`

	// Correct is the set of acceptable selections. A submission is
	// correct when it intersects this set.
	Correct []string `json:"correct"`

	// CaseSensitive forces exact-case comparison when true.
	CaseSensitive bool `json:"case_sensitive,omitempty"`
}

// Blank is one fill-in slot with its own acceptable-answer list.
type Blank struct {
	ID            string   `json:"id"`
	Acceptable    []string `json:"acceptable"`
	CaseSensitive bool     `json:"case_sensitive,omitempty"`
}

// FillInBlankData holds the blanks graded independently.
type FillInBlankData struct {
	Blanks []Blank `json:"blanks"`
}

// DragItem is a draggable token.
type DragItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DropZone is a labeled target accepting a set of item IDs.
type DropZone struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Accepts []string `json:"accepts"`
}

// DragAndDropData holds the items and target zones.
type DragAndDropData struct {
	Items []DragItem `json:"items"`
	Zones []DropZone `json:"zones"`
}

// SentenceBuilderData holds a shuffleable word list and the acceptable
// target sentences.
type SentenceBuilderData struct {
	Words []string `json:"words"`

	// Acceptable lists the target sentences. The first entry is the
	// primary answer used for partial-credit overlap.
	Acceptable []string `json:"acceptable"`
}

// rawQuestion mirrors the content-pack JSON shape with a deferred payload.
type rawQuestion struct {
	ID     string          `json:"id"`
	Type   QuestionType    `json:"type"`
	Prompt string          `json:"prompt"`
	Topic  string          `json:"topic"`
	Points float64         `json:"points"`
	Hints  []string        `json:"hints"`
	Data   json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes the type-specific payload into the matching field.
func (q *Question) UnmarshalJSON(b []byte) error {
	var raw rawQuestion
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	q.ID = raw.ID
	q.Type = raw.Type
	q.Prompt = raw.Prompt
	q.Topic = raw.Topic
	q.Points = raw.Points
	q.Hints = raw.Hints

	switch raw.Type {
	case TypeMultipleChoice:
		q.MultipleChoice = &MultipleChoiceData{}
		return json.Unmarshal(raw.Data, q.MultipleChoice)
	case TypeFillInBlank:
		q.FillInBlank = &FillInBlankData{}
		return json.Unmarshal(raw.Data, q.FillInBlank)
	case TypeDragAndDrop:
		q.DragAndDrop = &DragAndDropData{}
		return json.Unmarshal(raw.Data, q.DragAndDrop)
	case TypeSentenceBuilder:
		q.SentenceBuilder = &SentenceBuilderData{}
		return json.Unmarshal(raw.Data, q.SentenceBuilder)
	default:
		return fmt.Errorf("unsupported question type: %q", raw.Type)
	}
}

// MarshalJSON re-encodes the question in content-pack shape.
func (q Question) MarshalJSON() ([]byte, error) {
	var payload any
	switch q.Type {
	case TypeMultipleChoice:
		payload = q.MultipleChoice
	case TypeFillInBlank:
		payload = q.FillInBlank
	case TypeDragAndDrop:
		payload = q.DragAndDrop
	case TypeSentenceBuilder:
		payload = q.SentenceBuilder
	default:
		return nil, fmt.Errorf("unsupported question type: %q", q.Type)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rawQuestion{
		ID:     q.ID,
		Type:   q.Type,
		Prompt: q.Prompt,
		Topic:  q.Topic,
		Points: q.Points,
		Hints:  q.Hints,
		Data:   data,
	})
}

// CheckShape verifies that the payload matching Type is present and
// internally consistent. Called at the loading boundary; grading also
// calls it defensively before trusting the payload.
func (q *Question) CheckShape() error {
	if q.Points < 0 {
		return fmt.Errorf("question %s: negative points", q.ID)
	}
	switch q.Type {
	case TypeMultipleChoice:
		d := q.MultipleChoice
		if d == nil || len(d.Options) == 0 {
			return fmt.Errorf("question %s: multiple choice needs options", q.ID)
		}
		if len(d.Correct) == 0 {
			return fmt.Errorf("question %s: multiple choice needs a correct answer", q.ID)
		}
	case TypeFillInBlank:
		d := q.FillInBlank
		if d == nil || len(d.Blanks) == 0 {
			return fmt.Errorf("question %s: fill in blank needs blanks", q.ID)
		}
		for _, b := range d.Blanks {
			if len(b.Acceptable) == 0 {
				return fmt.Errorf("question %s: blank %s has no acceptable answers", q.ID, b.ID)
			}
		}
	case TypeDragAndDrop:
		d := q.DragAndDrop
		if d == nil || len(d.Items) == 0 || len(d.Zones) == 0 {
			return fmt.Errorf("question %s: drag and drop needs items and zones", q.ID)
		}
	case TypeSentenceBuilder:
		d := q.SentenceBuilder
		if d == nil || len(d.Words) == 0 {
			return fmt.Errorf("question %s: sentence builder needs words", q.ID)
		}
		if len(d.Acceptable) == 0 {
			return fmt.Errorf("question %s: sentence builder needs an acceptable sentence", q.ID)
		}
	default:
		return fmt.Errorf("question %s: unsupported type %q", q.ID, q.Type)
	}
	return nil
}
