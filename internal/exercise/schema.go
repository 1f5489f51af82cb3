package exercise

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// packSchemaDef is the JSON Schema for a content-pack file. Structural
// checks only; cross-field rules (payload matching type, non-empty
// acceptable lists) live in CheckShape.
var packSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"name": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "type", "prompt", "points", "data"},
				"properties": map[string]any{
					"id":     map[string]any{"type": "string", "minLength": 1},
					"type": map[string]any{
						"type": "string",
						"enum": []any{
							string(TypeMultipleChoice),
							string(TypeFillInBlank),
							string(TypeDragAndDrop),
							string(TypeSentenceBuilder),
						},
					},
					"prompt": map[string]any{"type": "string", "minLength": 1},
					"topic":  map[string]any{"type": "string"},
					"points": map[string]any{"type": "number", "minimum": 0},
					"hints": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"data": map[string]any{"type": "object"},
				},
			},
		},
	},
}

var (
	packSchemaOnce sync.Once
	packSchema     *jsonschema.Schema
	packSchemaErr  error
)

// compiledPackSchema compiles the content-pack schema once.
func compiledPackSchema() (*jsonschema.Schema, error) {
	packSchemaOnce.Do(func() {
		defBytes, err := json.Marshal(packSchemaDef)
		if err != nil {
			packSchemaErr = fmt.Errorf("marshal pack schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(defBytes, &parsed); err != nil {
			packSchemaErr = fmt.Errorf("parse pack schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://gramiz-content-pack.json"
		if err := c.AddResource(url, parsed); err != nil {
			packSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		packSchema, packSchemaErr = c.Compile(url)
	})
	return packSchema, packSchemaErr
}

// validatePackJSON checks raw pack bytes against the content-pack schema.
func validatePackJSON(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledPackSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("content pack schema: %w", err)
	}
	return nil
}
