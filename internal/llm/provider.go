// Package llm abstracts over hosted language-model APIs. Gramiz uses it
// for one thing: turning a wrong answer into a short tutoring explanation,
// so every provider speaks the same schema-constrained JSON dialect.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is implemented by each backing model API.
type Provider interface {
	// Generate runs a single completion. When req.Schema is set the
	// provider asks the model for conforming JSON and validates the
	// result before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the concrete model this provider will call.
	ModelID() string
}

// Request is a provider-neutral prompt.
type Request struct {
	// System frames the model's role, e.g. a patient grammar tutor.
	System string

	// Messages is the turn history. Explanation requests are
	// single-turn, so this is usually one user message.
	Messages []Message

	// Schema, when non-nil, constrains the output to JSON matching
	// the definition. Nil means free text, returned as a JSON string.
	Schema *Schema

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature in [0,1]; zero value means deterministic sampling.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the model output must satisfy. Name doubles
// as the tool/schema identifier on the wire, kebab-case by convention
// ("error-explanation").
type Schema struct {
	Name        string
	Description string

	// Definition is the schema body as a plain map.
	Definition map[string]any
}

// Response is a provider-neutral completion result.
type Response struct {
	// Content is validated JSON when the request carried a Schema,
	// otherwise the raw text wrapped as a JSON string.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the call, which may be
	// more specific than the requested alias.
	Model string

	// StopReason is normalized across providers: "end", "max_tokens"
	// or "error".
	StopReason string
}

// Usage counts tokens for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// pickModel resolves a friendly alias to a concrete model ID. Unknown
// names pass through so callers can pin exact model versions.
func pickModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
