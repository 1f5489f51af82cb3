package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/gramiz/internal/diagnosis"
	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/llm"
)

// Explanation is an LLM-written explanation of a specific wrong answer.
type Explanation struct {
	Title       string
	Explanation string
	Example     string
}

// ExplainInput holds the context needed to explain one wrong answer.
type ExplainInput struct {
	Question *exercise.Question
	Answer   string
	Analysis *diagnosis.Analysis
}

// ExplainerConfig holds explanation generation settings.
type ExplainerConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultExplainerConfig returns sensible defaults for explanations.
func DefaultExplainerConfig() ExplainerConfig {
	return ExplainerConfig{
		MaxTokens:   384,
		Temperature: 0.4,
	}
}

// Explainer generates answer explanations asynchronously.
type Explainer struct {
	provider llm.Provider
	cfg      ExplainerConfig

	mu      sync.Mutex
	pending *Explanation
	err     error
	ready   bool
}

// NewExplainer creates an explanation service.
func NewExplainer(provider llm.Provider, cfg ExplainerConfig) *Explainer {
	return &Explainer{provider: provider, cfg: cfg}
}

// RequestExplanation starts async explanation generation. Only one
// explanation is in-flight at a time — new requests replace pending ones.
func (e *Explainer) RequestExplanation(ctx context.Context, input ExplainInput) {
	go func() {
		expl, err := e.generate(ctx, input)
		e.mu.Lock()
		defer e.mu.Unlock()
		e.pending = expl
		e.err = err
		e.ready = true
	}()
}

// ConsumeExplanation returns the pending explanation if one is ready.
// Returns (nil, false) if nothing is ready yet. After consumption, the
// pending slot is cleared.
func (e *Explainer) ConsumeExplanation() (*Explanation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return nil, false
	}
	expl := e.pending
	e.pending = nil
	e.ready = false
	e.err = nil
	return expl, expl != nil
}

type explanationOutput struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	Example     string `json:"example"`
}

func (e *Explainer) generate(ctx context.Context, input ExplainInput) (*Explanation, error) {
	ctx = llm.WithPurpose(ctx, "explanation")

	req := llm.Request{
		System: explainerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExplainUserMessage(input)},
		},
		Schema:      ExplanationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}

	return &Explanation{
		Title:       out.Title,
		Explanation: out.Explanation,
		Example:     out.Example,
	}, nil
}

// Feedback wraps the explanation for the shared presentation path.
func (x *Explanation) Feedback() *Generated {
	return &Generated{
		Type:       TypeExplanation,
		Title:      x.Title,
		Message:    x.Explanation,
		Details:    []string{x.Example},
		Confidence: 1.0,
	}
}
