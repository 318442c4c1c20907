package core

import "context"

// TextGenerator is the outbound port to a hosted text-generation service.
// Implementations may fail; the llm.Client wrapper absorbs those failures
// before they reach orchestration.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StoredResult is one persisted analysis row.
type StoredResult struct {
	ID      string
	Text    string
	Context string
	Result  []byte // ConsolidatedResult serialized as JSON
}

// ResultStore persists consolidated analysis results keyed by requirement id.
type ResultStore interface {
	// Save upserts a result.
	Save(ctx context.Context, res StoredResult) error
	// Get returns the result for id, or a not_found DomainError.
	Get(ctx context.Context, id string) (StoredResult, error)
	// LoadAll returns every stored result.
	LoadAll(ctx context.Context) ([]StoredResult, error)
	Close() error
}
