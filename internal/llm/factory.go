package llm

import (
	"context"
	"fmt"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
)

// NewGenerator creates the raw transport for a configured provider.
func NewGenerator(provider, model, apiKey string) (core.TextGenerator, error) {
	switch provider {
	case "gemini", "":
		return NewGemini(model, apiKey), nil
	case "static":
		// Deterministic responses, for development without credentials.
		return StaticFunc(func(string) (string, error) {
			return `{"porcentaje": 0, "error": "static provider configured"}`, nil
		}), nil
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", provider)
	}
}

// StaticFunc adapts a function to core.TextGenerator. Tests use it to return
// canned text deterministically.
type StaticFunc func(prompt string) (string, error)

// Generate implements core.TextGenerator.
func (f StaticFunc) Generate(_ context.Context, prompt string) (string, error) {
	return f(prompt)
}
