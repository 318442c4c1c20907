package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/llm"
)

func cannedClient(fn llm.StaticFunc) *llm.Client {
	return llm.NewClient(fn, llm.WithRetryPolicy(llm.RetryPolicy{
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
	}))
}

func TestReviewerParsesProseWrappedReview(t *testing.T) {
	client := cannedClient(func(string) (string, error) {
		return "Aquí está mi evaluación:\n" +
			`{"claridad": {"valor": "claro", "sugerencia": ""}, "porcentaje": 85}`, nil
	})

	review := NewReviewer(core.RoleAnalyst, client, nil).
		Evaluate(context.Background(), core.Requirement{ID: "RF-01", Text: "El sistema debe registrar accesos"})

	assert.Equal(t, core.RoleAnalyst, review.Role)
	assert.Equal(t, 85.0, review.Score)
	assert.Contains(t, review.Analysis, "claridad")
}

func TestReviewerDegradesOnModelFailure(t *testing.T) {
	client := cannedClient(func(string) (string, error) {
		return "", errors.New("service unavailable")
	})

	review := NewReviewer(core.RoleTester, client, nil).
		Evaluate(context.Background(), core.Requirement{Text: "algo"})

	assert.Equal(t, 0.0, review.Score)
	assert.Contains(t, review.Analysis, "error")
}

func TestReviewerKeepsRawTextOnParseFailure(t *testing.T) {
	client := cannedClient(func(string) (string, error) {
		return "lo siento, no puedo evaluar eso", nil
	})

	review := NewReviewer(core.RoleProductOwner, client, nil).
		Evaluate(context.Background(), core.Requirement{Text: "algo"})

	assert.Equal(t, 0.0, review.Score)
	assert.Equal(t, "lo siento, no puedo evaluar eso", review.Analysis["raw_response"])
}

func TestReviewerUndefinedRole(t *testing.T) {
	calls := 0
	client := cannedClient(func(string) (string, error) {
		calls++
		return "{}", nil
	})

	review := NewReviewer(core.RoleTag("Architect"), client, nil).
		Evaluate(context.Background(), core.Requirement{Text: "algo"})

	assert.Equal(t, 0, calls, "undefined role must not call the model")
	assert.Equal(t, 0.0, review.Score)
	assert.Contains(t, review.Analysis, "error")
}

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name     string
		analysis map[string]any
		want     float64
	}{
		{"number", map[string]any{"porcentaje": 72.5}, 72.5},
		{"english field", map[string]any{"percentage": 40.0}, 40},
		{"numeric string", map[string]any{"porcentaje": "66"}, 66},
		{"missing", map[string]any{}, 0},
		{"non-numeric", map[string]any{"porcentaje": "alto"}, 0},
		{"above range", map[string]any{"porcentaje": 150.0}, 100},
		{"below range", map[string]any{"porcentaje": -3.0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractScore(tt.analysis))
		})
	}
}

func TestRolePromptsCoverClosedRoleSet(t *testing.T) {
	req := core.Requirement{Text: "El sistema debe notificar al usuario", Context: "CRM"}
	for _, role := range core.Roles() {
		build, ok := rolePrompts[role]
		require.True(t, ok, "missing prompt for %s", role)

		prompt := build(req)
		assert.Contains(t, prompt, req.Text)
		for _, attrName := range role.Attributes() {
			assert.Contains(t, prompt, attrName, "role %s", role)
		}
	}
}
