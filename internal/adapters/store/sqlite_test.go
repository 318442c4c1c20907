package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "requirements.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, core.StoredResult{
		ID:      "RF-01",
		Text:    "El sistema debe registrar accesos",
		Context: "Portal de clientes",
		Result:  []byte(`{"id":"RF-01","promedio_cumplimiento":95}`),
	}))

	got, err := s.Get(ctx, "RF-01")
	require.NoError(t, err)
	assert.Equal(t, "RF-01", got.ID)
	assert.Equal(t, "El sistema debe registrar accesos", got.Text)
	assert.Equal(t, "Portal de clientes", got.Context)
	assert.JSONEq(t, `{"id":"RF-01","promedio_cumplimiento":95}`, string(got.Result))
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatNotFound))
}

func TestSQLiteStoreSaveReplacesByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, core.StoredResult{ID: "RF-02", Text: "v1", Result: []byte(`{"v":1}`)}))
	require.NoError(t, s.Save(ctx, core.StoredResult{ID: "RF-02", Text: "v2", Result: []byte(`{"v":2}`)}))

	got, err := s.Get(ctx, "RF-02")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Text)
	assert.JSONEq(t, `{"v":2}`, string(got.Result))

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteStoreLoadAllOrdered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"RF-03", "RF-01", "RF-02"} {
		require.NoError(t, s.Save(ctx, core.StoredResult{ID: id, Text: "t", Result: []byte(`{}`)}))
	}

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "RF-01", all[0].ID)
	assert.Equal(t, "RF-02", all[1].ID)
	assert.Equal(t, "RF-03", all[2].ID)
}

func TestSQLiteStoreLoadAllEmpty(t *testing.T) {
	s := newTestStore(t)

	all, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

// Consolidated results must survive a store round trip structurally intact,
// including the role-keyed review map and the nested decision.
func TestSQLiteStoreRoundTripsConsolidatedResult(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	original := &core.ConsolidatedResult{
		ID:      "RF-10",
		Text:    "El sistema debe exportar informes en PDF",
		Context: "Módulo de reportes",
		Average: 62.5,
		Reviews: map[core.RoleTag]core.ReviewResult{
			core.RoleAnalyst: {
				Role: core.RoleAnalyst,
				Analysis: map[string]any{
					"claridad":   map[string]any{"valor": "claro", "sugerencia": ""},
					"porcentaje": 70.0,
				},
				Score: 70,
			},
			core.RoleTester: {
				Role: core.RoleTester,
				Analysis: map[string]any{
					"error":        "upstream timeout",
					"raw_response": "…",
				},
			},
		},
		Decision: &core.Decision{
			State:       core.DecisionSuggestions,
			Suggestions: []string{"defina el formato de página", "indique el tamaño máximo"},
		},
	}

	payload, err := json.Marshal(original)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, core.StoredResult{
		ID:      original.ID,
		Text:    original.Text,
		Context: original.Context,
		Result:  payload,
	}))

	got, err := s.Get(ctx, original.ID)
	require.NoError(t, err)

	var restored core.ConsolidatedResult
	require.NoError(t, json.Unmarshal(got.Result, &restored))
	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Average, restored.Average)
	require.Contains(t, restored.Reviews, core.RoleAnalyst)
	assert.Equal(t, 70.0, restored.Reviews[core.RoleAnalyst].Score)
	assert.Equal(t, "upstream timeout", restored.Reviews[core.RoleTester].Analysis["error"])
	require.NotNil(t, restored.Decision)
	assert.Equal(t, core.DecisionSuggestions, restored.Decision.State)
	assert.Equal(t, original.Decision.Suggestions, restored.Decision.Suggestions)
}
