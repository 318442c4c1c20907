package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidatedResultAlwaysEmitsContext(t *testing.T) {
	payload, err := json.Marshal(&ConsolidatedResult{
		ID:      "RF-01",
		Text:    "El sistema debe registrar accesos",
		Average: 95,
		Reviews: map[RoleTag]ReviewResult{},
	})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(payload, &m))

	// An empty context still serializes as "context": "".
	v, ok := m["context"]
	require.True(t, ok)
	assert.Equal(t, "", v)

	// Project-mode fields stay absent outside project mode.
	assert.NotContains(t, m, "descripcion_proyecto")
	assert.NotContains(t, m, "refined_requirement")
}
