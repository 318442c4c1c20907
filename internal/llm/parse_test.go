package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractsObjectFromProse(t *testing.T) {
	text := "Claro, aquí está el análisis solicitado:\n```json\n{\"porcentaje\": 80}\n```\nEspero que sea útil."

	value, perr := Parse(text)
	require.Nil(t, perr)

	obj, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(80), obj["porcentaje"])
}

func TestParseExtractsArray(t *testing.T) {
	value, perr := Parse("las sugerencias son [\"una\", \"dos\"] como pediste")
	require.Nil(t, perr)

	arr, ok := value.([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"una", "dos"}, arr)
}

func TestParseNestedObject(t *testing.T) {
	text := `{"claridad": {"valor": "claro", "sugerencia": ""}, "porcentaje": 90}`

	obj, perr := ParseObject(text)
	require.Nil(t, perr)
	assert.Contains(t, obj, "claridad")
}

func TestParsePreservesRawTextOnFailure(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"plain prose", "no puedo responder a esa pregunta"},
		{"truncated JSON", `{"porcentaje": 80, "claridad":`},
		{"lone opening brace", "{"},
		{"closing before opening", "} {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, perr := Parse(tt.text)
			require.NotNil(t, perr)
			assert.Equal(t, tt.text, perr.RawResponse, "raw text must survive verbatim")
			assert.NotEmpty(t, perr.Message)
		})
	}
}

func TestParseObjectRejectsTopLevelArray(t *testing.T) {
	_, perr := ParseObject(`["no", "es", "objeto"]`)
	require.NotNil(t, perr)
	assert.Equal(t, `["no", "es", "objeto"]`, perr.RawResponse)
}

func TestParseErrorPayloadShape(t *testing.T) {
	_, perr := Parse("texto sin estructura")
	require.NotNil(t, perr)

	payload := perr.Payload()
	assert.Equal(t, "texto sin estructura", payload["raw_response"])
	assert.NotEmpty(t, payload["error"])
}

func TestParsePrefersEarlierBracket(t *testing.T) {
	// An array opening before the object wins, mirroring leftmost-match
	// extraction.
	value, perr := Parse(`[1, 2] y {"a": 1}`)
	require.Nil(t, perr)
	_, isArray := value.([]any)
	assert.True(t, isArray)
}
