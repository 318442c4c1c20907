package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
)

func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"porcentaje\": 88}"}]}}]}`))
	}))
	defer srv.Close()

	g := NewGemini("gemini-2.5-flash", "test-key", WithBaseURL(srv.URL))
	text, err := g.Generate(context.Background(), "evalúa esto")
	require.NoError(t, err)

	assert.Equal(t, `{"porcentaje": 88}`, text)
	assert.True(t, strings.HasSuffix(gotPath, "/models/gemini-2.5-flash:generateContent"))
	assert.Equal(t, "test-key", gotKey)
}

func TestGeminiMissingAPIKey(t *testing.T) {
	g := NewGemini("", "")
	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatModel))
}

func TestGeminiServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewGemini("", "test-key", WithBaseURL(srv.URL))
	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, core.IsRetryable(err))
}

func TestGeminiAuthErrorNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGemini("", "bad-key", WithBaseURL(srv.URL))
	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.False(t, core.IsRetryable(err))
}

func TestGeminiEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	g := NewGemini("", "test-key", WithBaseURL(srv.URL))
	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
}
