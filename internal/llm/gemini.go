package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Gemini calls the Google Generative Language REST API.
type Gemini struct {
	model   string
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// GeminiOption configures the Gemini transport.
type GeminiOption func(*Gemini)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(url string) GeminiOption {
	return func(g *Gemini) {
		g.baseURL = url
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) GeminiOption {
	return func(g *Gemini) {
		g.httpc = httpc
	}
}

// NewGemini creates a Gemini transport. The API key is injected here, at
// construction, never read from the environment inside business logic.
func NewGemini(model, apiKey string, opts ...GeminiOption) *Gemini {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	g := &Gemini{
		model:   model,
		apiKey:  apiKey,
		baseURL: defaultGeminiBaseURL,
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate implements core.TextGenerator.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", core.ErrModel("missing_api_key", "Gemini API key not configured")
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", core.ErrModel("transport", "calling Gemini API").WithCause(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		denied := core.ErrModel("auth", fmt.Sprintf("Gemini API returned %s", resp.Status))
		denied.Retryable = false
		return "", denied
	}
	if resp.StatusCode != http.StatusOK {
		return "", core.ErrModel("status", fmt.Sprintf("Gemini API returned %s", resp.Status))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", core.ErrModel("decode", "decoding Gemini response").WithCause(err)
	}
	if len(gResp.Candidates) == 0 || len(gResp.Candidates[0].Content.Parts) == 0 {
		return "", core.ErrModel("empty", "Gemini API returned no candidates")
	}
	return gResp.Candidates[0].Content.Parts[0].Text, nil
}
