package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
)

// minTextLength is enforced at the HTTP boundary; the orchestrator itself
// only requires non-empty text.
const minTextLength = 5

// RequirementIn is the request body for a single requirement.
type RequirementIn struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Context string `json:"context"`
}

// BatchIn is the request body for batch analysis.
type BatchIn struct {
	Requirements []RequirementIn `json:"requirements"`
}

func (in RequirementIn) validate() (core.Requirement, string) {
	if strings.TrimSpace(in.ID) == "" {
		return core.Requirement{}, "id must not be empty"
	}
	if len(strings.TrimSpace(in.Text)) < minTextLength {
		return core.Requirement{}, "text must be at least 5 characters"
	}
	return core.Requirement{ID: in.ID, Text: in.Text, Context: in.Context}, ""
}

// handleAnalyze analyzes a single requirement and stores the result.
// Degraded analyses (model failures, parse failures) still return success:
// the error markers live inside the affected role's analysis. Only
// validation and persistence failures become error responses.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var in RequirementIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req, problem := in.validate()
	if problem != "" {
		s.respondError(w, http.StatusUnprocessableEntity, problem)
		return
	}

	result, err := s.analyzer.Orchestrate(r.Context(), req)
	if err != nil {
		s.respondAnalysisError(w, err)
		return
	}

	if err := s.persist(r.Context(), req, result); err != nil {
		s.logger.Error("saving analysis", "id", req.ID, "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Requisito analizado correctamente",
		"data":    result,
	})
}

// BatchItemResult is the per-item outcome of a batch run.
type BatchItemResult struct {
	ID     string                   `json:"id"`
	Status string                   `json:"status"`
	Data   *core.ConsolidatedResult `json:"data,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// handleBatchAnalyze analyzes several requirements. Failures are isolated
// per item: one failing requirement never aborts the rest of the batch.
func (s *Server) handleBatchAnalyze(w http.ResponseWriter, r *http.Request) {
	var in BatchIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	results := make([]BatchItemResult, 0, len(in.Requirements))
	for _, item := range in.Requirements {
		results = append(results, s.analyzeBatchItem(r.Context(), item))
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":  "completed",
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) analyzeBatchItem(ctx context.Context, in RequirementIn) BatchItemResult {
	req, problem := in.validate()
	if problem != "" {
		return BatchItemResult{ID: in.ID, Status: "error", Error: problem}
	}

	result, err := s.analyzer.Orchestrate(ctx, req)
	if err != nil {
		s.logger.Warn("batch item failed", "id", req.ID, "error", err)
		return BatchItemResult{ID: req.ID, Status: "error", Error: err.Error()}
	}

	if err := s.persist(ctx, req, result); err != nil {
		// Analysis succeeded but was not saved; keep the distinction visible.
		s.logger.Error("batch item not saved", "id", req.ID, "error", err)
		return BatchItemResult{ID: req.ID, Status: "db_error", Data: result, Error: err.Error()}
	}

	return BatchItemResult{ID: req.ID, Status: "success", Data: result}
}

// StoredItem is one persisted analysis as returned by /stored.
type StoredItem struct {
	ID      string          `json:"id"`
	Text    string          `json:"text"`
	Context string          `json:"context"`
	Result  json.RawMessage `json:"result"`
}

// handleStored returns persisted analyses, optionally filtered and limited.
func (s *Server) handleStored(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.LoadAll(r.Context())
	if err != nil {
		s.logger.Error("loading stored analyses", "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filterID := r.URL.Query().Get("filter_id")
	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			s.respondError(w, http.StatusUnprocessableEntity, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	items := make([]StoredItem, 0, len(rows))
	for _, row := range rows {
		if filterID != "" && row.ID != filterID {
			continue
		}
		result := json.RawMessage(row.Result)
		if !json.Valid(row.Result) {
			// Stored rows are written by us, but tolerate corruption anyway.
			raw, _ := json.Marshal(map[string]string{"raw": string(row.Result)})
			result = raw
		}
		items = append(items, StoredItem{
			ID:      row.ID,
			Text:    row.Text,
			Context: row.Context,
			Result:  result,
		})
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"count":  len(items),
		"items":  items,
	})
}

func (s *Server) persist(ctx context.Context, req core.Requirement, result *core.ConsolidatedResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return core.ErrPersistence("encode", "encoding analysis result").WithCause(err)
	}
	return s.store.Save(ctx, core.StoredResult{
		ID:      req.ID,
		Text:    req.Text,
		Context: req.Context,
		Result:  payload,
	})
}

func (s *Server) respondAnalysisError(w http.ResponseWriter, err error) {
	if core.IsCategory(err, core.ErrCatValidation) {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.respondError(w, http.StatusInternalServerError, err.Error())
}
