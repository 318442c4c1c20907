// Package service implements the orchestration engine: role reviewers, score
// calibration, the decision policy, and dataset evaluation.
package service

import (
	"context"
	"strconv"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/llm"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/logging"
)

// Reviewer produces one structured quality judgment for a requirement, from
// the point of view of a single role. Reviewers carry only their role tag as
// configuration and are safe to use concurrently.
type Reviewer struct {
	role   core.RoleTag
	client *llm.Client
	logger *logging.Logger
}

// NewReviewer creates a reviewer for a role.
func NewReviewer(role core.RoleTag, client *llm.Client, logger *logging.Logger) *Reviewer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reviewer{
		role:   role,
		client: client,
		logger: logger.WithRole(string(role)),
	}
}

// Evaluate builds the role prompt, invokes the model, and parses the result
// into a score-bearing review. It never fails: model and parse errors become
// error payloads inside the review, with score 0.
func (r *Reviewer) Evaluate(ctx context.Context, req core.Requirement) core.ReviewResult {
	build, ok := rolePrompts[r.role]
	if !ok {
		// Unreachable with the closed role set; degrade instead of failing.
		r.logger.Warn("undefined reviewer role")
		return core.ReviewResult{
			Role:     r.role,
			Analysis: map[string]any{"error": "rol no definido"},
			Score:    0,
		}
	}

	text := r.client.Generate(ctx, build(req))

	analysis, perr := llm.ParseObject(text)
	if perr != nil {
		r.logger.Warn("unparseable review", "error", perr.Message)
		return core.ReviewResult{Role: r.role, Analysis: perr.Payload(), Score: 0}
	}

	score := extractScore(analysis)
	r.logger.Debug("review complete", "score", score)
	return core.ReviewResult{Role: r.role, Analysis: analysis, Score: score}
}

// extractScore reads the self-reported percentage from a parsed review,
// accepting both the Spanish and English field names, and clamps it to
// [0, 100]. A missing or unreadable field counts as 0.
func extractScore(analysis map[string]any) float64 {
	raw, ok := analysis["porcentaje"]
	if !ok {
		raw, ok = analysis["percentage"]
	}
	if !ok {
		return 0
	}

	var score float64
	switch v := raw.(type) {
	case float64:
		score = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		score = parsed
	default:
		return 0
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
