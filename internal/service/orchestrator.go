package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/llm"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/logging"
)

// Mode selects which configuration variant the orchestrator runs in.
type Mode string

const (
	// ModeContext treats the requirement's context as free-form and optional.
	ModeContext Mode = "context"
	// ModeProject treats the context as a mandatory project description and
	// produces two side-by-side refinement options for low-scoring
	// requirements: a digest-conditioned rewrite and a newly synthesized
	// requirement derived from the project description alone.
	ModeProject Mode = "project"
)

// Orchestrator runs the configured reviewer set concurrently, aggregates
// their scores, and applies the refinement policy. It is stateless across
// requests; every evaluation is independent.
type Orchestrator struct {
	client         *llm.Client
	roles          []core.RoleTag
	calibrator     *Calibrator
	calibrate      bool
	mode           Mode
	maxSuggestions int
	logger         *logging.Logger
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithRoles overrides the reviewer role set.
func WithRoles(roles ...core.RoleTag) Option {
	return func(o *Orchestrator) {
		o.roles = roles
	}
}

// WithMode sets the configuration variant.
func WithMode(mode Mode) Option {
	return func(o *Orchestrator) {
		o.mode = mode
	}
}

// WithCalibration enables or disables score calibration. When disabled the
// raw self-reported percentages are averaged directly.
func WithCalibration(enabled bool) Option {
	return func(o *Orchestrator) {
		o.calibrate = enabled
	}
}

// WithMaxSuggestions bounds the suggestion list requested from the model.
func WithMaxSuggestions(n int) Option {
	return func(o *Orchestrator) {
		o.maxSuggestions = n
	}
}

// WithOrchestratorLogger sets the logger.
func WithOrchestratorLogger(logger *logging.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an orchestrator over a model client.
func NewOrchestrator(client *llm.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:         client,
		roles:          core.Roles(),
		calibrator:     NewCalibrator(),
		calibrate:      true,
		mode:           ModeContext,
		maxSuggestions: 3,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Orchestrate evaluates one requirement end to end. The only error it can
// return is a validation DomainError, detected before any model call; every
// failure downstream of validation is represented as data inside the result.
func (o *Orchestrator) Orchestrate(ctx context.Context, req core.Requirement) (*core.ConsolidatedResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, core.ErrValidation("missing_text", "requirement text must not be empty")
	}
	if o.mode == ModeProject && strings.TrimSpace(req.Context) == "" {
		return nil, core.ErrValidation("missing_project_description", "project description must not be empty")
	}

	logger := o.logger.WithRequirement(req.ID)
	reviews := o.fanOut(ctx, req)

	// Aggregate over exactly the configured role count. Role identity, not
	// completion order, determines the contribution of each review.
	sum := 0.0
	for _, role := range o.roles {
		review := reviews[role]
		score := review.Score
		if o.calibrate {
			score = o.calibrator.Calibrate(review.Analysis, review.Score)
		}
		sum += score
	}
	average := 0.0
	if len(o.roles) > 0 {
		average = round2(sum / float64(len(o.roles)))
	}

	band := BandFor(average)
	logger.Info("requirement evaluated", "average", average, "band", band.String())

	result := &core.ConsolidatedResult{
		ID:      req.ID,
		Text:    req.Text,
		Average: average,
		Reviews: reviews,
	}
	if result.ID == "" {
		result.ID = "-"
	}
	if o.mode == ModeProject {
		result.ProjectDescription = req.Context
	} else {
		result.Context = req.Context
	}

	o.decide(ctx, req, band, result)
	return result, nil
}

// fanOut invokes every configured reviewer concurrently and joins the
// results keyed by role. Reviewers never fail, so the barrier always waits
// for all of them; one degraded review does not disturb its siblings.
func (o *Orchestrator) fanOut(ctx context.Context, req core.Requirement) map[core.RoleTag]core.ReviewResult {
	reviews := make(map[core.RoleTag]core.ReviewResult, len(o.roles))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, role := range o.roles {
		g.Go(func() error {
			review := NewReviewer(role, o.client, o.logger).Evaluate(gctx, req)
			mu.Lock()
			reviews[role] = review
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return reviews
}

// decide applies the refinement policy for the band and attaches the
// outcome(s) to the result. Follow-up calls are strictly sequential: the
// digest refinement depends on the joined reviews, and each decision parse
// happens before the next call is issued.
func (o *Orchestrator) decide(ctx context.Context, req core.Requirement, band Band, result *core.ConsolidatedResult) {
	switch band {
	case BandAccepted:
		result.Decision = &core.Decision{
			State:       core.DecisionAccepted,
			RefinedText: req.Text,
		}
		return
	case BandOptional:
		result.Decision = &core.Decision{
			State:   core.DecisionOptional,
			Message: "El requisito es aceptable pero puede mejorarse si se desea.",
		}
		return
	}

	if o.mode == ModeProject {
		digest := suggestionsDigest(o.roles, result.Reviews)
		result.Decision = &core.Decision{
			State:   band.State(),
			Message: "Se generaron dos opciones de refinamiento a partir de la descripción del proyecto.",
		}
		result.RefinedOption = o.followUp(ctx, digestRefinePrompt(req, digest), core.DecisionMandatoryRewrite)
		result.SynthesizedOption = o.followUp(ctx, synthesisPrompt(req.Context), core.DecisionSynthesized)
		return
	}

	switch band {
	case BandMandatoryRewrite:
		result.Decision = o.followUp(ctx, rewritePrompt(req), core.DecisionMandatoryRewrite)
	case BandSuggestions:
		result.Decision = o.followUp(ctx, suggestionsPrompt(req, o.maxSuggestions), core.DecisionSuggestions)
	}
}

// followUp issues one refinement model call and shapes its output into a
// Decision. Parse failures keep the band's state and retain the raw payload.
func (o *Orchestrator) followUp(ctx context.Context, prompt string, state core.DecisionState) *core.Decision {
	text := o.client.Generate(ctx, prompt)
	parsed, perr := llm.ParseObject(text)
	if perr != nil {
		o.logger.Warn("unparseable refinement", "error", perr.Message)
		return &core.Decision{State: state, Detail: perr.Payload()}
	}

	decision := &core.Decision{
		State:         state,
		RefinedText:   lookupString(parsed, "requisito_refinado_final", "requisito_nuevo"),
		Justification: lookupString(parsed, "justificacion"),
		Message:       lookupString(parsed, "mensaje"),
		Detail:        parsed,
	}
	if items := lookupStrings(parsed, "sugerencias"); len(items) > 0 {
		if len(items) > o.maxSuggestions {
			items = items[:o.maxSuggestions]
		}
		decision.Suggestions = items
	}
	return decision
}

// suggestionsDigest combines every per-attribute suggestion across roles into
// a deterministic, human-readable digest.
func suggestionsDigest(roles []core.RoleTag, reviews map[core.RoleTag]core.ReviewResult) string {
	var lines []string
	for _, role := range roles {
		analysis := reviews[role].Analysis
		names := make([]string, 0, len(analysis))
		for name := range analysis {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			attr, ok := analysis[name].(map[string]any)
			if !ok {
				continue
			}
			suggestion := strings.TrimSpace(stringify(firstOf(attr, "sugerencia", "suggestion")))
			if suggestion == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("- [%s] %s: %s", role, name, suggestion))
		}
	}
	if len(lines) == 0 {
		return "- (sin sugerencias registradas)"
	}
	return strings.Join(lines, "\n")
}

func lookupString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func lookupStrings(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	items := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			items = append(items, s)
		}
	}
	return items
}
