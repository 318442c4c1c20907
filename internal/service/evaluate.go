package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/logging"
)

// DatasetItem is one annotated requirement from an evaluation dataset.
type DatasetItem struct {
	ID          string      `json:"id"`
	Text        string      `json:"text"`
	Context     string      `json:"context"`
	Annotations Annotations `json:"annotations"`
}

// Annotations are the gold labels for the attributes the evaluation tracks.
type Annotations struct {
	Ambiguous bool `json:"ambiguous"`
	Atomic    bool `json:"atomic"`
	Complete  bool `json:"complete"`
	Valid     bool `json:"valid"`
}

// ItemResult pairs a dataset item with its analysis. Err is set when the
// item's orchestration failed; the rest of the batch is unaffected.
type ItemResult struct {
	ID     string                   `json:"id"`
	Result *core.ConsolidatedResult `json:"result,omitempty"`
	Err    string                   `json:"error,omitempty"`
}

// EvaluationReport aggregates attribute metrics over a dataset run.
type EvaluationReport struct {
	Items          int                         `json:"items"`
	Failed         int                         `json:"failed"`
	PerAttribute   map[string]AttributeMetrics `json:"per_attribute"`
	Macro          AttributeMetrics            `json:"macro"`
	MeanCompliance float64                     `json:"mean_compliance"`
}

// Evaluator runs a dataset of annotated requirements through the
// orchestrator and scores the reviewers' predictions against the gold
// annotations.
type Evaluator struct {
	orch        *Orchestrator
	concurrency int
	logger      *logging.Logger
}

// NewEvaluator creates an evaluator. Concurrency bounds the number of
// requirements analyzed in parallel.
func NewEvaluator(orch *Orchestrator, concurrency int, logger *logging.Logger) *Evaluator {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Evaluator{orch: orch, concurrency: concurrency, logger: logger}
}

// Run analyzes every item and computes the report. Item failures are
// isolated: a failing item is recorded and skipped from the metrics, and
// results keep the dataset's order regardless of completion order.
func (e *Evaluator) Run(ctx context.Context, items []DatasetItem) (*EvaluationReport, []ItemResult, error) {
	results := make([]ItemResult, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, item := range items {
		g.Go(func() error {
			res, err := e.orch.Orchestrate(gctx, core.Requirement{
				ID:      item.ID,
				Text:    item.Text,
				Context: item.Context,
			})
			if err != nil {
				e.logger.Warn("dataset item failed", "id", item.ID, "error", err)
				results[i] = ItemResult{ID: item.ID, Err: err.Error()}
				return nil
			}
			results[i] = ItemResult{ID: item.ID, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	report := e.score(items, results)
	return report, results, nil
}

func (e *Evaluator) score(items []DatasetItem, results []ItemResult) *EvaluationReport {
	gold := map[string][]bool{}
	pred := map[string][]bool{}
	compliance := 0.0
	scored := 0
	failed := 0

	for i, item := range items {
		res := results[i].Result
		if res == nil {
			failed++
			continue
		}
		scored++
		compliance += res.Average

		analyst := res.Reviews[core.RoleAnalyst].Analysis
		owner := res.Reviews[core.RoleProductOwner].Analysis

		observe(gold, pred, "ambiguous", item.Annotations.Ambiguous, attrEquals(analyst, "claridad", "ambiguo"))
		observe(gold, pred, "atomic", item.Annotations.Atomic, attrEquals(analyst, "atomicidad", "atómico"))
		observe(gold, pred, "complete", item.Annotations.Complete, attrEquals(analyst, "completitud", "completo"))
		observe(gold, pred, "valid", item.Annotations.Valid, attrIsTrue(owner, "validez"))
	}

	report := &EvaluationReport{
		Items:        len(items),
		Failed:       failed,
		PerAttribute: make(map[string]AttributeMetrics, len(gold)),
	}
	if scored > 0 {
		report.MeanCompliance = round2(compliance / float64(scored))
	}

	var macroP, macroR, macroF float64
	for attr := range gold {
		m := PrecisionRecallF1(gold[attr], pred[attr])
		report.PerAttribute[attr] = m
		macroP += m.Precision
		macroR += m.Recall
		macroF += m.F1
	}
	if n := float64(len(gold)); n > 0 {
		report.Macro = AttributeMetrics{
			Precision: macroP / n,
			Recall:    macroR / n,
			F1:        macroF / n,
		}
	}
	return report
}

func observe(gold, pred map[string][]bool, attr string, goldVal, predVal bool) {
	gold[attr] = append(gold[attr], goldVal)
	pred[attr] = append(pred[attr], predVal)
}

// attrValue unwraps an attribute judgment: structured attributes carry their
// value under "valor", older or non-conforming outputs carry it bare.
func attrValue(analysis map[string]any, name string) any {
	raw, ok := analysis[name]
	if !ok {
		return nil
	}
	if attr, ok := raw.(map[string]any); ok {
		return firstOf(attr, "valor", "value")
	}
	return raw
}

func attrEquals(analysis map[string]any, name, want string) bool {
	s, ok := attrValue(analysis, name).(string)
	return ok && s == want
}

func attrIsTrue(analysis map[string]any, name string) bool {
	v, ok := attrValue(analysis, name).(bool)
	return ok && v
}
