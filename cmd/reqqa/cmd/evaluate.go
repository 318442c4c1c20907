package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/service"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate reviewer quality against an annotated dataset",
	Long: `Run every requirement of an annotated dataset through the orchestrator
and score the reviewers' predictions (ambiguous, atomic, complete, valid)
against the gold annotations with precision, recall, and F1.

The dataset is a JSON array of objects:
  {"id": "...", "text": "...", "context": "...",
   "annotations": {"ambiguous": false, "atomic": true, "complete": true, "valid": true}}`,
	RunE: runEvaluate,
}

var (
	evaluateDataset string
	evaluateOutput  string
)

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evaluateDataset, "dataset", "dataset.json", "path to the annotated dataset")
	evaluateCmd.Flags().StringVar(&evaluateOutput, "output", "", "write the full report JSON to this file")
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(evaluateDataset)
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}
	var items []service.DatasetItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decoding dataset: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("dataset %s is empty", evaluateDataset)
	}

	orch, err := buildOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	evaluator := service.NewEvaluator(orch, cfg.Analysis.Concurrency, logger)
	report, results, err := evaluator.Run(cmd.Context(), items)
	if err != nil {
		return err
	}

	for attr, m := range report.PerAttribute {
		logger.Info("attribute metrics", "attribute", attr,
			"precision", m.Precision, "recall", m.Recall, "f1", m.F1)
	}
	logger.Info("macro metrics",
		"precision", report.Macro.Precision,
		"recall", report.Macro.Recall,
		"f1", report.Macro.F1,
		"mean_compliance", report.MeanCompliance,
		"items", report.Items,
		"failed", report.Failed,
	)

	if evaluateOutput != "" {
		payload, err := json.MarshalIndent(map[string]any{
			"report":  report,
			"results": results,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		// Atomic write so a partially written report never replaces a good one.
		if err := renameio.WriteFile(evaluateOutput, payload, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("report written", "path", evaluateOutput)
	}
	return nil
}
