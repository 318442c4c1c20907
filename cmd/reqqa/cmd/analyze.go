package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/adapters/store"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a single requirement",
	Long: `Run the full reviewer orchestration for one requirement and print the
consolidated result as JSON.

Examples:
  reqqa analyze --text "El sistema debe registrar cada acceso" --context "Portal de clientes"
  reqqa analyze --id RF-01 --text "..." --save`,
	RunE: runAnalyze,
}

var (
	analyzeID      string
	analyzeText    string
	analyzeContext string
	analyzeSave    bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeID, "id", "", "requirement id (generated when omitted)")
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "requirement text")
	analyzeCmd.Flags().StringVar(&analyzeContext, "context", "", "requirement context or project description")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the result in the configured store")
	_ = analyzeCmd.MarkFlagRequired("text")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	id := analyzeID
	if id == "" {
		id = uuid.NewString()
	}
	req := core.Requirement{ID: id, Text: analyzeText, Context: analyzeContext}

	result, err := orch.Orchestrate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if analyzeSave {
		resultStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening result store: %w", err)
		}
		defer func() { _ = resultStore.Close() }()

		payload, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		if err := resultStore.Save(cmd.Context(), core.StoredResult{
			ID:      req.ID,
			Text:    req.Text,
			Context: req.Context,
			Result:  payload,
		}); err != nil {
			return err
		}
		logger.Info("result saved", "id", req.ID)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
