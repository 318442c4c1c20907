package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/config"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/llm"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/logging"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/service"
)

// loadConfig loads and validates configuration, and builds the logger.
func loadConfig() (*config.Config, *logging.Logger, error) {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader = loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	return cfg, logger, nil
}

// buildOrchestrator wires the model transport, client, and orchestrator from
// configuration.
func buildOrchestrator(cfg *config.Config, logger *logging.Logger) (*service.Orchestrator, error) {
	generator, err := llm.NewGenerator(cfg.Model.Provider, cfg.Model.Name, cfg.Model.APIKey)
	if err != nil {
		return nil, fmt.Errorf("building model transport: %w", err)
	}

	retry := llm.DefaultRetryPolicy()
	retry.MaxAttempts = cfg.Model.MaxRetries
	client := llm.NewClient(generator,
		llm.WithTimeout(cfg.ModelTimeout()),
		llm.WithRetryPolicy(retry),
		llm.WithLogger(logger),
	)

	return service.NewOrchestrator(client,
		service.WithMode(service.Mode(cfg.Analysis.Mode)),
		service.WithCalibration(cfg.Analysis.Calibrate),
		service.WithMaxSuggestions(cfg.Analysis.MaxSuggestions),
		service.WithOrchestratorLogger(logger),
	), nil
}
