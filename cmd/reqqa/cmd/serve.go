package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/adapters/store"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP server",
	Long: `Start the REST API for requirement analysis.

Examples:
  # Start with defaults (localhost:8080)
  reqqa serve

  # Start on a custom host and port
  reqqa serve --host 0.0.0.0 --port 3000`,
	RunE: runServe,
}

var (
	serveHost   string
	servePort   int
	serveNoCORS bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "host address to bind to")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on")
	serveCmd.Flags().BoolVar(&serveNoCORS, "no-cors", false, "disable CORS headers")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveNoCORS {
		cfg.Server.CORS = false
	}

	orch, err := buildOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	resultStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening result store: %w", err)
	}
	defer func() { _ = resultStore.Close() }()
	logger.Info("result store ready", "path", cfg.Store.Path)

	server := api.NewServer(orch, resultStore,
		api.WithServerLogger(logger),
		api.WithCORS(cfg.Server.CORS),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return server.ListenAndServe(ctx, addr)
}
