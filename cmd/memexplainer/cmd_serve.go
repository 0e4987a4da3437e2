package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"memexplainer/internal/app"
	"memexplainer/internal/config"
	"memexplainer/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the meme explanation HTTP service",
	Long: `Starts the HTTP service exposing /explain/explanation and /media endpoints.

Startup connects to the register store and seeds empty partitions; missing
CHROMA_API_KEY, CHROMA_TENANT, or CHROMA_DATABASE abort before serving.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return application.Serve(ctx)
}
