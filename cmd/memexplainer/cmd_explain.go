package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"memexplainer/internal/app"
	"memexplainer/internal/config"
	"memexplainer/internal/domain"
	"memexplainer/internal/logging"
)

var (
	explainRegister string
	explainOut      string
)

var explainCmd = &cobra.Command{
	Use:   "explain <topic>",
	Short: "Run one research pipeline pass and print the explanation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&explainRegister, "register", "gen-z", "target register: boomer, gen-x, millenial, gen-z")
	explainCmd.Flags().StringVar(&explainOut, "out", "", "save the explanation as markdown to this file")
}

func runExplain(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")

	register, err := domain.ParseRegister(explainRegister)
	if err != nil {
		return err
	}

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	state, err := application.Pipeline().Run(cmd.Context(), topic, register)
	if err != nil {
		return fmt.Errorf("explain %q: %w", topic, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), state.Explanation)

	if explainOut != "" {
		doc := fmt.Sprintf("# %s\n\n%s\n", state.Curated.Name, state.Explanation)
		if err := os.WriteFile(explainOut, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("save explanation: %w", err)
		}
		logger.Info("explanation saved", "path", explainOut)
	}

	return nil
}
