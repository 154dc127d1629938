package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commodsplit",
		Short: "Split an LLM production estimate for a commod across its producing centres",
		Long: `Commodsplit looks up a commod's HS code and producing centres in a Google
spreadsheet (or local CSV/Parquet exports), asks an LLM for the commod's estimated
total production in million tons, and divides it evenly across the centres.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newEstimateCmd())
	cmd.AddCommand(newModelsCmd())

	return cmd
}

func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
