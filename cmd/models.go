package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mintelligence/commodsplit/internal/config"
	"github.com/mintelligence/commodsplit/internal/production"
	"github.com/mintelligence/commodsplit/internal/providers"
	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	var provider string
	var filter string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the provider's models matching a filter",
		Example: `  # Mistral models on OpenRouter
  commodsplit models

  # Every Gemini model
  commodsplit models --provider gemini --filter ""`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			cfg, err := config.FromEnv(os.Getenv)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("provider") {
				cfg.Provider = strings.ToLower(provider)
			}

			backend, err := production.NewBackend(cfg)
			if err != nil {
				return err
			}

			models, err := backend.ListModels(cmd.Context())
			if err != nil {
				return fmt.Errorf("error fetching models: %w", err)
			}

			out := cmd.OutOrStdout()
			label := filter
			if label == "" {
				label = "all"
			}
			fmt.Fprintf(out, "Available %s models:\n", label)
			for _, m := range providers.FilterModels(models, filter) {
				fmt.Fprintf(out, "- %s\n", m.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", config.ProviderOpenRouter, "LLM provider (openrouter, ollama, or gemini)")
	cmd.Flags().StringVar(&filter, "filter", "mistral", "Only list model IDs containing this text (case-insensitive)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}
