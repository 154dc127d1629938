package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mintelligence/commodsplit/internal/config"
	"github.com/mintelligence/commodsplit/internal/production"
	"github.com/mintelligence/commodsplit/internal/report"
	"github.com/spf13/cobra"
)

const commodPrompt = "Enter commod name (e.g., rice, wheat): "

type estimateFlags struct {
	commod      string
	provider    string
	model       string
	temperature float64
	ceiling     float64
	fallback    float64
	sheet       string
	credentials string
	centres     string
	commods     string
	format      string
	verbose     bool
}

func newEstimateCmd() *cobra.Command {
	var f estimateFlags

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate a commod's production and split it across its centres",
		Long: `Looks up the commod in the Commods worksheet, finds the centres producing its
HS code in the Centres worksheet, asks the LLM for the estimated total production in
million tons and prints the per-centre share.

Estimates above the ceiling are treated as implausible and replaced by the fallback.`,
		Example: `  # Prompt for the commod interactively
  commodsplit estimate

  # Non-interactive, using local exports of the two worksheets
  commodsplit estimate --commod rice --centres centres.csv --commods commods.csv

  # Use a local Ollama model and print YAML
  commodsplit estimate --commod wheat --provider ollama --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(f.verbose)

			cfg, err := config.FromEnv(os.Getenv)
			if err != nil {
				return err
			}
			f.apply(cmd, &cfg)

			svc, err := production.NewServiceFromConfig(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			commod := f.commod
			if commod == "" {
				commod, err = promptCommod(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			summary, err := svc.Split(cmd.Context(), commod)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), summary, f.format)
		},
	}

	cmd.Flags().StringVar(&f.commod, "commod", "", "Commod name (prompted for when empty)")
	cmd.Flags().StringVar(&f.provider, "provider", config.ProviderOpenRouter, "LLM provider (openrouter, ollama, or gemini)")
	cmd.Flags().StringVar(&f.model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().Float64Var(&f.temperature, "temperature", 0, "Sampling temperature")
	cmd.Flags().Float64Var(&f.ceiling, "ceiling", 0, "Largest plausible estimate in million tons (default 500)")
	cmd.Flags().Float64Var(&f.fallback, "fallback", 0, "Estimate used when the ceiling is exceeded (default 145)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Google Sheets URL or ID (default $GOOGLE_SHEET_URL)")
	cmd.Flags().StringVar(&f.credentials, "credentials", "", "Service account credentials file (default $GOOGLE_CREDENTIALS)")
	cmd.Flags().StringVar(&f.centres, "centres", "", "Local Centres table (.csv or .parquet) instead of the spreadsheet")
	cmd.Flags().StringVar(&f.commods, "commods", "", "Local Commods table (.csv or .parquet) instead of the spreadsheet")
	cmd.Flags().StringVar(&f.format, "format", report.FormatText, "Output format (text, json, or yaml)")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Verbose logging")

	cmd.MarkFlagsRequiredTogether("centres", "commods")

	return cmd
}

// apply overrides cfg with the flags that were set explicitly
func (f estimateFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("provider") {
		cfg.Provider = strings.ToLower(f.provider)
		cfg.Model = config.DefaultModel(os.Getenv, cfg.Provider)
	}
	if changed("model") {
		cfg.Model = f.model
	}
	if changed("temperature") {
		cfg.Temperature = f.temperature
	}
	if changed("ceiling") {
		cfg.Ceiling = f.ceiling
	}
	if changed("fallback") {
		cfg.Fallback = f.fallback
	}
	if changed("sheet") {
		cfg.SheetURL = f.sheet
	}
	if changed("credentials") {
		cfg.CredentialsPath = f.credentials
	}
	if changed("centres") {
		cfg.CentresFile = f.centres
	}
	if changed("commods") {
		cfg.CommodsFile = f.commods
	}
}

// promptCommod asks for the commod name, with a form on a terminal and a plain line read otherwise
func promptCommod(in io.Reader, out io.Writer) (string, error) {
	if isTerminal(in) {
		var name string
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(strings.TrimSuffix(commodPrompt, ": ")).
				Placeholder("rice").
				Value(&name),
		)).Run()
		if err != nil {
			return "", fmt.Errorf("failed to read commod name: %w", err)
		}
		return production.NormalizeCommod(name), nil
	}

	fmt.Fprint(out, commodPrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read commod name: %w", err)
	}
	return production.NormalizeCommod(line), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
