package production

import (
	"context"
	"fmt"

	"github.com/mintelligence/commodsplit/internal/config"
	"github.com/mintelligence/commodsplit/internal/gemini"
	"github.com/mintelligence/commodsplit/internal/ollama"
	"github.com/mintelligence/commodsplit/internal/openrouter"
	"github.com/mintelligence/commodsplit/internal/providers"
	"github.com/mintelligence/commodsplit/internal/tables"
)

// Backend is an LLM provider that can also list its models
type Backend interface {
	providers.Provider
	providers.ModelLister
}

// NewBackend returns the provider named by cfg.Provider
func NewBackend(cfg config.Config) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderOpenRouter:
		return openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterURL), nil
	case config.ProviderOllama:
		return ollama.New(cfg.OllamaURL), nil
	case config.ProviderGemini:
		return gemini.New(cfg.GeminiAPIKey), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// NewSource returns local files when configured, otherwise the Google spreadsheet
func NewSource(ctx context.Context, cfg config.Config) (tables.Source, error) {
	if cfg.UseFiles() {
		return tables.NewFileSource(cfg.CentresFile, cfg.CommodsFile), nil
	}
	if cfg.SheetURL == "" {
		return nil, fmt.Errorf("GOOGLE_SHEET_URL not set and no table files given")
	}
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS not set")
	}
	src, err := tables.NewSheetsSource(ctx, cfg.SheetURL, cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// NewServiceFromConfig wires the table source and provider described by cfg
func NewServiceFromConfig(ctx context.Context, cfg config.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src, err := NewSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}

	return NewService(Options{
		Source:       src,
		Provider:     backend,
		ProviderName: cfg.Provider,
		Model:        cfg.Model,
		Temperature:  cfg.Temperature,
		Policy:       cfg.Policy(),
	}), nil
}
