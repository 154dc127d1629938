package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mintelligence/commodsplit/internal/estimate"
)

// Supported estimate providers
const (
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderGemini     = "gemini"
)

// Config is the process configuration, resolved once at startup and passed down explicitly
type Config struct {
	// Tables
	SheetURL        string
	CredentialsPath string
	CentresFile     string
	CommodsFile     string

	// Estimate provider
	Provider         string
	Model            string
	Temperature      float64
	OpenRouterAPIKey string
	OpenRouterURL    string
	OllamaURL        string
	GeminiAPIKey     string

	// Plausibility bounds in million tons
	Ceiling  float64
	Fallback float64
}

// Getenv looks up an environment variable, os.Getenv in production
type Getenv func(key string) string

// FromEnv builds a Config from environment variables.
// Unset numeric values fall back to the estimate package defaults.
func FromEnv(getenv Getenv) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Config{
		SheetURL:         getenv("GOOGLE_SHEET_URL"),
		CredentialsPath:  getenv("GOOGLE_CREDENTIALS"),
		CentresFile:      getenv("CENTRES_FILE"),
		CommodsFile:      getenv("COMMODS_FILE"),
		Provider:         strings.ToLower(getenv("ESTIMATE_PROVIDER")),
		OpenRouterAPIKey: getenv("OPENROUTER_API_KEY"),
		OpenRouterURL:    getenv("OPENROUTER_URL"),
		OllamaURL:        getenv("OLLAMA_URL"),
		GeminiAPIKey:     getenv("GEMINI_API_KEY"),
		Ceiling:          estimate.DefaultCeiling,
		Fallback:         estimate.DefaultFallback,
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenRouter
	}
	if cfg.OllamaURL == "" {
		cfg.OllamaURL = getenv("OLLAMA_HOST")
	}

	var err error
	if cfg.Ceiling, err = floatEnv(getenv, "ESTIMATE_CEILING", cfg.Ceiling); err != nil {
		return Config{}, err
	}
	if cfg.Fallback, err = floatEnv(getenv, "ESTIMATE_FALLBACK", cfg.Fallback); err != nil {
		return Config{}, err
	}
	if cfg.Temperature, err = floatEnv(getenv, "ESTIMATE_TEMPERATURE", 0); err != nil {
		return Config{}, err
	}

	cfg.Model = DefaultModel(getenv, cfg.Provider)
	return cfg, nil
}

// DefaultModel returns the model used for provider when none is given
func DefaultModel(getenv Getenv, provider string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	switch provider {
	case ProviderOpenRouter:
		model := getenv("OPENROUTER_MODEL")
		if model == "" {
			return "gpt-4o-mini"
		}
		return model
	case ProviderOllama:
		model := getenv("OLLAMA_MODEL")
		if model == "" {
			return "mistral-small3.2:24b"
		}
		return model
	case ProviderGemini:
		model := getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-1.5-flash"
		}
		return model
	default:
		return ""
	}
}

// Validate reports configuration that would make a run meaningless
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenRouter, ProviderOllama, ProviderGemini:
	default:
		return fmt.Errorf("unsupported provider: %s", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("no model configured for provider %s", c.Provider)
	}
	if math.IsNaN(c.Ceiling) || math.IsInf(c.Ceiling, 0) || c.Ceiling <= 0 {
		return fmt.Errorf("ceiling must be a positive number, got %v", c.Ceiling)
	}
	if math.IsNaN(c.Fallback) || c.Fallback < 0 || c.Fallback > c.Ceiling {
		return fmt.Errorf("fallback must be between 0 and the ceiling (%v), got %v", c.Ceiling, c.Fallback)
	}
	return nil
}

// Policy returns the plausibility bounds as an estimate policy
func (c Config) Policy() estimate.Policy {
	return estimate.Policy{Ceiling: c.Ceiling, Fallback: c.Fallback}
}

// UseFiles reports whether tables come from local files instead of Google Sheets
func (c Config) UseFiles() bool {
	return c.CentresFile != "" || c.CommodsFile != ""
}

func floatEnv(getenv Getenv, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
