package config

import (
	"testing"

	"github.com/mintelligence/commodsplit/internal/estimate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) Getenv {
	return func(key string) string { return vars[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 0.0, cfg.Temperature)
	assert.Equal(t, estimate.DefaultCeiling, cfg.Ceiling)
	assert.Equal(t, estimate.DefaultFallback, cfg.Fallback)
	assert.Equal(t, estimate.DefaultPolicy(), cfg.Policy())
	assert.False(t, cfg.UseFiles())
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"GOOGLE_SHEET_URL":   "https://docs.google.com/spreadsheets/d/abc/edit",
		"GOOGLE_CREDENTIALS": "/secrets/sa.json",
		"OPENROUTER_API_KEY": "sk-or",
		"ESTIMATE_PROVIDER":  "Ollama",
		"OLLAMA_HOST":        "http://gpu-box:11434",
		"OLLAMA_MODEL":       "mistral:7b",
		"ESTIMATE_CEILING":   " 900 ",
		"ESTIMATE_FALLBACK":  "200",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc/edit", cfg.SheetURL)
	assert.Equal(t, "/secrets/sa.json", cfg.CredentialsPath)
	assert.Equal(t, "sk-or", cfg.OpenRouterAPIKey)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "http://gpu-box:11434", cfg.OllamaURL)
	assert.Equal(t, "mistral:7b", cfg.Model)
	assert.Equal(t, 900.0, cfg.Ceiling)
	assert.Equal(t, 200.0, cfg.Fallback)
}

func TestFromEnvInvalidNumber(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"ESTIMATE_CEILING": "lots"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ESTIMATE_CEILING")
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", DefaultModel(env(nil), ProviderOpenRouter))
	assert.Equal(t, "mistral-small3.2:24b", DefaultModel(env(nil), ProviderOllama))
	assert.Equal(t, "gemini-1.5-flash", DefaultModel(env(nil), ProviderGemini))
	assert.Equal(t, "openai/gpt-4o", DefaultModel(env(map[string]string{"OPENROUTER_MODEL": "openai/gpt-4o"}), ProviderOpenRouter))
	assert.Empty(t, DefaultModel(env(nil), "bedrock"))
}

func TestValidate(t *testing.T) {
	base := Config{Provider: ProviderOpenRouter, Model: "gpt-4o-mini", Ceiling: 500, Fallback: 145}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "fallback equal to ceiling", mutate: func(c *Config) { c.Fallback = 500 }},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "bedrock" }, errMsg: "unsupported provider"},
		{name: "missing model", mutate: func(c *Config) { c.Model = "" }, errMsg: "no model"},
		{name: "zero ceiling", mutate: func(c *Config) { c.Ceiling = 0 }, errMsg: "ceiling"},
		{name: "negative fallback", mutate: func(c *Config) { c.Fallback = -1 }, errMsg: "fallback"},
		{name: "fallback above ceiling", mutate: func(c *Config) { c.Fallback = 501 }, errMsg: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
