package providers

import (
	"context"
	"errors"
	"strings"
)

// ErrTransport marks failures talking to a provider: bad status, undecodable
// responses, missing fields or an error payload.
var ErrTransport = errors.New("provider transport error")

// Config represents the configuration for an LLM provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}

// Model is a model offered by a provider
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ModelLister is implemented by providers that can enumerate their models
type ModelLister interface {
	ListModels(ctx context.Context) ([]Model, error)
}

// FilterModels returns the models whose ID contains substr, ignoring case.
// An empty substr keeps every model.
func FilterModels(models []Model, substr string) []Model {
	needle := strings.ToLower(substr)
	var out []Model
	for _, m := range models {
		if strings.Contains(strings.ToLower(m.ID), needle) {
			out = append(out, m)
		}
	}
	return out
}
