package gemini

import (
	"context"
	"testing"

	"github.com/mintelligence/commodsplit/internal/providers"
	"github.com/stretchr/testify/assert"
)

func TestRequiresAPIKey(t *testing.T) {
	g := New("")

	_, err := g.ExtractText(context.Background(), providers.Config{Model: "gemini-1.5-flash", Prompt: "rice"})
	assert.ErrorIs(t, err, providers.ErrTransport)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	_, err = g.ListModels(context.Background())
	assert.ErrorIs(t, err, providers.ErrTransport)
}
