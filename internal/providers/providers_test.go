package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterModels(t *testing.T) {
	models := []Model{
		{ID: "mistralai/mistral-7b-instruct"},
		{ID: "openai/gpt-4o-mini"},
		{ID: "mistralai/Mistral-Large"},
		{ID: "meta-llama/llama-3-70b"},
	}

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{name: "case insensitive", filter: "MISTRAL", want: []string{"mistralai/mistral-7b-instruct", "mistralai/Mistral-Large"}},
		{name: "empty keeps all", filter: "", want: []string{"mistralai/mistral-7b-instruct", "openai/gpt-4o-mini", "mistralai/Mistral-Large", "meta-llama/llama-3-70b"}},
		{name: "no match", filter: "claude", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, m := range FilterModels(models, tt.filter) {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
