package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mintelligence/commodsplit/internal/providers"
)

// DefaultURL is where a local Ollama server listens
const DefaultURL = "http://localhost:11434"

// Ollama is a provider for Ollama
type Ollama struct {
	url    string
	client *http.Client
}

// New returns a new Ollama provider. An empty url uses DefaultURL.
func New(url string) *Ollama {
	if url == "" {
		url = DefaultURL
	}
	return &Ollama{
		url:    strings.TrimRight(url, "/"),
		client: &http.Client{},
	}
}

// ExtractText extracts text from the given prompt using Ollama
func (o *Ollama) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  config.Model,
		"prompt": config.Prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": config.Temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.url+"/api/generate", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var response struct {
		Response string `json:"response"`
	}
	if err := o.do(req, &response); err != nil {
		return "", err
	}

	return response.Response, nil
}

// ListModels returns the models pulled into the local Ollama server
func (o *Ollama) ListModels(ctx context.Context) ([]providers.Model, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", o.url+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}

	var response struct {
		Models []struct {
			Name  string `json:"name"`
			Model string `json:"model"`
		} `json:"models"`
	}
	if err := o.do(req, &response); err != nil {
		return nil, err
	}

	models := make([]providers.Model, 0, len(response.Models))
	for _, m := range response.Models {
		id := m.Model
		if id == "" {
			id = m.Name
		}
		models = append(models, providers.Model{ID: id, Name: m.Name})
	}
	return models, nil
}

func (o *Ollama) do(req *http.Request, out any) error {
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to send request: %w", providers.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: received non-200 status code: %d - %s", providers.ErrTransport, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response body: %w", providers.ErrTransport, err)
	}
	return nil
}
