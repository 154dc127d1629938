package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mintelligence/commodsplit/internal/providers"
)

// DefaultBaseURL is the OpenRouter API root
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter is a provider for OpenRouter's OpenAI-compatible API
type OpenRouter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a new OpenRouter provider. An empty baseURL uses DefaultBaseURL.
func New(apiKey, baseURL string) *OpenRouter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenRouter{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

type apiError struct {
	Message string `json:"message"`
	Code    any    `json:"code"`
}

func (e *apiError) String() string {
	if e.Message == "" {
		return fmt.Sprintf("code %v", e.Code)
	}
	return fmt.Sprintf("%s (code %v)", e.Message, e.Code)
}

// ExtractText sends the prompt as a single user message and returns the first choice's content
func (o *OpenRouter) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY not set", providers.ErrTransport)
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model": config.Model,
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": config.Prompt,
			},
		},
		"temperature": config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/chat/completions", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	body, status, err := o.do(req)
	if err != nil {
		return "", err
	}
	slog.Debug("OpenRouter response", "status", status, "body", string(body))

	if status != http.StatusOK {
		return "", fmt.Errorf("%w: received non-200 status code: %d - %s", providers.ErrTransport, status, string(body))
	}

	var response struct {
		Error   *apiError `json:"error"`
		Choices *[]struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%w: failed to decode response body: %w", providers.ErrTransport, err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("%w: OpenRouter API returned error: %s", providers.ErrTransport, response.Error)
	}
	if response.Choices == nil {
		return "", fmt.Errorf("%w: 'choices' not found in API response", providers.ErrTransport)
	}
	if len(*response.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned from OpenRouter", providers.ErrTransport)
	}

	return (*response.Choices)[0].Message.Content, nil
}

// ListModels returns every model the account can see
func (o *OpenRouter) ListModels(ctx context.Context) ([]providers.Model, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	body, status, err := o.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: error fetching models: %d - %s", providers.ErrTransport, status, string(body))
	}

	// The listing is documented under "data"; older deployments used "models".
	var response struct {
		Data   []providers.Model `json:"data"`
		Models []providers.Model `json:"models"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: failed to decode models response: %w", providers.ErrTransport, err)
	}

	return append(response.Data, response.Models...), nil
}

func (o *OpenRouter) do(req *http.Request) ([]byte, int, error) {
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to send request: %w", providers.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: failed to read response body: %w", providers.ErrTransport, err)
	}
	return body, resp.StatusCode, nil
}
