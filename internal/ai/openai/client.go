// Package openai implements the OpenAI chat-completions provider adapter.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cvforge/internal/ai"
	"cvforge/internal/config"
	"cvforge/internal/port"
)

const (
	defaultEndpoint = "https://api.openai.com"
	defaultModel    = "gpt-4o"

	systemMessage = "You are a precise CV transformation engine. You always respond with a single JSON object and nothing else."

	temperature = 0.3
	maxTokens   = 4000
)

// Client calls the OpenAI chat completions API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates an OpenAI-backed provider from config.
func NewClient(cfg *config.ProviderConfig) *Client {
	return NewClientWithEndpoint(cfg, defaultEndpoint)
}

// NewClientWithEndpoint creates a client against a custom endpoint. Tests
// point this at an httptest server.
func NewClientWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if cfg.TimeoutSecs <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Complete sends the transformation prompt and returns the raw model output.
func (c *Client) Complete(ctx context.Context, input port.CompletionInput) (string, error) {
	prompt := ai.BuildPrompt(input.Text, input.Preferences)

	body := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemMessage},
			{"role": "user", "content": prompt},
		},
		"temperature": temperature,
		"max_tokens":  maxTokens,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", ai.NewProviderCallError("openai", fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", ai.NewProviderCallError("openai", fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", ai.NewProviderCallError("openai", fmt.Errorf("sending request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ai.NewProviderCallError("openai", fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ai.NewProviderCallError("openai",
			fmt.Errorf("rate limited (Retry-After: %s)", resp.Header.Get("Retry-After")))
	}
	if resp.StatusCode != http.StatusOK {
		return "", ai.NewProviderCallError("openai",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, ai.Truncate(string(respBody), 500)))
	}

	return parseResponse(respBody)
}

func parseResponse(body []byte) (string, error) {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", ai.NewProviderCallError("openai", fmt.Errorf("decoding response: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return "", ai.NewProviderCallError("openai", fmt.Errorf("response contains no choices"))
	}
	return parsed.Choices[0].Message.Content, nil
}
