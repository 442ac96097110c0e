// Package anthropic implements the Anthropic messages provider adapter.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cvforge/internal/ai"
	"cvforge/internal/config"
	"cvforge/internal/port"
)

const (
	defaultEndpoint = "https://api.anthropic.com"
	defaultModel    = "claude-sonnet-4-20250514"
	apiVersion      = "2023-06-01"

	temperature = 0.3
	maxTokens   = 4000
)

// Client calls the Anthropic messages API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates an Anthropic-backed provider from config.
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
		"model":       c.model,
		"max_tokens":  maxTokens,
		"temperature": temperature,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", ai.NewProviderCallError("anthropic", fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", ai.NewProviderCallError("anthropic", fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", ai.NewProviderCallError("anthropic", fmt.Errorf("sending request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ai.NewProviderCallError("anthropic", fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ai.NewProviderCallError("anthropic",
			fmt.Errorf("rate limited (Retry-After: %s)", resp.Header.Get("Retry-After")))
	}
	if resp.StatusCode != http.StatusOK {
		return "", ai.NewProviderCallError("anthropic",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, ai.Truncate(string(respBody), 500)))
	}

	return parseResponse(respBody)
}

func parseResponse(body []byte) (string, error) {
	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", ai.NewProviderCallError("anthropic", fmt.Errorf("decoding response: %w", err))
	}
	if len(parsed.Content) == 0 {
		return "", ai.NewProviderCallError("anthropic", fmt.Errorf("response contains no content blocks"))
	}

	var b strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", ai.NewProviderCallError("anthropic", fmt.Errorf("response contains no text blocks"))
	}
	return b.String(), nil
}
