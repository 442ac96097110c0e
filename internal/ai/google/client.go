// Package google implements the Gemini generateContent provider adapter.
package google

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
	defaultEndpoint = "https://generativelanguage.googleapis.com"
	defaultModel    = "gemini-2.0-flash"

	temperature     = 0.3
	maxOutputTokens = 4000
)

// Client calls the Gemini generateContent API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Gemini-backed provider from config.
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
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":     temperature,
			"maxOutputTokens": maxOutputTokens,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", ai.NewProviderCallError("google", fmt.Errorf("marshaling request: %w", err))
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", ai.NewProviderCallError("google", fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", ai.NewProviderCallError("google", fmt.Errorf("sending request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ai.NewProviderCallError("google", fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ai.NewProviderCallError("google",
			fmt.Errorf("rate limited (Retry-After: %s)", resp.Header.Get("Retry-After")))
	}
	if resp.StatusCode != http.StatusOK {
		return "", ai.NewProviderCallError("google",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, ai.Truncate(string(respBody), 500)))
	}

	return parseResponse(respBody)
}

func parseResponse(body []byte) (string, error) {
	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", ai.NewProviderCallError("google", fmt.Errorf("decoding response: %w", err))
	}
	if len(parsed.Candidates) == 0 {
		return "", ai.NewProviderCallError("google", fmt.Errorf("response contains no candidates"))
	}

	var b strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	if b.Len() == 0 {
		return "", ai.NewProviderCallError("google", fmt.Errorf("candidate contains no text parts"))
	}
	return b.String(), nil
}
