package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvforge/internal/ai"
	"cvforge/internal/ai/anthropic"
	"cvforge/internal/config"
	"cvforge/internal/port"
)

func testConfig() *config.ProviderConfig {
	return &config.ProviderConfig{
		APIKey:      "sk-ant-test",
		Model:       "claude-sonnet-4-20250514",
		TimeoutSecs: 5,
	}
}

func TestComplete_Success(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": `{"profile": "Engineer"}`},
			},
		})
	}))
	defer server.Close()

	client := anthropic.NewClientWithEndpoint(testConfig(), server.URL)
	out, err := client.Complete(context.Background(), port.CompletionInput{Text: "cv text"})

	require.NoError(t, err)
	assert.Equal(t, `{"profile": "Engineer"}`, out)
	assert.Equal(t, "claude-sonnet-4-20250514", captured["model"])
	assert.Equal(t, float64(4000), captured["max_tokens"])
	assert.Equal(t, 0.3, captured["temperature"])

	messages := captured["messages"].([]any)
	require.Len(t, messages, 1)
	user := messages[0].(map[string]any)
	assert.Equal(t, "user", user["role"])
	assert.Contains(t, user["content"], "cv text")
}

func TestComplete_JoinsTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": `{"profile":`},
				{"type": "text", "text": ` "Engineer"}`},
			},
		})
	}))
	defer server.Close()

	client := anthropic.NewClientWithEndpoint(testConfig(), server.URL)
	out, err := client.Complete(context.Background(), port.CompletionInput{Text: "cv text"})

	require.NoError(t, err)
	assert.Equal(t, `{"profile": "Engineer"}`, out)
}

func TestComplete_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "15")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := anthropic.NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), port.CompletionInput{Text: "cv text"})

	require.Error(t, err)
	var callErr *ai.ProviderCallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "anthropic", callErr.Provider)
	assert.Contains(t, err.Error(), "Retry-After: 15")
}

func TestComplete_NoTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "tool_use"}},
		})
	}))
	defer server.Close()

	client := anthropic.NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), port.CompletionInput{Text: "cv text"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text blocks")
}
