package ai

import "fmt"

// ProviderCallError indicates a provider call failed at the transport or API
// level. The orchestrator records it and moves on to the next provider.
type ProviderCallError struct {
	Provider string
	Err      error
}

func (e *ProviderCallError) Error() string {
	return fmt.Sprintf("provider %s call failed: %v", e.Provider, e.Err)
}

func (e *ProviderCallError) Unwrap() error {
	return e.Err
}

// NewProviderCallError wraps err as a failed call against provider.
func NewProviderCallError(provider string, err error) *ProviderCallError {
	return &ProviderCallError{Provider: provider, Err: err}
}

// MalformedResponseError indicates a provider responded but no parseable JSON
// object could be recovered from its output.
type MalformedResponseError struct {
	Reason  string
	Snippet string
}

func (e *MalformedResponseError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("malformed model response: %s", e.Reason)
	}
	return fmt.Sprintf("malformed model response: %s: %q", e.Reason, e.Snippet)
}

// Truncate shortens s to at most n bytes for error messages and logs.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
