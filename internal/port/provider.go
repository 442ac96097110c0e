package port

import "context"

// CompletionInput carries the extracted CV text and optional target-style
// preferences into a provider call.
type CompletionInput struct {
	Text        string
	Preferences map[string]any
}

// Provider is a single AI provider capable of turning extracted CV text into
// a raw model response. Implementations do not retry; a failed call returns
// an error and the caller decides what to do next.
type Provider interface {
	Complete(ctx context.Context, input CompletionInput) (string, error)
}
