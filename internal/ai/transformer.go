package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"cvforge/internal/domain"
	"cvforge/internal/port"
)

// ProviderEntry is one slot in the ordered fallback chain. Client is nil when
// the provider is not configured; unconfigured providers are skipped without
// recording an error.
type ProviderEntry struct {
	Tag        string
	Confidence float64
	Client     port.Provider
}

// Confidence tiers per provider, reflecting observed output quality.
const (
	ConfidenceOpenAI    = 0.95
	ConfidenceAnthropic = 0.90
	ConfidenceGoogle    = 0.85
	ConfidenceBasic     = 0.60
)

// Transformer runs extracted CV text through the provider chain in order and
// falls back to heuristic parsing when every provider fails.
type Transformer struct {
	entries []ProviderEntry
}

// NewTransformer creates a Transformer over the given ordered entries.
func NewTransformer(entries []ProviderEntry) *Transformer {
	return &Transformer{entries: entries}
}

// Transform never fails. Each configured provider is tried once, in order;
// a provider failure is recorded and the chain moves on. When the chain is
// exhausted the basic parser produces the result with every accumulated
// error attached.
func (t *Transformer) Transform(ctx context.Context, text string, preferences map[string]any) (domain.CVData, domain.ProcessingDetails) {
	start := time.Now()
	var attemptErrors []string

	for _, entry := range t.entries {
		if entry.Client == nil {
			continue
		}

		cv, err := t.tryProvider(ctx, entry, text, preferences)
		if err != nil {
			log.Printf("transformer.Transform: provider %s failed: %v", entry.Tag, err)
			attemptErrors = append(attemptErrors, fmt.Sprintf("%s: %v", entry.Tag, err))
			continue
		}

		return cv, domain.ProcessingDetails{
			ProviderUsed:    entry.Tag,
			ElapsedMs:       time.Since(start).Milliseconds(),
			ConfidenceScore: entry.Confidence,
			Errors:          errorsOrEmpty(attemptErrors),
		}
	}

	log.Printf("transformer.Transform: all providers exhausted (%d errors), using basic parsing", len(attemptErrors))
	cv := BasicParse(text)
	return cv, domain.ProcessingDetails{
		ProviderUsed:    domain.ProviderBasic,
		ElapsedMs:       time.Since(start).Milliseconds(),
		ConfidenceScore: ConfidenceBasic,
		Errors:          errorsOrEmpty(attemptErrors),
	}
}

func (t *Transformer) tryProvider(ctx context.Context, entry ProviderEntry, text string, preferences map[string]any) (domain.CVData, error) {
	raw, err := entry.Client.Complete(ctx, port.CompletionInput{
		Text:        text,
		Preferences: preferences,
	})
	if err != nil {
		return domain.CVData{}, err
	}

	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return domain.CVData{}, err
	}

	cv := Normalize(obj)
	ApplyStyleRules(&cv)
	return cv, nil
}

// ProviderStatuses reports availability for every slot in the chain.
func (t *Transformer) ProviderStatuses() []domain.ProviderStatus {
	statuses := make([]domain.ProviderStatus, 0, len(t.entries))
	for _, entry := range t.entries {
		statuses = append(statuses, domain.ProviderStatus{
			Name:      entry.Tag,
			Available: entry.Client != nil,
		})
	}
	return statuses
}

func errorsOrEmpty(errs []string) []string {
	if errs == nil {
		return []string{}
	}
	return errs
}
