package port

import (
	"context"

	"cvforge/internal/domain"
)

// CVTransformer turns extracted CV text into structured data. Transform never
// fails: when every provider is unavailable or errors out, the heuristic
// fallback produces a schema-complete result and the details record why.
type CVTransformer interface {
	Transform(ctx context.Context, text string, preferences map[string]any) (domain.CVData, domain.ProcessingDetails)
	ProviderStatuses() []domain.ProviderStatus
}
