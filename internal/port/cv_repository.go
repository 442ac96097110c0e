package port

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"cvforge/internal/domain"
)

// CVListFilter narrows List results.
type CVListFilter struct {
	Status domain.CVStatus
	Limit  int
	Offset int
}

// CVRepository persists CV documents and their transformation results.
type CVRepository interface {
	Create(ctx context.Context, doc *domain.CVDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CVDocument, error)
	List(ctx context.Context, filter CVListFilter) ([]domain.CVDocument, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CVStatus) error

	// SaveResult atomically records a completed transformation: status,
	// extracted text, structured data and processing details.
	SaveResult(ctx context.Context, id uuid.UUID, extractedText string, data, details json.RawMessage) error

	// MarkFailed records a failed transformation with its error message.
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error

	// UpdateTransformedData replaces the structured data of a completed document.
	UpdateTransformedData(ctx context.Context, id uuid.UUID, data json.RawMessage) error

	Delete(ctx context.Context, id uuid.UUID) error

	// ClaimStale flips documents stuck in the uploaded state since before
	// cutoff to processing and returns them, at most limit at a time.
	ClaimStale(ctx context.Context, cutoff time.Time, limit int) ([]domain.CVDocument, error)

	// ListCompleted returns completed documents in batches for export and
	// reprocessing.
	ListCompleted(ctx context.Context, limit, offset int) ([]domain.CVDocument, error)
}
