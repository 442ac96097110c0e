package mocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cvforge/internal/domain"
	"cvforge/internal/port"
)

// MockCVRepository is a testify mock for port.CVRepository.
type MockCVRepository struct {
	mock.Mock
}

func (m *MockCVRepository) Create(ctx context.Context, doc *domain.CVDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockCVRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CVDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDocument), args.Error(1)
}

func (m *MockCVRepository) List(ctx context.Context, filter port.CVListFilter) ([]domain.CVDocument, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CVDocument), args.Int(1), args.Error(2)
}

func (m *MockCVRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CVStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCVRepository) SaveResult(ctx context.Context, id uuid.UUID, extractedText string, data, details json.RawMessage) error {
	args := m.Called(ctx, id, extractedText, data, details)
	return args.Error(0)
}

func (m *MockCVRepository) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	args := m.Called(ctx, id, message)
	return args.Error(0)
}

func (m *MockCVRepository) UpdateTransformedData(ctx context.Context, id uuid.UUID, data json.RawMessage) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockCVRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCVRepository) ClaimStale(ctx context.Context, cutoff time.Time, limit int) ([]domain.CVDocument, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CVDocument), args.Error(1)
}

func (m *MockCVRepository) ListCompleted(ctx context.Context, limit, offset int) ([]domain.CVDocument, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CVDocument), args.Error(1)
}
