package mocks

import (
	"context"
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cvforge/internal/domain"
	"cvforge/internal/port"
	"cvforge/internal/service"
)

// MockCVService is a testify mock for service.CVService.
type MockCVService struct {
	mock.Mock
}

func (m *MockCVService) Upload(ctx context.Context, input service.UploadCVInput) (*domain.CVDocument, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDocument), args.Error(1)
}

func (m *MockCVService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CVDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDocument), args.Error(1)
}

func (m *MockCVService) List(ctx context.Context, filter port.CVListFilter) ([]domain.CVDocument, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CVDocument), args.Int(1), args.Error(2)
}

func (m *MockCVService) UpdateData(ctx context.Context, id uuid.UUID, data json.RawMessage) (*domain.CVDocument, error) {
	args := m.Called(ctx, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDocument), args.Error(1)
}

func (m *MockCVService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCVService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockCVService) ExportCSV(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockCVService) ProcessCV(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCVService) TransformText(ctx context.Context, text string, preferences map[string]any) (*domain.TransformResult, error) {
	args := m.Called(ctx, text, preferences)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransformResult), args.Error(1)
}

func (m *MockCVService) ProviderStatuses() []domain.ProviderStatus {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ProviderStatus)
}
