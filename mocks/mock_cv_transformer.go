package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cvforge/internal/domain"
)

// MockCVTransformer is a testify mock for port.CVTransformer.
type MockCVTransformer struct {
	mock.Mock
}

func (m *MockCVTransformer) Transform(ctx context.Context, text string, preferences map[string]any) (domain.CVData, domain.ProcessingDetails) {
	args := m.Called(ctx, text, preferences)
	return args.Get(0).(domain.CVData), args.Get(1).(domain.ProcessingDetails)
}

func (m *MockCVTransformer) ProviderStatuses() []domain.ProviderStatus {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ProviderStatus)
}
