package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cvforge/internal/port"
)

// MockProvider is a testify mock for port.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Complete(ctx context.Context, input port.CompletionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
