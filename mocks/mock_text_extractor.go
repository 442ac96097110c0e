package mocks

import (
	"github.com/stretchr/testify/mock"

	"cvforge/internal/domain"
)

// MockTextExtractor is a testify mock for port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(data []byte, fileType domain.FileType) (string, error) {
	args := m.Called(data, fileType)
	return args.String(0), args.Error(1)
}
