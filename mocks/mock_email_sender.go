package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a testify mock for port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendProcessedNotification(ctx context.Context, toEmail, documentName string, succeeded bool) error {
	args := m.Called(ctx, toEmail, documentName, succeeded)
	return args.Error(0)
}
