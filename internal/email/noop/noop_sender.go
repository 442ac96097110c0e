package noop

import (
	"context"
	"log"

	"cvforge/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs. Used in development
// and when no email provider is configured.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendProcessedNotification(_ context.Context, toEmail, documentName string, succeeded bool) error {
	log.Printf("[NOOP EMAIL] processed notification to=%s document=%q succeeded=%t", toEmail, documentName, succeeded)
	return nil
}
