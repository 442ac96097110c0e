package port

import "context"

// EmailSender defines the contract for sending processing notifications.
type EmailSender interface {
	SendProcessedNotification(ctx context.Context, toEmail, documentName string, succeeded bool) error
}
