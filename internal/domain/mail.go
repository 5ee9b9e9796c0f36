package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_mail_queue_repository.go -package mocks github.com/tracknest/tracknest/internal/domain MailQueueRepository

// MailMessage is one composed message waiting in the outgoing queue.
// The external transport owns delivery; this side owns composition.
type MailMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Raw       []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *MailMessage) Validate() error {
	if m.ID == "" {
		return NewFieldValidationError("id", "is required")
	}
	if m.Recipient == "" {
		return NewFieldValidationError("recipient", "is required")
	}
	if len(m.Raw) == 0 {
		return NewFieldValidationError("raw", "is required")
	}
	return nil
}

type MailQueueRepository interface {
	// Enqueue stores a composed message for the external transport.
	Enqueue(ctx context.Context, message *MailMessage) error

	// PendingCount reports queue depth, for operational visibility.
	PendingCount(ctx context.Context) (int, error)
}
