package domain

import "context"

//go:generate mockgen -destination mocks/mock_notification_service.go -package mocks github.com/tracknest/tracknest/internal/domain NotificationService

// EventMail carries everything needed to compose notification mail for a
// single ticket event. Recipients have already been resolved, deduplicated
// and filtered for self-notification by the caller; external participants
// are dropped during composition because they have no address.
type EventMail struct {
	Tracker    *Tracker
	Ticket     *Ticket
	Event      *Event
	Actor      *Participant
	Comment    *TicketComment
	Recipients []*Participant

	// FromEmail marks events that originated on the mail gateway. The
	// gateway reflects the sender's own message back to them like a
	// mailing list would, so the caller keeps the actor in Recipients.
	FromEmail bool
}

type NotificationService interface {
	// SendEventMail composes and enqueues one message per eligible
	// recipient. Failures are reported but must not unwind the event
	// that triggered them.
	SendEventMail(ctx context.Context, mail *EventMail) error

	// SendMentionMail notifies a single mentioned user who was not
	// already covered by the event's subscriber fan-out.
	SendMentionMail(ctx context.Context, mail *EventMail, mentioned *Participant) error
}
