package domain

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -destination mocks/mock_subscription_repository.go -package mocks github.com/tracknest/tracknest/internal/domain SubscriptionRepository
//go:generate mockgen -destination mocks/mock_subscription_service.go -package mocks github.com/tracknest/tracknest/internal/domain SubscriptionService

// TicketSubscription subscribes a participant to either a whole tracker
// or a single ticket, never both on one row.
type TicketSubscription struct {
	ID            int64     `json:"id"`
	ParticipantID int64     `json:"-"`
	TrackerID     *int64    `json:"tracker_id,omitempty"`
	TicketID      *int64    `json:"ticket_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *TicketSubscription) Validate() error {
	if s.ParticipantID == 0 {
		return NewFieldValidationError("participant", "is required")
	}
	if (s.TrackerID == nil) == (s.TicketID == nil) {
		return NewValidationError("subscription needs exactly one of tracker or ticket")
	}
	return nil
}

// ScanTicketSubscription scans a subscription row from the database
func ScanTicketSubscription(scanner interface {
	Scan(dest ...interface{}) error
}) (*TicketSubscription, error) {
	var s TicketSubscription
	var trackerID, ticketID sql.NullInt64
	if err := scanner.Scan(
		&s.ID,
		&s.ParticipantID,
		&trackerID,
		&ticketID,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.TrackerID = nullableID(trackerID)
	s.TicketID = nullableID(ticketID)
	return &s, nil
}

type SubscriptionRepository interface {
	// SubscribeTracker subscribes idempotently at tracker scope.
	SubscribeTracker(ctx context.Context, participantID, trackerID int64) (*TicketSubscription, error)

	// SubscribeTicket subscribes idempotently at ticket scope.
	SubscribeTicket(ctx context.Context, participantID, ticketID int64) (*TicketSubscription, error)

	// SubscribeTicketTx is SubscribeTicket inside a caller-owned
	// transaction.
	SubscribeTicketTx(ctx context.Context, tx *sql.Tx, participantID, ticketID int64) (*TicketSubscription, error)

	UnsubscribeTracker(ctx context.Context, participantID, trackerID int64) error

	UnsubscribeTicket(ctx context.Context, participantID, ticketID int64) error

	// GetForTracker returns the tracker-scope subscription or
	// ErrSubscriptionNotFound.
	GetForTracker(ctx context.Context, participantID, trackerID int64) (*TicketSubscription, error)

	// GetForTicket returns the ticket-scope subscription or
	// ErrSubscriptionNotFound.
	GetForTicket(ctx context.Context, participantID, ticketID int64) (*TicketSubscription, error)

	// ListSubscribers returns the deduplicated participants subscribed
	// to the ticket or its tracker.
	ListSubscribers(ctx context.Context, trackerID, ticketID int64) ([]*Participant, error)
}

// SubscriptionService manages who follows what.
type SubscriptionService interface {
	// SubscribeTracker and SubscribeTicket subscribe the viewer.
	SubscribeTracker(ctx context.Context, viewer *User, tracker *Tracker) (*TicketSubscription, error)
	SubscribeTicket(ctx context.Context, viewer *User, tracker *Tracker, ticket *Ticket) (*TicketSubscription, error)

	UnsubscribeTracker(ctx context.Context, viewer *User, tracker *Tracker) error
	UnsubscribeTicket(ctx context.Context, viewer *User, tracker *Tracker, ticket *Ticket) error

	// Unsubscribe by mail: drops whichever scope the address encoded.
	UnsubscribeParticipant(ctx context.Context, participant *Participant, tracker *Tracker, ticket *Ticket) error

	// IsSubscribed reports whether the participant follows the ticket
	// at either scope.
	IsSubscribed(ctx context.Context, participantID, trackerID, ticketID int64) (bool, error)
}

// ErrSubscriptionNotFound is returned when a subscription is not found
type ErrSubscriptionNotFound struct {
	Message string
}

func (e *ErrSubscriptionNotFound) Error() string {
	return e.Message
}
