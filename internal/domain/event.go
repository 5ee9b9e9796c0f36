package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_event_repository.go -package mocks github.com/tracknest/tracknest/internal/domain EventRepository

// EventType is a bitset: one event row can record a comment and a
// status change at once.
type EventType int

const (
	EventCreated         EventType = 1
	EventComment         EventType = 2
	EventStatusChange    EventType = 4
	EventLabelAdded      EventType = 8
	EventLabelRemoved    EventType = 16
	EventAssignedUser    EventType = 32
	EventUnassignedUser  EventType = 64
	EventUserMentioned   EventType = 128
	EventTicketMentioned EventType = 256
)

var eventTypeNames = []struct {
	bit  EventType
	name string
}{
	{EventCreated, "created"},
	{EventComment, "comment"},
	{EventStatusChange, "status_change"},
	{EventLabelAdded, "label_added"},
	{EventLabelRemoved, "label_removed"},
	{EventAssignedUser, "assigned_user"},
	{EventUnassignedUser, "unassigned_user"},
	{EventUserMentioned, "user_mentioned"},
	{EventTicketMentioned, "ticket_mentioned"},
}

func (t EventType) Has(bit EventType) bool {
	return t&bit == bit
}

// Names returns the set bits as enum names.
func (t EventType) Names() []string {
	names := []string{}
	for _, n := range eventTypeNames {
		if t.Has(n.bit) {
			names = append(names, n.name)
		}
	}
	return names
}

func (t EventType) String() string {
	return strings.Join(t.Names(), ",")
}

// MarshalJSON encodes the bitset as a list of names.
func (t EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Names())
}

func (t *EventType) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var et EventType
	for _, name := range names {
		found := false
		for _, n := range eventTypeNames {
			if n.name == name {
				et |= n.bit
				found = true
				break
			}
		}
		if !found {
			return NewFieldValidationError("event_type", "unknown event type "+name)
		}
	}
	*t = et
	return nil
}

// Event is one entry in a ticket's history. Which reference fields are
// set depends on the type bits: comment events carry CommentID, status
// changes the old/new pairs, label events LabelID, mention and
// assignment events the by-participant causer. Mention events on other
// tickets carry FromTicketID pointing back at the ticket whose body
// contained the reference.
type Event struct {
	ID        int64     `json:"id"`
	EventType EventType `json:"event_type"`

	ParticipantID   *int64 `json:"-"`
	TicketID        *int64 `json:"ticket_id,omitempty"`
	CommentID       *int64 `json:"comment_id,omitempty"`
	LabelID         *int64 `json:"label_id,omitempty"`
	ByParticipantID *int64 `json:"-"`
	FromTicketID    *int64 `json:"from_ticket_id,omitempty"`

	OldStatus     *TicketStatus     `json:"old_status,omitempty"`
	NewStatus     *TicketStatus     `json:"new_status,omitempty"`
	OldResolution *TicketResolution `json:"old_resolution,omitempty"`
	NewResolution *TicketResolution `json:"new_resolution,omitempty"`

	// Loaded relations
	Participant   *Participant   `json:"participant,omitempty"`
	ByParticipant *Participant   `json:"by_participant,omitempty"`
	Comment       *TicketComment `json:"comment,omitempty"`
	Label         *Label         `json:"label,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ScanEvent scans an event row from the database
func ScanEvent(scanner interface {
	Scan(dest ...interface{}) error
}) (*Event, error) {
	var e Event
	var eventType int
	var participantID, ticketID, commentID, labelID, byParticipantID, fromTicketID sql.NullInt64
	var oldStatus, newStatus, oldResolution, newResolution sql.NullInt64

	if err := scanner.Scan(
		&e.ID,
		&eventType,
		&participantID,
		&ticketID,
		&commentID,
		&labelID,
		&byParticipantID,
		&fromTicketID,
		&oldStatus,
		&newStatus,
		&oldResolution,
		&newResolution,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.EventType = EventType(eventType)
	e.ParticipantID = nullableID(participantID)
	e.TicketID = nullableID(ticketID)
	e.CommentID = nullableID(commentID)
	e.LabelID = nullableID(labelID)
	e.ByParticipantID = nullableID(byParticipantID)
	e.FromTicketID = nullableID(fromTicketID)
	if oldStatus.Valid {
		s := TicketStatus(oldStatus.Int64)
		e.OldStatus = &s
	}
	if newStatus.Valid {
		s := TicketStatus(newStatus.Int64)
		e.NewStatus = &s
	}
	if oldResolution.Valid {
		r := TicketResolution(oldResolution.Int64)
		e.OldResolution = &r
	}
	if newResolution.Valid {
		r := TicketResolution(newResolution.Int64)
		e.NewResolution = &r
	}

	return &e, nil
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

// EventNotification places an event in a user's notification feed.
type EventNotification struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type EventRepository interface {
	InsertTx(ctx context.Context, tx *sql.Tx, event *Event) error

	GetByID(ctx context.Context, id int64) (*Event, error)

	// ListByTicket pages a ticket's events by id ascending.
	ListByTicket(ctx context.Context, ticketID int64, cursor *Cursor) ([]*Event, *Cursor, error)

	// ListAllByTicket returns every event of a ticket by id ascending.
	ListAllByTicket(ctx context.Context, ticketID int64) ([]*Event, error)

	// ListForUser pages a user's notification feed by event id
	// descending.
	ListForUser(ctx context.Context, userID int64, cursor *Cursor) ([]*Event, *Cursor, error)

	// GetLatestByCommentTx returns the newest event pointing at the
	// comment.
	GetLatestByCommentTx(ctx context.Context, tx *sql.Tx, commentID int64) (*Event, error)

	// RepointCommentTx moves an event to a newer comment revision.
	RepointCommentTx(ctx context.Context, tx *sql.Tx, eventID, commentID int64) error

	// InsertNotificationTx adds the event to a user's feed.
	InsertNotificationTx(ctx context.Context, tx *sql.Tx, eventID, userID int64) error
}

// ErrEventNotFound is returned when an event is not found
type ErrEventNotFound struct {
	Message string
}

func (e *ErrEventNotFound) Error() string {
	return e.Message
}
