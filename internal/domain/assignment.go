package domain

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -destination mocks/mock_assignment_repository.go -package mocks github.com/tracknest/tracknest/internal/domain AssignmentRepository

// TicketAssignee assigns a local user to work a ticket.
type TicketAssignee struct {
	ID         int64     `json:"id"`
	TicketID   int64     `json:"ticket_id"`
	AssigneeID int64     `json:"assignee_id"`
	AssignerID int64     `json:"assigner_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type AssignUserRequest struct {
	TrackerID int64  `json:"tracker_id"`
	ScopedID  int64  `json:"scoped_id"`
	Username  string `json:"username"`
}

func (r *AssignUserRequest) Validate() error {
	if r.TrackerID == 0 {
		return NewFieldValidationError("tracker_id", "is required")
	}
	if r.ScopedID == 0 {
		return NewFieldValidationError("scoped_id", "is required")
	}
	if r.Username == "" {
		return NewFieldValidationError("username", "is required")
	}
	return nil
}

type AssignmentRepository interface {
	// AssignTx adds the assignee. Returns false when already assigned.
	AssignTx(ctx context.Context, tx *sql.Tx, ticketID, assigneeID, assignerID int64) (bool, error)

	// UnassignTx drops the assignee. Returns false when not assigned.
	UnassignTx(ctx context.Context, tx *sql.Tx, ticketID, assigneeID int64) (bool, error)

	// ListForTicket returns the assigned users.
	ListForTicket(ctx context.Context, ticketID int64) ([]*User, error)
}
