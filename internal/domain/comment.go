package domain

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_comment_repository.go -package mocks github.com/tracknest/tracknest/internal/domain CommentRepository

// TicketComment is one comment revision. Edits never overwrite: the
// replacement row points back via SupersededByID on the original, and
// the latest revision is the one no other row supersedes.
type TicketComment struct {
	ID           int64        `json:"id"`
	TicketID     int64        `json:"ticket_id"`
	SubmitterID  int64        `json:"-"`
	Submitter    *Participant `json:"submitter,omitempty"`
	Text         string       `json:"text"`
	Authenticity Authenticity `json:"authenticity"`

	// SupersededByID points to the newer revision, nil on the current
	// one.
	SupersededByID *int64 `json:"superseded_by_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate performs validation on the comment fields
func (c *TicketComment) Validate() error {
	if c.TicketID == 0 {
		return NewFieldValidationError("ticket_id", "is required")
	}
	if c.SubmitterID == 0 {
		return NewFieldValidationError("submitter", "is required")
	}
	if len(c.Text) < TicketTitleMinLen || len(c.Text) > TicketBodyMaxLen {
		return NewFieldValidationError("text",
			fmt.Sprintf("length must be between %d and %d", TicketTitleMinLen, TicketBodyMaxLen))
	}
	return nil
}

// ScanTicketComment scans a comment row from the database
func ScanTicketComment(scanner interface {
	Scan(dest ...interface{}) error
}) (*TicketComment, error) {
	var c TicketComment
	var authenticity int
	var superseded sql.NullInt64
	if err := scanner.Scan(
		&c.ID,
		&c.TicketID,
		&c.SubmitterID,
		&c.Text,
		&authenticity,
		&superseded,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	c.Authenticity = Authenticity(authenticity)
	if superseded.Valid {
		c.SupersededByID = &superseded.Int64
	}
	return &c, nil
}

type EditCommentRequest struct {
	TrackerID int64  `json:"tracker_id"`
	ScopedID  int64  `json:"scoped_id"`
	CommentID int64  `json:"comment_id"`
	Text      string `json:"text"`
}

func (r *EditCommentRequest) Validate() error {
	if r.TrackerID == 0 {
		return NewFieldValidationError("tracker_id", "is required")
	}
	if r.ScopedID == 0 {
		return NewFieldValidationError("scoped_id", "is required")
	}
	if r.CommentID == 0 {
		return NewFieldValidationError("comment_id", "is required")
	}
	if len(r.Text) < TicketTitleMinLen || len(r.Text) > TicketBodyMaxLen {
		return NewFieldValidationError("text",
			fmt.Sprintf("length must be between %d and %d", TicketTitleMinLen, TicketBodyMaxLen))
	}
	return nil
}

type CommentRepository interface {
	// InsertTx stores a comment revision.
	InsertTx(ctx context.Context, tx *sql.Tx, comment *TicketComment) error

	GetByID(ctx context.Context, id int64) (*TicketComment, error)

	// ListByTicket returns current revisions only, oldest first.
	ListByTicket(ctx context.Context, ticketID int64) ([]*TicketComment, error)

	// SupersedeTx points old at its replacement.
	SupersedeTx(ctx context.Context, tx *sql.Tx, oldID, newID int64) error

	// Resolve follows the supersession chain from the given comment to
	// the current revision.
	Resolve(ctx context.Context, id int64) (*TicketComment, error)

	// CountCurrentByTicket counts non-superseded comments, used to
	// rebuild comment_count after imports.
	CountCurrentByTicket(ctx context.Context, ticketID int64) (int, error)
}

// ErrCommentNotFound is returned when a comment is not found
type ErrCommentNotFound struct {
	Message string
}

func (e *ErrCommentNotFound) Error() string {
	return e.Message
}
