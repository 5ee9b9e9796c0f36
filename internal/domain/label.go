package domain

import (
	"context"
	"database/sql"
	"math"
	"regexp"
	"strconv"
	"time"
)

//go:generate mockgen -destination mocks/mock_label_repository.go -package mocks github.com/tracknest/tracknest/internal/domain LabelRepository
//go:generate mockgen -destination mocks/mock_label_service.go -package mocks github.com/tracknest/tracknest/internal/domain LabelService

var labelColorRegexp = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Label is a tracker-scoped tag. Name is unique within the tracker.
type Label struct {
	ID        int64     `json:"id"`
	TrackerID int64     `json:"tracker_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	TextColor string    `json:"text_color"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate performs validation on the label fields
func (l *Label) Validate() error {
	if l.TrackerID == 0 {
		return NewFieldValidationError("tracker_id", "is required")
	}
	if l.Name == "" {
		return NewFieldValidationError("name", "is required")
	}
	if len(l.Name) > 50 {
		return NewFieldValidationError("name", "length must be between 1 and 50")
	}
	if !labelColorRegexp.MatchString(l.Color) {
		return NewFieldValidationError("color", "must be a #RRGGBB hex color")
	}
	if l.TextColor != "" && !labelColorRegexp.MatchString(l.TextColor) {
		return NewFieldValidationError("text_color", "must be a #RRGGBB hex color")
	}
	return nil
}

// ContrastingTextColor picks black or white text for a background color
// using W3C relative luminance.
func ContrastingTextColor(background string) string {
	if !labelColorRegexp.MatchString(background) {
		return "#000000"
	}
	channel := func(hex string) float64 {
		v, _ := strconv.ParseUint(hex, 16, 8)
		c := float64(v) / 255.0
		if c <= 0.03928 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	r := channel(background[1:3])
	g := channel(background[3:5])
	b := channel(background[5:7])
	luminance := 0.2126*r + 0.7152*g + 0.0722*b
	if luminance > 0.179 {
		return "#000000"
	}
	return "#ffffff"
}

// ScanLabel scans a label row from the database
func ScanLabel(scanner interface {
	Scan(dest ...interface{}) error
}) (*Label, error) {
	var l Label
	if err := scanner.Scan(
		&l.ID,
		&l.TrackerID,
		&l.Name,
		&l.Color,
		&l.TextColor,
		&l.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

// TicketLabel associates a label with a ticket, remembering who applied
// it.
type TicketLabel struct {
	TicketID  int64     `json:"ticket_id"`
	LabelID   int64     `json:"label_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Request/Response types
type CreateLabelRequest struct {
	TrackerID int64  `json:"tracker_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TextColor string `json:"text_color,omitempty"`
}

func (r *CreateLabelRequest) Validate() (*Label, error) {
	label := &Label{
		TrackerID: r.TrackerID,
		Name:      r.Name,
		Color:     r.Color,
		TextColor: r.TextColor,
	}
	if err := label.Validate(); err != nil {
		return nil, err
	}
	if label.TextColor == "" {
		label.TextColor = ContrastingTextColor(label.Color)
	}
	return label, nil
}

type UpdateLabelRequest struct {
	LabelID   int64   `json:"label_id"`
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	TextColor *string `json:"text_color,omitempty"`
}

func (r *UpdateLabelRequest) Validate() error {
	if r.LabelID == 0 {
		return NewFieldValidationError("label_id", "is required")
	}
	if r.Name != nil && (*r.Name == "" || len(*r.Name) > 50) {
		return NewFieldValidationError("name", "length must be between 1 and 50")
	}
	if r.Color != nil && !labelColorRegexp.MatchString(*r.Color) {
		return NewFieldValidationError("color", "must be a #RRGGBB hex color")
	}
	if r.TextColor != nil && *r.TextColor != "" && !labelColorRegexp.MatchString(*r.TextColor) {
		return NewFieldValidationError("text_color", "must be a #RRGGBB hex color")
	}
	return nil
}

type DeleteLabelRequest struct {
	LabelID int64 `json:"label_id"`
}

func (r *DeleteLabelRequest) Validate() error {
	if r.LabelID == 0 {
		return NewFieldValidationError("label_id", "is required")
	}
	return nil
}

type LabelRepository interface {
	Create(ctx context.Context, label *Label) error

	GetByID(ctx context.Context, id int64) (*Label, error)

	GetByName(ctx context.Context, trackerID int64, name string) (*Label, error)

	ListByTracker(ctx context.Context, trackerID int64) ([]*Label, error)

	Update(ctx context.Context, label *Label) error

	// Delete removes the label, its ticket associations and its label
	// events.
	Delete(ctx context.Context, id int64) error

	// AddToTicketTx associates label and ticket. Returns false when the
	// association already existed.
	AddToTicketTx(ctx context.Context, tx *sql.Tx, ticketID, labelID, userID int64) (bool, error)

	// RemoveFromTicketTx drops the association. Returns false when it
	// did not exist.
	RemoveFromTicketTx(ctx context.Context, tx *sql.Tx, ticketID, labelID int64) (bool, error)

	ListForTicket(ctx context.Context, ticketID int64) ([]*Label, error)
}

// LabelService provides operations for managing tracker labels
type LabelService interface {
	Create(ctx context.Context, actor *User, req *CreateLabelRequest) (*Label, error)

	List(ctx context.Context, viewer *User, tracker *Tracker) ([]*Label, error)

	Update(ctx context.Context, actor *User, req *UpdateLabelRequest) (*Label, error)

	Delete(ctx context.Context, actor *User, labelID int64) error
}

// ErrLabelNotFound is returned when a label is not found
type ErrLabelNotFound struct {
	Message string
}

func (e *ErrLabelNotFound) Error() string {
	return e.Message
}
