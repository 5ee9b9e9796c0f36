package domain

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"time"
)

//go:generate mockgen -destination mocks/mock_tracker_repository.go -package mocks github.com/tracknest/tracknest/internal/domain TrackerRepository
//go:generate mockgen -destination mocks/mock_tracker_service.go -package mocks github.com/tracknest/tracknest/internal/domain TrackerService

type Visibility string

const (
	VisibilityPublic   Visibility = "PUBLIC"
	VisibilityUnlisted Visibility = "UNLISTED"
	VisibilityPrivate  Visibility = "PRIVATE"
)

func (v Visibility) Validate() error {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return nil
	}
	return NewFieldValidationError("visibility", fmt.Sprintf("unknown visibility %q", v))
}

var trackerNameRegexp = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// DefaultTrackerAccess is what anonymous and unprivileged viewers get on
// a fresh tracker.
const DefaultTrackerAccess = AccessBrowse | AccessSubmit | AccessComment

// Tracker is a named collection of tickets owned by one user.
type Tracker struct {
	ID            int64        `json:"id"`
	OwnerID       int64        `json:"-"`
	OwnerName     string       `json:"owner"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Visibility    Visibility   `json:"visibility"`
	DefaultAccess TicketAccess `json:"default_access"`

	// NextTicketID backs scoped id allocation and only ever grows.
	NextTicketID int64 `json:"-"`

	// ImportInProgress gates dump imports and suppresses webhooks while
	// set.
	ImportInProgress bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ref returns the canonical ~owner/name form.
func (t *Tracker) Ref() string {
	return fmt.Sprintf("~%s/%s", t.OwnerName, t.Name)
}

// ValidateTrackerName rejects names that would collide with path
// navigation or repository internals when used in URLs.
func ValidateTrackerName(name string) error {
	if name == "" {
		return NewFieldValidationError("name", "is required")
	}
	if len(name) > 255 {
		return NewFieldValidationError("name", "length must be between 1 and 255")
	}
	if !trackerNameRegexp.MatchString(name) {
		return NewFieldValidationError("name", "may only contain letters, digits, dots, dashes and underscores")
	}
	switch name {
	case ".", "..", ".git", ".hg":
		return NewFieldValidationError("name", fmt.Sprintf("%q is a reserved name", name))
	}
	return nil
}

// Validate performs validation on the tracker fields
func (t *Tracker) Validate() error {
	if t.OwnerID == 0 {
		return NewFieldValidationError("owner", "is required")
	}
	if err := ValidateTrackerName(t.Name); err != nil {
		return err
	}
	if len(t.Description) > 8192 {
		return NewFieldValidationError("description", "length must be at most 8192")
	}
	return t.Visibility.Validate()
}

// ScanTracker scans a tracker row (joined with users for the owner name)
// from the database.
func ScanTracker(scanner interface {
	Scan(dest ...interface{}) error
}) (*Tracker, error) {
	var t Tracker
	var access int
	if err := scanner.Scan(
		&t.ID,
		&t.OwnerID,
		&t.OwnerName,
		&t.Name,
		&t.Description,
		&t.Visibility,
		&access,
		&t.NextTicketID,
		&t.ImportInProgress,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.DefaultAccess = TicketAccess(access)
	return &t, nil
}

// Request/Response types
type CreateTrackerRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Visibility    string   `json:"visibility,omitempty"`
	DefaultAccess []string `json:"default_access,omitempty"`
}

func (r *CreateTrackerRequest) Validate() (*Tracker, error) {
	if err := ValidateTrackerName(r.Name); err != nil {
		return nil, err
	}

	visibility := VisibilityPublic
	if r.Visibility != "" {
		visibility = Visibility(r.Visibility)
		if err := visibility.Validate(); err != nil {
			return nil, err
		}
	}

	access := DefaultTrackerAccess
	if r.DefaultAccess != nil {
		parsed, err := ParseAccess(r.DefaultAccess)
		if err != nil {
			return nil, err
		}
		access = parsed
	}

	if len(r.Description) > 8192 {
		return nil, NewFieldValidationError("description", "length must be at most 8192")
	}

	return &Tracker{
		Name:          r.Name,
		Description:   r.Description,
		Visibility:    visibility,
		DefaultAccess: access,
	}, nil
}

type GetTrackerRequest struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r *GetTrackerRequest) FromURLParams(queryParams url.Values) (err error) {
	r.Owner = trimUserPrefix(queryParams.Get("owner"))
	r.Name = queryParams.Get("name")

	if r.Owner == "" {
		return NewFieldValidationError("owner", "is required")
	}
	if r.Name == "" {
		return NewFieldValidationError("name", "is required")
	}
	return nil
}

type ListTrackersRequest struct {
	Owner  string `json:"owner"`
	Cursor string `json:"cursor"`
	Count  int    `json:"count"`
}

func (r *ListTrackersRequest) FromURLParams(queryParams url.Values) (err error) {
	r.Owner = trimUserPrefix(queryParams.Get("owner"))
	r.Cursor = queryParams.Get("cursor")
	r.Count = parseCount(queryParams.Get("count"))

	if r.Owner == "" {
		return NewFieldValidationError("owner", "is required")
	}
	return nil
}

type UpdateTrackerRequest struct {
	TrackerID     int64    `json:"tracker_id"`
	Description   *string  `json:"description,omitempty"`
	Visibility    *string  `json:"visibility,omitempty"`
	DefaultAccess []string `json:"default_access,omitempty"`
}

func (r *UpdateTrackerRequest) Validate() error {
	if r.TrackerID == 0 {
		return NewFieldValidationError("tracker_id", "is required")
	}
	if r.Description != nil && len(*r.Description) > 8192 {
		return NewFieldValidationError("description", "length must be at most 8192")
	}
	if r.Visibility != nil {
		if err := Visibility(*r.Visibility).Validate(); err != nil {
			return err
		}
	}
	if r.DefaultAccess != nil {
		if _, err := ParseAccess(r.DefaultAccess); err != nil {
			return err
		}
	}
	return nil
}

type DeleteTrackerRequest struct {
	TrackerID int64 `json:"tracker_id"`
}

func (r *DeleteTrackerRequest) Validate() error {
	if r.TrackerID == 0 {
		return NewFieldValidationError("tracker_id", "is required")
	}
	return nil
}

type TrackerRepository interface {
	Create(ctx context.Context, tracker *Tracker) error

	GetByID(ctx context.Context, id int64) (*Tracker, error)

	// GetByName resolves owner username + tracker name.
	GetByName(ctx context.Context, owner, name string) (*Tracker, error)

	// ListByOwner pages through an owner's trackers by id. Visibilities
	// filters when non-empty.
	ListByOwner(ctx context.Context, ownerID int64, visibilities []Visibility, cursor *Cursor) ([]*Tracker, *Cursor, error)

	Update(ctx context.Context, tracker *Tracker) error

	// SetImportInProgress flips the import gate.
	SetImportInProgress(ctx context.Context, trackerID int64, inProgress bool) error

	// TouchUpdated bumps the updated timestamp outside of ticket writes.
	TouchUpdated(ctx context.Context, trackerID int64) error

	Delete(ctx context.Context, id int64) error
}

// TrackerService provides operations for managing trackers
type TrackerService interface {
	Create(ctx context.Context, owner *User, req *CreateTrackerRequest) (*Tracker, error)

	// Get resolves ~owner/name for a viewer. Trackers the viewer cannot
	// browse surface as not found.
	Get(ctx context.Context, viewer *User, owner, name string) (*Tracker, error)

	// List returns the trackers of one owner the viewer may see.
	List(ctx context.Context, viewer *User, owner string, cursor *Cursor) ([]*Tracker, *Cursor, error)

	Update(ctx context.Context, actor *User, req *UpdateTrackerRequest) (*Tracker, error)

	Delete(ctx context.Context, actor *User, trackerID int64) error
}

// ErrTrackerNotFound is returned when a tracker is not found
type ErrTrackerNotFound struct {
	Message string
}

func (e *ErrTrackerNotFound) Error() string {
	return e.Message
}
