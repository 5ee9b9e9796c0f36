package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_ticket_repository.go -package mocks github.com/tracknest/tracknest/internal/domain TicketRepository
//go:generate mockgen -destination mocks/mock_ticket_service.go -package mocks github.com/tracknest/tracknest/internal/domain TicketService

// TicketStatus values persist as integers, names travel through the API
// and the search DSL.
type TicketStatus int

const (
	StatusReported   TicketStatus = 0
	StatusConfirmed  TicketStatus = 1
	StatusInProgress TicketStatus = 2
	StatusPending    TicketStatus = 4
	StatusResolved   TicketStatus = 8
)

func (s TicketStatus) String() string {
	switch s {
	case StatusReported:
		return "reported"
	case StatusConfirmed:
		return "confirmed"
	case StatusInProgress:
		return "in_progress"
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

func ParseTicketStatus(name string) (TicketStatus, error) {
	switch strings.ToLower(name) {
	case "reported":
		return StatusReported, nil
	case "confirmed":
		return StatusConfirmed, nil
	case "in_progress":
		return StatusInProgress, nil
	case "pending":
		return StatusPending, nil
	case "resolved":
		return StatusResolved, nil
	}
	return StatusReported, fmt.Errorf("unknown status %q", name)
}

// MarshalJSON encodes the status as its name.
func (s TicketStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TicketStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseTicketStatus(name)
	if err != nil {
		return NewFieldValidationError("status", err.Error())
	}
	*s = parsed
	return nil
}

type TicketResolution int

const (
	ResolutionUnresolved  TicketResolution = 0
	ResolutionFixed       TicketResolution = 1
	ResolutionImplemented TicketResolution = 2
	ResolutionWontFix     TicketResolution = 4
	ResolutionByDesign    TicketResolution = 8
	ResolutionInvalid     TicketResolution = 16
	ResolutionDuplicate   TicketResolution = 32
	ResolutionNotOurBug   TicketResolution = 64
	ResolutionClosed      TicketResolution = 128
)

func (r TicketResolution) String() string {
	switch r {
	case ResolutionUnresolved:
		return "unresolved"
	case ResolutionFixed:
		return "fixed"
	case ResolutionImplemented:
		return "implemented"
	case ResolutionWontFix:
		return "wont_fix"
	case ResolutionByDesign:
		return "by_design"
	case ResolutionInvalid:
		return "invalid"
	case ResolutionDuplicate:
		return "duplicate"
	case ResolutionNotOurBug:
		return "not_our_bug"
	case ResolutionClosed:
		return "closed"
	}
	return fmt.Sprintf("unknown(%d)", int(r))
}

func ParseTicketResolution(name string) (TicketResolution, error) {
	switch strings.ToLower(name) {
	case "unresolved":
		return ResolutionUnresolved, nil
	case "fixed":
		return ResolutionFixed, nil
	case "implemented":
		return ResolutionImplemented, nil
	case "wont_fix":
		return ResolutionWontFix, nil
	case "by_design":
		return ResolutionByDesign, nil
	case "invalid":
		return ResolutionInvalid, nil
	case "duplicate":
		return ResolutionDuplicate, nil
	case "not_our_bug":
		return ResolutionNotOurBug, nil
	case "closed":
		return ResolutionClosed, nil
	}
	return ResolutionUnresolved, fmt.Errorf("unknown resolution %q", name)
}

// MarshalJSON encodes the resolution as its name.
func (r TicketResolution) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *TicketResolution) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseTicketResolution(name)
	if err != nil {
		return NewFieldValidationError("resolution", err.Error())
	}
	*r = parsed
	return nil
}

// Authenticity records how much a ticket or comment body can be trusted.
// Imported records with a valid signature stay authentic, records that
// fail verification are tampered, unsigned ones unauthenticated. A
// comment rewritten in place by someone other than its author becomes
// edited_by_other.
type Authenticity int

const (
	AuthenticityAuthentic       Authenticity = 0
	AuthenticityUnauthenticated Authenticity = 1
	AuthenticityTampered        Authenticity = 2
	AuthenticityEditedByOther   Authenticity = 3
)

func (a Authenticity) String() string {
	switch a {
	case AuthenticityAuthentic:
		return "authentic"
	case AuthenticityUnauthenticated:
		return "unauthenticated"
	case AuthenticityTampered:
		return "tampered"
	case AuthenticityEditedByOther:
		return "edited_by_other"
	}
	return fmt.Sprintf("unknown(%d)", int(a))
}

const (
	TicketTitleMinLen = 3
	TicketTitleMaxLen = 2048
	TicketBodyMaxLen  = 16384
)

// Ticket is one issue in a tracker. ScopedID is the tracker-local
// number users see, ID the global row id.
type Ticket struct {
	ID        int64 `json:"id"`
	TrackerID int64 `json:"tracker_id"`
	ScopedID  int64 `json:"scoped_id"`

	// Joined for refs and mail
	TrackerName string `json:"tracker,omitempty"`
	OwnerName   string `json:"owner,omitempty"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	SubmitterID int64        `json:"-"`
	Submitter   *Participant `json:"submitter,omitempty"`

	Status       TicketStatus     `json:"status"`
	Resolution   TicketResolution `json:"resolution"`
	CommentCount int              `json:"comment_count"`
	Authenticity Authenticity     `json:"authenticity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ref returns the canonical ~owner/tracker#id form.
func (t *Ticket) Ref() string {
	return fmt.Sprintf("~%s/%s#%d", t.OwnerName, t.TrackerName, t.ScopedID)
}

// EmailRef returns the mail routing form ~owner/tracker/id.
func (t *Ticket) EmailRef() string {
	return fmt.Sprintf("~%s/%s/%d", t.OwnerName, t.TrackerName, t.ScopedID)
}

// URL returns the web location of the ticket under origin.
func (t *Ticket) URL(origin string) string {
	return fmt.Sprintf("%s/~%s/%s/%d", origin, t.OwnerName, t.TrackerName, t.ScopedID)
}

// Validate performs validation on the ticket fields
func (t *Ticket) Validate() error {
	if t.TrackerID == 0 {
		return NewFieldValidationError("tracker_id", "is required")
	}
	if len(t.Title) < TicketTitleMinLen || len(t.Title) > TicketTitleMaxLen {
		return NewFieldValidationError("title",
			fmt.Sprintf("length must be between %d and %d", TicketTitleMinLen, TicketTitleMaxLen))
	}
	if len(t.Description) > TicketBodyMaxLen {
		return NewFieldValidationError("description",
			fmt.Sprintf("length must be at most %d", TicketBodyMaxLen))
	}
	return nil
}

// ScanTicket scans a ticket row (joined with trackers and users for the
// ref fields) from the database.
func ScanTicket(scanner interface {
	Scan(dest ...interface{}) error
}) (*Ticket, error) {
	var t Ticket
	var status, resolution, authenticity int
	if err := scanner.Scan(
		&t.ID,
		&t.TrackerID,
		&t.ScopedID,
		&t.TrackerName,
		&t.OwnerName,
		&t.Title,
		&t.Description,
		&t.SubmitterID,
		&status,
		&resolution,
		&t.CommentCount,
		&authenticity,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Status = TicketStatus(status)
	t.Resolution = TicketResolution(resolution)
	t.Authenticity = Authenticity(authenticity)
	return &t, nil
}

// SubmitTicketRequest opens a new ticket. Created, ExternalID and
// ExternalURL are import-style fields only the tracker owner may set.
type SubmitTicketRequest struct {
	TrackerID   int64      `json:"tracker_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
	ExternalID  string     `json:"external_id,omitempty"`
	ExternalURL string     `json:"external_url,omitempty"`

	// FromEmail marks submissions arriving through the mail gateway. The
	// actor gets a copy of the notification regardless of their self
	// notification preference.
	FromEmail bool `json:"-"`
}

func (r *SubmitTicketRequest) Validate() error {
	if r.TrackerID == 0 {
		return NewFieldValidationError("tracker_id", "is required")
	}
	if len(r.Title) < TicketTitleMinLen || len(r.Title) > TicketTitleMaxLen {
		return NewFieldValidationError("title",
			fmt.Sprintf("length must be between %d and %d", TicketTitleMinLen, TicketTitleMaxLen))
	}
	if len(r.Description) > TicketBodyMaxLen {
		return NewFieldValidationError("description",
			fmt.Sprintf("length must be at most %d", TicketBodyMaxLen))
	}
	if r.ExternalID != "" && !strings.Contains(r.ExternalID, ":") {
		return NewFieldValidationError("external_id", "must have the form <host>:<name>")
	}
	if r.ExternalURL != "" && r.ExternalID == "" {
		return NewFieldValidationError("external_url", "requires external_id")
	}
	return nil
}

// TicketUpdate is the single lifecycle payload: optionally comment,
// optionally change state, in one step. Created, ExternalID and
// ExternalURL are import-style fields only the tracker owner may set;
// ExternalID swaps the acting participant for an external identity.
type TicketUpdate struct {
	Text        string     `json:"text,omitempty"`
	Resolve     bool       `json:"resolve,omitempty"`
	Resolution  string     `json:"resolution,omitempty"`
	Reopen      bool       `json:"reopen,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
	ExternalID  string     `json:"external_id,omitempty"`
	ExternalURL string     `json:"external_url,omitempty"`

	// FromEmail marks updates arriving through the mail gateway. The
	// actor gets a copy of the notification regardless of their self
	// notification preference.
	FromEmail bool `json:"-"`
}

// Validate checks the payload preconditions and returns the parsed
// resolution when resolving.
func (u *TicketUpdate) Validate() (TicketResolution, error) {
	if u.Text == "" && !u.Resolve && !u.Reopen {
		return ResolutionUnresolved, NewValidationError("nothing to do: provide text, resolve or reopen")
	}
	if u.Resolve && u.Reopen {
		return ResolutionUnresolved, NewValidationError("cannot resolve and reopen in the same update")
	}
	if u.Resolve && u.Resolution == "" {
		return ResolutionUnresolved, NewFieldValidationError("resolution", "is required when resolving")
	}
	if !u.Resolve && u.Resolution != "" {
		return ResolutionUnresolved, NewFieldValidationError("resolution", "is only valid when resolving")
	}
	if u.Text != "" && (len(u.Text) < TicketTitleMinLen || len(u.Text) > TicketBodyMaxLen) {
		return ResolutionUnresolved, NewFieldValidationError("text",
			fmt.Sprintf("length must be between %d and %d", TicketTitleMinLen, TicketBodyMaxLen))
	}
	if u.ExternalID != "" && !strings.Contains(u.ExternalID, ":") {
		return ResolutionUnresolved, NewFieldValidationError("external_id", "must have the form <host>:<name>")
	}
	if u.ExternalURL != "" && u.ExternalID == "" {
		return ResolutionUnresolved, NewFieldValidationError("external_url", "requires external_id")
	}

	resolution := ResolutionUnresolved
	if u.Resolve {
		parsed, err := ParseTicketResolution(u.Resolution)
		if err != nil {
			return ResolutionUnresolved, NewFieldValidationError("resolution", err.Error())
		}
		resolution = parsed
	}
	return resolution, nil
}

// UpdateTicketRequest edits ticket fields. Labels, when non-nil,
// replaces the whole label set; the diff is evented per label.
type UpdateTicketRequest struct {
	TrackerID   int64     `json:"tracker_id"`
	ScopedID    int64     `json:"scoped_id"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Labels      *[]string `json:"labels,omitempty"`
}

func (r *UpdateTicketRequest) Validate() error {
	if r.TrackerID == 0 {
		return NewFieldValidationError("tracker_id", "is required")
	}
	if r.ScopedID == 0 {
		return NewFieldValidationError("scoped_id", "is required")
	}
	if r.Title != nil && (len(*r.Title) < TicketTitleMinLen || len(*r.Title) > TicketTitleMaxLen) {
		return NewFieldValidationError("title",
			fmt.Sprintf("length must be between %d and %d", TicketTitleMinLen, TicketTitleMaxLen))
	}
	if r.Description != nil && len(*r.Description) > TicketBodyMaxLen {
		return NewFieldValidationError("description",
			fmt.Sprintf("length must be at most %d", TicketBodyMaxLen))
	}
	return nil
}

type GetTicketRequest struct {
	Owner    string `json:"owner"`
	Tracker  string `json:"tracker"`
	ScopedID int64  `json:"scoped_id"`
}

func (r *GetTicketRequest) FromURLParams(queryParams url.Values) (err error) {
	r.Owner = trimUserPrefix(queryParams.Get("owner"))
	r.Tracker = queryParams.Get("tracker")
	r.ScopedID = int64(parseCount(queryParams.Get("id")))

	if r.Owner == "" {
		return NewFieldValidationError("owner", "is required")
	}
	if r.Tracker == "" {
		return NewFieldValidationError("tracker", "is required")
	}
	if r.ScopedID <= 0 {
		return NewFieldValidationError("id", "is required")
	}
	return nil
}

// SearchTerm is one parsed search DSL term, normalized by the search
// service before it reaches the repository.
type SearchTerm struct {
	Key     string `json:"key,omitempty"`
	Value   string `json:"value"`
	Inverse bool   `json:"inverse,omitempty"`
}

// TicketSearchQuery is the repository-level search input.
type TicketSearchQuery struct {
	TrackerID int64
	Terms     []SearchTerm

	// OrderBy is the validated sort column, empty means updated.
	OrderBy string
	Asc     bool
}

type TicketRepository interface {
	// WithTransaction runs fn in a transaction, committing on nil.
	WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error

	// InsertTx creates the ticket, allocating the next scoped id under
	// the tracker row lock. The ticket is returned with ID, ScopedID
	// and timestamps set.
	InsertTx(ctx context.Context, tx *sql.Tx, ticket *Ticket) error

	// InsertImportedTx creates the ticket keeping its pre-set ScopedID
	// and timestamps, and raises the tracker's next ticket counter past
	// it.
	InsertImportedTx(ctx context.Context, tx *sql.Tx, ticket *Ticket) error

	GetByID(ctx context.Context, id int64) (*Ticket, error)

	// GetByScopedID resolves a tracker-local ticket number.
	GetByScopedID(ctx context.Context, trackerID, scopedID int64) (*Ticket, error)

	// List pages a tracker's tickets by scoped id descending.
	List(ctx context.Context, trackerID int64, cursor *Cursor) ([]*Ticket, *Cursor, error)

	// ListAll returns every ticket of a tracker by scoped id ascending.
	ListAll(ctx context.Context, trackerID int64) ([]*Ticket, error)

	// Search pages tickets matching the normalized query, newest
	// activity first unless the query orders otherwise.
	Search(ctx context.Context, q *TicketSearchQuery, cursor *Cursor) ([]*Ticket, *Cursor, error)

	Update(ctx context.Context, ticket *Ticket) error

	// UpdateStatusTx writes status and resolution.
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, ticketID int64, status TicketStatus, resolution TicketResolution) error

	// AdjustCommentCountTx shifts comment_count by delta.
	AdjustCommentCountTx(ctx context.Context, tx *sql.Tx, ticketID int64, delta int) error

	// TouchTx bumps ticket and tracker updated timestamps.
	TouchTx(ctx context.Context, tx *sql.Tx, ticketID int64) error

	Delete(ctx context.Context, id int64) error
}

// TicketService is the ticket lifecycle engine.
type TicketService interface {
	// Submit opens a ticket. The actor becomes its submitter and is
	// subscribed to it.
	Submit(ctx context.Context, viewer *User, actor *Participant, tracker *Tracker, req *SubmitTicketRequest) (*Ticket, error)

	// Apply executes one lifecycle step: comment and/or status change.
	// A payload producing neither returns (nil, nil) and writes
	// nothing. The returned event is the comment/status event.
	Apply(ctx context.Context, viewer *User, actor *Participant, tracker *Tracker, ticket *Ticket, update *TicketUpdate) (*Event, error)

	// EditComment replaces a comment's text non-destructively. The old
	// revision stays reachable through the supersession chain.
	EditComment(ctx context.Context, editor *User, tracker *Tracker, ticket *Ticket, commentID int64, text string) (*TicketComment, error)

	// Assign and Unassign manage the assignee set, idempotently.
	Assign(ctx context.Context, viewer *User, tracker *Tracker, ticket *Ticket, assignee *User) error
	Unassign(ctx context.Context, viewer *User, tracker *Tracker, ticket *Ticket, assignee *User) error

	// AddLabel and RemoveLabel manage the label set, idempotently.
	AddLabel(ctx context.Context, viewer *User, tracker *Tracker, ticket *Ticket, label *Label) error
	RemoveLabel(ctx context.Context, viewer *User, tracker *Tracker, ticket *Ticket, label *Label) error

	// Update edits title, description and the label set.
	Update(ctx context.Context, viewer *User, tracker *Tracker, ticket *Ticket, req *UpdateTicketRequest) (*Ticket, error)

	Get(ctx context.Context, viewer *User, tracker *Tracker, scopedID int64) (*Ticket, error)

	List(ctx context.Context, viewer *User, tracker *Tracker, cursor *Cursor) ([]*Ticket, *Cursor, error)

	Delete(ctx context.Context, viewer *User, tracker *Tracker, ticket *Ticket) error

	// Events pages the ticket's event log, oldest first.
	Events(ctx context.Context, viewer *User, tracker *Tracker, ticket *Ticket, cursor *Cursor) ([]*Event, *Cursor, error)
}

// ErrTicketNotFound is returned when a ticket is not found
type ErrTicketNotFound struct {
	Message string
}

func (e *ErrTicketNotFound) Error() string {
	return e.Message
}
