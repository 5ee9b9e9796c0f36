package domain

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -destination mocks/mock_export_service.go -package mocks github.com/tracknest/tracknest/internal/domain ExportService
//go:generate mockgen -destination mocks/mock_import_service.go -package mocks github.com/tracknest/tracknest/internal/domain ImportService

// Dump types round-trip a tracker through the gzipped JSON archive format.
// Field order in the signed payload structs is load bearing: encoding/json
// emits keys in declaration order, and signatures are computed over the
// serialized bytes.

// SignedTicketPayload is the canonical subset of a ticket covered by its
// detached signature. Only tickets submitted by local users are signed.
type SignedTicketPayload struct {
	TrackerID   int64  `json:"tracker_id"`
	TicketID    int    `json:"ticket_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	SubmitterID int64  `json:"submitter_id"`
	Upstream    string `json:"upstream"`
}

// SignedCommentPayload is the canonical subset of a comment event covered by
// its detached signature.
type SignedCommentPayload struct {
	TrackerID int64  `json:"tracker_id"`
	TicketID  int    `json:"ticket_id"`
	Comment   string `json:"comment"`
	AuthorID  int64  `json:"author_id"`
	Upstream  string `json:"upstream"`
}

type ParticipantDump struct {
	Type ParticipantType `json:"type"`

	// user
	UserID        int64  `json:"user_id,omitempty"`
	CanonicalName string `json:"canonical_name,omitempty"`

	// user and email
	Name string `json:"name,omitempty"`

	// email
	Address string `json:"address,omitempty"`

	// external
	ExternalID  string `json:"external_id,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

// DumpParticipant flattens a participant for the archive.
func DumpParticipant(p *Participant) *ParticipantDump {
	if p == nil {
		return nil
	}
	d := &ParticipantDump{Type: p.Type}
	switch p.Type {
	case ParticipantTypeUser:
		d.UserID = p.UserID
		d.CanonicalName = p.Name()
		d.Name = p.Username
	case ParticipantTypeEmail:
		d.Address = p.Email
		d.Name = p.EmailName
	case ParticipantTypeExternal:
		d.ExternalID = p.ExternalID
		d.ExternalURL = p.ExternalURL
	}
	return d
}

type LabelDump struct {
	Name            string    `json:"name"`
	Created         time.Time `json:"created"`
	BackgroundColor string    `json:"background_color"`
	TextColor       string    `json:"text_color"`
}

type EventDump struct {
	ID      int64     `json:"id"`
	Created time.Time `json:"created"`
	Types   EventType `json:"event_type"`

	OldStatus     *TicketStatus     `json:"old_status,omitempty"`
	NewStatus     *TicketStatus     `json:"new_status,omitempty"`
	OldResolution *TicketResolution `json:"old_resolution,omitempty"`
	NewResolution *TicketResolution `json:"new_resolution,omitempty"`

	Participant   *ParticipantDump `json:"participant,omitempty"`
	ByParticipant *ParticipantDump `json:"by_participant,omitempty"`
	Comment       *CommentDump     `json:"comment,omitempty"`
	Label         string           `json:"label,omitempty"`
	FromTicketRef string           `json:"from_ticket,omitempty"`

	Upstream  string `json:"upstream,omitempty"`
	Signature string `json:"X-Payload-Signature,omitempty"`
	Nonce     string `json:"X-Payload-Nonce,omitempty"`
}

type CommentDump struct {
	ID           int64            `json:"id"`
	Created      time.Time        `json:"created"`
	Submitter    *ParticipantDump `json:"submitter"`
	Text         string           `json:"text"`
	Authenticity string           `json:"authenticity"`
}

type TicketDump struct {
	ID           int              `json:"id"`
	Created      time.Time        `json:"created"`
	Updated      time.Time        `json:"updated"`
	Submitter    *ParticipantDump `json:"submitter"`
	Ref          string           `json:"ref"`
	Subject      string           `json:"subject"`
	Body         string           `json:"body"`
	Status       TicketStatus     `json:"status"`
	Resolution   TicketResolution `json:"resolution"`
	Labels       []string         `json:"labels"`
	Assignees    []string         `json:"assignees"`
	CommentCount int              `json:"comment_count"`

	Upstream  string `json:"upstream,omitempty"`
	Signature string `json:"X-Payload-Signature,omitempty"`
	Nonce     string `json:"X-Payload-Nonce,omitempty"`

	Events []*EventDump `json:"events,omitempty"`
}

type TrackerDump struct {
	// ID is the tracker id on the exporting instance. Signed payloads
	// embed it, so verification after import needs the original value.
	ID          int64         `json:"id"`
	Owner       string        `json:"owner"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Labels      []*LabelDump  `json:"labels"`
	Tickets     []*TicketDump `json:"tickets"`

	// Digest is a blake2b content address over the serialized tickets
	// array, computed at export time and re-derivable by importers.
	Digest string `json:"digest"`
}

type ExportService interface {
	// Export writes the gzipped archive of a tracker to w.
	Export(ctx context.Context, tracker *Tracker, w io.Writer) error
}

type ImportService interface {
	// Import replays an archive read from r into a tracker previously
	// flagged import_in_progress. Per-ticket failures are logged and
	// skipped; the flag is cleared even when the import aborts.
	Import(ctx context.Context, tracker *Tracker, r io.Reader) error
}
