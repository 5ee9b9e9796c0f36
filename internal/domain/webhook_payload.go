package domain

import (
	"strings"
	"time"
)

// Webhook payload shapes. These mirror the representations delivered to
// subscriber URLs, kept apart from the internal models so storage
// changes do not leak into the delivered contract.

type UserWebhookPayload struct {
	Name          string `json:"name"`
	CanonicalName string `json:"canonical_name"`
}

// ParticipantWebhookPayload is the tagged union form of an actor. Which
// fields are set depends on Type.
type ParticipantWebhookPayload struct {
	Type string `json:"type"`

	// user
	Name          string `json:"name,omitempty"`
	CanonicalName string `json:"canonical_name,omitempty"`

	// email
	Address string `json:"address,omitempty"`

	// external
	ExternalID  string `json:"external_id,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

func NewParticipantPayload(p *Participant) *ParticipantWebhookPayload {
	if p == nil {
		return nil
	}
	switch p.Type {
	case ParticipantTypeUser:
		return &ParticipantWebhookPayload{
			Type:          "user",
			Name:          p.Username,
			CanonicalName: "~" + p.Username,
		}
	case ParticipantTypeEmail:
		return &ParticipantWebhookPayload{
			Type:    "email",
			Address: p.Email,
			Name:    p.EmailName,
		}
	case ParticipantTypeExternal:
		return &ParticipantWebhookPayload{
			Type:        "external",
			ExternalID:  p.ExternalID,
			ExternalURL: p.ExternalURL,
		}
	}
	return nil
}

type TrackerWebhookPayload struct {
	ID            int64     `json:"id"`
	Created       time.Time `json:"created"`
	Updated       time.Time `json:"updated"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Visibility    string    `json:"visibility,omitempty"`
	DefaultAccess []string  `json:"default_access,omitempty"`

	Owner UserWebhookPayload `json:"owner"`
}

func NewTrackerPayload(tracker *Tracker) *TrackerWebhookPayload {
	return &TrackerWebhookPayload{
		ID:            tracker.ID,
		Created:       tracker.CreatedAt,
		Updated:       tracker.UpdatedAt,
		Name:          tracker.Name,
		Description:   tracker.Description,
		Visibility:    strings.ToLower(string(tracker.Visibility)),
		DefaultAccess: tracker.DefaultAccess.Names(),
		Owner: UserWebhookPayload{
			Name:          tracker.OwnerName,
			CanonicalName: "~" + tracker.OwnerName,
		},
	}
}

// trackerStub carries identity only, for embedding under tickets and
// events.
func trackerStub(tracker *Tracker) *TrackerWebhookPayload {
	return &TrackerWebhookPayload{
		ID:      tracker.ID,
		Created: tracker.CreatedAt,
		Updated: tracker.UpdatedAt,
		Name:    tracker.Name,
		Owner: UserWebhookPayload{
			Name:          tracker.OwnerName,
			CanonicalName: "~" + tracker.OwnerName,
		},
	}
}

type TicketWebhookPayload struct {
	ID          int64     `json:"id"`
	Ref         string    `json:"ref"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Resolution  string    `json:"resolution"`

	Submitter *ParticipantWebhookPayload `json:"submitter,omitempty"`
	Tracker   *TrackerWebhookPayload     `json:"tracker"`

	Labels    []string                     `json:"labels"`
	Assignees []*ParticipantWebhookPayload `json:"assignees"`
}

// NewTicketPayload builds the full ticket representation. ID is the
// tracker-local ticket number.
func NewTicketPayload(tracker *Tracker, ticket *Ticket, submitter *Participant, labels []*Label, assignees []*User) *TicketWebhookPayload {
	labelNames := []string{}
	for _, label := range labels {
		labelNames = append(labelNames, label.Name)
	}
	assigned := []*ParticipantWebhookPayload{}
	for _, user := range assignees {
		assigned = append(assigned, &ParticipantWebhookPayload{
			Type:          "user",
			Name:          user.Username,
			CanonicalName: user.CanonicalName(),
		})
	}
	return &TicketWebhookPayload{
		ID:          ticket.ScopedID,
		Ref:         ticket.Ref(),
		Created:     ticket.CreatedAt,
		Updated:     ticket.UpdatedAt,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status.String(),
		Resolution:  ticket.Resolution.String(),
		Submitter:   NewParticipantPayload(submitter),
		Tracker:     trackerStub(tracker),
		Labels:      labelNames,
		Assignees:   assigned,
	}
}

func ticketStub(tracker *Tracker, ticket *Ticket) *TicketWebhookPayload {
	return &TicketWebhookPayload{
		ID:      ticket.ScopedID,
		Ref:     ticket.Ref(),
		Title:   ticket.Title,
		Tracker: trackerStub(tracker),
	}
}

type LabelWebhookPayload struct {
	Name    string    `json:"name"`
	Created time.Time `json:"created"`

	Colors struct {
		Background string `json:"background"`
		Text       string `json:"text"`
	} `json:"colors"`

	Tracker struct {
		ID      int64     `json:"id"`
		Created time.Time `json:"created"`
		Updated time.Time `json:"updated"`
		Name    string    `json:"name"`

		Owner struct {
			CanonicalName string `json:"canonical_name"`
			Name          string `json:"name"`
		} `json:"owner"`
	} `json:"tracker"`
}

func NewLabelPayload(tracker *Tracker, label *Label) *LabelWebhookPayload {
	payload := &LabelWebhookPayload{
		Name:    label.Name,
		Created: label.CreatedAt,
	}
	payload.Colors.Background = label.Color
	payload.Colors.Text = label.TextColor
	payload.Tracker.ID = tracker.ID
	payload.Tracker.Created = tracker.CreatedAt
	payload.Tracker.Updated = tracker.UpdatedAt
	payload.Tracker.Name = tracker.Name
	payload.Tracker.Owner.CanonicalName = "~" + tracker.OwnerName
	payload.Tracker.Owner.Name = tracker.OwnerName
	return payload
}

type CommentWebhookPayload struct {
	ID      int64     `json:"id"`
	Created time.Time `json:"created"`
	Text    string    `json:"text"`
}

type EventWebhookPayload struct {
	ID            int64     `json:"id"`
	Created       time.Time `json:"created"`
	EventType     []string  `json:"event_type"`
	OldStatus     *string   `json:"old_status"`
	OldResolution *string   `json:"old_resolution"`
	NewStatus     *string   `json:"new_status"`
	NewResolution *string   `json:"new_resolution"`

	User       *ParticipantWebhookPayload `json:"user"`
	Ticket     *TicketWebhookPayload      `json:"ticket"`
	Comment    *CommentWebhookPayload     `json:"comment"`
	Label      *LabelWebhookPayload       `json:"label"`
	ByUser     *ParticipantWebhookPayload `json:"by_user"`
	FromTicket *TicketWebhookPayload      `json:"from_ticket"`
}

// NewEventPayload builds the event representation. Loaded relations
// travel along: participant, by-participant, comment and label.
func NewEventPayload(tracker *Tracker, ticket *Ticket, event *Event) *EventWebhookPayload {
	payload := &EventWebhookPayload{
		ID:        event.ID,
		Created:   event.CreatedAt,
		EventType: event.EventType.Names(),

		OldStatus:     statusName(event.OldStatus),
		OldResolution: resolutionName(event.OldResolution),
		NewStatus:     statusName(event.NewStatus),
		NewResolution: resolutionName(event.NewResolution),

		User:   NewParticipantPayload(event.Participant),
		Ticket: ticketStub(tracker, ticket),
		ByUser: NewParticipantPayload(event.ByParticipant),
	}
	if event.Comment != nil {
		payload.Comment = &CommentWebhookPayload{
			ID:      event.Comment.ID,
			Created: event.Comment.CreatedAt,
			Text:    event.Comment.Text,
		}
	}
	if event.Label != nil {
		payload.Label = NewLabelPayload(tracker, event.Label)
	}
	return payload
}

func statusName(s *TicketStatus) *string {
	if s == nil {
		return nil
	}
	name := s.String()
	return &name
}

func resolutionName(r *TicketResolution) *string {
	if r == nil {
		return nil
	}
	name := r.String()
	return &name
}

// WebhookDeletedPayload notifies a deletion with the bare id.
type WebhookDeletedPayload struct {
	ID int64 `json:"id"`
}
