package domain

//go:generate mockgen -destination mocks/mock_webhook_repository.go -package mocks github.com/tracknest/tracknest/internal/domain WebhookRepository
//go:generate mockgen -destination mocks/mock_webhook_service.go -package mocks github.com/tracknest/tracknest/internal/domain WebhookService
//go:generate mockgen -destination mocks/mock_broker_notifier.go -package mocks github.com/tracknest/tracknest/internal/domain BrokerNotifier

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// WebhookScope is where a subscription listens: a user's whole account,
// one tracker, or one ticket.
type WebhookScope string

const (
	WebhookScopeUser    WebhookScope = "user"
	WebhookScopeTracker WebhookScope = "tracker"
	WebhookScopeTicket  WebhookScope = "ticket"
)

// Webhook event enums per scope
const (
	WebhookTrackerCreated = "tracker:create"
	WebhookTrackerUpdated = "tracker:update"
	WebhookTrackerDeleted = "tracker:delete"
	WebhookTicketCreated  = "ticket:create"
	WebhookTicketUpdated  = "ticket:update"
	WebhookTicketDeleted  = "ticket:delete"
	WebhookEventCreated   = "event:create"
	WebhookLabelCreated   = "label:create"
	WebhookLabelUpdated   = "label:update"
	WebhookLabelDeleted   = "label:delete"
)

var webhookEventsByScope = map[WebhookScope][]string{
	WebhookScopeUser: {
		WebhookTrackerCreated, WebhookTrackerUpdated, WebhookTrackerDeleted,
		WebhookTicketCreated,
	},
	WebhookScopeTracker: {
		WebhookTrackerUpdated, WebhookTrackerDeleted,
		WebhookTicketCreated, WebhookTicketUpdated, WebhookTicketDeleted,
		WebhookLabelCreated, WebhookLabelUpdated, WebhookLabelDeleted,
		WebhookEventCreated,
	},
	WebhookScopeTicket: {
		WebhookTicketUpdated, WebhookTicketDeleted, WebhookEventCreated,
	},
}

// ValidWebhookEvents returns the event enums a scope may subscribe to.
func ValidWebhookEvents(scope WebhookScope) []string {
	return webhookEventsByScope[scope]
}

// WebhookSubscription registers a URL for event payloads at one scope.
// Exactly one of UserID / TrackerID / TicketID matches the scope.
type WebhookSubscription struct {
	ID        int64        `json:"id"`
	Scope     WebhookScope `json:"scope"`
	UserID    *int64       `json:"user_id,omitempty"`
	TrackerID *int64       `json:"tracker_id,omitempty"`
	TicketID  *int64       `json:"ticket_id,omitempty"`
	URL       string       `json:"url"`
	Events    []string     `json:"events"`
	CreatedAt time.Time    `json:"created_at"`
}

// Validate performs validation on the subscription fields
func (s *WebhookSubscription) Validate() error {
	if !govalidator.IsURL(s.URL) {
		return NewFieldValidationError("url", "must be a valid URL")
	}
	if len(s.Events) == 0 {
		return NewFieldValidationError("events", "at least one event is required")
	}
	valid := ValidWebhookEvents(s.Scope)
	if valid == nil {
		return NewFieldValidationError("scope", "unknown scope "+string(s.Scope))
	}
	for _, event := range s.Events {
		found := false
		for _, v := range valid {
			if v == event {
				found = true
				break
			}
		}
		if !found {
			return NewFieldValidationError("events", "event "+event+" is not valid at scope "+string(s.Scope))
		}
	}

	var set int
	for _, id := range []*int64{s.UserID, s.TrackerID, s.TicketID} {
		if id != nil {
			set++
		}
	}
	if set != 1 {
		return NewValidationError("subscription needs exactly one scope reference")
	}
	return nil
}

// ScanWebhookSubscription scans a subscription row from the database
func ScanWebhookSubscription(scanner interface {
	Scan(dest ...interface{}) error
}) (*WebhookSubscription, error) {
	var s WebhookSubscription
	var userID, trackerID, ticketID sql.NullInt64
	var events []byte
	if err := scanner.Scan(
		&s.ID,
		&s.Scope,
		&userID,
		&trackerID,
		&ticketID,
		&s.URL,
		&events,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.UserID = nullableID(userID)
	s.TrackerID = nullableID(trackerID)
	s.TicketID = nullableID(ticketID)
	s.Events = splitEvents(events)
	return &s, nil
}

func splitEvents(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var events []string
	for _, e := range strings.Split(string(raw), ",") {
		if e = strings.TrimSpace(e); e != "" {
			events = append(events, e)
		}
	}
	return events
}

// Webhook delivery statuses
const (
	WebhookDeliveryPending   = "pending"
	WebhookDeliveryDelivered = "delivered"
	WebhookDeliveryFailed    = "failed"
)

// WebhookDelivery is one queued payload. Dispatch signs and enqueues,
// the delivery worker drains the queue. The target URL is copied from
// the subscription at enqueue time so in-flight deliveries survive the
// subscription being deleted.
type WebhookDelivery struct {
	ID             string    `json:"id"`
	SubscriptionID int64     `json:"subscription_id"`
	Event          string    `json:"event"`
	URL            string    `json:"url"`
	Payload        []byte    `json:"payload"`
	Signature      string    `json:"signature"`
	Status         string    `json:"status"`
	Attempts       int       `json:"attempts"`
	NextAttemptAt  time.Time `json:"next_attempt_at"`
	LastError      *string   `json:"last_error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateWebhookRequest struct {
	Scope     string   `json:"scope"`
	TrackerID int64    `json:"tracker_id,omitempty"`
	ScopedID  int64    `json:"scoped_id,omitempty"`
	URL       string   `json:"url"`
	Events    []string `json:"events"`
}

func (r *CreateWebhookRequest) Validate() error {
	switch WebhookScope(r.Scope) {
	case WebhookScopeUser:
	case WebhookScopeTracker, WebhookScopeTicket:
		if r.TrackerID == 0 {
			return NewFieldValidationError("tracker_id", "is required")
		}
		if WebhookScope(r.Scope) == WebhookScopeTicket && r.ScopedID == 0 {
			return NewFieldValidationError("scoped_id", "is required")
		}
	default:
		return NewFieldValidationError("scope", "unknown scope "+r.Scope)
	}
	if !govalidator.IsURL(r.URL) {
		return NewFieldValidationError("url", "must be a valid URL")
	}
	if len(r.Events) == 0 {
		return NewFieldValidationError("events", "at least one event is required")
	}
	return nil
}

type DeleteWebhookRequest struct {
	WebhookID int64 `json:"webhook_id"`
}

func (r *DeleteWebhookRequest) Validate() error {
	if r.WebhookID == 0 {
		return NewFieldValidationError("webhook_id", "is required")
	}
	return nil
}

type WebhookRepository interface {
	Create(ctx context.Context, sub *WebhookSubscription) error

	GetByID(ctx context.Context, id int64) (*WebhookSubscription, error)

	// ListForEvent returns the subscriptions listening for an event
	// across the three scopes touching the given references. Zero ids
	// skip their scope.
	ListForEvent(ctx context.Context, event string, userID, trackerID, ticketID int64) ([]*WebhookSubscription, error)

	ListByScope(ctx context.Context, scope WebhookScope, scopeID int64) ([]*WebhookSubscription, error)

	Delete(ctx context.Context, id int64) error

	// Enqueue stores a signed delivery for the delivery worker.
	Enqueue(ctx context.Context, delivery *WebhookDelivery) error

	// NextDeliveries claims up to limit pending deliveries that are due.
	// Claimed rows are skipped by concurrent workers.
	NextDeliveries(ctx context.Context, limit int) ([]*WebhookDelivery, error)

	MarkDelivered(ctx context.Context, deliveryID string) error

	// ScheduleRetry keeps the delivery pending and pushes its next
	// attempt to nextAttempt.
	ScheduleRetry(ctx context.Context, deliveryID string, attempts int, nextAttempt time.Time, lastError string) error

	// MarkFailed retires a delivery after its final attempt.
	MarkFailed(ctx context.Context, deliveryID string, attempts int, lastError string) error

	// CleanupDeliveries deletes finished deliveries created before the
	// cutoff and returns how many were removed.
	CleanupDeliveries(ctx context.Context, olderThan time.Time) (int64, error)
}

// WebhookService manages subscriptions and dispatches signed payloads.
type WebhookService interface {
	Create(ctx context.Context, viewer *User, req *CreateWebhookRequest) (*WebhookSubscription, error)

	List(ctx context.Context, viewer *User, scope WebhookScope, trackerID, ticketID int64) ([]*WebhookSubscription, error)

	Delete(ctx context.Context, viewer *User, webhookID int64) error

	// Dispatch signs and enqueues payload for every matching
	// subscription. Failures are logged, never returned to the caller's
	// request path.
	Dispatch(ctx context.Context, event string, userID, trackerID, ticketID int64, payload interface{})
}

// BrokerNotifier wakes the external delivery worker after deliveries
// were enqueued. Nudging is best effort, a missed nudge only delays
// delivery until the worker's next poll.
type BrokerNotifier interface {
	Nudge(ctx context.Context)
}

// ErrWebhookNotFound is returned when a webhook subscription is not found
type ErrWebhookNotFound struct {
	Message string
}

func (e *ErrWebhookNotFound) Error() string {
	return e.Message
}
