package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/osteele/liquid"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
	"github.com/tracknest/tracknest/pkg/mailer"
)

// Notification bodies are plain text. The `-- ` line is the signature
// separator and keeps its trailing space.
const (
	newTicketTemplate = `{{ body }}

-- 
View on the web: {{ ticket_url }}`

	statusTemplate = `{% if resolved %}Ticket resolved: {{ resolution }}{% endif %}
-- 
View on the web: {{ ticket_url }}#event-{{ event_id }}`

	commentTemplate = `{% if resolved %}Ticket resolved: {{ resolution }}

{% endif %}{% if reopened %}Ticket re-opened: {{ status }}

{% endif %}{{ comment }}

-- 
View on the web: {{ ticket_url }}#event-{{ event_id }}`

	assignmentTemplate = `{% if assigned %}{{ assigner }} assigned this ticket to {{ assignee }}{% else %}{{ assigner }} unassigned {{ assignee }} from this ticket{% endif %}

-- 
View on the web: {{ ticket_url }}#event-{{ event_id }}`

	mentionTemplate = `You were mentioned in {{ ticket_ref }} by {{ actor }}.

-- 
View on the web: {{ ticket_url }}`
)

// NotificationService turns ticket events into queued mail. It only
// composes; the external transport drains the queue.
type NotificationService struct {
	composer      *mailer.Composer
	mailQueue     domain.MailQueueRepository
	userRepo      domain.UserRepository
	engine        *liquid.Engine
	origin        string
	postingDomain string
	logger        logger.Logger
}

func NewNotificationService(
	composer *mailer.Composer,
	mailQueue domain.MailQueueRepository,
	userRepo domain.UserRepository,
	origin string,
	postingDomain string,
	logger logger.Logger,
) *NotificationService {
	return &NotificationService{
		composer:      composer,
		mailQueue:     mailQueue,
		userRepo:      userRepo,
		engine:        liquid.NewEngine(),
		origin:        origin,
		postingDomain: postingDomain,
		logger:        logger,
	}
}

// SendEventMail composes the event's notification and enqueues one copy
// per reachable recipient. Recipients without an address (external
// participants) are skipped, duplicate addresses get a single copy.
func (s *NotificationService) SendEventMail(ctx context.Context, m *domain.EventMail) error {
	body, err := s.renderEventBody(m)
	if err != nil {
		return err
	}
	if body == "" {
		return nil
	}

	env := s.envelope(m)
	return s.fanOut(ctx, env, body, m.Recipients)
}

// SendMentionMail notifies one mentioned participant. Mentions always
// reply into the ticket's thread, the first message of which is the
// submission notification.
func (s *NotificationService) SendMentionMail(ctx context.Context, m *domain.EventMail, mentioned *domain.Participant) error {
	actor := ""
	if m.Actor != nil {
		actor = m.Actor.Name()
	}
	body, err := s.render(mentionTemplate, liquid.Bindings{
		"ticket_ref": m.Ticket.Ref(),
		"actor":      actor,
		"ticket_url": m.Ticket.URL(s.origin),
	})
	if err != nil {
		return err
	}

	env := s.envelope(m)
	env.Subject = "Re: " + fmt.Sprintf("%s: %s", m.Ticket.Ref(), m.Ticket.Title)
	env.MessageID = ""
	env.InReplyTo = m.Ticket.EmailRef() + "@" + s.postingDomain

	return s.fanOut(ctx, env, body, []*domain.Participant{mentioned})
}

// renderEventBody picks and renders the template for the event's type
// bits. Label events produce no mail.
func (s *NotificationService) renderEventBody(m *domain.EventMail) (string, error) {
	t := m.Event.EventType
	status := m.Ticket.Status
	if m.Event.NewStatus != nil {
		status = *m.Event.NewStatus
	}
	resolution := m.Ticket.Resolution
	if m.Event.NewResolution != nil {
		resolution = *m.Event.NewResolution
	}

	switch {
	case t.Has(domain.EventCreated):
		return s.render(newTicketTemplate, liquid.Bindings{
			"body":       m.Ticket.Description,
			"ticket_url": m.Ticket.URL(s.origin),
		})

	case t.Has(domain.EventComment):
		resolved := t.Has(domain.EventStatusChange) && status == domain.StatusResolved
		reopened := t.Has(domain.EventStatusChange) && status != domain.StatusResolved
		comment := ""
		if m.Comment != nil {
			comment = m.Comment.Text
		}
		return s.render(commentTemplate, liquid.Bindings{
			"resolved":   resolved,
			"reopened":   reopened,
			"status":     status.String(),
			"resolution": resolution.String(),
			"comment":    comment,
			"ticket_url": m.Ticket.URL(s.origin),
			"event_id":   m.Event.ID,
		})

	case t.Has(domain.EventStatusChange):
		return s.render(statusTemplate, liquid.Bindings{
			"resolved":   status == domain.StatusResolved,
			"resolution": resolution.String(),
			"ticket_url": m.Ticket.URL(s.origin),
			"event_id":   m.Event.ID,
		})

	case t.Has(domain.EventAssignedUser), t.Has(domain.EventUnassignedUser):
		assigner, assignee := "", ""
		if m.Event.ByParticipant != nil {
			assigner = m.Event.ByParticipant.Name()
		}
		if m.Event.Participant != nil {
			assignee = m.Event.Participant.Name()
		}
		return s.render(assignmentTemplate, liquid.Bindings{
			"assigned":   t.Has(domain.EventAssignedUser),
			"assigner":   assigner,
			"assignee":   assignee,
			"ticket_url": m.Ticket.URL(s.origin),
			"event_id":   m.Event.ID,
		})
	}

	return "", nil
}

func (s *NotificationService) render(template string, bindings liquid.Bindings) (string, error) {
	rendered, err := s.engine.ParseAndRenderString(template, bindings)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to render notification template: %v", err))
		return "", fmt.Errorf("failed to render notification template: %w", err)
	}
	return rendered, nil
}

// envelope builds the common addressing for the event's thread. The
// submission notification claims the thread's Message-ID, every later
// message replies to it.
func (s *NotificationService) envelope(m *domain.EventMail) *mailer.Envelope {
	fromName := ""
	if m.Actor != nil {
		fromName = m.Actor.Name()
	}
	threadID := m.Ticket.EmailRef() + "@" + s.postingDomain

	env := &mailer.Envelope{
		FromName:        fromName,
		Subject:         fmt.Sprintf("%s: %s", m.Ticket.Ref(), m.Ticket.Title),
		ReplyToName:     m.Ticket.Ref(),
		ReplyToAddr:     threadID,
		ListUnsubscribe: m.Ticket.EmailRef() + "/unsubscribe@" + s.postingDomain,
	}
	if m.Event.EventType.Has(domain.EventCreated) {
		env.MessageID = threadID
	} else {
		env.Subject = "Re: " + env.Subject
		env.InReplyTo = threadID
	}
	return env
}

// fanOut composes and enqueues one message per reachable recipient.
// Per-recipient failures are logged and skipped, they must not starve
// the remaining recipients.
func (s *NotificationService) fanOut(ctx context.Context, env *mailer.Envelope, body string, recipients []*domain.Participant) error {
	seen := make(map[string]bool, len(recipients))
	for _, recipient := range recipients {
		address, err := s.addressOf(ctx, recipient)
		if err != nil {
			s.logger.WithField("participant_id", recipient.ID).Error(fmt.Sprintf("Failed to resolve recipient address: %v", err))
			continue
		}
		if address == "" || seen[address] {
			continue
		}
		seen[address] = true

		env.To = address
		raw, err := s.composer.Compose(env, body)
		if err != nil {
			s.logger.WithField("recipient", address).Error(fmt.Sprintf("Failed to compose notification: %v", err))
			continue
		}

		message := &domain.MailMessage{
			ID:        uuid.New().String(),
			Sender:    s.composer.Sender(),
			Recipient: address,
			Raw:       raw,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.mailQueue.Enqueue(ctx, message); err != nil {
			s.logger.WithField("recipient", address).Error(fmt.Sprintf("Failed to enqueue notification: %v", err))
		}
	}
	return nil
}

// addressOf resolves a participant to a deliverable address. External
// participants have none.
func (s *NotificationService) addressOf(ctx context.Context, p *domain.Participant) (string, error) {
	switch p.Type {
	case domain.ParticipantTypeUser:
		user, err := s.userRepo.GetByID(ctx, p.UserID)
		if err != nil {
			return "", fmt.Errorf("failed to get user %d: %w", p.UserID, err)
		}
		return user.Email, nil
	case domain.ParticipantTypeEmail:
		return p.Email, nil
	}
	return "", nil
}
