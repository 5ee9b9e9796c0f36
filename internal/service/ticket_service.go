package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
	"github.com/tracknest/tracknest/pkg/mentions"
	"github.com/tracknest/tracknest/pkg/tracing"
)

// errNoOpUpdate aborts a lifecycle transaction that would write nothing.
// Callers translate it into a silent no-op.
var errNoOpUpdate = errors.New("no-op update")

// TicketService is the lifecycle engine: every ticket write runs through
// it, producing the event row, the feed notifications, the mail fan-out
// and the webhook dispatch that belong to the write.
type TicketService struct {
	repo             domain.TicketRepository
	trackerRepo      domain.TrackerRepository
	commentRepo      domain.CommentRepository
	eventRepo        domain.EventRepository
	labelRepo        domain.LabelRepository
	assignmentRepo   domain.AssignmentRepository
	subscriptionRepo domain.SubscriptionRepository
	participantRepo  domain.ParticipantRepository
	participants     domain.ParticipantService
	userRepo         domain.UserRepository
	accessService    domain.AccessService
	notifications    domain.NotificationService
	webhookService   domain.WebhookService
	scanner          *mentions.Scanner
	tracer           tracing.Tracer
	logger           logger.Logger
}

// TicketServiceConfig wires the lifecycle engine's collaborators.
type TicketServiceConfig struct {
	Repository       domain.TicketRepository
	TrackerRepo      domain.TrackerRepository
	CommentRepo      domain.CommentRepository
	EventRepo        domain.EventRepository
	LabelRepo        domain.LabelRepository
	AssignmentRepo   domain.AssignmentRepository
	SubscriptionRepo domain.SubscriptionRepository
	ParticipantRepo  domain.ParticipantRepository
	Participants     domain.ParticipantService
	UserRepo         domain.UserRepository
	AccessService    domain.AccessService
	Notifications    domain.NotificationService
	WebhookService   domain.WebhookService
	Scanner          *mentions.Scanner
	Tracer           tracing.Tracer
	Logger           logger.Logger
}

func NewTicketService(cfg TicketServiceConfig) *TicketService {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.GetTracer()
	}

	return &TicketService{
		repo:             cfg.Repository,
		trackerRepo:      cfg.TrackerRepo,
		commentRepo:      cfg.CommentRepo,
		eventRepo:        cfg.EventRepo,
		labelRepo:        cfg.LabelRepo,
		assignmentRepo:   cfg.AssignmentRepo,
		subscriptionRepo: cfg.SubscriptionRepo,
		participantRepo:  cfg.ParticipantRepo,
		participants:     cfg.Participants,
		userRepo:         cfg.UserRepo,
		accessService:    cfg.AccessService,
		notifications:    cfg.Notifications,
		webhookService:   cfg.WebhookService,
		scanner:          cfg.Scanner,
		tracer:           tracer,
		logger:           cfg.Logger,
	}
}

// Submit opens a ticket. The actor becomes its submitter unless the
// request names an external identity, which only the tracker owner may
// do. The submitter is subscribed to the ticket and the submission is
// mailed to the tracker's subscribers.
func (s *TicketService) Submit(ctx context.Context, viewer *domain.User, actor *domain.Participant, tracker *domain.Tracker, req *domain.SubmitTicketRequest) (*domain.Ticket, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TicketService", "Submit")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ticket: %w", err)
	}

	access, err := s.accessService.ForTracker(ctx, viewer, tracker)
	if err != nil {
		return nil, err
	}
	if !access.Has(domain.AccessSubmit) {
		return nil, domain.ErrAccessDenied
	}
	if (req.Created != nil || req.ExternalID != "") && (viewer == nil || viewer.ID != tracker.OwnerID) {
		return nil, domain.ErrAccessDenied
	}

	submitter := actor
	if req.ExternalID != "" {
		submitter, err = s.participants.ForExternal(ctx, req.ExternalID, req.ExternalURL)
		if err != nil {
			return nil, err
		}
	}

	ticket := &domain.Ticket{
		TrackerID:   tracker.ID,
		TrackerName: tracker.Name,
		OwnerName:   tracker.OwnerName,
		Title:       req.Title,
		Description: req.Description,
		SubmitterID: submitter.ID,
		Submitter:   submitter,
		Status:      domain.StatusReported,
		Resolution:  domain.ResolutionUnresolved,
	}
	if req.Created != nil {
		ticket.CreatedAt = req.Created.UTC()
	}

	var event *domain.Event
	var mentioned []*domain.Participant
	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, ticket); err != nil {
			return err
		}

		event = &domain.Event{
			EventType:     domain.EventCreated,
			ParticipantID: &submitter.ID,
			TicketID:      &ticket.ID,
			Participant:   submitter,
		}
		if err := s.eventRepo.InsertTx(ctx, tx, event); err != nil {
			return err
		}

		if err := s.subscribeTx(ctx, tx, submitter, tracker.ID, ticket.ID); err != nil {
			return err
		}
		if err := s.notifyFeedTx(ctx, tx, event.ID, tracker.ID, ticket.ID, submitter); err != nil {
			return err
		}

		mentioned, err = s.mentionsTx(ctx, tx, submitter, tracker, ticket, req.Description, nil)
		return err
	})
	if err != nil {
		if _, ok := err.(*domain.ErrTrackerNotFound); ok {
			return nil, err
		}
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to submit ticket: %v", err))
		return nil, fmt.Errorf("failed to submit ticket: %w", err)
	}

	mail := &domain.EventMail{
		Tracker:    tracker,
		Ticket:     ticket,
		Event:      event,
		Actor:      submitter,
		Recipients: s.mailRecipients(ctx, viewer, submitter, tracker.ID, ticket.ID, req.FromEmail),
		FromEmail:  req.FromEmail,
	}
	if err := s.notifications.SendEventMail(ctx, mail); err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to send ticket notifications: %v", err))
	}
	s.sendMentionMails(ctx, viewer, mail, mentioned)

	if !tracker.ImportInProgress {
		payload := domain.NewTicketPayload(tracker, ticket, submitter, nil, nil)
		s.webhookService.Dispatch(ctx, domain.WebhookTicketCreated, tracker.OwnerID, tracker.ID, 0, payload)
	}

	return ticket, nil
}

// Apply executes one lifecycle step: comment and/or status change, in a
// single transaction. A payload producing neither, for example resolving
// an already-resolved ticket with the same resolution, writes nothing
// and returns (nil, nil).
func (s *TicketService) Apply(ctx context.Context, viewer *domain.User, actor *domain.Participant, tracker *domain.Tracker, ticket *domain.Ticket, update *domain.TicketUpdate) (*domain.Event, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TicketService", "Apply")
	defer span.End()

	resolution, err := update.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid ticket update: %w", err)
	}

	access, err := s.accessService.ForTicket(ctx, viewer, tracker, ticket)
	if err != nil {
		return nil, err
	}
	if update.Text != "" && !access.Has(domain.AccessComment) {
		return nil, domain.ErrAccessDenied
	}
	if (update.Resolve || update.Reopen) && !access.Has(domain.AccessTriage) && !access.Has(domain.AccessEdit) {
		return nil, domain.ErrAccessDenied
	}
	if (update.Created != nil || update.ExternalID != "") && (viewer == nil || viewer.ID != tracker.OwnerID) {
		return nil, domain.ErrAccessDenied
	}

	if update.ExternalID != "" {
		actor, err = s.participants.ForExternal(ctx, update.ExternalID, update.ExternalURL)
		if err != nil {
			return nil, err
		}
	}

	oldStatus, oldResolution := ticket.Status, ticket.Resolution
	newStatus, newResolution := oldStatus, oldResolution
	if update.Resolve {
		newStatus, newResolution = domain.StatusResolved, resolution
	}
	if update.Reopen {
		// The resolution is retained for the record of why it was
		// closed last time.
		newStatus = domain.StatusReported
	}
	statusChanged := newStatus != oldStatus || newResolution != oldResolution

	var eventType domain.EventType
	if update.Text != "" {
		eventType |= domain.EventComment
	}
	if statusChanged {
		eventType |= domain.EventStatusChange
	}
	if eventType == 0 {
		return nil, nil
	}

	var event *domain.Event
	var comment *domain.TicketComment
	var mentioned []*domain.Participant
	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		if update.Text != "" {
			comment = &domain.TicketComment{
				TicketID:     ticket.ID,
				SubmitterID:  actor.ID,
				Text:         update.Text,
				Authenticity: domain.AuthenticityAuthentic,
			}
			if update.Created != nil {
				comment.CreatedAt = update.Created.UTC()
			}
			if err := s.commentRepo.InsertTx(ctx, tx, comment); err != nil {
				return err
			}
			if err := s.repo.AdjustCommentCountTx(ctx, tx, ticket.ID, 1); err != nil {
				return err
			}
		}

		if statusChanged {
			if err := s.repo.UpdateStatusTx(ctx, tx, ticket.ID, newStatus, newResolution); err != nil {
				return err
			}
		}

		event = &domain.Event{
			EventType:     eventType,
			ParticipantID: &actor.ID,
			TicketID:      &ticket.ID,
			Participant:   actor,
		}
		if update.Created != nil {
			event.CreatedAt = update.Created.UTC()
		}
		if comment != nil {
			event.CommentID = &comment.ID
			event.Comment = comment
		}
		if statusChanged {
			os, or, ns, nr := oldStatus, oldResolution, newStatus, newResolution
			event.OldStatus, event.OldResolution = &os, &or
			event.NewStatus, event.NewResolution = &ns, &nr
		}
		if err := s.eventRepo.InsertTx(ctx, tx, event); err != nil {
			return err
		}

		if err := s.repo.TouchTx(ctx, tx, ticket.ID); err != nil {
			return err
		}
		if err := s.subscribeTx(ctx, tx, actor, tracker.ID, ticket.ID); err != nil {
			return err
		}
		if err := s.notifyFeedTx(ctx, tx, event.ID, tracker.ID, ticket.ID, actor); err != nil {
			return err
		}

		if update.Text != "" {
			mentioned, err = s.mentionsTx(ctx, tx, actor, tracker, ticket, update.Text, &comment.ID)
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to apply ticket update: %v", err))
		return nil, fmt.Errorf("failed to apply ticket update: %w", err)
	}

	ticket.Status, ticket.Resolution = newStatus, newResolution
	if comment != nil {
		ticket.CommentCount++
	}

	mail := &domain.EventMail{
		Tracker:    tracker,
		Ticket:     ticket,
		Event:      event,
		Actor:      actor,
		Comment:    comment,
		Recipients: s.mailRecipients(ctx, viewer, actor, tracker.ID, ticket.ID, update.FromEmail),
		FromEmail:  update.FromEmail,
	}
	if err := s.notifications.SendEventMail(ctx, mail); err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to send event notifications: %v", err))
	}
	s.sendMentionMails(ctx, viewer, mail, mentioned)

	s.dispatchEvent(ctx, tracker, ticket, event)
	return event, nil
}

// EditComment replaces a comment's text non-destructively: the new
// revision keeps the original author and timestamp, the old row points
// at it through the supersession chain, and the event that carried the
// comment is repointed. An edit by anyone but the author marks the
// revision edited_by_other.
func (s *TicketService) EditComment(ctx context.Context, editor *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, commentID int64, text string) (*domain.TicketComment, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TicketService", "EditComment")
	defer span.End()

	if len(text) < domain.TicketTitleMinLen || len(text) > domain.TicketBodyMaxLen {
		return nil, domain.NewFieldValidationError("text",
			fmt.Sprintf("length must be between %d and %d", domain.TicketTitleMinLen, domain.TicketBodyMaxLen))
	}
	if editor == nil {
		return nil, domain.ErrAccessDenied
	}

	current, err := s.commentRepo.Resolve(ctx, commentID)
	if err != nil {
		if _, ok := err.(*domain.ErrCommentNotFound); ok {
			return nil, err
		}
		s.logger.WithField("comment_id", commentID).Error(fmt.Sprintf("Failed to resolve comment: %v", err))
		return nil, fmt.Errorf("failed to resolve comment: %w", err)
	}
	if current.TicketID != ticket.ID {
		return nil, &domain.ErrCommentNotFound{Message: "comment not found"}
	}

	editorParticipant, err := s.participants.ForUser(ctx, editor.ID)
	if err != nil {
		return nil, err
	}
	isAuthor := editorParticipant.ID == current.SubmitterID
	if !isAuthor {
		access, err := s.accessService.ForTicket(ctx, editor, tracker, ticket)
		if err != nil {
			return nil, err
		}
		if !access.Has(domain.AccessTriage) {
			return nil, domain.ErrAccessDenied
		}
	}

	authenticity := current.Authenticity
	if !isAuthor {
		authenticity = domain.AuthenticityEditedByOther
	}

	replacement := &domain.TicketComment{
		TicketID:     ticket.ID,
		SubmitterID:  current.SubmitterID,
		Text:         text,
		Authenticity: authenticity,
		CreatedAt:    current.CreatedAt,
	}
	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.commentRepo.InsertTx(ctx, tx, replacement); err != nil {
			return err
		}
		if err := s.commentRepo.SupersedeTx(ctx, tx, current.ID, replacement.ID); err != nil {
			return err
		}

		latest, err := s.eventRepo.GetLatestByCommentTx(ctx, tx, current.ID)
		if err != nil {
			if _, ok := err.(*domain.ErrEventNotFound); ok {
				return nil
			}
			return err
		}
		return s.eventRepo.RepointCommentTx(ctx, tx, latest.ID, replacement.ID)
	})
	if err != nil {
		s.logger.WithField("comment_id", commentID).Error(fmt.Sprintf("Failed to edit comment: %v", err))
		return nil, fmt.Errorf("failed to edit comment: %w", err)
	}

	return replacement, nil
}

// Assign adds a user to the ticket's assignee set and subscribes them.
// Assigning an already-assigned user is a complete no-op.
func (s *TicketService) Assign(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, assignee *domain.User) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TicketService", "Assign")
	defer span.End()

	if err := s.requireTriage(ctx, viewer, tracker, ticket); err != nil {
		return err
	}
	assigner, err := s.participants.ForUser(ctx, viewer.ID)
	if err != nil {
		return err
	}
	assigneeParticipant, err := s.participants.ForUser(ctx, assignee.ID)
	if err != nil {
		return err
	}

	var event *domain.Event
	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		added, err := s.assignmentRepo.AssignTx(ctx, tx, ticket.ID, assignee.ID, viewer.ID)
		if err != nil {
			return err
		}
		if !added {
			return errNoOpUpdate
		}

		event = &domain.Event{
			EventType:       domain.EventAssignedUser,
			ParticipantID:   &assigneeParticipant.ID,
			ByParticipantID: &assigner.ID,
			TicketID:        &ticket.ID,
			Participant:     assigneeParticipant,
			ByParticipant:   assigner,
		}
		if err := s.eventRepo.InsertTx(ctx, tx, event); err != nil {
			return err
		}
		if err := s.repo.TouchTx(ctx, tx, ticket.ID); err != nil {
			return err
		}
		if err := s.subscribeTx(ctx, tx, assigneeParticipant, tracker.ID, ticket.ID); err != nil {
			return err
		}
		return s.notifyFeedTx(ctx, tx, event.ID, tracker.ID, ticket.ID, assigner)
	})
	if errors.Is(err, errNoOpUpdate) {
		return nil
	}
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to assign user: %v", err))
		return fmt.Errorf("failed to assign user: %w", err)
	}

	mail := &domain.EventMail{
		Tracker:    tracker,
		Ticket:     ticket,
		Event:      event,
		Actor:      assigner,
		Recipients: s.mailRecipients(ctx, viewer, assigner, tracker.ID, ticket.ID, false),
	}
	if err := s.notifications.SendEventMail(ctx, mail); err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to send assignment notifications: %v", err))
	}

	s.dispatchEvent(ctx, tracker, ticket, event)
	return nil
}

// Unassign removes a user from the assignee set. Removing a user who is
// not assigned is a complete no-op.
func (s *TicketService) Unassign(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, assignee *domain.User) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TicketService", "Unassign")
	defer span.End()

	if err := s.requireTriage(ctx, viewer, tracker, ticket); err != nil {
		return err
	}
	assigner, err := s.participants.ForUser(ctx, viewer.ID)
	if err != nil {
		return err
	}
	assigneeParticipant, err := s.participants.ForUser(ctx, assignee.ID)
	if err != nil {
		return err
	}

	var event *domain.Event
	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		removed, err := s.assignmentRepo.UnassignTx(ctx, tx, ticket.ID, assignee.ID)
		if err != nil {
			return err
		}
		if !removed {
			return errNoOpUpdate
		}

		event = &domain.Event{
			EventType:       domain.EventUnassignedUser,
			ParticipantID:   &assigneeParticipant.ID,
			ByParticipantID: &assigner.ID,
			TicketID:        &ticket.ID,
			Participant:     assigneeParticipant,
			ByParticipant:   assigner,
		}
		if err := s.eventRepo.InsertTx(ctx, tx, event); err != nil {
			return err
		}
		if err := s.repo.TouchTx(ctx, tx, ticket.ID); err != nil {
			return err
		}
		return s.notifyFeedTx(ctx, tx, event.ID, tracker.ID, ticket.ID, assigner)
	})
	if errors.Is(err, errNoOpUpdate) {
		return nil
	}
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to unassign user: %v", err))
		return fmt.Errorf("failed to unassign user: %w", err)
	}

	mail := &domain.EventMail{
		Tracker:    tracker,
		Ticket:     ticket,
		Event:      event,
		Actor:      assigner,
		Recipients: s.mailRecipients(ctx, viewer, assigner, tracker.ID, ticket.ID, false),
	}
	if err := s.notifications.SendEventMail(ctx, mail); err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to send assignment notifications: %v", err))
	}

	s.dispatchEvent(ctx, tracker, ticket, event)
	return nil
}

// AddLabel attaches a label. Label events are recorded and dispatched to
// webhooks but never mailed.
func (s *TicketService) AddLabel(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, label *domain.Label) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TicketService", "AddLabel")
	defer span.End()

	if err := s.requireTriage(ctx, viewer, tracker, ticket); err != nil {
		return err
	}
	if label.TrackerID != ticket.TrackerID {
		return &domain.ErrLabelNotFound{Message: "label not found"}
	}
	actor, err := s.participants.ForUser(ctx, viewer.ID)
	if err != nil {
		return err
	}

	var event *domain.Event
	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		event, err = s.labelTx(ctx, tx, domain.EventLabelAdded, actor, ticket, label, viewer.ID)
		return err
	})
	if errors.Is(err, errNoOpUpdate) {
		return nil
	}
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to add label: %v", err))
		return fmt.Errorf("failed to add label: %w", err)
	}

	s.dispatchEvent(ctx, tracker, ticket, event)
	return nil
}

// RemoveLabel detaches a label, symmetric to AddLabel.
func (s *TicketService) RemoveLabel(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, label *domain.Label) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TicketService", "RemoveLabel")
	defer span.End()

	if err := s.requireTriage(ctx, viewer, tracker, ticket); err != nil {
		return err
	}
	if label.TrackerID != ticket.TrackerID {
		return &domain.ErrLabelNotFound{Message: "label not found"}
	}
	actor, err := s.participants.ForUser(ctx, viewer.ID)
	if err != nil {
		return err
	}

	var event *domain.Event
	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		event, err = s.labelTx(ctx, tx, domain.EventLabelRemoved, actor, ticket, label, viewer.ID)
		return err
	})
	if errors.Is(err, errNoOpUpdate) {
		return nil
	}
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to remove label: %v", err))
		return fmt.Errorf("failed to remove label: %w", err)
	}

	s.dispatchEvent(ctx, tracker, ticket, event)
	return nil
}

// Update edits title, description and, when Labels is non-nil, replaces
// the whole label set. Field edits produce no event and no mail, the
// label diff is evented per label.
func (s *TicketService) Update(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, req *domain.UpdateTicketRequest) (*domain.Ticket, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TicketService", "Update")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ticket update: %w", err)
	}

	access, err := s.accessService.ForTicket(ctx, viewer, tracker, ticket)
	if err != nil {
		return nil, err
	}
	if !access.Has(domain.AccessEdit) || viewer == nil {
		return nil, domain.ErrAccessDenied
	}

	if req.Title != nil {
		ticket.Title = *req.Title
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.Title != nil || req.Description != nil {
		if err := s.repo.Update(ctx, ticket); err != nil {
			if _, ok := err.(*domain.ErrTicketNotFound); ok {
				return nil, err
			}
			s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to update ticket: %v", err))
			return nil, fmt.Errorf("failed to update ticket: %w", err)
		}
	}

	var labels []*domain.Label
	if req.Labels != nil {
		labels, err = s.replaceLabels(ctx, viewer, tracker, ticket, *req.Labels)
		if err != nil {
			return nil, err
		}
	} else {
		labels, err = s.labelRepo.ListForTicket(ctx, ticket.ID)
		if err != nil {
			s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to list ticket labels: %v", err))
			return nil, fmt.Errorf("failed to list ticket labels: %w", err)
		}
	}

	assignees, err := s.assignmentRepo.ListForTicket(ctx, ticket.ID)
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to list assignees: %v", err))
		return nil, fmt.Errorf("failed to list assignees: %w", err)
	}

	submitter, err := s.submitterOf(ctx, ticket)
	if err != nil {
		return nil, err
	}
	payload := domain.NewTicketPayload(tracker, ticket, submitter, labels, assignees)
	s.webhookService.Dispatch(ctx, domain.WebhookTicketUpdated, 0, tracker.ID, ticket.ID, payload)

	return ticket, nil
}

// Get resolves a tracker-local ticket number for a viewer. Tickets the
// viewer cannot browse surface as not found.
func (s *TicketService) Get(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, scopedID int64) (*domain.Ticket, error) {
	ticket, err := s.repo.GetByScopedID(ctx, tracker.ID, scopedID)
	if err != nil {
		if _, ok := err.(*domain.ErrTicketNotFound); ok {
			return nil, err
		}
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to get ticket: %v", err))
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	access, err := s.accessService.ForTicket(ctx, viewer, tracker, ticket)
	if err != nil {
		return nil, err
	}
	if !access.Has(domain.AccessBrowse) {
		return nil, &domain.ErrTicketNotFound{Message: "ticket not found"}
	}
	return ticket, nil
}

// List pages a tracker's tickets, newest scoped id first.
func (s *TicketService) List(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, cursor *domain.Cursor) ([]*domain.Ticket, *domain.Cursor, error) {
	access, err := s.accessService.ForTracker(ctx, viewer, tracker)
	if err != nil {
		return nil, nil, err
	}
	if !access.Has(domain.AccessBrowse) {
		return nil, nil, &domain.ErrTrackerNotFound{Message: "tracker not found"}
	}

	tickets, next, err := s.repo.List(ctx, tracker.ID, cursor)
	if err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to list tickets: %v", err))
		return nil, nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, next, nil
}

// Delete removes a ticket and everything referencing it.
func (s *TicketService) Delete(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "TicketService", "Delete")
	defer span.End()

	access, err := s.accessService.ForTicket(ctx, viewer, tracker, ticket)
	if err != nil {
		return err
	}
	if !access.Has(domain.AccessEdit) || viewer == nil {
		return domain.ErrAccessDenied
	}

	// The deletion notice goes out first, afterwards the ticket-scope
	// subscriptions it would match are gone.
	s.webhookService.Dispatch(ctx, domain.WebhookTicketDeleted, 0, tracker.ID, ticket.ID,
		&domain.WebhookDeletedPayload{ID: ticket.ScopedID})

	if err := s.repo.Delete(ctx, ticket.ID); err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to delete ticket: %v", err))
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}

// Events pages the ticket's history, oldest first, with the acting
// participants loaded.
func (s *TicketService) Events(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, cursor *domain.Cursor) ([]*domain.Event, *domain.Cursor, error) {
	access, err := s.accessService.ForTicket(ctx, viewer, tracker, ticket)
	if err != nil {
		return nil, nil, err
	}
	if !access.Has(domain.AccessBrowse) {
		return nil, nil, &domain.ErrTicketNotFound{Message: "ticket not found"}
	}

	events, next, err := s.eventRepo.ListByTicket(ctx, ticket.ID, cursor)
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to list events: %v", err))
		return nil, nil, fmt.Errorf("failed to list events: %w", err)
	}
	if err := s.loadEventParticipants(ctx, events); err != nil {
		return nil, nil, err
	}
	return events, next, nil
}

// requireTriage gates the triage-only operations.
func (s *TicketService) requireTriage(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket) error {
	access, err := s.accessService.ForTicket(ctx, viewer, tracker, ticket)
	if err != nil {
		return err
	}
	if !access.Has(domain.AccessTriage) || viewer == nil {
		return domain.ErrAccessDenied
	}
	return nil
}

// subscribeTx subscribes the participant at ticket scope unless a
// tracker-scope subscription already covers them.
func (s *TicketService) subscribeTx(ctx context.Context, tx *sql.Tx, participant *domain.Participant, trackerID, ticketID int64) error {
	_, err := s.subscriptionRepo.GetForTracker(ctx, participant.ID, trackerID)
	if err == nil {
		return nil
	}
	if _, ok := err.(*domain.ErrSubscriptionNotFound); !ok {
		return err
	}
	_, err = s.subscriptionRepo.SubscribeTicketTx(ctx, tx, participant.ID, ticketID)
	return err
}

// notifyFeedTx adds the event to the notification feed of every
// user-variant subscriber and of the actor.
func (s *TicketService) notifyFeedTx(ctx context.Context, tx *sql.Tx, eventID int64, trackerID, ticketID int64, actor *domain.Participant) error {
	subscribers, err := s.subscriptionRepo.ListSubscribers(ctx, trackerID, ticketID)
	if err != nil {
		return err
	}

	seen := make(map[int64]bool, len(subscribers)+1)
	notify := func(p *domain.Participant) error {
		if p.Type != domain.ParticipantTypeUser || seen[p.UserID] {
			return nil
		}
		seen[p.UserID] = true
		return s.eventRepo.InsertNotificationTx(ctx, tx, eventID, p.UserID)
	}
	for _, p := range subscribers {
		if err := notify(p); err != nil {
			return err
		}
	}
	return notify(actor)
}

// labelTx records a label change: the association write, the event and
// the timestamp bump. Returns errNoOpUpdate when the association was
// already in the requested state.
func (s *TicketService) labelTx(ctx context.Context, tx *sql.Tx, eventType domain.EventType, actor *domain.Participant, ticket *domain.Ticket, label *domain.Label, userID int64) (*domain.Event, error) {
	var changed bool
	var err error
	if eventType == domain.EventLabelAdded {
		changed, err = s.labelRepo.AddToTicketTx(ctx, tx, ticket.ID, label.ID, userID)
	} else {
		changed, err = s.labelRepo.RemoveFromTicketTx(ctx, tx, ticket.ID, label.ID)
	}
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, errNoOpUpdate
	}

	event := &domain.Event{
		EventType:     eventType,
		ParticipantID: &actor.ID,
		TicketID:      &ticket.ID,
		LabelID:       &label.ID,
		Participant:   actor,
		Label:         label,
	}
	if err := s.eventRepo.InsertTx(ctx, tx, event); err != nil {
		return nil, err
	}
	if err := s.repo.TouchTx(ctx, tx, ticket.ID); err != nil {
		return nil, err
	}
	return event, nil
}

// replaceLabels diffs the requested set against the current one and
// events each attach and detach.
func (s *TicketService) replaceLabels(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket, names []string) ([]*domain.Label, error) {
	actor, err := s.participants.ForUser(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	desired := make([]*domain.Label, 0, len(names))
	desiredIDs := make(map[int64]bool, len(names))
	for _, name := range names {
		label, err := s.labelRepo.GetByName(ctx, tracker.ID, name)
		if err != nil {
			if _, ok := err.(*domain.ErrLabelNotFound); ok {
				return nil, domain.NewFieldValidationError("labels", fmt.Sprintf("unknown label %q", name))
			}
			s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to get label: %v", err))
			return nil, fmt.Errorf("failed to get label: %w", err)
		}
		if !desiredIDs[label.ID] {
			desiredIDs[label.ID] = true
			desired = append(desired, label)
		}
	}

	current, err := s.labelRepo.ListForTicket(ctx, ticket.ID)
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to list ticket labels: %v", err))
		return nil, fmt.Errorf("failed to list ticket labels: %w", err)
	}
	currentIDs := make(map[int64]bool, len(current))
	for _, label := range current {
		currentIDs[label.ID] = true
	}

	var events []*domain.Event
	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		changed := false
		for _, label := range desired {
			if currentIDs[label.ID] {
				continue
			}
			event, err := s.labelTx(ctx, tx, domain.EventLabelAdded, actor, ticket, label, viewer.ID)
			if err != nil {
				return err
			}
			events = append(events, event)
			changed = true
		}
		for _, label := range current {
			if desiredIDs[label.ID] {
				continue
			}
			event, err := s.labelTx(ctx, tx, domain.EventLabelRemoved, actor, ticket, label, viewer.ID)
			if err != nil {
				return err
			}
			events = append(events, event)
			changed = true
		}
		if !changed {
			return errNoOpUpdate
		}
		return nil
	})
	if errors.Is(err, errNoOpUpdate) {
		return desired, nil
	}
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to replace labels: %v", err))
		return nil, fmt.Errorf("failed to replace labels: %w", err)
	}

	for _, event := range events {
		s.dispatchEvent(ctx, tracker, ticket, event)
	}
	return desired, nil
}

// mentionsTx resolves the mentions in text, events them and subscribes
// each mentioned user to the ticket. Unresolved references and self
// references are dropped. Returns the mentioned user participants for
// the mail gate.
func (s *TicketService) mentionsTx(ctx context.Context, tx *sql.Tx, actor *domain.Participant, tracker *domain.Tracker, ticket *domain.Ticket, text string, commentID *int64) ([]*domain.Participant, error) {
	if text == "" {
		return nil, nil
	}
	scanned := s.scanner.Scan(text, tracker.OwnerName, tracker.Name)

	var mentioned []*domain.Participant
	for username := range scanned.Users {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			if _, ok := err.(*domain.ErrUserNotFound); ok {
				continue
			}
			return nil, err
		}
		participant, err := s.participants.ForUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}

		event := &domain.Event{
			EventType:       domain.EventUserMentioned,
			ParticipantID:   &participant.ID,
			ByParticipantID: &actor.ID,
			TicketID:        &ticket.ID,
			FromTicketID:    &ticket.ID,
			CommentID:       commentID,
			Participant:     participant,
			ByParticipant:   actor,
		}
		if err := s.eventRepo.InsertTx(ctx, tx, event); err != nil {
			return nil, err
		}
		if err := s.eventRepo.InsertNotificationTx(ctx, tx, event.ID, user.ID); err != nil {
			return nil, err
		}
		// A mention pulls the user into the thread going forward
		if err := s.subscribeTx(ctx, tx, participant, tracker.ID, ticket.ID); err != nil {
			return nil, err
		}
		mentioned = append(mentioned, participant)
	}

	for ref := range scanned.Tickets {
		sameTracker := ref.Owner == tracker.OwnerName && ref.Tracker == tracker.Name
		if sameTracker && ref.ScopedID == ticket.ScopedID {
			continue
		}

		trackerID := tracker.ID
		if !sameTracker {
			refTracker, err := s.trackerRepo.GetByName(ctx, ref.Owner, ref.Tracker)
			if err != nil {
				if _, ok := err.(*domain.ErrTrackerNotFound); ok {
					continue
				}
				return nil, err
			}
			trackerID = refTracker.ID
		}

		target, err := s.repo.GetByScopedID(ctx, trackerID, ref.ScopedID)
		if err != nil {
			if _, ok := err.(*domain.ErrTicketNotFound); ok {
				continue
			}
			return nil, err
		}
		if err := s.ticketMentionTx(ctx, tx, actor, ticket, target); err != nil {
			return nil, err
		}
	}

	return mentioned, nil
}

func (s *TicketService) ticketMentionTx(ctx context.Context, tx *sql.Tx, actor *domain.Participant, subject, target *domain.Ticket) error {
	if target.ID == subject.ID {
		return nil
	}
	event := &domain.Event{
		EventType:       domain.EventTicketMentioned,
		ByParticipantID: &actor.ID,
		TicketID:        &target.ID,
		FromTicketID:    &subject.ID,
		ByParticipant:   actor,
	}
	return s.eventRepo.InsertTx(ctx, tx, event)
}

// mailRecipients resolves the subscriber set for the event mail. The
// actor is dropped unless they asked to be notified of their own
// actions or the action came in by mail, which is reflected back like a
// mailing list post.
func (s *TicketService) mailRecipients(ctx context.Context, viewer *domain.User, actor *domain.Participant, trackerID, ticketID int64, fromEmail bool) []*domain.Participant {
	subscribers, err := s.subscriptionRepo.ListSubscribers(ctx, trackerID, ticketID)
	if err != nil {
		s.logger.WithField("ticket_id", ticketID).Error(fmt.Sprintf("Failed to list subscribers: %v", err))
		return nil
	}

	if fromEmail || (viewer != nil && viewer.NotifySelf) {
		return subscribers
	}
	filtered := make([]*domain.Participant, 0, len(subscribers))
	for _, p := range subscribers {
		if p.ID == actor.ID {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// sendMentionMails notifies mentioned users not already covered by the
// primary fan-out. A self mention is mailed only under the same gate
// mailRecipients applies to the actor: the action came in by mail or
// the actor asked to hear about their own actions.
func (s *TicketService) sendMentionMails(ctx context.Context, viewer *domain.User, mail *domain.EventMail, mentioned []*domain.Participant) {
	if len(mentioned) == 0 {
		return
	}
	covered := make(map[int64]bool, len(mail.Recipients))
	for _, p := range mail.Recipients {
		covered[p.ID] = true
	}
	echoSelf := mail.FromEmail || (viewer != nil && viewer.NotifySelf)
	for _, p := range mentioned {
		if (p.ID == mail.Actor.ID && !echoSelf) || covered[p.ID] {
			continue
		}
		if err := s.notifications.SendMentionMail(ctx, mail, p); err != nil {
			s.logger.WithField("participant_id", p.ID).Error(fmt.Sprintf("Failed to send mention notification: %v", err))
		}
	}
}

// dispatchEvent announces an event to the tracker's and ticket's
// webhooks, unless an import is rebuilding the tracker.
func (s *TicketService) dispatchEvent(ctx context.Context, tracker *domain.Tracker, ticket *domain.Ticket, event *domain.Event) {
	if tracker.ImportInProgress {
		return
	}
	payload := domain.NewEventPayload(tracker, ticket, event)
	s.webhookService.Dispatch(ctx, domain.WebhookEventCreated, 0, tracker.ID, ticket.ID, payload)
}

// submitterOf returns the loaded submitter participant.
func (s *TicketService) submitterOf(ctx context.Context, ticket *domain.Ticket) (*domain.Participant, error) {
	if ticket.Submitter != nil {
		return ticket.Submitter, nil
	}
	submitter, err := s.participantRepo.GetByID(ctx, ticket.SubmitterID)
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to get ticket submitter: %v", err))
		return nil, fmt.Errorf("failed to get ticket submitter: %w", err)
	}
	return submitter, nil
}

// loadEventParticipants batch-loads the acting participants of a page of
// events.
func (s *TicketService) loadEventParticipants(ctx context.Context, events []*domain.Event) error {
	ids := make([]int64, 0, len(events)*2)
	for _, event := range events {
		if event.ParticipantID != nil {
			ids = append(ids, *event.ParticipantID)
		}
		if event.ByParticipantID != nil {
			ids = append(ids, *event.ByParticipantID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	participants, err := s.participantRepo.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to load event participants: %v", err))
		return fmt.Errorf("failed to load event participants: %w", err)
	}
	for _, event := range events {
		if event.ParticipantID != nil {
			event.Participant = participants[*event.ParticipantID]
		}
		if event.ByParticipantID != nil {
			event.ByParticipant = participants[*event.ByParticipantID]
		}
	}
	return nil
}
