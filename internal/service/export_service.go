package service

import (
	"compress/gzip"
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/crypto"
	"github.com/tracknest/tracknest/pkg/logger"
)

// ExportService serializes a tracker into the gzipped archive format.
// Tickets submitted by local users and comments authored by local users
// carry detached ed25519 signatures, so another instance importing the
// archive can tell authentic records from tampered ones.
type ExportService struct {
	ticketRepo      domain.TicketRepository
	eventRepo       domain.EventRepository
	commentRepo     domain.CommentRepository
	labelRepo       domain.LabelRepository
	assignmentRepo  domain.AssignmentRepository
	participantRepo domain.ParticipantRepository
	signingKey      ed25519.PrivateKey
	origin          string
	logger          logger.Logger
}

// ExportServiceConfig wires the exporter's collaborators.
type ExportServiceConfig struct {
	TicketRepo      domain.TicketRepository
	EventRepo       domain.EventRepository
	CommentRepo     domain.CommentRepository
	LabelRepo       domain.LabelRepository
	AssignmentRepo  domain.AssignmentRepository
	ParticipantRepo domain.ParticipantRepository
	SigningKey      ed25519.PrivateKey
	Origin          string
	Logger          logger.Logger
}

func NewExportService(cfg ExportServiceConfig) *ExportService {
	return &ExportService{
		ticketRepo:      cfg.TicketRepo,
		eventRepo:       cfg.EventRepo,
		commentRepo:     cfg.CommentRepo,
		labelRepo:       cfg.LabelRepo,
		assignmentRepo:  cfg.AssignmentRepo,
		participantRepo: cfg.ParticipantRepo,
		signingKey:      cfg.SigningKey,
		origin:          cfg.Origin,
		logger:          cfg.Logger,
	}
}

// Export writes the gzipped archive of a tracker to w. Tickets are
// ordered by scoped id and carry their full event history.
func (s *ExportService) Export(ctx context.Context, tracker *domain.Tracker, w io.Writer) error {
	labels, err := s.labelRepo.ListByTracker(ctx, tracker.ID)
	if err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to list labels: %v", err))
		return fmt.Errorf("failed to list labels: %w", err)
	}
	labelNames := make(map[int64]string, len(labels))
	for _, label := range labels {
		labelNames[label.ID] = label.Name
	}

	tickets, err := s.ticketRepo.ListAll(ctx, tracker.ID)
	if err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to list tickets: %v", err))
		return fmt.Errorf("failed to list tickets: %w", err)
	}
	ticketRefs := make(map[int64]string, len(tickets))
	for _, ticket := range tickets {
		ticketRefs[ticket.ID] = ticket.Ref()
	}

	// One pass to load the raw rows and collect participant ids, then a
	// single batched participant lookup before the dump is assembled.
	events := make([][]*domain.Event, len(tickets))
	comments := make(map[int64]*domain.TicketComment)
	var participantIDs []int64
	for i, ticket := range tickets {
		participantIDs = append(participantIDs, ticket.SubmitterID)

		events[i], err = s.eventRepo.ListAllByTicket(ctx, ticket.ID)
		if err != nil {
			s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to list events: %v", err))
			return fmt.Errorf("failed to list events: %w", err)
		}
		for _, event := range events[i] {
			if event.ParticipantID != nil {
				participantIDs = append(participantIDs, *event.ParticipantID)
			}
			if event.ByParticipantID != nil {
				participantIDs = append(participantIDs, *event.ByParticipantID)
			}
			if !event.EventType.Has(domain.EventComment) || event.CommentID == nil {
				continue
			}
			if _, ok := comments[*event.CommentID]; ok {
				continue
			}
			comment, err := s.commentRepo.GetByID(ctx, *event.CommentID)
			if err != nil {
				s.logger.WithField("comment_id", *event.CommentID).Error(fmt.Sprintf("Failed to load comment: %v", err))
				return fmt.Errorf("failed to load comment: %w", err)
			}
			comments[comment.ID] = comment
			participantIDs = append(participantIDs, comment.SubmitterID)
		}
	}

	participants := map[int64]*domain.Participant{}
	if len(participantIDs) > 0 {
		participants, err = s.participantRepo.ListByIDs(ctx, participantIDs)
		if err != nil {
			s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to load participants: %v", err))
			return fmt.Errorf("failed to load participants: %w", err)
		}
	}

	dump := &domain.TrackerDump{
		ID:          tracker.ID,
		Owner:       tracker.OwnerName,
		Name:        tracker.Name,
		Description: tracker.Description,
		Labels:      make([]*domain.LabelDump, 0, len(labels)),
		Tickets:     make([]*domain.TicketDump, 0, len(tickets)),
	}
	for _, label := range labels {
		dump.Labels = append(dump.Labels, &domain.LabelDump{
			Name:            label.Name,
			Created:         label.CreatedAt,
			BackgroundColor: label.Color,
			TextColor:       label.TextColor,
		})
	}

	for i, ticket := range tickets {
		td, err := s.dumpTicket(ctx, tracker, ticket, events[i], comments, labelNames, ticketRefs, participants)
		if err != nil {
			return err
		}
		dump.Tickets = append(dump.Tickets, td)
	}

	canonical, err := json.Marshal(dump.Tickets)
	if err != nil {
		return fmt.Errorf("failed to serialize tickets: %w", err)
	}
	dump.Digest = crypto.ContentDigest(canonical)

	gw := gzip.NewWriter(w)
	if err := json.NewEncoder(gw).Encode(dump); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	return nil
}

func (s *ExportService) dumpTicket(
	ctx context.Context,
	tracker *domain.Tracker,
	ticket *domain.Ticket,
	events []*domain.Event,
	comments map[int64]*domain.TicketComment,
	labelNames map[int64]string,
	ticketRefs map[int64]string,
	participants map[int64]*domain.Participant,
) (*domain.TicketDump, error) {
	submitter := participants[ticket.SubmitterID]

	td := &domain.TicketDump{
		ID:           int(ticket.ScopedID),
		Created:      ticket.CreatedAt,
		Updated:      ticket.UpdatedAt,
		Submitter:    domain.DumpParticipant(submitter),
		Ref:          ticket.Ref(),
		Subject:      ticket.Title,
		Body:         ticket.Description,
		Status:       ticket.Status,
		Resolution:   ticket.Resolution,
		CommentCount: ticket.CommentCount,
		Upstream:     s.origin,
	}

	ticketLabels, err := s.labelRepo.ListForTicket(ctx, ticket.ID)
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to list ticket labels: %v", err))
		return nil, fmt.Errorf("failed to list ticket labels: %w", err)
	}
	for _, label := range ticketLabels {
		td.Labels = append(td.Labels, label.Name)
	}

	assignees, err := s.assignmentRepo.ListForTicket(ctx, ticket.ID)
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to list assignees: %v", err))
		return nil, fmt.Errorf("failed to list assignees: %w", err)
	}
	for _, assignee := range assignees {
		td.Assignees = append(td.Assignees, assignee.Username)
	}

	if submitter != nil && submitter.Type == domain.ParticipantTypeUser {
		if err := s.signTicket(td, tracker.ID, submitter.UserID); err != nil {
			return nil, err
		}
	}

	for _, event := range events {
		ed := &domain.EventDump{
			ID:            event.ID,
			Created:       event.CreatedAt,
			Types:         event.EventType,
			OldStatus:     event.OldStatus,
			NewStatus:     event.NewStatus,
			OldResolution: event.OldResolution,
			NewResolution: event.NewResolution,
			Upstream:      s.origin,
		}
		if event.ParticipantID != nil {
			ed.Participant = domain.DumpParticipant(participants[*event.ParticipantID])
		}
		if event.ByParticipantID != nil {
			ed.ByParticipant = domain.DumpParticipant(participants[*event.ByParticipantID])
		}
		if event.LabelID != nil {
			ed.Label = labelNames[*event.LabelID]
		}
		if event.FromTicketID != nil {
			ed.FromTicketRef = ticketRefs[*event.FromTicketID]
		}
		if event.EventType.Has(domain.EventComment) && event.CommentID != nil {
			if comment := comments[*event.CommentID]; comment != nil {
				author := participants[comment.SubmitterID]
				ed.Comment = &domain.CommentDump{
					ID:           comment.ID,
					Created:      comment.CreatedAt,
					Submitter:    domain.DumpParticipant(author),
					Text:         comment.Text,
					Authenticity: comment.Authenticity.String(),
				}
				if author != nil && author.Type == domain.ParticipantTypeUser {
					if err := s.signCommentEvent(ed, tracker.ID, td.ID, author.UserID); err != nil {
						return nil, err
					}
				}
			}
		}
		td.Events = append(td.Events, ed)
	}

	return td, nil
}

func (s *ExportService) signTicket(td *domain.TicketDump, trackerID, submitterUserID int64) error {
	payload, err := json.Marshal(&domain.SignedTicketPayload{
		TrackerID:   trackerID,
		TicketID:    td.ID,
		Subject:     td.Subject,
		Body:        td.Body,
		SubmitterID: submitterUserID,
		Upstream:    td.Upstream,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize ticket signature payload: %w", err)
	}
	td.Signature, td.Nonce, err = crypto.SignPayload(s.signingKey, payload)
	if err != nil {
		s.logger.WithField("ticket", td.Ref).Error(fmt.Sprintf("Failed to sign ticket: %v", err))
		return fmt.Errorf("failed to sign ticket: %w", err)
	}
	return nil
}

func (s *ExportService) signCommentEvent(ed *domain.EventDump, trackerID int64, ticketID int, authorUserID int64) error {
	payload, err := json.Marshal(&domain.SignedCommentPayload{
		TrackerID: trackerID,
		TicketID:  ticketID,
		Comment:   ed.Comment.Text,
		AuthorID:  authorUserID,
		Upstream:  ed.Upstream,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize comment signature payload: %w", err)
	}
	ed.Signature, ed.Nonce, err = crypto.SignPayload(s.signingKey, payload)
	if err != nil {
		s.logger.WithField("comment_id", ed.Comment.ID).Error(fmt.Sprintf("Failed to sign comment: %v", err))
		return fmt.Errorf("failed to sign comment: %w", err)
	}
	return nil
}
