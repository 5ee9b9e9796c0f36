package service

import (
	"context"
	"fmt"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
)

type SubscriptionService struct {
	repo               domain.SubscriptionRepository
	participantService domain.ParticipantService
	logger             logger.Logger
}

func NewSubscriptionService(
	repo domain.SubscriptionRepository,
	participantService domain.ParticipantService,
	logger logger.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		repo:               repo,
		participantService: participantService,
		logger:             logger,
	}
}

func (s *SubscriptionService) SubscribeTracker(ctx context.Context, viewer *domain.User, tracker *domain.Tracker) (*domain.TicketSubscription, error) {
	if viewer == nil {
		return nil, domain.ErrAccessDenied
	}
	participant, err := s.participantService.ForUser(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.SubscribeTracker(ctx, participant.ID, tracker.ID)
	if err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to subscribe to tracker: %v", err))
		return nil, fmt.Errorf("failed to subscribe to tracker: %w", err)
	}
	return sub, nil
}

func (s *SubscriptionService) SubscribeTicket(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket) (*domain.TicketSubscription, error) {
	if viewer == nil {
		return nil, domain.ErrAccessDenied
	}
	participant, err := s.participantService.ForUser(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.SubscribeTicket(ctx, participant.ID, ticket.ID)
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to subscribe to ticket: %v", err))
		return nil, fmt.Errorf("failed to subscribe to ticket: %w", err)
	}
	return sub, nil
}

func (s *SubscriptionService) UnsubscribeTracker(ctx context.Context, viewer *domain.User, tracker *domain.Tracker) error {
	if viewer == nil {
		return domain.ErrAccessDenied
	}
	participant, err := s.participantService.ForUser(ctx, viewer.ID)
	if err != nil {
		return err
	}

	if err := s.repo.UnsubscribeTracker(ctx, participant.ID, tracker.ID); err != nil {
		if _, ok := err.(*domain.ErrSubscriptionNotFound); ok {
			return err
		}
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to unsubscribe from tracker: %v", err))
		return fmt.Errorf("failed to unsubscribe from tracker: %w", err)
	}
	return nil
}

func (s *SubscriptionService) UnsubscribeTicket(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket) error {
	if viewer == nil {
		return domain.ErrAccessDenied
	}
	participant, err := s.participantService.ForUser(ctx, viewer.ID)
	if err != nil {
		return err
	}

	if err := s.repo.UnsubscribeTicket(ctx, participant.ID, ticket.ID); err != nil {
		if _, ok := err.(*domain.ErrSubscriptionNotFound); ok {
			return err
		}
		s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to unsubscribe from ticket: %v", err))
		return fmt.Errorf("failed to unsubscribe from ticket: %w", err)
	}
	return nil
}

// UnsubscribeParticipant drops whichever scope the unsubscribe address
// encoded. The mail gateway resolves the participant before calling.
func (s *SubscriptionService) UnsubscribeParticipant(ctx context.Context, participant *domain.Participant, tracker *domain.Tracker, ticket *domain.Ticket) error {
	var err error
	if ticket != nil {
		err = s.repo.UnsubscribeTicket(ctx, participant.ID, ticket.ID)
	} else {
		err = s.repo.UnsubscribeTracker(ctx, participant.ID, tracker.ID)
	}
	if err != nil {
		if _, ok := err.(*domain.ErrSubscriptionNotFound); ok {
			return err
		}
		s.logger.WithField("participant_id", participant.ID).Error(fmt.Sprintf("Failed to unsubscribe participant: %v", err))
		return fmt.Errorf("failed to unsubscribe participant: %w", err)
	}
	return nil
}

// IsSubscribed reports whether the participant follows the ticket at
// either scope.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, participantID, trackerID, ticketID int64) (bool, error) {
	if ticketID != 0 {
		_, err := s.repo.GetForTicket(ctx, participantID, ticketID)
		if err == nil {
			return true, nil
		}
		if _, ok := err.(*domain.ErrSubscriptionNotFound); !ok {
			s.logger.WithField("ticket_id", ticketID).Error(fmt.Sprintf("Failed to check subscription: %v", err))
			return false, fmt.Errorf("failed to check subscription: %w", err)
		}
	}
	if trackerID != 0 {
		_, err := s.repo.GetForTracker(ctx, participantID, trackerID)
		if err == nil {
			return true, nil
		}
		if _, ok := err.(*domain.ErrSubscriptionNotFound); !ok {
			s.logger.WithField("tracker_id", trackerID).Error(fmt.Sprintf("Failed to check subscription: %v", err))
			return false, fmt.Errorf("failed to check subscription: %w", err)
		}
	}
	return false, nil
}
