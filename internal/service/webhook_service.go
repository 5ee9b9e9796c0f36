package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	svix "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
)

type WebhookService struct {
	repo          domain.WebhookRepository
	trackerRepo   domain.TrackerRepository
	ticketRepo    domain.TicketRepository
	accessService domain.AccessService
	broker        domain.BrokerNotifier
	signer        *svix.Webhook
	logger        logger.Logger
}

func NewWebhookService(
	repo domain.WebhookRepository,
	trackerRepo domain.TrackerRepository,
	ticketRepo domain.TicketRepository,
	accessService domain.AccessService,
	broker domain.BrokerNotifier,
	secret string,
	logger logger.Logger,
) (*WebhookService, error) {
	signer, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook signer: %w", err)
	}
	return &WebhookService{
		repo:          repo,
		trackerRepo:   trackerRepo,
		ticketRepo:    ticketRepo,
		accessService: accessService,
		broker:        broker,
		signer:        signer,
		logger:        logger,
	}, nil
}

// Create registers a subscription. Tracker and ticket scopes require
// browse access on the referenced tracker, which an ungranted viewer of
// a private tracker does not have.
func (s *WebhookService) Create(ctx context.Context, viewer *domain.User, req *domain.CreateWebhookRequest) (*domain.WebhookSubscription, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid webhook: %w", err)
	}
	if viewer == nil {
		return nil, domain.ErrAccessDenied
	}

	sub := &domain.WebhookSubscription{
		Scope:  domain.WebhookScope(req.Scope),
		URL:    req.URL,
		Events: req.Events,
	}
	switch sub.Scope {
	case domain.WebhookScopeUser:
		sub.UserID = &viewer.ID

	case domain.WebhookScopeTracker, domain.WebhookScopeTicket:
		tracker, err := s.getTracker(ctx, req.TrackerID)
		if err != nil {
			return nil, err
		}
		access, err := s.accessService.ForTracker(ctx, viewer, tracker)
		if err != nil {
			return nil, err
		}
		if !access.Has(domain.AccessBrowse) {
			return nil, &domain.ErrTrackerNotFound{Message: "tracker not found"}
		}
		if sub.Scope == domain.WebhookScopeTracker {
			sub.TrackerID = &tracker.ID
			break
		}

		ticket, err := s.ticketRepo.GetByScopedID(ctx, tracker.ID, req.ScopedID)
		if err != nil {
			if _, ok := err.(*domain.ErrTicketNotFound); ok {
				return nil, err
			}
			s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to get ticket: %v", err))
			return nil, fmt.Errorf("failed to get ticket: %w", err)
		}
		sub.TicketID = &ticket.ID
	}

	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("invalid webhook: %w", err)
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		s.logger.WithField("url", sub.URL).Error(fmt.Sprintf("Failed to create webhook: %v", err))
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}
	return sub, nil
}

// List returns subscriptions at one scope. User scope lists the
// viewer's own hooks, tracker and ticket scopes are owner only.
func (s *WebhookService) List(ctx context.Context, viewer *domain.User, scope domain.WebhookScope, trackerID, ticketID int64) ([]*domain.WebhookSubscription, error) {
	if viewer == nil {
		return nil, domain.ErrAccessDenied
	}

	var scopeID int64
	switch scope {
	case domain.WebhookScopeUser:
		scopeID = viewer.ID

	case domain.WebhookScopeTracker, domain.WebhookScopeTicket:
		tracker, err := s.getTracker(ctx, trackerID)
		if err != nil {
			return nil, err
		}
		if tracker.OwnerID != viewer.ID {
			return nil, domain.ErrAccessDenied
		}
		scopeID = tracker.ID
		if scope == domain.WebhookScopeTicket {
			scopeID = ticketID
		}

	default:
		return nil, domain.NewFieldValidationError("scope", "unknown scope "+string(scope))
	}

	subs, err := s.repo.ListByScope(ctx, scope, scopeID)
	if err != nil {
		s.logger.WithField("scope", string(scope)).Error(fmt.Sprintf("Failed to list webhooks: %v", err))
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	return subs, nil
}

// Delete removes a subscription. User hooks belong to their user,
// tracker and ticket hooks to the tracker owner.
func (s *WebhookService) Delete(ctx context.Context, viewer *domain.User, webhookID int64) error {
	if viewer == nil {
		return domain.ErrAccessDenied
	}

	sub, err := s.repo.GetByID(ctx, webhookID)
	if err != nil {
		if _, ok := err.(*domain.ErrWebhookNotFound); ok {
			return err
		}
		s.logger.WithField("webhook_id", webhookID).Error(fmt.Sprintf("Failed to get webhook: %v", err))
		return fmt.Errorf("failed to get webhook: %w", err)
	}

	switch sub.Scope {
	case domain.WebhookScopeUser:
		if sub.UserID == nil || *sub.UserID != viewer.ID {
			return domain.ErrAccessDenied
		}

	case domain.WebhookScopeTracker:
		if err := s.requireTrackerOwner(ctx, viewer, *sub.TrackerID); err != nil {
			return err
		}

	case domain.WebhookScopeTicket:
		ticket, err := s.ticketRepo.GetByID(ctx, *sub.TicketID)
		if err != nil {
			if _, ok := err.(*domain.ErrTicketNotFound); ok {
				return err
			}
			s.logger.WithField("webhook_id", webhookID).Error(fmt.Sprintf("Failed to get ticket: %v", err))
			return fmt.Errorf("failed to get ticket: %w", err)
		}
		if err := s.requireTrackerOwner(ctx, viewer, ticket.TrackerID); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, webhookID); err != nil {
		if _, ok := err.(*domain.ErrWebhookNotFound); ok {
			return err
		}
		s.logger.WithField("webhook_id", webhookID).Error(fmt.Sprintf("Failed to delete webhook: %v", err))
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil
}

// Dispatch signs and enqueues payload for every subscription listening
// for event at the touched scopes. Zero ids skip their scope. Failures
// are logged, never returned to the caller's request path.
func (s *WebhookService) Dispatch(ctx context.Context, event string, userID, trackerID, ticketID int64, payload interface{}) {
	subs, err := s.repo.ListForEvent(ctx, event, userID, trackerID, ticketID)
	if err != nil {
		s.logger.WithField("event", event).Error(fmt.Sprintf("Failed to list webhook subscriptions: %v", err))
		return
	}
	if len(subs) == 0 {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.WithField("event", event).Error(fmt.Sprintf("Failed to marshal webhook payload: %v", err))
		return
	}

	enqueued := 0
	for _, sub := range subs {
		delivery := &domain.WebhookDelivery{
			ID:             uuid.New().String(),
			SubscriptionID: sub.ID,
			Event:          event,
			URL:            sub.URL,
			Payload:        body,
			Status:         domain.WebhookDeliveryPending,
			CreatedAt:      time.Now().UTC(),
		}
		delivery.NextAttemptAt = delivery.CreatedAt
		signature, err := s.signer.Sign(delivery.ID, delivery.CreatedAt, body)
		if err != nil {
			s.logger.WithField("webhook_id", sub.ID).Error(fmt.Sprintf("Failed to sign webhook payload: %v", err))
			continue
		}
		delivery.Signature = signature

		if err := s.repo.Enqueue(ctx, delivery); err != nil {
			s.logger.WithField("webhook_id", sub.ID).Error(fmt.Sprintf("Failed to enqueue webhook delivery: %v", err))
			continue
		}
		enqueued++
	}

	if enqueued > 0 && s.broker != nil {
		s.broker.Nudge(ctx)
	}
}

func (s *WebhookService) getTracker(ctx context.Context, trackerID int64) (*domain.Tracker, error) {
	tracker, err := s.trackerRepo.GetByID(ctx, trackerID)
	if err != nil {
		if _, ok := err.(*domain.ErrTrackerNotFound); ok {
			return nil, err
		}
		s.logger.WithField("tracker_id", trackerID).Error(fmt.Sprintf("Failed to get tracker: %v", err))
		return nil, fmt.Errorf("failed to get tracker: %w", err)
	}
	return tracker, nil
}

func (s *WebhookService) requireTrackerOwner(ctx context.Context, viewer *domain.User, trackerID int64) error {
	tracker, err := s.getTracker(ctx, trackerID)
	if err != nil {
		return err
	}
	if tracker.OwnerID != viewer.ID {
		return domain.ErrAccessDenied
	}
	return nil
}
