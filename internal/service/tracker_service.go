package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
)

type TrackerService struct {
	repo               domain.TrackerRepository
	userRepo           domain.UserRepository
	accessService      domain.AccessService
	participantService domain.ParticipantService
	subscriptionRepo   domain.SubscriptionRepository
	webhookService     domain.WebhookService
	logger             logger.Logger

	// touchOnAdminEdits bumps the tracker's updated timestamp on
	// metadata edits, not only on ticket activity.
	touchOnAdminEdits bool
}

func NewTrackerService(
	repo domain.TrackerRepository,
	userRepo domain.UserRepository,
	accessService domain.AccessService,
	participantService domain.ParticipantService,
	subscriptionRepo domain.SubscriptionRepository,
	webhookService domain.WebhookService,
	logger logger.Logger,
	touchOnAdminEdits bool,
) *TrackerService {
	return &TrackerService{
		repo:               repo,
		userRepo:           userRepo,
		accessService:      accessService,
		participantService: participantService,
		subscriptionRepo:   subscriptionRepo,
		webhookService:     webhookService,
		logger:             logger,
		touchOnAdminEdits:  touchOnAdminEdits,
	}
}

// Create opens a tracker under the owner's account and subscribes the
// owner to it.
func (s *TrackerService) Create(ctx context.Context, owner *domain.User, req *domain.CreateTrackerRequest) (*domain.Tracker, error) {
	tracker, err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid tracker: %w", err)
	}
	if owner == nil {
		return nil, domain.ErrAccessDenied
	}
	tracker.OwnerID = owner.ID
	tracker.OwnerName = owner.Username

	participant, err := s.participantService.ForUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tracker); err != nil {
		if _, ok := err.(*domain.ConflictError); ok {
			return nil, domain.NewConflictError("A tracker by this name already exists.")
		}
		s.logger.WithField("tracker_name", tracker.Name).Error(fmt.Sprintf("Failed to create tracker: %v", err))
		return nil, fmt.Errorf("failed to create tracker: %w", err)
	}

	// The tracker exists at this point, a failed subscription must not
	// unwind it.
	if _, err := s.subscriptionRepo.SubscribeTracker(ctx, participant.ID, tracker.ID); err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to subscribe owner to tracker: %v", err))
	}

	s.webhookService.Dispatch(ctx, domain.WebhookTrackerCreated, owner.ID, 0, 0, domain.NewTrackerPayload(tracker))
	return tracker, nil
}

// Get resolves ~owner/name for a viewer. Trackers the viewer cannot
// browse surface as not found.
func (s *TrackerService) Get(ctx context.Context, viewer *domain.User, owner, name string) (*domain.Tracker, error) {
	tracker, err := s.repo.GetByName(ctx, owner, name)
	if err != nil {
		if _, ok := err.(*domain.ErrTrackerNotFound); ok {
			return nil, err
		}
		s.logger.WithField("tracker_name", name).Error(fmt.Sprintf("Failed to get tracker: %v", err))
		return nil, fmt.Errorf("failed to get tracker: %w", err)
	}

	access, err := s.accessService.ForTracker(ctx, viewer, tracker)
	if err != nil {
		return nil, err
	}
	if !access.Has(domain.AccessBrowse) {
		return nil, &domain.ErrTrackerNotFound{Message: "tracker not found"}
	}
	return tracker, nil
}

// List returns the trackers of one owner the viewer may see. Owners see
// everything, everyone else only public trackers.
func (s *TrackerService) List(ctx context.Context, viewer *domain.User, owner string, cursor *domain.Cursor) ([]*domain.Tracker, *domain.Cursor, error) {
	user, err := s.userRepo.GetByUsername(ctx, owner)
	if err != nil {
		if _, ok := err.(*domain.ErrUserNotFound); ok {
			return nil, nil, err
		}
		s.logger.WithField("username", owner).Error(fmt.Sprintf("Failed to get user: %v", err))
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	var visibilities []domain.Visibility
	if viewer == nil || viewer.ID != user.ID {
		visibilities = []domain.Visibility{domain.VisibilityPublic}
	}

	trackers, next, err := s.repo.ListByOwner(ctx, user.ID, visibilities, cursor)
	if err != nil {
		s.logger.WithField("username", owner).Error(fmt.Sprintf("Failed to list trackers: %v", err))
		return nil, nil, fmt.Errorf("failed to list trackers: %w", err)
	}
	return trackers, next, nil
}

// Update edits tracker metadata. Owner only.
func (s *TrackerService) Update(ctx context.Context, actor *domain.User, req *domain.UpdateTrackerRequest) (*domain.Tracker, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tracker update: %w", err)
	}

	tracker, err := s.repo.GetByID(ctx, req.TrackerID)
	if err != nil {
		if _, ok := err.(*domain.ErrTrackerNotFound); ok {
			return nil, err
		}
		s.logger.WithField("tracker_id", req.TrackerID).Error(fmt.Sprintf("Failed to get tracker: %v", err))
		return nil, fmt.Errorf("failed to get tracker: %w", err)
	}
	if actor == nil || actor.ID != tracker.OwnerID {
		return nil, domain.ErrAccessDenied
	}

	if req.Description != nil {
		tracker.Description = *req.Description
	}
	if req.Visibility != nil {
		tracker.Visibility = domain.Visibility(*req.Visibility)
	}
	if req.DefaultAccess != nil {
		access, err := domain.ParseAccess(req.DefaultAccess)
		if err != nil {
			return nil, fmt.Errorf("invalid tracker update: %w", err)
		}
		tracker.DefaultAccess = access
	}
	if s.touchOnAdminEdits {
		tracker.UpdatedAt = time.Now().UTC()
	}

	if err := s.repo.Update(ctx, tracker); err != nil {
		if _, ok := err.(*domain.ErrTrackerNotFound); ok {
			return nil, err
		}
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to update tracker: %v", err))
		return nil, fmt.Errorf("failed to update tracker: %w", err)
	}

	s.webhookService.Dispatch(ctx, domain.WebhookTrackerUpdated, tracker.OwnerID, tracker.ID, 0, domain.NewTrackerPayload(tracker))
	return tracker, nil
}

// Delete removes a tracker and everything under it. Owner only. The
// deletion notice goes out first, afterwards the subscriptions it would
// match are gone.
func (s *TrackerService) Delete(ctx context.Context, actor *domain.User, trackerID int64) error {
	tracker, err := s.repo.GetByID(ctx, trackerID)
	if err != nil {
		if _, ok := err.(*domain.ErrTrackerNotFound); ok {
			return err
		}
		s.logger.WithField("tracker_id", trackerID).Error(fmt.Sprintf("Failed to get tracker: %v", err))
		return fmt.Errorf("failed to get tracker: %w", err)
	}
	if actor == nil || actor.ID != tracker.OwnerID {
		return domain.ErrAccessDenied
	}

	s.webhookService.Dispatch(ctx, domain.WebhookTrackerDeleted, tracker.OwnerID, tracker.ID, 0, &domain.WebhookDeletedPayload{ID: tracker.ID})

	if err := s.repo.Delete(ctx, tracker.ID); err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to delete tracker: %v", err))
		return fmt.Errorf("failed to delete tracker: %w", err)
	}
	return nil
}
