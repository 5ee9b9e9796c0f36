package service

import (
	"context"
	"fmt"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
)

type LabelService struct {
	repo           domain.LabelRepository
	trackerRepo    domain.TrackerRepository
	webhookService domain.WebhookService
	logger         logger.Logger
}

func NewLabelService(
	repo domain.LabelRepository,
	trackerRepo domain.TrackerRepository,
	webhookService domain.WebhookService,
	logger logger.Logger,
) *LabelService {
	return &LabelService{
		repo:           repo,
		trackerRepo:    trackerRepo,
		webhookService: webhookService,
		logger:         logger,
	}
}

// Create defines a label on a tracker. Owner only.
func (s *LabelService) Create(ctx context.Context, actor *domain.User, req *domain.CreateLabelRequest) (*domain.Label, error) {
	label, err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid label: %w", err)
	}

	tracker, err := s.getTracker(ctx, label.TrackerID)
	if err != nil {
		return nil, err
	}
	if actor == nil || actor.ID != tracker.OwnerID {
		return nil, domain.ErrAccessDenied
	}

	if err := s.repo.Create(ctx, label); err != nil {
		if _, ok := err.(*domain.ConflictError); ok {
			return nil, err
		}
		s.logger.WithField("label_name", label.Name).Error(fmt.Sprintf("Failed to create label: %v", err))
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	s.webhookService.Dispatch(ctx, domain.WebhookLabelCreated, 0, tracker.ID, 0, domain.NewLabelPayload(tracker, label))
	return label, nil
}

// List returns a tracker's labels. The caller resolves the tracker
// through TrackerService.Get, which is where browse access is enforced.
func (s *LabelService) List(ctx context.Context, viewer *domain.User, tracker *domain.Tracker) ([]*domain.Label, error) {
	labels, err := s.repo.ListByTracker(ctx, tracker.ID)
	if err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to list labels: %v", err))
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// Update edits a label definition. Owner only.
func (s *LabelService) Update(ctx context.Context, actor *domain.User, req *domain.UpdateLabelRequest) (*domain.Label, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid label update: %w", err)
	}

	label, err := s.getLabel(ctx, req.LabelID)
	if err != nil {
		return nil, err
	}
	tracker, err := s.getTracker(ctx, label.TrackerID)
	if err != nil {
		return nil, err
	}
	if actor == nil || actor.ID != tracker.OwnerID {
		return nil, domain.ErrAccessDenied
	}

	if req.Name != nil {
		label.Name = *req.Name
	}
	if req.Color != nil {
		label.Color = *req.Color
	}
	if req.TextColor != nil {
		label.TextColor = *req.TextColor
	}

	if err := s.repo.Update(ctx, label); err != nil {
		if _, ok := err.(*domain.ConflictError); ok {
			return nil, err
		}
		if _, ok := err.(*domain.ErrLabelNotFound); ok {
			return nil, err
		}
		s.logger.WithField("label_id", label.ID).Error(fmt.Sprintf("Failed to update label: %v", err))
		return nil, fmt.Errorf("failed to update label: %w", err)
	}

	s.webhookService.Dispatch(ctx, domain.WebhookLabelUpdated, 0, tracker.ID, 0, domain.NewLabelPayload(tracker, label))
	return label, nil
}

// Delete removes a label, detaching it from every ticket. Owner only.
func (s *LabelService) Delete(ctx context.Context, actor *domain.User, labelID int64) error {
	label, err := s.getLabel(ctx, labelID)
	if err != nil {
		return err
	}
	tracker, err := s.getTracker(ctx, label.TrackerID)
	if err != nil {
		return err
	}
	if actor == nil || actor.ID != tracker.OwnerID {
		return domain.ErrAccessDenied
	}

	if err := s.repo.Delete(ctx, label.ID); err != nil {
		s.logger.WithField("label_id", label.ID).Error(fmt.Sprintf("Failed to delete label: %v", err))
		return fmt.Errorf("failed to delete label: %w", err)
	}

	s.webhookService.Dispatch(ctx, domain.WebhookLabelDeleted, 0, tracker.ID, 0, &domain.WebhookDeletedPayload{ID: label.ID})
	return nil
}

func (s *LabelService) getLabel(ctx context.Context, labelID int64) (*domain.Label, error) {
	label, err := s.repo.GetByID(ctx, labelID)
	if err != nil {
		if _, ok := err.(*domain.ErrLabelNotFound); ok {
			return nil, err
		}
		s.logger.WithField("label_id", labelID).Error(fmt.Sprintf("Failed to get label: %v", err))
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	return label, nil
}

func (s *LabelService) getTracker(ctx context.Context, trackerID int64) (*domain.Tracker, error) {
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
