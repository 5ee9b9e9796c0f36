package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
)

type AccessService struct {
	repo            domain.AccessRepository
	participantRepo domain.ParticipantRepository
	userRepo        domain.UserRepository
	logger          logger.Logger
}

func NewAccessService(
	repo domain.AccessRepository,
	participantRepo domain.ParticipantRepository,
	userRepo domain.UserRepository,
	logger logger.Logger,
) *AccessService {
	return &AccessService{
		repo:            repo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// ForTracker resolves what viewer may do on tracker. Owners hold every
// capability. An explicit grant overrides the default set even on
// private trackers, which is what lets a private tracker admit invited
// collaborators.
func (s *AccessService) ForTracker(ctx context.Context, viewer *domain.User, tracker *domain.Tracker) (domain.TicketAccess, error) {
	if viewer == nil {
		if tracker.Visibility == domain.VisibilityPrivate {
			return domain.AccessNone, nil
		}
		return tracker.DefaultAccess, nil
	}
	if viewer.ID == tracker.OwnerID {
		return domain.AccessAll, nil
	}

	access, err := s.repo.GetForUser(ctx, tracker.ID, viewer.ID)
	if err == nil {
		return access.Permissions, nil
	}
	if _, ok := err.(*domain.ErrUserAccessNotFound); !ok {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to get user access: %v", err))
		return domain.AccessNone, fmt.Errorf("failed to get user access: %w", err)
	}

	if tracker.Visibility == domain.VisibilityPrivate {
		return domain.AccessNone, nil
	}
	return tracker.DefaultAccess, nil
}

// ForTicket adds browse on the viewer's own submissions, so a reporter
// can always follow up on their ticket.
func (s *AccessService) ForTicket(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, ticket *domain.Ticket) (domain.TicketAccess, error) {
	access, err := s.ForTracker(ctx, viewer, tracker)
	if err != nil {
		return domain.AccessNone, err
	}
	if viewer == nil {
		return access, nil
	}

	submitter := ticket.Submitter
	if submitter == nil {
		submitter, err = s.participantRepo.GetByID(ctx, ticket.SubmitterID)
		if err != nil {
			s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to get ticket submitter: %v", err))
			return domain.AccessNone, fmt.Errorf("failed to get ticket submitter: %w", err)
		}
	}
	if submitter.Type == domain.ParticipantTypeUser && submitter.UserID == viewer.ID {
		access |= domain.AccessBrowse
	}
	return access, nil
}

// Grant writes an explicit capability set for a user. Owner only.
func (s *AccessService) Grant(ctx context.Context, actor *domain.User, tracker *domain.Tracker, req *domain.GrantUserAccessRequest) (*domain.UserAccess, error) {
	permissions, err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid access grant: %w", err)
	}
	if actor == nil || actor.ID != tracker.OwnerID {
		return nil, domain.ErrAccessDenied
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimPrefix(req.Username, "~"))
	if err != nil {
		if _, ok := err.(*domain.ErrUserNotFound); ok {
			return nil, err
		}
		s.logger.WithField("username", req.Username).Error(fmt.Sprintf("Failed to get user: %v", err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	access := &domain.UserAccess{
		TrackerID:   tracker.ID,
		UserID:      user.ID,
		Permissions: permissions,
	}
	if err := s.repo.Upsert(ctx, access); err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to grant access: %v", err))
		return nil, fmt.Errorf("failed to grant access: %w", err)
	}
	return access, nil
}

// Revoke removes an explicit grant, restoring the default. Owner only.
func (s *AccessService) Revoke(ctx context.Context, actor *domain.User, tracker *domain.Tracker, req *domain.RevokeUserAccessRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid access revocation: %w", err)
	}
	if actor == nil || actor.ID != tracker.OwnerID {
		return domain.ErrAccessDenied
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimPrefix(req.Username, "~"))
	if err != nil {
		if _, ok := err.(*domain.ErrUserNotFound); ok {
			return err
		}
		s.logger.WithField("username", req.Username).Error(fmt.Sprintf("Failed to get user: %v", err))
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.repo.Delete(ctx, tracker.ID, user.ID); err != nil {
		if _, ok := err.(*domain.ErrUserAccessNotFound); ok {
			return err
		}
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to revoke access: %v", err))
		return fmt.Errorf("failed to revoke access: %w", err)
	}
	return nil
}

// List returns the tracker's explicit grants. Owner only.
func (s *AccessService) List(ctx context.Context, actor *domain.User, tracker *domain.Tracker) ([]*domain.UserAccess, error) {
	if actor == nil || actor.ID != tracker.OwnerID {
		return nil, domain.ErrAccessDenied
	}

	grants, err := s.repo.ListForTracker(ctx, tracker.ID)
	if err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to list access grants: %v", err))
		return nil, fmt.Errorf("failed to list access grants: %w", err)
	}
	return grants, nil
}
