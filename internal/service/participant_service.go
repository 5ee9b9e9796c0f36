package service

import (
	"context"
	"fmt"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
)

type ParticipantService struct {
	repo     domain.ParticipantRepository
	userRepo domain.UserRepository
	logger   logger.Logger
}

func NewParticipantService(
	repo domain.ParticipantRepository,
	userRepo domain.UserRepository,
	logger logger.Logger,
) *ParticipantService {
	return &ParticipantService{
		repo:     repo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *ParticipantService) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	participant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if _, ok := err.(*domain.ErrParticipantNotFound); ok {
			return nil, err
		}
		s.logger.WithField("participant_id", id).Error(fmt.Sprintf("Failed to get participant: %v", err))
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

// ForUser returns the participant identity of a local user, creating it
// on first use.
func (s *ParticipantService) ForUser(ctx context.Context, userID int64) (*domain.Participant, error) {
	participant, err := s.repo.UpsertUser(ctx, userID)
	if err != nil {
		s.logger.WithField("user_id", userID).Error(fmt.Sprintf("Failed to upsert user participant: %v", err))
		return nil, fmt.Errorf("failed to upsert user participant: %w", err)
	}
	return participant, nil
}

// ForEmail resolves an address to a participant. An address owned by a
// registered account resolves to that account's user participant, so
// mail from a known address lands on the same identity as web actions.
func (s *ParticipantService) ForEmail(ctx context.Context, email, emailName string) (*domain.Participant, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return s.ForUser(ctx, user.ID)
	}
	if _, ok := err.(*domain.ErrUserNotFound); !ok {
		s.logger.WithField("email", email).Error(fmt.Sprintf("Failed to look up user by email: %v", err))
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	participant, err := s.repo.UpsertEmail(ctx, email, emailName)
	if err != nil {
		s.logger.WithField("email", email).Error(fmt.Sprintf("Failed to upsert email participant: %v", err))
		return nil, fmt.Errorf("failed to upsert email participant: %w", err)
	}
	return participant, nil
}

// ForExternal resolves an imported identity.
func (s *ParticipantService) ForExternal(ctx context.Context, externalID, externalURL string) (*domain.Participant, error) {
	participant, err := s.repo.UpsertExternal(ctx, externalID, externalURL)
	if err != nil {
		s.logger.WithField("external_id", externalID).Error(fmt.Sprintf("Failed to upsert external participant: %v", err))
		return nil, fmt.Errorf("failed to upsert external participant: %w", err)
	}
	return participant, nil
}
