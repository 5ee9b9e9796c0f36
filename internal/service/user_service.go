package service

import (
	"context"
	"fmt"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
)

type UserService struct {
	repo   domain.UserRepository
	logger logger.Logger
}

func NewUserService(
	repo domain.UserRepository,
	logger logger.Logger,
) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// GetOrCreateFromRemote upserts the local account for an identity
// service profile. Username and email follow the remote profile, so a
// rename upstream lands here on the next request.
func (s *UserService) GetOrCreateFromRemote(ctx context.Context, remote *domain.RemoteUser) (*domain.User, error) {
	if err := remote.Validate(); err != nil {
		return nil, fmt.Errorf("invalid remote user: %w", err)
	}

	user, err := s.repo.Upsert(ctx, &domain.User{
		RemoteID: remote.ID,
		Username: remote.Username,
		Email:    remote.Email,
	})
	if err != nil {
		if _, ok := err.(*domain.ConflictError); ok {
			return nil, err
		}
		s.logger.WithField("remote_id", remote.ID).Error(fmt.Sprintf("Failed to upsert user: %v", err))
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if _, ok := err.(*domain.ErrUserNotFound); ok {
			return nil, err
		}
		s.logger.WithField("username", username).Error(fmt.Sprintf("Failed to get user: %v", err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateSettings changes the user's own preferences.
func (s *UserService) UpdateSettings(ctx context.Context, user *domain.User, notifySelf bool) (*domain.User, error) {
	user.NotifySelf = notifySelf
	if err := s.repo.Update(ctx, user); err != nil {
		if _, ok := err.(*domain.ErrUserNotFound); ok {
			return nil, err
		}
		s.logger.WithField("user_id", user.ID).Error(fmt.Sprintf("Failed to update user: %v", err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes the account and everything it owns.
func (s *UserService) Delete(ctx context.Context, user *domain.User) error {
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		if _, ok := err.(*domain.ErrUserNotFound); ok {
			return err
		}
		s.logger.WithField("user_id", user.ID).Error(fmt.Sprintf("Failed to delete user: %v", err))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
