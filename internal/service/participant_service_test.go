package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/domain/mocks"
)

func TestParticipantService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockParticipantRepository(ctrl)
	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	service := NewParticipantService(mockRepo, mockUserRepo, mockLogger)

	t.Run("returns the participant", func(t *testing.T) {
		expected := &domain.Participant{
			ID:       7,
			Type:     domain.ParticipantTypeUser,
			UserID:   3,
			Username: "alice",
		}
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(expected, nil)
		mockLogger.EXPECT().Error(gomock.Any()).Times(0)

		participant, err := service.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, expected, participant)
	})

	t.Run("passes through not found", func(t *testing.T) {
		notFound := &domain.ErrParticipantNotFound{Message: "participant not found"}
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, notFound)

		participant, err := service.GetByID(context.Background(), 99)
		assert.Nil(t, participant)
		assert.Equal(t, notFound, err)
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(nil, errors.New("connection refused"))
		mockLogger.EXPECT().WithField("participant_id", int64(7)).Return(mockLogger)
		mockLogger.EXPECT().Error(gomock.Any())

		participant, err := service.GetByID(context.Background(), 7)
		assert.Nil(t, participant)
		assert.Contains(t, err.Error(), "failed to get participant")
	})
}

func TestParticipantService_ForUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockParticipantRepository(ctrl)
	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	service := NewParticipantService(mockRepo, mockUserRepo, mockLogger)

	t.Run("upserts the user participant", func(t *testing.T) {
		expected := &domain.Participant{
			ID:       12,
			Type:     domain.ParticipantTypeUser,
			UserID:   3,
			Username: "alice",
		}
		mockRepo.EXPECT().UpsertUser(gomock.Any(), int64(3)).Return(expected, nil)
		mockLogger.EXPECT().Error(gomock.Any()).Times(0)

		participant, err := service.ForUser(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, expected, participant)
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		mockRepo.EXPECT().UpsertUser(gomock.Any(), int64(3)).Return(nil, errors.New("connection refused"))
		mockLogger.EXPECT().WithField("user_id", int64(3)).Return(mockLogger)
		mockLogger.EXPECT().Error(gomock.Any())

		participant, err := service.ForUser(context.Background(), 3)
		assert.Nil(t, participant)
		assert.Contains(t, err.Error(), "failed to upsert user participant")
	})
}

func TestParticipantService_ForEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockParticipantRepository(ctrl)
	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	service := NewParticipantService(mockRepo, mockUserRepo, mockLogger)

	t.Run("resolves a registered address to the user participant", func(t *testing.T) {
		user := &domain.User{ID: 3, Username: "alice", Email: "alice@example.org"}
		expected := &domain.Participant{
			ID:       12,
			Type:     domain.ParticipantTypeUser,
			UserID:   3,
			Username: "alice",
		}
		mockUserRepo.EXPECT().GetByEmail(gomock.Any(), "alice@example.org").Return(user, nil)
		mockRepo.EXPECT().UpsertUser(gomock.Any(), int64(3)).Return(expected, nil)
		mockLogger.EXPECT().Error(gomock.Any()).Times(0)

		participant, err := service.ForEmail(context.Background(), "alice@example.org", "Alice")
		require.NoError(t, err)
		assert.Equal(t, domain.ParticipantTypeUser, participant.Type)
		assert.Equal(t, int64(3), participant.UserID)
	})

	t.Run("upserts an email participant for unknown addresses", func(t *testing.T) {
		expected := &domain.Participant{
			ID:        15,
			Type:      domain.ParticipantTypeEmail,
			Email:     "visitor@example.org",
			EmailName: "Visitor",
			CreatedAt: time.Now().UTC(),
		}
		mockUserRepo.EXPECT().GetByEmail(gomock.Any(), "visitor@example.org").
			Return(nil, &domain.ErrUserNotFound{Message: "user not found"})
		mockRepo.EXPECT().UpsertEmail(gomock.Any(), "visitor@example.org", "Visitor").Return(expected, nil)
		mockLogger.EXPECT().Error(gomock.Any()).Times(0)

		participant, err := service.ForEmail(context.Background(), "visitor@example.org", "Visitor")
		require.NoError(t, err)
		assert.Equal(t, expected, participant)
	})

	t.Run("wraps user lookup errors", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByEmail(gomock.Any(), "visitor@example.org").
			Return(nil, errors.New("connection refused"))
		mockLogger.EXPECT().WithField("email", "visitor@example.org").Return(mockLogger)
		mockLogger.EXPECT().Error(gomock.Any())

		participant, err := service.ForEmail(context.Background(), "visitor@example.org", "Visitor")
		assert.Nil(t, participant)
		assert.Contains(t, err.Error(), "failed to look up user by email")
	})

	t.Run("wraps upsert errors", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByEmail(gomock.Any(), "visitor@example.org").
			Return(nil, &domain.ErrUserNotFound{Message: "user not found"})
		mockRepo.EXPECT().UpsertEmail(gomock.Any(), "visitor@example.org", "Visitor").
			Return(nil, errors.New("connection refused"))
		mockLogger.EXPECT().WithField("email", "visitor@example.org").Return(mockLogger)
		mockLogger.EXPECT().Error(gomock.Any())

		participant, err := service.ForEmail(context.Background(), "visitor@example.org", "Visitor")
		assert.Nil(t, participant)
		assert.Contains(t, err.Error(), "failed to upsert email participant")
	})
}

func TestParticipantService_ForExternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockParticipantRepository(ctrl)
	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	service := NewParticipantService(mockRepo, mockUserRepo, mockLogger)

	t.Run("upserts the external participant", func(t *testing.T) {
		expected := &domain.Participant{
			ID:          21,
			Type:        domain.ParticipantTypeExternal,
			ExternalID:  "gitstub:jdoe",
			ExternalURL: "https://gitstub.example/jdoe",
		}
		mockRepo.EXPECT().UpsertExternal(gomock.Any(), "gitstub:jdoe", "https://gitstub.example/jdoe").
			Return(expected, nil)
		mockLogger.EXPECT().Error(gomock.Any()).Times(0)

		participant, err := service.ForExternal(context.Background(), "gitstub:jdoe", "https://gitstub.example/jdoe")
		require.NoError(t, err)
		assert.Equal(t, expected, participant)
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		mockRepo.EXPECT().UpsertExternal(gomock.Any(), "gitstub:jdoe", "").
			Return(nil, errors.New("connection refused"))
		mockLogger.EXPECT().WithField("external_id", "gitstub:jdoe").Return(mockLogger)
		mockLogger.EXPECT().Error(gomock.Any())

		participant, err := service.ForExternal(context.Background(), "gitstub:jdoe", "")
		assert.Nil(t, participant)
		assert.Contains(t, err.Error(), "failed to upsert external participant")
	})
}
