package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/domain/mocks"
)

func setupSubscriptionTest(t *testing.T) (
	*SubscriptionService,
	*mocks.MockSubscriptionRepository,
	*mocks.MockParticipantService,
	*gomock.Controller,
) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockSubscriptionRepository(ctrl)
	mockParticipants := mocks.NewMockParticipantService(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	service := NewSubscriptionService(mockRepo, mockParticipants, mockLogger)
	return service, mockRepo, mockParticipants, ctrl
}

func TestSubscriptionService_SubscribeTracker(t *testing.T) {
	service, mockRepo, mockParticipants, ctrl := setupSubscriptionTest(t)
	defer ctrl.Finish()

	viewer := &domain.User{ID: 3, Username: "alice"}
	tracker := &domain.Tracker{ID: 1, OwnerID: 3, Name: "myproject"}
	participant := &domain.Participant{ID: 7, Type: domain.ParticipantTypeUser, UserID: 3}

	t.Run("subscribes the viewer's participant", func(t *testing.T) {
		trackerID := int64(1)
		expected := &domain.TicketSubscription{ID: 5, ParticipantID: 7, TrackerID: &trackerID}
		mockParticipants.EXPECT().ForUser(gomock.Any(), int64(3)).Return(participant, nil)
		mockRepo.EXPECT().SubscribeTracker(gomock.Any(), int64(7), int64(1)).Return(expected, nil)

		sub, err := service.SubscribeTracker(context.Background(), viewer, tracker)
		require.NoError(t, err)
		assert.Equal(t, expected, sub)
	})

	t.Run("rejects anonymous viewers", func(t *testing.T) {
		_, err := service.SubscribeTracker(context.Background(), nil, tracker)
		assert.Equal(t, domain.ErrAccessDenied, err)
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		mockParticipants.EXPECT().ForUser(gomock.Any(), int64(3)).Return(participant, nil)
		mockRepo.EXPECT().SubscribeTracker(gomock.Any(), int64(7), int64(1)).
			Return(nil, errors.New("connection refused"))

		_, err := service.SubscribeTracker(context.Background(), viewer, tracker)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to subscribe to tracker")
	})
}

func TestSubscriptionService_SubscribeTicket(t *testing.T) {
	service, mockRepo, mockParticipants, ctrl := setupSubscriptionTest(t)
	defer ctrl.Finish()

	viewer := &domain.User{ID: 3, Username: "alice"}
	tracker := &domain.Tracker{ID: 1, OwnerID: 3, Name: "myproject"}
	ticket := &domain.Ticket{ID: 10, TrackerID: 1, ScopedID: 4}
	participant := &domain.Participant{ID: 7, Type: domain.ParticipantTypeUser, UserID: 3}

	t.Run("subscribes at ticket scope", func(t *testing.T) {
		ticketID := int64(10)
		expected := &domain.TicketSubscription{ID: 6, ParticipantID: 7, TicketID: &ticketID}
		mockParticipants.EXPECT().ForUser(gomock.Any(), int64(3)).Return(participant, nil)
		mockRepo.EXPECT().SubscribeTicket(gomock.Any(), int64(7), int64(10)).Return(expected, nil)

		sub, err := service.SubscribeTicket(context.Background(), viewer, tracker, ticket)
		require.NoError(t, err)
		assert.Equal(t, expected, sub)
	})

	t.Run("rejects anonymous viewers", func(t *testing.T) {
		_, err := service.SubscribeTicket(context.Background(), nil, tracker, ticket)
		assert.Equal(t, domain.ErrAccessDenied, err)
	})
}

func TestSubscriptionService_UnsubscribeTicket(t *testing.T) {
	service, mockRepo, mockParticipants, ctrl := setupSubscriptionTest(t)
	defer ctrl.Finish()

	viewer := &domain.User{ID: 3, Username: "alice"}
	tracker := &domain.Tracker{ID: 1, OwnerID: 3, Name: "myproject"}
	ticket := &domain.Ticket{ID: 10, TrackerID: 1, ScopedID: 4}
	participant := &domain.Participant{ID: 7, Type: domain.ParticipantTypeUser, UserID: 3}

	t.Run("removes the subscription", func(t *testing.T) {
		mockParticipants.EXPECT().ForUser(gomock.Any(), int64(3)).Return(participant, nil)
		mockRepo.EXPECT().UnsubscribeTicket(gomock.Any(), int64(7), int64(10)).Return(nil)

		err := service.UnsubscribeTicket(context.Background(), viewer, tracker, ticket)
		assert.NoError(t, err)
	})

	t.Run("passes through not found", func(t *testing.T) {
		notFound := &domain.ErrSubscriptionNotFound{Message: "subscription not found"}
		mockParticipants.EXPECT().ForUser(gomock.Any(), int64(3)).Return(participant, nil)
		mockRepo.EXPECT().UnsubscribeTicket(gomock.Any(), int64(7), int64(10)).Return(notFound)

		err := service.UnsubscribeTicket(context.Background(), viewer, tracker, ticket)
		assert.Equal(t, notFound, err)
	})
}

func TestSubscriptionService_UnsubscribeParticipant(t *testing.T) {
	service, mockRepo, _, ctrl := setupSubscriptionTest(t)
	defer ctrl.Finish()

	participant := &domain.Participant{ID: 7, Type: domain.ParticipantTypeEmail, Email: "bob@example.org"}
	tracker := &domain.Tracker{ID: 1, OwnerID: 3, Name: "myproject"}
	ticket := &domain.Ticket{ID: 10, TrackerID: 1, ScopedID: 4}

	t.Run("drops the ticket scope when a ticket is named", func(t *testing.T) {
		mockRepo.EXPECT().UnsubscribeTicket(gomock.Any(), int64(7), int64(10)).Return(nil)

		err := service.UnsubscribeParticipant(context.Background(), participant, tracker, ticket)
		assert.NoError(t, err)
	})

	t.Run("drops the tracker scope otherwise", func(t *testing.T) {
		mockRepo.EXPECT().UnsubscribeTracker(gomock.Any(), int64(7), int64(1)).Return(nil)

		err := service.UnsubscribeParticipant(context.Background(), participant, tracker, nil)
		assert.NoError(t, err)
	})
}

func TestSubscriptionService_IsSubscribed(t *testing.T) {
	service, mockRepo, _, ctrl := setupSubscriptionTest(t)
	defer ctrl.Finish()

	notFound := &domain.ErrSubscriptionNotFound{Message: "subscription not found"}

	t.Run("true on a ticket-scope subscription", func(t *testing.T) {
		ticketID := int64(10)
		mockRepo.EXPECT().GetForTicket(gomock.Any(), int64(7), int64(10)).
			Return(&domain.TicketSubscription{ID: 6, ParticipantID: 7, TicketID: &ticketID}, nil)

		subscribed, err := service.IsSubscribed(context.Background(), 7, 1, 10)
		require.NoError(t, err)
		assert.True(t, subscribed)
	})

	t.Run("falls back to the tracker scope", func(t *testing.T) {
		trackerID := int64(1)
		mockRepo.EXPECT().GetForTicket(gomock.Any(), int64(7), int64(10)).Return(nil, notFound)
		mockRepo.EXPECT().GetForTracker(gomock.Any(), int64(7), int64(1)).
			Return(&domain.TicketSubscription{ID: 5, ParticipantID: 7, TrackerID: &trackerID}, nil)

		subscribed, err := service.IsSubscribed(context.Background(), 7, 1, 10)
		require.NoError(t, err)
		assert.True(t, subscribed)
	})

	t.Run("false when neither scope matches", func(t *testing.T) {
		mockRepo.EXPECT().GetForTicket(gomock.Any(), int64(7), int64(10)).Return(nil, notFound)
		mockRepo.EXPECT().GetForTracker(gomock.Any(), int64(7), int64(1)).Return(nil, notFound)

		subscribed, err := service.IsSubscribed(context.Background(), 7, 1, 10)
		require.NoError(t, err)
		assert.False(t, subscribed)
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		mockRepo.EXPECT().GetForTicket(gomock.Any(), int64(7), int64(10)).
			Return(nil, errors.New("connection refused"))

		_, err := service.IsSubscribed(context.Background(), 7, 1, 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check subscription")
	})
}
