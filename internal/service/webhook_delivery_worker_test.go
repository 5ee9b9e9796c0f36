package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/domain/mocks"
	pkgmocks "github.com/tracknest/tracknest/pkg/mocks"
)

func setupDeliveryWorkerTest(t *testing.T) (*WebhookDeliveryWorker, *mocks.MockWebhookRepository, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	mockRepo := mocks.NewMockWebhookRepository(ctrl)
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().WithFields(gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	worker := NewWebhookDeliveryWorker(mockRepo, mockLogger, nil)
	// Cleanup ran just now as far as the worker is concerned, subtests
	// opt back in by zeroing lastCleanup.
	worker.lastCleanup = time.Now()
	return worker, mockRepo, ctrl
}

func pendingDelivery(url string) *domain.WebhookDelivery {
	return &domain.WebhookDelivery{
		ID:             "0d04b3b8-5410-4e2c-9e33-1f9e4c1fa9a5",
		SubscriptionID: 42,
		Event:          domain.WebhookTicketCreated,
		URL:            url,
		Payload:        []byte(`{"id":7,"title":"Crash on start"}`),
		Signature:      "v1,c2lnbmF0dXJl",
		Status:         domain.WebhookDeliveryPending,
		Attempts:       0,
		CreatedAt:      time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC),
	}
}

func TestNewWebhookDeliveryWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockWebhookRepository(ctrl)
	mockLogger := pkgmocks.NewMockLogger(ctrl)

	t.Run("creates worker with provided HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 45 * time.Second}
		worker := NewWebhookDeliveryWorker(mockRepo, mockLogger, customClient)

		assert.NotNil(t, worker)
		assert.Equal(t, customClient, worker.httpClient)
		assert.Equal(t, 10*time.Second, worker.pollInterval)
		assert.Equal(t, 100, worker.batchSize)
		assert.Equal(t, len(retryDelays)+1, worker.maxAttempts)
	})

	t.Run("creates worker with default HTTP client when nil provided", func(t *testing.T) {
		worker := NewWebhookDeliveryWorker(mockRepo, mockLogger, nil)

		assert.NotNil(t, worker.httpClient)
		assert.Equal(t, 30*time.Second, worker.httpClient.Timeout)
	})
}

func TestWebhookDeliveryWorker_processDeliveries(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers a pending payload with Standard Webhooks headers", func(t *testing.T) {
		worker, mockRepo, ctrl := setupDeliveryWorkerTest(t)
		defer ctrl.Finish()

		var gotBody []byte
		var gotHeaders http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			gotHeaders = r.Header.Clone()
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		delivery := pendingDelivery(srv.URL)
		mockRepo.EXPECT().NextDeliveries(ctx, 100).Return([]*domain.WebhookDelivery{delivery}, nil)
		mockRepo.EXPECT().MarkDelivered(ctx, delivery.ID).Return(nil)

		worker.processDeliveries(ctx)

		assert.Equal(t, delivery.Payload, gotBody)
		assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
		assert.Equal(t, delivery.ID, gotHeaders.Get("webhook-id"))
		assert.Equal(t, "1714645800", gotHeaders.Get("webhook-timestamp"))
		assert.Equal(t, delivery.Signature, gotHeaders.Get("webhook-signature"))
	})

	t.Run("schedules a retry when the endpoint errors", func(t *testing.T) {
		worker, mockRepo, ctrl := setupDeliveryWorkerTest(t)
		defer ctrl.Finish()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		delivery := pendingDelivery(srv.URL)
		mockRepo.EXPECT().NextDeliveries(ctx, 100).Return([]*domain.WebhookDelivery{delivery}, nil)

		var nextAttempt time.Time
		mockRepo.EXPECT().ScheduleRetry(ctx, delivery.ID, 1, gomock.Any(), "HTTP 503").
			DoAndReturn(func(ctx context.Context, deliveryID string, attempts int, next time.Time, lastError string) error {
				nextAttempt = next
				return nil
			})

		worker.processDeliveries(ctx)

		assert.WithinDuration(t, time.Now().Add(retryDelays[0]), nextAttempt, 5*time.Second)
	})

	t.Run("schedules a retry when the endpoint is unreachable", func(t *testing.T) {
		worker, mockRepo, ctrl := setupDeliveryWorkerTest(t)
		defer ctrl.Finish()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		delivery := pendingDelivery(srv.URL)
		mockRepo.EXPECT().NextDeliveries(ctx, 100).Return([]*domain.WebhookDelivery{delivery}, nil)

		var lastError string
		mockRepo.EXPECT().ScheduleRetry(ctx, delivery.ID, 1, gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, deliveryID string, attempts int, next time.Time, errMsg string) error {
				lastError = errMsg
				return nil
			})

		worker.processDeliveries(ctx)

		assert.NotEmpty(t, lastError)
	})

	t.Run("retires a delivery after the last attempt", func(t *testing.T) {
		worker, mockRepo, ctrl := setupDeliveryWorkerTest(t)
		defer ctrl.Finish()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		delivery := pendingDelivery(srv.URL)
		delivery.Attempts = worker.maxAttempts - 1

		mockRepo.EXPECT().NextDeliveries(ctx, 100).Return([]*domain.WebhookDelivery{delivery}, nil)
		mockRepo.EXPECT().MarkFailed(ctx, delivery.ID, worker.maxAttempts, "HTTP 500").Return(nil)

		worker.processDeliveries(ctx)
	})

	t.Run("a claim error stops the batch", func(t *testing.T) {
		worker, mockRepo, ctrl := setupDeliveryWorkerTest(t)
		defer ctrl.Finish()

		mockRepo.EXPECT().NextDeliveries(ctx, 100).Return(nil, errors.New("database error"))

		worker.processDeliveries(ctx)
	})

	t.Run("drains full batches until the queue runs dry", func(t *testing.T) {
		worker, mockRepo, ctrl := setupDeliveryWorkerTest(t)
		defer ctrl.Finish()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		worker.batchSize = 1
		delivery := pendingDelivery(srv.URL)

		mockRepo.EXPECT().NextDeliveries(ctx, 1).Return([]*domain.WebhookDelivery{delivery}, nil)
		mockRepo.EXPECT().MarkDelivered(ctx, delivery.ID).Return(nil)
		mockRepo.EXPECT().NextDeliveries(ctx, 1).Return(nil, nil)

		worker.processDeliveries(ctx)
	})

	t.Run("cleanup runs at most once per interval", func(t *testing.T) {
		worker, mockRepo, ctrl := setupDeliveryWorkerTest(t)
		defer ctrl.Finish()

		worker.lastCleanup = time.Time{}

		mockRepo.EXPECT().CleanupDeliveries(ctx, gomock.Any()).Return(int64(3), nil).Times(1)
		mockRepo.EXPECT().NextDeliveries(ctx, 100).Return(nil, nil).Times(2)

		worker.processDeliveries(ctx)
		worker.processDeliveries(ctx)
	})
}

func TestWebhookDeliveryWorker_Start(t *testing.T) {
	t.Run("stops when context is cancelled", func(t *testing.T) {
		worker, mockRepo, ctrl := setupDeliveryWorkerTest(t)
		defer ctrl.Finish()

		worker.pollInterval = 20 * time.Millisecond
		mockRepo.EXPECT().NextDeliveries(gomock.Any(), 100).Return(nil, nil).AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			worker.Start(ctx)
			done <- true
		}()

		time.Sleep(60 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Worker did not stop in time")
		}
	})

	t.Run("a nudge wakes the worker ahead of the poll interval", func(t *testing.T) {
		worker, mockRepo, ctrl := setupDeliveryWorkerTest(t)
		defer ctrl.Finish()

		worker.pollInterval = 1 * time.Hour

		polled := make(chan struct{}, 1)
		mockRepo.EXPECT().NextDeliveries(gomock.Any(), 100).
			DoAndReturn(func(ctx context.Context, limit int) ([]*domain.WebhookDelivery, error) {
				select {
				case polled <- struct{}{}:
				default:
				}
				return nil, nil
			}).AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan bool)
		go func() {
			worker.Start(ctx)
			done <- true
		}()

		worker.Nudge(ctx)

		select {
		case <-polled:
		case <-time.After(2 * time.Second):
			t.Fatal("Nudge did not wake the worker")
		}

		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Worker did not stop in time")
		}
	})
}

func TestWebhookDeliveryWorker_Nudge(t *testing.T) {
	worker, _, ctrl := setupDeliveryWorkerTest(t)
	defer ctrl.Finish()

	// Repeated nudges without a running loop must never block.
	require.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			worker.Nudge(context.Background())
		}
	})
}
