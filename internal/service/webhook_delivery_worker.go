package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
)

// WebhookDeliveryWorker drains the webhook delivery queue. Payloads
// are signed at enqueue time, the worker only posts them. It also
// implements domain.BrokerNotifier so dispatching services can wake it
// ahead of the next poll.
type WebhookDeliveryWorker struct {
	repo         domain.WebhookRepository
	logger       logger.Logger
	httpClient   *http.Client
	pollInterval time.Duration
	batchSize    int
	maxAttempts  int
	cleanupEvery time.Duration
	retention    time.Duration
	lastCleanup  time.Time
	nudge        chan struct{}
}

// Retry delays per the Standard Webhooks spec
var retryDelays = []time.Duration{
	30 * time.Second,
	1 * time.Minute,
	2 * time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	1 * time.Hour,
	2 * time.Hour,
	6 * time.Hour,
	24 * time.Hour,
}

// NewWebhookDeliveryWorker creates a delivery worker. A nil httpClient
// gets a default with a 30 second timeout.
func NewWebhookDeliveryWorker(repo domain.WebhookRepository, logger logger.Logger, httpClient *http.Client) *WebhookDeliveryWorker {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	return &WebhookDeliveryWorker{
		repo:         repo,
		logger:       logger,
		httpClient:   httpClient,
		pollInterval: 10 * time.Second,
		batchSize:    100,
		maxAttempts:  len(retryDelays) + 1,
		cleanupEvery: 1 * time.Hour,
		retention:    7 * 24 * time.Hour,
		nudge:        make(chan struct{}, 1),
	}
}

// Nudge wakes the worker ahead of its next poll. It never blocks, a
// nudge arriving while one is already pending is dropped.
func (w *WebhookDeliveryWorker) Nudge(ctx context.Context) {
	select {
	case w.nudge <- struct{}{}:
	default:
	}
}

// Start runs the delivery loop until ctx is canceled.
func (w *WebhookDeliveryWorker) Start(ctx context.Context) {
	w.logger.Info("Webhook delivery worker started")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Webhook delivery worker stopping...")
			return
		case <-ticker.C:
		case <-w.nudge:
		}
		w.processDeliveries(ctx)
	}
}

// processDeliveries drains due deliveries batch by batch until the
// queue runs dry.
func (w *WebhookDeliveryWorker) processDeliveries(ctx context.Context) {
	w.cleanupOldDeliveries(ctx)

	for {
		deliveries, err := w.repo.NextDeliveries(ctx, w.batchSize)
		if err != nil {
			w.logger.WithField("error", err.Error()).Error("Failed to claim webhook deliveries")
			return
		}
		if len(deliveries) == 0 {
			return
		}

		w.logger.WithField("count", len(deliveries)).Debug("Processing webhook deliveries")

		for _, delivery := range deliveries {
			select {
			case <-ctx.Done():
				return
			default:
				w.processDelivery(ctx, delivery)
			}
		}

		if len(deliveries) < w.batchSize {
			return
		}
	}
}

// cleanupOldDeliveries removes finished deliveries older than the
// retention period. Runs at most once per cleanup interval.
func (w *WebhookDeliveryWorker) cleanupOldDeliveries(ctx context.Context) {
	if time.Since(w.lastCleanup) < w.cleanupEvery {
		return
	}
	w.lastCleanup = time.Now()

	deleted, err := w.repo.CleanupDeliveries(ctx, time.Now().UTC().Add(-w.retention))
	if err != nil {
		w.logger.WithField("error", err.Error()).Error("Failed to cleanup old webhook deliveries")
		return
	}
	if deleted > 0 {
		w.logger.WithField("deleted", deleted).Info("Cleaned up old webhook deliveries")
	}
}

// processDelivery posts a single payload with Standard Webhooks
// headers. The timestamp header repeats the enqueue time the stored
// signature was computed over.
func (w *WebhookDeliveryWorker) processDelivery(ctx context.Context, delivery *domain.WebhookDelivery) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, delivery.URL, bytes.NewReader(delivery.Payload))
	if err != nil {
		w.handleFailure(ctx, delivery, fmt.Sprintf("invalid request: %v", err))
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("webhook-id", delivery.ID)
	req.Header.Set("webhook-timestamp", strconv.FormatInt(delivery.CreatedAt.Unix(), 10))
	req.Header.Set("webhook-signature", delivery.Signature)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.handleFailure(ctx, delivery, err.Error())
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		w.handleSuccess(ctx, delivery, resp.StatusCode)
		return
	}
	w.handleFailure(ctx, delivery, fmt.Sprintf("HTTP %d", resp.StatusCode))
}

// handleSuccess marks a delivery as delivered
func (w *WebhookDeliveryWorker) handleSuccess(ctx context.Context, delivery *domain.WebhookDelivery, statusCode int) {
	if err := w.repo.MarkDelivered(ctx, delivery.ID); err != nil {
		w.logger.WithFields(map[string]interface{}{
			"delivery_id": delivery.ID,
			"error":       err.Error(),
		}).Error("Failed to mark webhook delivery as delivered")
		return
	}

	w.logger.WithFields(map[string]interface{}{
		"delivery_id":     delivery.ID,
		"subscription_id": delivery.SubscriptionID,
		"status_code":     statusCode,
	}).Debug("Webhook delivered")
}

// handleFailure schedules a retry or retires the delivery once its
// attempts are spent
func (w *WebhookDeliveryWorker) handleFailure(ctx context.Context, delivery *domain.WebhookDelivery, errorMsg string) {
	attempts := delivery.Attempts + 1

	if attempts >= w.maxAttempts {
		if err := w.repo.MarkFailed(ctx, delivery.ID, attempts, errorMsg); err != nil {
			w.logger.WithFields(map[string]interface{}{
				"delivery_id": delivery.ID,
				"error":       err.Error(),
			}).Error("Failed to mark webhook delivery as failed")
			return
		}

		w.logger.WithFields(map[string]interface{}{
			"delivery_id":     delivery.ID,
			"subscription_id": delivery.SubscriptionID,
			"attempts":        attempts,
			"error":           errorMsg,
		}).Warn("Webhook delivery permanently failed after max retries")
		return
	}

	delayIndex := attempts - 1
	if delayIndex >= len(retryDelays) {
		delayIndex = len(retryDelays) - 1
	}
	nextAttempt := time.Now().UTC().Add(retryDelays[delayIndex])

	if err := w.repo.ScheduleRetry(ctx, delivery.ID, attempts, nextAttempt, errorMsg); err != nil {
		w.logger.WithFields(map[string]interface{}{
			"delivery_id": delivery.ID,
			"error":       err.Error(),
		}).Error("Failed to schedule webhook delivery retry")
		return
	}

	w.logger.WithFields(map[string]interface{}{
		"delivery_id":     delivery.ID,
		"subscription_id": delivery.SubscriptionID,
		"attempts":        attempts,
		"next_attempt":    nextAttempt.Format(time.RFC3339),
		"error":           errorMsg,
	}).Debug("Webhook delivery failed, scheduled retry")
}
