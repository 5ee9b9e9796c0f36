package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tracknest/tracknest/pkg/logger"
)

// HTTPBrokerNotifier implements domain.BrokerNotifier by POSTing an
// empty request to the delivery worker's wakeup endpoint. The worker
// reads pending deliveries from the queue itself, so the nudge carries
// no payload.
type HTTPBrokerNotifier struct {
	url    string
	client *http.Client
	logger logger.Logger
}

func NewHTTPBrokerNotifier(url string, logger logger.Logger) *HTTPBrokerNotifier {
	return &HTTPBrokerNotifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		logger: logger,
	}
}

func (n *HTTPBrokerNotifier) Nudge(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, nil)
	if err != nil {
		n.logger.WithField("broker_url", n.url).Error(fmt.Sprintf("Failed to build broker nudge request: %v", err))
		return
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.WithField("broker_url", n.url).Error(fmt.Sprintf("Failed to nudge webhooks broker: %v", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		n.logger.WithField("broker_url", n.url).Error(fmt.Sprintf("Webhooks broker nudge returned status %d", resp.StatusCode))
	}
}
