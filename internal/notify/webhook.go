package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brightcare/booking-engine/pkg/logging"
)

// WebhookSender posts booking events to an external automation endpoint.
type WebhookSender interface {
	Send(ctx context.Context, event string, payload any) error
}

// HTTPWebhookSender posts JSON envelopes over HTTP.
type HTTPWebhookSender struct {
	url    string
	client *http.Client
	logger *logging.Logger
}

// NewHTTPWebhookSender creates a webhook sender. Returns nil when no URL is
// configured, which disables the channel.
func NewHTTPWebhookSender(url string, client *http.Client, logger *logging.Logger) *HTTPWebhookSender {
	if url == "" {
		return nil
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &HTTPWebhookSender{url: url, client: client, logger: logger}
}

type webhookEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Send posts {event, data} to the configured URL. Any non-2xx response is
// an error; retries are the caller's decision.
func (s *HTTPWebhookSender) Send(ctx context.Context, event string, payload any) error {
	body, err := json.Marshal(webhookEnvelope{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("notify: marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify: webhook responded %d", resp.StatusCode)
	}
	return nil
}
