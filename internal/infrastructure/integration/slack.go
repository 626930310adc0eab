package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kioskcrm/backend/internal/infrastructure/config"
)

// SlackMessage is the incoming-webhook payload
type SlackMessage struct {
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
}

// SlackClient posts messages to an incoming webhook
type SlackClient struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlackClient creates a Slack webhook client
func NewSlackClient(cfg config.SlackConfig) (*SlackClient, error) {
	if cfg.WebhookURL == "" {
		return nil, fmt.Errorf("%w: slack webhook url is empty", ErrNotConfigured)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SlackClient{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Post sends msg. An empty channel posts to the webhook's default channel.
func (c *SlackClient) Post(ctx context.Context, msg SlackMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("slack: failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: slack: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: slack: HTTP %d: %s", ErrRequestFailed, resp.StatusCode, bytes.TrimSpace(respBody))
	}
	return nil
}
