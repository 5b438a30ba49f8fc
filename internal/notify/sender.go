package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phoneNumber, body string) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, phoneNumber, body string) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, phoneNumber, body string) error {
	return f(ctx, phoneNumber, body)
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger uses slog.Default().
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the message.
func (s *LogSender) Send(_ context.Context, phoneNumber, body string) error {
	s.logger.Info("SMS", "to", phoneNumber, "body", body)
	return nil
}

// WebhookMessage is the JSON body posted to an SMS gateway.
type WebhookMessage struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// WebhookSender posts messages to an SMS gateway over HTTP.
type WebhookSender struct {
	url    string
	client *http.Client
}

// NewWebhookSender creates a sender for the gateway at url.
func NewWebhookSender(url string, timeout time.Duration) *WebhookSender {
	return &WebhookSender{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Send posts the message and treats any non-2xx status as a failure.
func (s *WebhookSender) Send(ctx context.Context, phoneNumber, body string) error {
	payload, err := json.Marshal(WebhookMessage{To: phoneNumber, Body: body})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
