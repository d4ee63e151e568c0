package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// SlackNotifier sends alerts to Slack via webhook.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlackNotifier creates a new Slack notifier.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *SlackNotifier) Name() string { return "slack" }

// SendAlert sends a parlay alert to Slack.
func (s *SlackNotifier) SendAlert(ctx context.Context, p models.RankedParlay) error {
	startTime := time.Now()

	payload := map[string]interface{}{
		"text": FormatParlay(p),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.webhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Slack alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack webhook returned status %d", resp.StatusCode)
	}

	latency := time.Since(startTime).Milliseconds()
	fmt.Printf("✓ Slack alert sent: sport=%s legs=%d latency=%dms\n", p.Sport, p.NumLegs, latency)

	return nil
}

// SendStartupNotification posts a startup banner to the webhook.
func (s *SlackNotifier) SendStartupNotification(ctx context.Context) error {
	if s.webhookURL == "" {
		return fmt.Errorf("no webhook URL configured")
	}

	message := fmt.Sprintf(
		"🚀 *Parlay Alert Service Active*\n\n"+
			"✅ Monitoring ranked parlay streams\n"+
			"_Started: %s_",
		time.Now().Format("2006-01-02 15:04:05 MST"),
	)

	payload := map[string]interface{}{
		"text": message,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.webhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}
