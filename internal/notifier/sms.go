package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Justraymond99/headcrackbot/pkg/models"
	"github.com/Justraymond99/headcrackbot/pkg/oddsmath"
)

// SMSNotifier sends short alerts through the Twilio Messages API.
type SMSNotifier struct {
	accountSID string
	authToken  string
	from       string
	to         string
	httpClient *http.Client
}

// NewSMSNotifier creates a new Twilio SMS notifier.
func NewSMSNotifier(accountSID, authToken, from, to string) *SMSNotifier {
	return &SMSNotifier{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *SMSNotifier) Name() string { return "sms" }

// SendAlert sends a condensed one-segment summary. SMS cannot carry the
// full leg breakdown.
func (s *SMSNotifier) SendAlert(ctx context.Context, p models.RankedParlay) error {
	startTime := time.Now()

	body := fmt.Sprintf("%d-leg %s parlay @ %s | EV %+.1f%% | score %.2f | %s",
		p.NumLegs, strings.ToUpper(p.Sport), oddsmath.FormatAmerican(p.CombinedOdds),
		p.ExpectedValue*100, p.Score, p.ConfidenceRating)
	if len(body) > 160 {
		body = body[:157] + "..."
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)

	form := url.Values{}
	form.Set("From", s.from)
	form.Set("To", s.to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Twilio API returned status %d", resp.StatusCode)
	}

	latency := time.Since(startTime).Milliseconds()
	fmt.Printf("✓ SMS alert sent: sport=%s legs=%d latency=%dms\n", p.Sport, p.NumLegs, latency)

	return nil
}
