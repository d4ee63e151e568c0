// Package oddsapi fetches market prices from The Odds API v4 and converts
// them into game records.
package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const BaseURL = "https://api.the-odds-api.com/v4"

// Default market sets requested per call. Props need the per-event
// endpoint, so they are fetched separately.
var (
	TeamMarkets = []string{"h2h", "spreads", "totals"}
	PropMarkets = []string{"player_points", "player_rebounds", "player_assists", "player_threes"}
)

// Client handles The Odds API requests.
type Client struct {
	apiKey     string
	httpClient *http.Client

	// RequestsRemaining mirrors the x-requests-remaining response header
	// after the most recent call. Zero until the first request.
	RequestsRemaining int
}

// New creates a new Odds API client.
func New(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchOdds fetches upcoming events with team markets for a sport key
// such as "basketball_nba".
func (c *Client) FetchOdds(ctx context.Context, sportKey string) ([]Event, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds", BaseURL, sportKey)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("markets", strings.Join(TeamMarkets, ","))
	params.Set("oddsFormat", "american")

	var events []Event
	if err := c.fetch(ctx, endpoint+"?"+params.Encode(), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// FetchEventProps fetches prop markets for a single event.
func (c *Client) FetchEventProps(ctx context.Context, sportKey, eventID string, markets []string) (*Event, error) {
	if len(markets) == 0 {
		markets = PropMarkets
	}

	endpoint := fmt.Sprintf("%s/sports/%s/events/%s/odds", BaseURL, sportKey, eventID)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("markets", strings.Join(markets, ","))
	params.Set("oddsFormat", "american")

	var event Event
	if err := c.fetch(ctx, endpoint+"?"+params.Encode(), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) fetch(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
		fmt.Sscanf(remaining, "%d", &c.RequestsRemaining)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("odds API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
