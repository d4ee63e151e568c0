// Package poller refreshes market prices for each tracked sport on a
// fixed interval.
package poller

import (
	"context"
	"log"
	"time"

	"github.com/Justraymond99/headcrackbot/internal/providers/oddsapi"
	"github.com/Justraymond99/headcrackbot/internal/store"
)

// SportPoller polls The Odds API for a single sport and keeps the games
// table current.
type SportPoller struct {
	sportKey     string
	sport        string
	client       *oddsapi.Client
	store        *store.Store
	pollInterval time.Duration

	// Props are only fetched for games starting within this window; each
	// prop fetch is a separate metered API call.
	propWindow time.Duration
}

// NewSportPoller creates a poller for one sport. sportKey is the vendor
// key ("basketball_nba"); sport is our short name ("nba").
func NewSportPoller(sportKey, sport string, client *oddsapi.Client, st *store.Store, pollInterval time.Duration) *SportPoller {
	return &SportPoller{
		sportKey:     sportKey,
		sport:        sport,
		client:       client,
		store:        st,
		pollInterval: pollInterval,
		propWindow:   12 * time.Hour,
	}
}

// Run starts the polling loop for this sport.
func (p *SportPoller) Run(ctx context.Context) {
	log.Printf("[%s] Starting poller (interval %s)", p.sport, p.pollInterval)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	p.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Stopping poller", p.sport)
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce performs one polling cycle.
func (p *SportPoller) pollOnce(ctx context.Context) {
	log.Printf("[%s] Fetching odds", p.sport)

	events, err := p.client.FetchOdds(ctx, p.sportKey)
	if err != nil {
		log.Printf("[%s] Error fetching odds: %v", p.sport, err)
		return
	}

	log.Printf("[%s] Found %d events (quota remaining: %d)", p.sport, len(events), p.client.RequestsRemaining)

	stored := 0
	for _, event := range events {
		game := oddsapi.ParseEvent(event, p.sport)

		if time.Until(game.GameDate) < p.propWindow {
			propEvent, err := p.client.FetchEventProps(ctx, p.sportKey, event.ID, nil)
			if err != nil {
				log.Printf("[%s] Error fetching props for %s: %v", p.sport, event.ID, err)
			} else {
				game.Props = oddsapi.ParseProps(propEvent)
			}
		}

		if err := p.store.UpsertGame(ctx, &game); err != nil {
			log.Printf("[%s] Error storing game %s: %v", p.sport, game.GameRef, err)
			continue
		}
		stored++
	}

	log.Printf("[%s] Stored %d/%d games", p.sport, stored, len(events))

	if n, err := p.store.MarkStaleGames(ctx); err != nil {
		log.Printf("[%s] Error marking stale games: %v", p.sport, err)
	} else if n > 0 {
		log.Printf("[%s] Marked %d games live", p.sport, n)
	}
}
