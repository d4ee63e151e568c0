// Package dedup suppresses repeat alerts for equivalent parlays using
// Redis keys with a TTL.
package dedup

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Justraymond99/headcrackbot/pkg/models"
	"github.com/redis/go-redis/v9"
)

// Deduplicator deduplicates parlay alerts using Redis.
type Deduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDeduplicator creates a new deduplicator.
func NewDeduplicator(client *redis.Client, ttlMinutes int) *Deduplicator {
	return &Deduplicator{
		client: client,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// ShouldAlert returns true if an equivalent parlay has not been alerted
// within the TTL window, and reserves the window atomically.
func (d *Deduplicator) ShouldAlert(ctx context.Context, p models.RankedParlay) (bool, error) {
	dedupKey := d.generateDedupKey(p)

	// SetNX both checks and reserves the key in one round trip.
	ok, err := d.client.SetNX(ctx, dedupKey, "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set dedup key: %w", err)
	}

	return ok, nil
}

// generateDedupKey builds a deterministic key from the parlay's leg set.
// Two parlays with the same (game, selection) pairs map to the same key
// regardless of leg order.
func (d *Deduplicator) generateDedupKey(p models.RankedParlay) string {
	pairs := make([]string, 0, len(p.Legs))
	for _, leg := range p.Legs {
		pairs = append(pairs, leg.GameRef+"|"+leg.Selection)
	}
	sort.Strings(pairs)

	hash := sha256.Sum256([]byte(strings.Join(pairs, "||")))
	legsHash := fmt.Sprintf("%x", hash[:8])

	return fmt.Sprintf("alert:dedup:%s:%d:%s", p.Sport, p.NumLegs, legsHash)
}

// Clear removes a dedup entry (for testing).
func (d *Deduplicator) Clear(ctx context.Context, p models.RankedParlay) error {
	return d.client.Del(ctx, d.generateDedupKey(p)).Err()
}
