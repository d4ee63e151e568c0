// Package ratelimit caps outgoing alert volume with a Redis-backed token
// bucket shared across alert-service replicas.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const bucketKey = "alert:ratelimit:tokens"

// TokenBucket implements a token bucket rate limiter using Redis.
// Replicas share the bucket through the key; the refill loop runs once
// per replica and is idempotent.
type TokenBucket struct {
	client       *redis.Client
	maxTokens    int
	refillPeriod time.Duration
}

// NewTokenBucket creates a rate limiter allowing maxTokens alerts per
// minute. Callers start the refill with RefillLoop on their service
// context.
func NewTokenBucket(client *redis.Client, maxTokens int) *TokenBucket {
	return &TokenBucket{
		client:       client,
		maxTokens:    maxTokens,
		refillPeriod: 1 * time.Minute,
	}
}

// AllowAlert takes a token, seeding the bucket on first use. SetNX keeps
// the seed atomic across replicas racing on an empty key.
func (tb *TokenBucket) AllowAlert(ctx context.Context) (bool, error) {
	if err := tb.client.SetNX(ctx, bucketKey, tb.maxTokens, 0).Err(); err != nil {
		return false, fmt.Errorf("failed to seed bucket: %w", err)
	}

	tokens, err := tb.client.Decr(ctx, bucketKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to decrement tokens: %w", err)
	}

	if tokens < 0 {
		// Restore the token we tried to take
		tb.client.Incr(ctx, bucketKey)
		return false, nil
	}

	return true, nil
}

// RefillLoop restores the bucket to max each period until the context is
// cancelled.
func (tb *TokenBucket) RefillLoop(ctx context.Context) {
	ticker := time.NewTicker(tb.refillPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := tb.client.Set(ctx, bucketKey, tb.maxTokens, 0).Err(); err != nil {
				fmt.Printf("error refilling token bucket: %v\n", err)
			}
		}
	}
}

// GetTokens returns the current token count (for monitoring).
func (tb *TokenBucket) GetTokens(ctx context.Context) (int, error) {
	tokens, err := tb.client.Get(ctx, bucketKey).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get tokens: %w", err)
	}

	return tokens, nil
}

// Reset resets the bucket to max tokens (for testing).
func (tb *TokenBucket) Reset(ctx context.Context) error {
	return tb.client.Set(ctx, bucketKey, tb.maxTokens, 0).Err()
}
