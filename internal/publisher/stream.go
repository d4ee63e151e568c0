// Package publisher pushes ranked parlays onto Redis streams for the
// downstream alert and broadcast services.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Justraymond99/headcrackbot/pkg/models"
	"github.com/redis/go-redis/v9"
)

// StreamAll is the firehose stream carrying every ranked parlay. Per-sport
// streams use the "parlays.ranked.<sport>" pattern.
const StreamAll = "parlays.ranked"

// StreamPublisher publishes ranked parlays to Redis streams.
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a new stream publisher.
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{
		client: client,
	}
}

// PublishParlay publishes one ranked parlay to both the firehose stream
// and its sport-specific stream.
func (p *StreamPublisher) PublishParlay(ctx context.Context, parlay *models.RankedParlay) error {
	data, err := json.Marshal(parlay)
	if err != nil {
		return fmt.Errorf("marshaling parlay: %w", err)
	}

	values := map[string]interface{}{
		"parlay": string(data),
		"sport":  parlay.Sport,
		"score":  fmt.Sprintf("%.4f", parlay.Score),
	}

	if err := p.xadd(ctx, StreamAll, values); err != nil {
		return err
	}

	sportStream := fmt.Sprintf("%s.%s", StreamAll, parlay.Sport)
	return p.xadd(ctx, sportStream, values)
}

// PublishParlays publishes a ranked batch in order.
func (p *StreamPublisher) PublishParlays(ctx context.Context, parlays []models.RankedParlay) (int, error) {
	published := 0
	for i := range parlays {
		if err := p.PublishParlay(ctx, &parlays[i]); err != nil {
			return published, fmt.Errorf("publish parlay: %w", err)
		}
		published++
	}
	return published, nil
}

func (p *StreamPublisher) xadd(ctx context.Context, stream string, values map[string]interface{}) error {
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: 10000,
		Approx: true,
		Values: values,
	}).Err()
}
