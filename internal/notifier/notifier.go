// Package notifier delivers parlay alerts to the configured channels.
package notifier

import (
	"context"
	"fmt"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// Notifier sends parlay alerts to one channel.
type Notifier interface {
	// Name identifies the channel in logs.
	Name() string
	// SendAlert delivers one ranked parlay.
	SendAlert(ctx context.Context, p models.RankedParlay) error
}

// Multi fans an alert out to every configured channel. A failure on one
// channel does not block the others.
type Multi struct {
	notifiers []Notifier
}

// NewMulti creates a multi-channel notifier.
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Channels returns the number of configured channels.
func (m *Multi) Channels() int {
	return len(m.notifiers)
}

// SendAlert sends to all channels, reporting how many succeeded.
func (m *Multi) SendAlert(ctx context.Context, p models.RankedParlay) (int, error) {
	if len(m.notifiers) == 0 {
		return 0, fmt.Errorf("no notification channels configured")
	}

	sent := 0
	var lastErr error
	for _, n := range m.notifiers {
		if err := n.SendAlert(ctx, p); err != nil {
			fmt.Printf("❌ %s alert failed: %v\n", n.Name(), err)
			lastErr = err
			continue
		}
		sent++
	}

	if sent == 0 {
		return 0, fmt.Errorf("all channels failed: %w", lastErr)
	}
	return sent, nil
}
