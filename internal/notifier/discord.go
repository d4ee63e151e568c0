package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// discordMaxLen is Discord's message size limit.
const discordMaxLen = 2000

// DiscordNotifier sends alerts to a Discord channel through a bot session.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordNotifier creates a Discord notifier and opens the gateway
// session.
func NewDiscordNotifier(botToken, channelID string) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord session: %w", err)
	}

	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}, nil
}

func (d *DiscordNotifier) Name() string { return "discord" }

// SendAlert posts a parlay alert to the configured channel.
func (d *DiscordNotifier) SendAlert(ctx context.Context, p models.RankedParlay) error {
	startTime := time.Now()

	message := FormatParlay(p)
	for _, chunk := range splitMessage(message, discordMaxLen-8) {
		if _, err := d.session.ChannelMessageSend(d.channelID, "```"+chunk+"```"); err != nil {
			return fmt.Errorf("failed to send Discord alert: %w", err)
		}
	}

	latency := time.Since(startTime).Milliseconds()
	fmt.Printf("✓ Discord alert sent: sport=%s legs=%d latency=%dms\n", p.Sport, p.NumLegs, latency)

	return nil
}

// Close shuts down the gateway session.
func (d *DiscordNotifier) Close() error {
	return d.session.Close()
}
