package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Justraymond99/headcrackbot/internal/consumer"
	"github.com/Justraymond99/headcrackbot/internal/dedup"
	"github.com/Justraymond99/headcrackbot/internal/filter"
	"github.com/Justraymond99/headcrackbot/internal/notifier"
	"github.com/Justraymond99/headcrackbot/internal/publisher"
	"github.com/Justraymond99/headcrackbot/internal/ratelimit"
)

func main() {
	fmt.Println("=== Headcrack Alert Service ===")

	// .env is optional; real deployments use the environment
	godotenv.Load()

	config := loadConfig()

	// Connect to Redis
	redisOpts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		fmt.Printf("❌ Failed to parse Redis URL: %v\n", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fmt.Printf("❌ Failed to connect to Redis: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Connected to Redis")

	// Build notification channels from whatever is configured
	multi, closers := buildNotifiers(config)
	defer func() {
		for _, close := range closers {
			close()
		}
	}()

	if multi.Channels() == 0 {
		fmt.Println("⚠️  WARNING: no notification channels configured - alerts will be logged only")
	} else {
		fmt.Printf("✓ %d notification channel(s) configured\n", multi.Channels())
	}

	streamConsumer := consumer.NewStreamConsumer(redisClient, config.ConsumerID, config.GroupName)
	alertFilter := filter.NewFilter(config.MinScore, config.MinExpectedValue, config.MaxLegs)
	deduplicator := dedup.NewDeduplicator(redisClient, config.DedupTTLMinutes)
	rateLimiter := ratelimit.NewTokenBucket(redisClient, config.AlertRateLimit)

	fmt.Printf("✓ Alert Service configured:\n")
	fmt.Printf("  Min Score: %.2f\n", config.MinScore)
	fmt.Printf("  Min EV: %.2f\n", config.MinExpectedValue)
	fmt.Printf("  Rate Limit: %d alerts/min\n", config.AlertRateLimit)
	fmt.Printf("  Dedup TTL: %d minutes\n", config.DedupTTLMinutes)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	alertCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go rateLimiter.RefillLoop(alertCtx)

	var stats alertStats

	errChan := make(chan error, 1)
	go func() {
		errChan <- processAlerts(alertCtx, streamConsumer, alertFilter, deduplicator, rateLimiter, multi, &stats)
	}()

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-alertCtx.Done():
				return
			case <-ticker.C:
				fmt.Printf("📊 Metrics: sent=%d filtered=%d duplicate=%d rate_limited=%d\n",
					atomic.LoadInt64(&stats.sent),
					atomic.LoadInt64(&stats.filtered),
					atomic.LoadInt64(&stats.duplicate),
					atomic.LoadInt64(&stats.rateLimited))
			}
		}
	}()

	fmt.Println("✓ Alert Service started - monitoring ranked parlays")

	select {
	case sig := <-sigChan:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			fmt.Printf("❌ Alert processor error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("🛑 Shutting down gracefully...")

	if err := redisClient.Close(); err != nil {
		fmt.Printf("⚠️  Error closing Redis: %v\n", err)
	}

	fmt.Println("✓ Shutdown complete")
}

type alertStats struct {
	sent        int64
	filtered    int64
	duplicate   int64
	rateLimited int64
}

// buildNotifiers assembles the channels present in the environment.
func buildNotifiers(config Config) (*notifier.Multi, []func() error) {
	var channels []notifier.Notifier
	var closers []func() error

	if config.TelegramBotToken != "" && config.TelegramChatID != "" {
		channels = append(channels, notifier.NewTelegramNotifier(config.TelegramBotToken, config.TelegramChatID))
		fmt.Println("✓ Telegram channel enabled")
	}

	if config.SlackWebhookURL != "" {
		slack := notifier.NewSlackNotifier(config.SlackWebhookURL)
		channels = append(channels, slack)
		fmt.Println("✓ Slack channel enabled")

		if err := slack.SendStartupNotification(context.Background()); err != nil {
			fmt.Printf("⚠️  Slack startup notification failed: %v\n", err)
		}
	}

	if config.DiscordBotToken != "" && config.DiscordChannelID != "" {
		discord, err := notifier.NewDiscordNotifier(config.DiscordBotToken, config.DiscordChannelID)
		if err != nil {
			fmt.Printf("⚠️  Discord channel disabled: %v\n", err)
		} else {
			channels = append(channels, discord)
			closers = append(closers, discord.Close)
			fmt.Println("✓ Discord channel enabled")
		}
	}

	if config.TwilioAccountSID != "" && config.TwilioAuthToken != "" && config.SMSTo != "" {
		channels = append(channels, notifier.NewSMSNotifier(
			config.TwilioAccountSID, config.TwilioAuthToken, config.SMSFrom, config.SMSTo))
		fmt.Println("✓ SMS channel enabled")
	}

	return notifier.NewMulti(channels...), closers
}

// processAlerts consumes ranked parlays and fans qualifying ones out to
// the notification channels.
func processAlerts(
	ctx context.Context,
	streamConsumer *consumer.StreamConsumer,
	alertFilter *filter.Filter,
	deduplicator *dedup.Deduplicator,
	rateLimiter *ratelimit.TokenBucket,
	multi *notifier.Multi,
	stats *alertStats,
) error {
	messageCh, errorCh := streamConsumer.ConsumeStream(ctx, publisher.StreamAll)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-errorCh:
			if err != nil {
				fmt.Printf("stream error: %v\n", err)
			}

		case msg, ok := <-messageCh:
			if !ok {
				return nil
			}

			p := msg.Parlay

			// Filter check
			shouldAlert, reason := alertFilter.ShouldAlert(p)
			if !shouldAlert {
				fmt.Printf("⊘ Filtered %d-leg %s parlay: %s\n", p.NumLegs, p.Sport, reason)
				atomic.AddInt64(&stats.filtered, 1)
				streamConsumer.AckMessage(ctx, msg.StreamKey, msg.ID)
				continue
			}

			// Deduplication check
			shouldAlert, err := deduplicator.ShouldAlert(ctx, p)
			if err != nil {
				fmt.Printf("error checking dedup: %v\n", err)
			}
			if !shouldAlert {
				fmt.Printf("⊘ Duplicate %d-leg %s parlay\n", p.NumLegs, p.Sport)
				atomic.AddInt64(&stats.duplicate, 1)
				streamConsumer.AckMessage(ctx, msg.StreamKey, msg.ID)
				continue
			}

			// Rate limit check
			allowed, err := rateLimiter.AllowAlert(ctx)
			if err != nil {
				fmt.Printf("error checking rate limit: %v\n", err)
			}
			if !allowed {
				fmt.Printf("⊘ Rate limited %d-leg %s parlay\n", p.NumLegs, p.Sport)
				atomic.AddInt64(&stats.rateLimited, 1)
				streamConsumer.AckMessage(ctx, msg.StreamKey, msg.ID)
				continue
			}

			// Send alert
			if multi.Channels() == 0 {
				fmt.Printf("ALERT (no channels):\n%s\n", notifier.FormatParlay(p))
				atomic.AddInt64(&stats.sent, 1)
			} else if sent, err := multi.SendAlert(ctx, p); err != nil {
				fmt.Printf("error sending alert: %v\n", err)
			} else {
				fmt.Printf("✓ Alert sent to %d channel(s): %d-leg %s parlay score=%.3f\n",
					sent, p.NumLegs, p.Sport, p.Score)
				atomic.AddInt64(&stats.sent, 1)
			}

			streamConsumer.AckMessage(ctx, msg.StreamKey, msg.ID)
		}
	}
}

// Config holds alert service configuration.
type Config struct {
	RedisURL   string
	ConsumerID string
	GroupName  string

	MinScore         float64
	MinExpectedValue float64
	MaxLegs          int
	AlertRateLimit   int
	DedupTTLMinutes  int

	TelegramBotToken string
	TelegramChatID   string
	SlackWebhookURL  string
	DiscordBotToken  string
	DiscordChannelID string
	TwilioAccountSID string
	TwilioAuthToken  string
	SMSFrom          string
	SMSTo            string
}

// loadConfig loads configuration from environment variables.
func loadConfig() Config {
	return Config{
		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
		ConsumerID: getEnv("ALERT_SERVICE_CONSUMER_ID", "alert-service-1"),
		GroupName:  getEnv("ALERT_SERVICE_GROUP_NAME", "alert-services"),

		MinScore:         getEnvFloat("ALERT_MIN_SCORE", 0.3),
		MinExpectedValue: getEnvFloat("ALERT_MIN_EV", 0.0),
		MaxLegs:          getEnvInt("ALERT_MAX_LEGS", 0),
		AlertRateLimit:   getEnvInt("ALERT_RATE_LIMIT", 10),
		DedupTTLMinutes:  getEnvInt("ALERT_DEDUP_TTL_MINUTES", 360),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		SlackWebhookURL:  os.Getenv("SLACK_WEBHOOK_URL"),
		DiscordBotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		SMSFrom:          os.Getenv("SMS_FROM"),
		SMSTo:            os.Getenv("SMS_TO"),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		fmt.Sscanf(value, "%d", &intValue)
		return intValue
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		fmt.Sscanf(value, "%f", &floatValue)
		return floatValue
	}
	return defaultValue
}
