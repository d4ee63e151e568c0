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

// telegramMaxLen is Telegram's hard message size limit.
const telegramMaxLen = 4096

// TelegramNotifier sends alerts through the Telegram Bot API.
type TelegramNotifier struct {
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewTelegramNotifier creates a new Telegram notifier.
func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

// SendAlert sends a parlay alert, splitting messages that exceed
// Telegram's length limit.
func (t *TelegramNotifier) SendAlert(ctx context.Context, p models.RankedParlay) error {
	startTime := time.Now()

	message := FormatParlay(p)
	for _, chunk := range splitMessage(message, telegramMaxLen) {
		if err := t.sendMessage(ctx, chunk); err != nil {
			return err
		}
	}

	latency := time.Since(startTime).Milliseconds()
	fmt.Printf("✓ Telegram alert sent: sport=%s legs=%d latency=%dms\n", p.Sport, p.NumLegs, latency)

	return nil
}

func (t *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)

	payload := map[string]interface{}{
		"chat_id": t.chatID,
		"text":    text,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Telegram payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Telegram alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Telegram API returned status %d", resp.StatusCode)
	}

	return nil
}

// splitMessage breaks text into chunks of at most maxLen runes, preferring
// line boundaries. Cuts happen between runes so the rating emoji in the
// header can never be torn across chunks.
func splitMessage(text string, maxLen int) []string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(runes) > maxLen {
		cut := maxLen
		for i := maxLen - 1; i > maxLen/2; i-- {
			if runes[i] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
