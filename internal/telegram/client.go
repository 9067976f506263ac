// Package telegram sends the resolved dashboard result to a Telegram chat.
// The notification is optional and fires once per session: either the
// estimate summary or the load error.
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Ammaar-Alam/draw-calculator/internal/models"
)

// Client handles Telegram notifications.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a Telegram client for the given bot token and chat.
func NewClient(botToken, chatID string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}
	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     3,
		retryDelayBase: time.Second,
	}, nil
}

// SendResult sends the estimate summary for a loaded snapshot.
func (c *Client) SendResult(snap models.Snapshot, m models.DerivedMetrics) error {
	return c.send(formatResult(snap, m))
}

// SendLoadError reports that the snapshot document could not be loaded.
func (c *Client) SendLoadError(message string) error {
	return c.send(fmt.Sprintf("⚠️ *Draw Dashboard*\n\nFailed to load estimate document:\n%s", message))
}

func (c *Client) send(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

func formatResult(snap models.Snapshot, m models.DerivedMetrics) string {
	var sb strings.Builder
	sb.WriteString("🏠 *Draw Dashboard*\n\n")
	fmt.Fprintf(&sb, "*%s* (draw time %s)\n\n", snap.UserName, snap.DrawTime)
	fmt.Fprintf(&sb, "Raw position: %d\n", snap.RawPosition)
	fmt.Fprintf(&sb, "Initially ahead: %d\n", snap.InitialAhead)
	fmt.Fprintf(&sb, "Estimated ahead after removals: %d\n", snap.FinalPositionEstimate)
	fmt.Fprintf(&sb, "Competitor rank: %d\n", m.CompetitorRank)
	fmt.Fprintf(&sb, "Available singles: %d\n\n", snap.AvailableSingles)
	fmt.Fprintf(&sb, "Chance of a single: *%d%%* (%s)\n", snap.ProbabilitySingle, m.ProbabilityTier)
	fmt.Fprintf(&sb, "\n_Last updated: %s_", snap.LastUpdated)
	return sb.String()
}
