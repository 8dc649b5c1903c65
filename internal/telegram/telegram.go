// Package telegram handles the Telegram bot instance and channel publishing.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", token[:8]+"...")
	return b, nil
}

// Poster publishes validated HTML posts to a channel.
type Poster interface {
	// PostHTML sends text to the configured channel with HTML parse mode
	// and returns the sent message ID.
	PostHTML(ctx context.Context, text string) (int, error)
}

type channelPoster struct {
	bot       *bot.Bot
	channelID int64
	log       *slog.Logger
}

// NewChannelPoster creates a Poster that publishes to the given channel.
func NewChannelPoster(b *bot.Bot, channelID int64, logger *slog.Logger) Poster {
	if logger == nil {
		logger = slog.Default()
	}
	return &channelPoster{
		bot:       b,
		channelID: channelID,
		log:       logger.With("component", "channel_poster"),
	}
}

func (p *channelPoster) PostHTML(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, fmt.Errorf("cannot post empty text")
	}

	sent, err := p.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    p.channelID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to send channel message", "error", err, "channel_id", p.channelID)
		return 0, fmt.Errorf("failed to send channel message: %w", err)
	}

	p.log.InfoContext(ctx, "Post published", "channel_id", p.channelID, "message_id", sent.ID, "length", len(text))
	return sent.ID, nil
}
