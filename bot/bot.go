package bot

import (
	"context"
	"time"

	"github.com/awhatson15/rsvp-bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// UpdateSource is the long-poll side of the Bot API.
type UpdateSource interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

// UpdateHandler processes one update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// Bot polls Telegram and feeds updates to a handler one at a time.
type Bot struct {
	source      UpdateSource
	handler     UpdateHandler
	log         *zap.Logger
	pollTimeout int
	backoff     func() retry.Backoff
	offset      int
}

// NewBot creates a bot. pollTimeout is the long-poll timeout in seconds.
func NewBot(source UpdateSource, handler UpdateHandler, log *zap.Logger, pollTimeout int) *Bot {
	return &Bot{
		source:      source,
		handler:     handler,
		log:         log,
		pollTimeout: pollTimeout,
		backoff: func() retry.Backoff {
			return retry.WithCappedDuration(30*time.Second, retry.NewExponential(time.Second))
		},
	}
}

// Offset is the id of the next update to fetch.
func (b *Bot) Offset() int {
	return b.offset
}

// Run polls until ctx is cancelled. A failing update is logged and skipped;
// the offset moves past every update once it has been handled.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("polling for updates", zap.Int("timeout", b.pollTimeout))

	for {
		updates, err := b.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		for _, update := range updates {
			if err := b.handler.HandleUpdate(ctx, update); err != nil {
				b.log.Error("failed to handle update",
					zap.Int("update_id", update.UpdateID),
					zap.Stringer("kind", models.KindOf(err)),
					zap.Error(err))
			}
			b.offset = update.UpdateID + 1
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (b *Bot) fetch(ctx context.Context) ([]tgbotapi.Update, error) {
	var updates []tgbotapi.Update

	err := retry.Do(ctx, b.backoff(), func(ctx context.Context) error {
		config := tgbotapi.NewUpdate(b.offset)
		config.Timeout = b.pollTimeout
		config.AllowedUpdates = []string{"message", "callback_query"}

		u, err := b.source.GetUpdates(config)
		if err != nil {
			b.log.Warn("failed to get updates", zap.Int("offset", b.offset), zap.Error(err))
			return retry.RetryableError(err)
		}
		updates = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updates, nil
}
