// Package telegram binds the dialogue engine to the Telegram Bot API:
// long polling, update fan-in and reply delivery.
package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/vmkteam/embedlog"

	"duit/pkg/conversation"
)

type Bot struct {
	api    *bot.Bot
	logger embedlog.Logger
	engine *conversation.Engine
	debug  bool
}

type Config struct {
	Token string
	Debug bool
}

// New creates a new Telegram bot instance
func New(cfg Config, engine *conversation.Engine, logger embedlog.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is required")
	}

	b := &Bot{
		logger: logger,
		engine: engine,
		debug:  cfg.Debug,
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(b.handleUpdate),
	}
	if cfg.Debug {
		opts = append(opts, bot.WithDebug())
	}

	api, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	b.api = api

	// Callback query handler for inline keyboards
	b.api.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, b.handleCallback)

	return b, nil
}

// Start starts the bot with long polling
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}

	b.logger.Print(ctx, "telegram bot started", "username", me.Username, "id", me.ID)
	b.api.Start(ctx)

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop(ctx context.Context) {
	b.logger.Print(ctx, "stopping telegram bot")
}
