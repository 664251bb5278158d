// Package bot serves the guest menu over Telegram.
//
// Each update is answered on a bounded worker pool; when the pool is full
// the update is dropped and counted rather than queued without limit.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	httpc "github.com/shashiranjanraj/chefmenu/pkg/http"
	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/metrics"
	"github.com/shashiranjanraj/chefmenu/pkg/reqid"
	"github.com/shashiranjanraj/chefmenu/pkg/workerpool"
)

// pollTimeout is the long-poll window in seconds. The HTTP client timeout
// must outlast it.
const pollTimeout = 60

// Config configures the bot. Endpoint defaults to the public Telegram API.
// Client defaults to a retrying client making Retries attempts per call.
type Config struct {
	Token    string
	Endpoint string
	Client   tgbotapi.HTTPClient
	Retries  int
	Workers  int
	Chef     string
}

type Bot struct {
	api  *tgbotapi.BotAPI
	menu *catalog.Catalog
	chef string
	pool *workerpool.Pool
}

// New authenticates with Telegram (getMe) and starts the worker pool.
func New(cfg Config, menu *catalog.Catalog) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("bot: token is required")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	client := cfg.Client
	if client == nil {
		client = httpc.New(
			httpc.WithAttempts(cfg.Retries),
			httpc.WithTimeout((pollTimeout+30)*time.Second),
		)
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("bot: connect: %w", err)
	}
	logger.Info("telegram bot authorized", "username", api.Self.UserName)

	return &Bot{api: api, menu: menu, chef: cfg.Chef, pool: workerpool.New(cfg.Workers)}, nil
}

// Username is the bot's Telegram handle.
func (b *Bot) Username() string { return b.api.Self.UserName }

// Run long-polls for updates until ctx is cancelled, then drains the pool.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			_ = b.Dispatch(upd)
		}
	}
}

// Dispatch queues upd for a worker. A full pool drops the update.
func (b *Bot) Dispatch(upd tgbotapi.Update) error {
	err := b.pool.Submit(func(ctx context.Context) { b.handle(ctx, upd) })
	if err != nil {
		metrics.ObserveBotUpdate(kindOf(upd), "dropped", time.Now())
		logger.Warn("telegram update dropped", "update_id", upd.UpdateID, "error", err)
	}
	return err
}

// Close waits for queued updates to be answered.
func (b *Bot) Close(ctx context.Context) error {
	return b.pool.Shutdown(ctx)
}

func (b *Bot) handle(ctx context.Context, upd tgbotapi.Update) {
	ctx = reqid.WithValue(ctx, reqid.New())
	log := logger.WithCtx(ctx).With("update_id", upd.UpdateID)

	start := time.Now()
	kind, status := kindOf(upd), "ok"
	defer func() { metrics.ObserveBotUpdate(kind, status, start) }()

	var err error
	switch {
	case upd.CallbackQuery != nil:
		cq := upd.CallbackQuery
		if _, aerr := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); aerr != nil {
			log.Warn("answer callback", "error", aerr)
		}
		reply, ok := AnswerCallback(b.menu, cq.Data)
		if !ok || cq.Message == nil {
			status = "ignored"
			return
		}
		err = b.send(cq.Message.Chat.ID, reply)
	case upd.Message != nil && upd.Message.Chat != nil:
		err = b.send(upd.Message.Chat.ID, Answer(b.menu, b.chef, upd.Message.Text))
	default:
		status = "ignored"
		return
	}

	if err != nil {
		status = "error"
		log.Error("telegram reply failed", "kind", kind, "error", err)
		return
	}
	log.Debug("telegram update answered", "kind", kind)
}

func (b *Bot) send(chatID int64, r Reply) error {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if r.Keyboard != nil {
		msg.ReplyMarkup = r.Keyboard
	}
	_, err := b.api.Send(msg)
	return err
}

func kindOf(upd tgbotapi.Update) string {
	switch {
	case upd.CallbackQuery != nil:
		return "callback"
	case upd.Message != nil && strings.HasPrefix(upd.Message.Text, "/"):
		return "command"
	case upd.Message != nil:
		return "message"
	}
	return "other"
}
