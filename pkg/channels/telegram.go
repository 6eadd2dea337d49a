package channels

import (
	"context"
	"errors"
	"strconv"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/config"
	"github.com/dumalabs/duma/pkg/logger"
)

type TelegramChannel struct {
	*BaseChannel

	token  string
	bot    *telego.Bot
	cancel context.CancelFunc
}

func NewTelegramChannel(cfg config.TelegramConfig, b *bus.MessageBus) (*TelegramChannel, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is required")
	}
	return &TelegramChannel{
		BaseChannel: NewBaseChannel("telegram", b, cfg.AllowFrom),
		token:       cfg.Token,
	}, nil
}

func (c *TelegramChannel) Start(ctx context.Context) error {
	bot, err := telego.NewBot(c.token, telego.WithDefaultLogger(false, true))
	if err != nil {
		return err
	}
	c.bot = bot

	pollCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	updates, err := bot.UpdatesViaLongPolling(pollCtx, nil)
	if err != nil {
		cancel()
		return err
	}

	go func() {
		for update := range updates {
			m := update.Message
			if m == nil || m.Text == "" || m.From == nil {
				continue
			}

			senderName := m.From.Username
			if senderName == "" {
				senderName = m.From.FirstName
			}

			c.HandleMessage(
				strconv.FormatInt(m.From.ID, 10),
				senderName,
				strconv.FormatInt(m.Chat.ID, 10),
				m.Text,
			)
		}
	}()

	c.SetRunning(true)
	return nil
}

func (c *TelegramChannel) Stop(_ context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}
	c.SetRunning(false)
	return nil
}

func (c *TelegramChannel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	chatID, err := strconv.ParseInt(msg.ChatID, 10, 64)
	if err != nil {
		return errors.New("telegram chat id must be numeric: " + msg.ChatID)
	}

	if _, err := c.bot.SendMessage(ctx, tu.Message(tu.ID(chatID), msg.Content)); err != nil {
		return err
	}

	logger.DebugCF("channels", "Telegram message sent", map[string]any{"chat_id": msg.ChatID})
	return nil
}
