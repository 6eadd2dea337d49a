package channels

import (
	"context"
	"errors"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/config"
	"github.com/dumalabs/duma/pkg/logger"
)

type SlackChannel struct {
	*BaseChannel

	api    *slack.Client
	socket *socketmode.Client
	cancel context.CancelFunc
}

func NewSlackChannel(cfg config.SlackConfig, b *bus.MessageBus) (*SlackChannel, error) {
	if cfg.BotToken == "" || cfg.AppToken == "" {
		return nil, errors.New("slack bot_token and app_token are required")
	}

	api := slack.New(cfg.BotToken, slack.OptionAppLevelToken(cfg.AppToken))

	return &SlackChannel{
		BaseChannel: NewBaseChannel("slack", b, cfg.AllowFrom),
		api:         api,
		socket:      socketmode.New(api),
	}, nil
}

func (c *SlackChannel) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	go c.eventLoop(runCtx)
	go func() {
		if err := c.socket.RunContext(runCtx); err != nil && runCtx.Err() == nil {
			logger.ErrorCF("channels", "Slack socket mode stopped", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	c.SetRunning(true)
	return nil
}

func (c *SlackChannel) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-c.socket.Events:
			if !ok {
				return
			}
			if evt.Type != socketmode.EventTypeEventsAPI {
				continue
			}

			apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
			if !ok {
				continue
			}
			if evt.Request != nil {
				c.socket.Ack(*evt.Request)
			}

			if apiEvent.Type != slackevents.CallbackEvent {
				continue
			}
			ev, ok := apiEvent.InnerEvent.Data.(*slackevents.MessageEvent)
			if !ok {
				continue
			}
			// Skip bot echoes and message edits.
			if ev.BotID != "" || ev.SubType != "" || ev.Text == "" {
				continue
			}

			c.HandleMessage(ev.User, "", ev.Channel, ev.Text)
		}
	}
}

func (c *SlackChannel) Stop(_ context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}
	c.SetRunning(false)
	return nil
}

func (c *SlackChannel) Send(_ context.Context, msg bus.OutboundMessage) error {
	_, _, err := c.api.PostMessage(msg.ChatID, slack.MsgOptionText(msg.Content, false))
	return err
}
