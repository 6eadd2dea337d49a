package channels

import (
	"context"
	"fmt"
	"strings"

	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/config"
	"github.com/dumalabs/duma/pkg/logger"
)

// Manager owns the enabled channels and pumps outbound bus messages to
// the channel each one names.
type Manager struct {
	channels map[string]Channel
	bus      *bus.MessageBus
}

// WebHooks carries the synchronous callbacks the web channel needs; the
// web API replies in the HTTP response instead of via the outbound bus.
type WebHooks struct {
	Handle  HandleFunc
	History HistoryFunc
}

func NewManager(cfg *config.Config, msgBus *bus.MessageBus, web WebHooks) (*Manager, error) {
	m := &Manager{
		channels: make(map[string]Channel),
		bus:      msgBus,
	}

	if cfg.Channels.Telegram.Enabled {
		ch, err := NewTelegramChannel(cfg.Channels.Telegram, msgBus)
		if err != nil {
			return nil, fmt.Errorf("creating telegram channel: %w", err)
		}
		m.channels["telegram"] = ch
	}

	if cfg.Channels.Discord.Enabled {
		ch, err := NewDiscordChannel(cfg.Channels.Discord, msgBus)
		if err != nil {
			return nil, fmt.Errorf("creating discord channel: %w", err)
		}
		m.channels["discord"] = ch
	}

	if cfg.Channels.Slack.Enabled {
		ch, err := NewSlackChannel(cfg.Channels.Slack, msgBus)
		if err != nil {
			return nil, fmt.Errorf("creating slack channel: %w", err)
		}
		m.channels["slack"] = ch
	}

	if cfg.Channels.Web.Enabled {
		m.channels["web"] = NewWebChannel(cfg.Channels.Web, cfg.Gateway, msgBus, web)
	}

	return m, nil
}

func (m *Manager) GetChannel(name string) (Channel, bool) {
	ch, ok := m.channels[name]
	return ch, ok
}

// GetEnabledChannels returns the enabled channel names as a display string.
func (m *Manager) GetEnabledChannels() string {
	names := make([]string, 0, len(m.channels))
	for name := range m.channels {
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func (m *Manager) StartAll(ctx context.Context) error {
	for name, ch := range m.channels {
		if err := ch.Start(ctx); err != nil {
			return fmt.Errorf("starting %s channel: %w", name, err)
		}
		logger.InfoCF("channels", "Channel started", map[string]any{"channel": name})
	}
	return nil
}

func (m *Manager) StopAll(ctx context.Context) {
	for name, ch := range m.channels {
		if err := ch.Stop(ctx); err != nil {
			logger.WarnCF("channels", "Channel stop failed", map[string]any{
				"channel": name,
				"error":   err.Error(),
			})
		}
	}
}

// Run consumes outbound messages until ctx is cancelled, dispatching
// each to its channel. Delivery errors are logged and the message is
// dropped; the pump never stops on a single failure.
func (m *Manager) Run(ctx context.Context) {
	for {
		msg, ok := m.bus.SubscribeOutbound(ctx)
		if !ok {
			return
		}

		ch, exists := m.channels[msg.Channel]
		if !exists {
			logger.WarnCF("channels", "Outbound message for unknown channel", map[string]any{
				"channel": msg.Channel,
			})
			continue
		}

		if err := ch.Send(ctx, msg); err != nil {
			logger.ErrorCF("channels", "Outbound delivery failed", map[string]any{
				"channel": msg.Channel,
				"chat_id": msg.ChatID,
				"error":   err.Error(),
			})
		}
	}
}
