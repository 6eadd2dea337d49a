// Package channels connects chat transports (Telegram, Discord, Slack,
// the web API) to the message bus.
package channels

import (
	"context"
	"sync/atomic"

	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/logger"
)

type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Send(ctx context.Context, msg bus.OutboundMessage) error
	IsRunning() bool
	IsAllowed(senderID string) bool
}

type BaseChannel struct {
	bus       *bus.MessageBus
	running   atomic.Bool
	name      string
	allowList []string
}

func NewBaseChannel(name string, b *bus.MessageBus, allowList []string) *BaseChannel {
	return &BaseChannel{
		bus:       b,
		name:      name,
		allowList: allowList,
	}
}

func (c *BaseChannel) Name() string {
	return c.name
}

func (c *BaseChannel) IsRunning() bool {
	return c.running.Load()
}

// IsAllowed reports whether senderID may talk to the assistant. An empty
// allowlist admits everyone.
func (c *BaseChannel) IsAllowed(senderID string) bool {
	if len(c.allowList) == 0 {
		return true
	}
	for _, allowed := range c.allowList {
		if senderID == allowed {
			return true
		}
	}
	return false
}

// HandleMessage publishes an inbound message on the bus after the
// allowlist check.
func (c *BaseChannel) HandleMessage(senderID, senderName, chatID, content string) {
	if !c.IsAllowed(senderID) {
		logger.DebugCF("channels", "Sender not in allowlist, dropping", map[string]any{
			"channel": c.name,
			"sender":  senderID,
		})
		return
	}

	msg := bus.InboundMessage{
		Channel:    c.name,
		SenderID:   senderID,
		SenderName: senderName,
		ChatID:     chatID,
		Content:    content,
	}

	if err := c.bus.PublishInbound(context.TODO(), msg); err != nil {
		logger.WarnCF("channels", "Failed to publish inbound message", map[string]any{
			"channel": c.name,
			"error":   err.Error(),
		})
	}
}

func (c *BaseChannel) SetRunning(running bool) {
	c.running.Store(running)
}
