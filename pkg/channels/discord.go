package channels

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/config"
)

type DiscordChannel struct {
	*BaseChannel

	session *discordgo.Session
}

func NewDiscordChannel(cfg config.DiscordConfig, b *bus.MessageBus) (*DiscordChannel, error) {
	if cfg.Token == "" {
		return nil, errors.New("discord token is required")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}

	c := &DiscordChannel{
		BaseChannel: NewBaseChannel("discord", b, cfg.AllowFrom),
		session:     session,
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
	session.AddHandler(c.onMessageCreate)

	return c, nil
}

func (c *DiscordChannel) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Content == "" {
		return
	}
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	c.HandleMessage(m.Author.ID, m.Author.Username, m.ChannelID, m.Content)
}

func (c *DiscordChannel) Start(_ context.Context) error {
	if err := c.session.Open(); err != nil {
		return err
	}
	c.SetRunning(true)
	return nil
}

func (c *DiscordChannel) Stop(_ context.Context) error {
	c.SetRunning(false)
	return c.session.Close()
}

func (c *DiscordChannel) Send(_ context.Context, msg bus.OutboundMessage) error {
	_, err := c.session.ChannelMessageSend(msg.ChatID, msg.Content)
	return err
}
