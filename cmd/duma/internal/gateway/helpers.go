package gateway

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dumalabs/duma/cmd/duma/internal"
	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/channels"
	"github.com/dumalabs/duma/pkg/chat"
	"github.com/dumalabs/duma/pkg/logger"
	"github.com/dumalabs/duma/pkg/providers"
	"github.com/dumalabs/duma/pkg/reminder"
	"github.com/dumalabs/duma/pkg/router"
)

func gatewayCmd(debug bool) error {
	if debug {
		logger.SetLevel(logger.DEBUG)
		fmt.Println("🔍 Debug mode enabled")
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	provider, err := providers.CreateProvider(cfg)
	if err != nil {
		return fmt.Errorf("error creating provider: %w", err)
	}
	ai := providers.NewRateLimited(provider, time.Duration(cfg.Chat.MinAIIntervalMS)*time.Millisecond)

	msgBus := bus.NewMessageBus()
	store := reminder.NewStore()
	chatLog := chat.NewLog(cfg.Chat.LogCapacity)
	members := chat.NewMembers()

	rt := router.New(router.Options{
		AssistantName: cfg.Assistant.Name,
		ContextLines:  cfg.Chat.ContextLines,
		Store:         store,
		Log:           chatLog,
		Members:       members,
		AI:            ai,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channelManager, err := channels.NewManager(cfg, msgBus, channels.WebHooks{
		Handle: rt.Handle,
		History: func() channels.History {
			return channels.History{
				Messages: chatLog.TailLines(100),
				Members:  members.List(),
				Usage:    ai.Usage(),
			}
		},
	})
	if err != nil {
		return fmt.Errorf("error creating channel manager: %w", err)
	}

	interval := time.Duration(cfg.Scheduler.PollIntervalSeconds) * time.Second
	scheduler := reminder.NewScheduler(store, interval, func(r reminder.Reminder) error {
		return msgBus.PublishOutbound(ctx, bus.OutboundMessage{
			Channel: r.Channel,
			ChatID:  r.ChatID,
			Content: "⏰ Reminder: " + r.Text,
		})
	})
	for _, a := range cfg.Scheduler.Announcements {
		if err := scheduler.AddAnnouncement(reminder.Announcement{
			Cron:    a.Cron,
			Channel: a.Channel,
			ChatID:  a.ChatID,
			Text:    a.Text,
		}); err != nil {
			fmt.Printf("⚠ Skipping announcement %q: %v\n", a.Cron, err)
		}
	}

	enabledChannels := channelManager.GetEnabledChannels()
	if enabledChannels != "" {
		fmt.Printf("✓ Channels enabled: %s\n", enabledChannels)
	} else {
		fmt.Println("⚠ Warning: No channels enabled")
	}

	if err := channelManager.StartAll(ctx); err != nil {
		fmt.Printf("Error starting channels: %v\n", err)
	}

	go channelManager.Run(ctx)
	go scheduler.Run(ctx)
	go routeInbound(ctx, msgBus, rt)

	fmt.Printf("✓ Gateway started on %s:%d\n", cfg.Gateway.Host, cfg.Gateway.Port)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	<-sigChan

	fmt.Println("\nShutting down...")
	cancel()
	channelManager.StopAll(context.Background())
	msgBus.Close()
	fmt.Println("✓ Gateway stopped")

	return nil
}

// routeInbound consumes bus messages and answers each in its own
// goroutine so one slow AI call cannot stall the other channels.
func routeInbound(ctx context.Context, msgBus *bus.MessageBus, rt *router.Router) {
	for {
		msg, ok := msgBus.ConsumeInbound(ctx)
		if !ok {
			return
		}
		go func(m bus.InboundMessage) {
			reply := rt.Handle(ctx, m)
			if reply == "" {
				return
			}
			if err := msgBus.PublishReply(ctx, m, reply); err != nil {
				logger.WarnCF("gateway", "Dropping reply", map[string]any{
					"channel": m.Channel,
					"error":   err.Error(),
				})
			}
		}(msg)
	}
}
