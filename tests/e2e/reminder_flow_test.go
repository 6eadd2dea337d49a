package e2e

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/chat"
	"github.com/dumalabs/duma/pkg/reminder"
	"github.com/dumalabs/duma/pkg/router"
)

type staticAI struct{}

func (staticAI) CompleteAs(context.Context, string, string, []string) (string, error) {
	return "static answer", nil
}

// The full reminder path: a chat message creates a reminder, the
// scheduler picks it up and the notification lands on the outbound bus
// addressed to the channel the request came from.
func TestReminderFlow(t *testing.T) {
	msgBus := bus.NewMessageBus()
	store := reminder.NewStore()

	ref := time.Now().Add(-30 * time.Minute)
	rt := router.New(router.Options{
		AssistantName: "Duma",
		Store:         store,
		Log:           chat.NewLog(50),
		Members:       chat.NewMembers(),
		AI:            staticAI{},
		// A reference in the past makes "in 10 minutes" already due.
		Now: func() time.Time { return ref },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reply := rt.Handle(ctx, bus.InboundMessage{
		Channel:    "telegram",
		SenderID:   "S1",
		SenderName: "alice",
		ChatID:     "42",
		Content:    "add reminder exam revision in 10 minutes",
	})
	if !strings.Contains(reply, "Reminder saved") {
		t.Fatalf("expected confirmation, got %q", reply)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored reminder, got %d", store.Len())
	}

	scheduler := reminder.NewScheduler(store, 10*time.Millisecond, func(r reminder.Reminder) error {
		return msgBus.PublishOutbound(ctx, bus.OutboundMessage{
			Channel: r.Channel,
			ChatID:  r.ChatID,
			Content: "⏰ Reminder: " + r.Text,
		})
	})
	go scheduler.Run(ctx)

	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()
	out, ok := msgBus.SubscribeOutbound(waitCtx)
	if !ok {
		t.Fatal("reminder never reached the outbound bus")
	}

	if out.Channel != "telegram" || out.ChatID != "42" {
		t.Errorf("notification misaddressed: %+v", out)
	}
	if !strings.Contains(out.Content, "exam revision in 10 minutes") {
		t.Errorf("notification content: %q", out.Content)
	}
	if store.Len() != 0 {
		t.Errorf("delivered reminder should leave the store, got %d", store.Len())
	}
}
