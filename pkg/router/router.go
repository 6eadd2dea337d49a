// Package router resolves inbound chat messages into intents and
// dispatches them: static lookups, reminder commands, the class chat
// relay, or the AI fallback.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/chat"
	"github.com/dumalabs/duma/pkg/content"
	"github.com/dumalabs/duma/pkg/logger"
	"github.com/dumalabs/duma/pkg/reminder"
	"github.com/dumalabs/duma/pkg/timeparse"
	"github.com/dumalabs/duma/pkg/vocab"
)

// Completer is the AI capability the router consumes. Implementations
// apply per-sender rate limiting before the upstream call.
type Completer interface {
	CompleteAs(ctx context.Context, sender, prompt string, contextLines []string) (string, error)
}

// Options wires the router's collaborators.
type Options struct {
	AssistantName string
	ContextLines  int
	Store         *reminder.Store
	Log           *chat.Log
	Members       *chat.Members
	AI            Completer
	Now           func() time.Time // defaults to time.Now
}

type Router struct {
	name         string
	contextLines int
	store        *reminder.Store
	log          *chat.Log
	members      *chat.Members
	ai           Completer
	now          func() time.Time
}

func New(opts Options) *Router {
	name := opts.AssistantName
	if name == "" {
		name = "Duma"
	}
	contextLines := opts.ContextLines
	if contextLines <= 0 {
		contextLines = 6
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Router{
		name:         name,
		contextLines: contextLines,
		store:        opts.Store,
		log:          opts.Log,
		members:      opts.Members,
		ai:           opts.AI,
		now:          now,
	}
}

// reminderPrefixes start a reminder-creation command in raw text.
var reminderPrefixes = []string{"add reminder", "remind me", "set reminder"}

// Handle processes one inbound message and returns the reply text. Safe
// to call concurrently; all shared state sits behind the store, log and
// members locks.
func (rt *Router) Handle(ctx context.Context, msg bus.InboundMessage) string {
	sender := msg.SenderName
	if sender == "" {
		sender = msg.SenderID
	}

	raw := strings.TrimSpace(msg.Content)
	lowered := strings.ToLower(raw)
	command := vocab.Normalize(raw)

	// Every inbound message lands in the chat log before dispatch.
	rt.log.Append(sender, msg.Content)

	if strings.Contains(lowered, "how to set reminder") {
		return content.ReminderHelp
	}

	switch command {
	case vocab.IntentGreeting:
		return content.Greeting(sender)
	case vocab.IntentMenu:
		return content.Menu
	case vocab.IntentAbout:
		return content.About
	case vocab.IntentServices:
		return content.Services
	case vocab.IntentContact:
		return content.Contact
	case vocab.IntentEvents:
		return content.Events
	case vocab.IntentTimetable:
		return content.Timetable
	}

	// Subcommands match on the normalized text so slang-expanded input
	// ("magonjwa anthrax") routes the same as plain English.
	if strings.HasPrefix(command, vocab.IntentNotes) || strings.HasPrefix(command, "6 ") {
		topic := stripCommand(command, "notes", "6")
		if topic == "" {
			return content.NotesUsage
		}
		return content.NotesSummary(topic)
	}

	if strings.HasPrefix(command, vocab.IntentDisease) || strings.HasPrefix(command, "7 ") {
		name := stripCommand(command, "disease", "7")
		if name == "" {
			return content.DiseaseUsage
		}
		return content.Disease(name)
	}

	if body, ok := reminderBody(lowered); ok || command == vocab.IntentAddReminder {
		if body == "" {
			return "⚠️ Use format: `add reminder <your reminder + time>`\n\n" + content.ReminderHelp
		}
		dueAt, ok := timeparse.Parse(body, rt.now())
		if !ok {
			return "⚠️ Couldn't parse the time. Try: 'add reminder exam tomorrow at 9am'\n\n" + content.ReminderHelp
		}
		r := rt.store.Add(msg.SenderID, msg.Channel, msg.ChatID, body, dueAt)
		logger.InfoCF("router", "Reminder saved", map[string]any{
			"reminder": r.ID,
			"owner":    r.Owner,
			"due_at":   r.DueAt.Format(time.RFC3339),
		})
		return fmt.Sprintf("✅ Reminder saved for %s at %s.", sender, dueAt.Format("2006-01-02 15:04"))
	}

	if command == vocab.IntentShowReminders {
		pending := rt.store.ListFor(msg.SenderID)
		if len(pending) == 0 {
			return content.NoReminders
		}
		lines := make([]string, len(pending))
		for i, r := range pending {
			lines[i] = fmt.Sprintf("⏰ %s → %s", r.Text, r.DueAt.Format("2006-01-02 15:04"))
		}
		return "📝 Your Reminders:\n" + strings.Join(lines, "\n")
	}

	if command == vocab.IntentJoin {
		rt.members.Join(msg.SenderID)
		return fmt.Sprintf("✅ %s joined the class chat! 🎉 Use 'chat <message>' to speak.", sender)
	}

	if strings.HasPrefix(command, vocab.IntentChat) || strings.HasPrefix(command, "10 ") {
		// Body comes from the raw text so the relayed message keeps its case.
		body := stripCommand(raw, "chat", "10")
		if body == "" {
			return content.ChatUsage
		}
		if !rt.members.Contains(msg.SenderID) {
			return content.JoinFirst
		}

		// Human message goes to the big class chat; the AI reply stays a
		// small assistant reply.
		rt.log.Append(sender, body)

		prompt := fmt.Sprintf(
			"Student %s wrote: %s\nBe concise and helpful. If the user asks for scheduling or reminders, give a clear format.",
			sender, body)
		aiReply := rt.complete(ctx, msg.SenderID, prompt)
		rt.log.Append(rt.aiAuthor(), aiReply)

		recent := strings.Join(rt.log.TailLines(rt.contextLines), "\n")
		return fmt.Sprintf("💬 (latest chat)\n%s\n\n🤖 (%s reply)\n%s", recent, rt.name, aiReply)
	}

	if raw != "" {
		prompt := fmt.Sprintf(
			"User %s asks: %s\nRespond concisely (max 220 words). If it's a personal health or safety issue, advise to speak to a vet or lecturer.",
			sender, raw)
		aiReply := rt.complete(ctx, msg.SenderID, prompt)
		rt.log.Append(rt.aiAuthor(), aiReply)
		return aiReply
	}

	return content.Fallback
}

// complete calls the AI capability with the recent chat tail as context.
// Failures degrade to the fixed apology reply; the attempt is still
// recorded by the caller.
func (rt *Router) complete(ctx context.Context, senderID, prompt string) string {
	contextLines := rt.log.TailLines(rt.contextLines)
	text, err := rt.ai.CompleteAs(ctx, senderID, prompt, contextLines)
	if err != nil {
		logger.WarnCF("router", "AI completion failed", map[string]any{
			"sender": senderID,
			"error":  err.Error(),
		})
		return content.AIUnavailable
	}
	return text
}

func (rt *Router) aiAuthor() string {
	return rt.name + " (AI)"
}

// reminderBody reports whether text starts a reminder-creation command
// and returns the remainder after the command phrase.
func reminderBody(text string) (string, bool) {
	for _, prefix := range reminderPrefixes {
		if strings.HasPrefix(text, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(text, prefix)), true
		}
	}
	return "", false
}

// stripCommand removes the leading command keyword or its numeric menu
// shortcut and returns the trimmed remainder.
func stripCommand(text, keyword, shortcut string) string {
	text = strings.TrimSpace(text)
	for _, lead := range []string{keyword, shortcut} {
		if strings.HasPrefix(strings.ToLower(text), lead) {
			text = strings.TrimSpace(text[len(lead):])
		}
	}
	return text
}
