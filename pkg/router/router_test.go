package router

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/chat"
	"github.com/dumalabs/duma/pkg/content"
	"github.com/dumalabs/duma/pkg/reminder"
)

// fakeAI is a scripted Completer for testing.
type fakeAI struct {
	reply   string
	err     error
	prompts []string
	senders []string
}

func (f *fakeAI) CompleteAs(_ context.Context, sender, prompt string, _ []string) (string, error) {
	f.senders = append(f.senders, sender)
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestRouter(ai Completer) (*Router, *reminder.Store, *chat.Log, *chat.Members) {
	store := reminder.NewStore()
	log := chat.NewLog(50)
	members := chat.NewMembers()
	rt := New(Options{
		AssistantName: "Duma",
		ContextLines:  6,
		Store:         store,
		Log:           log,
		Members:       members,
		AI:            ai,
		Now:           func() time.Time { return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC) },
	})
	return rt, store, log, members
}

func inbound(content string) bus.InboundMessage {
	return bus.InboundMessage{
		Channel:    "web",
		SenderID:   "S1",
		SenderName: "alice",
		ChatID:     "direct",
		Content:    content,
	}
}

func TestHandle_StaticIntents(t *testing.T) {
	rt, _, _, _ := newTestRouter(&fakeAI{})
	ctx := context.Background()

	cases := []struct {
		input string
		want  string
	}{
		{"menu", content.Menu},
		{"help", content.Menu},
		{"1", content.About},
		{"services", content.Services},
		{"contact", content.Contact},
		{"events", content.Events},
		{"timetable", content.Timetable},
		{"ratiba", content.Timetable},
		{"how to set reminder", content.ReminderHelp},
	}

	for _, tc := range cases {
		if got := rt.Handle(ctx, inbound(tc.input)); got != tc.want {
			t.Errorf("Handle(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestHandle_Greeting(t *testing.T) {
	rt, _, _, _ := newTestRouter(&fakeAI{})

	got := rt.Handle(context.Background(), inbound("niaje"))
	if !strings.Contains(got, "alice") {
		t.Errorf("greeting should address the sender, got %q", got)
	}
}

func TestHandle_EveryMessageIsLogged(t *testing.T) {
	rt, _, log, _ := newTestRouter(&fakeAI{})

	rt.Handle(context.Background(), inbound("menu"))
	if log.Len() != 1 {
		t.Errorf("expected the inbound message in the log, got %d entries", log.Len())
	}
}

func TestHandle_AddReminder(t *testing.T) {
	rt, store, _, _ := newTestRouter(&fakeAI{})

	got := rt.Handle(context.Background(), inbound("add reminder call vet tomorrow at 9am"))
	if !strings.Contains(got, "Reminder saved") {
		t.Fatalf("expected confirmation, got %q", got)
	}

	mine := store.ListFor("S1")
	if len(mine) != 1 {
		t.Fatalf("expected 1 stored reminder, got %d", len(mine))
	}
	r := mine[0]
	if r.Text != "call vet tomorrow at 9am" {
		t.Errorf("stored text %q", r.Text)
	}
	if r.Channel != "web" || r.ChatID != "direct" {
		t.Errorf("reminder should record its origin, got %s/%s", r.Channel, r.ChatID)
	}
	if r.DueAt.Day() != 11 || r.DueAt.Hour() != 9 {
		t.Errorf("due at %v, want March 11 09:00", r.DueAt)
	}
}

func TestHandle_AddReminderVariants(t *testing.T) {
	rt, store, _, _ := newTestRouter(&fakeAI{})
	ctx := context.Background()

	rt.Handle(ctx, inbound("remind me milk delivery in 2 hours"))
	rt.Handle(ctx, inbound("set reminder lecture tomorrow at 10am"))

	if store.Len() != 2 {
		t.Errorf("expected both phrasings to store, got %d", store.Len())
	}
}

func TestHandle_AddReminderErrors(t *testing.T) {
	rt, store, _, _ := newTestRouter(&fakeAI{})
	ctx := context.Background()

	got := rt.Handle(ctx, inbound("add reminder"))
	if !strings.Contains(got, "Use format") {
		t.Errorf("expected usage hint for empty body, got %q", got)
	}

	got = rt.Handle(ctx, inbound("add reminder feed the cows"))
	if !strings.Contains(got, "Couldn't parse the time") {
		t.Errorf("expected time-parse hint, got %q", got)
	}

	if store.Len() != 0 {
		t.Errorf("nothing should be stored, got %d", store.Len())
	}
}

func TestHandle_ShowReminders(t *testing.T) {
	rt, _, _, _ := newTestRouter(&fakeAI{})
	ctx := context.Background()

	got := rt.Handle(ctx, inbound("show reminders"))
	if got != content.NoReminders {
		t.Fatalf("expected empty-list reply, got %q", got)
	}

	rt.Handle(ctx, inbound("add reminder exam tomorrow at 9am"))
	got = rt.Handle(ctx, inbound("show reminders"))
	if !strings.Contains(got, "exam tomorrow at 9am") {
		t.Errorf("listing should include the reminder, got %q", got)
	}
}

func TestHandle_ChatRequiresJoin(t *testing.T) {
	ai := &fakeAI{reply: "Mastitis is an udder infection."}
	rt, _, log, _ := newTestRouter(ai)
	ctx := context.Background()

	got := rt.Handle(ctx, inbound("chat what is mastitis"))
	if got != content.JoinFirst {
		t.Fatalf("expected join gate, got %q", got)
	}
	if len(ai.prompts) != 0 {
		t.Error("AI must not be called before joining")
	}

	got = rt.Handle(ctx, inbound("join"))
	if !strings.Contains(got, "joined") {
		t.Fatalf("expected join confirmation, got %q", got)
	}

	got = rt.Handle(ctx, inbound("chat what is mastitis"))
	if !strings.Contains(got, "Mastitis is an udder infection.") {
		t.Errorf("reply should carry the AI answer, got %q", got)
	}
	if !strings.Contains(got, "🤖 (Duma reply)") {
		t.Errorf("reply should carry the assistant banner, got %q", got)
	}
	if len(ai.senders) != 1 || ai.senders[0] != "S1" {
		t.Errorf("AI should be keyed by sender ID, got %v", ai.senders)
	}

	// Log holds: 3 inbound raw messages + the chat body + the AI reply.
	found := false
	for _, line := range log.TailLines(10) {
		if strings.Contains(line, "Duma (AI): Mastitis is an udder infection.") {
			found = true
		}
	}
	if !found {
		t.Error("AI reply missing from the chat log")
	}
}

func TestHandle_ChatUsage(t *testing.T) {
	rt, _, _, members := newTestRouter(&fakeAI{reply: "hi"})
	members.Join("S1")

	got := rt.Handle(context.Background(), inbound("chat"))
	if got != content.ChatUsage {
		t.Errorf("expected chat usage, got %q", got)
	}
}

func TestHandle_FreeTextFallsToAI(t *testing.T) {
	ai := &fakeAI{reply: "Talk to your vet about dosage."}
	rt, _, _, _ := newTestRouter(ai)

	got := rt.Handle(context.Background(), inbound("what dewormer should I use for goats"))
	if got != "Talk to your vet about dosage." {
		t.Errorf("expected the AI answer, got %q", got)
	}
	if len(ai.prompts) != 1 || !strings.Contains(ai.prompts[0], "alice") {
		t.Errorf("prompt should name the sender, got %v", ai.prompts)
	}
}

func TestHandle_AIFailureDegrades(t *testing.T) {
	ai := &fakeAI{err: errors.New("upstream 500")}
	rt, _, _, _ := newTestRouter(ai)

	got := rt.Handle(context.Background(), inbound("anything unusual"))
	if got != content.AIUnavailable {
		t.Errorf("expected apology reply, got %q", got)
	}
}

func TestHandle_Disease(t *testing.T) {
	rt, _, _, _ := newTestRouter(&fakeAI{})
	ctx := context.Background()

	got := rt.Handle(ctx, inbound("disease anthrax"))
	if !strings.Contains(got, "Anthrax") || !strings.Contains(got, "Symptoms") {
		t.Errorf("expected anthrax card, got %q", got)
	}

	// Numeric menu shortcut works too.
	if got := rt.Handle(ctx, inbound("7 anthrax")); !strings.Contains(got, "Anthrax") {
		t.Errorf("shortcut lookup failed, got %q", got)
	}

	if got := rt.Handle(ctx, inbound("disease")); got != content.DiseaseUsage {
		t.Errorf("expected usage, got %q", got)
	}
}

func TestHandle_SlangDiseaseLookup(t *testing.T) {
	ai := &fakeAI{reply: "never used"}
	rt, _, _, _ := newTestRouter(ai)
	ctx := context.Background()

	// "magonjwa" expands to "disease", so this is a fact-table lookup.
	got := rt.Handle(ctx, inbound("magonjwa anthrax"))
	if !strings.Contains(got, "Anthrax") {
		t.Fatalf("expected the anthrax card, got %q", got)
	}
	if len(ai.prompts) != 0 {
		t.Errorf("fact lookup must not spend an AI call, got %d", len(ai.prompts))
	}

	if got := rt.Handle(ctx, inbound("magonjwa")); got != content.DiseaseUsage {
		t.Errorf("bare slang keyword should prompt usage, got %q", got)
	}
}

func TestHandle_Notes(t *testing.T) {
	rt, _, _, _ := newTestRouter(&fakeAI{})
	ctx := context.Background()

	if got := rt.Handle(ctx, inbound("notes")); got != content.NotesUsage {
		t.Errorf("expected usage, got %q", got)
	}
	if got := rt.Handle(ctx, inbound("notes parasites")); !strings.Contains(got, "Parasites") {
		t.Errorf("expected topic echo, got %q", got)
	}
}

func TestHandle_EmptyMessage(t *testing.T) {
	rt, _, _, _ := newTestRouter(&fakeAI{})

	if got := rt.Handle(context.Background(), inbound("   ")); got != content.Fallback {
		t.Errorf("expected fallback, got %q", got)
	}
}
