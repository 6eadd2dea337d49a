package providers

import (
	"context"
	"testing"
	"time"
)

type echoCompleter struct {
	calls int
}

func (e *echoCompleter) Complete(_ context.Context, prompt string, _ []string) (string, error) {
	e.calls++
	return "echo: " + prompt, nil
}

func TestRateLimited_Delegates(t *testing.T) {
	inner := &echoCompleter{}
	rl := NewRateLimited(inner, 0)

	got, err := rl.CompleteAs(context.Background(), "alice", "hi", nil)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "echo: hi" {
		t.Errorf("got %q", got)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", inner.calls)
	}
}

func TestRateLimited_SameSenderWaits(t *testing.T) {
	rl := NewRateLimited(&echoCompleter{}, 60*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	if _, err := rl.CompleteAs(ctx, "alice", "one", nil); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := rl.CompleteAs(ctx, "alice", "two", nil); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("second call should have waited, elapsed %v", elapsed)
	}
}

func TestRateLimited_SendersIndependent(t *testing.T) {
	rl := NewRateLimited(&echoCompleter{}, time.Minute)
	ctx := context.Background()

	start := time.Now()
	if _, err := rl.CompleteAs(ctx, "alice", "one", nil); err != nil {
		t.Fatalf("alice: %v", err)
	}
	if _, err := rl.CompleteAs(ctx, "bob", "two", nil); err != nil {
		t.Fatalf("bob: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("different senders should not block each other, elapsed %v", elapsed)
	}
}

func TestRateLimited_Usage(t *testing.T) {
	rl := NewRateLimited(&echoCompleter{}, 0)
	ctx := context.Background()

	rl.CompleteAs(ctx, "alice", "a", nil)
	rl.CompleteAs(ctx, "alice", "b", nil)
	rl.CompleteAs(ctx, "bob", "c", nil)

	usage := rl.Usage()
	if usage["alice"] != 2 || usage["bob"] != 1 {
		t.Errorf("unexpected usage counters: %v", usage)
	}
}
