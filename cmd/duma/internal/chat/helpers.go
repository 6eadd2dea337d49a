package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/dumalabs/duma/cmd/duma/internal"
	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/chat"
	"github.com/dumalabs/duma/pkg/logger"
	"github.com/dumalabs/duma/pkg/providers"
	"github.com/dumalabs/duma/pkg/reminder"
	"github.com/dumalabs/duma/pkg/router"
)

func chatCmd(message, sender string, debug bool) error {
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

	store := reminder.NewStore()
	rt := router.New(router.Options{
		AssistantName: cfg.Assistant.Name,
		ContextLines:  cfg.Chat.ContextLines,
		Store:         store,
		Log:           chat.NewLog(cfg.Chat.LogCapacity),
		Members:       chat.NewMembers(),
		AI:            ai,
	})

	handle := func(ctx context.Context, input string) string {
		return rt.Handle(ctx, bus.InboundMessage{
			Channel:    "cli",
			SenderID:   sender,
			SenderName: sender,
			ChatID:     "direct",
			Content:    input,
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reminders fire straight to the terminal in this mode.
	interval := time.Duration(cfg.Scheduler.PollIntervalSeconds) * time.Second
	scheduler := reminder.NewScheduler(store, interval, func(r reminder.Reminder) error {
		fmt.Printf("\n⏰ Reminder: %s\n", r.Text)
		return nil
	})
	go scheduler.Run(ctx)

	if message != "" {
		fmt.Printf("\n%s %s\n", internal.Logo, handle(ctx, message))
		return nil
	}

	fmt.Printf("%s Interactive mode (Ctrl+C to exit)\n\n", internal.Logo)
	interactiveMode(ctx, handle)

	return nil
}

func interactiveMode(ctx context.Context, handle func(context.Context, string) string) {
	prompt := fmt.Sprintf("%s You: ", internal.Logo)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".duma_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		fmt.Println("Falling back to simple input mode...")
		simpleInteractiveMode(ctx, handle)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			fmt.Println("Goodbye!")
			return
		}

		fmt.Printf("\n%s %s\n\n", internal.Logo, handle(ctx, input))
	}
}

func simpleInteractiveMode(ctx context.Context, handle func(context.Context, string) string) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s You: ", internal.Logo)
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			fmt.Println("Goodbye!")
			return
		}

		fmt.Printf("\n%s %s\n\n", internal.Logo, handle(ctx, input))
	}
}
