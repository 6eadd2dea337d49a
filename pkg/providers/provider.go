// Package providers selects and wraps the AI completion backend.
package providers

import (
	"context"
	"fmt"

	"github.com/dumalabs/duma/pkg/config"
	"github.com/dumalabs/duma/pkg/content"
	anthropicprovider "github.com/dumalabs/duma/pkg/providers/anthropic"
	openaiprovider "github.com/dumalabs/duma/pkg/providers/openai"
)

// Completer produces a short assistant reply for a prompt, given a
// bounded tail of recent chat lines as context.
type Completer interface {
	Complete(ctx context.Context, prompt string, contextLines []string) (string, error)
}

// CreateProvider builds the Completer selected by assistant.provider.
func CreateProvider(cfg *config.Config) (Completer, error) {
	pc := cfg.ActiveProvider()
	if pc.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", cfg.Assistant.Provider)
	}

	switch cfg.Assistant.Provider {
	case "anthropic":
		return anthropicprovider.NewProvider(anthropicprovider.Options{
			APIKey:       pc.APIKey,
			APIBase:      pc.APIBase,
			Model:        cfg.Assistant.Model,
			MaxTokens:    cfg.Assistant.MaxTokens,
			Temperature:  cfg.Assistant.Temperature,
			SystemPrompt: content.SystemPrompt,
		}), nil
	case "openai":
		return openaiprovider.NewProvider(openaiprovider.Options{
			APIKey:       pc.APIKey,
			APIBase:      pc.APIBase,
			Model:        cfg.Assistant.Model,
			MaxTokens:    cfg.Assistant.MaxTokens,
			Temperature:  cfg.Assistant.Temperature,
			SystemPrompt: content.SystemPrompt,
		}), nil
	default:
		return nil, fmt.Errorf("provider %q not supported", cfg.Assistant.Provider)
	}
}
