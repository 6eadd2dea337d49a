// Package anthropicprovider implements completion on the Anthropic
// Messages API.
package anthropicprovider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultBaseURL = "https://api.anthropic.com"

// Options configures the provider.
type Options struct {
	APIKey       string
	APIBase      string
	Model        string
	MaxTokens    int
	Temperature  float64
	SystemPrompt string
}

type Provider struct {
	client      *anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	system      string
}

func NewProvider(opts Options) *Provider {
	client := anthropic.NewClient(
		option.WithAuthToken(opts.APIKey),
		option.WithBaseURL(normalizeBaseURL(opts.APIBase)),
	)

	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 300
	}

	return &Provider{
		client:      &client,
		model:       opts.Model,
		maxTokens:   maxTokens,
		temperature: opts.Temperature,
		system:      opts.SystemPrompt,
	}
}

func (p *Provider) Complete(ctx context.Context, prompt string, contextLines []string) (string, error) {
	system := []anthropic.TextBlockParam{{Text: p.system}}
	if len(contextLines) > 0 {
		system = append(system, anthropic.TextBlockParam{
			Text: "Recent class chat:\n" + strings.Join(contextLines, "\n"),
		})
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		System:      system,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		MaxTokens:   p.maxTokens,
		Temperature: anthropic.Float(p.temperature),
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude API call: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func normalizeBaseURL(apiBase string) string {
	base := strings.TrimSpace(apiBase)
	if base == "" {
		return defaultBaseURL
	}

	base = strings.TrimRight(base, "/")
	if b, ok := strings.CutSuffix(base, "/v1"); ok {
		base = b
	}
	if base == "" {
		return defaultBaseURL
	}

	return base
}
