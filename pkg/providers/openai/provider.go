// Package openaiprovider implements completion on the OpenAI Chat
// Completions API.
package openaiprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

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
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
	system      string
}

func NewProvider(opts Options) *Provider {
	clientOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.APIBase != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.APIBase))
	}

	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 300
	}

	return &Provider{
		client:      openai.NewClient(clientOpts...),
		model:       opts.Model,
		maxTokens:   maxTokens,
		temperature: opts.Temperature,
		system:      opts.SystemPrompt,
	}
}

func (p *Provider) Complete(ctx context.Context, prompt string, contextLines []string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(p.system),
	}
	if len(contextLines) > 0 {
		messages = append(messages,
			openai.SystemMessage("Recent class chat:\n"+strings.Join(contextLines, "\n")))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    messages,
		MaxTokens:   openai.Int(p.maxTokens),
		Temperature: openai.Float(p.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai API returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
