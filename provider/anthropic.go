package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider serves analysis requests through Anthropic's official
// Go SDK.
type AnthropicProvider struct {
	adapter
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicProvider creates the Anthropic adapter. A missing API key
// leaves the adapter constructed but permanently unavailable.
func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	p := &AnthropicProvider{
		adapter: newAdapter(ProviderAnthropic, "Anthropic"),
		model:   anthropic.ModelClaude3_5Haiku20241022,
	}
	if apiKey == "" {
		return p
	}

	p.hasCredential = true
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	p.client = &client
	p.complete = p.completion
	p.enabled = true
	return p
}

func (p *AnthropicProvider) completion(ctx context.Context, system, user string) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 2000,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic completion failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("Anthropic returned no text content")
	}
	return sb.String(), nil
}
