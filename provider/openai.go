package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider serves analysis requests through OpenAI's official Go SDK.
type OpenAIProvider struct {
	adapter
	client openai.Client
	model  string
}

// NewOpenAIProvider creates the OpenAI adapter. A missing API key leaves the
// adapter constructed but permanently unavailable; it is never an error.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	p := &OpenAIProvider{
		adapter: newAdapter(ProviderOpenAI, "OpenAI"),
		model:   defaultOpenAIModel,
	}
	if apiKey == "" {
		return p
	}

	p.hasCredential = true
	p.client = openai.NewClient(option.WithAPIKey(apiKey))
	p.complete = p.completion
	p.enabled = true
	return p
}

func (p *OpenAIProvider) completion(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(2000),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
