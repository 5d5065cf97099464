package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultOpenRouterURL   = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel = "openai/gpt-4o-mini"

	// Application-identifying headers OpenRouter uses to attribute traffic.
	openRouterReferer = "https://crackr.app"
	openRouterTitle   = "Crackr"
)

// OpenRouterProvider speaks OpenRouter's chat-completions endpoint directly
// over HTTP: a JSON POST with bearer-token auth plus the HTTP-Referer and
// X-Title attribution headers. The wire shape stays inside this file.
type OpenRouterProvider struct {
	adapter
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenRouterProvider creates the OpenRouter adapter. baseURL is
// overridable for tests; empty selects the public endpoint. A missing API key
// leaves the adapter constructed but permanently unavailable.
func NewOpenRouterProvider(baseURL, apiKey string) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = defaultOpenRouterURL
	}

	p := &OpenRouterProvider{
		adapter: newAdapter(ProviderOpenRouter, "OpenRouter"),
		baseURL: baseURL,
		model:   defaultOpenRouterModel,
	}
	if apiKey == "" {
		return p
	}

	p.hasCredential = true
	p.apiKey = apiKey
	p.httpClient = &http.Client{Timeout: 60 * time.Second}
	p.complete = p.completion
	p.enabled = true
	return p
}

type openRouterRequest struct {
	Model       string              `json:"model"`
	Messages    []openRouterMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenRouterProvider) completion(ctx context.Context, system, user string) (string, error) {
	payload := openRouterRequest{
		Model: p.model,
		Messages: []openRouterMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.1,
		MaxTokens:   2000,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode OpenRouter request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build OpenRouter request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OpenRouter request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read OpenRouter response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API error %d: %s", resp.StatusCode, raw)
	}

	var decoded openRouterResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode OpenRouter response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("OpenRouter returned no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}
