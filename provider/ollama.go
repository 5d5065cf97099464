package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const defaultOllamaModel = "llama3.1:latest"

// OllamaProvider serves analysis requests through a local Ollama server.
// Ollama has no API key; an explicitly configured host URL acts as its
// credential, so an unconfigured Ollama is never selected.
type OllamaProvider struct {
	adapter
	client *api.Client
	model  string
}

// NewOllamaProvider creates the Ollama adapter. An empty host leaves the
// adapter unavailable; an unparsable host disables it permanently, logged
// once at construction.
func NewOllamaProvider(host string) *OllamaProvider {
	p := &OllamaProvider{
		adapter: newAdapter(ProviderOllama, "Ollama"),
		model:   defaultOllamaModel,
	}
	if host == "" {
		return p
	}

	p.hasCredential = true
	parsed, err := url.Parse(host)
	if err != nil || parsed.Scheme == "" {
		p.log.WithField("host", host).Warn("invalid Ollama host, provider disabled")
		return p
	}

	p.client = api.NewClient(parsed, http.DefaultClient)
	p.complete = p.completion
	p.enabled = true
	return p
}

func (p *OllamaProvider) completion(ctx context.Context, system, user string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  p.model,
		System: system,
		Prompt: user,
		Stream: &stream,
	}

	var sb strings.Builder
	err := p.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama generate failed: %w", err)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("Ollama returned an empty response")
	}
	return sb.String(), nil
}
