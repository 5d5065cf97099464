// Package provider implements the multi-backend LLM orchestration layer.
//
// crackr drives several LLM backends (OpenAI, Anthropic, OpenRouter, Ollama)
// through the common model.Provider interface. The Manager owns one adapter
// per backend, decides which one serves a given request, and guarantees that
// every request terminates in a usable result: when no backend is available,
// or a call fails, or a reply cannot be parsed, the deterministic mock
// generator steps in. Selection never fails and generation never returns an
// error past this package.
//
// # Architecture
//
//   - model.Provider defines the contract (interface, in the model package
//     to avoid import cycles)
//   - OpenAIProvider and AnthropicProvider use the official SDKs
//   - OpenRouterProvider speaks raw HTTP (bearer token plus the HTTP-Referer
//     and X-Title headers OpenRouter uses to attribute traffic)
//   - OllamaProvider talks to a local Ollama server via its API client
//   - MockProvider produces deterministic templated results with no network
//   - Manager selects an adapter per request with first-available fallback
//
// Wire details stay adapter-local: the Manager and the normalizer never see
// a backend's request or reply shape.
//
// # Usage
//
//	m := provider.NewManager(cfg.Credentials)
//	analysis := m.GenerateFileAnalysis(ctx, "", file)
//	summary := m.GenerateRepoSummary(ctx, "", repo, analyses)
//	diagram := m.GenerateDiagram(ctx, "", repo)
package provider

// Registry identifiers for the known backends. Registration order is fixed:
// the first available adapter in this order wins when no explicit preference
// is given.
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderMock       = "mock"
)

// registrationOrder is the fixed adapter iteration order used for fallback
// selection. Insertion order, not a quality ranking.
var registrationOrder = []string{
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderOpenRouter,
	ProviderOllama,
}
