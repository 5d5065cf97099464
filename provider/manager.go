package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"crackr/config"
	"crackr/model"
)

// Manager owns the constructed adapters and picks one per request.
//
// Adapters are built once from a credential snapshot and held for the
// Manager's lifetime; the map is read-only after construction, so a Manager
// is safe for concurrent use. Credentials changed later are not picked up;
// callers rotate keys by constructing a new Manager from the new snapshot
// and atomically swapping the reference.
type Manager struct {
	providers map[string]model.Provider
	mock      model.Provider
	log       *logrus.Entry
}

// NewManager constructs one adapter per known backend from the given
// credential snapshot. Backends without a credential are still registered so
// status introspection covers them; they simply never pass IsAvailable.
func NewManager(creds config.Credentials) *Manager {
	m := &Manager{
		providers: map[string]model.Provider{
			ProviderOpenAI:     NewOpenAIProvider(creds.OpenAIKey),
			ProviderAnthropic:  NewAnthropicProvider(creds.AnthropicKey),
			ProviderOpenRouter: NewOpenRouterProvider("", creds.OpenRouterKey),
			ProviderOllama:     NewOllamaProvider(creds.OllamaHost),
		},
		mock: NewMockProvider(),
		log:  logrus.WithField("component", "provider-manager"),
	}

	available := m.AvailableProviders()
	if len(available) == 0 {
		m.log.Warn("no LLM providers available, falling back to mock responses")
	} else {
		m.log.WithField("providers", available).Info("initialized LLM providers")
	}
	return m
}

// GetProvider resolves an adapter for one request. An explicitly named,
// available adapter wins; otherwise the first available adapter in
// registration order; otherwise the mock. Selection never fails.
func (m *Manager) GetProvider(preferred string) model.Provider {
	if preferred != "" {
		if p, ok := m.providers[preferred]; ok && p.IsAvailable() {
			return p
		}
	}

	for _, name := range registrationOrder {
		if p := m.providers[name]; p.IsAvailable() {
			if preferred != "" {
				m.log.WithFields(logrus.Fields{
					"preferred": preferred,
					"selected":  name,
				}).Info("preferred provider unavailable, falling back")
			}
			return p
		}
	}

	return m.mock
}

// AvailableProviders returns the names of adapters currently passing
// IsAvailable, in registration order.
func (m *Manager) AvailableProviders() []string {
	var names []string
	for _, name := range registrationOrder {
		if m.providers[name].IsAvailable() {
			names = append(names, name)
		}
	}
	return names
}

// ProviderStatus returns introspection data for every real adapter, keyed by
// registry name. Used by the admin dashboard.
func (m *Manager) ProviderStatus() map[string]model.ProviderUsage {
	status := make(map[string]model.ProviderUsage, len(m.providers))
	for name, p := range m.providers {
		status[name] = p.UsageInfo()
	}
	return status
}

// GenerateFileAnalysis resolves a provider and delegates. preferred may be
// empty for first-available selection.
func (m *Manager) GenerateFileAnalysis(ctx context.Context, preferred string, file model.FileInfo) model.FileAnalysis {
	return m.GetProvider(preferred).GenerateFileAnalysis(ctx, file)
}

// GenerateRepoSummary resolves a provider and delegates.
func (m *Manager) GenerateRepoSummary(ctx context.Context, preferred string, repo model.RepoInfo, analyses []model.FileAnalysis) model.RepoSummary {
	return m.GetProvider(preferred).GenerateRepoSummary(ctx, repo, analyses)
}

// GenerateDiagram resolves a provider and delegates.
func (m *Manager) GenerateDiagram(ctx context.Context, preferred string, repo model.RepoInfo) string {
	return m.GetProvider(preferred).GenerateDiagram(ctx, repo)
}
