package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"crackr/model"
)

// completionFunc issues one system+user request against a backend and returns
// the raw text reply. One call, one attempt: adapters never retry.
type completionFunc func(ctx context.Context, system, user string) (string, error)

// adapter carries the request/fallback logic shared by every real backend.
// Concrete providers embed it and contribute only construction and a
// completionFunc; the generate methods, the mock fallback ladder, and the
// normalization hand-off live here exactly once.
//
// An adapter is stateless across calls apart from its immutable credential
// and client handle, so concurrent use from multiple workers is safe as long
// as the underlying transport client is.
type adapter struct {
	name          string
	label         string
	hasCredential bool
	enabled       bool
	complete      completionFunc
	log           *logrus.Entry
}

func newAdapter(name, label string) adapter {
	return adapter{
		name:  name,
		label: label,
		log:   logrus.WithField("provider", name),
	}
}

func (a *adapter) Name() string { return a.name }

// IsAvailable is true iff the credential is present and the client handle
// constructed without error. A construction failure disables the adapter for
// its lifetime; there is no runtime re-check.
func (a *adapter) IsAvailable() bool {
	return a.hasCredential && a.enabled && a.complete != nil
}

func (a *adapter) UsageInfo() model.ProviderUsage {
	return model.ProviderUsage{
		Name:          a.label,
		Enabled:       a.IsAvailable(),
		HasCredential: a.hasCredential,
	}
}

// GenerateFileAnalysis never surfaces an error: unavailable, failed, or
// unparseable all degrade to the deterministic mock result.
func (a *adapter) GenerateFileAnalysis(ctx context.Context, file model.FileInfo) model.FileAnalysis {
	if !a.IsAvailable() {
		return mockFileAnalysis(a.label, file)
	}

	reply, err := a.complete(ctx, fileAnalysisSystemPrompt, buildFileAnalysisUser(file))
	if err != nil {
		a.log.WithError(err).Warn("file analysis request failed, using mock result")
		return mockFileAnalysis(a.label, file)
	}

	if analysis, ok := NormalizeFileAnalysis(reply, file); ok {
		return analysis
	}
	a.log.Warn("file analysis reply could not be normalized, using mock result")
	return mockFileAnalysis(a.label, file)
}

// GenerateRepoSummary follows the same degradation path as file analysis.
// The analyses argument is accepted for future prompt enrichment but not
// currently sent to the backend.
func (a *adapter) GenerateRepoSummary(ctx context.Context, repo model.RepoInfo, _ []model.FileAnalysis) model.RepoSummary {
	if !a.IsAvailable() {
		return mockRepoSummary(a.label, repo)
	}

	reply, err := a.complete(ctx, repoSummarySystemPrompt, buildRepoSummaryUser(repo))
	if err != nil {
		a.log.WithError(err).Warn("repository summary request failed, using mock result")
		return mockRepoSummary(a.label, repo)
	}

	if summary, ok := NormalizeRepoSummary(reply, repo); ok {
		return summary
	}
	a.log.Warn("repository summary reply could not be normalized, using mock result")
	return mockRepoSummary(a.label, repo)
}

// GenerateDiagram returns the backend reply verbatim; diagram text is never
// normalized or validated.
func (a *adapter) GenerateDiagram(ctx context.Context, repo model.RepoInfo) string {
	if !a.IsAvailable() {
		return mockDiagram(a.label, repo)
	}

	reply, err := a.complete(ctx, diagramSystemPrompt, buildDiagramUser(repo))
	if err != nil {
		a.log.WithError(err).Warn("diagram request failed, using mock result")
		return mockDiagram(a.label, repo)
	}
	return reply
}
