package model

import "context"

// Provider abstracts LLM provider implementations (OpenAI, Anthropic,
// OpenRouter, Ollama) behind provider-agnostic types.
//
// This interface is defined in the model package (not provider package) to
// avoid import cycles: provider implementations can import model, and
// consumers of analysis results can use the Provider interface without
// importing the provider package.
//
// The Generate methods never return an error. Each degrades internally:
// an unavailable provider, a failed transport call, or an unparseable reply
// all yield a deterministic mock result instead. This is the core contract
// of the orchestration layer: callers always get a usable, fully-populated
// result, never an error path.
type Provider interface {
	// Name returns the provider's registry identifier ("openai", "anthropic", ...).
	Name() string

	// IsAvailable reports whether this provider can serve requests: its
	// credential is present and its client handle constructed successfully.
	// A construction failure is permanent for the provider's lifetime.
	IsAvailable() bool

	// GenerateFileAnalysis produces a structured analysis of one file.
	GenerateFileAnalysis(ctx context.Context, file FileInfo) FileAnalysis

	// GenerateRepoSummary produces a repository-level summary. The analyses
	// argument is accepted for future prompt enrichment but is not currently
	// folded into the request.
	GenerateRepoSummary(ctx context.Context, repo RepoInfo, analyses []FileAnalysis) RepoSummary

	// GenerateDiagram produces a flowchart-style diagram as raw text. The
	// reply is passed through verbatim with no normalization.
	GenerateDiagram(ctx context.Context, repo RepoInfo) string

	// UsageInfo returns non-failing introspection data for display.
	UsageInfo() ProviderUsage
}
