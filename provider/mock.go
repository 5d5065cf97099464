package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"crackr/model"
)

// The mock path is a first-class degraded operating mode, not a test double.
// It runs when no backend is available, when a backend call fails, and when a
// reply cannot be normalized. Output is deterministic and templated from the
// input so it stays referentially tied to the request, and it is always
// schema-complete: callers treat it as a valid (if low-quality) result.

// MockProvider is the terminal fallback adapter. It is always available and
// never touches the network.
type MockProvider struct{}

// NewMockProvider returns the deterministic fallback provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string { return ProviderMock }

func (p *MockProvider) IsAvailable() bool { return true }

func (p *MockProvider) GenerateFileAnalysis(_ context.Context, file model.FileInfo) model.FileAnalysis {
	return mockFileAnalysis("Mock", file)
}

func (p *MockProvider) GenerateRepoSummary(_ context.Context, repo model.RepoInfo, _ []model.FileAnalysis) model.RepoSummary {
	return mockRepoSummary("Mock", repo)
}

func (p *MockProvider) GenerateDiagram(_ context.Context, repo model.RepoInfo) string {
	return mockDiagram("Mock", repo)
}

func (p *MockProvider) UsageInfo() model.ProviderUsage {
	return model.ProviderUsage{Name: "Mock", Enabled: true, HasCredential: false}
}

func mockFileAnalysis(label string, file model.FileInfo) model.FileAnalysis {
	return model.FileAnalysis{
		FileName:    file.Name,
		Description: fmt.Sprintf("%s analysis for %s file", label, file.Language),
		KeyComponents: []model.Component{
			{Name: "main", Kind: "function", Description: "Main functionality", Line: 1},
		},
		Purpose:      "Core functionality",
		Dependencies: []string{"standard library"},
		Complexity:   model.ComplexityMedium,
	}
}

func mockRepoSummary(label string, repo model.RepoInfo) model.RepoSummary {
	return model.RepoSummary{
		RepositoryName: repo.Name,
		Overview:       fmt.Sprintf("%s repository analysis for %s", label, repo.Name),
		Architecture:   model.Architecture{Description: "Modular architecture"},
		KeyFeatures: []model.Feature{
			{Name: "Core", Description: "Main features"},
		},
		TutorialSections: []model.TutorialSection{
			{Title: "Getting Started", Description: "Introduction", Difficulty: "beginner"},
		},
		LearningPath: []model.LearningStep{
			{Step: 1, Title: "Overview", Description: "Understand the project"},
		},
		TechnicalStack:  languageNames(repo.Languages),
		ComplexityLevel: model.ComplexityMedium,
	}
}

func mockDiagram(label string, repo model.RepoInfo) string {
	return fmt.Sprintf(`graph TD
    A[%s] --> B[%s Analysis]
    B --> C[Files: %d]
    B --> D[Languages: %s]`,
		repo.Name, label, repo.FileCount, languageList(repo.Languages))
}

// languageNames returns the repository's language tags in stable order.
func languageNames(languages map[string]int) []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// languageList renders language tags as a comma-separated string.
func languageList(languages map[string]int) string {
	return strings.Join(languageNames(languages), ", ")
}
