package provider

import (
	"encoding/json"
	"strings"

	"crackr/model"
)

// wrappedTextLimit caps how much of a free-form reply is kept when wrapping
// it into a description-only stub.
const wrappedTextLimit = 500

// Model replies are rarely clean JSON: they arrive wrapped in prose, markdown
// fences, or apologies. Normalization is a three-tier ladder applied
// uniformly to file-analysis and repository-summary replies:
//
//  1. locate the first brace-delimited substring (first '{' to last '}')
//     and strictly parse it against the expected schema
//  2. on failure, wrap the raw reply text into a stub that populates only
//     the description/overview field and leaves structured fields empty
//  3. an empty reply is unrecoverable; the caller falls back to the mock
//
// Diagram replies skip normalization entirely and are passed through
// verbatim. Centralizing the ladder here keeps adapters free of per-backend
// parse handling.

// extractJSONBlock returns the first brace-delimited substring of s, scanning
// greedily from the first '{' to the last '}'.
func extractJSONBlock(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// NormalizeFileAnalysis converts a free-form model reply into a FileAnalysis.
// The second return value is false only when the reply is blank and no usable
// stub can be built.
func NormalizeFileAnalysis(reply string, file model.FileInfo) (model.FileAnalysis, bool) {
	if block, found := extractJSONBlock(reply); found {
		var analysis model.FileAnalysis
		if err := json.Unmarshal([]byte(block), &analysis); err == nil {
			if analysis.FileName == "" {
				analysis.FileName = file.Name
			}
			return analysis, true
		}
	}

	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return model.FileAnalysis{}, false
	}

	return model.FileAnalysis{
		FileName:      file.Name,
		Description:   wrapText(trimmed),
		KeyComponents: []model.Component{},
		Purpose:       "File analysis",
		Dependencies:  []string{},
		Complexity:    model.ComplexityMedium,
	}, true
}

// NormalizeRepoSummary converts a free-form model reply into a RepoSummary.
// Same ladder as NormalizeFileAnalysis.
func NormalizeRepoSummary(reply string, repo model.RepoInfo) (model.RepoSummary, bool) {
	if block, found := extractJSONBlock(reply); found {
		var summary model.RepoSummary
		if err := json.Unmarshal([]byte(block), &summary); err == nil {
			if summary.RepositoryName == "" {
				summary.RepositoryName = repo.Name
			}
			return summary, true
		}
	}

	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return model.RepoSummary{}, false
	}

	return model.RepoSummary{
		RepositoryName:   repo.Name,
		Overview:         wrapText(trimmed),
		Architecture:     model.Architecture{Description: "See overview"},
		KeyFeatures:      []model.Feature{},
		TutorialSections: []model.TutorialSection{},
		LearningPath:     []model.LearningStep{},
		TechnicalStack:   languageNames(repo.Languages),
		ComplexityLevel:  model.ComplexityMedium,
	}, true
}

// wrapText keeps short replies whole and truncates long ones to a readable
// prefix.
func wrapText(s string) string {
	if len(s) <= wrappedTextLimit {
		return s
	}
	return s[:wrappedTextLimit] + "..."
}
