package provider

import (
	"encoding/json"
	"fmt"

	"crackr/model"
)

// maxPromptContent is the per-request cap on file content. Longer content is
// truncated with an explicit marker, never silently dropped.
const maxPromptContent = 4000

const truncationMarker = "... [truncated]"

const fileAnalysisSystemPrompt = `You are an expert code analyst. Analyze the provided code file and generate a comprehensive tutorial-style explanation. Respond with a single JSON object using this schema:
{
  "file_name": "string",
  "description": "string",
  "key_components": [{"name": "string", "type": "function|class|type|constant", "description": "string", "line_number": 1}],
  "purpose": "string",
  "dependencies": ["string"],
  "complexity": "low|medium|high"
}`

const repoSummarySystemPrompt = `You are a technical writer. Generate a comprehensive repository summary and tutorial structure. Respond with a single JSON object using this schema:
{
  "repository_name": "string",
  "overview": "string",
  "architecture": {"description": "string", "patterns": ["string"], "data_flow": "string"},
  "key_features": [{"name": "string", "description": "string"}],
  "tutorial_sections": [{"title": "string", "description": "string", "difficulty": "beginner|intermediate|advanced"}],
  "learning_path": [{"step": 1, "title": "string", "description": "string"}],
  "technical_stack": ["string"],
  "complexity_level": "low|medium|high"
}`

const diagramSystemPrompt = `Generate a Mermaid diagram showing the high-level architecture of this repository. Respond with the diagram text only.`

// capContent truncates content to maxPromptContent characters, appending the
// truncation marker when anything was cut.
func capContent(content string) string {
	if len(content) <= maxPromptContent {
		return content
	}
	return content[:maxPromptContent] + truncationMarker
}

// buildFileAnalysisUser renders the user half of a file-analysis request.
func buildFileAnalysisUser(file model.FileInfo) string {
	return fmt.Sprintf("Analyze this %s file: %s\n\n%s",
		file.Language, file.Name, capContent(file.Content))
}

// buildRepoSummaryUser renders the user half of a repository-summary request.
// Only the lightweight repo facts go over the wire; per-file analyses are
// deliberately not included.
func buildRepoSummaryUser(repo model.RepoInfo) string {
	info := map[string]any{
		"name":       repo.Name,
		"languages":  repo.Languages,
		"file_count": repo.FileCount,
		"size_mb":    repo.SizeMB,
	}
	encoded, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		// Marshal of map[string]any over plain values cannot fail; keep a
		// readable fallback anyway.
		return fmt.Sprintf("Generate summary for repository %s", repo.Name)
	}
	return fmt.Sprintf("Generate summary for: %s", encoded)
}

// buildDiagramUser renders the user half of a diagram request.
func buildDiagramUser(repo model.RepoInfo) string {
	return fmt.Sprintf("Repository: %s, Languages: %s", repo.Name, languageList(repo.Languages))
}
