package tutorial

import (
	"fmt"
	"sort"
	"strings"
)

// ExportMarkdown renders the tutorial as a single markdown document.
func ExportMarkdown(t *Tutorial) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Tutorial\n\n", t.Repository.Name)
	fmt.Fprintf(&b, "> %s\n\n", t.Repository.Description)
	fmt.Fprintf(&b, "- **Repository:** %s\n", t.Repository.URL)
	fmt.Fprintf(&b, "- **Files analyzed:** %d\n", len(t.FileAnalyses))
	fmt.Fprintf(&b, "- **Size:** %.1f MB\n", t.Repository.SizeMB)
	fmt.Fprintf(&b, "- **Complexity:** %s\n", t.Summary.ComplexityLevel)
	fmt.Fprintf(&b, "- **Generated:** %s\n\n", t.GeneratedAt.Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "## Overview\n\n%s\n\n", t.Summary.Overview)

	if len(t.Repository.Languages) > 0 {
		b.WriteString("### Languages\n\n")
		langs := make([]string, 0, len(t.Repository.Languages))
		for lang := range t.Repository.Languages {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		for _, lang := range langs {
			fmt.Fprintf(&b, "- %s (%d files)\n", lang, t.Repository.Languages[lang])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Architecture\n\n")
	if t.Summary.Architecture.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", t.Summary.Architecture.Description)
	}
	if len(t.Summary.Architecture.Patterns) > 0 {
		fmt.Fprintf(&b, "**Patterns:** %s\n\n", strings.Join(t.Summary.Architecture.Patterns, ", "))
	}
	if t.Summary.Architecture.DataFlow != "" {
		fmt.Fprintf(&b, "**Data flow:** %s\n\n", t.Summary.Architecture.DataFlow)
	}
	if t.Diagram != "" {
		fmt.Fprintf(&b, "```mermaid\n%s\n```\n\n", strings.TrimSpace(t.Diagram))
	}

	if len(t.Summary.KeyFeatures) > 0 {
		b.WriteString("## Key Features\n\n")
		for _, f := range t.Summary.KeyFeatures {
			fmt.Fprintf(&b, "- **%s**: %s\n", f.Name, f.Description)
		}
		b.WriteString("\n")
	}

	if len(t.Sections) > 0 {
		b.WriteString("## Tutorial\n\n")
		for i, s := range t.Sections {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, s.Title)
			if s.Description != "" {
				fmt.Fprintf(&b, "%s\n\n", s.Description)
			}
			if s.Difficulty != "" || s.EstimatedTime != "" {
				fmt.Fprintf(&b, "*Difficulty: %s, estimated time: %s*\n\n", s.Difficulty, s.EstimatedTime)
			}
			if s.Content != "" {
				fmt.Fprintf(&b, "%s\n\n", s.Content)
			}
			if len(s.KeyConcepts) > 0 {
				fmt.Fprintf(&b, "Key concepts: %s\n\n", strings.Join(s.KeyConcepts, ", "))
			}
		}
	}

	if len(t.LearningPath) > 0 {
		b.WriteString("## Learning Path\n\n")
		for _, step := range t.LearningPath {
			fmt.Fprintf(&b, "### Step %d: %s\n\n%s\n\n", step.Step, step.Title, step.Description)
			if len(step.FilesToStudy) > 0 {
				b.WriteString("Files to study:\n\n")
				for _, f := range step.FilesToStudy {
					fmt.Fprintf(&b, "- `%s`\n", f)
				}
				b.WriteString("\n")
			}
			if len(step.KeyPoints) > 0 {
				fmt.Fprintf(&b, "Key points: %s\n\n", strings.Join(step.KeyPoints, ", "))
			}
		}
	}

	if len(t.FileAnalyses) > 0 {
		b.WriteString("## File Analyses\n\n")
		for _, fa := range t.FileAnalyses {
			fmt.Fprintf(&b, "### `%s`\n\n%s\n\n", fa.FileName, fa.Description)
			if fa.Purpose != "" {
				fmt.Fprintf(&b, "**Purpose:** %s\n\n", fa.Purpose)
			}
			if len(fa.KeyComponents) > 0 {
				b.WriteString("| Component | Type | Description |\n|---|---|---|\n")
				for _, c := range fa.KeyComponents {
					fmt.Fprintf(&b, "| %s | %s | %s |\n", c.Name, c.Kind, c.Description)
				}
				b.WriteString("\n")
			}
			if len(fa.Dependencies) > 0 {
				fmt.Fprintf(&b, "Dependencies: %s\n\n", strings.Join(fa.Dependencies, ", "))
			}
			fmt.Fprintf(&b, "Complexity: %s\n\n", fa.Complexity)
		}
	}

	if len(t.Summary.TechnicalStack) > 0 {
		fmt.Fprintf(&b, "## Technical Stack\n\n%s\n\n", strings.Join(t.Summary.TechnicalStack, ", "))
	}

	return b.String()
}
