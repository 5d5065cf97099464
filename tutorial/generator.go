// Package tutorial assembles analyzer snapshots and provider output into a
// complete tutorial document and renders it to markdown.
package tutorial

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"crackr/model"
)

// Engine is the slice of the provider manager the generator needs. Accepting
// the interface keeps the generator testable against a stub engine.
type Engine interface {
	GenerateFileAnalysis(ctx context.Context, preferred string, file model.FileInfo) model.FileAnalysis
	GenerateRepoSummary(ctx context.Context, preferred string, repo model.RepoInfo, analyses []model.FileAnalysis) model.RepoSummary
	GenerateDiagram(ctx context.Context, preferred string, repo model.RepoInfo) string
}

// ProgressFunc receives generation progress: files analyzed so far, total
// files selected, and a human-readable stage message.
type ProgressFunc func(done, total int, message string)

// Tutorial is the final document returned by /results and rendered by the
// markdown exporter.
type Tutorial struct {
	Repository   model.RepoInfo          `json:"repository"`
	Summary      model.RepoSummary       `json:"summary"`
	Diagram      string                  `json:"diagram"`
	FileAnalyses []model.FileAnalysis    `json:"file_analyses"`
	Sections     []model.TutorialSection `json:"sections"`
	LearningPath []model.LearningStep    `json:"learning_path"`
	Provider     string                  `json:"provider"`
	GeneratedAt  time.Time               `json:"generated_at"`
}

// maxFileAnalyses bounds the number of per-file LLM calls per job.
const maxFileAnalyses = 25

// Generator drives the provider engine once per selected file plus once for
// the summary and once for the diagram. It never returns an error: the
// engine's mock fallback guarantees usable output for every call.
type Generator struct {
	engine Engine
	log    *logrus.Entry
}

func NewGenerator(engine Engine) *Generator {
	return &Generator{
		engine: engine,
		log:    logrus.WithField("component", "tutorial"),
	}
}

// Generate builds the full tutorial for an analyzed repository. preferred
// names the provider to try first ("" lets the engine pick). progress may be
// nil.
func (g *Generator) Generate(ctx context.Context, preferred string, repo model.RepoInfo, files []model.FileInfo, progress ProgressFunc) *Tutorial {
	selected := selectFiles(files)

	analyses := make([]model.FileAnalysis, 0, len(selected))
	for i, file := range selected {
		if progress != nil {
			progress(i, len(selected), fmt.Sprintf("Analyzing %s", file.Path))
		}
		analyses = append(analyses, g.engine.GenerateFileAnalysis(ctx, preferred, file))
	}

	if progress != nil {
		progress(len(selected), len(selected), "Generating repository summary")
	}
	summary := g.engine.GenerateRepoSummary(ctx, preferred, repo, analyses)
	diagram := g.engine.GenerateDiagram(ctx, preferred, repo)

	t := &Tutorial{
		Repository:   repo,
		Summary:      summary,
		Diagram:      diagram,
		FileAnalyses: analyses,
		Sections:     summary.TutorialSections,
		LearningPath: summary.LearningPath,
		Provider:     preferred,
		GeneratedAt:  time.Now(),
	}
	if len(t.Sections) == 0 {
		t.Sections = defaultSections(repo)
	}
	if len(t.LearningPath) == 0 {
		t.LearningPath = buildLearningPath(files)
	}

	g.log.WithFields(logrus.Fields{
		"repo":     repo.Name,
		"files":    len(analyses),
		"sections": len(t.Sections),
	}).Info("tutorial generated")
	return t
}

// fileScore ranks a file for analysis priority: entry points first, then
// source code, then config and docs.
func fileScore(f model.FileInfo) int {
	switch f.Name {
	case "main.py", "app.py", "main.go", "index.js", "index.ts", "main.rs", "Main.java":
		return 100
	}
	switch f.Language {
	case "markdown", "text", "json", "yaml", "xml", "html", "css":
		return 10
	default:
		return 50
	}
}

// selectFiles picks the highest-priority files up to maxFileAnalyses,
// preserving a deterministic order for equal scores.
func selectFiles(files []model.FileInfo) []model.FileInfo {
	selected := make([]model.FileInfo, len(files))
	copy(selected, files)
	sort.SliceStable(selected, func(i, j int) bool {
		si, sj := fileScore(selected[i]), fileScore(selected[j])
		if si != sj {
			return si > sj
		}
		return selected[i].Path < selected[j].Path
	})
	if len(selected) > maxFileAnalyses {
		selected = selected[:maxFileAnalyses]
	}
	return selected
}
