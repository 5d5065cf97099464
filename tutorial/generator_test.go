package tutorial

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crackr/config"
	"crackr/model"
	"crackr/provider"
)

func sampleRepo() model.RepoInfo {
	return model.RepoInfo{
		Name:        "owner_demo",
		URL:         "https://github.com/owner/demo",
		Description: "A demo project.",
		Languages:   map[string]int{"python": 3, "yaml": 1},
		FileCount:   4,
		SizeMB:      0.2,
	}
}

func sampleFiles() []model.FileInfo {
	return []model.FileInfo{
		{Name: "app.py", Path: "app.py", Language: "python", Content: "print('hi')"},
		{Name: "util.py", Path: "src/util.py", Language: "python", Content: "pass"},
		{Name: "test_util.py", Path: "tests/test_util.py", Language: "python", Content: "pass"},
		{Name: "config.yaml", Path: "config.yaml", Language: "yaml", Content: "a: 1"},
	}
}

// The credential-less manager routes everything to the mock provider, which
// makes the whole pipeline deterministic.
func mockEngine() Engine {
	return provider.NewManager(config.Credentials{})
}

func TestGenerateProducesCompleteTutorial(t *testing.T) {
	g := NewGenerator(mockEngine())

	var progressCalls int
	tut := g.Generate(context.Background(), "", sampleRepo(), sampleFiles(),
		func(done, total int, message string) {
			progressCalls++
			assert.LessOrEqual(t, done, total)
			assert.NotEmpty(t, message)
		})

	require.NotNil(t, tut)
	assert.Equal(t, "owner_demo", tut.Repository.Name)
	assert.Len(t, tut.FileAnalyses, 4)
	assert.NotEmpty(t, tut.Summary.Overview)
	assert.NotEmpty(t, tut.Diagram)
	assert.NotEmpty(t, tut.Sections, "fixed sections fill in when the reply has none")
	assert.NotEmpty(t, tut.LearningPath)
	assert.False(t, tut.GeneratedAt.IsZero())
	assert.Equal(t, len(sampleFiles())+1, progressCalls)
}

func TestGenerateNilProgress(t *testing.T) {
	g := NewGenerator(mockEngine())
	tut := g.Generate(context.Background(), "", sampleRepo(), nil, nil)
	require.NotNil(t, tut)
	assert.Empty(t, tut.FileAnalyses)
	assert.NotEmpty(t, tut.Sections)
}

func TestSelectFilesPrioritizesEntryPoints(t *testing.T) {
	files := []model.FileInfo{
		{Name: "readme.md", Path: "readme.md", Language: "markdown"},
		{Name: "util.py", Path: "util.py", Language: "python"},
		{Name: "app.py", Path: "app.py", Language: "python"},
	}
	selected := selectFiles(files)
	require.Len(t, selected, 3)
	assert.Equal(t, "app.py", selected[0].Name)
	assert.Equal(t, "util.py", selected[1].Name)
	assert.Equal(t, "readme.md", selected[2].Name)
}

func TestSelectFilesCapsCount(t *testing.T) {
	files := make([]model.FileInfo, maxFileAnalyses+10)
	for i := range files {
		files[i] = model.FileInfo{Name: "f.py", Path: strings.Repeat("a", i+1) + ".py", Language: "python"}
	}
	assert.Len(t, selectFiles(files), maxFileAnalyses)
}

func TestBuildLearningPathOrdering(t *testing.T) {
	steps := buildLearningPath(sampleFiles())
	require.Len(t, steps, 4)
	assert.Equal(t, 1, steps[0].Step)
	assert.Equal(t, []string{"app.py"}, steps[0].FilesToStudy)
	assert.Equal(t, []string{"src/util.py"}, steps[1].FilesToStudy)
	assert.Equal(t, []string{"config.yaml"}, steps[2].FilesToStudy)
	assert.Equal(t, []string{"tests/test_util.py"}, steps[3].FilesToStudy)
}

func TestExportMarkdown(t *testing.T) {
	g := NewGenerator(mockEngine())
	tut := g.Generate(context.Background(), "", sampleRepo(), sampleFiles(), nil)

	md := ExportMarkdown(tut)
	assert.True(t, strings.HasPrefix(md, "# owner_demo Tutorial"))
	assert.Contains(t, md, "## Overview")
	assert.Contains(t, md, "## Architecture")
	assert.Contains(t, md, "```mermaid")
	assert.Contains(t, md, "## Tutorial")
	assert.Contains(t, md, "## Learning Path")
	assert.Contains(t, md, "### `app.py`")
	assert.Contains(t, md, "- python (3 files)")
}
