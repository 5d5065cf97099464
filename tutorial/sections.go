package tutorial

import (
	"fmt"
	"sort"
	"strings"

	"crackr/model"
)

// defaultSections is the fixed outline used when the provider reply carried
// no sections of its own.
func defaultSections(repo model.RepoInfo) []model.TutorialSection {
	langs := make([]string, 0, len(repo.Languages))
	for lang := range repo.Languages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	langList := strings.Join(langs, ", ")
	if langList == "" {
		langList = "the project's language"
	}

	return []model.TutorialSection{
		{
			Title:         "Getting Started",
			Description:   fmt.Sprintf("Set up a local copy of %s and get it running.", repo.Name),
			Difficulty:    "beginner",
			EstimatedTime: "15 minutes",
			Content:       fmt.Sprintf("Clone the repository from %s and install the dependencies listed in its manifest files.", repo.URL),
			KeyConcepts:   []string{"repository setup", "dependency installation"},
		},
		{
			Title:         "Project Structure",
			Description:   "Walk through the directory layout and where each concern lives.",
			Difficulty:    "beginner",
			EstimatedTime: "20 minutes",
			Content:       fmt.Sprintf("The project contains %d analyzed files written in %s.", repo.FileCount, langList),
			KeyConcepts:   []string{"directory layout", "module organization"},
		},
		{
			Title:         "Core Components",
			Description:   "Study the central modules and how they collaborate.",
			Difficulty:    "intermediate",
			EstimatedTime: "45 minutes",
			Content:       "Read the per-file analyses below, starting with the entry points.",
			KeyConcepts:   []string{"key abstractions", "data flow"},
		},
		{
			Title:         "Architecture Deep Dive",
			Description:   "Understand the design patterns and trade-offs.",
			Difficulty:    "advanced",
			EstimatedTime: "60 minutes",
			Content:       "Trace a request end to end through the architecture diagram.",
			KeyConcepts:   []string{"design patterns", "architecture"},
		},
	}
}

// buildLearningPath derives a reading order from the file set: entry points,
// then core source, then configuration, then tests.
func buildLearningPath(files []model.FileInfo) []model.LearningStep {
	var entry, core, configs, tests []string
	for _, f := range files {
		switch {
		case isEntryPoint(f.Name):
			entry = append(entry, f.Path)
		case isTestFile(f.Name):
			tests = append(tests, f.Path)
		case f.Language == "yaml" || f.Language == "json" || f.Language == "xml":
			configs = append(configs, f.Path)
		case f.Language != "markdown" && f.Language != "text":
			core = append(core, f.Path)
		}
	}
	sort.Strings(entry)
	sort.Strings(core)
	sort.Strings(configs)
	sort.Strings(tests)

	var steps []model.LearningStep
	add := func(title, desc string, paths []string, points []string) {
		if len(paths) == 0 {
			return
		}
		if len(paths) > 5 {
			paths = paths[:5]
		}
		steps = append(steps, model.LearningStep{
			Step:         len(steps) + 1,
			Title:        title,
			Description:  desc,
			FilesToStudy: paths,
			KeyPoints:    points,
		})
	}
	add("Start at the entry points", "See how the program boots and wires itself together.",
		entry, []string{"program startup", "initialization order"})
	add("Read the core modules", "Work through the main source files in path order.",
		core, []string{"core logic", "module boundaries"})
	add("Check the configuration", "See which knobs the project exposes.",
		configs, []string{"configuration surface"})
	add("Study the tests", "The tests document the expected behavior.",
		tests, []string{"expected behavior", "edge cases"})
	return steps
}

func isEntryPoint(name string) bool {
	switch name {
	case "main.py", "app.py", "main.go", "index.js", "index.ts", "main.rs", "Main.java", "main.c", "main.cpp":
		return true
	}
	return false
}

func isTestFile(name string) bool {
	return strings.HasSuffix(name, "_test.go") ||
		strings.HasPrefix(name, "test_") ||
		strings.HasSuffix(name, ".test.js") ||
		strings.HasSuffix(name, ".spec.ts") ||
		strings.HasSuffix(name, "_test.py")
}
