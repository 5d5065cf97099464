// Package analyzer clones a public repository and walks its tree to build the
// immutable snapshots (model.RepoInfo, model.FileInfo) consumed by the
// provider layer. It owns path hygiene: ignored directories, unsupported
// extensions, oversized files, and binary-ish content never reach the LLM
// orchestration.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"crackr/config"
	"crackr/model"
)

// Analyzer performs one repository analysis per call. It is stateless across
// calls and safe for concurrent use.
type Analyzer struct {
	cfg config.AnalyzerConfig
	log *logrus.Entry
}

// New creates an Analyzer with the given walk limits.
func New(cfg config.AnalyzerConfig) *Analyzer {
	return &Analyzer{
		cfg: cfg,
		log: logrus.WithField("component", "analyzer"),
	}
}

// Analyze clones githubURL into a fresh temp directory and returns the
// repository snapshot plus the per-file descriptors. The clone directory is
// recorded in RepoInfo.ClonePath; the caller removes it when the analysis
// job finishes (or the cleanup sweeper catches it later).
func (a *Analyzer) Analyze(ctx context.Context, githubURL string) (*model.RepoInfo, []model.FileInfo, error) {
	githubURL = SanitizeURL(githubURL)
	if !ValidateURL(githubURL) {
		return nil, nil, fmt.Errorf("invalid GitHub URL: %s", githubURL)
	}

	repoName, err := RepoName(githubURL)
	if err != nil {
		return nil, nil, err
	}

	// Best-effort size pre-check; API failures never block the analysis.
	if sizeKB, err := a.fetchRepoSizeKB(ctx, githubURL); err == nil {
		if float64(sizeKB)/1024 > a.cfg.MaxRepoSizeMB {
			return nil, nil, fmt.Errorf("repository exceeds the %.0f MB limit", a.cfg.MaxRepoSizeMB)
		}
	}

	if err := os.MkdirAll(a.cfg.TempDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	clonePath := filepath.Join(a.cfg.TempDir,
		fmt.Sprintf("%s_%s", repoName, time.Now().Format("20060102_150405")))

	if err := cloneRepository(ctx, githubURL, clonePath); err != nil {
		os.RemoveAll(clonePath)
		return nil, nil, err
	}

	files, err := a.collectFiles(clonePath)
	if err != nil {
		os.RemoveAll(clonePath)
		return nil, nil, fmt.Errorf("repository walk failed: %w", err)
	}

	repo := &model.RepoInfo{
		Name:         repoName,
		URL:          githubURL,
		ClonePath:    clonePath,
		Description:  extractDescription(clonePath),
		Languages:    detectLanguages(files),
		FileCount:    len(files),
		SizeMB:       directorySizeMB(clonePath),
		Structure:    a.buildStructure(clonePath),
		Dependencies: parseDependencies(clonePath),
		Readme:       extractReadme(clonePath),
		AnalyzedAt:   time.Now(),
	}

	a.log.WithFields(logrus.Fields{
		"repo":  repoName,
		"files": len(files),
		"size":  repo.SizeMB,
	}).Info("repository analyzed")

	return repo, files, nil
}

// extractDescription returns the first non-heading README paragraph line, or
// a placeholder when no README exists.
func extractDescription(root string) string {
	readme := extractReadme(root)
	if readme == "" {
		return "No description available"
	}
	for _, line := range strings.Split(readme, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '[' || trimmed[0] == '!' {
			continue
		}
		if len(trimmed) > 200 {
			return trimmed[:200] + "..."
		}
		return trimmed
	}
	return "No description available"
}
