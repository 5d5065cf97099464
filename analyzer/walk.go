package analyzer

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"crackr/config"
	"crackr/model"
)

// collectFiles walks the clone and returns a descriptor for every supported
// source file. Ignored directories are pruned, oversized files are skipped,
// and file content is capped at MaxContentBytes.
func (a *Analyzer) collectFiles(root string) ([]model.FileInfo, error) {
	var files []model.FileInfo

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && config.ShouldIgnore(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if config.ShouldIgnore(name) {
			return nil
		}

		lang := config.LanguageForExtension(name)
		if lang == "" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > a.cfg.MaxFileBytes {
			a.log.WithField("file", name).Debug("skipping oversized file")
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			a.log.WithField("file", name).WithError(err).Debug("skipping unreadable file")
			return nil
		}
		if !utf8.Valid(raw) {
			return nil
		}

		content := string(raw)
		lines := strings.Count(content, "\n") + 1
		if len(content) > a.cfg.MaxContentBytes {
			content = content[:a.cfg.MaxContentBytes]
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		files = append(files, model.FileInfo{
			Name:      name,
			Path:      filepath.ToSlash(rel),
			Extension: strings.ToLower(filepath.Ext(name)),
			Language:  lang,
			Size:      info.Size(),
			Lines:     lines,
			Content:   content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// detectLanguages counts files per language across the collected set.
func detectLanguages(files []model.FileInfo) map[string]int {
	langs := make(map[string]int)
	for _, f := range files {
		langs[f.Language]++
	}
	return langs
}

// directorySizeMB totals the on-disk size of root, skipping ignored entries.
func directorySizeMB(root string) float64 {
	var total int64
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && config.ShouldIgnore(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return float64(total) / (1024 * 1024)
}

// buildStructure summarizes the top of the tree: root-level entries plus a
// nested tree truncated at MaxTreeDepth.
func (a *Analyzer) buildStructure(root string) model.Structure {
	st := model.Structure{Depth: a.cfg.MaxTreeDepth}

	entries, err := os.ReadDir(root)
	if err != nil {
		return st
	}
	for _, e := range entries {
		if config.ShouldIgnore(e.Name()) {
			continue
		}
		if e.IsDir() {
			st.Directories = append(st.Directories, e.Name())
		} else {
			st.RootFiles = append(st.RootFiles, e.Name())
		}
	}
	sort.Strings(st.Directories)
	sort.Strings(st.RootFiles)
	st.Tree = buildTree(root, filepath.Base(root), a.cfg.MaxTreeDepth)
	return st
}

func buildTree(path, name string, depth int) *model.TreeNode {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	node := &model.TreeNode{Name: name}
	if !info.IsDir() {
		node.Type = "file"
		node.Size = info.Size()
		return node
	}
	node.Type = "directory"
	if depth <= 0 {
		return node
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return node
	}
	for _, e := range entries {
		if config.ShouldIgnore(e.Name()) {
			continue
		}
		if child := buildTree(filepath.Join(path, e.Name()), e.Name(), depth-1); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

// extractReadme returns the content of the first README variant found at the
// repository root.
func extractReadme(root string) string {
	for _, candidate := range []string{"README.md", "README.rst", "README.txt", "README", "readme.md"} {
		raw, err := os.ReadFile(filepath.Join(root, candidate))
		if err != nil {
			continue
		}
		if len(raw) > 10000 {
			raw = raw[:10000]
		}
		return string(raw)
	}
	return ""
}
