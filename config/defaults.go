package config

import (
	"path/filepath"
	"strings"
)

// SupportedExtensions maps file extensions to language tags. Files with
// extensions outside this table are skipped by the walker.
var SupportedExtensions = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".java":  "java",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".c":     "c",
	".h":     "c",
	".cs":    "csharp",
	".go":    "go",
	".rs":    "rust",
	".php":   "php",
	".rb":    "ruby",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".r":     "r",
	".sql":   "sql",
	".sh":    "bash",
	".yml":   "yaml",
	".yaml":  "yaml",
	".json":  "json",
	".xml":   "xml",
	".html":  "html",
	".css":   "css",
	".md":    "markdown",
	".txt":   "text",
}

// ignorePatterns are glob patterns for files and directories excluded from
// the walk: VCS metadata, dependency trees, build output, editor state.
var ignorePatterns = []string{
	"__pycache__",
	".git",
	".gitignore",
	"node_modules",
	".env",
	".venv",
	"venv",
	"env",
	".DS_Store",
	"Thumbs.db",
	"*.pyc",
	"*.pyo",
	"*.so",
	"*.egg",
	"*.egg-info",
	"dist",
	"build",
	"vendor",
	".pytest_cache",
	".coverage",
	"*.log",
	".idea",
	".vscode",
	"*.min.js",
	"*.min.css",
	"package-lock.json",
	"yarn.lock",
	"Pipfile.lock",
}

// LanguageForExtension returns the language tag for a file name, or "" when
// the extension is not supported.
func LanguageForExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return SupportedExtensions[ext]
}

// ShouldIgnore reports whether a file or directory base name matches one of
// the ignore patterns.
func ShouldIgnore(name string) bool {
	for _, pattern := range ignorePatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
