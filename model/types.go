package model

import "time"

// FileInfo is an immutable snapshot of one source file, produced by the
// analyzer walk. Content is pre-capped by the walker; the provider layer
// treats it as an opaque payload.
type FileInfo struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Extension string `json:"extension"`
	Language  string `json:"language"`
	Size      int64  `json:"size"`
	Lines     int    `json:"lines"`
	Content   string `json:"content"`
}

// RepoInfo is an immutable snapshot of an analyzed repository.
type RepoInfo struct {
	Name         string              `json:"name"`
	URL          string              `json:"url"`
	ClonePath    string              `json:"-"`
	Description  string              `json:"description"`
	Languages    map[string]int      `json:"languages"`
	FileCount    int                 `json:"file_count"`
	SizeMB       float64             `json:"size_mb"`
	Structure    Structure           `json:"structure"`
	Dependencies map[string][]string `json:"dependencies"`
	Readme       string              `json:"readme"`
	AnalyzedAt   time.Time           `json:"analyzed_at"`
}

// Structure describes the repository directory layout.
type Structure struct {
	Directories []string  `json:"directories"`
	RootFiles   []string  `json:"root_files"`
	Depth       int       `json:"depth"`
	Tree        *TreeNode `json:"tree,omitempty"`
}

// TreeNode is one entry in the directory tree. Directories carry children,
// files carry a size.
type TreeNode struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"` // "directory" or "file"
	Size     int64       `json:"size,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}
