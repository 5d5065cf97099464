package model

// Complexity buckets used in analysis results.
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// FileAnalysis is the structured result of analyzing one file. Every field is
// always populated, either from a parsed model reply or from the mock
// generator; callers never see a partially-nil analysis.
type FileAnalysis struct {
	FileName      string      `json:"file_name"`
	Description   string      `json:"description"`
	KeyComponents []Component `json:"key_components"`
	Purpose       string      `json:"purpose"`
	Dependencies  []string    `json:"dependencies"`
	Complexity    string      `json:"complexity"`
}

// Component is one notable building block inside a file (a function, class,
// type, etc.) as identified by the model.
type Component struct {
	Name        string `json:"name"`
	Kind        string `json:"type"`
	Description string `json:"description"`
	Line        int    `json:"line_number,omitempty"`
}

// RepoSummary is the structured repository-level result. Same total-population
// guarantee as FileAnalysis.
type RepoSummary struct {
	RepositoryName   string            `json:"repository_name"`
	Overview         string            `json:"overview"`
	Architecture     Architecture      `json:"architecture"`
	KeyFeatures      []Feature         `json:"key_features"`
	TutorialSections []TutorialSection `json:"tutorial_sections"`
	LearningPath     []LearningStep    `json:"learning_path"`
	TechnicalStack   []string          `json:"technical_stack"`
	ComplexityLevel  string            `json:"complexity_level"`
}

// Architecture is the narrative portion of a repository summary.
type Architecture struct {
	Description string   `json:"description"`
	Patterns    []string `json:"patterns,omitempty"`
	DataFlow    string   `json:"data_flow,omitempty"`
}

// Feature is one highlighted capability of the repository.
type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TutorialSection is one section of the generated tutorial document.
type TutorialSection struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Difficulty    string   `json:"difficulty"`
	EstimatedTime string   `json:"estimated_time,omitempty"`
	Content       string   `json:"content,omitempty"`
	KeyConcepts   []string `json:"key_concepts,omitempty"`
}

// LearningStep is one step in the ordered learning path.
type LearningStep struct {
	Step         int      `json:"step"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	FilesToStudy []string `json:"files_to_study,omitempty"`
	KeyPoints    []string `json:"key_points,omitempty"`
}

// ProviderUsage is non-failing introspection data for one provider, used by
// the admin dashboard.
type ProviderUsage struct {
	Name          string `json:"name"`
	Enabled       bool   `json:"enabled"`
	HasCredential bool   `json:"has_credential"`
}
