package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crackr/model"
)

func TestOpenRouterFileAnalysisRoundTrip(t *testing.T) {
	var gotAuth, gotReferer, gotTitle string
	var gotBody openRouterRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")

		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		reply := `{"file_name":"app.py","description":"Flask entry point","key_components":[],"purpose":"Bootstrapping","dependencies":["flask"],"complexity":"low"}`
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": reply}},
			},
		})
	}))
	defer server.Close()

	p := NewOpenRouterProvider(server.URL, "test-key")
	if !p.IsAvailable() {
		t.Fatal("provider with key should be available")
	}

	file := model.FileInfo{Name: "app.py", Language: "python", Content: "print(1)"}
	analysis := p.GenerateFileAnalysis(context.Background(), file)

	if analysis.Description != "Flask entry point" {
		t.Errorf("description = %q, want parsed backend reply", analysis.Description)
	}
	if analysis.Complexity != model.ComplexityLow {
		t.Errorf("complexity = %q", analysis.Complexity)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReferer == "" || gotTitle == "" {
		t.Error("attribution headers must be sent")
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("request must carry a system+user message pair, got %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "app.py") {
		t.Error("user message should name the file")
	}
}

func TestOpenRouterContentCapping(t *testing.T) {
	var userContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openRouterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		userContent = req.Messages[1].Content
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "{}"}}},
		})
	}))
	defer server.Close()

	p := NewOpenRouterProvider(server.URL, "test-key")
	long := strings.Repeat("a", maxPromptContent+500)
	file := model.FileInfo{Name: "big.py", Language: "python", Content: long}

	p.GenerateFileAnalysis(context.Background(), file)

	if !strings.Contains(userContent, truncationMarker) {
		t.Error("over-cap content must carry the truncation marker")
	}
	if strings.Contains(userContent, strings.Repeat("a", maxPromptContent+1)) {
		t.Error("content beyond the cap must not be sent")
	}
	if !strings.Contains(userContent, strings.Repeat("a", maxPromptContent)) {
		t.Error("exactly the first 4000 characters must be sent")
	}
}

func TestOpenRouterTransportErrorFallsBackToMock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewOpenRouterProvider(server.URL, "test-key")
	file := model.FileInfo{Name: "app.py", Language: "python"}

	analysis := p.GenerateFileAnalysis(context.Background(), file)

	// Schema-complete mock result, never an error.
	if analysis.FileName != "app.py" || analysis.Complexity != model.ComplexityMedium {
		t.Errorf("expected mock-shaped fallback, got %+v", analysis)
	}
	if !strings.Contains(analysis.Description, "python") {
		t.Errorf("mock description should mention the language: %q", analysis.Description)
	}
}

func TestOpenRouterDiagramPassthrough(t *testing.T) {
	const diagram = "graph LR\n  A --> B\n  this is not validated"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": diagram}}},
		})
	}))
	defer server.Close()

	p := NewOpenRouterProvider(server.URL, "test-key")
	repo := model.RepoInfo{Name: "demo", Languages: map[string]int{"go": 1}}

	if got := p.GenerateDiagram(context.Background(), repo); got != diagram {
		t.Errorf("diagram must pass through verbatim, got %q", got)
	}
}

func TestOpenRouterUnparseableReplyWraps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "plain prose, no JSON"}}},
		})
	}))
	defer server.Close()

	p := NewOpenRouterProvider(server.URL, "test-key")
	file := model.FileInfo{Name: "x.go", Language: "go"}

	analysis := p.GenerateFileAnalysis(context.Background(), file)

	if analysis.Description != "plain prose, no JSON" {
		t.Errorf("free-text reply should wrap into the description, got %q", analysis.Description)
	}
	if len(analysis.KeyComponents) != 0 {
		t.Error("wrapped reply must keep structured fields empty")
	}
}
