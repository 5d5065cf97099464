package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"crackr/analyzer"
	"crackr/tutorial"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"tasks":     s.store.Len(),
		"providers": s.Manager().AvailableProviders(),
	})
}

type analyzeRequest struct {
	GitHubURL string `json:"github_url"`
	Provider  string `json:"provider,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	url := analyzer.SanitizeURL(req.GitHubURL)
	if !analyzer.ValidateURL(url) {
		writeError(w, http.StatusBadRequest, "invalid GitHub repository URL")
		return
	}

	task := s.store.Create(url)
	go s.runAnalysis(task.ID, url, req.Provider)

	writeJSON(w, http.StatusAccepted, map[string]string{
		"task_id": task.ID,
		"status":  task.Status,
	})
}

// runAnalysis is the per-job worker: clone, walk, generate, publish. Every
// failure path lands in a terminal failed status; the handler never sees an
// error.
func (s *Server) runAnalysis(taskID, url, preferred string) {
	ctx := context.Background()

	s.store.Update(taskID, func(t *Task) {
		t.Status = StatusCloning
		t.Progress = 10
		t.Message = "Cloning repository"
	})

	repo, files, err := s.analyzer.Analyze(ctx, url)
	if err != nil {
		s.failTask(taskID, err)
		return
	}
	defer os.RemoveAll(repo.ClonePath)

	s.store.Update(taskID, func(t *Task) {
		t.Status = StatusAnalyzing
		t.Progress = 40
		t.Message = fmt.Sprintf("Analyzing %d files", len(files))
	})

	gen := tutorial.NewGenerator(s.Manager())
	tut := gen.Generate(ctx, preferred, *repo, files, func(done, total int, message string) {
		s.store.Update(taskID, func(t *Task) {
			t.Status = StatusGenerating
			t.Message = message
			if total > 0 {
				t.Progress = 40 + (done*50)/total
			}
		})
	})

	s.store.Update(taskID, func(t *Task) {
		t.Status = StatusCompleted
		t.Progress = 100
		t.Message = "Tutorial ready"
		t.Tutorial = tut
	})
	s.log.WithFields(logrus.Fields{"task": taskID, "repo": repo.Name}).Info("job completed")
}

func (s *Server) failTask(taskID string, err error) {
	s.log.WithField("task", taskID).WithError(err).Warn("job failed")
	s.store.Update(taskID, func(t *Task) {
		t.Status = StatusFailed
		t.Message = "Analysis failed"
		t.Error = err.Error()
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	task, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	task, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if task.Status != StatusCompleted {
		writeError(w, http.StatusConflict, fmt.Sprintf("task is %s, not completed", task.Status))
		return
	}
	writeJSON(w, http.StatusOK, task.Tutorial)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	task, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if task.Status != StatusCompleted {
		writeError(w, http.StatusConflict, fmt.Sprintf("task is %s, not completed", task.Status))
		return
	}

	switch r.PathValue("format") {
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%s_tutorial.md", task.Tutorial.Repository.Name))
		w.Write([]byte(tutorial.ExportMarkdown(task.Tutorial)))
	case "json":
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%s_tutorial.json", task.Tutorial.Repository.Name))
		writeJSON(w, http.StatusOK, task.Tutorial)
	default:
		writeError(w, http.StatusBadRequest, "unsupported export format")
	}
}
