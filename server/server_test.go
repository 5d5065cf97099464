package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"crackr/config"
	"crackr/model"
	"crackr/tutorial"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Analyzer.TempDir = t.TempDir()
	cfg.CleanupInterval = time.Hour
	cfg.TaskTTL = time.Hour
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "hunter2"
	return cfg
}

// completedTask seeds the store with a finished job backed by mock output.
func completedTask(t *testing.T, s *Server) string {
	t.Helper()
	task := s.store.Create("https://github.com/owner/demo")
	gen := tutorial.NewGenerator(s.Manager())
	tut := gen.Generate(context.Background(), "", sampleRepo(), nil, nil)
	s.store.Update(task.ID, func(tk *Task) {
		tk.Status = StatusCompleted
		tk.Progress = 100
		tk.Tutorial = tut
	})
	return task.ID
}

func sampleRepo() model.RepoInfo {
	return model.RepoInfo{
		Name:        "owner_demo",
		URL:         "https://github.com/owner/demo",
		Description: "A demo project.",
		Languages:   map[string]int{"python": 2},
		FileCount:   2,
	}
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeRejectsInvalidURL(t *testing.T) {
	s := New(testConfig(t))
	mux := s.Routes()

	rec := doJSON(t, mux, http.MethodPost, "/analyze", `{"github_url": "https://example.com/x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/analyze", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusUnknownTask(t *testing.T) {
	s := New(testConfig(t))
	rec := doJSON(t, s.Routes(), http.MethodGet, "/status/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResultsLifecycle(t *testing.T) {
	s := New(testConfig(t))
	mux := s.Routes()

	task := s.store.Create("https://github.com/owner/demo")
	rec := doJSON(t, mux, http.MethodGet, "/results/"+task.ID, "")
	assert.Equal(t, http.StatusConflict, rec.Code, "results before completion conflict")

	id := completedTask(t, s)
	rec = doJSON(t, mux, http.MethodGet, "/results/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tut tutorial.Tutorial
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tut))
	assert.Equal(t, "owner_demo", tut.Repository.Name)
	assert.NotEmpty(t, tut.Summary.Overview)
}

func TestExportFormats(t *testing.T) {
	s := New(testConfig(t))
	mux := s.Routes()
	id := completedTask(t, s)

	rec := doJSON(t, mux, http.MethodGet, "/export/"+id+"/markdown", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "owner_demo_tutorial.md")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "# owner_demo Tutorial"))

	rec = doJSON(t, mux, http.MethodGet, "/export/"+id+"/json", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/export/"+id+"/pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	s := New(testConfig(t))
	rec := doJSON(t, s.Routes(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
}

func TestTaskStoreExpiry(t *testing.T) {
	store := NewTaskStore(10 * time.Millisecond)
	task := store.Create("https://github.com/owner/demo")
	store.Update(task.ID, func(t *Task) { t.Status = StatusCompleted })

	_, ok := store.Get(task.ID)
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = store.Get(task.ID)
	assert.False(t, ok, "terminal tasks expire after the ttl")
}

func TestTaskStoreSweep(t *testing.T) {
	store := NewTaskStore(10 * time.Millisecond)
	done := store.Create("https://github.com/owner/a")
	store.Update(done.ID, func(t *Task) { t.Status = StatusFailed })
	running := store.Create("https://github.com/owner/b")
	store.Update(running.ID, func(t *Task) { t.Status = StatusGenerating })

	time.Sleep(20 * time.Millisecond)
	removed := store.Sweep()
	assert.Equal(t, 1, removed)

	_, ok := store.Get(running.ID)
	assert.True(t, ok, "non-terminal tasks survive the first sweep")
}

func TestAdminLoginAndProviderStatus(t *testing.T) {
	s := New(testConfig(t))
	mux := s.Routes()

	rec := doJSON(t, mux, http.MethodGet, "/admin/providers", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/admin/login", `{"username": "admin", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/admin/login", `{"username": "admin", "password": "hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = doJSON(t, mux, http.MethodGet, "/admin/providers", "", cookies[0])
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Providers map[string]struct {
			Enabled bool `json:"enabled"`
		} `json:"providers"`
		Available []string `json:"available"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Providers, 4)
	assert.Empty(t, body.Available)
}

func TestAdminLoginBcryptHash(t *testing.T) {
	cfg := testConfig(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.Admin.Password = ""
	cfg.Admin.PasswordHash = string(hash)

	s := New(cfg)
	mux := s.Routes()

	rec := doJSON(t, mux, http.MethodPost, "/admin/login", `{"username": "admin", "password": "s3cret"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/admin/login", `{"username": "admin", "password": "nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCredentialRotationSwapsManager(t *testing.T) {
	s := New(testConfig(t))
	mux := s.Routes()

	rec := doJSON(t, mux, http.MethodPost, "/admin/login", `{"username": "admin", "password": "hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]

	before := s.Manager()
	assert.Empty(t, before.AvailableProviders())

	rec = doJSON(t, mux, http.MethodPost, "/admin/providers",
		`{"openrouter_key": "or-test-key"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	after := s.Manager()
	assert.NotSame(t, before, after, "rotation must install a fresh manager")
	assert.Equal(t, []string{"openrouter"}, after.AvailableProviders())

	var body struct {
		Available []string `json:"available"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"openrouter"}, body.Available)
}
