package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"crackr/tutorial"
)

// Task lifecycle states. A task moves forward only; completed and failed are
// terminal.
const (
	StatusStarted    = "started"
	StatusCloning    = "cloning"
	StatusAnalyzing  = "analyzing"
	StatusGenerating = "generating"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Task tracks one analysis job from submission to expiry.
type Task struct {
	ID        string             `json:"task_id"`
	URL       string             `json:"github_url"`
	Status    string             `json:"status"`
	Progress  int                `json:"progress"`
	Message   string             `json:"message"`
	Error     string             `json:"error,omitempty"`
	Tutorial  *tutorial.Tutorial `json:"-"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (t *Task) terminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

// TaskStore is the in-memory task registry. Tasks are never persisted;
// terminal tasks expire ttl after their last update.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	ttl   time.Duration
}

func NewTaskStore(ttl time.Duration) *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*Task),
		ttl:   ttl,
	}
}

// Create registers a new task for url and returns it.
func (s *TaskStore) Create(url string) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	t := &Task{
		ID:        uuid.NewString(),
		URL:       url,
		Status:    StatusStarted,
		Message:   "Task queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks[t.ID] = t
	return *t
}

// Get returns a snapshot of the task. Terminal tasks past their ttl are
// removed on access and reported as missing.
func (s *TaskStore) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	if t.terminal() && time.Since(t.UpdatedAt) > s.ttl {
		delete(s.tasks, id)
		return Task{}, false
	}
	return *t, true
}

// Update applies fn to the task under the store lock and stamps UpdatedAt.
func (s *TaskStore) Update(id string, fn func(*Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	fn(t)
	t.UpdatedAt = time.Now()
}

// Sweep removes expired terminal tasks and stale non-terminal tasks (jobs
// whose worker died without reaching a terminal state). Returns the number
// removed.
func (s *TaskStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, t := range s.tasks {
		stale := time.Since(t.UpdatedAt) > s.ttl
		if (t.terminal() && stale) || time.Since(t.UpdatedAt) > 4*s.ttl {
			delete(s.tasks, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
