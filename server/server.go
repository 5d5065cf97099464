// Package server exposes the analysis pipeline over HTTP: job submission,
// polling, tutorial export, and a small admin surface for provider
// credentials. All state is in memory.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"crackr/analyzer"
	"crackr/config"
	"crackr/provider"
)

// Server wires the analyzer, the provider manager, and the task store behind
// an http.ServeMux. The manager lives behind an atomic pointer so admin key
// rotation swaps in a fresh manager without touching in-flight jobs.
type Server struct {
	cfg      *config.Config
	store    *TaskStore
	analyzer *analyzer.Analyzer
	manager  atomic.Pointer[provider.Manager]
	sessions *sessionStore
	log      *logrus.Entry
}

func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:      cfg,
		store:    NewTaskStore(cfg.TaskTTL),
		analyzer: analyzer.New(cfg.Analyzer),
		sessions: newSessionStore(),
		log:      logrus.WithField("component", "server"),
	}
	s.manager.Store(provider.NewManager(cfg.Credentials))
	return s
}

// Manager returns the current provider manager.
func (s *Server) Manager() *provider.Manager {
	return s.manager.Load()
}

// Routes builds the HTTP mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /status/{id}", s.handleStatus)
	mux.HandleFunc("GET /results/{id}", s.handleResults)
	mux.HandleFunc("GET /export/{id}/{format}", s.handleExport)
	mux.HandleFunc("POST /admin/login", s.handleLogin)
	mux.HandleFunc("GET /admin/providers", s.requireAdmin(s.handleProviderStatus))
	mux.HandleFunc("POST /admin/providers", s.requireAdmin(s.handleUpdateCredentials))
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully. The cleanup
// sweeper runs for the lifetime of the server.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.cleanupLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
