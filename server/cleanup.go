package server

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// cleanupLoop periodically drops expired tasks and removes clone directories
// left behind by crashed or interrupted jobs.
func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.store.Sweep()
			dirs := s.sweepTempDir()
			if removed > 0 || dirs > 0 {
				s.log.WithField("tasks", removed).WithField("dirs", dirs).Info("cleanup pass")
			}
		}
	}
}

// sweepTempDir removes clone directories older than the task TTL. Normal
// jobs delete their own clone; this catches the ones that never got there.
func (s *Server) sweepTempDir() int {
	entries, err := os.ReadDir(s.cfg.Analyzer.TempDir)
	if err != nil {
		return 0
	}
	cutoff := time.Now().Add(-s.cfg.TaskTTL)
	removed := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.cfg.Analyzer.TempDir, e.Name())
		if err := os.RemoveAll(path); err == nil {
			removed++
		}
	}
	return removed
}
