// Package service is the optional Fiber HTTP control surface for
// submitting optimizer runs and polling their status, grounded on the
// host's cmd/api/main.go bootstrap (fiber.New + recover/logger/cors
// middleware, customErrorHandler, graceful shutdown) and
// internal/api/handlers.go's fiber.Map response shapes.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/eliaswendt/timetable-optimizer/internal/config"
	"github.com/eliaswendt/timetable-optimizer/internal/runner"
)

// RunStatus is the lifecycle state of a submitted run.
type RunStatus string

const (
	StatusPending RunStatus = "pending"
	StatusRunning RunStatus = "running"
	StatusDone    RunStatus = "done"
	StatusFailed  RunStatus = "failed"
)

// run tracks one submitted optimization job.
type run struct {
	ID     string
	Status RunStatus
	Error  string
	Result runner.Result

	cancel context.CancelFunc
}

// store holds in-memory run state. A single process serves the optional
// control surface, so there is no need for external run persistence
// beyond the CSV/Postgres output runner.Run already produces.
type store struct {
	mu   sync.Mutex
	runs map[string]*run
	cfg  config.Config
}

func newStore(cfg config.Config) *store {
	return &store{runs: make(map[string]*run), cfg: cfg}
}

func newRunID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// submit starts opts as a background run and returns its id immediately.
func (s *store) submit(opts runner.Options) string {
	id := newRunID()
	ctx, cancel := context.WithCancel(context.Background())
	r := &run{ID: id, Status: StatusPending, cancel: cancel}

	s.mu.Lock()
	s.runs[id] = r
	s.mu.Unlock()

	go func() {
		s.mu.Lock()
		r.Status = StatusRunning
		s.mu.Unlock()

		result, err := runner.Run(ctx, opts)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			r.Status = StatusFailed
			r.Error = err.Error()
			return
		}
		r.Status = StatusDone
		r.Result = result
	}()

	return id
}

func (s *store) get(id string) (*run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	return r, ok
}

func (s *store) cancelRun(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return false
	}
	r.cancel()
	return true
}
