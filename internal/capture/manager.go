package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/face-attendance/internal/recognizer"
)

// SessionStatus is the externally visible state of one capture session.
type SessionStatus struct {
	ID     string `json:"id"`
	Camera string `json:"camera"`
	Stats  Stats  `json:"stats"`
}

type session struct {
	id     string
	camera string
	runner *Runner
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager owns capture sessions started over the API. Sessions are kept
// after they stop so their final stats stay queryable.
type Manager struct {
	engine *recognizer.Engine

	mu       sync.Mutex
	sessions map[string]*session
}

// NewManager creates a session manager bound to one recognition engine.
func NewManager(engine *recognizer.Engine) *Manager {
	return &Manager{
		engine:   engine,
		sessions: make(map[string]*session),
	}
}

// Start launches a capture loop against the source and returns the session
// id. The loop runs until stopped or until the source fails.
func (m *Manager) Start(camera string, source FrameSource, interval time.Duration, tolerance float64) string {
	id := uuid.New().String()
	runner := NewRunner(source, m.engine, interval, tolerance)

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:     id,
		camera: camera,
		runner: runner,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	go func() {
		defer close(s.done)
		runner.Run(ctx)
	}()

	return id
}

// Status returns the status of one session.
func (m *Manager) Status(id string) (SessionStatus, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return SessionStatus{}, false
	}
	return SessionStatus{ID: s.id, Camera: s.camera, Stats: s.runner.Stats()}, true
}

// Stop requests a cooperative stop and waits for the loop to exit.
func (m *Manager) Stop(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown capture session %q", id)
	}

	s.runner.Stop()
	s.cancel()
	<-s.done
	return nil
}

// List returns the status of every session, running or stopped.
func (m *Manager) List() []SessionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SessionStatus, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, SessionStatus{ID: s.id, Camera: s.camera, Stats: s.runner.Stats()})
	}
	return out
}

// StopAll stops every running session, used on server shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		_ = m.Stop(id)
	}
}
