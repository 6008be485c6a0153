package capture

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kozaktomas/face-attendance/internal/recognizer"
)

// State describes where a runner is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Stats is a snapshot of a runner's progress.
type Stats struct {
	State      string                   `json:"state"`
	Frames     int                      `json:"frames"`
	Matches    int                      `json:"matches"`
	LastError  string                   `json:"last_error,omitempty"`
	LastResult []recognizer.Recognition `json:"last_result,omitempty"`
	StartedAt  time.Time                `json:"started_at"`
	StoppedAt  *time.Time               `json:"stopped_at,omitempty"`
}

// Runner grabs frames from a source and feeds them through the recognizer at
// a fixed interval. Stopping is cooperative: a stop request takes effect
// between frames, never mid-recognition.
type Runner struct {
	source    FrameSource
	engine    *recognizer.Engine
	interval  time.Duration
	tolerance float64

	mu         sync.Mutex
	state      State
	frames     int
	matches    int
	lastErr    error
	lastResult []recognizer.Recognition
	startedAt  time.Time
	stoppedAt  *time.Time

	stop chan struct{}
}

// NewRunner creates an idle runner. Tolerance <= 0 falls back to the
// engine's configured value.
func NewRunner(source FrameSource, engine *recognizer.Engine, interval time.Duration, tolerance float64) *Runner {
	if tolerance <= 0 {
		tolerance = engine.Tolerance()
	}
	return &Runner{
		source:    source,
		engine:    engine,
		interval:  interval,
		tolerance: tolerance,
		state:     StateIdle,
		stop:      make(chan struct{}),
	}
}

// Run executes the capture loop until Stop is called, the context is
// canceled, or the source fails. The source is closed before Run returns.
func (r *Runner) Run(ctx context.Context) {
	r.mu.Lock()
	if r.state != StateIdle {
		r.mu.Unlock()
		return
	}
	r.state = StateRunning
	r.startedAt = time.Now()
	r.mu.Unlock()

	defer func() {
		if err := r.source.Close(); err != nil {
			log.Printf("closing frame source: %v", err)
		}
		now := time.Now()
		r.mu.Lock()
		r.state = StateStopped
		r.stoppedAt = &now
		r.mu.Unlock()
	}()

	for {
		if r.stopRequested(ctx) {
			return
		}

		frame, err := r.source.Grab(ctx)
		if err != nil {
			// A dead source ends the loop; there is nothing to retry against.
			log.Printf("frame grab failed, stopping capture: %v", err)
			r.setError(err)
			return
		}

		recs, err := r.engine.RecognizeWithTolerance(ctx, frame, r.tolerance)
		if err != nil {
			// Recognition hiccups are transient; keep the loop alive.
			log.Printf("recognition failed on frame: %v", err)
			r.setError(err)
		} else {
			r.recordResult(recs)
		}

		select {
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		case <-time.After(r.interval):
		}
	}
}

// Stop requests a cooperative stop. It returns immediately; the loop exits
// after the frame in flight completes. Safe to call more than once.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRunning {
		r.state = StateStopping
		close(r.stop)
	}
}

// Stats returns a snapshot of the runner's progress.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Stats{
		State:      r.state.String(),
		Frames:     r.frames,
		Matches:    r.matches,
		LastResult: r.lastResult,
		StartedAt:  r.startedAt,
		StoppedAt:  r.stoppedAt,
	}
	if r.lastErr != nil {
		s.LastError = r.lastErr.Error()
	}
	return s
}

func (r *Runner) stopRequested(ctx context.Context) bool {
	select {
	case <-r.stop:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (r *Runner) setError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = err
}

func (r *Runner) recordResult(recs []recognizer.Recognition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	for _, rec := range recs {
		if rec.Matched {
			r.matches++
		}
	}
	r.lastResult = recs
}
