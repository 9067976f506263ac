// Package session holds the one-shot state of a dashboard session. A
// session starts Loading, is resolved exactly once by the loader's
// completion into Ready or Failed, and is read-only from then on. There is
// no second writer, so readers only contend with the single resolution.
package session

import (
	"sync"

	"github.com/Ammaar-Alam/draw-calculator/internal/loader"
	"github.com/Ammaar-Alam/draw-calculator/internal/metrics"
	"github.com/Ammaar-Alam/draw-calculator/internal/models"
)

// Status names the three session phases.
type Status string

const (
	StatusLoading Status = "loading"
	StatusFailed  Status = "failed"
	StatusReady   Status = "ready"
)

// State is an immutable view of the session. Snapshot and Metrics are set on
// resolution; in the Failed case they hold the default snapshot and the
// metrics derived from it, so the view always has something renderable.
type State struct {
	Status   Status
	Err      *loader.LoadError
	Snapshot models.Snapshot
	Metrics  models.DerivedMetrics
}

// Session is the single shared value between the loader goroutine and the
// view. Resolve transitions it at most once; duplicate calls are ignored.
type Session struct {
	mu    sync.RWMutex
	state State
	done  chan struct{}
	once  sync.Once
}

// New returns a session in the Loading state.
func New() *Session {
	return &Session{
		state: State{Status: StatusLoading},
		done:  make(chan struct{}),
	}
}

// Resolve records the loader's result and derives the display metrics. Only
// the first call has any effect.
func (s *Session) Resolve(snap models.Snapshot, loadErr *loader.LoadError) {
	s.once.Do(func() {
		st := State{
			Snapshot: snap,
			Metrics:  metrics.Derive(snap),
		}
		if loadErr != nil {
			st.Status = StatusFailed
			st.Err = loadErr
		} else {
			st.Status = StatusReady
		}

		s.mu.Lock()
		s.state = st
		s.mu.Unlock()
		close(s.done)
	})
}

// State returns the current session state without blocking.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Done is closed when the session has been resolved.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
