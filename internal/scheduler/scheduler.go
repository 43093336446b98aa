// Package scheduler drives the dashboard's periodic refresh: a fixed-interval
// poll loop, a suspend/resume lifecycle bound to terminal visibility, and an
// independent one-second countdown toward the backend's next sync.
package scheduler

import (
	"sync"
	"time"
)

// State is the scheduler lifecycle state.
type State string

const (
	StateIdle      State = "idle"
	StatePolling   State = "polling"
	StateSuspended State = "suspended"
)

// RefreshFunc is invoked on every poll tick and on resume. animate is false
// for background and resume refreshes so re-appearing rows do not replay
// their entrance animation.
type RefreshFunc func(animate bool)

// CountdownFunc receives the advisory time remaining until the backend's next
// sync, once per second while polling.
type CountdownFunc func(remaining time.Duration)

// Scheduler is the {Idle, Polling, Suspended} machine. It never refreshes by
// itself before Start; the controller performs the first fetch and then
// starts polling.
type Scheduler struct {
	interval time.Duration
	cadence  time.Duration
	refresh  RefreshFunc
	tick     CountdownFunc
	now      func() time.Time

	mu       sync.Mutex
	state    State
	lastSync time.Time
	stop     chan struct{}
	wg       sync.WaitGroup
}

// New builds a Scheduler. interval is the poll period, cadence the advertised
// backend sync period used by the countdown.
func New(interval, cadence time.Duration, refresh RefreshFunc, tick CountdownFunc) *Scheduler {
	return &Scheduler{
		interval: interval,
		cadence:  cadence,
		refresh:  refresh,
		tick:     tick,
		now:      time.Now,
		state:    StateIdle,
	}
}

// Start enters Polling. Starting twice is a no-op, so callers may invoke it
// after every completed fetch.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return
	}
	s.state = StatePolling
	s.startLoopsLocked()
}

// Suspend stops the poll and countdown timers. Called when the terminal loses
// visibility; no work happens while suspended.
func (s *Scheduler) Suspend() {
	s.mu.Lock()
	if s.state != StatePolling {
		s.mu.Unlock()
		return
	}
	s.state = StateSuspended
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	close(stop)
	s.wg.Wait()
}

// Resume restarts polling after a suspension: one immediate refresh with
// entrance animation suppressed, then the fixed interval again.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	if s.state != StateSuspended {
		s.mu.Unlock()
		return
	}
	s.state = StatePolling
	s.startLoopsLocked()
	s.mu.Unlock()

	s.refresh(false)
}

// Stop tears the scheduler down. Used by tests and shutdown paths.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stop == nil {
		s.state = StateIdle
		s.mu.Unlock()
		return
	}
	stop := s.stop
	s.stop = nil
	s.state = StateIdle
	s.mu.Unlock()

	close(stop)
	s.wg.Wait()
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetLastSync records the backend's last-sync timestamp for the countdown.
func (s *Scheduler) SetLastSync(t time.Time) {
	s.mu.Lock()
	s.lastSync = t
	s.mu.Unlock()
}

// Remaining computes the advisory time until the backend's next sync, clamped
// at zero. Without a known last sync it reports the full cadence.
func (s *Scheduler) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSync.IsZero() {
		return s.cadence
	}
	remaining := s.lastSync.Add(s.cadence).Sub(s.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *Scheduler) startLoopsLocked() {
	stop := make(chan struct{})
	s.stop = stop

	s.wg.Add(2)
	go s.pollLoop(stop)
	go s.countdownLoop(stop)
}

func (s *Scheduler) pollLoop(stop chan struct{}) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.refresh(false)
		}
	}
}

func (s *Scheduler) countdownLoop(stop chan struct{}) {
	defer s.wg.Done()
	if s.tick == nil {
		return
	}
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick(s.Remaining())
		}
	}
}
