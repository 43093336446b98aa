package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestStateTransitions(t *testing.T) {
	s := New(time.Hour, time.Hour, func(bool) {}, nil)

	if s.State() != StateIdle {
		t.Fatalf("initial state = %q, want idle", s.State())
	}

	s.Start()
	if s.State() != StatePolling {
		t.Fatalf("after Start = %q, want polling", s.State())
	}

	// Start is idempotent once polling.
	s.Start()
	if s.State() != StatePolling {
		t.Fatalf("after second Start = %q", s.State())
	}

	s.Suspend()
	if s.State() != StateSuspended {
		t.Fatalf("after Suspend = %q, want suspended", s.State())
	}

	s.Resume()
	if s.State() != StatePolling {
		t.Fatalf("after Resume = %q, want polling", s.State())
	}

	s.Stop()
	if s.State() != StateIdle {
		t.Fatalf("after Stop = %q, want idle", s.State())
	}
}

func TestSuspendFromIdleAndResumeFromPollingAreNoOps(t *testing.T) {
	s := New(time.Hour, time.Hour, func(bool) {}, nil)

	s.Suspend()
	if s.State() != StateIdle {
		t.Fatalf("Suspend from idle changed state to %q", s.State())
	}

	s.Start()
	defer s.Stop()
	s.Resume()
	if s.State() != StatePolling {
		t.Fatalf("Resume while polling changed state to %q", s.State())
	}
}

func TestPollLoopInvokesSuppressedRefresh(t *testing.T) {
	var count atomic.Int32
	var animated atomic.Bool
	s := New(10*time.Millisecond, time.Hour, func(animate bool) {
		count.Add(1)
		if animate {
			animated.Store(true)
		}
	}, nil)

	s.Start()
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	if count.Load() == 0 {
		t.Fatal("poll loop never fired")
	}
	if animated.Load() {
		t.Error("background refresh must suppress entrance animation")
	}
}

func TestSuspendStopsRefreshes(t *testing.T) {
	var count atomic.Int32
	s := New(10*time.Millisecond, time.Hour, func(bool) { count.Add(1) }, nil)

	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Suspend()

	at := count.Load()
	time.Sleep(50 * time.Millisecond)
	if count.Load() != at {
		t.Fatalf("refreshes continued while suspended: %d -> %d", at, count.Load())
	}
}

func TestResumeTriggersImmediateSuppressedRefresh(t *testing.T) {
	type call struct{ animate bool }
	calls := make(chan call, 16)
	s := New(time.Hour, time.Hour, func(animate bool) { calls <- call{animate} }, nil)

	s.Start()
	s.Suspend()
	s.Resume()
	defer s.Stop()

	select {
	case c := <-calls:
		if c.animate {
			t.Error("resume refresh must suppress entrance animation")
		}
	case <-time.After(time.Second):
		t.Fatal("resume did not trigger an immediate refresh")
	}
}

func TestRemainingClampsAtZero(t *testing.T) {
	s := New(time.Hour, 5*time.Minute, func(bool) {}, nil)

	// No known sync yet: full cadence.
	if got := s.Remaining(); got != 5*time.Minute {
		t.Fatalf("Remaining without sync = %v, want 5m", got)
	}

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.SetLastSync(now.Add(-2 * time.Minute))
	if got := s.Remaining(); got != 3*time.Minute {
		t.Fatalf("Remaining = %v, want 3m", got)
	}

	// A sync older than the cadence clamps to zero, never negative.
	s.SetLastSync(now.Add(-10 * time.Minute))
	if got := s.Remaining(); got != 0 {
		t.Fatalf("Remaining = %v, want 0", got)
	}
}

func TestCountdownTicks(t *testing.T) {
	ticks := make(chan time.Duration, 4)
	s := New(time.Hour, time.Minute, func(bool) {}, func(remaining time.Duration) {
		select {
		case ticks <- remaining:
		default:
		}
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ticks:
	case <-time.After(3 * time.Second):
		t.Fatal("countdown never ticked")
	}
}
