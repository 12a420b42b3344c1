package anim

import "time"

// Timeline owns the pending timers and the running flag for one in-flight
// animation. Offsets passed to At are relative to the moment of the call,
// so scheduling everything up front at t=0 yields absolute offsets, and a
// frame callback re-arming itself gets now-relative delays.
//
// A Timeline must only be touched from the loop goroutine.
type Timeline struct {
	sched   Scheduler
	running bool
	cancels []func()
}

// NewTimeline creates a running timeline.
func NewTimeline(s Scheduler) *Timeline {
	return &Timeline{sched: s, running: true}
}

// Running reports whether the timeline has not been stopped.
func (t *Timeline) Running() bool {
	return t.running
}

// At arms fn to fire after offset. The callback is a no-op if the timeline
// was stopped in the meantime; that running-flag check is the only
// cancellation mechanism the engine has, so at most one already-in-flight
// callback can slip through after Stop.
func (t *Timeline) At(offset time.Duration, fn func()) {
	if !t.running {
		return
	}
	cancel := t.sched.After(offset, func() {
		if !t.running {
			return
		}
		fn()
	})
	t.cancels = append(t.cancels, cancel)
}

// Stop clears the running flag and disarms every pending timer. Idempotent.
func (t *Timeline) Stop() {
	if !t.running {
		return
	}
	t.running = false
	for _, cancel := range t.cancels {
		cancel()
	}
	t.cancels = nil
}
