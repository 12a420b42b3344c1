// Package anim is the animation engine: a single-goroutine event loop, a
// cancellable timeline scheduler, time-based tweens with cosine easing, a
// gesture library, and a compiler for declarative action sequences.
package anim

import "time"

// Scheduler arms deferred callbacks. The returned cancel func disarms the
// callback if it has not fired yet.
type Scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func()) (cancel func())
}

// Runtime is what the player needs from its host: deferred callbacks plus
// the ability to marshal arbitrary work onto the loop goroutine.
type Runtime interface {
	Scheduler
	Post(fn func())
}

// Loop is a single-goroutine cooperative event loop. Every posted or
// deferred callback executes on the loop goroutine, which serializes all
// access to the joint registry and the command channel. Producers on other
// goroutines (TUI input, vision tracking) interact with the engine only
// through Post.
type Loop struct {
	posts chan func()
	quit  chan struct{}
	done  chan struct{}
}

// NewLoop creates a stopped loop; call Start to run it.
func NewLoop() *Loop {
	return &Loop{
		posts: make(chan func(), 64),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start launches the loop goroutine.
func (l *Loop) Start() {
	go l.run()
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.posts:
			fn()
		case <-l.quit:
			return
		}
	}
}

// Post marshals fn onto the loop goroutine. Posts after Close are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.posts <- fn:
	case <-l.quit:
	}
}

// Now returns the current wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// After arms fn to run on the loop goroutine after d.
func (l *Loop) After(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, func() { l.Post(fn) })
	return func() { t.Stop() }
}

// Close stops the loop and waits for the goroutine to exit. Callbacks
// already armed with After may still fire their timers but will be dropped.
func (l *Loop) Close() {
	close(l.quit)
	<-l.done
}
