package anim

import (
	"time"

	"github.com/gwillem/handwave/pkg/hand"
)

// fakeClock is a deterministic Runtime: a virtual clock with a timer
// queue. Post executes inline, which matches the single-goroutine model
// the engine runs under.
type fakeClock struct {
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration, fn func()) func() {
	t := &fakeTimer{at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return func() { t.stopped = true }
}

func (c *fakeClock) Post(fn func()) { fn() }

// advance runs the clock forward, firing due timers in time order. Timers
// armed by fired callbacks participate in the same pass.
func (c *fakeClock) advance(d time.Duration) {
	deadline := c.now.Add(d)
	for {
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at.After(deadline) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		next.fn()
	}
	c.now = deadline
}

// recSink records every command with its virtual-clock offset.
type recSend struct {
	finger int // -1 for the single-target path
	ch     hand.Channel
	deg    float64
	forced bool
	at     time.Duration
}

type recSink struct {
	clk      *fakeClock
	start    time.Time
	selected []int
	sends    []recSend
	resets   int
}

func newRecSink(clk *fakeClock) *recSink {
	return &recSink{clk: clk, start: clk.now}
}

func (s *recSink) SelectFinger(finger int) {
	s.selected = append(s.selected, finger)
}

func (s *recSink) SendAngle(ch hand.Channel, deg float64, force bool) {
	s.sends = append(s.sends, recSend{-1, ch, deg, force, s.clk.now.Sub(s.start)})
}

func (s *recSink) SendFingerAngle(finger int, ch hand.Channel, deg float64, always bool) {
	s.sends = append(s.sends, recSend{finger, ch, deg, always, s.clk.now.Sub(s.start)})
}

func (s *recSink) ResetSession() { s.resets++ }

func (s *recSink) onChannel(ch hand.Channel) []recSend {
	var out []recSend
	for _, snd := range s.sends {
		if snd.ch == ch {
			out = append(out, snd)
		}
	}
	return out
}

func testTiming() Timing {
	return Timing{
		Duration: 200 * time.Millisecond,
		Delay1:   100 * time.Millisecond,
		Delay2:   100 * time.Millisecond,
		Delay3:   100 * time.Millisecond,
		Frame:    50 * time.Millisecond,
		Between:  150 * time.Millisecond,
		LoopGap:  100 * time.Millisecond,
	}
}

func newTestPlayer() (*Player, *fakeClock, *recSink) {
	clk := newFakeClock()
	sink := newRecSink(clk)
	prof := hand.DefaultProfile()
	p := NewPlayer(clk, sink, &prof, hand.NewState(&prof))
	p.SetTiming(testTiming())
	return p, clk, sink
}
