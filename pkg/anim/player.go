package anim

import (
	"fmt"
	"sync"
	"time"

	"github.com/gwillem/handwave/pkg/hand"
)

// Timing holds the animation timing parameters.
type Timing struct {
	Duration time.Duration // motion duration per tween
	Delay1   time.Duration // bottom curl start -> top curl start
	Delay2   time.Duration // top curl start -> bottom uncurl start
	Delay3   time.Duration // bottom uncurl start -> top uncurl start
	Frame    time.Duration // tween sampling period
	Between  time.Duration // traveling wave: delay between finger starts
	Loop     bool
	LoopGap  time.Duration
}

// DefaultTiming returns the stock timing values.
func DefaultTiming() Timing {
	return Timing{
		Duration: 650 * time.Millisecond,
		Delay1:   300 * time.Millisecond,
		Delay2:   450 * time.Millisecond,
		Delay3:   250 * time.Millisecond,
		Frame:    20 * time.Millisecond,
		Between:  450 * time.Millisecond,
		LoopGap:  350 * time.Millisecond,
	}
}

// Mode identifies the class of the active animation.
type Mode int

const (
	ModeIdle Mode = iota
	ModeSingleWave
	ModeAllFingers
	ModeCurl
	ModeThumbTouch
	ModeShow
)

func (m Mode) String() string {
	switch m {
	case ModeSingleWave:
		return "single wave"
	case ModeAllFingers:
		return "all fingers"
	case ModeCurl:
		return "curl"
	case ModeThumbTouch:
		return "thumb touch"
	case ModeShow:
		return "show"
	}
	return "idle"
}

// loops reports whether the loop flag applies to this animation class.
// Terminal poses (curl, thumb touch) and the show always end at idle.
func (m Mode) loops() bool {
	return m == ModeSingleWave || m == ModeAllFingers
}

// doneMargin is the guard added after the last scheduled entry before the
// completion callback fires, absorbing host-loop jitter.
const doneMargin = 30 * time.Millisecond

type sessionResetter interface{ ResetSession() }

// clampSink restricts every outgoing angle to the joint's safe range
// before it reaches the command channel. Tween output passes through
// here too, so a curl or touch table exceeding a configured limit can
// never drive a servo past it.
type clampSink struct {
	prof *hand.Profile
	next Sink
}

func (c clampSink) SelectFinger(finger int) {
	c.next.SelectFinger(finger)
}

func (c clampSink) SendAngle(ch hand.Channel, deg float64, force bool) {
	c.next.SendAngle(ch, c.prof.ClampAngle(-1, ch, deg), force)
}

func (c clampSink) SendFingerAngle(finger int, ch hand.Channel, deg float64, always bool) {
	c.next.SendFingerAngle(finger, ch, c.prof.ClampAngle(finger, ch, deg), always)
}

func (c clampSink) ResetSession() {
	if r, ok := c.next.(sessionResetter); ok {
		r.ResetSession()
	}
}

// Player drives animations for one hand. At most one timeline is active at
// a time; starting any animation cancels the previous one first. All
// scheduling and sending happens on the runtime's loop goroutine; the
// exported methods may be called from anywhere.
type Player struct {
	rt    Runtime
	sink  Sink
	prof  *hand.Profile
	state *hand.State

	// Loop-goroutine only.
	tl      *Timeline
	current int

	mu     sync.RWMutex
	mode   Mode
	timing Timing

	logCh chan string
}

// NewPlayer creates a player. The sink is wrapped so every angle is
// clamped to the joint's safe range on the way out.
func NewPlayer(rt Runtime, sink Sink, prof *hand.Profile, state *hand.State) *Player {
	return &Player{
		rt:     rt,
		sink:   clampSink{prof: prof, next: sink},
		prof:   prof,
		state:  state,
		timing: DefaultTiming(),
		logCh:  make(chan string, 10),
	}
}

// Logs returns a channel of status messages for the UI.
func (p *Player) Logs() <-chan string {
	return p.logCh
}

func (p *Player) logf(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case p.logCh <- msg:
	default:
		// Drop if the UI is not draining.
	}
}

// Timing returns the current timing parameters.
func (p *Player) Timing() Timing {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.timing
}

// SetTiming replaces the timing parameters; the next animation picks them
// up.
func (p *Player) SetTiming(t Timing) {
	p.mu.Lock()
	p.timing = t
	p.mu.Unlock()
}

func (p *Player) getTiming() Timing {
	return p.Timing()
}

// Mode returns the class of the active animation, or ModeIdle.
func (p *Player) Mode() Mode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode
}

// Busy reports whether an animation is in flight.
func (p *Player) Busy() bool {
	return p.Mode() != ModeIdle
}

func (p *Player) setMode(m Mode) {
	p.mu.Lock()
	p.mode = m
	p.mu.Unlock()
}

// CurrentFinger returns the finger addressed by manual control.
func (p *Player) CurrentFinger() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// begin tears down any active timeline and schedules a new animation.
// Runs on the loop goroutine. restart, when non-nil, re-runs the animation
// after the loop gap if looping is enabled for this class.
func (p *Player) begin(m Mode, schedule func(tl *Timeline) time.Duration, restart func()) {
	if p.tl != nil {
		p.tl.Stop()
	}
	if r, ok := p.sink.(sessionResetter); ok {
		r.ResetSession()
	}
	tl := NewTimeline(p.rt)
	p.tl = tl
	p.setMode(m)

	span := schedule(tl)
	tl.At(span+doneMargin, func() { p.finish(tl, m, restart) })
}

func (p *Player) finish(tl *Timeline, m Mode, restart func()) {
	if p.tl != tl {
		return
	}
	t := p.getTiming()
	if m.loops() && t.Loop && restart != nil {
		p.logf("%s done, looping in %v", m, t.LoopGap)
		tl.At(t.LoopGap, restart)
		return
	}
	tl.Stop()
	p.tl = nil
	p.setMode(ModeIdle)
	p.logf("%s done", m)
}

// Stop cancels the active animation. Idempotent: stopping an idle player
// is a no-op.
func (p *Player) Stop() {
	p.rt.Post(p.stopNow)
}

func (p *Player) stopNow() {
	if p.tl == nil {
		return
	}
	p.tl.Stop()
	p.tl = nil
	p.setMode(ModeIdle)
	p.logf("stopped")
}

// StartSingleWave runs the four-segment wave on one finger.
func (p *Player) StartSingleWave(name string) error {
	if _, ok := p.prof.FingerIndex(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFinger, name)
	}
	if _, ok := p.prof.Curl[name]; !ok {
		return fmt.Errorf("%w for %q", ErrNoCurlEntry, name)
	}
	p.rt.Post(func() {
		var run func()
		run = func() {
			p.logf("single wave: %s", name)
			p.begin(ModeSingleWave, func(tl *Timeline) time.Duration {
				return p.scheduleSingleWave(tl, 0, name)
			}, run)
		}
		run()
	})
	return nil
}

// StartAllFingersWave runs the traveling wave across all wave fingers.
func (p *Player) StartAllFingersWave() error {
	if err := p.checkWaveOrder(); err != nil {
		return err
	}
	p.rt.Post(func() {
		var run func()
		run = func() {
			p.logf("all-fingers wave")
			p.begin(ModeAllFingers, func(tl *Timeline) time.Duration {
				return p.scheduleWave(tl, 0)
			}, run)
		}
		run()
	})
	return nil
}

// StartCurl curls all wave fingers together. Never loops.
func (p *Player) StartCurl() error {
	if err := p.checkWaveOrder(); err != nil {
		return err
	}
	p.rt.Post(func() {
		p.logf("curl fingers")
		p.begin(ModeCurl, func(tl *Timeline) time.Duration {
			return p.scheduleCurl(tl, 0)
		}, nil)
	})
	return nil
}

// StartThumbTouch moves the thumb to touch the named finger, starting from
// the current believed pose. Never loops.
func (p *Player) StartThumbTouch(name string) error {
	if _, ok := p.prof.Touch[name]; !ok {
		return fmt.Errorf("%w for %q", ErrUnknownPreset, name)
	}
	if _, ok := p.prof.FingerIndex(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFinger, name)
	}
	if _, ok := p.prof.ThumbIndex(); !ok {
		return fmt.Errorf("%w: no finger with extra servo", ErrUnknownFinger)
	}
	p.rt.Post(func() {
		p.logf("thumb touch: %s", name)
		p.begin(ModeThumbTouch, func(tl *Timeline) time.Duration {
			return p.scheduleThumbTouch(tl, 0, name)
		}, nil)
	})
	return nil
}

// RunShow compiles and runs a declarative action sequence as one combined
// timeline. The whole sequence is validated before anything is scheduled.
func (p *Player) RunShow(actions []Action) error {
	if err := ValidateActions(p.prof, actions); err != nil {
		return err
	}
	p.rt.Post(func() {
		p.logf("running show (%d actions)", len(actions))
		p.begin(ModeShow, func(tl *Timeline) time.Duration {
			return p.compileActions(tl, 0, actions)
		}, nil)
	})
	return nil
}

func (p *Player) checkWaveOrder() error {
	for _, name := range p.prof.WaveOrder {
		if _, ok := p.prof.FingerIndex(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFinger, name)
		}
		if _, ok := p.prof.Curl[name]; !ok {
			return fmt.Errorf("%w for %q", ErrNoCurlEntry, name)
		}
	}
	return nil
}

// ResetHand stops any animation and snaps every joint, wrists included,
// back to its init angle. Intentionally not interpolated.
func (p *Player) ResetHand() {
	p.rt.Post(func() {
		p.stopNow()
		for i, f := range p.prof.Fingers {
			p.sink.SendFingerAngle(i, hand.Top, f.TopInit, true)
			p.sink.SendFingerAngle(i, hand.Bottom, f.BottomInit, true)
			if f.HasExtra() {
				p.sink.SendFingerAngle(i, hand.Extra, f.ExtraInit, true)
			}
		}
		p.sink.SendAngle(hand.Wrist1, p.prof.Wrist1Init, true)
		p.sink.SendAngle(hand.Wrist2, p.prof.Wrist2Init, true)
		p.state.Reset()
		p.logf("reset hand to init")
	})
}

// PushInit pushes the init pose to the hardware after connecting, so the
// servos move to known positions instead of twitching.
func (p *Player) PushInit() {
	p.rt.Post(func() {
		for i, f := range p.prof.Fingers {
			p.sink.SendFingerAngle(i, hand.Top, f.TopInit, true)
			p.sink.SendFingerAngle(i, hand.Bottom, f.BottomInit, true)
			if f.HasExtra() {
				p.sink.SendFingerAngle(i, hand.Extra, f.ExtraInit, true)
			}
		}
		p.sink.SendAngle(hand.Wrist1, p.prof.Wrist1Init, true)
		p.sink.SendAngle(hand.Wrist2, p.prof.Wrist2Init, true)
		p.state.Reset()
		p.logf("pushed init pose")
	})
}

// SelectFinger switches manual control to a finger and pushes its believed
// pose so the hardware selection matches the UI. Ignored mid-animation.
func (p *Player) SelectFinger(idx int) {
	p.rt.Post(func() {
		if p.tl != nil || idx < 0 || idx >= len(p.prof.Fingers) {
			return
		}
		p.mu.Lock()
		p.current = idx
		p.mu.Unlock()

		f := p.prof.Fingers[idx]
		p.sink.SelectFinger(idx)
		p.sink.SendAngle(hand.Top, p.state.Get(idx, hand.Top), true)
		p.sink.SendAngle(hand.Bottom, p.state.Get(idx, hand.Bottom), true)
		if f.HasExtra() {
			p.sink.SendAngle(hand.Extra, p.state.Get(idx, hand.Extra), true)
		}
	})
}

// AdjustJoint nudges a joint of the manually selected finger (or a wrist)
// by delta degrees through the throttled manual path. Ignored
// mid-animation.
func (p *Player) AdjustJoint(ch hand.Channel, delta float64) {
	p.rt.Post(func() {
		if p.tl != nil {
			return
		}
		idx := p.current
		if ch == hand.Extra && !p.prof.Fingers[idx].HasExtra() {
			return
		}
		finger := idx
		if ch.IsWrist() {
			finger = 0
		}
		deg := p.prof.ClampAngle(idx, ch, p.state.Get(finger, ch)+delta)
		// Remember the angle even when the throttle suppresses the
		// send, so repeated nudges accumulate.
		p.state.Set(finger, ch, deg)
		p.sink.SendAngle(ch, deg, false)
	})
}

// SetFingerJoint applies an absolute joint angle from an external producer
// (vision tracking). The call is marshaled onto the loop goroutine, which
// is the only writer of the joint registry. Ignored mid-animation.
func (p *Player) SetFingerJoint(finger int, ch hand.Channel, deg float64) {
	p.rt.Post(func() {
		if p.tl != nil || finger < 0 || finger >= len(p.prof.Fingers) {
			return
		}
		p.sink.SendFingerAngle(finger, ch, deg, false)
	})
}
