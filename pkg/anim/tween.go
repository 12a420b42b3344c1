package anim

import (
	"time"

	"github.com/gwillem/handwave/pkg/hand"
)

// Sink receives the angle stream a tween produces. wire.Commander is the
// production implementation; tests substitute a recorder.
type Sink interface {
	SelectFinger(finger int)
	SendAngle(ch hand.Channel, deg float64, force bool)
	SendFingerAngle(finger int, ch hand.Channel, deg float64, always bool)
}

// DefaultFrame is the tween sampling period when none is configured.
const DefaultFrame = 20 * time.Millisecond

// Tween interpolates one channel from From to To over Duration, sampled
// every Frame, with cosine easing. Finger < 0 addresses the currently
// selected finger (or a wrist) through the forced single-target path;
// otherwise the multi-finger path with deadband suppression is used.
type Tween struct {
	Finger   int
	Channel  hand.Channel
	From     float64
	To       float64
	Duration time.Duration
	Frame    time.Duration
}

// Schedule arms the tween on a timeline, starting at the given offset.
// Elapsed time is recomputed from the scheduler clock on every frame so
// host-loop jitter never compounds, and the final frame always lands
// exactly on To. A non-positive duration degenerates to a single immediate
// send of the end angle.
func (tw Tween) Schedule(tl *Timeline, sink Sink, at time.Duration) {
	if tw.Duration <= 0 {
		tl.At(at, func() { tw.send(sink, tw.To, true) })
		return
	}
	frame := tw.Frame
	if frame <= 0 {
		frame = DefaultFrame
	}

	tl.At(at, func() {
		start := tl.sched.Now()
		var step func()
		step = func() {
			elapsed := tl.sched.Now().Sub(start)
			u := float64(elapsed) / float64(tw.Duration)
			if u >= 1 {
				tw.send(sink, tw.To, true)
				return
			}
			tw.send(sink, tw.From+(tw.To-tw.From)*Ease(u), false)
			tl.At(frame, step)
		}
		step()
	})
}

func (tw Tween) send(sink Sink, deg float64, final bool) {
	if tw.Finger < 0 {
		// Manual throttling governs this channel elsewhere; animation
		// frames always force.
		sink.SendAngle(tw.Channel, deg, true)
		return
	}
	sink.SendFingerAngle(tw.Finger, tw.Channel, deg, final)
}
