package anim

import (
	"time"

	"github.com/gwillem/handwave/pkg/hand"
)

// wristFrame is the floor for wrist tween sampling; the big 270° servos
// ring if driven faster.
const wristFrame = 30 * time.Millisecond

// waveSpan returns the per-finger start offsets of the four wave segments
// and the total span of one finger's wave.
func waveSpan(t Timing) (bottomCurl, topCurl, bottomUncurl, topUncurl, span time.Duration) {
	bottomCurl = 0
	topCurl = t.Delay1
	bottomUncurl = t.Delay1 + t.Delay2
	topUncurl = t.Delay1 + t.Delay2 + t.Delay3
	for _, o := range []time.Duration{bottomCurl, topCurl, bottomUncurl, topUncurl} {
		if o+t.Duration > span {
			span = o + t.Duration
		}
	}
	return
}

// scheduleSingleWave arms a one-finger wave: bottom curls, top curls,
// bottom uncurls, top uncurls, each a tween of the same duration. The
// finger is selected and snapped to its uncurled pose first. Returns the
// total span.
func (p *Player) scheduleSingleWave(tl *Timeline, at time.Duration, name string) time.Duration {
	t := p.getTiming()
	idx, _ := p.prof.FingerIndex(name)
	curl := p.prof.Curl[name]

	oBC, oTC, oBU, oTU, span := waveSpan(t)

	tl.At(at, func() {
		p.sink.SelectFinger(idx)
		p.sink.SendAngle(hand.Bottom, curl.BottomUncurled, true)
		p.sink.SendAngle(hand.Top, curl.TopUncurled, true)
	})

	for _, seg := range []struct {
		ch       hand.Channel
		from, to float64
		offset   time.Duration
	}{
		{hand.Bottom, curl.BottomUncurled, curl.BottomCurled, oBC},
		{hand.Top, curl.TopUncurled, curl.TopCurled, oTC},
		{hand.Bottom, curl.BottomCurled, curl.BottomUncurled, oBU},
		{hand.Top, curl.TopCurled, curl.TopUncurled, oTU},
	} {
		tw := Tween{Finger: -1, Channel: seg.ch, From: seg.from, To: seg.to,
			Duration: t.Duration, Frame: t.Frame}
		tw.Schedule(tl, p.sink, at+seg.offset)
	}

	return span
}

// scheduleWave arms the traveling wave: the single-finger pattern on each
// wave finger in order, offset by the between delay. Every finger is
// snapped to uncurled at the start so the wave is deterministic from any
// prior pose. Returns the total span.
func (p *Player) scheduleWave(tl *Timeline, at time.Duration) time.Duration {
	t := p.getTiming()
	oBC, oTC, oBU, oTU, perFinger := waveSpan(t)

	tl.At(at, func() {
		for _, name := range p.prof.WaveOrder {
			idx, _ := p.prof.FingerIndex(name)
			curl := p.prof.Curl[name]
			p.sink.SendFingerAngle(idx, hand.Bottom, curl.BottomUncurled, true)
			p.sink.SendFingerAngle(idx, hand.Top, curl.TopUncurled, true)
		}
	})

	for k, name := range p.prof.WaveOrder {
		base := at + time.Duration(k)*t.Between
		idx, _ := p.prof.FingerIndex(name)
		curl := p.prof.Curl[name]

		for _, seg := range []struct {
			ch       hand.Channel
			from, to float64
			offset   time.Duration
		}{
			{hand.Bottom, curl.BottomUncurled, curl.BottomCurled, oBC},
			{hand.Top, curl.TopUncurled, curl.TopCurled, oTC},
			{hand.Bottom, curl.BottomCurled, curl.BottomUncurled, oBU},
			{hand.Top, curl.TopCurled, curl.TopUncurled, oTU},
		} {
			tw := Tween{Finger: idx, Channel: seg.ch, From: seg.from, To: seg.to,
				Duration: t.Duration, Frame: t.Frame}
			tw.Schedule(tl, p.sink, base+seg.offset)
		}
	}

	return time.Duration(len(p.prof.WaveOrder)-1)*t.Between + perFinger
}

// scheduleCurl arms the synchronized curl: every wave finger snaps to
// uncurled, then both joints curl together. Returns the span.
func (p *Player) scheduleCurl(tl *Timeline, at time.Duration) time.Duration {
	t := p.getTiming()

	tl.At(at, func() {
		for _, name := range p.prof.WaveOrder {
			idx, _ := p.prof.FingerIndex(name)
			curl := p.prof.Curl[name]
			p.sink.SendFingerAngle(idx, hand.Bottom, curl.BottomUncurled, true)
			p.sink.SendFingerAngle(idx, hand.Top, curl.TopUncurled, true)
		}
	})

	for _, name := range p.prof.WaveOrder {
		idx, _ := p.prof.FingerIndex(name)
		curl := p.prof.Curl[name]
		for _, seg := range []struct {
			ch       hand.Channel
			from, to float64
		}{
			{hand.Bottom, curl.BottomUncurled, curl.BottomCurled},
			{hand.Top, curl.TopUncurled, curl.TopCurled},
		} {
			tw := Tween{Finger: idx, Channel: seg.ch, From: seg.from, To: seg.to,
				Duration: t.Duration, Frame: t.Frame}
			tw.Schedule(tl, p.sink, at)
		}
	}

	return t.Duration
}

// scheduleThumbTouch arms the five tweens of a thumb-touch pose: target
// finger bottom+top and thumb bottom+top+extra, all starting at the same
// offset from whatever pose the registry currently believes, ending on the
// preset. The registry is advanced to the end pose immediately so callers
// reading "current angle" see the destination. Returns the span.
func (p *Player) scheduleThumbTouch(tl *Timeline, at time.Duration, name string) time.Duration {
	t := p.getTiming()
	preset := p.prof.Touch[name]
	targetIdx, _ := p.prof.FingerIndex(name)
	thumbIdx, _ := p.prof.ThumbIndex()

	target := p.state.Snapshot(targetIdx)
	thumb := p.state.Snapshot(thumbIdx)

	for _, seg := range []struct {
		finger   int
		ch       hand.Channel
		from, to float64
	}{
		{targetIdx, hand.Bottom, target.Bottom, preset.Target.Bottom},
		{targetIdx, hand.Top, target.Top, preset.Target.Top},
		{thumbIdx, hand.Bottom, thumb.Bottom, preset.Thumb.Bottom},
		{thumbIdx, hand.Top, thumb.Top, preset.Thumb.Top},
		{thumbIdx, hand.Extra, thumb.Extra, preset.Thumb.Extra},
	} {
		tw := Tween{Finger: seg.finger, Channel: seg.ch, From: seg.from, To: seg.to,
			Duration: t.Duration, Frame: t.Frame}
		tw.Schedule(tl, p.sink, at)
	}

	p.state.Set(targetIdx, hand.Bottom, preset.Target.Bottom)
	p.state.Set(targetIdx, hand.Top, preset.Target.Top)
	p.state.Set(thumbIdx, hand.Bottom, preset.Thumb.Bottom)
	p.state.Set(thumbIdx, hand.Top, preset.Thumb.Top)
	p.state.Set(thumbIdx, hand.Extra, preset.Thumb.Extra)

	return t.Duration
}

// scheduleResetFingers arms an instantaneous snap of every finger joint to
// its init angle. No tweens: one unconditional send per existing channel.
func (p *Player) scheduleResetFingers(tl *Timeline, at time.Duration) {
	tl.At(at, func() {
		for i, f := range p.prof.Fingers {
			p.sink.SendFingerAngle(i, hand.Top, f.TopInit, true)
			p.sink.SendFingerAngle(i, hand.Bottom, f.BottomInit, true)
			if f.HasExtra() {
				p.sink.SendFingerAngle(i, hand.Extra, f.ExtraInit, true)
			}
		}
	})
}

// scheduleWristMove arms one wrist tween on the forced single-target path.
func (p *Player) scheduleWristMove(tl *Timeline, at time.Duration, wrist int, from, to float64, dur time.Duration) {
	ch := hand.Wrist1
	if wrist == 2 {
		ch = hand.Wrist2
	}
	frame := p.getTiming().Frame
	if frame < wristFrame {
		frame = wristFrame
	}
	tw := Tween{Finger: -1, Channel: ch, From: from, To: to, Duration: dur, Frame: frame}
	tw.Schedule(tl, p.sink, at)
}
