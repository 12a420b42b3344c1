package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/handwave/pkg/hand"
)

func TestPlayer_TravelingWaveOffsets(t *testing.T) {
	p, clk, sink := newTestPlayer()
	prof := hand.DefaultProfile()

	require.NoError(t, p.StartAllFingersWave())
	assert.Equal(t, ModeAllFingers, p.Mode())

	clk.advance(5 * time.Second)

	// The opening snap puts every wave finger in the uncurled pose.
	snaps := 0
	for _, s := range sink.sends {
		if s.at == 0 && s.forced && s.finger >= 0 {
			snaps++
		}
	}
	assert.GreaterOrEqual(t, snaps, 2*len(prof.WaveOrder))

	// Each finger's first tween frame lands one between-delay after the
	// previous finger's.
	between := testTiming().Between
	for k, name := range prof.WaveOrder {
		idx, ok := prof.FingerIndex(name)
		require.True(t, ok)
		var first *recSend
		for i, s := range sink.sends {
			if s.finger == idx && !s.forced {
				first = &sink.sends[i]
				break
			}
		}
		require.NotNil(t, first, "no tween frames for %s", name)
		assert.Equal(t, time.Duration(k)*between, first.at)
	}

	assert.False(t, p.Busy(), "wave must finish without looping")
}

func TestPlayer_SingleWaveSelectsAndSnaps(t *testing.T) {
	p, clk, sink := newTestPlayer()
	prof := hand.DefaultProfile()
	idx, _ := prof.FingerIndex("Pinky")

	require.NoError(t, p.StartSingleWave("Pinky"))
	clk.advance(5 * time.Second)

	require.NotEmpty(t, sink.selected)
	assert.Equal(t, idx, sink.selected[0])

	// All wave traffic rides the selected-finger path.
	for _, s := range sink.sends {
		assert.Equal(t, -1, s.finger)
	}
	assert.False(t, p.Busy())
}

func TestPlayer_LoopRestartsUntilStopped(t *testing.T) {
	p, clk, sink := newTestPlayer()
	tm := testTiming()
	tm.Loop = true
	p.SetTiming(tm)

	require.NoError(t, p.StartSingleWave("Pinky"))

	// One cycle spans 500ms; run long enough for several restarts.
	clk.advance(3 * time.Second)
	assert.True(t, p.Busy(), "looping wave stays active")
	assert.GreaterOrEqual(t, sink.resets, 2, "each restart opens a fresh session")

	p.Stop()
	assert.False(t, p.Busy())
	n := len(sink.sends)
	clk.advance(3 * time.Second)
	assert.Equal(t, n, len(sink.sends), "no traffic after stop")

	p.Stop() // stopping an idle player is fine
	assert.False(t, p.Busy())
}

func TestPlayer_CurlIsTerminal(t *testing.T) {
	p, clk, sink := newTestPlayer()
	tm := testTiming()
	tm.Loop = true
	p.SetTiming(tm)

	require.NoError(t, p.StartCurl())
	assert.Equal(t, ModeCurl, p.Mode())

	clk.advance(2 * time.Second)
	assert.False(t, p.Busy(), "curl ends at the curled pose even with looping on")

	n := len(sink.sends)
	clk.advance(2 * time.Second)
	assert.Equal(t, n, len(sink.sends))
}

func TestPlayer_ThumbTouchAdvancesRegistryImmediately(t *testing.T) {
	clk := newFakeClock()
	sink := newRecSink(clk)
	prof := hand.DefaultProfile()
	state := hand.NewState(&prof)
	p := NewPlayer(clk, sink, &prof, state)
	p.SetTiming(testTiming())

	require.NoError(t, p.StartThumbTouch("Pointer"))

	// The registry reflects the destination as soon as the gesture is
	// scheduled, before any frame has gone out.
	thumbIdx, ok := prof.ThumbIndex()
	require.True(t, ok)
	preset := prof.Touch["Pointer"]
	got := state.Snapshot(thumbIdx)
	assert.Equal(t, preset.Thumb.Bottom, got.Bottom)
	assert.Equal(t, preset.Thumb.Top, got.Top)
	assert.Equal(t, preset.Thumb.Extra, got.Extra)

	clk.advance(2 * time.Second)
	assert.False(t, p.Busy(), "thumb touch never loops")

	last := sink.sends[len(sink.sends)-1]
	assert.True(t, last.forced)
}

func TestPlayer_StartReplacesActiveAnimation(t *testing.T) {
	p, clk, sink := newTestPlayer()

	require.NoError(t, p.StartSingleWave("Pinky"))
	clk.advance(50 * time.Millisecond)
	require.NoError(t, p.StartCurl())
	assert.Equal(t, ModeCurl, p.Mode())

	clk.advance(5 * time.Second)
	assert.False(t, p.Busy())
	assert.Equal(t, 2, sink.resets, "each start opens a fresh session")
}

func TestPlayer_RejectsUnknownNames(t *testing.T) {
	p, _, _ := newTestPlayer()

	assert.ErrorIs(t, p.StartSingleWave("Nope"), ErrUnknownFinger)
	assert.ErrorIs(t, p.StartThumbTouch("Nope"), ErrUnknownPreset)
}

func TestPlayer_ManualControlLockedOutWhileAnimating(t *testing.T) {
	p, clk, sink := newTestPlayer()

	require.NoError(t, p.StartCurl())
	n := len(sink.sends)
	sel := len(sink.selected)

	p.AdjustJoint(hand.Top, 5)
	p.SelectFinger(2)
	assert.Equal(t, n, len(sink.sends), "nudges are ignored mid-animation")
	assert.Equal(t, sel, len(sink.selected))

	clk.advance(5 * time.Second)
	require.False(t, p.Busy())

	p.SelectFinger(2)
	assert.Equal(t, 2, sink.selected[len(sink.selected)-1])
	assert.Equal(t, 2, p.CurrentFinger())
}

func TestPlayer_AdjustJointAccumulates(t *testing.T) {
	clk := newFakeClock()
	sink := newRecSink(clk)
	prof := hand.DefaultProfile()
	state := hand.NewState(&prof)
	p := NewPlayer(clk, sink, &prof, state)
	p.SetTiming(testTiming())

	init := state.Get(0, hand.Top)
	p.AdjustJoint(hand.Top, 5)
	p.AdjustJoint(hand.Top, 5)

	// Angles accumulate in the registry even if the wire throttle would
	// have suppressed the second send.
	assert.Equal(t, init+10, state.Get(0, hand.Top))

	manual := sink.onChannel(hand.Top)
	require.Len(t, manual, 2)
	for _, s := range manual {
		assert.False(t, s.forced, "manual nudges ride the throttled path")
	}
}

func TestPlayer_AdjustJointClampsToRange(t *testing.T) {
	clk := newFakeClock()
	sink := newRecSink(clk)
	prof := hand.DefaultProfile()
	state := hand.NewState(&prof)
	p := NewPlayer(clk, sink, &prof, state)

	p.AdjustJoint(hand.Top, 100000)
	r := prof.JointRange(0, hand.Top)
	assert.Equal(t, r.Max, state.Get(0, hand.Top))

	p.AdjustJoint(hand.Wrist1, -100000)
	wr := prof.JointRange(0, hand.Wrist1)
	assert.Equal(t, wr.Min, state.Get(0, hand.Wrist1))
	assert.NotEmpty(t, sink.sends)
}

func TestPlayer_ResetHandCoversWrists(t *testing.T) {
	p, clk, sink := newTestPlayer()
	prof := hand.DefaultProfile()

	require.NoError(t, p.StartCurl())
	clk.advance(50 * time.Millisecond)
	p.ResetHand()
	assert.False(t, p.Busy(), "reset stops the active animation")

	w1 := sink.onChannel(hand.Wrist1)
	require.NotEmpty(t, w1)
	assert.Equal(t, prof.Wrist1Init, w1[len(w1)-1].deg)
	w2 := sink.onChannel(hand.Wrist2)
	require.NotEmpty(t, w2)
	assert.Equal(t, prof.Wrist2Init, w2[len(w2)-1].deg)

	n := len(sink.sends)
	clk.advance(5 * time.Second)
	assert.Equal(t, n, len(sink.sends), "reset snaps, it does not tween")
}

func TestPlayer_PushInitSeedsEveryChannel(t *testing.T) {
	p, _, sink := newTestPlayer()
	prof := hand.DefaultProfile()

	p.PushInit()

	want := 2 // wrists
	for _, f := range prof.Fingers {
		want += 2
		if f.HasExtra() {
			want++
		}
	}
	assert.Len(t, sink.sends, want)
	for _, s := range sink.sends {
		assert.True(t, s.forced)
	}
}
