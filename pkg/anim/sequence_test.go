package anim

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/handwave/pkg/hand"
)

func TestShow_DelayThenWrist(t *testing.T) {
	p, clk, sink := newTestPlayer()

	err := p.RunShow([]Action{
		Delay(100),
		Wrist(1, 0, 90, 200),
	})
	require.NoError(t, err)

	clk.advance(99 * time.Millisecond)
	assert.Empty(t, sink.sends, "the delay must hold everything back")

	clk.advance(time.Second)
	wrist := sink.onChannel(hand.Wrist1)
	require.NotEmpty(t, wrist)
	assert.Equal(t, 100*time.Millisecond, wrist[0].at, "wrist starts after the delay")
	assert.Equal(t, 0.0, wrist[0].deg)
	assert.Equal(t, 90.0, wrist[len(wrist)-1].deg)
	assert.Equal(t, 300*time.Millisecond, wrist[len(wrist)-1].at)
	assert.False(t, p.Busy())
}

func TestShow_ParallelConsumesLongest(t *testing.T) {
	p, clk, sink := newTestPlayer()

	err := p.RunShow([]Action{
		Parallel(
			Sequence(
				Delay(50),
				Wrist(1, 135, 90, 100),
			),
			Wrist(2, 135, 45, 400),
		),
	})
	require.NoError(t, err)

	clk.advance(2 * time.Second)

	w1 := sink.onChannel(hand.Wrist1)
	w2 := sink.onChannel(hand.Wrist2)
	require.NotEmpty(t, w1)
	require.NotEmpty(t, w2)
	assert.Equal(t, 50*time.Millisecond, w1[0].at, "nested sequence offsets inside the group")
	assert.Equal(t, time.Duration(0), w2[0].at, "parallel members start together")
	assert.Equal(t, 45.0, w2[len(w2)-1].deg)
	assert.False(t, p.Busy())
}

func TestShow_ResetFingersIsInstant(t *testing.T) {
	p, clk, sink := newTestPlayer()

	require.NoError(t, p.RunShow([]Action{ResetFingers()}))
	clk.advance(time.Second)

	// One unconditional send per existing channel, no tween frames.
	prof := hand.DefaultProfile()
	want := 0
	for _, f := range prof.Fingers {
		want += 2
		if f.HasExtra() {
			want++
		}
	}
	require.Len(t, sink.sends, want)
	for _, s := range sink.sends {
		assert.True(t, s.forced)
		assert.Equal(t, time.Duration(0), s.at)
	}
	assert.False(t, p.Busy())
}

func TestShow_ValidationRejectsBeforeScheduling(t *testing.T) {
	p, clk, sink := newTestPlayer()

	tests := []struct {
		name    string
		actions []Action
	}{
		{"unknown touch preset", []Action{ThumbTouch("Nope")}},
		{"bad wrist index", []Action{Wrist(3, 0, 90, 100)}},
		{"unknown kind", []Action{{Kind: "bogus"}}},
		{"nested bad action", []Action{Parallel(Delay(10), Sequence(Wrist(0, 0, 1, 1)))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.RunShow(tt.actions)
			assert.Error(t, err)
		})
	}

	clk.advance(time.Second)
	assert.Empty(t, sink.sends, "a rejected sequence must not partially execute")
	assert.False(t, p.Busy())
}

func TestDefaultShow_IsValid(t *testing.T) {
	prof := hand.DefaultProfile()
	assert.NoError(t, ValidateActions(&prof, DefaultShow()))
}

func TestLoadShow(t *testing.T) {
	actions := []Action{
		Wrist(2, 110, 160, 600),
		Delay(200),
		ThumbTouch("Pointer"),
		Parallel(FingerWave(), Wrist(1, 145, 60, 1200)),
		ResetFingers(),
	}
	data, err := json.MarshalIndent(actions, "", "  ")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "show.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadShow(path)
	require.NoError(t, err)
	assert.Equal(t, actions, loaded)

	_, err = LoadShow(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
