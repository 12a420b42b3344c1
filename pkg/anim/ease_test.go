package anim

import (
	"math"
	"testing"
)

func TestEase(t *testing.T) {
	tests := []struct {
		u        float64
		expected float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{-0.3, 0},  // clamped low
		{1.7, 1},   // clamped high
		{0.25, 0.5 - 0.5*math.Cos(math.Pi*0.25)},
	}

	for _, tt := range tests {
		got := Ease(tt.u)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Ease(%f) = %f, want %f", tt.u, got, tt.expected)
		}
	}
}

func TestEase_Symmetry(t *testing.T) {
	// Ease-in mirrors ease-out around the midpoint.
	for u := 0.0; u <= 1.0; u += 0.05 {
		if math.Abs(Ease(u)-(1-Ease(1-u))) > 1e-12 {
			t.Errorf("Ease(%f) not symmetric: %f vs %f", u, Ease(u), 1-Ease(1-u))
		}
	}
}

func TestEase_Monotonic(t *testing.T) {
	prev := Ease(0)
	for u := 0.01; u <= 1.0; u += 0.01 {
		cur := Ease(u)
		if cur < prev {
			t.Fatalf("Ease decreased at u=%f: %f < %f", u, cur, prev)
		}
		prev = cur
	}
}
