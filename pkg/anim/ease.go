package anim

import "math"

// Ease is the cosine ease-in-out curve: smooth wave-like motion. Input is
// clamped to [0,1]; Ease(0)=0, Ease(1)=1, symmetric around 0.5.
func Ease(u float64) float64 {
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	return 0.5 - 0.5*math.Cos(math.Pi*u)
}
