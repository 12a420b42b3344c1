package hand

import "sync"

// State is the registry of last-known angles per joint. It seeds animation
// start angles and reports the current believed pose to the UI.
//
// Writes must all come from the animation event loop; producers on other
// goroutines (vision tracking, TUI input) post their sets onto the loop
// instead of calling Set directly. Reads are safe from any goroutine, so
// the UI can render poses without a round trip through the loop.
type State struct {
	mu      sync.RWMutex
	profile *Profile
	top     []float64
	bottom  []float64
	extra   []float64
	wrist   [2]float64
}

// NewState creates a registry seeded from the profile's init angles.
func NewState(p *Profile) *State {
	s := &State{
		profile: p,
		top:     make([]float64, len(p.Fingers)),
		bottom:  make([]float64, len(p.Fingers)),
		extra:   make([]float64, len(p.Fingers)),
	}
	s.Reset()
	return s
}

// Reset restores every joint to its configured init angle.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.profile.Fingers {
		s.top[i] = f.TopInit
		s.bottom[i] = f.BottomInit
		if f.HasExtra() {
			s.extra[i] = f.ExtraInit
		}
	}
	s.wrist[0] = s.profile.Wrist1Init
	s.wrist[1] = s.profile.Wrist2Init
}

// Get returns the last-known angle for a joint, or its init angle if never
// set. Wrist channels ignore the finger index.
func (s *State) Get(finger int, ch Channel) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch ch {
	case Top:
		return s.top[finger]
	case Bottom:
		return s.bottom[finger]
	case Extra:
		return s.extra[finger]
	case Wrist1:
		return s.wrist[0]
	case Wrist2:
		return s.wrist[1]
	}
	return 0
}

// Set overwrites the last-known angle for a joint.
func (s *State) Set(finger int, ch Channel, deg float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ch {
	case Top:
		s.top[finger] = deg
	case Bottom:
		s.bottom[finger] = deg
	case Extra:
		s.extra[finger] = deg
	case Wrist1:
		s.wrist[0] = deg
	case Wrist2:
		s.wrist[1] = deg
	}
}

// Pose is a finger's believed pose, as returned by Snapshot.
type Pose struct {
	Bottom   float64
	Top      float64
	Extra    float64
	HasExtra bool
}

// Snapshot returns what the controller currently believes a finger's pose
// is. Animations that must be continuous from the current position (thumb
// touch) seed their start angles from this.
func (s *State) Snapshot(finger int) Pose {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Pose{
		Bottom:   s.bottom[finger],
		Top:      s.top[finger],
		Extra:    s.extra[finger],
		HasExtra: s.profile.Fingers[finger].HasExtra(),
	}
}
