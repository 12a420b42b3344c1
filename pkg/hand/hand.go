// Package hand describes the physical hand: finger layout, servo channel
// assignments, curl tables, thumb-touch poses, and the mutable registry of
// last-known joint angles.
package hand

// Channel identifies which joint of the addressed finger a command affects.
// Wrist channels are global and ignore the finger selection.
type Channel int

const (
	Top    Channel = 0
	Bottom Channel = 1
	Extra  Channel = 2
	Wrist1 Channel = 3
	Wrist2 Channel = 4
)

// String returns the wire name used in the serial command grammar.
func (c Channel) String() string {
	switch c {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Extra:
		return "extra"
	case Wrist1:
		return "wrist1"
	case Wrist2:
		return "wrist2"
	}
	return "unknown"
}

// IsWrist reports whether the channel addresses a wrist servo rather than a
// joint of the selected finger.
func (c Channel) IsWrist() bool {
	return c == Wrist1 || c == Wrist2
}

// Finger is the static descriptor of one finger assembly. ExtraCh is -1 for
// fingers without a third servo (only the thumb has one).
type Finger struct {
	Name       string  `json:"name"`
	BottomCh   int     `json:"bottom_ch"`
	BottomInit float64 `json:"bottom_init"`
	TopCh      int     `json:"top_ch"`
	TopInit    float64 `json:"top_init"`
	ExtraCh    int     `json:"extra_ch"`
	ExtraInit  float64 `json:"extra_init"`
}

// HasExtra reports whether this finger carries the extra servo.
func (f Finger) HasExtra() bool {
	return f.ExtraCh >= 0
}

// Init returns the rest angle for the given channel of this finger.
func (f Finger) Init(ch Channel) float64 {
	switch ch {
	case Top:
		return f.TopInit
	case Bottom:
		return f.BottomInit
	case Extra:
		return f.ExtraInit
	}
	return 0
}

// CurlEntry holds the two endpoints of a curl gesture for one finger.
type CurlEntry struct {
	BottomUncurled float64 `json:"bottom_uncurled"`
	BottomCurled   float64 `json:"bottom_curled"`
	TopUncurled    float64 `json:"top_uncurled"`
	TopCurled      float64 `json:"top_curled"`
}

// JointPose is a (bottom, top) end pose for the finger a thumb-touch targets.
type JointPose struct {
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

// ThumbPose is the thumb's end pose for a thumb-touch preset.
type ThumbPose struct {
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
	Extra  float64 `json:"extra"`
}

// TouchPose is a named thumb-touch preset: where the target finger and the
// thumb end up.
type TouchPose struct {
	Target JointPose `json:"target"`
	Thumb  ThumbPose `json:"thumb"`
}

// Range is an inclusive safe angle range for one joint.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp restricts deg to the range.
func (r Range) Clamp(deg float64) float64 {
	if deg < r.Min {
		return r.Min
	}
	if deg > r.Max {
		return r.Max
	}
	return deg
}

// Profile is the full static description of one hand. Immutable after load.
type Profile struct {
	Fingers []Finger             `json:"fingers"`
	Curl    map[string]CurlEntry `json:"curl"`
	Touch   map[string]TouchPose `json:"touch"`

	// WaveOrder lists the fingers the traveling wave visits, in order.
	WaveOrder []string `json:"wave_order"`

	Wrist1Init float64 `json:"wrist1_init"`
	Wrist2Init float64 `json:"wrist2_init"`
	WristRange float64 `json:"wrist_range"`

	// Limits optionally overrides the safe range per joint, keyed
	// "<finger>.<channel>" (e.g. "Thumb.extra") or "<channel>" for wrists.
	Limits map[string]Range `json:"limits,omitempty"`
}

// FingerIndex returns the index for a finger name.
func (p *Profile) FingerIndex(name string) (int, bool) {
	for i, f := range p.Fingers {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// ThumbIndex returns the index of the finger carrying the extra servo.
func (p *Profile) ThumbIndex() (int, bool) {
	for i, f := range p.Fingers {
		if f.HasExtra() {
			return i, true
		}
	}
	return 0, false
}

// WristInit returns the rest angle for a wrist channel.
func (p *Profile) WristInit(ch Channel) float64 {
	if ch == Wrist2 {
		return p.Wrist2Init
	}
	return p.Wrist1Init
}

// JointRange returns the safe range for a joint, consulting the per-joint
// override table first. Finger joints default to 0-180, wrists to the
// configured wrist range.
func (p *Profile) JointRange(finger int, ch Channel) Range {
	if ch.IsWrist() {
		if r, ok := p.Limits[ch.String()]; ok {
			return r
		}
		return Range{Min: 0, Max: p.WristRange}
	}
	if finger >= 0 && finger < len(p.Fingers) {
		if r, ok := p.Limits[p.Fingers[finger].Name+"."+ch.String()]; ok {
			return r
		}
	}
	return Range{Min: 0, Max: 180}
}

// ClampAngle restricts deg to the safe range of the given joint.
func (p *Profile) ClampAngle(finger int, ch Channel, deg float64) float64 {
	return p.JointRange(finger, ch).Clamp(deg)
}
