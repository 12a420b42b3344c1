package anim

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gwillem/handwave/pkg/hand"
)

// ActionKind discriminates the Action variants.
type ActionKind string

const (
	ActionWrist        ActionKind = "wrist"
	ActionDelay        ActionKind = "delay"
	ActionFingerWave   ActionKind = "finger_wave"
	ActionThumbTouch   ActionKind = "thumb_touch"
	ActionResetFingers ActionKind = "reset_fingers"
	ActionCurlFingers  ActionKind = "curl_fingers"
	ActionParallel     ActionKind = "parallel"
	ActionSequence     ActionKind = "sequence"
)

// Action is one step of a declarative animation sequence. Only the fields
// relevant to its Kind are set; use the constructors.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Wrist   int        `json:"wrist,omitempty"`
	From    float64    `json:"from,omitempty"`
	To      float64    `json:"to,omitempty"`
	Ms      int        `json:"ms,omitempty"`
	Finger  string     `json:"finger,omitempty"`
	Actions []Action   `json:"actions,omitempty"`
}

// Wrist moves wrist 1 or 2 from a start to an end angle over a duration.
func Wrist(wrist int, from, to float64, ms int) Action {
	return Action{Kind: ActionWrist, Wrist: wrist, From: from, To: to, Ms: ms}
}

// Delay advances the sequence clock without moving anything.
func Delay(ms int) Action {
	return Action{Kind: ActionDelay, Ms: ms}
}

// FingerWave runs the full traveling wave across all wave fingers.
func FingerWave() Action {
	return Action{Kind: ActionFingerWave}
}

// ThumbTouch moves the thumb to touch the named finger.
func ThumbTouch(finger string) Action {
	return Action{Kind: ActionThumbTouch, Finger: finger}
}

// ResetFingers snaps every finger back to its init pose. It consumes no
// sequence time; insert an explicit Delay if separation is wanted.
func ResetFingers() Action {
	return Action{Kind: ActionResetFingers}
}

// CurlFingers curls all wave fingers together.
func CurlFingers() Action {
	return Action{Kind: ActionCurlFingers}
}

// Parallel starts every sub-action at the same time and consumes the
// longest sub-duration.
func Parallel(actions ...Action) Action {
	return Action{Kind: ActionParallel, Actions: actions}
}

// Sequence runs sub-actions back to back; useful inside Parallel.
func Sequence(actions ...Action) Action {
	return Action{Kind: ActionSequence, Actions: actions}
}

// Validate checks an action tree against a hand profile. It runs before
// anything is scheduled, so a bad sequence never partially executes.
func (a Action) Validate(p *hand.Profile) error {
	switch a.Kind {
	case ActionWrist:
		if a.Wrist != 1 && a.Wrist != 2 {
			return fmt.Errorf("wrist action: wrist must be 1 or 2, got %d", a.Wrist)
		}
	case ActionDelay, ActionFingerWave, ActionResetFingers, ActionCurlFingers:
	case ActionThumbTouch:
		if _, ok := p.Touch[a.Finger]; !ok {
			return fmt.Errorf("%w for %q", ErrUnknownPreset, a.Finger)
		}
		if _, ok := p.FingerIndex(a.Finger); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFinger, a.Finger)
		}
	case ActionParallel, ActionSequence:
		for _, sub := range a.Actions {
			if err := sub.Validate(p); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	return nil
}

// ValidateActions validates a whole sequence.
func ValidateActions(p *hand.Profile, actions []Action) error {
	for _, a := range actions {
		if err := a.Validate(p); err != nil {
			return err
		}
	}
	return nil
}

// LoadShow reads an action sequence from a JSON file.
func LoadShow(path string) ([]Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read show file: %w", err)
	}
	var actions []Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("parse show JSON: %w", err)
	}
	return actions, nil
}

// compileActions walks an action list, scheduling each step onto the
// timeline at base+cursor, and returns the final cursor value: the virtual
// time the list consumes. Parallel groups compile every member at the same
// cursor and consume the maximum member span; nested sequences accumulate
// their own cursor relative to the group's start.
func (p *Player) compileActions(tl *Timeline, base time.Duration, actions []Action) time.Duration {
	var cursor time.Duration
	for _, a := range actions {
		switch a.Kind {
		case ActionWrist:
			p.scheduleWristMove(tl, base+cursor, a.Wrist, a.From, a.To, time.Duration(a.Ms)*time.Millisecond)
			cursor += time.Duration(a.Ms) * time.Millisecond
		case ActionDelay:
			cursor += time.Duration(a.Ms) * time.Millisecond
		case ActionFingerWave:
			cursor += p.scheduleWave(tl, base+cursor)
		case ActionThumbTouch:
			cursor += p.scheduleThumbTouch(tl, base+cursor, a.Finger)
		case ActionResetFingers:
			// Instantaneous: the cursor deliberately does not advance.
			p.scheduleResetFingers(tl, base+cursor)
		case ActionCurlFingers:
			cursor += p.scheduleCurl(tl, base+cursor)
		case ActionParallel:
			var longest time.Duration
			for _, sub := range a.Actions {
				d := p.compileActions(tl, base+cursor, []Action{sub})
				if d > longest {
					longest = d
				}
			}
			cursor += longest
		case ActionSequence:
			cursor += p.compileActions(tl, base+cursor, a.Actions)
		}
	}
	return cursor
}

// DefaultShow is the built-in choreography: wrist warm-up sweeps, the
// traveling wave (once alone, once against a wrist sweep), thumb touches
// with resets in between, and a final curl with wrist flourishes.
func DefaultShow() []Action {
	return []Action{
		Wrist(1, 135, 145, 50),
		Wrist(2, 135, 110, 400),
		Wrist(2, 110, 160, 600),
		Wrist(2, 160, 110, 600),
		Wrist(2, 110, 160, 600),
		Wrist(2, 160, 130, 400),
		FingerWave(),
		Parallel(
			Sequence(
				Wrist(1, 145, 60, 1200),
				Wrist(1, 60, 145, 1200),
			),
			FingerWave(),
		),
		Delay(200),
		ThumbTouch("Pointer"),
		Delay(200),
		ResetFingers(),
		Delay(200),
		ThumbTouch("Middle"),
		Delay(200),
		ResetFingers(),
		Delay(200),
		ThumbTouch("Ring"),
		Delay(200),
		ResetFingers(),
		Delay(200),
		ThumbTouch("Pinky"),
		Delay(200),
		ResetFingers(),
		Delay(800),
		CurlFingers(),
		Wrist(2, 130, 110, 500),
		Wrist(2, 110, 160, 1000),
		Wrist(2, 160, 130, 500),
		Wrist(1, 145, 60, 1000),
		Wrist(1, 60, 145, 1000),
		ResetFingers(),
	}
}
