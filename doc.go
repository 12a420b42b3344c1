// Package handwave drives a multi-servo robotic hand over a serial line:
// scripted gestures with eased interpolation, a declarative show compiler,
// and interactive per-joint control.
//
// # Installation
//
//	go install github.com/gwillem/handwave/cmd/handwave@latest
//
// # Usage
//
// First, pick the serial port the hand is connected to:
//
//	handwave setup
//
// Then start the interactive controller:
//
//	handwave control
//
// Or run the built-in choreography end to end:
//
//	handwave show
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/handwave: CLI with setup, control and show commands
//   - pkg/hand: Hand description, joint registry, and configuration
//   - pkg/wire: Serial transport, command grammar, and pot telemetry
//   - pkg/anim: Event loop, timelines, tweens, gestures, and the player
package handwave
