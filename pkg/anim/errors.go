package anim

import "errors"

var (
	// ErrUnknownFinger means a gesture named a finger the profile does
	// not declare.
	ErrUnknownFinger = errors.New("unknown finger")

	// ErrUnknownPreset means a thumb-touch was requested for a finger
	// with no configured preset pose.
	ErrUnknownPreset = errors.New("no thumb-touch preset")

	// ErrNoCurlEntry means a wave or curl was requested for a finger
	// with no curl table entry.
	ErrNoCurlEntry = errors.New("no curl table entry")
)
