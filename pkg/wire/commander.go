package wire

import (
	"fmt"
	"sync"
	"time"

	"github.com/gwillem/handwave/pkg/hand"
)

const (
	// DefaultSendInterval throttles manual (non-forced) sends per channel.
	DefaultSendInterval = 30 * time.Millisecond

	// DefaultDeadband is the minimum angle delta before a multi-finger
	// send is worth putting on the wire.
	DefaultDeadband = 0.3
)

type fingerChannel struct {
	finger int
	ch     hand.Channel
}

// Commander turns (finger, channel, angle) updates into wire commands,
// suppressing redundant traffic. Every successful send updates the joint
// registry. A failed write escalates once through OnDisconnect and drops
// the link; later sends become no-ops until a new port is attached.
type Commander struct {
	mu       sync.Mutex
	port     Port
	state    *hand.State
	interval time.Duration
	deadband float64
	now      func() time.Time

	lastSend map[hand.Channel]time.Time
	lastSent map[fingerChannel]float64
	selected int

	// OnDisconnect is called once, outside the lock, when a write fails.
	OnDisconnect func(error)
}

// NewCommander creates a Commander that records sends into state. The port
// starts nil: sends before Attach are silently dropped so the UI can move
// sliders before connecting.
func NewCommander(state *hand.State) *Commander {
	return &Commander{
		state:    state,
		interval: DefaultSendInterval,
		deadband: DefaultDeadband,
		now:      time.Now,
		lastSend: make(map[hand.Channel]time.Time),
		lastSent: make(map[fingerChannel]float64),
		selected: -1,
	}
}

// Attach connects the commander to an open port and clears per-session
// suppression memory.
func (c *Commander) Attach(p Port) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.port = p
	c.lastSend = make(map[hand.Channel]time.Time)
	c.lastSent = make(map[fingerChannel]float64)
	c.selected = -1
}

// Detach drops the port without closing it.
func (c *Commander) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.port = nil
}

// Connected reports whether a port is attached.
func (c *Commander) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.port != nil
}

// ResetSession clears the deadband memory, so the next send on every joint
// goes out regardless of the previous value. Animations call this on start.
func (c *Commander) ResetSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSent = make(map[fingerChannel]float64)
}

// SelectFinger emits a finger-select command. Redundant calls are allowed;
// the firmware treats selection as idempotent.
func (c *Commander) SelectFinger(finger int) {
	c.mu.Lock()
	err := c.write(fmt.Sprintf("F:%d\n", finger))
	if err == nil {
		c.selected = finger
	}
	c.mu.Unlock()
	c.escalate(err)
}

// SendAngle sets a logical channel of the currently selected finger (or a
// wrist). Unless force is set, sends within the per-channel throttle
// interval are suppressed. This is the manual-control path.
func (c *Commander) SendAngle(ch hand.Channel, deg float64, force bool) {
	c.mu.Lock()
	if c.port == nil {
		c.mu.Unlock()
		return
	}
	now := c.now()
	if !force && now.Sub(c.lastSend[ch]) < c.interval {
		c.mu.Unlock()
		return
	}
	err := c.write(fmt.Sprintf("%d:%.1f\n", int(ch), deg))
	if err == nil {
		c.lastSend[ch] = now
		c.record(c.selected, ch, deg)
	}
	c.mu.Unlock()
	c.escalate(err)
}

// SendFingerAngle is the multi-finger fast path: it selects the finger and
// sets the channel in one shot. Unless always is set, the send is
// suppressed when the angle is within the deadband of the last value sent
// for that exact (finger, channel) pair.
func (c *Commander) SendFingerAngle(finger int, ch hand.Channel, deg float64, always bool) {
	c.mu.Lock()
	if c.port == nil {
		c.mu.Unlock()
		return
	}
	key := fingerChannel{finger, ch}
	if prev, ok := c.lastSent[key]; ok && !always && abs(prev-deg) < c.deadband {
		c.mu.Unlock()
		return
	}
	// Select must precede the angle: the firmware tracks "current finger".
	err := c.write(fmt.Sprintf("F:%d\n%d:%.1f\n", finger, int(ch), deg))
	if err == nil {
		c.selected = finger
		c.lastSent[key] = deg
		c.record(finger, ch, deg)
	}
	c.mu.Unlock()
	c.escalate(err)
}

// write sends text on the wire. Caller holds the lock. A nil port is not an
// error: sends while disconnected are deliberately dropped.
func (c *Commander) write(text string) error {
	if c.port == nil {
		return nil
	}
	if _, err := c.port.Write([]byte(text)); err != nil {
		c.port = nil
		return err
	}
	return nil
}

func (c *Commander) record(finger int, ch hand.Channel, deg float64) {
	if ch.IsWrist() {
		c.state.Set(0, ch, deg)
		return
	}
	if finger >= 0 {
		c.state.Set(finger, ch, deg)
	}
}

func (c *Commander) escalate(err error) {
	if err != nil && c.OnDisconnect != nil {
		c.OnDisconnect(err)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
