package wire

import (
	"strconv"
	"strings"
	"time"
)

// PotReading is one potentiometer telemetry sample streamed by the
// firmware as `POT,<a0_raw>,<a1_raw>,<a0_volts>,<a1_volts>`.
type PotReading struct {
	Raw0  int
	Raw1  int
	Volt0 float64
	Volt1 float64
}

// ParsePotLine parses a telemetry line. Non-POT lines and malformed fields
// return ok=false; the stream carries firmware debug output too.
func ParsePotLine(line string) (PotReading, bool) {
	if !strings.HasPrefix(line, "POT,") {
		return PotReading{}, false
	}
	parts := strings.Split(line, ",")
	if len(parts) != 5 {
		return PotReading{}, false
	}
	var (
		r   PotReading
		err error
	)
	if r.Raw0, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return PotReading{}, false
	}
	if r.Raw1, err = strconv.Atoi(strings.TrimSpace(parts[2])); err != nil {
		return PotReading{}, false
	}
	if r.Volt0, err = strconv.ParseFloat(strings.TrimSpace(parts[3]), 64); err != nil {
		return PotReading{}, false
	}
	if r.Volt1, err = strconv.ParseFloat(strings.TrimSpace(parts[4]), 64); err != nil {
		return PotReading{}, false
	}
	return r, true
}

// Poller reads telemetry lines off the port on its own goroutine and
// delivers parsed readings on a channel. Stale readings are dropped when
// the consumer lags; only the freshest sample matters to the UI.
type Poller struct {
	port     Port
	readings chan PotReading
	stop     chan struct{}
	done     chan struct{}

	// OnError is called once if reading fails (link gone).
	OnError func(error)
}

// NewPoller creates a poller for an open port.
func NewPoller(port Port) *Poller {
	return &Poller{
		port:     port,
		readings: make(chan PotReading, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Readings returns the channel of parsed telemetry samples.
func (p *Poller) Readings() <-chan PotReading {
	return p.readings
}

// Start launches the polling goroutine.
func (p *Poller) Start() {
	go p.run()
}

// Stop halts polling and waits for the goroutine to exit.
func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
}

func (p *Poller) run() {
	defer close(p.done)
	for {
		select {
		case <-p.stop:
			return
		default:
		}

		line, err := p.port.ReadLine()
		if err != nil {
			if p.OnError != nil {
				p.OnError(err)
			}
			return
		}
		if line == "" {
			// Read timeout with no complete line; yield briefly.
			time.Sleep(5 * time.Millisecond)
			continue
		}
		reading, ok := ParsePotLine(line)
		if !ok {
			continue
		}
		select {
		case p.readings <- reading:
		default:
			// Replace the stale sample with the fresh one.
			select {
			case <-p.readings:
			default:
			}
			p.readings <- reading
		}
	}
}
