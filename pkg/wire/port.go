// Package wire speaks the hand's serial line protocol: newline-terminated
// ASCII commands out (`F:<finger>`, `<channel>:<angle>`), potentiometer
// telemetry lines back.
package wire

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// Port is a byte-oriented duplex link to the hand. ReadLine returns an
// empty string (no error) when no full line arrived within the read
// timeout.
type Port interface {
	io.WriteCloser
	ReadLine() (string, error)
}

// ListPorts enumerates serial ports on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "list serial ports")
	}
	return ports, nil
}

type serialPort struct {
	port serial.Port
	buf  []byte // partial line carried between ReadLine calls
	rd   [128]byte
}

// Open opens a serial connection to the hand. The firmware resets on open,
// so this waits for it to come up and drains any boot noise.
func Open(device string, baud int) (Port, error) {
	mode := &serial.Mode{BaudRate: baud}
	p, err := serial.Open(device, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "open serial port %s", device)
	}
	if err := p.SetReadTimeout(20 * time.Millisecond); err != nil {
		p.Close()
		return nil, errors.Wrap(err, "set read timeout")
	}

	// Arduino resets when the port opens; give it time to boot.
	time.Sleep(2500 * time.Millisecond)
	p.ResetInputBuffer()

	return &serialPort{port: p}, nil
}

func (s *serialPort) Write(b []byte) (int, error) {
	n, err := s.port.Write(b)
	if err != nil {
		return n, errors.Wrap(err, "serial write")
	}
	return n, nil
}

func (s *serialPort) ReadLine() (string, error) {
	for {
		if i := bytes.IndexByte(s.buf, '\n'); i >= 0 {
			line := strings.TrimRight(string(s.buf[:i]), "\r")
			s.buf = s.buf[i+1:]
			return line, nil
		}
		// A zero-byte read means the timeout expired with no new data.
		n, err := s.port.Read(s.rd[:])
		if err != nil {
			return "", errors.Wrap(err, "serial read")
		}
		if n == 0 {
			return "", nil
		}
		s.buf = append(s.buf, s.rd[:n]...)
	}
}

func (s *serialPort) Close() error {
	return s.port.Close()
}
