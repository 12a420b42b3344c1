package wire

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePotLine(t *testing.T) {
	tests := []struct {
		line     string
		expected PotReading
		ok       bool
	}{
		{"POT,512,1023,1.25,3.30", PotReading{512, 1023, 1.25, 3.30}, true},
		{"POT, 512 , 1023 , 1.25 , 3.30", PotReading{512, 1023, 1.25, 3.30}, true},
		{"POT,0,0,0.00,0.00", PotReading{}, true},
		{"boot: hand firmware v2", PotReading{}, false}, // firmware debug noise
		{"POT,512,1023,1.25", PotReading{}, false},      // field missing
		{"POT,512,1023,1.25,3.30,9", PotReading{}, false},
		{"POT,abc,1023,1.25,3.30", PotReading{}, false},
		{"POT,512,1023,x,3.30", PotReading{}, false},
		{"", PotReading{}, false},
	}

	for _, tt := range tests {
		got, ok := ParsePotLine(tt.line)
		if ok != tt.ok {
			t.Errorf("ParsePotLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if ok && got != tt.expected {
			t.Errorf("ParsePotLine(%q) = %+v, want %+v", tt.line, got, tt.expected)
		}
	}
}

func TestPoller_DeliversFreshestReading(t *testing.T) {
	port := &fakePort{lines: []string{
		"POT,100,200,0.49,0.98",
		"junk line",
		"POT,110,210,0.54,1.03",
	}}

	p := NewPoller(port)
	p.Start()
	defer p.Stop()

	// Keep reading until the latest sample comes through; if both arrived
	// before we drained, the stale one has been replaced already.
	deadline := time.After(time.Second)
	for {
		select {
		case got := <-p.Readings():
			if got.Raw0 == 110 {
				assert.Equal(t, PotReading{110, 210, 0.54, 1.03}, got)
				return
			}
			require.Equal(t, 100, got.Raw0, "unexpected sample %+v", got)
		case <-deadline:
			t.Fatal("freshest reading never arrived")
		}
	}
}

func TestPoller_StopsOnReadError(t *testing.T) {
	port := &fakePort{
		lines:   []string{"POT,1,2,0.1,0.2"},
		readErr: errors.New("port closed"),
	}

	p := NewPoller(port)
	errCh := make(chan error, 1)
	p.OnError = func(err error) { errCh <- err }
	p.Start()

	select {
	case err := <-errCh:
		assert.EqualError(t, err, "port closed")
	case <-time.After(time.Second):
		t.Fatal("poller never reported the read error")
	}
}
