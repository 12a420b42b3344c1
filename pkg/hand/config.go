package hand

import (
	"encoding/json"
	"fmt"
	"os"
)

const DefaultConfigFile = "handwave.json"

// Config holds the persisted controller configuration: which port the hand
// is on and the hand profile itself.
type Config struct {
	Port    string  `json:"port"`
	Baud    int     `json:"baud"`
	Profile Profile `json:"profile"`
}

// LoadConfig loads configuration from the default config file.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}
	if len(cfg.Profile.Fingers) == 0 {
		cfg.Profile = DefaultProfile()
	}
	return &cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists.
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}

const DefaultBaud = 115200

// DefaultProfile returns the built-in hand description. Finger order must
// match the firmware: 0=Pinky, 1=Ring, 2=Middle, 3=Pointer, 4=Thumb.
func DefaultProfile() Profile {
	return Profile{
		Fingers: []Finger{
			{Name: "Pinky", BottomCh: 8, BottomInit: 150, TopCh: 4, TopInit: 130, ExtraCh: -1},
			{Name: "Ring", BottomCh: 7, BottomInit: 55, TopCh: 3, TopInit: 140, ExtraCh: -1},
			{Name: "Middle", BottomCh: 2, BottomInit: 30, TopCh: 1, TopInit: 140, ExtraCh: -1},
			{Name: "Pointer", BottomCh: 5, BottomInit: 145, TopCh: 0, TopInit: 40, ExtraCh: -1},
			{Name: "Thumb", BottomCh: 9, BottomInit: 60, TopCh: 10, TopInit: 60, ExtraCh: 6, ExtraInit: 80},
		},
		Curl: map[string]CurlEntry{
			"Pinky":   {BottomUncurled: 150, BottomCurled: 55, TopUncurled: 130, TopCurled: 35},
			"Ring":    {BottomUncurled: 55, BottomCurled: 140, TopUncurled: 140, TopCurled: 45},
			"Middle":  {BottomUncurled: 30, BottomCurled: 120, TopUncurled: 140, TopCurled: 40},
			"Pointer": {BottomUncurled: 140, BottomCurled: 50, TopUncurled: 40, TopCurled: 125},
		},
		Touch: map[string]TouchPose{
			"Pointer": {
				Target: JointPose{Bottom: 105, Top: 85},
				Thumb:  ThumbPose{Bottom: 95, Top: 60, Extra: 120},
			},
			"Middle": {
				Target: JointPose{Bottom: 75, Top: 100},
				Thumb:  ThumbPose{Bottom: 95, Top: 55, Extra: 130},
			},
			"Ring": {
				Target: JointPose{Bottom: 100, Top: 80},
				Thumb:  ThumbPose{Bottom: 95, Top: 50, Extra: 145},
			},
			"Pinky": {
				Target: JointPose{Bottom: 105, Top: 95},
				Thumb:  ThumbPose{Bottom: 95, Top: 50, Extra: 160},
			},
		},
		WaveOrder:  []string{"Pinky", "Ring", "Middle", "Pointer"},
		Wrist1Init: 135,
		Wrist2Init: 135,
		WristRange: 270,
	}
}
