package hand

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handwave.json")

	cfg := &Config{
		Port:    "/dev/ttyUSB0",
		Baud:    57600,
		Profile: DefaultProfile(),
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom failed: %v", err)
	}
	if loaded.Port != cfg.Port || loaded.Baud != cfg.Baud {
		t.Errorf("loaded %s@%d, want %s@%d", loaded.Port, loaded.Baud, cfg.Port, cfg.Baud)
	}
	if !reflect.DeepEqual(loaded.Profile, cfg.Profile) {
		t.Error("profile did not survive the round trip")
	}
}

func TestConfig_LoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handwave.json")
	if err := os.WriteFile(path, []byte(`{"port":"/dev/ttyACM0"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom failed: %v", err)
	}
	if cfg.Baud != DefaultBaud {
		t.Errorf("baud = %d, want default %d", cfg.Baud, DefaultBaud)
	}
	if len(cfg.Profile.Fingers) == 0 {
		t.Error("missing profile should fall back to the built-in hand")
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	if _, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestConfig_LoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handwave.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFrom(path); err == nil {
		t.Error("expected error for malformed config")
	}
}
