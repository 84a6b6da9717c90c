// pkg/config/config_test.go
package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/opd-ai/go-starflight/pkg/flight"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() failed validation: %v", err)
	}
	if cfg.TickRate != 120 {
		t.Errorf("TickRate = %v, expected 120", cfg.TickRate)
	}
	if cfg.DefaultAssistLevel != int(flight.AssistLow) {
		t.Errorf("DefaultAssistLevel = %v, expected LOW", cfg.DefaultAssistLevel)
	}
}

func TestSaveAndLoadConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")

	original := DefaultConfig()
	original.Craft.Mass = 7500
	original.FlyByWire.MaxTargetSpeed = 250

	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if loaded.Craft.Mass != 7500 {
		t.Errorf("Craft.Mass = %v, expected 7500", loaded.Craft.Mass)
	}
	if loaded.FlyByWire.MaxTargetSpeed != 250 {
		t.Errorf("MaxTargetSpeed = %v, expected 250", loaded.FlyByWire.MaxTargetSpeed)
	}
	if math.Abs(loaded.FlyByWire.RotationRate-math.Pi/2) > 1e-12 {
		t.Errorf("RotationRate = %v, expected pi/2", loaded.FlyByWire.RotationRate)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadConfig on missing file expected error, got nil")
	}
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig on malformed JSON expected error, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SimConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*SimConfig) {}, wantErr: false},
		{name: "zero_tick_rate", mutate: func(c *SimConfig) { c.TickRate = 0 }, wantErr: true},
		{name: "negative_mass", mutate: func(c *SimConfig) { c.Craft.Mass = -1 }, wantErr: true},
		{
			name:    "negative_velocity_threshold",
			mutate:  func(c *SimConfig) { c.FlyByWire.VelocityMatchThreshold = -0.1 },
			wantErr: true,
		},
		{
			name:    "negative_orientation_threshold",
			mutate:  func(c *SimConfig) { c.FlyByWire.OrientationMatchThreshold = -0.1 },
			wantErr: true,
		},
		{
			name:    "boost_factor_below_one",
			mutate:  func(c *SimConfig) { c.FlyByWire.BoostFactor = 0.5 },
			wantErr: true,
		},
		{
			name:    "assist_level_out_of_range",
			mutate:  func(c *SimConfig) { c.DefaultAssistLevel = 9 },
			wantErr: true,
		},
		{
			name:    "assist_level_negative",
			mutate:  func(c *SimConfig) { c.DefaultAssistLevel = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("STARFLIGHT_TICK_RATE", "60")
	t.Setenv("STARFLIGHT_CRAFT_MASS", "9000")
	t.Setenv("STARFLIGHT_MAX_TARGET_SPEED", "200")
	t.Setenv("STARFLIGHT_DEFAULT_ASSIST_LEVEL", "3")

	cfg := DefaultConfig()
	if err := ApplyEnvOverrides(cfg); err != nil {
		t.Fatalf("ApplyEnvOverrides: %v", err)
	}

	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %v, expected 60", cfg.TickRate)
	}
	if cfg.Craft.Mass != 9000 {
		t.Errorf("Craft.Mass = %v, expected 9000", cfg.Craft.Mass)
	}
	if cfg.FlyByWire.MaxTargetSpeed != 200 {
		t.Errorf("MaxTargetSpeed = %v, expected 200", cfg.FlyByWire.MaxTargetSpeed)
	}
	if cfg.DefaultAssistLevel != int(flight.AssistHigh) {
		t.Errorf("DefaultAssistLevel = %v, expected HIGH", cfg.DefaultAssistLevel)
	}
	// Unset variables leave fields alone
	if cfg.Craft.MaxSpeed != 300 {
		t.Errorf("Craft.MaxSpeed = %v, expected default 300", cfg.Craft.MaxSpeed)
	}
}

func TestApplyEnvOverrides_NoVariablesSet(t *testing.T) {
	cfg := DefaultConfig()
	want := *cfg

	if err := ApplyEnvOverrides(cfg); err != nil {
		t.Fatalf("ApplyEnvOverrides: %v", err)
	}
	if *cfg != want {
		t.Errorf("config changed with no overrides set: %+v", cfg)
	}
}
