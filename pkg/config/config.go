// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/opd-ai/go-starflight/pkg/flight"
)

// SimConfig contains configuration for a flight simulation
type SimConfig struct {
	// TickRate is the fixed physics rate in Hz
	TickRate           float64             `json:"tickRate"`
	Craft              CraftConfig         `json:"craft"`
	Assist             flight.AssistConfig `json:"assist"`
	FlyByWire          flight.FBWConfig    `json:"flyByWire"`
	DefaultAssistLevel int                 `json:"defaultAssistLevel"`
}

// CraftConfig contains configuration for a piloted craft
type CraftConfig struct {
	Mass float64 `json:"mass"`
	// MaxSpeed is the hard velocity clamp applied after integration
	// in assist mode
	MaxSpeed float64 `json:"maxSpeed"`
}

// envOverrides maps STARFLIGHT_* environment variables onto config
// fields. Pointer fields are only applied when the variable is set.
type envOverrides struct {
	TickRate             *float64 `env:"STARFLIGHT_TICK_RATE"`
	CraftMass            *float64 `env:"STARFLIGHT_CRAFT_MASS"`
	CraftMaxSpeed        *float64 `env:"STARFLIGHT_CRAFT_MAX_SPEED"`
	MaxTargetSpeed       *float64 `env:"STARFLIGHT_MAX_TARGET_SPEED"`
	ManeuverAcceleration *float64 `env:"STARFLIGHT_MANEUVER_ACCELERATION"`
	RotationRate         *float64 `env:"STARFLIGHT_ROTATION_RATE"`
	DefaultAssistLevel   *int     `env:"STARFLIGHT_DEFAULT_ASSIST_LEVEL"`
}

// LoadConfig loads a configuration from a file, applies environment
// overrides and validates the result
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ApplyEnvOverrides(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnvOverrides overwrites config fields from STARFLIGHT_*
// environment variables where set
func ApplyEnvOverrides(config *SimConfig) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if overrides.TickRate != nil {
		config.TickRate = *overrides.TickRate
	}
	if overrides.CraftMass != nil {
		config.Craft.Mass = *overrides.CraftMass
	}
	if overrides.CraftMaxSpeed != nil {
		config.Craft.MaxSpeed = *overrides.CraftMaxSpeed
	}
	if overrides.MaxTargetSpeed != nil {
		config.FlyByWire.MaxTargetSpeed = *overrides.MaxTargetSpeed
	}
	if overrides.ManeuverAcceleration != nil {
		config.FlyByWire.ManeuverAcceleration = *overrides.ManeuverAcceleration
	}
	if overrides.RotationRate != nil {
		config.FlyByWire.RotationRate = *overrides.RotationRate
	}
	if overrides.DefaultAssistLevel != nil {
		config.DefaultAssistLevel = *overrides.DefaultAssistLevel
	}

	return nil
}

// Validate checks the configuration for values the controllers treat as
// precondition violations
func (c *SimConfig) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %v", c.TickRate)
	}
	if c.Craft.Mass <= 0 {
		return fmt.Errorf("craft mass must be positive, got %v", c.Craft.Mass)
	}
	if c.FlyByWire.VelocityMatchThreshold < 0 {
		return fmt.Errorf("velocityMatchThreshold must be non-negative, got %v", c.FlyByWire.VelocityMatchThreshold)
	}
	if c.FlyByWire.OrientationMatchThreshold < 0 {
		return fmt.Errorf("orientationMatchThreshold must be non-negative, got %v", c.FlyByWire.OrientationMatchThreshold)
	}
	if c.FlyByWire.BoostFactor < 1 {
		return fmt.Errorf("boostFactor must be at least 1, got %v", c.FlyByWire.BoostFactor)
	}
	if level := flight.AssistLevel(c.DefaultAssistLevel); level < flight.AssistOff || level > flight.AssistHigh {
		return fmt.Errorf("defaultAssistLevel must be between %d and %d, got %d",
			flight.AssistOff, flight.AssistHigh, c.DefaultAssistLevel)
	}
	return nil
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *SimConfig {
	return &SimConfig{
		TickRate: 120,
		Craft: CraftConfig{
			Mass:     5000,
			MaxSpeed: 300,
		},
		Assist: flight.AssistConfig{
			MaxThrust:            150000,
			TorqueMax:            20000,
			DampingStrength:      1.0,
			ActiveRotationFactor: 0.3,
			VelocityDamping:      2.0,
			AssistStrength:       1.0,
		},
		FlyByWire: flight.FBWConfig{
			MaxStrafeSpeed:            30,
			RCSThrust:                 30000,
			ManeuverAcceleration:      20,
			RotationRate:              math.Pi / 2,
			VelocityMatchThreshold:    0.1,
			OrientationMatchThreshold: 0.05,
			MaxTargetSpeed:            100,
			BoostFactor:               1.5,
		},
		DefaultAssistLevel: int(flight.AssistLow),
	}
}
