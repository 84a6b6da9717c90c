// pkg/flight/input.go
package flight

import (
	"math"

	"github.com/opd-ai/go-starflight/pkg/physics"
)

// ControlInput carries one tick of normalized pilot intent. Values come
// from whatever input device layer the host wires up; this boundary
// clamps them and never rejects.
type ControlInput struct {
	// Thrust is the raw thrust command per body axis, each in [-1, 1]
	Thrust physics.Vector3
	// Rotation is the POV rotation delta for this tick in radians:
	// X pitch, Y yaw, Z roll
	Rotation physics.Vector3
	// TargetSpeedDelta adjusts the fly-by-wire commanded speed
	TargetSpeedDelta float64
	// StrafeX and StrafeY are the RCS commands, each in [-1, 1]
	StrafeX float64
	StrafeY float64
	// Boost raises the target-speed ceiling while held
	Boost bool
	// AdvanceAssist cycles the flight-assist level when set
	AdvanceAssist bool
}

// maxRotationDelta bounds a single tick's POV rotation per axis. Half a
// revolution per tick is already far beyond any sane input device.
const maxRotationDelta = math.Pi

// Clamped returns a copy with every component forced into range.
// Non-finite values are zeroed; out-of-range values are clamped.
// Malformed input is never an error at this boundary.
func (in ControlInput) Clamped() ControlInput {
	out := in
	out.Thrust = sanitizeVector(in.Thrust).Clamp(-1, 1)
	out.Rotation = sanitizeVector(in.Rotation).Clamp(-maxRotationDelta, maxRotationDelta)
	out.TargetSpeedDelta = sanitizeScalar(in.TargetSpeedDelta)
	out.StrafeX = clampScalar(sanitizeScalar(in.StrafeX), -1, 1)
	out.StrafeY = clampScalar(sanitizeScalar(in.StrafeY), -1, 1)
	return out
}

func sanitizeVector(v physics.Vector3) physics.Vector3 {
	return physics.Vector3{
		X: sanitizeScalar(v.X),
		Y: sanitizeScalar(v.Y),
		Z: sanitizeScalar(v.Z),
	}
}

func sanitizeScalar(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

func clampScalar(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
