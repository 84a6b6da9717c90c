// pkg/physics/orbital_test.go
package physics

import (
	"math"
	"testing"
)

const earthMass = 5.972e24

func TestOrbitalSpeed(t *testing.T) {
	radius := 6.771e6 // low orbit
	expected := math.Sqrt(GravitationalConstant * earthMass / radius)

	if got := OrbitalSpeed(earthMass, radius); math.Abs(got-expected) > 1e-6 {
		t.Errorf("OrbitalSpeed() = %v, expected %v", got, expected)
	}
}

func TestGravitationalAccel_MinDistanceFloor(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
	}{
		{name: "zero_radius", radius: 0},
		{name: "sub_floor_radius", radius: 0.25},
		{name: "negative_radius", radius: -3},
	}

	atFloor := GravitationalAccel(earthMass, MinGravityDistance)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GravitationalAccel(earthMass, tt.radius)
			if math.IsInf(got, 0) || math.IsNaN(got) {
				t.Fatalf("GravitationalAccel(%v) not finite: %v", tt.radius, got)
			}
			if got != atFloor {
				t.Errorf("GravitationalAccel(%v) = %v, expected floor value %v", tt.radius, got, atFloor)
			}
		})
	}
}

func TestGravitationalAccelVector_PointsTowardCenter(t *testing.T) {
	center := Vector3{}
	position := Vector3{X: 2e6}

	accel := GravitationalAccelVector(center, position, earthMass)

	if accel.X >= 0 || accel.Y != 0 || accel.Z != 0 {
		t.Errorf("acceleration = %v, expected pure -X direction", accel)
	}
	expected := GravitationalAccel(earthMass, 2e6)
	if math.Abs(accel.Length()-expected) > 1e-9 {
		t.Errorf("acceleration magnitude = %v, expected %v", accel.Length(), expected)
	}
}

func TestGravitationalAccelVector_CoincidentPositions(t *testing.T) {
	accel := GravitationalAccelVector(Vector3{}, Vector3{}, earthMass)
	if !accel.IsZero(1e-12) {
		t.Errorf("coincident positions acceleration = %v, expected zero", accel)
	}
}

func TestOrbitalTangent(t *testing.T) {
	tests := []struct {
		name     string
		radial   Vector3
		expected Vector3
	}{
		{
			name:     "radial_along_right",
			radial:   Vector3{X: 5},
			expected: AxisForward, // right x up
		},
		{
			name:     "radial_parallel_to_up_uses_fallback",
			radial:   Vector3{Y: 3},
			expected: AxisForward.Neg(), // up x right
		},
		{
			name:     "radial_anti_parallel_to_up_uses_fallback",
			radial:   Vector3{Y: -3},
			expected: AxisForward,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrbitalTangent(tt.radial)
			if math.Abs(got.Length()-1) > 1e-9 {
				t.Fatalf("tangent not unit length: %v", got)
			}
			if !vectorsClose(got, tt.expected, 1e-9) {
				t.Errorf("OrbitalTangent(%v) = %v, expected %v", tt.radial, got, tt.expected)
			}
		})
	}
}

func TestOrbitalVelocity_PerpendicularToRadial(t *testing.T) {
	center := Vector3{}
	position := Vector3{X: 3e6, Y: 1e6, Z: -2e6}

	velocity := OrbitalVelocity(center, position, earthMass)
	radial := position.Sub(center)

	if dot := velocity.Dot(radial); math.Abs(dot) > 1e-3 {
		t.Errorf("orbital velocity not perpendicular to radial: dot = %v", dot)
	}
	expected := OrbitalSpeed(earthMass, radial.Length())
	if math.Abs(velocity.Length()-expected) > 1e-6 {
		t.Errorf("orbital speed = %v, expected %v", velocity.Length(), expected)
	}
}
