// pkg/physics/quaternion_test.go
package physics

import (
	"math"
	"testing"
)

func TestQuaternionFromAxisAngle_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		axis     Vector3
		angle    float64
		v        Vector3
		expected Vector3
	}{
		{
			name:     "yaw_90_forward_becomes_right",
			axis:     AxisUp,
			angle:    math.Pi / 2,
			v:        AxisForward,
			expected: AxisRight,
		},
		{
			name:     "pitch_90_forward_becomes_negative_up",
			axis:     AxisRight,
			angle:    math.Pi / 2,
			v:        AxisForward,
			expected: AxisUp.Neg(),
		},
		{
			name:     "roll_90_up_becomes_right",
			axis:     AxisForward,
			angle:    math.Pi / 2,
			v:        AxisUp,
			expected: AxisRight.Neg(),
		},
		{
			name:     "full_turn_is_identity",
			axis:     AxisUp,
			angle:    2 * math.Pi,
			v:        AxisForward,
			expected: AxisForward,
		},
		{
			name:     "zero_axis_is_identity",
			axis:     Vector3{},
			angle:    1.5,
			v:        AxisForward,
			expected: AxisForward,
		},
		{
			name:     "unnormalized_axis_accepted",
			axis:     Vector3{Y: 10},
			angle:    math.Pi / 2,
			v:        AxisForward,
			expected: AxisRight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuaternionFromAxisAngle(tt.axis, tt.angle)
			result := q.Rotate(tt.v)
			if !vectorsClose(result, tt.expected, 1e-9) {
				t.Errorf("Rotate() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestQuaternion_BasisVectors(t *testing.T) {
	identity := IdentityQuaternion()
	if !vectorsClose(identity.Right(), AxisRight, 1e-9) {
		t.Errorf("identity Right() = %v", identity.Right())
	}
	if !vectorsClose(identity.Up(), AxisUp, 1e-9) {
		t.Errorf("identity Up() = %v", identity.Up())
	}
	if !vectorsClose(identity.Forward(), AxisForward, 1e-9) {
		t.Errorf("identity Forward() = %v", identity.Forward())
	}

	// The basis stays right-handed under any rotation
	q := QuaternionFromAxisAngle(Vector3{X: 1, Y: 2, Z: 3}, 1.234)
	cross := q.Right().Cross(q.Up())
	if !vectorsClose(cross, q.Forward(), 1e-9) {
		t.Errorf("right x up = %v, expected forward %v", cross, q.Forward())
	}
}

func TestQuaternion_MulComposition(t *testing.T) {
	yaw := QuaternionFromAxisAngle(AxisUp, math.Pi/2)
	pitch := QuaternionFromAxisAngle(AxisRight, math.Pi/2)

	// q2.Mul(q1) applies q1 first, then q2
	composed := pitch.Mul(yaw)
	sequential := pitch.Rotate(yaw.Rotate(AxisForward))
	if !vectorsClose(composed.Rotate(AxisForward), sequential, 1e-9) {
		t.Errorf("composed rotation = %v, sequential = %v",
			composed.Rotate(AxisForward), sequential)
	}
}

func TestQuaternion_AngleTo(t *testing.T) {
	tests := []struct {
		name     string
		q1       Quaternion
		q2       Quaternion
		expected float64
	}{
		{
			name:     "identical_orientations",
			q1:       IdentityQuaternion(),
			q2:       IdentityQuaternion(),
			expected: 0,
		},
		{
			name:     "quarter_turn",
			q1:       IdentityQuaternion(),
			q2:       QuaternionFromAxisAngle(AxisUp, math.Pi/2),
			expected: math.Pi / 2,
		},
		{
			name:     "half_turn",
			q1:       IdentityQuaternion(),
			q2:       QuaternionFromAxisAngle(AxisRight, math.Pi),
			expected: math.Pi,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.q1.AngleTo(tt.q2)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("AngleTo() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestQuaternion_Slerp(t *testing.T) {
	start := IdentityQuaternion()
	end := QuaternionFromAxisAngle(AxisUp, math.Pi/2)

	mid := start.Slerp(end, 0.5)
	expected := QuaternionFromAxisAngle(AxisUp, math.Pi/4)
	if mid.AngleTo(expected) > 1e-9 {
		t.Errorf("Slerp(0.5) differs from quarter rotation by %v", mid.AngleTo(expected))
	}

	if got := start.Slerp(end, 0); got != start {
		t.Errorf("Slerp(0) = %v, expected start", got)
	}
	if got := start.Slerp(end, 1); got != end {
		t.Errorf("Slerp(1) = %v, expected end", got)
	}
}

func TestQuaternion_SlerpShortestPath(t *testing.T) {
	// Negated quaternion represents the same orientation; slerp must
	// not take the long way around
	end := QuaternionFromAxisAngle(AxisUp, math.Pi/2)
	negatedEnd := Quaternion{X: -end.X, Y: -end.Y, Z: -end.Z, W: -end.W}

	mid := IdentityQuaternion().Slerp(negatedEnd, 0.5)
	if angle := mid.AngleTo(IdentityQuaternion()); angle > math.Pi/4+1e-9 {
		t.Errorf("slerp took the long arc: midpoint angle %v", angle)
	}
}

func TestQuaternion_Normalize(t *testing.T) {
	q := Quaternion{X: 0, Y: 2, Z: 0, W: 2}
	normalized := q.Normalize()
	length := math.Sqrt(normalized.Dot(normalized))
	if math.Abs(length-1) > 1e-9 {
		t.Errorf("Normalize() length = %v, expected 1", length)
	}

	zero := Quaternion{}
	if zero.Normalize() != IdentityQuaternion() {
		t.Errorf("Normalize() of zero quaternion = %v, expected identity", zero.Normalize())
	}
}
