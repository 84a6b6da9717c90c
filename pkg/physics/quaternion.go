// pkg/physics/quaternion.go
package physics

import "math"

// Body-frame axis convention: right = +X, up = +Y, forward = +Z
// (right-handed, forward = right cross up).
var (
	AxisRight   = Vector3{X: 1}
	AxisUp      = Vector3{Y: 1}
	AxisForward = Vector3{Z: 1}
)

// Quaternion represents a rotation as a unit quaternion
type Quaternion struct {
	X float64
	Y float64
	Z float64
	W float64
}

// IdentityQuaternion returns the no-rotation quaternion
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromAxisAngle builds a rotation of angle radians around axis.
// The axis is normalized internally; a zero axis yields the identity.
func QuaternionFromAxisAngle(axis Vector3, angle float64) Quaternion {
	length := axis.Length()
	if length == 0 {
		return IdentityQuaternion()
	}
	half := angle / 2
	sin := math.Sin(half) / length
	return Quaternion{
		X: axis.X * sin,
		Y: axis.Y * sin,
		Z: axis.Z * sin,
		W: math.Cos(half),
	}
}

// Mul composes two rotations: applying q.Mul(other) rotates by other first,
// then by q
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Conjugate returns the inverse rotation for a unit quaternion
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Dot returns the four-component dot product
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Normalize rescales the quaternion to unit length. This is the
// re-orthonormalization step run after every orientation mutation to
// correct floating-point drift.
func (q Quaternion) Normalize() Quaternion {
	length := math.Sqrt(q.Dot(q))
	if length == 0 {
		return IdentityQuaternion()
	}
	return Quaternion{
		X: q.X / length,
		Y: q.Y / length,
		Z: q.Z / length,
		W: q.W / length,
	}
}

// Rotate applies the rotation to a vector
func (q Quaternion) Rotate(v Vector3) Vector3 {
	// v' = v + 2*u x (u x v + w*v), with u the vector part
	u := Vector3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Add(v.Scale(q.W))
	return v.Add(u.Cross(t).Scale(2))
}

// Right returns the body-local +X axis in world coordinates
func (q Quaternion) Right() Vector3 {
	return q.Rotate(AxisRight)
}

// Up returns the body-local +Y axis in world coordinates
func (q Quaternion) Up() Vector3 {
	return q.Rotate(AxisUp)
}

// Forward returns the body-local +Z axis in world coordinates
func (q Quaternion) Forward() Vector3 {
	return q.Rotate(AxisForward)
}

// AngleTo returns the rotation angle in radians between two orientations
func (q Quaternion) AngleTo(other Quaternion) float64 {
	dot := math.Abs(q.Dot(other))
	if dot > 1 {
		dot = 1
	}
	return 2 * math.Acos(dot)
}

// Slerp spherically interpolates toward other by t clamped to [0, 1],
// always along the shorter arc
func (q Quaternion) Slerp(other Quaternion, t float64) Quaternion {
	if t <= 0 {
		return q
	}
	if t >= 1 {
		return other
	}

	dot := q.Dot(other)
	if dot < 0 {
		other = Quaternion{X: -other.X, Y: -other.Y, Z: -other.Z, W: -other.W}
		dot = -dot
	}

	// Nearly identical orientations: fall back to normalized lerp to
	// avoid dividing by a vanishing sin
	if dot > 0.9995 {
		return Quaternion{
			X: q.X + (other.X-q.X)*t,
			Y: q.Y + (other.Y-q.Y)*t,
			Z: q.Z + (other.Z-q.Z)*t,
			W: q.W + (other.W-q.W)*t,
		}.Normalize()
	}

	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	a := math.Sin((1-t)*theta) / sinTheta
	b := math.Sin(t*theta) / sinTheta
	return Quaternion{
		X: q.X*a + other.X*b,
		Y: q.Y*a + other.Y*b,
		Z: q.Z*a + other.Z*b,
		W: q.W*a + other.W*b,
	}.Normalize()
}
