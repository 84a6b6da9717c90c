// pkg/physics/orbital.go
package physics

import "math"

// GravitationalConstant is G in m^3 kg^-1 s^-2
const GravitationalConstant = 6.674e-11

// MinGravityDistance floors the distance used in gravitational formulas
// so that bodies passing near a point mass never see a singular
// acceleration.
const MinGravityDistance = 1.0

// parallelAxisEpsilon bounds the squared cross-product length below
// which two directions are treated as parallel
const parallelAxisEpsilon = 1e-9

// OrbitalSpeed returns the speed of a circular orbit of the given
// radius around a point mass: v = sqrt(G*M/r)
func OrbitalSpeed(centralMass, radius float64) float64 {
	if radius < MinGravityDistance {
		radius = MinGravityDistance
	}
	return math.Sqrt(GravitationalConstant * centralMass / radius)
}

// GravitationalAccel returns the acceleration magnitude a = G*M/r^2
// toward a point mass, with the distance floored to avoid singularities
func GravitationalAccel(centralMass, radius float64) float64 {
	if radius < MinGravityDistance {
		radius = MinGravityDistance
	}
	return GravitationalConstant * centralMass / (radius * radius)
}

// GravitationalAccelVector returns the acceleration vector on a body at
// position due to a point mass at center
func GravitationalAccelVector(center, position Vector3, centralMass float64) Vector3 {
	offset := center.Sub(position)
	radius := offset.Length()
	if radius == 0 {
		return Vector3{}
	}
	return offset.Scale(1 / radius).Scale(GravitationalAccel(centralMass, radius))
}

// OrbitalTangent returns the unit direction of circular orbital motion
// for a body whose position relative to the central mass is radial.
// The tangent is radial x up; when radial is parallel or anti-parallel
// to up that cross product vanishes, so radial x right is used instead.
func OrbitalTangent(radial Vector3) Vector3 {
	tangent := radial.Cross(AxisUp)
	if tangent.LengthSquared() < parallelAxisEpsilon {
		tangent = radial.Cross(AxisRight)
	}
	return tangent.Normalize()
}

// OrbitalVelocity returns the velocity vector for circular orbit
// insertion at position around a point mass at center
func OrbitalVelocity(center, position Vector3, centralMass float64) Vector3 {
	radial := position.Sub(center)
	speed := OrbitalSpeed(centralMass, radial.Length())
	return OrbitalTangent(radial).Scale(speed)
}
