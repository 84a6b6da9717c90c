// pkg/physics/body.go
package physics

import (
	"fmt"
	"sync"
)

// velocityChangeEpsilon is the minimum velocity delta that counts as a
// change for notification purposes. Sub-threshold noise from clamping
// must not spam the velocity-changed callback.
const velocityChangeEpsilon = 1e-6

// Body is a free-floating rigid body: no ambient drag, no gravity.
// It is mutated by exactly one flight controller at a time; that
// ownership is a convention between callers, not enforced here.
type Body struct {
	Position        Vector3
	Orientation     Quaternion
	Velocity        Vector3
	AngularVelocity Vector3
	Mass            float64

	// VelocityChanged, when set, is invoked whenever ClampVelocity
	// rescales the velocity by more than velocityChangeEpsilon.
	VelocityChanged func(old, new Vector3)

	forceAccum   Vector3
	torqueAccum  Vector3
	prevVelocity Vector3
	acceleration Vector3

	queueMu       sync.Mutex
	queuedImpulse Vector3
}

// NewBody creates a rigid body with the given mass. Mass must be
// positive; a zero or negative mass is a caller bug caught here rather
// than surfacing as instability inside the controllers.
func NewBody(mass float64) (*Body, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("body mass must be positive, got %v", mass)
	}
	return &Body{
		Orientation: IdentityQuaternion(),
		Mass:        mass,
	}, nil
}

// ApplyForce accumulates a world-frame force for the next Step
func (b *Body) ApplyForce(force Vector3) {
	b.forceAccum = b.forceAccum.Add(force)
}

// ApplyLocalForce accumulates a body-frame force, transformed to world
// coordinates through the current orientation
func (b *Body) ApplyLocalForce(force Vector3) {
	b.ApplyForce(b.Orientation.Rotate(force))
}

// ApplyImpulse applies a world-frame impulse immediately
func (b *Body) ApplyImpulse(impulse Vector3) {
	b.Velocity = b.Velocity.Add(impulse.Scale(1 / b.Mass))
}

// ApplyLocalImpulse applies a body-frame impulse immediately
func (b *Body) ApplyLocalImpulse(impulse Vector3) {
	b.ApplyImpulse(b.Orientation.Rotate(impulse))
}

// ApplyTorque accumulates a world-frame torque for the next Step
func (b *Body) ApplyTorque(torque Vector3) {
	b.torqueAccum = b.torqueAccum.Add(torque)
}

// ApplyLocalTorque accumulates a body-frame torque
func (b *Body) ApplyLocalTorque(torque Vector3) {
	b.ApplyTorque(b.Orientation.Rotate(torque))
}

// QueueImpulse accumulates an impulse to be flushed at the start of the
// next Step. Unlike ApplyImpulse it is safe to call from outside the
// tick loop.
func (b *Body) QueueImpulse(impulse Vector3) {
	b.queueMu.Lock()
	b.queuedImpulse = b.queuedImpulse.Add(impulse)
	b.queueMu.Unlock()
}

// ClampVelocity rescales the velocity to max when it is exceeded.
// The VelocityChanged callback fires only when the rescale moved the
// velocity by more than a small epsilon.
func (b *Body) ClampVelocity(max float64) {
	old := b.Velocity
	clamped := b.Velocity.ClampLength(max)
	b.Velocity = clamped
	if clamped.Sub(old).IsZero(velocityChangeEpsilon) {
		return
	}
	if b.VelocityChanged != nil {
		b.VelocityChanged(old, clamped)
	}
}

// SetVelocity overwrites the linear velocity directly. This is the
// kinematic-override contract: a controller that owns the body may
// drive velocity per tick without the integrator fighting the write.
func (b *Body) SetVelocity(v Vector3) {
	b.Velocity = v
}

// SetOrientation overwrites the orientation directly, renormalizing to
// keep the frame orthonormal. Part of the kinematic-override contract.
func (b *Body) SetOrientation(q Quaternion) {
	b.Orientation = q.Normalize()
}

// Step advances the body by one fixed timestep: queued impulses flush
// first, then accumulated forces and torques integrate, then position
// and orientation advance. The rotational inertia is modeled as the
// scalar mass, which is sufficient for controllers that reason in
// normalized torque.
func (b *Body) Step(dt float64) {
	if dt <= 0 {
		return
	}

	b.queueMu.Lock()
	queued := b.queuedImpulse
	b.queuedImpulse = Vector3{}
	b.queueMu.Unlock()
	b.Velocity = b.Velocity.Add(queued.Scale(1 / b.Mass))

	b.Velocity = b.Velocity.Add(b.forceAccum.Scale(dt / b.Mass))
	b.AngularVelocity = b.AngularVelocity.Add(b.torqueAccum.Scale(dt / b.Mass))
	b.forceAccum = Vector3{}
	b.torqueAccum = Vector3{}

	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	if spin := b.AngularVelocity.Length(); spin > 0 {
		rotation := QuaternionFromAxisAngle(b.AngularVelocity.Scale(1/spin), spin*dt)
		b.Orientation = rotation.Mul(b.Orientation).Normalize()
	}

	b.acceleration = b.Velocity.Sub(b.prevVelocity).Scale(1 / dt)
	b.prevVelocity = b.Velocity
}

// Speed returns the magnitude of the linear velocity
func (b *Body) Speed() float64 {
	return b.Velocity.Length()
}

// LocalVelocity returns the linear velocity expressed in the body frame
func (b *Body) LocalVelocity() Vector3 {
	return b.Orientation.Conjugate().Rotate(b.Velocity)
}

// Acceleration returns the finite-difference acceleration estimate from
// the last Step
func (b *Body) Acceleration() Vector3 {
	return b.acceleration
}

// Momentum returns the linear momentum m*v
func (b *Body) Momentum() Vector3 {
	return b.Velocity.Scale(b.Mass)
}

// KineticEnergy returns 0.5*m*|v|^2
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.LengthSquared()
}

// Forward returns the body forward axis in world coordinates
func (b *Body) Forward() Vector3 {
	return b.Orientation.Forward()
}

// Right returns the body right axis in world coordinates
func (b *Body) Right() Vector3 {
	return b.Orientation.Right()
}

// Up returns the body up axis in world coordinates
func (b *Body) Up() Vector3 {
	return b.Orientation.Up()
}
