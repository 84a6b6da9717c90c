// pkg/flight/flybywire.go
package flight

import (
	"math"

	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/physics"
)

// degenerateAxisEpsilon bounds the squared cross-product length below
// which a rotation axis is treated as undefined
const degenerateAxisEpsilon = 1e-9

// FBWConfig tunes the fly-by-wire controller
type FBWConfig struct {
	// MaxStrafeSpeed is the RCS velocity produced by a full strafe command
	MaxStrafeSpeed float64 `json:"maxStrafeSpeed"`
	// RCSThrust is the lateral thruster force in newtons; the per-tick
	// RCS velocity change is bounded by RCSThrust/mass * dt
	RCSThrust float64 `json:"rcsThrust"`
	// ManeuverAcceleration bounds the per-tick thrust-velocity change
	ManeuverAcceleration float64 `json:"maneuverAcceleration"`
	// RotationRate bounds body rotation in radians per second
	RotationRate float64 `json:"rotationRate"`
	// VelocityMatchThreshold is the thrust-velocity error below which
	// the controller snaps to the target instead of converging
	VelocityMatchThreshold float64 `json:"velocityMatchThreshold"`
	// OrientationMatchThreshold is the angle in radians below which
	// orientations snap instead of creeping asymptotically
	OrientationMatchThreshold float64 `json:"orientationMatchThreshold"`
	// MaxTargetSpeed caps the commanded speed
	MaxTargetSpeed float64 `json:"maxTargetSpeed"`
	// BoostFactor scales the target-speed ceiling while boost is held.
	// Note this raises the ceiling, not the acceleration rate, so a
	// boosted command may exceed MaxTargetSpeed.
	BoostFactor float64 `json:"boostFactor"`
}

// FlyByWireController decouples the pilot's point of view from the
// physical body. The POV rotates with pilot input; the body chases
// either the thrust direction (while maneuvering) or the POV (while
// cruising). Linear velocity is decomposed into a thrust component and
// an RCS component, converged independently and written back to the
// body as their sum every tick.
//
// The controller is the single source of truth for the body's velocity
// and orientation: it writes both through the kinematic-override
// methods rather than accumulating forces, so no residual drift can
// build up between the decomposition and the actual velocity. The
// per-tick rates are still bounded in force/acceleration terms.
type FlyByWireController struct {
	body    *physics.Body
	bus     *event.Bus
	craftID uint64
	cfg     FBWConfig

	pov physics.Quaternion

	// thrustVelocity and rcsVelocity are absolute world-space vectors.
	// Tracking the RCS component in world space (rather than
	// re-projecting onto the POV axes each tick) keeps converged
	// lateral velocity from reappearing as error when the POV rotates.
	thrustVelocity physics.Vector3
	rcsVelocity    physics.Vector3

	targetSpeed float64
	maneuvering bool
}

// NewFlyByWireController attaches fly-by-wire control to body. The POV
// starts at the body's orientation; the thrust component is seeded from
// the forward projection of the current velocity and the RCS component
// from the residual, so the composition invariant holds from tick zero.
func NewFlyByWireController(body *physics.Body, cfg FBWConfig, bus *event.Bus, craftID uint64) *FlyByWireController {
	pov := body.Orientation
	forward := pov.Forward()
	thrust := forward.Scale(body.Velocity.Dot(forward))

	return &FlyByWireController{
		body:           body,
		bus:            bus,
		craftID:        craftID,
		cfg:            cfg,
		pov:            pov,
		thrustVelocity: thrust,
		rcsVelocity:    body.Velocity.Sub(thrust),
	}
}

// POV returns the pilot's point-of-view orientation
func (c *FlyByWireController) POV() physics.Quaternion {
	return c.pov
}

// TargetSpeed returns the commanded forward speed
func (c *FlyByWireController) TargetSpeed() float64 {
	return c.targetSpeed
}

// ThrustVelocity returns the forward velocity component
func (c *FlyByWireController) ThrustVelocity() physics.Vector3 {
	return c.thrustVelocity
}

// RCSVelocity returns the strafe velocity component
func (c *FlyByWireController) RCSVelocity() physics.Vector3 {
	return c.rcsVelocity
}

// Maneuvering reports whether the thrust-velocity error exceeds the
// matching threshold
func (c *FlyByWireController) Maneuvering() bool {
	return c.maneuvering
}

// Update runs one fixed-timestep control tick. The intra-tick order is
// fixed: RCS update, thrust update (which may rotate the body toward
// the thrust direction), orientation-mode update, composite velocity
// write.
func (c *FlyByWireController) Update(in ControlInput, dt float64) {
	in = in.Clamped()

	c.rotatePOV(in.Rotation)
	c.updateTargetSpeed(in)

	c.updateRCS(in, dt)
	c.updateThrust(dt)

	if !c.maneuvering {
		c.alignToPOV(dt)
	}

	c.body.SetVelocity(c.thrustVelocity.Add(c.rcsVelocity))
}

// rotatePOV applies pilot rotation deltas sequentially, each about the
// just-updated local axis: pitch about local right, yaw about the newly
// rotated up, roll about the newly rotated forward. Chaining the axes
// this way keeps control feel consistent at any attitude, where a
// fixed-world-frame Euler composition would not.
func (c *FlyByWireController) rotatePOV(rotation physics.Vector3) {
	if rotation.IsZero(inputEpsilon) {
		return
	}

	q := c.pov
	q = physics.QuaternionFromAxisAngle(q.Right(), rotation.X).Mul(q)
	q = physics.QuaternionFromAxisAngle(q.Up(), rotation.Y).Mul(q)
	q = physics.QuaternionFromAxisAngle(q.Forward(), rotation.Z).Mul(q)
	c.pov = q.Normalize()

	if c.bus != nil {
		c.bus.Publish(event.NewPOVEvent(c, c.craftID))
	}
}

// updateTargetSpeed applies the commanded delta and clamps to the
// ceiling, which boost scales up while held
func (c *FlyByWireController) updateTargetSpeed(in ControlInput) {
	ceiling := c.cfg.MaxTargetSpeed
	if in.Boost {
		ceiling *= c.cfg.BoostFactor
	}

	c.targetSpeed += in.TargetSpeedDelta
	if c.targetSpeed < 0 {
		c.targetSpeed = 0
	}
	if c.targetSpeed > ceiling {
		c.targetSpeed = ceiling
	}
}

// updateRCS converges the strafe component toward the commanded lateral
// velocity at a rate bounded by the RCS thruster authority. When the
// remaining error fits within one tick's change the component snaps to
// the target, so convergence never overshoots.
func (c *FlyByWireController) updateRCS(in ControlInput, dt float64) {
	target := c.pov.Right().Scale(in.StrafeX * c.cfg.MaxStrafeSpeed).
		Add(c.pov.Up().Scale(in.StrafeY * c.cfg.MaxStrafeSpeed))

	maxChange := c.cfg.RCSThrust / c.body.Mass * dt
	err := target.Sub(c.rcsVelocity)

	if err.Length() <= maxChange {
		c.rcsVelocity = target
		return
	}
	c.rcsVelocity = c.rcsVelocity.Add(err.Normalize().Scale(maxChange))
}

// updateThrust converges the forward component toward povForward *
// targetSpeed. While the body is badly off-axis it rotates toward the
// correction direction and only contributes thrust in proportion to
// alignment; once aligned it corrects at the full bounded rate.
func (c *FlyByWireController) updateThrust(dt float64) {
	target := c.pov.Forward().Scale(c.targetSpeed)
	err := target.Sub(c.thrustVelocity)
	errLen := err.Length()

	c.setManeuvering(errLen > c.cfg.VelocityMatchThreshold)
	if !c.maneuvering {
		// Matched: assign exactly, leaving no residual to oscillate on
		c.thrustVelocity = target
		return
	}

	maxChange := math.Min(errLen, c.cfg.ManeuverAcceleration*dt)
	dir := err.Normalize()
	forward := c.body.Forward()
	angle := forward.AngleTo(dir)

	if angle > c.cfg.OrientationMatchThreshold {
		c.rotateToward(dir, dt)
		alignment := forward.Dot(dir)
		if alignment > 0.5 {
			// Partial thrust while off-axis, efficiency proportional
			// to alignment
			c.thrustVelocity = c.thrustVelocity.Add(forward.Scale(maxChange * alignment))
		}
		return
	}
	c.thrustVelocity = c.thrustVelocity.Add(dir.Scale(maxChange))
}

// rotateToward rotates the body toward target at the bounded rate.
// When forward and target are anti-parallel the cross product vanishes
// with no defined rotation plane; the body's right axis is forced as
// the 180-degree axis so the turn is always finite and deterministic.
func (c *FlyByWireController) rotateToward(target physics.Vector3, dt float64) {
	forward := c.body.Forward()
	axis := forward.Cross(target)

	if axis.LengthSquared() < degenerateAxisEpsilon {
		if forward.Dot(target) >= 0 {
			return // already aligned
		}
		axis = c.body.Right()
	}

	angle := math.Min(forward.AngleTo(target), c.cfg.RotationRate*dt)
	rotation := physics.QuaternionFromAxisAngle(axis.Normalize(), angle)
	c.body.SetOrientation(rotation.Mul(c.body.Orientation))

	// Fly-by-wire owns rotation fully each tick; residual spin would
	// fight the next tick's alignment
	c.body.AngularVelocity = physics.Vector3{}
}

// alignToPOV slerps the body orientation toward the POV with the blend
// fraction recomputed each tick so angular speed never exceeds
// RotationRate regardless of remaining distance. Below the match
// threshold it snaps, avoiding asymptotic creep that never settles.
func (c *FlyByWireController) alignToPOV(dt float64) {
	angle := c.body.Orientation.AngleTo(c.pov)

	if angle < c.cfg.OrientationMatchThreshold {
		c.body.SetOrientation(c.pov)
	} else {
		t := math.Min(1, c.cfg.RotationRate*dt/angle)
		c.body.SetOrientation(c.body.Orientation.Slerp(c.pov, t))
	}
	c.body.AngularVelocity = physics.Vector3{}
}

// setManeuvering updates the flag and fires a one-shot notification on
// each edge
func (c *FlyByWireController) setManeuvering(maneuvering bool) {
	if maneuvering == c.maneuvering {
		return
	}
	c.maneuvering = maneuvering
	if c.bus != nil {
		c.bus.Publish(event.NewManeuveringEvent(c, c.craftID, maneuvering))
	}
}
