// pkg/flight/assist.go
package flight

import (
	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/physics"
)

// AssistLevel is one of four discrete degrees of automatic
// stabilization layered over manual Newtonian control
type AssistLevel int

const (
	AssistOff AssistLevel = iota
	AssistLow
	AssistMedium
	AssistHigh
)

// String returns a human-readable level name
func (l AssistLevel) String() string {
	switch l {
	case AssistOff:
		return "OFF"
	case AssistLow:
		return "LOW"
	case AssistMedium:
		return "MEDIUM"
	case AssistHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Next returns the following level in the cycle
// OFF -> LOW -> MEDIUM -> HIGH -> OFF
func (l AssistLevel) Next() AssistLevel {
	if l >= AssistHigh || l < AssistOff {
		return AssistOff
	}
	return l + 1
}

// Assist thresholds: heading capture engages above speed^2 = 1, the
// space-brake hands over to direct interpolation at or below 0.5 m/s
// where force application would jitter around rest.
const (
	headingCaptureSpeedSq = 1.0
	brakeHandoverSpeed    = 0.5
	inputEpsilon          = 1e-9
)

// AssistConfig tunes the flight-assist corrections
type AssistConfig struct {
	// MaxThrust is the force produced by a full raw thrust command, in newtons
	MaxThrust float64 `json:"maxThrust"`
	// TorqueMax is the torque produced by a full raw rotation command
	TorqueMax float64 `json:"torqueMax"`
	// DampingStrength scales the LOW-level angular damping torque
	DampingStrength float64 `json:"dampingStrength"`
	// ActiveRotationFactor reduces damping while the pilot is rotating,
	// so assist never fights deliberate input
	ActiveRotationFactor float64 `json:"activeRotationFactor"`
	// VelocityDamping scales the HIGH-level space-brake
	VelocityDamping float64 `json:"velocityDamping"`
	// AssistStrength scales the HIGH-level velocity-direction matching
	AssistStrength float64 `json:"assistStrength"`
}

// AssistController layers graduated corrective torques and forces over
// raw thrust/rotation input. It is a strict cycle of four levels; the
// only external transition is Advance.
type AssistController struct {
	body    *physics.Body
	bus     *event.Bus
	craftID uint64
	cfg     AssistConfig

	level AssistLevel

	// targetHeading is captured at MEDIUM and above while thrusting
	// forward on a steady attitude. It is recorded for telemetry but
	// not enforced as a correction.
	targetHeading   physics.Vector3
	headingCaptured bool
}

// NewAssistController creates an assist controller attached to body,
// starting at the given level. The bus may be nil when no listener
// cares about level changes.
func NewAssistController(body *physics.Body, cfg AssistConfig, bus *event.Bus, craftID uint64, level AssistLevel) *AssistController {
	return &AssistController{
		body:    body,
		bus:     bus,
		craftID: craftID,
		cfg:     cfg,
		level:   level,
	}
}

// Level returns the current assist level
func (c *AssistController) Level() AssistLevel {
	return c.level
}

// Advance moves to the next assist level in the cycle and publishes an
// AssistLevelChanged event
func (c *AssistController) Advance() {
	old := c.level
	c.level = c.level.Next()
	if c.bus != nil {
		c.bus.Publish(event.NewAssistLevelEvent(c, c.craftID, int(old), int(c.level)))
	}
}

// TargetHeading returns the captured heading and whether one has been
// recorded since attach
func (c *AssistController) TargetHeading() (physics.Vector3, bool) {
	return c.targetHeading, c.headingCaptured
}

// Update applies one tick of raw input plus level-proportional
// correction. Forces and torques accumulate on the body; the caller
// integrates with Body.Step afterward.
func (c *AssistController) Update(in ControlInput, dt float64) {
	in = in.Clamped()
	if in.AdvanceAssist {
		c.Advance()
	}

	rotating := !in.Rotation.IsZero(inputEpsilon)
	thrusting := !in.Thrust.IsZero(inputEpsilon)

	// Raw input applies at every level, including OFF
	c.body.ApplyLocalForce(in.Thrust.Scale(c.cfg.MaxThrust))
	c.body.ApplyLocalTorque(in.Rotation.Scale(c.cfg.TorqueMax))

	if c.level >= AssistLow {
		c.applyAngularDamping(rotating)
	}
	if c.level >= AssistMedium {
		c.captureHeading(in, rotating)
	}
	if c.level >= AssistHigh {
		c.matchVelocityDirection(thrusting, dt)
	}
}

// applyAngularDamping counters residual spin with a torque proportional
// to angular velocity, backed off while the pilot rotates deliberately
func (c *AssistController) applyAngularDamping(rotating bool) {
	damping := c.cfg.DampingStrength
	if rotating {
		damping *= c.cfg.ActiveRotationFactor
	}
	c.body.ApplyTorque(c.body.AngularVelocity.Neg().Scale(c.cfg.TorqueMax * damping))
}

// captureHeading records the current forward direction while the pilot
// holds forward thrust on a steady attitude at speed
func (c *AssistController) captureHeading(in ControlInput, rotating bool) {
	if rotating || c.body.Velocity.LengthSquared() <= headingCaptureSpeedSq {
		return
	}
	if in.Thrust.Z > 0 {
		c.targetHeading = c.body.Forward()
		c.headingCaptured = true
	}
}

// matchVelocityDirection is the HIGH-level law: brake toward rest when
// the pilot is coasting, otherwise steer the velocity vector toward the
// current facing with authority that grows with speed
func (c *AssistController) matchVelocityDirection(thrusting bool, dt float64) {
	speed := c.body.Speed()

	if !thrusting {
		if speed > brakeHandoverSpeed {
			brake := c.body.Velocity.Neg().Scale(c.body.Mass * c.cfg.VelocityDamping * dt)
			c.body.ApplyImpulse(brake)
			return
		}
		// Near rest, force application jitters around zero; interpolate
		// the velocity down directly instead
		t := c.cfg.VelocityDamping * dt
		c.body.SetVelocity(c.body.Velocity.Lerp(physics.Vector3{}, t))
		return
	}

	correction := c.body.Forward().Sub(c.body.Velocity.Normalize())
	impulse := correction.Scale(speed * c.body.Mass * c.cfg.AssistStrength * dt)
	c.body.ApplyImpulse(impulse)
}
