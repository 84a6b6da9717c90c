// pkg/engine/craft.go
package engine

import (
	"sync"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/flight"
	"github.com/opd-ai/go-starflight/pkg/physics"
)

// ControlMode selects which control law owns the craft's body
type ControlMode int

const (
	ModeAssist ControlMode = iota
	ModeFlyByWire
)

// String returns a human-readable mode name
func (m ControlMode) String() string {
	switch m {
	case ModeAssist:
		return "assist"
	case ModeFlyByWire:
		return "fly-by-wire"
	default:
		return "unknown"
	}
}

// Craft is a piloted entity in the simulation world. Exactly one
// controller mutates its body at a time; switching modes swaps the
// active controller and re-seeds controller state from the body.
type Craft struct {
	ecs.BasicEntity

	Body *physics.Body

	cfg  *config.SimConfig
	bus  *event.Bus
	mode ControlMode

	assist *flight.AssistController
	fbw    *flight.FlyByWireController

	// inputMu guards input: SetInput may be called from outside the
	// Run goroutine while a tick is consuming it
	inputMu sync.Mutex
	input   flight.ControlInput
}

// newCraft creates a craft with a fresh rigid body and flight assist
// attached at the configured default level
func newCraft(cfg *config.SimConfig, bus *event.Bus) (*Craft, error) {
	body, err := physics.NewBody(cfg.Craft.Mass)
	if err != nil {
		return nil, err
	}

	craft := &Craft{
		BasicEntity: ecs.NewBasic(),
		Body:        body,
		cfg:         cfg,
		bus:         bus,
	}

	body.VelocityChanged = func(old, new physics.Vector3) {
		bus.Publish(event.NewVelocityClampedEvent(craft, craft.ID(), old.Length(), new.Length()))
	}

	craft.AttachAssist(flight.AssistLevel(cfg.DefaultAssistLevel))
	return craft, nil
}

// Mode returns the active control mode
func (c *Craft) Mode() ControlMode {
	return c.mode
}

// AttachAssist makes the flight-assist controller the body's owner,
// starting at the given level
func (c *Craft) AttachAssist(level flight.AssistLevel) {
	c.assist = flight.NewAssistController(c.Body, c.cfg.Assist, c.bus, c.ID(), level)
	c.fbw = nil
	c.mode = ModeAssist
}

// AttachFlyByWire makes the fly-by-wire controller the body's owner.
// POV and velocity decomposition are seeded from the body's current
// state at attach time.
func (c *Craft) AttachFlyByWire() {
	c.fbw = flight.NewFlyByWireController(c.Body, c.cfg.FlyByWire, c.bus, c.ID())
	c.assist = nil
	c.mode = ModeFlyByWire
}

// Assist returns the assist controller, nil outside assist mode
func (c *Craft) Assist() *flight.AssistController {
	return c.assist
}

// FlyByWire returns the FBW controller, nil outside fly-by-wire mode
func (c *Craft) FlyByWire() *flight.FlyByWireController {
	return c.fbw
}

// SetInput stores the pilot input consumed on the next tick. Trigger
// fields fire once; the tick that sees them clears them. Safe to call
// concurrently with a running simulation.
func (c *Craft) SetInput(in flight.ControlInput) {
	c.inputMu.Lock()
	c.input = in
	c.inputMu.Unlock()
}

// takeInput returns the pending input and consumes its one-shot
// triggers in the same critical section, so an input stored mid-tick
// never has its triggers wiped unseen
func (c *Craft) takeInput() flight.ControlInput {
	c.inputMu.Lock()
	defer c.inputMu.Unlock()

	in := c.input
	c.input.AdvanceAssist = false
	c.input.Rotation = physics.Vector3{}
	c.input.TargetSpeedDelta = 0
	return in
}

// controller returns the active control law
func (c *Craft) controller() flight.Controller {
	if c.mode == ModeFlyByWire {
		return c.fbw
	}
	return c.assist
}

// tick runs one control-and-integrate step for this craft
func (c *Craft) tick(dt float64) {
	c.controller().Update(c.takeInput(), dt)
	c.Body.Step(dt)

	// Fly-by-wire is authoritative over velocity; the hard clamp only
	// backs up manual and assisted flight.
	if c.mode == ModeAssist && c.cfg.Craft.MaxSpeed > 0 {
		c.Body.ClampVelocity(c.cfg.Craft.MaxSpeed)
	}
}

// Snapshot assembles the telemetry record for this tick
func (c *Craft) Snapshot(tick uint64) flight.Snapshot {
	s := flight.Snapshot{
		CraftID:         c.ID(),
		Tick:            tick,
		Speed:           c.Body.Speed(),
		Velocity:        c.Body.Velocity,
		BodyForward:     c.Body.Forward(),
		BodyOrientation: c.Body.Orientation,
	}

	if c.mode == ModeFlyByWire {
		pov := c.fbw.POV()
		s.TargetSpeed = c.fbw.TargetSpeed()
		s.ThrustVelocity = c.fbw.ThrustVelocity()
		s.RCSVelocity = c.fbw.RCSVelocity()
		s.Maneuvering = c.fbw.Maneuvering()
		s.POVForward = pov.Forward()
		s.POVRight = pov.Right()
		s.POVUp = pov.Up()
		s.POVOrientation = pov
		return s
	}

	// In assist mode the pilot's view is the body frame
	s.AssistLevel = c.assist.Level()
	s.POVForward = c.Body.Forward()
	s.POVRight = c.Body.Right()
	s.POVUp = c.Body.Up()
	s.POVOrientation = c.Body.Orientation
	return s
}
