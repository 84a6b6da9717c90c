// pkg/engine/systems.go
package engine

import (
	"context"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starflight/pkg/flight"
)

// FlightSystem runs the active controller and integrates the body for
// every craft, once per fixed tick
type FlightSystem struct {
	crafts []*Craft
}

// Add registers a craft with the system
func (s *FlightSystem) Add(craft *Craft) {
	s.crafts = append(s.crafts, craft)
}

// Remove drops a craft from the system
func (s *FlightSystem) Remove(basic ecs.BasicEntity) {
	for i, craft := range s.crafts {
		if craft.ID() == basic.ID() {
			s.crafts = append(s.crafts[:i], s.crafts[i+1:]...)
			break
		}
	}
}

// Update advances every craft by one tick. The world passes dt as
// float32; the physics runs in float64.
func (s *FlightSystem) Update(dt float32) {
	step := float64(dt)
	for _, craft := range s.crafts {
		craft.tick(step)
	}
}

// TelemetrySystem publishes a snapshot per craft per tick to the
// injected sink and records engine metrics. It must be registered
// after FlightSystem so snapshots reflect the completed tick.
type TelemetrySystem struct {
	sim     *Simulation
	sink    flight.Sink
	metrics *flightMetrics
	crafts  []*Craft
}

// Add registers a craft with the system
func (s *TelemetrySystem) Add(craft *Craft) {
	s.crafts = append(s.crafts, craft)
}

// Remove drops a craft from the system
func (s *TelemetrySystem) Remove(basic ecs.BasicEntity) {
	for i, craft := range s.crafts {
		if craft.ID() == basic.ID() {
			s.crafts = append(s.crafts[:i], s.crafts[i+1:]...)
			break
		}
	}
}

// Update publishes telemetry for the tick that just ran
func (s *TelemetrySystem) Update(dt float32) {
	ctx := context.Background()
	tick := s.sim.CurrentTick()

	for _, craft := range s.crafts {
		snapshot := craft.Snapshot(tick)
		if s.sink != nil {
			s.sink.Publish(snapshot)
		}
		if s.metrics != nil {
			s.metrics.recordSnapshot(ctx, snapshot)
		}
	}
	if s.metrics != nil {
		s.metrics.recordTick(ctx)
	}
}
